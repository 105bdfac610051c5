package views

import (
	"context"
	"fmt"
	"strconv"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/eringen/skillsite/card"
	"github.com/eringen/skillsite/content"
	"github.com/eringen/skillsite/markdown"
)

// PageData is everything a page component may show.
type PageData struct {
	Site  SiteConfig
	Path  string
	Page  content.Page
	Cards []*card.Card

	// Posts page only.
	Posts  []Post
	Tags   []string
	Filter PostFilter
	Total  int
	Pages  int
}

// cardGrid lays out the page's cards. Nothing is written for a page
// without cards.
func cardGrid(cards []*card.Card) g.Node {
	if len(cards) == 0 {
		return nil
	}
	return h.Div(h.Class("card-grid"), testID("card-grid"),
		g.Map(cards, func(c *card.Card) g.Node {
			return card.Node(c.View())
		}),
	)
}

func intro(ctx context.Context, d PageData) g.Node {
	if d.Page.Intro == "" {
		return nil
	}
	return h.Div(h.Class("page-intro prose"), embed(ctx, markdown.Markdown(d.Page.Intro)))
}

// section is the common page frame: intro copy, then the card grid, then
// extra.
func section(class string, d PageData, extra func(ctx context.Context) g.Node) templ.Component {
	return component(func(ctx context.Context) g.Node {
		var rest g.Node
		if extra != nil {
			rest = extra(ctx)
		}
		return h.Section(h.Class(class), testID(class),
			intro(ctx, d),
			cardGrid(d.Cards),
			rest,
		)
	})
}

// Home is the landing page: a short intro and one card per skill.
func Home(d PageData) templ.Component {
	return section("home-page", d, nil)
}

// About describes the site.
func About(d PageData) templ.Component {
	return section("about-page", d, nil)
}

// Posts lists published posts with search, sort, tag filter and
// pagination.
func Posts(d PageData) templ.Component {
	return section("posts-page", d, func(ctx context.Context) g.Node {
		return g.Group{
			searchForm(d.Filter),
			tagList(d.Tags, d.Filter),
			resultCount(d),
			postList(ctx, d),
			paginator(d.Filter, d.Pages),
		}
	})
}

// partial marks links and forms whose response replaces the page region
// only.
func partial() g.Node {
	return g.Group{
		g.Attr("hx-target", "#page"),
		g.Attr("hx-push-url", "true"),
	}
}

func searchForm(f PostFilter) g.Node {
	return h.Form(h.Class("post-search"), testID("post-search"),
		h.Method("get"), h.Action("/posts"),
		g.Attr("hx-get", "/posts"),
		g.Attr("hx-trigger", "submit, change from:#sort"),
		partial(),
		g.If(f.Tag != "", h.Input(h.Type("hidden"), h.Name("tag"), h.Value(f.Tag))),
		h.Label(g.Attr("for", "q"), g.Text("Search")),
		h.Input(h.Type("search"), h.ID("q"), h.Name("q"), h.Value(f.Query), h.Placeholder("Search posts")),
		h.Label(g.Attr("for", "sort"), g.Text("Sort")),
		h.Select(h.ID("sort"), h.Name("sort"),
			g.Map(SortOptions, func(o SortOption) g.Node {
				selected := o.Value == f.Sort || (f.Sort == "" && o.Value == SortNewest)
				return h.Option(h.Value(o.Value), g.If(selected, h.Selected()), g.Text(o.Label))
			}),
		),
		h.Button(h.Type("submit"), h.Class("search-button"), g.Text("Search")),
	)
}

func tagList(tags []string, f PostFilter) g.Node {
	if len(tags) == 0 {
		return nil
	}
	withTag := func(tag string) string {
		return PostFilter{Tag: tag, Sort: f.Sort}.URL(1)
	}
	return h.Div(h.Class("tag-list"), g.Attr("hx-boost", "true"), partial(),
		h.A(h.Class(TagClass(f.Tag == "")), href(withTag("")), g.Text("all")),
		g.Map(tags, func(tag string) g.Node {
			return h.A(h.Class(TagClass(tag == f.Tag)), href(withTag(tag)), g.Text(tag))
		}),
	)
}

func resultCount(d PageData) g.Node {
	if d.Filter.Query == "" {
		return nil
	}
	noun := "posts"
	if d.Total == 1 {
		noun = "post"
	}
	return h.P(h.Class("result-count"), g.Attr("role", "status"),
		g.Text(fmt.Sprintf("%d %s matching \"%s\"", d.Total, noun, d.Filter.Query)),
	)
}

func postList(ctx context.Context, d PageData) g.Node {
	if len(d.Posts) == 0 {
		msg := "Nothing here yet."
		if d.Filter.Query != "" {
			msg = "No posts match your search."
		}
		return h.P(h.Class("empty-state"), g.Text(msg))
	}
	return g.Map(d.Posts, func(p Post) g.Node {
		return postArticle(ctx, p)
	})
}

func postArticle(ctx context.Context, p Post) g.Node {
	return h.Article(h.Class("post"), h.ID(p.Slug),
		h.H2(h.Class("post-title"), g.Text(p.Title)),
		g.El("time", h.Class("post-date"), g.Attr("datetime", p.Date), g.Text(p.Date)),
		g.If(len(p.Tags) > 0, h.Ul(h.Class("post-tags"),
			g.Map(p.Tags, func(tag string) g.Node {
				return h.Li(h.A(href(TagURL(tag)), g.Text(tag)))
			}),
		)),
		g.If(p.Summary != "", h.P(h.Class("post-summary"), g.Text(p.Summary))),
		h.Div(h.Class("post-content prose"), embed(ctx, markdown.Markdown(p.Content))),
	)
}

// paginator links the previous and next pages and every page number. A
// single page has no paginator.
func paginator(f PostFilter, pages int) g.Node {
	if pages <= 1 {
		return nil
	}
	current := min(max(f.Page, 1), pages)
	nums := make([]int, pages)
	for i := range nums {
		nums[i] = i + 1
	}
	return h.Nav(h.Class("paginator"), testID("paginator"), g.Attr("aria-label", "Pages"),
		g.Attr("hx-boost", "true"), partial(),
		g.If(current > 1, h.A(h.Class("page-prev"), h.Rel("prev"), href(f.URL(current-1)), g.Text("Previous"))),
		g.Map(nums, func(n int) g.Node {
			if n == current {
				return h.Span(h.Class("page-number page-current"), g.Attr("aria-current", "page"), g.Text(strconv.Itoa(n)))
			}
			return h.A(h.Class("page-number"), href(f.URL(n)), g.Text(strconv.Itoa(n)))
		}),
		g.If(current < pages, h.A(h.Class("page-next"), h.Rel("next"), href(f.URL(current+1)), g.Text("Next"))),
	)
}

// SpanishHome introduces the Spanish course and links its sections.
func SpanishHome(d PageData) templ.Component {
	return section("spanish-home-page", d, nil)
}

// SpanishMethod describes the daily routine.
func SpanishMethod(d PageData) templ.Component {
	return section("spanish-method-page", d, backToSpanish)
}

// SpanishResources lists books, apps and courses.
func SpanishResources(d PageData) templ.Component {
	return section("spanish-resources-page", d, backToSpanish)
}

// SpanishVideos lists video lessons.
func SpanishVideos(d PageData) templ.Component {
	return section("spanish-videos-page", d, backToSpanish)
}

func backToSpanish(context.Context) g.Node {
	return h.P(h.Class("back-link"), h.A(h.Href("/spanish"), g.Text("Back to Spanish")))
}

// NotFound renders the document shell with an empty page region.
func NotFound(cfg SiteConfig, current string) templ.Component {
	return Layout(cfg, PageMeta{Title: "Not Found"}, current, nil)
}

// ServerError renders the document shell with a short apology.
func ServerError(cfg SiteConfig) templ.Component {
	return Layout(cfg, PageMeta{Title: "Error"}, "", component(func(context.Context) g.Node {
		return h.P(h.Class("error-message"), g.Text("Something went wrong. Please try again later."))
	}))
}
