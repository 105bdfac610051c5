package views

import (
	"context"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// HTMXSrc is the htmx build that drives card hover swaps.
const HTMXSrc = "https://unpkg.com/htmx.org@2.0.4/dist/htmx.min.js"

// CardsScript resyncs swapped card fragments with the pointer. It runs
// after htmx.
const CardsScript = "/public/js/cards.js"

// NavLink is one entry of the header navigation.
type NavLink struct {
	Path  string
	Label string
}

// NavLinks are the links shown in the NavBar. Spanish pages are reached
// through cards, not the navigation.
var NavLinks = []NavLink{
	{Path: "/", Label: "Home"},
	{Path: "/about", Label: "About"},
	{Path: "/posts", Label: "Posts"},
}

// NavItemClass returns the class of the nav item for path when current is
// the page being shown.
func NavItemClass(current, path string) string {
	return templ.Classes("nav-item", templ.KV("active-link", current == path)).String()
}

// NavBar renders the navigation, marking the link of the current path.
func NavBar(current string) templ.Component {
	return component(func(context.Context) g.Node {
		return navBar(current)
	})
}

func navBar(current string) g.Node {
	return h.Nav(h.Class("nav-bar-container"), testID("nav-bar"),
		g.Map(NavLinks, func(l NavLink) g.Node {
			return h.Div(h.Class(NavItemClass(current, l.Path)),
				h.A(href(l.Path), g.Text(l.Label)),
			)
		}),
	)
}

// Header renders the site title block and the NavBar.
func Header(cfg SiteConfig, current string) templ.Component {
	return component(func(context.Context) g.Node {
		return header(cfg, current)
	})
}

func header(cfg SiteConfig, current string) g.Node {
	return h.Header(h.Class("header-container"),
		h.Div(h.Class("header-sections"),
			h.Div(h.Class("title-container"),
				h.Div(h.Class("title-header"), g.Text(cfg.Name)),
				h.Div(h.Class("title-sub-header"), g.Text(cfg.Tagline)),
			),
			navBar(current),
		),
		h.Div(h.Class("header-line")),
	)
}

// Layout wraps body in the document shell: head, header and the page region.
func Layout(cfg SiteConfig, meta PageMeta, current string, body templ.Component) templ.Component {
	return component(func(ctx context.Context) g.Node {
		title := cfg.Name
		if meta.Title != "" {
			title = meta.Title + " | " + cfg.Name
		}
		description := meta.Description
		if description == "" {
			description = cfg.Description
		}
		ogType := meta.OGType
		if ogType == "" {
			ogType = "website"
		}

		return h.Doctype(h.HTML(h.Lang("en"),
			h.Head(
				h.Meta(h.Charset("utf-8")),
				h.Meta(h.Name("viewport"), h.Content("width=device-width, initial-scale=1")),
				h.TitleEl(g.Text(title)),
				h.Meta(h.Name("description"), h.Content(description)),
				g.If(meta.URL != "", g.Group{
					h.Link(h.Rel("canonical"), href(meta.URL)),
					h.Meta(g.Attr("property", "og:url"), h.Content(meta.URL)),
				}),
				h.Meta(g.Attr("property", "og:title"), h.Content(title)),
				h.Meta(g.Attr("property", "og:type"), h.Content(ogType)),
				h.Link(h.Rel("icon"), h.Href("/favicon.svg"), h.Type("image/svg+xml")),
				h.Link(h.Rel("stylesheet"), h.Href("/public/site.css")),
				h.Script(h.Defer(), h.Src(HTMXSrc)),
				h.Script(h.Defer(), h.Src(CardsScript)),
				h.Script(h.Type("application/ld+json"), g.Raw(WebsiteJsonLD(cfg))),
			),
			h.Body(
				h.Div(h.Class("app-container"),
					header(cfg, current),
					h.Main(h.Class("page-region"), h.ID("page"), embed(ctx, body)),
				),
			),
		))
	})
}
