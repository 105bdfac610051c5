package skillsite

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/eringen/skillsite/views"
)

// render writes cmp as an HTML response with status code.
func render(c echo.Context, code int, cmp templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return cmp.Render(c.Request().Context(), c.Response().Writer)
}

// regionRequest reports whether an htmx request only wants the page region
// back, as the Posts search form, tag list and paginator do.
func regionRequest(c echo.Context) bool {
	h := c.Request().Header
	return h.Get("HX-Request") == "true" && h.Get("HX-Target") == "page"
}

func (a *App) pageHandler(r Route) echo.HandlerFunc {
	return func(c echo.Context) error {
		d := views.PageData{Site: a.viewConfig(), Path: r.Path}
		title := r.Title
		if p, ok := a.Site.Page(r.Path); ok {
			d.Page = p
			d.Cards = pageCards(p)
			if p.Title != "" {
				title = p.Title
			}
		}
		if r.Posts {
			if err := a.loadPosts(c, &d); err != nil {
				return err
			}
		}

		c.Response().Header().Add(echo.HeaderVary, "HX-Request")
		body := r.View(d)
		if regionRequest(c) {
			return render(c, http.StatusOK, body)
		}
		meta := views.PageMeta{
			Title:       title,
			Description: d.Page.Description,
			URL:         BuildURL(a.Config.URL, r.Path),
		}
		return render(c, http.StatusOK, views.Layout(d.Site, meta, r.Path, body))
	}
}

// loadPosts fills the Posts page from the tag, q, sort and page query
// parameters. A missing or malformed page means the first page; a page
// past the end shows the last one.
func (a *App) loadPosts(c echo.Context, d *views.PageData) error {
	f := views.PostFilter{
		Tag:   strings.TrimSpace(c.QueryParam("tag")),
		Query: strings.TrimSpace(c.QueryParam("q")),
		Sort:  c.QueryParam("sort"),
	}
	if !validSort(f.Sort) {
		f.Sort = views.SortNewest
	}
	f.Page, _ = strconv.Atoi(c.QueryParam("page"))

	res, err := a.Cache.Query(f, a.Config.PostsPerPage)
	if err != nil {
		return err
	}
	tags, err := a.Cache.ListTags()
	if err != nil {
		return err
	}
	f.Page = res.Page
	d.Posts, d.Tags, d.Filter = res.Posts, tags, f
	d.Total, d.Pages = res.Total, res.Pages
	return nil
}

func validSort(s string) bool {
	for _, o := range views.SortOptions {
		if o.Value == s {
			return true
		}
	}
	return false
}

// handleCard renders one card in the hover state given by ?hover=. htmx
// swaps the result over the card that issued the request.
func (a *App) handleCard(c echo.Context) error {
	id := c.Param("id")
	cfg, ok := a.Site.Card(id)
	if !ok {
		return c.NoContent(http.StatusNotFound)
	}
	hover, err := strconv.ParseBool(c.QueryParam("hover"))
	if err != nil && c.QueryParam("hover") != "" {
		return c.String(http.StatusBadRequest, "hover must be true or false")
	}
	cd := newCard(id, cfg)
	if hover {
		cd.PointerEnter()
	}
	return render(c, http.StatusOK, cd.Component())
}

func (a *App) handleSitemap(c echo.Context) error {
	posts, err := a.Cache.ListPosts("")
	if err != nil {
		return err
	}
	return a.renderSitemap(c, posts)
}

func (a *App) handleFeed(c echo.Context) error {
	posts, err := a.Cache.ListPosts("")
	if err != nil {
		return err
	}
	return a.renderRSS(c, posts)
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.staticDir + "/favicon.svg")
}

func (a *App) handleRobots(c echo.Context) error {
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	if a.Config.AdminEnabled() {
		b.WriteString("Disallow: /admin\n")
	}
	b.WriteString("Disallow: /cards/\n")
	b.WriteString("\nSitemap: " + BuildURL(a.Config.URL, "sitemap.xml") + "\n")
	return c.String(http.StatusOK, b.String())
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	ok := errors.As(err, &he)
	if ok && he.Code == http.StatusNotFound {
		_ = render(c, http.StatusNotFound, views.NotFound(a.viewConfig(), c.Request().URL.Path))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = render(c, code, views.ServerError(a.viewConfig()))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
