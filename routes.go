package skillsite

import (
	"github.com/a-h/templ"

	"github.com/eringen/skillsite/card"
	"github.com/eringen/skillsite/content"
	"github.com/eringen/skillsite/views"
)

// cardEndpoint is the prefix of the single-card fragment route.
const cardEndpoint = "/cards/"

// Route maps one exact path to the component rendered in the page region.
type Route struct {
	Path  string
	Title string // used when the content catalog has no title for Path
	View  func(views.PageData) templ.Component
	Posts bool // page lists posts
}

// PageRoutes returns the site's routing table. Paths match exactly; a path
// not listed here renders the header over an empty page region.
func PageRoutes() []Route {
	return []Route{
		{Path: "/", View: views.Home},
		{Path: "/about", Title: "About", View: views.About},
		{Path: "/posts", Title: "Posts", View: views.Posts, Posts: true},
		{Path: "/spanish", Title: "Spanish", View: views.SpanishHome},
		{Path: "/spanish/method", Title: "Method", View: views.SpanishMethod},
		{Path: "/spanish/resources", Title: "Resources", View: views.SpanishResources},
		{Path: "/spanish/videos", Title: "Videos", View: views.SpanishVideos},
	}
}

// Lookup returns the route registered for path.
func (a *App) Lookup(path string) (Route, bool) {
	for _, r := range a.Routes {
		if r.Path == path {
			return r, true
		}
	}
	return Route{}, false
}

// newCard builds a card whose hover triggers call back into the fragment
// route.
func newCard(id string, cfg card.Config) *card.Card {
	c := card.New(id, cfg)
	c.Endpoint = cardEndpoint
	return c
}

func pageCards(p content.Page) []*card.Card {
	cards := make([]*card.Card, 0, len(p.Cards))
	for _, e := range p.Cards {
		cards = append(cards, newCard(e.ID, e.Card))
	}
	return cards
}
