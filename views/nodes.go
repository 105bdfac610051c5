package views

import (
	"context"
	"io"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
)

// component adapts a node tree to templ, so pages render through the same
// templ.Component boundary as cards and markdown. build runs per render
// with the request context.
func component(build func(ctx context.Context) g.Node) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		n := build(ctx)
		if n == nil {
			return nil
		}
		return n.Render(w)
	})
}

// embed places a templ component inside a node tree.
func embed(ctx context.Context, c templ.Component) g.Node {
	if c == nil {
		return nil
	}
	return g.NodeFunc(func(w io.Writer) error {
		return c.Render(ctx, w)
	})
}

func testID(id string) g.Node {
	return g.Attr("data-testid", id)
}

// href sanitizes u the way templ does for URL attributes.
func href(u string) g.Node {
	return g.Attr("href", string(templ.URL(u)))
}
