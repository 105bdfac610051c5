package card

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// Component renders the card in its current hover state.
func (c *Card) Component() templ.Component {
	return Render(c.View())
}

// Render adapts the markup of v to a templ component.
func Render(v View) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return Node(v).Render(w)
	})
}

// Node builds the markup of v. An empty view builds nothing.
func Node(v View) g.Node {
	if v.Empty() {
		return g.Group(nil)
	}

	tag := "div"
	if v.Interactive && v.Href != "" {
		tag = "a"
	}
	variantClass := "icon-card"
	if v.Variant == PhotoOverlay {
		variantClass = "photo-card"
	}
	style := v.ContainerStyle
	if v.Variant == PhotoOverlay && v.Background != "" {
		style = append(Declarations{{Property: "background-image", Value: "url(" + cssURL(v.Background) + ")"}}, style...)
	}

	var body g.Node
	switch v.Variant {
	case PhotoOverlay:
		body = photoBody(v)
	case IconOverlay:
		body = iconBody(v)
	}

	return g.El(tag,
		g.If(v.ID != "", h.ID("card-"+v.ID)),
		h.Class(templ.Classes("card-container", variantClass, templ.KV("clickable-card", v.Interactive)).String()),
		styleAttr(style),
		g.If(tag == "a", h.Href(string(templ.URL(v.Href)))),
		g.If(v.Next != "", g.Group{
			g.Attr("hx-get", v.Next),
			g.Attr("hx-trigger", v.Trigger),
			g.Attr("hx-sync", "this:replace"),
			g.Attr("hx-swap", "outerHTML"),
			g.Attr("data-hovered", strconv.FormatBool(v.Hovered)),
		}),
		testID("card-container"),
		body,
	)
}

func photoBody(v View) g.Node {
	return h.Div(h.Class("photo-card-container"), testID("photo-card-container"),
		h.Div(h.Class("photo-card-content-container"), styleAttr(v.ContentStyle), testID("photo-card-content-container"),
			h.Div(
				h.Class(templ.Classes("card-title", templ.KV("hidden", v.TextHidden)).String()),
				styleAttr(v.TitleStyle),
				testID("photo-card-title"),
				g.Text(v.Title),
			),
			g.If(v.Subtitle != "", h.Div(
				h.Class(templ.Classes("card-subtitle", templ.KV("hidden", v.TextHidden)).String()),
				styleAttr(v.SubtitleStyle),
				testID("photo-card-subtitle"),
				g.Text(v.Subtitle),
			)),
		),
	)
}

func iconBody(v View) g.Node {
	return h.Div(h.Class("icon-card-container"), testID("icon-card-container"),
		h.Div(h.Class("icon-card-body"),
			h.Div(h.Class("card-icon-title"), styleAttr(v.TitleStyle), testID("icon-card-title"), g.Text(v.Title)),
			h.Div(h.Class("icon-card-icon-container"),
				h.Img(
					h.Src(string(templ.URL(v.Icon))),
					styleAttr(v.IconStyle),
					h.Alt("card-icon"),
					testID("icon-card-visible-icon"),
				),
			),
		),
	)
}

func testID(id string) g.Node {
	return g.Attr("data-testid", id)
}

func styleAttr(d Declarations) g.Node {
	if len(d) == 0 {
		return nil
	}
	return g.Attr("style", d.String())
}

// cssURL escapes src for use inside an unquoted CSS url().
func cssURL(src string) string {
	var b strings.Builder
	for _, r := range src {
		switch r {
		case '\\', '"', '\'', '(', ')', ' ', '\t', '\n', '\r':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
