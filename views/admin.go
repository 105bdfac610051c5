package views

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

func csrfField(token string) g.Node {
	return h.Input(h.Type("hidden"), h.Name("_csrf"), h.Value(token))
}

// csrfHeaders is the hx-headers value that carries the CSRF token on htmx
// requests that have no form body.
func csrfHeaders(token string) string {
	b, _ := json.Marshal(map[string]string{"X-CSRF-Token": token})
	return string(b)
}

func adminPage(cfg SiteConfig, body func(ctx context.Context) g.Node) templ.Component {
	return Layout(cfg, PageMeta{Title: "Admin"}, "", component(body))
}

// AdminLogin renders the password form.
func AdminLogin(cfg SiteConfig, showError bool, csrfToken string) templ.Component {
	return adminPage(cfg, func(context.Context) g.Node {
		return h.Section(h.Class("admin-login"), testID("admin-login"),
			h.H1(g.Text("Admin")),
			g.If(showError, h.P(h.Class("form-error"), g.Text("Wrong password."))),
			h.Form(h.Method("post"), h.Action("/admin/login"),
				csrfField(csrfToken),
				h.Label(g.Attr("for", "password"), g.Text("Password")),
				h.Input(h.Type("password"), h.ID("password"), h.Name("password"), g.Attr("autocomplete", "current-password"), h.Required()),
				h.Button(h.Type("submit"), g.Text("Log in")),
			),
		)
	})
}

// AdminDashboard lists every post, the post editor and the media library.
func AdminDashboard(cfg SiteConfig, posts []Post, message, csrfToken string) templ.Component {
	return adminPage(cfg, func(ctx context.Context) g.Node {
		return h.Section(h.Class("admin"), h.ID("admin"), g.Attr("hx-headers", csrfHeaders(csrfToken)),
			h.Div(h.Class("admin-bar"),
				h.H1(g.Text("Dashboard")),
				h.Form(h.Method("post"), h.Action("/admin/logout"),
					csrfField(csrfToken),
					h.Button(h.Type("submit"), g.Text("Log out")),
				),
			),
			g.If(message != "", h.P(h.Class("flash"), g.Attr("role", "status"), g.Text(message))),
			postTable(posts),
			postForm(Post{Published: true}, csrfToken),
			h.Div(g.Attr("hx-get", "/admin/media"), g.Attr("hx-trigger", "load"), g.Attr("hx-swap", "outerHTML")),
		)
	})
}

// AdminPostList renders the post table with edit and delete actions.
func AdminPostList(posts []Post) templ.Component {
	return component(func(context.Context) g.Node { return postTable(posts) })
}

func postTable(posts []Post) g.Node {
	return h.Table(h.Class("admin-posts"), testID("admin-posts"),
		g.El("thead", h.Tr(
			h.Th(g.Text("Title")), h.Th(g.Text("Date")), h.Th(g.Text("Status")), h.Th(),
		)),
		g.El("tbody", g.Map(posts, func(p Post) g.Node {
			status := "draft"
			if p.Published {
				status = "published"
			}
			return h.Tr(
				h.Td(g.Text(p.Title)),
				h.Td(g.Text(p.Date)),
				h.Td(g.Text(status)),
				h.Td(
					h.Button(
						g.Attr("hx-get", "/admin/post/"+p.Slug),
						g.Attr("hx-target", "#post-form"),
						g.Attr("hx-swap", "outerHTML"),
						g.Text("Edit"),
					),
					h.Button(
						g.Attr("hx-delete", "/admin/post/"+p.Slug),
						g.Attr("hx-target", "#admin"),
						g.Attr("hx-select", "#admin"),
						g.Attr("hx-swap", "outerHTML"),
						g.Attr("hx-confirm", "Delete "+p.Title+"?"),
						g.Text("Delete"),
					),
				),
			)
		})),
	)
}

// AdminPostForm is the post editor, prefilled with post.
func AdminPostForm(post Post, csrfToken string) templ.Component {
	return component(func(context.Context) g.Node { return postForm(post, csrfToken) })
}

func postForm(post Post, csrfToken string) g.Node {
	input := func(name, label, value string) g.Node {
		return g.Group{
			h.Label(g.Attr("for", name), g.Text(label)),
			h.Input(h.Type("text"), h.ID(name), h.Name(name), h.Value(value)),
		}
	}
	return h.Form(h.ID("post-form"), h.Class("post-form"), h.Method("post"), h.Action("/admin/save"),
		csrfField(csrfToken),
		input("title", "Title", post.Title),
		input("slug", "Slug", post.Slug),
		input("date", "Date (YYYY-MM-DD)", post.Date),
		input("tags", "Tags", JoinTags(post.Tags)),
		input("summary", "Summary", post.Summary),
		h.Label(g.Attr("for", "content"), g.Text("Content (Markdown)")),
		h.Textarea(h.ID("content"), h.Name("content"), g.Attr("rows", "16"), g.Text(post.Content)),
		h.Label(h.Class("checkbox"),
			h.Input(h.Type("checkbox"), h.Name("published"), h.Value("1"), g.If(post.Published, h.Checked())),
			g.Text(" Published"),
		),
		h.Button(h.Type("submit"), g.Text("Save")),
	)
}

// AdminMedia lists uploaded card images with an upload form.
func AdminMedia(items []MediaItem, csrfToken string) templ.Component {
	return component(func(context.Context) g.Node {
		return h.Div(h.ID("media"), h.Class("admin-media"), testID("admin-media"),
			h.H2(g.Text("Media")),
			h.Form(
				g.Attr("hx-post", "/admin/media/upload"),
				g.Attr("hx-encoding", "multipart/form-data"),
				g.Attr("hx-target", "#media"),
				g.Attr("hx-swap", "outerHTML"),
				csrfField(csrfToken),
				h.Input(h.Type("file"), h.Name("image"), g.Attr("accept", "image/jpeg,image/png,image/gif"), h.Required()),
				h.Button(h.Type("submit"), g.Text("Upload")),
			),
			g.If(len(items) == 0, h.P(h.Class("empty-state"), g.Text("No images yet."))),
			h.Ul(h.Class("media-list"),
				g.Map(items, func(it MediaItem) g.Node {
					return h.Li(
						h.Img(
							g.Attr("loading", "lazy"),
							h.Src(it.URL),
							h.Alt(it.OriginalName),
							g.Attr("width", strconv.Itoa(it.Width)),
							g.Attr("height", strconv.Itoa(it.Height)),
						),
						h.Code(g.Text(it.URL)),
						h.Button(
							g.Attr("hx-delete", "/admin/media/"+it.Filename),
							g.Attr("hx-target", "#media"),
							g.Attr("hx-swap", "outerHTML"),
							g.Attr("hx-confirm", "Delete "+it.Filename+"?"),
							g.Text("Delete"),
						),
					)
				}),
			),
		)
	})
}
