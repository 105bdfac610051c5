package skillsite

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/skillsite/views"
)

const testPassword = "correct horse"

func newTestApp(t *testing.T, admin bool) *App {
	t.Helper()
	dir := t.TempDir()
	cfg := SiteConfig{
		URL:          "https://skills.example",
		DatabasePath: filepath.Join(dir, "site.db"),
		MediaDir:     filepath.Join(dir, "media"),
	}
	if admin {
		cfg.AdminPassword = testPassword
		cfg.SessionSecret = "0123456789abcdef0123456789abcdef"
	}
	a := New(cfg)
	require.NoError(t, a.Init())
	t.Cleanup(func() { a.Close() })
	return a
}

// client replays cookies between requests the way a browser would.
type client struct {
	t       *testing.T
	app     *App
	cookies map[string]*http.Cookie
}

func newClient(t *testing.T, a *App) *client {
	return &client{t: t, app: a, cookies: map[string]*http.Cookie{}}
}

func (c *client) do(req *http.Request) *httptest.ResponseRecorder {
	c.t.Helper()
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	c.app.Echo.ServeHTTP(rec, req)
	for _, ck := range rec.Result().Cookies() {
		c.cookies[ck.Name] = ck
	}
	return rec
}

func (c *client) get(target string) *httptest.ResponseRecorder {
	return c.do(httptest.NewRequest(http.MethodGet, target, nil))
}

func (c *client) csrf() string {
	if ck, ok := c.cookies["_csrf"]; ok {
		return ck.Value
	}
	c.get("/admin")
	require.Contains(c.t, c.cookies, "_csrf")
	return c.cookies["_csrf"].Value
}

func (c *client) postForm(target string, form url.Values) *httptest.ResponseRecorder {
	token := c.csrf()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-CSRF-Token", token)
	return c.do(req)
}

func (c *client) login() {
	rec := c.postForm("/admin/login", url.Values{"password": {testPassword}})
	require.Equal(c.t, http.StatusSeeOther, rec.Code)
}

func get(t *testing.T, a *App, target string) *httptest.ResponseRecorder {
	t.Helper()
	return newClient(t, a).get(target)
}

func TestRoutingTableRendersEveryPage(t *testing.T) {
	a := newTestApp(t, false)
	tests := []struct {
		path   string
		marker string
	}{
		{"/", `data-testid="home-page"`},
		{"/about", `data-testid="about-page"`},
		{"/posts", `data-testid="posts-page"`},
		{"/spanish", `data-testid="spanish-home-page"`},
		{"/spanish/method", `data-testid="spanish-method-page"`},
		{"/spanish/resources", `data-testid="spanish-resources-page"`},
		{"/spanish/videos", `data-testid="spanish-videos-page"`},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := get(t, a, tt.path)
			require.Equal(t, http.StatusOK, rec.Code)
			body := rec.Body.String()
			assert.Contains(t, body, tt.marker)
			assert.Contains(t, body, `<div class="title-header">Acquire Any Skill</div>`)
			assert.Contains(t, body, `<div class="title-sub-header">Learn Everyday</div>`)
			assert.Equal(t, 1, strings.Count(body, `data-testid="nav-bar"`))
		})
	}
}

func TestActiveNavLink(t *testing.T) {
	a := newTestApp(t, false)
	for _, p := range []string{"/", "/about", "/posts"} {
		body := get(t, a, p).Body.String()
		assert.Contains(t, body, `<div class="nav-item active-link"><a href="`+p+`">`, p)
		assert.Equal(t, 1, strings.Count(body, "active-link"), p)
	}
	for _, p := range []string{"/spanish", "/spanish/videos"} {
		assert.NotContains(t, get(t, a, p).Body.String(), "active-link", p)
	}
}

func TestTrailingSlashRedirects(t *testing.T) {
	a := newTestApp(t, false)
	rec := get(t, a, "/about/")
	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "/about", rec.Header().Get("Location"))

	rec = get(t, a, "/spanish/method/?x=1")
	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "/spanish/method?x=1", rec.Header().Get("Location"))
}

func TestUnknownPathShowsHeaderOnly(t *testing.T) {
	a := newTestApp(t, false)
	for _, p := range []string{"/spanish/method/extra", "/Spanish", "/nope"} {
		rec := get(t, a, p)
		assert.Equal(t, http.StatusNotFound, rec.Code, p)
		body := rec.Body.String()
		assert.Contains(t, body, "title-header", p)
		assert.Contains(t, body, `<main class="page-region" id="page"></main>`, p)
	}
}

func TestHomeCards(t *testing.T) {
	a := newTestApp(t, false)
	body := get(t, a, "/").Body.String()

	assert.Equal(t, 3, strings.Count(body, `data-testid="photo-card-container"`))
	assert.Contains(t, body, `hx-get="/cards/home-spanish?hover=true"`)
	assert.Contains(t, body, `hx-trigger="mouseenter, card-resync"`)
	assert.Contains(t, body, `hx-sync="this:replace"`)
	// Cards without a hover image are static.
	assert.NotContains(t, body, `hx-get="/cards/home-guitar`)
	assert.Contains(t, body, "Coming Soon!")
}

func TestCardFragment(t *testing.T) {
	a := newTestApp(t, false)

	rec := get(t, a, "/cards/spanish-method?hover=true")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.HasPrefix(body, `<a id="card-spanish-method"`), body)
	assert.Contains(t, body, `src="/public/img/icons/method-hover.svg"`)
	assert.Contains(t, body, `hx-get="/cards/spanish-method?hover=false"`)
	assert.Contains(t, body, `hx-trigger="mouseleave, card-resync"`)
	assert.Contains(t, body, `hx-sync="this:replace"`)
	assert.NotContains(t, body, "<html")

	body = get(t, a, "/cards/spanish-method?hover=false").Body.String()
	assert.Contains(t, body, `src="/public/img/icons/method.svg"`)
	assert.Contains(t, body, `hx-trigger="mouseenter, card-resync"`)

	body = get(t, a, "/cards/home-spanish?hover=true").Body.String()
	assert.Contains(t, body, "spanish-hover.svg")
	assert.Contains(t, body, "card-title hidden")
}

func TestCardFragmentErrors(t *testing.T) {
	a := newTestApp(t, false)

	rec := get(t, a, "/cards/unknown?hover=true")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = get(t, a, "/cards/spanish-method?hover=maybe")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPostsPageTagFilter(t *testing.T) {
	a := newTestApp(t, false)
	savePosts(t, a.Store,
		views.Post{Slug: "routine", Title: "My Routine", Date: "2024-02-01", Tags: []string{"spanish"}, Content: "Every *day*.", Published: true},
		views.Post{Slug: "chords", Title: "First Chords", Date: "2024-01-01", Tags: []string{"guitar"}, Published: true},
	)
	a.Cache.Invalidate()

	body := get(t, a, "/posts").Body.String()
	assert.Contains(t, body, "My Routine")
	assert.Contains(t, body, "First Chords")
	assert.Contains(t, body, "<em>day</em>")

	body = get(t, a, "/posts?tag=spanish").Body.String()
	assert.Contains(t, body, "My Routine")
	assert.NotContains(t, body, "First Chords")
	assert.Contains(t, body, `class="tag tag-active" href="/posts?tag=spanish"`)
}

func seedPosts(t *testing.T, a *App, n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		tag := "spanish"
		if i%2 == 0 {
			tag = "guitar"
		}
		savePosts(t, a.Store, views.Post{
			Slug:      fmt.Sprintf("post-%02d", i),
			Title:     fmt.Sprintf("Post %02d", i),
			Date:      fmt.Sprintf("2024-01-%02d", i),
			Tags:      []string{tag},
			Content:   fmt.Sprintf("Entry number %d.", i),
			Published: true,
		})
	}
	a.Cache.Invalidate()
}

func TestPostsPageSearch(t *testing.T) {
	a := newTestApp(t, false)
	savePosts(t, a.Store,
		views.Post{Slug: "routine", Title: "My Routine", Date: "2024-02-01", Tags: []string{"spanish"}, Content: "Ten minutes of flashcards.", Published: true},
		views.Post{Slug: "chords", Title: "First Chords", Date: "2024-01-01", Tags: []string{"guitar"}, Content: "G, C and D.", Published: true},
	)
	a.Cache.Invalidate()

	body := get(t, a, "/posts?q=FLASHCARDS").Body.String()
	assert.Contains(t, body, "My Routine")
	assert.NotContains(t, body, "First Chords")
	assert.Contains(t, body, `1 post matching`)
	assert.Contains(t, body, `name="q" value="FLASHCARDS"`)

	body = get(t, a, "/posts?q=chords+first").Body.String()
	assert.Contains(t, body, "First Chords")
	assert.NotContains(t, body, "My Routine")

	body = get(t, a, "/posts?q=flashcards&tag=guitar").Body.String()
	assert.Contains(t, body, "No posts match your search.")
	assert.Contains(t, body, `<input type="hidden" name="tag" value="guitar">`)
}

func TestPostsPagePagination(t *testing.T) {
	a := newTestApp(t, false)
	a.Config.PostsPerPage = 4
	seedPosts(t, a, 10)

	body := get(t, a, "/posts").Body.String()
	assert.Equal(t, 4, strings.Count(body, `<article class="post"`))
	assert.Contains(t, body, "Post 10")
	assert.NotContains(t, body, "Post 06")
	assert.Contains(t, body, `data-testid="paginator"`)
	assert.Contains(t, body, `<span class="page-number page-current" aria-current="page">1</span>`)
	assert.Contains(t, body, `<a class="page-next" rel="next" href="/posts?page=2">Next</a>`)
	assert.NotContains(t, body, "page-prev")

	body = get(t, a, "/posts?page=3").Body.String()
	assert.Equal(t, 2, strings.Count(body, `<article class="post"`))
	assert.Contains(t, body, "Post 01")
	assert.Contains(t, body, `<a class="page-prev" rel="prev" href="/posts?page=2">Previous</a>`)
	assert.NotContains(t, body, "page-next")

	// Past the end shows the last page; junk shows the first.
	assert.Contains(t, get(t, a, "/posts?page=99").Body.String(), `aria-current="page">3</span>`)
	assert.Contains(t, get(t, a, "/posts?page=abc").Body.String(), `aria-current="page">1</span>`)

	body = get(t, a, "/posts?tag=spanish").Body.String()
	assert.Equal(t, 4, strings.Count(body, `<article class="post"`))
	assert.Contains(t, body, `href="/posts?page=2&amp;tag=spanish"`)
}

func TestPostsPageSort(t *testing.T) {
	a := newTestApp(t, false)
	seedPosts(t, a, 3)

	body := get(t, a, "/posts").Body.String()
	assert.Less(t, strings.Index(body, "Post 03"), strings.Index(body, "Post 01"))
	assert.Contains(t, body, `<option value="newest" selected>Newest first</option>`)

	body = get(t, a, "/posts?sort=oldest").Body.String()
	assert.Less(t, strings.Index(body, "Post 01"), strings.Index(body, "Post 03"))
	assert.Contains(t, body, `<option value="oldest" selected>Oldest first</option>`)

	body = get(t, a, "/posts?sort=bogus").Body.String()
	assert.Less(t, strings.Index(body, "Post 03"), strings.Index(body, "Post 01"))
}

func TestPostsPageRegionRequest(t *testing.T) {
	a := newTestApp(t, false)
	seedPosts(t, a, 2)

	req := httptest.NewRequest(http.MethodGet, "/posts?q=entry", nil)
	req.Header.Set("HX-Request", "true")
	req.Header.Set("HX-Target", "page")
	rec := newClient(t, a).do(req)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.HasPrefix(body, `<section class="posts-page"`), body)
	assert.NotContains(t, body, "<html")
	assert.Contains(t, body, "2 posts matching")
	assert.Contains(t, rec.Header().Values("Vary"), "HX-Request")

	// Other htmx targets still get the whole document.
	req = httptest.NewRequest(http.MethodGet, "/posts", nil)
	req.Header.Set("HX-Request", "true")
	assert.Contains(t, newClient(t, a).do(req).Body.String(), "<html")
}

func TestFeedAndSitemap(t *testing.T) {
	a := newTestApp(t, false)
	savePosts(t, a.Store, views.Post{Slug: "routine", Title: "My Routine", Date: "2024-02-01", Tags: []string{"spanish"}, Published: true})
	a.Cache.Invalidate()

	rec := get(t, a, "/feed.xml")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/rss+xml")
	assert.Contains(t, rec.Body.String(), "<link>https://skills.example/posts#routine</link>")
	assert.Contains(t, rec.Body.String(), "<category>spanish</category>")

	rec = get(t, a, "/sitemap.xml")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	for _, r := range PageRoutes() {
		assert.Contains(t, body, "<loc>"+BuildURL("https://skills.example", r.Path)+"</loc>")
	}
	assert.Contains(t, body, "<lastmod>2024-02-01</lastmod>")
}

func TestRobots(t *testing.T) {
	body := get(t, newTestApp(t, false), "/robots.txt").Body.String()
	assert.Contains(t, body, "Sitemap: https://skills.example/sitemap.xml")
	assert.NotContains(t, body, "/admin")

	body = get(t, newTestApp(t, true), "/robots.txt").Body.String()
	assert.Contains(t, body, "Disallow: /admin")
}

func TestStaticAssets(t *testing.T) {
	a := newTestApp(t, false)
	rec := get(t, a, "/public/site.css")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), ".clickable-card")
	assert.Equal(t, "public, max-age=31536000, immutable", rec.Header().Get("Cache-Control"))

	assert.Equal(t, http.StatusOK, get(t, a, "/public/img/icons/videos.svg").Code)
	rec = get(t, a, "/public/js/cards.js")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "card-resync")
	assert.Equal(t, http.StatusOK, get(t, a, "/favicon.svg").Code)
}

func TestSecurityHeaders(t *testing.T) {
	rec := get(t, newTestApp(t, false), "/")
	assert.Contains(t, rec.Header().Get("Content-Security-Policy"), "https://unpkg.com")
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
}

func TestAdminDisabledWithoutPassword(t *testing.T) {
	a := newTestApp(t, false)
	assert.Equal(t, http.StatusNotFound, get(t, a, "/admin").Code)
}

func TestAdminRequiresSessionSecret(t *testing.T) {
	a := New(SiteConfig{AdminPassword: "x", DatabasePath: filepath.Join(t.TempDir(), "site.db")})
	assert.Error(t, a.Init())
}

func TestAdminLogin(t *testing.T) {
	a := newTestApp(t, true)
	c := newClient(t, a)

	rec := c.get("/admin")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `data-testid="admin-login"`)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	rec = c.postForm("/admin/login", url.Values{"password": {"wrong"}})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Wrong password.")

	c.login()
	rec = c.get("/admin")
	assert.Contains(t, rec.Body.String(), "Dashboard")
}

func TestAdminLoginRequiresCSRF(t *testing.T) {
	a := newTestApp(t, true)
	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader("password=x"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminLoginRateLimited(t *testing.T) {
	a := newTestApp(t, true)
	c := newClient(t, a)
	for i := 0; i < 5; i++ {
		rec := c.postForm("/admin/login", url.Values{"password": {"wrong"}})
		require.Equal(t, http.StatusUnauthorized, rec.Code, "attempt %d", i+1)
	}
	rec := c.postForm("/admin/login", url.Values{"password": {testPassword}})
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestAdminSaveAndDeletePost(t *testing.T) {
	a := newTestApp(t, true)
	c := newClient(t, a)
	c.login()

	rec := c.postForm("/admin/save", url.Values{
		"title":     {"Week One!"},
		"date":      {"2024-03-01"},
		"tags":      {"Spanish, , routine"},
		"content":   {"Hola"},
		"published": {"1"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `role="status">saved</p>`)

	post, err := a.Store.GetPost("week-one")
	require.NoError(t, err)
	assert.Equal(t, []string{"spanish", "routine"}, post.Tags)
	assert.Contains(t, get(t, a, "/posts").Body.String(), "Week One!")

	rec = c.get("/admin/post/week-one")
	assert.Contains(t, rec.Body.String(), `name="slug" value="week-one"`)
	assert.Equal(t, http.StatusNotFound, c.get("/admin/post/missing").Code)

	rec = c.postForm("/admin/save", url.Values{"title": {"Bad"}, "date": {"03/01/2024"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), "Invalid+date")

	req := httptest.NewRequest(http.MethodDelete, "/admin/post/week-one", nil)
	req.Header.Set("X-CSRF-Token", c.csrf())
	rec = c.do(req)
	require.Equal(t, http.StatusOK, rec.Code)
	_, err = a.Store.GetPostAny("week-one")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAdminRoutesRequireLogin(t *testing.T) {
	a := newTestApp(t, true)
	c := newClient(t, a)
	rec := c.get("/admin/media")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin", rec.Header().Get("Location"))
}

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x += 7 {
		img.Set(x, h/2, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func (c *client) upload(name string, data []byte) *httptest.ResponseRecorder {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("image", name)
	require.NoError(c.t, err)
	_, err = fw.Write(data)
	require.NoError(c.t, err)
	require.NoError(c.t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/admin/media/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("X-CSRF-Token", c.csrf())
	return c.do(req)
}

func TestMediaUploadResizes(t *testing.T) {
	a := newTestApp(t, true)
	c := newClient(t, a)
	c.login()

	rec := c.upload("Spanish Hover.png", testPNG(t, 1600, 800))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `src="/media/spanish-hover.jpg"`)

	f, err := os.Open(filepath.Join(a.Config.MediaDir, "spanish-hover.jpg"))
	require.NoError(t, err)
	defer f.Close()
	cfg, err := jpeg.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 1200, cfg.Width)
	assert.Equal(t, 600, cfg.Height)

	rec = c.upload("Spanish Hover.png", testPNG(t, 10, 10))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `src="/media/spanish-hover-2.jpg"`)

	assert.Equal(t, http.StatusOK, get(t, a, "/media/spanish-hover.jpg").Code)

	req := httptest.NewRequest(http.MethodDelete, "/admin/media/spanish-hover.jpg", nil)
	req.Header.Set("X-CSRF-Token", c.csrf())
	rec = c.do(req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), `src="/media/spanish-hover.jpg"`)
	_, err = os.Stat(filepath.Join(a.Config.MediaDir, "spanish-hover.jpg"))
	assert.True(t, os.IsNotExist(err))
}

func TestMediaUploadRejectsNonImage(t *testing.T) {
	a := newTestApp(t, true)
	c := newClient(t, a)
	c.login()
	rec := c.upload("notes.txt", []byte("hello"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLookup(t *testing.T) {
	a := New(SiteConfig{})
	r, ok := a.Lookup("/spanish/videos")
	require.True(t, ok)
	assert.Equal(t, "Videos", r.Title)
	_, ok = a.Lookup("/spanish/videos/")
	assert.False(t, ok)
}

func TestBuildURL(t *testing.T) {
	assert.Equal(t, "https://skills.example/", BuildURL("https://skills.example"))
	assert.Equal(t, "https://skills.example/spanish/method", BuildURL("https://skills.example", "/spanish/method"))
	assert.Equal(t, "https://skills.example/", BuildURL("https://skills.example/", "/"))
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "week-one", Slugify("  Week One! "))
	assert.Equal(t, "", Slugify("!!!"))
}
