// Package skillsite serves the "Acquire Any Skill" learning site with Echo
// and templ: a header with navigation, an exact-path routing table of
// content pages built from overlay cards, notes on the Posts page and an
// optional admin area for posts and card media.
package skillsite

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/skillsite/content"
	"github.com/eringen/skillsite/views"
)

// App wires together the content catalog, store, cache, handlers and
// middleware.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Store  *Store
	Cache  *PostCache
	Site   *content.Site
	Routes []Route

	loginLimiter *LoginLimiter
	customRoutes []func(*App)
	staticDir    string
	ready        bool
}

// New creates an App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Routes:    PageRoutes(),
		staticDir: "public",
	}
	a.Echo.HideBanner = true

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Init opens the store, loads content and registers middleware and routes.
// It is idempotent; Start and Run call it.
func (a *App) Init() error {
	if a.ready {
		return nil
	}
	if err := a.Config.validate(); err != nil {
		return err
	}

	if a.Site == nil {
		site, err := content.Load(a.Config.ContentPath)
		if err != nil {
			return fmt.Errorf("skillsite: load content: %w", err)
		}
		a.Site = site
	}
	if a.Config.Dev {
		for _, p := range a.Site.Check() {
			a.Echo.Logger.Warnf("content: %s", p)
		}
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("skillsite: init store: %w", err)
	}
	a.Store = store
	a.Cache = NewPostCache(a.Store, a.Config.PostCacheTTL)

	if a.Config.AdminEnabled() {
		a.loginLimiter = NewLoginLimiter(5, time.Minute)
	}

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
	a.ready = true
	return nil
}

// Start initializes the app and serves until the server fails.
func (a *App) Start() error {
	if err := a.Init(); err != nil {
		return err
	}
	if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Run serves until ctx is cancelled, then shuts the server down gracefully.
func (a *App) Run(ctx context.Context) error {
	if err := a.Init(); err != nil {
		return err
	}
	errc := make(chan error, 1)
	go func() {
		errc <- a.Echo.Start(a.Config.Addr)
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	a.Echo.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.Echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("skillsite: shutdown: %w", err)
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Framework stylesheet; everything else under /public comes from the
	// static dir.
	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	e.GET("/public/site.css", echo.WrapHandler(http.StripPrefix("/public/", http.FileServer(http.FS(embeddedFS)))))
	e.Static("/public", a.staticDir)
	e.Static("/media", a.Config.MediaDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)

	for _, r := range a.Routes {
		e.GET(r.Path, a.pageHandler(r))
	}
	e.GET("/cards/:id", a.handleCard)

	if !a.Config.AdminEnabled() {
		return
	}
	e.GET("/admin", a.handleAdmin)
	e.POST("/admin/login", a.handleAdminLogin)
	e.POST("/admin/logout", handleAdminLogout)
	e.GET("/admin/post/:slug", a.handleAdminPost)
	e.POST("/admin/save", a.handleAdminSave)
	e.DELETE("/admin/post/:slug", a.handleAdminDelete)
	e.GET("/admin/media", a.handleMediaList)
	e.POST("/admin/media/upload", a.handleMediaUpload)
	e.DELETE("/admin/media/:filename", a.handleMediaDelete)
}

// viewConfig is the part of the configuration templates read.
func (a *App) viewConfig() views.SiteConfig {
	return views.SiteConfig{
		Name:        a.Config.Name,
		Tagline:     a.Config.Tagline,
		URL:         a.Config.URL,
		Description: a.Config.Description,
	}
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.loginLimiter != nil {
		a.loginLimiter.Close()
	}
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
