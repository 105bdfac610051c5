package skillsite

import (
	"errors"
	"time"

	"github.com/eringen/skillsite/content"
)

// SiteConfig holds all configuration for the site.
type SiteConfig struct {
	Name        string // Header title (default "Acquire Any Skill")
	Tagline     string // Header subtitle (default "Learn Everyday")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for RSS and meta tags

	Addr         string // Listen address (default ":3000")
	DatabasePath string // SQLite path (default "data/site.db")
	ContentPath  string // Content file or directory; empty uses the embedded catalog
	MediaDir     string // Uploaded card images, served at /media (default "public/media")

	AdminPassword string // Enables /admin when set
	SessionSecret string // Session encryption secret, required with AdminPassword
	CookieSecure  bool   // Set true for HTTPS

	PostCacheTTL time.Duration // Post cache TTL (default 5min)
	PostsPerPage int           // Posts page size (default 10)
	Dev          bool          // Log card validation warnings at startup
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Acquire Any Skill"
	}
	if c.Tagline == "" {
		c.Tagline = "Learn Everyday"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/site.db"
	}
	if c.MediaDir == "" {
		c.MediaDir = "public/media"
	}
	if c.PostCacheTTL == 0 {
		c.PostCacheTTL = 5 * time.Minute
	}
	if c.PostsPerPage <= 0 {
		c.PostsPerPage = 10
	}
}

func (c SiteConfig) validate() error {
	if c.AdminPassword != "" && c.SessionSecret == "" {
		return errors.New("skillsite: SessionSecret is required when AdminPassword is set")
	}
	return nil
}

// AdminEnabled reports whether the admin area is served.
func (c SiteConfig) AdminEnabled() bool {
	return c.AdminPassword != ""
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback runs after the built-in routes are registered.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithContent uses an already loaded catalog instead of ContentPath.
func WithContent(site *content.Site) Option {
	return func(a *App) {
		a.Site = site
	}
}
