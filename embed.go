package skillsite

import "embed"

// EmbeddedAssets holds the site stylesheet served at /public/site.css.
//
//go:embed embedded/site.css
var EmbeddedAssets embed.FS
