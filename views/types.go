package views

// SiteConfig holds the site-wide settings templates read.
type SiteConfig struct {
	Name        string // header title, e.g. "Acquire Any Skill"
	Tagline     string // header subtitle, e.g. "Learn Everyday"
	URL         string // canonical base URL
	Description string
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
}

// Post is a note shown on the Posts page.
type Post struct {
	Slug      string
	Title     string
	Date      string
	Tags      []string
	Summary   string
	Content   string // Markdown
	Published bool
}

// MediaItem is an uploaded image available to cards.
type MediaItem struct {
	Filename     string
	OriginalName string
	Width        int
	Height       int
	Size         int
	UploadedAt   string
	URL          string
}

// Sort orders offered on the Posts page.
const (
	SortNewest = "newest"
	SortOldest = "oldest"
	SortTitle  = "title"
)

// SortOption is one choice of the Posts sort select.
type SortOption struct {
	Value string
	Label string
}

// SortOptions lists the sort select choices; the first is the default.
var SortOptions = []SortOption{
	{Value: SortNewest, Label: "Newest first"},
	{Value: SortOldest, Label: "Oldest first"},
	{Value: SortTitle, Label: "Title"},
}

// PostFilter is the state of the Posts listing controls, read from the
// tag, q, sort and page query parameters.
type PostFilter struct {
	Tag   string
	Query string
	Sort  string
	Page  int
}
