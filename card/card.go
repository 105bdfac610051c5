// Package card renders the hoverable content cards shown on the site pages
// and checks card configurations for missing or unknown attributes.
//
// Two variants exist. An icon overlay card shows a title above an icon and
// swaps to a hover icon while the pointer is over it. A photo overlay card
// shows a title and subtitle on top of a background image and, when a hover
// image is configured, reveals that image in place of the text on hover.
// Photo cards without a hover image are static.
package card

// Variant selects which shape and attribute schema a card uses.
type Variant string

const (
	IconOverlay  Variant = "iconOverlay"
	PhotoOverlay Variant = "photoOverlay"
)

// Variants lists the supported variants in display order.
var Variants = []Variant{PhotoOverlay, IconOverlay}

// Valid reports whether v is one of the supported variants.
func (v Variant) Valid() bool {
	return v == IconOverlay || v == PhotoOverlay
}

// Style holds optional per-card size overrides. An empty field leaves the
// stylesheet default in place. Values are CSS sizes; bare numbers are pixels.
type Style struct {
	Height       string
	Width        string
	TitleSize    string
	SubtitleSize string // photo overlay only
	TitleOffset  string // photo overlay only
	IconSize     string // icon overlay only
}

// Config is the immutable input of a single card render.
type Config struct {
	Variant         Variant
	Title           string
	Subtitle        string
	Icon            string
	HoverIcon       string
	BackgroundImage string
	HoverImage      string
	Href            string
	Style           Style
}

// Props returns the attributes of c that carry a value, keyed by their
// attribute names. It is the input the validator works on.
func (c Config) Props() Props {
	p := Props{}
	set := func(name, value string) {
		if value != "" {
			p[name] = value
		}
	}
	set(AttrType, string(c.Variant))
	set(AttrTitle, c.Title)
	set(AttrSubtitle, c.Subtitle)
	set(AttrIcon, c.Icon)
	set(AttrHoverIcon, c.HoverIcon)
	set(AttrBackgroundImage, c.BackgroundImage)
	set(AttrHoverImage, c.HoverImage)
	set(AttrHref, c.Href)
	return p
}

// Card is one rendered instance of a Config. It owns its hover flag; two
// cards built from the same Config never share state.
type Card struct {
	ID     string
	Config Config

	// Endpoint is the URL prefix of the fragment handler that re-renders a
	// card by ID. When set, interactive cards carry htmx triggers that fetch
	// the next hover state on pointer enter and leave.
	Endpoint string

	hovered bool
}

// New returns a card in the resting (not hovered) state.
func New(id string, cfg Config) *Card {
	return &Card{ID: id, Config: cfg}
}

// PointerEnter marks the card as hovered.
func (c *Card) PointerEnter() { c.hovered = true }

// PointerLeave clears the hover flag.
func (c *Card) PointerLeave() { c.hovered = false }

// Hovered reports the current hover state.
func (c *Card) Hovered() bool { return c.hovered }
