package card

import (
	"net/url"
	"strconv"
	"strings"
)

// Declaration is one inline CSS property.
type Declaration struct {
	Property string
	Value    string
}

// Declarations is an ordered inline style.
type Declarations []Declaration

// sizes builds declarations from property/value pairs. Empty values and
// values that are not a single CSS size are dropped, so an absent or broken
// override never reaches the inline style.
func sizes(pairs ...string) Declarations {
	var d Declarations
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" || !ValidSize(pairs[i+1]) {
			continue
		}
		d = append(d, Declaration{Property: pairs[i], Value: normalizeSize(pairs[i+1])})
	}
	return d
}

// Get returns the value of property p.
func (d Declarations) Get(p string) (string, bool) {
	for _, decl := range d {
		if decl.Property == p {
			return decl.Value, true
		}
	}
	return "", false
}

// String renders the declarations as a style attribute value.
func (d Declarations) String() string {
	parts := make([]string, len(d))
	for i, decl := range d {
		parts[i] = decl.Property + ": " + decl.Value
	}
	return strings.Join(parts, "; ")
}

// ResyncEvent is fired on a freshly swapped card whose hover state no
// longer matches the pointer; both triggers listen for it.
const ResyncEvent = "card-resync"

const (
	triggerEnter = "mouseenter, " + ResyncEvent
	triggerLeave = "mouseleave, " + ResyncEvent
)

// View is the resolved visual state of a card: what one render shows for a
// given configuration and hover flag.
type View struct {
	ID      string
	Variant Variant
	Hovered bool

	// Interactive marks the container clickable. Always true for icon
	// cards; true for photo cards only when a hover image exists.
	Interactive bool

	// Background is the image behind a photo card, Icon the image shown on
	// an icon card.
	Background string
	Icon       string

	Title    string
	Subtitle string
	// TextHidden hides the photo card title and subtitle while its hover
	// image is showing. The elements stay in the tree.
	TextHidden bool

	Href string

	// Next is the fragment URL that renders the opposite hover state and
	// Trigger the htmx trigger that requests it: the pointer event that ends
	// the current state, or ResyncEvent when the pointer already did so
	// while the fragment was in flight. Both are empty for cards that
	// have nothing to swap.
	Next    string
	Trigger string

	ContainerStyle Declarations
	ContentStyle   Declarations
	TitleStyle     Declarations
	SubtitleStyle  Declarations
	IconStyle      Declarations
}

// Empty reports whether the view renders nothing at all.
func (v View) Empty() bool {
	return !v.Variant.Valid()
}

// View resolves the card's current state.
func (c *Card) View() View {
	cfg := c.Config
	st := cfg.Style
	v := View{
		ID:             c.ID,
		Variant:        cfg.Variant,
		Hovered:        c.hovered,
		Title:          cfg.Title,
		Subtitle:       cfg.Subtitle,
		Href:           cfg.Href,
		ContainerStyle: sizes("height", st.Height, "width", st.Width),
		TitleStyle:     sizes("font-size", st.TitleSize),
	}

	switch cfg.Variant {
	case PhotoOverlay:
		v.Interactive = cfg.HoverImage != ""
		v.Background = cfg.BackgroundImage
		if c.hovered && cfg.HoverImage != "" {
			v.Background = cfg.HoverImage
			v.TextHidden = true
		}
		v.ContentStyle = sizes("margin-top", st.TitleOffset)
		v.SubtitleStyle = sizes("font-size", st.SubtitleSize)
	case IconOverlay:
		v.Interactive = true
		v.Icon = cfg.Icon
		if c.hovered {
			v.Icon = cfg.HoverIcon
		}
		v.IconStyle = sizes("height", st.IconSize, "width", st.IconSize)
	default:
		// Unknown variants render nothing.
		return View{ID: c.ID, Variant: cfg.Variant}
	}

	if v.Interactive && c.Endpoint != "" && c.ID != "" {
		v.Next = c.Endpoint + url.PathEscape(c.ID) + "?hover=" + strconv.FormatBool(!c.hovered)
		v.Trigger = triggerEnter
		if c.hovered {
			v.Trigger = triggerLeave
		}
	}
	return v
}
