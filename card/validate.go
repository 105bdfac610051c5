package card

import (
	"fmt"
	"sort"
	"strings"
)

// Attribute names, as they appear in content files and validation messages.
const (
	AttrType            = "type"
	AttrTitle           = "title"
	AttrSubtitle        = "subtitle"
	AttrIcon            = "icon"
	AttrHoverIcon       = "hoverIcon"
	AttrBackgroundImage = "backgroundImage"
	AttrHoverImage      = "hoverImage"
	AttrHref            = "href"
	AttrStyle           = "style"
)

// Props maps attribute names to their values. A key that is present with an
// empty value counts as supplied for companion checks but not as set.
type Props map[string]string

// Requirement is how a variant's schema treats one attribute.
type Requirement int

const (
	Optional Requirement = iota
	Required
	RequiredIf
)

// Field is a schema entry. Companions apply to RequiredIf only.
type Field struct {
	Requirement Requirement
	Companions  []string
}

// Schema maps every attribute a variant accepts to its requirement.
type Schema map[string]Field

var schemas = map[Variant]Schema{
	IconOverlay: {
		AttrType:      {Requirement: Required},
		AttrTitle:     {Requirement: Required},
		AttrIcon:      {Requirement: Required},
		AttrHoverIcon: {Requirement: Required},
		AttrHref:      {Requirement: Optional},
		AttrStyle:     {Requirement: Optional},
	},
	PhotoOverlay: {
		AttrType:            {Requirement: Required},
		AttrTitle:           {Requirement: Required},
		AttrBackgroundImage: {Requirement: Required},
		AttrSubtitle:        {Requirement: RequiredIf, Companions: []string{AttrHoverImage}},
		AttrHoverImage:      {Requirement: RequiredIf, Companions: []string{AttrSubtitle}},
		AttrHref:            {Requirement: Optional},
		AttrStyle:           {Requirement: Optional},
	},
}

// SchemaFor returns the schema of v, or nil for an unknown variant.
func SchemaFor(v Variant) Schema {
	return schemas[v]
}

// Classification is the verdict on one attribute for the active variant.
type Classification int

const (
	// Invalid attributes belong to no variant.
	Invalid Classification = iota
	// Ignored attributes belong to another variant and are not checked.
	Ignored
	ClassRequired
	ClassRequiredIf
	ClassOptional
)

func (c Classification) String() string {
	switch c {
	case Ignored:
		return "ignored"
	case ClassRequired:
		return "required"
	case ClassRequiredIf:
		return "required-if"
	case ClassOptional:
		return "optional"
	default:
		return "invalid"
	}
}

// Classify resolves name against the schema of the active variant.
func Classify(active Variant, name string) Classification {
	if f, ok := schemas[active][name]; ok {
		switch f.Requirement {
		case Required:
			return ClassRequired
		case RequiredIf:
			return ClassRequiredIf
		default:
			return ClassOptional
		}
	}
	for _, s := range schemas {
		if _, ok := s[name]; ok {
			return Ignored
		}
	}
	return Invalid
}

// RuleKind names a validation rule.
type RuleKind string

const (
	RuleRequired   RuleKind = "required"
	RuleRequiredIf RuleKind = "requiredIf"
)

// Rule is a validation request for one attribute. IfProps lists the
// companions of a RuleRequiredIf rule.
type Rule struct {
	Kind    RuleKind
	IfProps []string
}

// ValidationError is an advisory problem with one card attribute.
type ValidationError struct {
	Prop      string
	Component string
	msg       string
}

func (e *ValidationError) Error() string { return e.msg }

func newError(prop, component, format string, args ...any) *ValidationError {
	return &ValidationError{Prop: prop, Component: component, msg: fmt.Sprintf(format, args...)}
}

// Validate checks attribute name of props under rule and returns nil when
// there is nothing to report. The active variant is props["type"].
// Attributes of the other variant are ignored whatever the rule; unknown
// attributes are always reported.
func Validate(rule Rule, props Props, name, component string) error {
	variant := props[AttrType]

	switch Classify(Variant(variant), name) {
	case Ignored:
		return nil
	case Invalid:
		return newError(name, component, "Prop %s passed to %s is not valid.", name, component)
	}

	switch rule.Kind {
	case RuleRequired:
		if props[name] == "" {
			return newError(name, component, "Missing prop %s passed to %s %s", name, variant, component)
		}
	case RuleRequiredIf:
		if props[name] != "" {
			return nil
		}
		for _, companion := range rule.IfProps {
			if _, ok := props[companion]; !ok {
				return newError(name, component, "Missing prop %s passed to %s %s. Expected a %s or the following: %s.",
					name, variant, component, name, strings.Join(rule.IfProps, ", "))
			}
		}
	default:
		return newError(name, component, "Validation type %s is not supported.", rule.Kind)
	}
	return nil
}

// RuleFor returns the rule the schema of v applies to name. ok is false for
// optional, ignored and invalid attributes.
func RuleFor(v Variant, name string) (Rule, bool) {
	f, found := schemas[v][name]
	if !found {
		return Rule{}, false
	}
	switch f.Requirement {
	case Required:
		return Rule{Kind: RuleRequired}, true
	case RequiredIf:
		return Rule{Kind: RuleRequiredIf, IfProps: f.Companions}, true
	}
	return Rule{}, false
}

// Check runs every schema rule of the configured variant against cfg and
// checks its style overrides. The result is advisory; rendering never
// depends on it.
func Check(cfg Config, component string) []error {
	var errs []error
	if cfg.Variant == "" {
		return append(errs, newError(AttrType, component, "Missing prop %s passed to %s", AttrType, component))
	}
	if !cfg.Variant.Valid() {
		names := make([]string, len(Variants))
		for i, v := range Variants {
			names[i] = string(v)
		}
		return append(errs, newError(AttrType, component, "Invalid prop %s of value %q supplied to %s, expected one of [%s].",
			AttrType, cfg.Variant, component, strings.Join(names, ", ")))
	}

	props := cfg.Props()
	schema := schemas[cfg.Variant]
	names := make([]string, 0, len(schema))
	for name := range schema {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		rule, ok := RuleFor(cfg.Variant, name)
		if !ok {
			continue
		}
		if err := Validate(rule, props, name, component); err != nil {
			errs = append(errs, err)
		}
	}

	st := cfg.Style
	overrides := []struct{ name, value string }{
		{"height", st.Height},
		{"width", st.Width},
		{"titleSize", st.TitleSize},
		{"subtitleSize", st.SubtitleSize},
		{"titleOffset", st.TitleOffset},
		{"iconSize", st.IconSize},
	}
	for _, o := range overrides {
		if o.value != "" && !ValidSize(o.value) {
			errs = append(errs, newError(AttrStyle, component, "Invalid style override %s value %q passed to %s", o.name, o.value, component))
		}
	}
	return errs
}
