package card

import (
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// sizeFunctions are the CSS functions accepted as a size value.
var sizeFunctions = map[string]bool{
	"calc(":  true,
	"min(":   true,
	"max(":   true,
	"clamp(": true,
	"var(":   true,
}

// sizeTokens lexes v and returns its tokens without surrounding whitespace.
func sizeTokens(v string) ([]css.TokenType, [][]byte) {
	var types []css.TokenType
	var texts [][]byte
	l := css.NewLexer(parse.NewInputString(strings.TrimSpace(v)))
	for {
		tt, text := l.Next()
		if tt == css.ErrorToken {
			break
		}
		if tt == css.WhitespaceToken && len(types) == 0 {
			continue
		}
		types = append(types, tt)
		texts = append(texts, append([]byte(nil), text...))
	}
	return types, texts
}

// ValidSize reports whether v is usable as a CSS size: a length, a
// percentage, a bare number (pixels), auto, or a size function such as calc().
func ValidSize(v string) bool {
	types, texts := sizeTokens(v)
	if len(types) == 0 {
		return false
	}
	if len(types) == 1 {
		switch types[0] {
		case css.DimensionToken, css.PercentageToken, css.NumberToken:
			return true
		case css.IdentToken:
			return strings.EqualFold(string(texts[0]), "auto")
		}
		return false
	}
	if types[0] != css.FunctionToken || !sizeFunctions[strings.ToLower(string(texts[0]))] {
		return false
	}
	depth := 1
	for _, tt := range types[1:] {
		switch tt {
		case css.FunctionToken, css.LeftParenthesisToken:
			depth++
		case css.RightParenthesisToken:
			depth--
		case css.SemicolonToken, css.LeftBraceToken, css.RightBraceToken:
			return false
		}
	}
	return depth == 0 && types[len(types)-1] == css.RightParenthesisToken
}

// normalizeSize returns the value to emit for an override. Bare numbers get
// a px unit; everything else is passed through trimmed.
func normalizeSize(v string) string {
	v = strings.TrimSpace(v)
	types, _ := sizeTokens(v)
	if len(types) == 1 && types[0] == css.NumberToken {
		return v + "px"
	}
	return v
}
