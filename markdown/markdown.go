// Package markdown renders the small Markdown dialect used by page intros and
// posts as a templ component.
package markdown

import (
	"bytes"
	"context"
	"html"
	"io"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

var (
	reBold        = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reItalic      = regexp.MustCompile(`\*([^*]+)\*`)
	reInlineCode  = regexp.MustCompile("`([^`]+)`")
	reLink        = regexp.MustCompile(`\[(.*?)\]\((.*?)\)(\^)?`)
	reOrderedItem = regexp.MustCompile(`^\d+\.\s`)
)

// Markdown returns a templ.Component that renders md as HTML.
func Markdown(md string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		RenderMarkdown(&buf, md)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// block is the open block element, closed by the next blank line or by a
// line that starts a different block.
type block int

const (
	blockNone block = iota
	blockPara
	blockList
	blockOrdered
	blockQuote
	blockCode
)

var closeTags = map[block]string{
	blockPara:    "</p>",
	blockList:    "</ul>",
	blockOrdered: "</ol>",
	blockQuote:   "</blockquote>",
	blockCode:    "</code></pre>",
}

type renderer struct {
	buf  *bytes.Buffer
	open block
}

func (r *renderer) close() {
	if r.open != blockNone {
		r.buf.WriteString(closeTags[r.open])
		r.open = blockNone
	}
}

// enter switches to block b, writing tag when b was not already open.
// It reports whether b was already open.
func (r *renderer) enter(b block, tag string) bool {
	if r.open == b {
		return true
	}
	r.close()
	r.buf.WriteString(tag)
	r.open = b
	return false
}

// RenderMarkdown writes the HTML representation of md to buf.
func RenderMarkdown(buf *bytes.Buffer, md string) {
	r := &renderer{buf: buf}
	for _, raw := range strings.Split(md, "\n") {
		line := strings.TrimRight(raw, "\r")

		if strings.HasPrefix(line, "```") {
			if r.open == blockCode {
				r.close()
				continue
			}
			tag := "<pre class=\"code-block\"><code>"
			if lang := strings.TrimSpace(line[3:]); lang != "" {
				tag = "<pre class=\"code-block\"><code class=\"language-" + html.EscapeString(lang) + "\">"
			}
			r.enter(blockCode, tag)
			continue
		}
		if r.open == blockCode {
			buf.WriteString(html.EscapeString(line))
			buf.WriteByte('\n')
			continue
		}

		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			r.close()
		case strings.HasPrefix(line, "---"):
			r.close()
			buf.WriteString("<hr/>")
		case strings.HasPrefix(line, "#"):
			level := len(line) - len(strings.TrimLeft(line, "#"))
			if level > 3 || !strings.HasPrefix(line[level:], " ") {
				r.paragraph(trimmed)
				continue
			}
			r.close()
			n := strconv.Itoa(level)
			buf.WriteString("<h" + n + ">" + FormatInline(strings.TrimSpace(line[level:])) + "</h" + n + ">")
		case strings.HasPrefix(line, "- "):
			r.enter(blockList, "<ul>")
			buf.WriteString("<li>" + FormatInline(strings.TrimSpace(line[2:])) + "</li>")
		case reOrderedItem.MatchString(line):
			r.enter(blockOrdered, "<ol>")
			buf.WriteString("<li>" + FormatInline(strings.TrimSpace(reOrderedItem.ReplaceAllString(line, ""))) + "</li>")
		case strings.HasPrefix(line, "> "):
			if r.enter(blockQuote, "<blockquote>") {
				buf.WriteByte(' ')
			}
			buf.WriteString(FormatInline(strings.TrimSpace(line[2:])))
		default:
			r.paragraph(trimmed)
		}
	}
	r.close()
}

func (r *renderer) paragraph(text string) {
	if r.enter(blockPara, "<p>") {
		r.buf.WriteByte(' ')
	}
	r.buf.WriteString(FormatInline(text))
}

// FormatInline applies links, inline code, bold and italic to s. Text is
// escaped first; formatting never reaches inside generated tags.
func FormatInline(s string) string {
	out := html.EscapeString(s)

	var code []string
	out = reInlineCode.ReplaceAllStringFunc(out, func(m string) string {
		code = append(code, "<code>"+reInlineCode.FindStringSubmatch(m)[1]+"</code>")
		return "\x00" + strconv.Itoa(len(code)-1) + "\x00"
	})

	out = reLink.ReplaceAllStringFunc(out, func(m string) string {
		match := reLink.FindStringSubmatch(m)
		href := SafeURL(match[2])
		if href == "" {
			return match[1]
		}
		attrs := ""
		if match[3] == "^" {
			attrs = ` target="_blank" rel="noopener noreferrer"`
		}
		return `<a href="` + href + `"` + attrs + `>` + match[1] + `</a>`
	})

	out = outsideTags(out, func(seg string) string {
		seg = reBold.ReplaceAllString(seg, "<strong>$1</strong>")
		return reItalic.ReplaceAllString(seg, "<em>$1</em>")
	})

	for i, c := range code {
		out = strings.Replace(out, "\x00"+strconv.Itoa(i)+"\x00", c, 1)
	}
	return out
}

// outsideTags applies fn to the text between HTML tags of s.
func outsideTags(s string, fn func(string) string) string {
	var b strings.Builder
	for s != "" {
		lt := strings.IndexByte(s, '<')
		if lt < 0 {
			b.WriteString(fn(s))
			break
		}
		b.WriteString(fn(s[:lt]))
		gt := strings.IndexByte(s[lt:], '>')
		if gt < 0 {
			b.WriteString(s[lt:])
			break
		}
		b.WriteString(s[lt : lt+gt+1])
		s = s[lt+gt+1:]
	}
	return b.String()
}

// SafeURL returns raw escaped for an href when it is a relative path, a
// fragment or an http(s)/mailto URL, and "" otherwise.
func SafeURL(raw string) string {
	val := strings.TrimSpace(html.UnescapeString(raw))
	if val == "" {
		return ""
	}
	if strings.HasPrefix(val, "/") || strings.HasPrefix(val, "#") {
		return html.EscapeString(val)
	}
	u, err := url.Parse(val)
	if err != nil {
		return ""
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https", "mailto":
		return html.EscapeString(val)
	}
	return ""
}
