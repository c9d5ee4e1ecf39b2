package render

import (
	"io"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/spektr-org/statboard/engine"
)

// SummaryHTML writes el and its children as HTML. Style maps become
// inline CSS with kebab-case properties in sorted order. A nil element
// writes nothing.
func SummaryHTML(w io.Writer, el *engine.Element) error {
	if el == nil {
		return nil
	}
	return html.Render(w, toNode(el))
}

func toNode(el *engine.Element) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     el.Tag,
		DataAtom: atom.Lookup([]byte(el.Tag)),
	}
	if css := inlineStyle(el.Style); css != "" {
		n.Attr = append(n.Attr, html.Attribute{Key: "style", Val: css})
	}
	if el.Text != "" {
		n.AppendChild(&html.Node{Type: html.TextNode, Data: el.Text})
	}
	for _, child := range el.Children {
		n.AppendChild(toNode(child))
	}
	return n
}

func inlineStyle(style map[string]string) string {
	if len(style) == 0 {
		return ""
	}
	keys := make([]string, 0, len(style))
	for k := range style {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	decls := make([]string, len(keys))
	for i, k := range keys {
		decls[i] = kebab(k) + ": " + style[k]
	}
	return strings.Join(decls, "; ")
}

// kebab converts a camelCase style key: "borderRadius" → "border-radius".
func kebab(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsUpper(r) {
			b.WriteByte('-')
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
