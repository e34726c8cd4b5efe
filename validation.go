package blockweaver

import (
	"fmt"
	"slices"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	"golang.org/x/net/html"
)

// Equivalent reports whether two markup fragments differ only in ways a
// browser would not show: attribute order, class order, style whitespace and
// whitespace between elements.
func Equivalent(a, b string) bool {
	return slices.Equal(canonicalLines(a), canonicalLines(b))
}

// MarkupDiff renders a line diff between the canonical forms of expected and
// actual, one node per line. It returns "" when they are equivalent.
func MarkupDiff(expected, actual string) string {
	want, got := canonicalLines(expected), canonicalLines(actual)
	if slices.Equal(want, got) {
		return ""
	}

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(joinLines(want), joinLines(got))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	for _, d := range diffs {
		prefix := "  "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line != "" {
				sb.WriteString(prefix + line)
			}
		}
	}
	return sb.String()
}

func joinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// Verify checks that markup is what the current version of the block saves
// for the attributes parsed from it. diff is empty when ok.
func (e *Engine) Verify(name, markup string, opts ...CodecOption) (ok bool, diff string, err error) {
	bt, err := e.lookup(name)
	if err != nil {
		return false, "", err
	}
	markup = e.sanitize(markup)
	attrs := e.parseWith(bt.Name, bt.Attributes, markup, collectCodecOptions(opts))
	expected := e.render(bt.Name, bt.Attributes, bt.Save, attrs, Meta{})
	if Equivalent(expected, markup) {
		return true, "", nil
	}
	return false, MarkupDiff(expected, markup), nil
}

func canonicalLines(markup string) []string {
	var lines []string
	var walk func(n *html.Node, depth int)
	walk = func(n *html.Node, depth int) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			indent := strings.Repeat("  ", depth)
			switch c.Type {
			case html.TextNode:
				if text := strings.Join(strings.Fields(c.Data), " "); text != "" {
					lines = append(lines, indent+html.EscapeString(text))
				}
			case html.CommentNode:
				lines = append(lines, indent+"<!--"+c.Data+"-->")
			case html.ElementNode:
				lines = append(lines, indent+canonicalTag(c))
				walk(c, depth+1)
				if !voidElements[c.Data] {
					lines = append(lines, indent+"</"+c.Data+">")
				}
			}
		}
	}
	walk(parseFragment(markup), 0)
	return lines
}

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true, "hr": true, "img": true,
	"input": true, "link": true, "meta": true, "source": true, "track": true, "wbr": true,
}

func canonicalTag(n *html.Node) string {
	attrs := make([]string, 0, len(n.Attr))
	for _, a := range n.Attr {
		val := a.Val
		switch a.Key {
		case "class":
			classes := strings.Fields(val)
			slices.Sort(classes)
			val = strings.Join(classes, " ")
		case "style":
			val = normalizeStyle(val)
		}
		attrs = append(attrs, fmt.Sprintf("%s=%q", a.Key, val))
	}
	slices.Sort(attrs)
	if len(attrs) == 0 {
		return "<" + n.Data + ">"
	}
	return "<" + n.Data + " " + strings.Join(attrs, " ") + ">"
}

func normalizeStyle(style string) string {
	var decls []string
	for _, decl := range strings.Split(style, ";") {
		prop, val, ok := strings.Cut(decl, ":")
		if !ok {
			if decl = strings.TrimSpace(decl); decl != "" {
				decls = append(decls, decl)
			}
			continue
		}
		decls = append(decls, strings.ToLower(strings.TrimSpace(prop))+":"+strings.Join(strings.Fields(val), " "))
	}
	slices.Sort(decls)
	return strings.Join(decls, ";")
}
