package blockweaver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

type InlineType int

const (
	InlineText InlineType = iota
	InlineBold
	InlineItalic
	InlineStrikethrough
	InlineLink
	InlineLineBreak
)

var inlineTags = map[InlineType]string{
	InlineBold:          "strong",
	InlineItalic:        "em",
	InlineStrikethrough: "del",
	InlineLink:          "a",
	InlineLineBreak:     "br",
}

func (t InlineType) String() string {
	if t == InlineText {
		return "text"
	}
	if tag, ok := inlineTags[t]; ok {
		return tag
	}
	return fmt.Sprintf("InlineType(%d)", int(t))
}

// Inline is one node of a rich text sequence: a text run, a line break, or a
// mark span wrapping further inline nodes.
type Inline struct {
	Type     InlineType
	Text     string   // text runs only
	Href     string   // links only
	Children RichText // mark spans only
}

// RichText is the value of an "array" attribute read by a children source.
type RichText []Inline

func Plain(s string) Inline { return Inline{Type: InlineText, Text: s} }

func Bold(children ...Inline) Inline { return Inline{Type: InlineBold, Children: children} }

func Italic(children ...Inline) Inline { return Inline{Type: InlineItalic, Children: children} }

func Strikethrough(children ...Inline) Inline {
	return Inline{Type: InlineStrikethrough, Children: children}
}

func Link(href string, children ...Inline) Inline {
	return Inline{Type: InlineLink, Href: href, Children: children}
}

func LineBreak() Inline { return Inline{Type: InlineLineBreak} }

// richTextFromNodes reads the sibling chain starting at first.
func richTextFromNodes(first *html.Node) RichText {
	out := RichText{}
	for n := first; n != nil; n = n.NextSibling {
		out = appendNode(out, n)
	}
	return out
}

func appendNode(out RichText, n *html.Node) RichText {
	switch n.Type {
	case html.TextNode:
		return appendText(out, n.Data)
	case html.ElementNode:
	default:
		return out
	}

	var typ InlineType
	switch n.Data {
	case "strong", "b":
		typ = InlineBold
	case "em", "i":
		typ = InlineItalic
	case "del", "s", "strike":
		typ = InlineStrikethrough
	case "a":
		typ = InlineLink
	case "br":
		return append(out, LineBreak())
	default:
		// Unsupported inline markup keeps its text but loses the element.
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			out = appendNode(out, c)
		}
		return out
	}

	children := richTextFromNodes(n.FirstChild)
	if len(children) == 0 {
		return out
	}
	in := Inline{Type: typ, Children: children}
	if typ == InlineLink {
		in.Href, _ = attrValue(n, "href")
	}
	return append(out, in)
}

func appendText(out RichText, s string) RichText {
	if s == "" {
		return out
	}
	if last := len(out) - 1; last >= 0 && out[last].Type == InlineText {
		out[last].Text += s
		return out
	}
	return append(out, Plain(s))
}

// normalize brings a hand-built or decoded sequence into the shape parsing
// produces: merged text runs, no empty spans, non-nil children.
func normalize(rt RichText) RichText {
	out := RichText{}
	for _, in := range rt {
		switch in.Type {
		case InlineText:
			out = appendText(out, in.Text)
		case InlineLineBreak:
			out = append(out, LineBreak())
		default:
			children := normalize(in.Children)
			if len(children) == 0 {
				continue
			}
			span := Inline{Type: in.Type, Children: children}
			if in.Type == InlineLink {
				span.Href = in.Href
			}
			out = append(out, span)
		}
	}
	return out
}

// withoutLinks replaces every link span by its children and reports whether
// there was one. HTML does not nest anchors, so a sequence written inside an
// <a> must not carry links of its own.
func (rt RichText) withoutLinks() (RichText, bool) {
	out := make(RichText, 0, len(rt))
	found := false
	for _, in := range rt {
		if in.Type == InlineText || in.Type == InlineLineBreak {
			out = append(out, in)
			continue
		}
		children, nested := in.Children.withoutLinks()
		found = found || nested
		if in.Type == InlineLink {
			found = true
			out = append(out, children...)
			continue
		}
		in.Children = children
		out = append(out, in)
	}
	return normalize(out), found
}

// Nodes renders the sequence as detached markup nodes.
func (rt RichText) Nodes() []*html.Node {
	nodes := make([]*html.Node, 0, len(rt))
	for _, in := range rt {
		nodes = append(nodes, in.node())
	}
	return nodes
}

func (in Inline) node() *html.Node {
	switch in.Type {
	case InlineText:
		return TextNode(in.Text)
	case InlineLineBreak:
		return El("br", nil)
	case InlineLink:
		return El("a", []html.Attribute{{Key: "href", Val: in.Href}}, in.Children.Nodes()...)
	default:
		tag, ok := inlineTags[in.Type]
		if !ok {
			return TextNode(in.Children.PlainText())
		}
		return El(tag, nil, in.Children.Nodes()...)
	}
}

// HTML renders the sequence as an inline markup string.
func (rt RichText) HTML() string {
	var buf bytes.Buffer
	for _, n := range rt.Nodes() {
		_ = html.Render(&buf, n)
	}
	return buf.String()
}

// PlainText concatenates the text runs, dropping all marks.
func (rt RichText) PlainText() string {
	var sb strings.Builder
	for _, in := range rt {
		switch in.Type {
		case InlineText:
			sb.WriteString(in.Text)
		case InlineLineBreak:
			sb.WriteString("\n")
		default:
			sb.WriteString(in.Children.PlainText())
		}
	}
	return sb.String()
}

type inlineJSON struct {
	Type     string   `json:"type"`
	Href     string   `json:"href,omitempty"`
	Children RichText `json:"children,omitempty"`
}

// MarshalJSON writes text runs as JSON strings and everything else as objects.
func (in Inline) MarshalJSON() ([]byte, error) {
	if in.Type == InlineText {
		return json.Marshal(in.Text)
	}
	tag, ok := inlineTags[in.Type]
	if !ok {
		return nil, fmt.Errorf("unknown inline type %d", int(in.Type))
	}
	return json.Marshal(inlineJSON{Type: tag, Href: in.Href, Children: in.Children})
}

func (in *Inline) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*in = Plain(s)
		return nil
	}

	var raw inlineJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for typ, tag := range inlineTags {
		if tag == raw.Type {
			*in = Inline{Type: typ, Href: raw.Href, Children: raw.Children}
			return nil
		}
	}
	return fmt.Errorf("unknown inline type %q", raw.Type)
}

// MarshalJSON keeps an empty sequence as [] rather than null.
func (rt RichText) MarshalJSON() ([]byte, error) {
	if rt == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Inline(rt))
}
