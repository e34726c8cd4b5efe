package blockweaver

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var bodyContext = &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}

// parseFragment parses markup as body content and hangs the resulting nodes
// under a detached document node. The HTML parser recovers from any input, so
// only reader failures could surface here.
func parseFragment(markup string) *html.Node {
	root := &html.Node{Type: html.DocumentNode}
	nodes, err := html.ParseFragment(strings.NewReader(markup), bodyContext)
	if err != nil {
		return root
	}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	return root
}

// renderChildren renders every child of root, which is how fragments are
// turned back into markup.
func renderChildren(root *html.Node) string {
	var buf bytes.Buffer
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		_ = html.Render(&buf, c)
	}
	return buf.String()
}

// ParseElement parses markup holding exactly one root element, such as a
// save template.
func ParseElement(markup string) (*html.Node, error) {
	root := parseFragment(markup)
	var el *html.Node
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.ElementNode:
			if el != nil {
				return nil, fmt.Errorf("markup has more than one root element")
			}
			el = c
		case html.TextNode:
			if strings.TrimSpace(c.Data) != "" {
				return nil, fmt.Errorf("markup has text outside the root element")
			}
		}
	}
	if el == nil {
		return nil, fmt.Errorf("markup has no root element")
	}
	root.RemoveChild(el)
	return el, nil
}

// El builds a detached element node. Attributes keep the given order, which
// is the order they are rendered in.
func El(tag string, attrs []html.Attribute, children ...*html.Node) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
		Attr:     slices.Clone(attrs),
	}
	for _, c := range children {
		if c != nil {
			n.AppendChild(c)
		}
	}
	return n
}

func TextNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// Attr is shorthand for building attribute lists; pairs with an empty value
// are skipped, matching how unset props are left out of rendered markup.
func Attr(kv ...string) []html.Attribute {
	attrs := make([]html.Attribute, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		if kv[i+1] == "" {
			continue
		}
		attrs = append(attrs, html.Attribute{Key: kv[i], Val: kv[i+1]})
	}
	return attrs
}

// ClassNames joins the non-empty class names.
func ClassNames(names ...string) string {
	return strings.Join(slices.DeleteFunc(slices.Clone(names), func(s string) bool { return s == "" }), " ")
}

func attrValue(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func removeAttr(n *html.Node, key string) {
	n.Attr = slices.DeleteFunc(n.Attr, func(a html.Attribute) bool {
		return a.Namespace == "" && a.Key == key
	})
}

func replaceChildren(n *html.Node, children ...*html.Node) {
	for c := n.FirstChild; c != nil; c = n.FirstChild {
		n.RemoveChild(c)
	}
	for _, c := range children {
		n.AppendChild(c)
	}
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	iterNodes(n, func(c *html.Node) bool {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
		return false
	})
	return sb.String()
}

func innerHTML(n *html.Node) string {
	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		_ = html.Render(&buf, c)
	}
	return buf.String()
}

// iterNodes walks n depth first; returning true from f skips the subtree.
func iterNodes(n *html.Node, f func(child *html.Node) bool) {
	if f(n) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		iterNodes(c, f)
	}
}

// firstElement returns the first element child of n.
func firstElement(n *html.Node) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return c
		}
	}
	return nil
}
