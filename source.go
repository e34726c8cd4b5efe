package blockweaver

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// SourceType tags the Source variants.
type SourceType int

const (
	SourceNone SourceType = iota
	SourceAttribute
	SourceChildren
	SourceText
	SourceHTML
	SourceMeta
	SourceQuery
)

var sourceNames = map[SourceType]string{
	SourceNone:      "none",
	SourceAttribute: "attribute",
	SourceChildren:  "children",
	SourceText:      "text",
	SourceHTML:      "html",
	SourceMeta:      "meta",
	SourceQuery:     "query",
}

func (t SourceType) String() string {
	if name, ok := sourceNames[t]; ok {
		return name
	}
	return fmt.Sprintf("SourceType(%d)", int(t))
}

// Source describes where an attribute lives in persisted markup and how it is
// written back. Only the fields relevant to Type are set; use the
// constructors below.
type Source struct {
	Type      SourceType
	Selector  string // element selector; "" is the context element itself
	Attribute string // SourceAttribute
	Key       string // SourceMeta
	Schema    Schema // SourceQuery, resolved against each matching element
}

// AttrSource reads a named attribute of the first element matching selector.
func AttrSource(selector, attribute string) Source {
	return Source{Type: SourceAttribute, Selector: selector, Attribute: attribute}
}

// ChildrenSource reads the inner markup of the first match as RichText.
func ChildrenSource(selector string) Source {
	return Source{Type: SourceChildren, Selector: selector}
}

// TextSource reads the plain text content of the first match.
func TextSource(selector string) Source {
	return Source{Type: SourceText, Selector: selector}
}

// HTMLSource reads the inner markup of the first match as a string.
func HTMLSource(selector string) Source {
	return Source{Type: SourceHTML, Selector: selector}
}

// MetaSource reads an out-of-band value independent of the markup.
func MetaSource(key string) Source {
	return Source{Type: SourceMeta, Key: key}
}

// QuerySource resolves schema against every element matching selector.
func QuerySource(selector string, schema Schema) Source {
	return Source{Type: SourceQuery, Selector: selector, Schema: schema}
}

// Meta is the out-of-band record read and written by meta sources. Serialize
// writes into the map it is given, so callers own its lifetime.
type Meta map[string]any

// extract reads the raw value of spec from ctx. found is false when the
// selector matched nothing or the attribute is absent.
func (e *Engine) extract(spec AttributeSpec, ctx *html.Node, st resolveState) (any, bool) {
	src := spec.Source
	switch src.Type {
	case SourceMeta:
		v, ok := st.meta[src.Key]
		return v, ok
	case SourceQuery:
		nodes, err := e.selectors.all(ctx, src.Selector)
		if err != nil {
			e.malformed(st.block, spec, err.Error())
			return nil, false
		}
		items := make([]Attributes, 0, len(nodes))
		for _, n := range nodes {
			items = append(items, e.resolve(src.Schema, n, resolveState{block: st.block, meta: st.meta}))
		}
		return items, true
	}

	n, err := e.selectors.first(ctx, src.Selector)
	if err != nil {
		e.malformed(st.block, spec, err.Error())
		return nil, false
	}
	if n == nil {
		return nil, false
	}

	switch src.Type {
	case SourceAttribute:
		return attrValue(n, src.Attribute)
	case SourceChildren:
		return richTextFromNodes(n.FirstChild), true
	case SourceText:
		return textContent(n), true
	case SourceHTML:
		return innerHTML(n), true
	}
	return nil, false
}

// write stores v into the save skeleton at the position spec's source names.
func (e *Engine) write(block string, spec AttributeSpec, ctx *html.Node, v any, meta Meta) {
	src := spec.Source
	switch src.Type {
	case SourceNone:
		return
	case SourceMeta:
		if meta != nil {
			meta[src.Key] = v
		}
		return
	case SourceQuery:
		e.writeQuery(block, spec, ctx, v, meta)
		return
	}

	n, err := e.selectors.first(ctx, src.Selector)
	if err != nil {
		e.malformed(block, spec, err.Error())
		return
	}
	if n == nil {
		e.malformed(block, spec, "save output has no matching element")
		return
	}

	switch src.Type {
	case SourceAttribute:
		if isDefault(spec, v) {
			removeAttr(n, src.Attribute)
			return
		}
		setAttr(n, src.Attribute, formatScalar(v))
	case SourceChildren:
		rt, ok := v.(RichText)
		if !ok {
			rt = normalize(RichText{Plain(formatScalar(v))})
		}
		if withinAnchor(n) {
			if flat, found := rt.withoutLinks(); found {
				e.malformed(block, spec, "links cannot nest inside an anchor; link marks were dropped")
				rt = flat
			}
		}
		replaceChildren(n, rt.Nodes()...)
	case SourceText:
		if s := formatScalar(v); s != "" {
			replaceChildren(n, TextNode(s))
		} else {
			replaceChildren(n)
		}
	case SourceHTML:
		nodes, err := html.ParseFragment(strings.NewReader(formatScalar(v)), n)
		if err != nil {
			e.malformed(block, spec, err.Error())
			return
		}
		replaceChildren(n, nodes...)
	}
}

// withinAnchor reports whether n is an <a> element or sits inside one.
func withinAnchor(n *html.Node) bool {
	for ; n != nil; n = n.Parent {
		if n.Type == html.ElementNode && n.Data == "a" {
			return true
		}
	}
	return false
}

func (e *Engine) writeQuery(block string, spec AttributeSpec, ctx *html.Node, v any, meta Meta) {
	src := spec.Source
	items, _ := v.([]Attributes)
	if len(items) == 0 {
		return
	}
	nodes, err := e.selectors.all(ctx, src.Selector)
	if err != nil {
		e.malformed(block, spec, err.Error())
		return
	}
	if len(nodes) < len(items) {
		e.malformed(block, spec, fmt.Sprintf("save output has %d matching elements for %d items", len(nodes), len(items)))
	}
	for i, item := range items {
		if i >= len(nodes) {
			break
		}
		for _, sub := range src.Schema {
			raw, has := item[sub.Name]
			e.write(block, sub, nodes[i], e.coerceOrDefault(block, sub, raw, has), meta)
		}
	}
}

func (e *Engine) malformed(block string, spec AttributeSpec, msg string) {
	e.report(Diagnostic{Block: block, Err: &MalformedSourceError{
		Block:     block,
		Attribute: spec.Name,
		Selector:  spec.Source.Selector,
		Message:   msg,
	}})
}
