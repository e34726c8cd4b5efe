// Package manifest loads block types declared in HCL or YAML files: a schema
// plus a save template, registered without any Go code.
package manifest

import (
	"fmt"
	"slices"

	"github.com/grahms/blockweaver"
	"golang.org/x/net/html"
)

// Definition is the format-agnostic form of one declared block.
type Definition struct {
	Name        string         `yaml:"name"`
	Title       string         `yaml:"title"`
	Icon        string         `yaml:"icon"`
	Category    string         `yaml:"category"`
	Description string         `yaml:"description"`
	Template    string         `yaml:"template"`
	Align       []string       `yaml:"align"`
	Attributes  []AttributeDef `yaml:"attributes"`
	File        string         `yaml:"-"`
}

// AttributeDef declares one attribute. Type is a kind name as accepted by
// blockweaver.ParseKind.
type AttributeDef struct {
	Name       string         `yaml:"name"`
	Type       string         `yaml:"type"`
	Enum       []string       `yaml:"enum"`
	Source     *SourceDef     `yaml:"source"`
	Default    any            `yaml:"default"`
	Attributes []AttributeDef `yaml:"attributes"`
}

// SourceDef names a source descriptor: attr, children, text, html, meta or
// query.
type SourceDef struct {
	Type      string `yaml:"type"`
	Selector  string `yaml:"selector"`
	Attribute string `yaml:"attribute"`
	Key       string `yaml:"key"`
}

// BlockType builds the registrable block type. The save function renders a
// copy of the template; the source writes fill in the values.
func (d Definition) BlockType() (blockweaver.BlockType, error) {
	template, err := blockweaver.ParseElement(d.Template)
	if err != nil {
		return blockweaver.BlockType{}, fmt.Errorf("block %q: template: %w", d.Name, err)
	}

	schema, err := buildSchema(d.Attributes)
	if err != nil {
		return blockweaver.BlockType{}, fmt.Errorf("block %q: %w", d.Name, err)
	}

	bt := blockweaver.BlockType{
		Title:       d.Title,
		Description: d.Description,
		Icon:        d.Icon,
		Category:    d.Category,
		Attributes:  schema,
		Edit:        genericEdit(schema, len(d.Align) > 0),
		Save: func(blockweaver.SaveProps) *html.Node {
			return cloneNode(template)
		},
	}
	if len(d.Align) > 0 {
		if _, ok := schema.Lookup("align"); !ok {
			bt.Attributes = append(bt.Attributes, blockweaver.AttributeSpec{Name: "align", Kind: blockweaver.KindString})
		}
		bt.WrapperProps = blockweaver.AlignmentWrapperProps(d.Align...)
	}
	return bt, nil
}

func buildSchema(defs []AttributeDef) (blockweaver.Schema, error) {
	schema := make(blockweaver.Schema, 0, len(defs))
	for _, def := range defs {
		kind, err := blockweaver.ParseKind(def.Type)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", def.Name, err)
		}
		spec := blockweaver.AttributeSpec{
			Name:    def.Name,
			Kind:    kind,
			Default: def.Default,
			Enum:    slices.Clone(def.Enum),
		}
		if def.Source != nil {
			src, err := buildSource(*def.Source, def.Attributes)
			if err != nil {
				return nil, fmt.Errorf("attribute %q: %w", def.Name, err)
			}
			spec.Source = src
		}
		schema = append(schema, spec)
	}
	return schema, nil
}

func buildSource(def SourceDef, nested []AttributeDef) (blockweaver.Source, error) {
	switch def.Type {
	case "attr", "attribute":
		return blockweaver.AttrSource(def.Selector, def.Attribute), nil
	case "children":
		return blockweaver.ChildrenSource(def.Selector), nil
	case "text":
		return blockweaver.TextSource(def.Selector), nil
	case "html":
		return blockweaver.HTMLSource(def.Selector), nil
	case "meta":
		return blockweaver.MetaSource(def.Key), nil
	case "query":
		sub, err := buildSchema(nested)
		if err != nil {
			return blockweaver.Source{}, err
		}
		return blockweaver.QuerySource(def.Selector, sub), nil
	}
	return blockweaver.Source{}, fmt.Errorf("unknown source %q", def.Type)
}

func cloneNode(n *html.Node) *html.Node {
	c := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
		Attr:      slices.Clone(n.Attr),
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		c.AppendChild(cloneNode(child))
	}
	return c
}

// Register adds every definition to reg.
func Register(reg *blockweaver.Registry, defs []Definition) error {
	for _, d := range defs {
		bt, err := d.BlockType()
		if err != nil {
			return err
		}
		if err := reg.Register(d.Name, bt); err != nil {
			if d.File != "" {
				return fmt.Errorf("%s: %w", d.File, err)
			}
			return err
		}
	}
	return nil
}
