package manifest

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// hclRoot is the top level of a manifest file: one or more block blocks.
//
//	block "acme/notice" {
//	  title    = "Notice"
//	  category = "common"
//	  template = "<div class=\"notice\"><p></p></div>"
//
//	  attribute "message" {
//	    type   = array
//	    source = children("p")
//	  }
//	  attribute "tone" {
//	    type    = enum("info", "warning")
//	    default = "info"
//	  }
//	}
type hclRoot struct {
	Blocks []*hclBlock `hcl:"block,block"`
}

type hclBlock struct {
	Name        string          `hcl:"name,label"`
	Title       string          `hcl:"title,optional"`
	Icon        string          `hcl:"icon,optional"`
	Category    string          `hcl:"category,optional"`
	Description string          `hcl:"description,optional"`
	Template    string          `hcl:"template"`
	Align       []string        `hcl:"align,optional"`
	Attributes  []*hclAttribute `hcl:"attribute,block"`
}

type hclAttribute struct {
	Name       string          `hcl:"name,label"`
	Type       hcl.Expression  `hcl:"type"`
	Source     *hcl.Attribute  `hcl:"source,optional"`
	Default    *hcl.Attribute  `hcl:"default,optional"`
	Attributes []*hclAttribute `hcl:"attribute,block"`
}

// ParseHCL decodes the block definitions in src.
func ParseHCL(src []byte, filename string) ([]Definition, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}
	return decodeHCLFile(file, filename)
}

// LoadHCLFile reads and decodes one manifest file.
func LoadHCLFile(path string) ([]Definition, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}
	return decodeHCLFile(file, path)
}

func decodeHCLFile(file *hcl.File, filename string) ([]Definition, error) {
	var root hclRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode block definitions in %s: %w", filename, diags)
	}

	var allDiags hcl.Diagnostics
	defs := make([]Definition, 0, len(root.Blocks))
	for _, b := range root.Blocks {
		attrs, diags := decodeHCLAttributes(b.Attributes)
		allDiags = append(allDiags, diags...)
		defs = append(defs, Definition{
			Name:        b.Name,
			Title:       b.Title,
			Icon:        b.Icon,
			Category:    b.Category,
			Description: b.Description,
			Template:    b.Template,
			Align:       b.Align,
			Attributes:  attrs,
			File:        filename,
		})
	}
	if allDiags.HasErrors() {
		return nil, fmt.Errorf("invalid block definitions in %s: %w", filename, allDiags)
	}
	return defs, nil
}

func decodeHCLAttributes(attrs []*hclAttribute) ([]AttributeDef, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	out := make([]AttributeDef, 0, len(attrs))
	for _, a := range attrs {
		def := AttributeDef{Name: a.Name}

		var typeDiags hcl.Diagnostics
		def.Type, def.Enum, typeDiags = decodeType(a.Type)
		diags = append(diags, typeDiags...)

		if a.Source != nil {
			src, srcDiags := decodeSource(a.Source.Expr)
			diags = append(diags, srcDiags...)
			def.Source = src
		}

		if a.Default != nil {
			v, valDiags := a.Default.Expr.Value(nil)
			diags = append(diags, valDiags...)
			if !valDiags.HasErrors() {
				goValue, err := ctyToGo(v)
				if err != nil {
					diags = append(diags, &hcl.Diagnostic{
						Severity: hcl.DiagError,
						Summary:  "Unsupported default value",
						Detail:   err.Error(),
						Subject:  a.Default.Expr.Range().Ptr(),
					})
				}
				def.Default = goValue
			}
		}

		nested, nestedDiags := decodeHCLAttributes(a.Attributes)
		diags = append(diags, nestedDiags...)
		def.Attributes = nested

		out = append(out, def)
	}
	return out, diags
}

// decodeType reads a type keyword such as string, or enum("a", "b").
func decodeType(expr hcl.Expression) (string, []string, hcl.Diagnostics) {
	if call, callDiags := hcl.ExprCall(expr); !callDiags.HasErrors() {
		if call.Name != "enum" {
			return "", nil, hcl.Diagnostics{{
				Severity: hcl.DiagError,
				Summary:  "Unsupported type",
				Detail:   fmt.Sprintf("%s(...) is not a type; only enum takes arguments.", call.Name),
				Subject:  call.NameRange.Ptr(),
			}}
		}
		values, diags := stringArgs(call.Arguments)
		return "enum", values, diags
	}

	traversal, diags := hcl.AbsTraversalForExpr(expr)
	if diags.HasErrors() || len(traversal) != 1 {
		return "", nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid type specification",
			Detail:   "The 'type' attribute must be a keyword like 'string', 'number', 'boolean', 'array' or 'query', or enum(...).",
			Subject:  expr.Range().Ptr(),
		}}
	}
	name := traversal.RootName()
	if name == "bool" {
		name = "boolean"
	}
	return name, nil, nil
}

var sourceArity = map[string][2]int{
	"attr":     {2, 2},
	"children": {0, 1},
	"text":     {0, 1},
	"html":     {0, 1},
	"meta":     {1, 1},
	"query":    {0, 1},
}

// decodeSource reads a source call such as attr("a", "href").
func decodeSource(expr hcl.Expression) (*SourceDef, hcl.Diagnostics) {
	call, diags := hcl.ExprCall(expr)
	if diags.HasErrors() {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid source",
			Detail:   `A source is a call like attr("a", "href") or children("p").`,
			Subject:  expr.Range().Ptr(),
		}}
	}
	arity, ok := sourceArity[call.Name]
	if !ok {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Unknown source",
			Detail:   fmt.Sprintf("%q is not a source; use attr, children, text, html, meta or query.", call.Name),
			Subject:  call.NameRange.Ptr(),
		}}
	}
	if n := len(call.Arguments); n < arity[0] || n > arity[1] {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Wrong number of source arguments",
			Detail:   fmt.Sprintf("%s takes %d to %d arguments, got %d.", call.Name, arity[0], arity[1], n),
			Subject:  call.ArgsRange.Ptr(),
		}}
	}

	args, diags := stringArgs(call.Arguments)
	if diags.HasErrors() {
		return nil, diags
	}
	src := &SourceDef{Type: call.Name}
	switch call.Name {
	case "attr":
		src.Selector, src.Attribute = args[0], args[1]
	case "meta":
		src.Key = args[0]
	default:
		if len(args) == 1 {
			src.Selector = args[0]
		}
	}
	return src, nil
}

func stringArgs(exprs []hcl.Expression) ([]string, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	out := make([]string, 0, len(exprs))
	for _, e := range exprs {
		var s string
		diags = append(diags, gohcl.DecodeExpression(e, nil, &s)...)
		out = append(out, s)
	}
	return out, diags
}

// ctyToGo converts a literal default to the Go value coercion expects.
func ctyToGo(v cty.Value) (any, error) {
	if v.IsNull() {
		return nil, nil
	}
	if !v.IsWhollyKnown() {
		return nil, fmt.Errorf("default must be a literal value")
	}

	ty := v.Type()
	switch {
	case ty == cty.String:
		var s string
		err := gocty.FromCtyValue(v, &s)
		return s, err
	case ty == cty.Number:
		var f float64
		err := gocty.FromCtyValue(v, &f)
		return f, err
	case ty == cty.Bool:
		var b bool
		err := gocty.FromCtyValue(v, &b)
		return b, err
	case ty.IsTupleType() || ty.IsListType():
		list, err := convert.Convert(v, cty.List(cty.String))
		if err != nil {
			return nil, fmt.Errorf("list defaults must hold strings: %w", err)
		}
		var ss []string
		err = gocty.FromCtyValue(list, &ss)
		return ss, err
	}
	return nil, fmt.Errorf("unsupported default of type %s", ty.FriendlyName())
}
