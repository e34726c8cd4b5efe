package blockweaver

import (
	"reflect"

	"golang.org/x/net/html"
)

// AttributeSpec declares one attribute of a block type.
type AttributeSpec struct {
	Name    string
	Kind    Kind
	Source  Source   // zero value: no markup source
	Default any      // nil: the kind's empty value
	Enum    []string // allowed values for KindEnum
}

// Schema is the ordered attribute declaration of a block type.
type Schema []AttributeSpec

// Lookup finds the spec for name.
func (s Schema) Lookup(name string) (AttributeSpec, bool) {
	for _, spec := range s {
		if spec.Name == name {
			return spec, true
		}
	}
	return AttributeSpec{}, false
}

// ResolvedDefault is the value an attribute takes when nothing was found for
// it. Registration has already coerced Default, so this never fails.
func (spec AttributeSpec) ResolvedDefault() any {
	if spec.Default != nil {
		return spec.Default
	}
	if spec.Kind == KindEnum && len(spec.Enum) > 0 {
		return spec.Enum[0]
	}
	return zeroValue(spec.Kind)
}

// Defaults returns a map with every declared attribute at its default.
func (s Schema) Defaults() Attributes {
	out := make(Attributes, len(s))
	for _, spec := range s {
		out[spec.Name] = spec.ResolvedDefault()
	}
	return out
}

// resolveState carries the per-call inputs of an extraction.
type resolveState struct {
	block   string
	meta    Meta
	comment map[string]any
}

// resolve produces a value for every attribute of schema, reading sourced
// attributes from ctx and the rest from the comment attributes. Problems are
// reported as diagnostics and the default is used instead.
func (e *Engine) resolve(schema Schema, ctx *html.Node, st resolveState) Attributes {
	out := make(Attributes, len(schema))
	for _, spec := range schema {
		var (
			raw   any
			found bool
		)
		if spec.Source.Type == SourceNone {
			raw, found = st.comment[spec.Name]
		} else {
			raw, found = e.extract(spec, ctx, st)
		}
		out[spec.Name] = e.coerceOrDefault(st.block, spec, raw, found)
	}
	return out
}

func (e *Engine) coerceOrDefault(block string, spec AttributeSpec, raw any, found bool) any {
	if !found || raw == nil {
		return spec.ResolvedDefault()
	}
	v, ok := coerce(spec, raw)
	if !ok {
		e.report(Diagnostic{Block: block, Err: &CoercionError{
			Block: block, Attribute: spec.Name, Kind: spec.Kind, Value: raw,
		}})
		return spec.ResolvedDefault()
	}
	return v
}

// coercePatch coerces the declared keys of patch; undeclared keys pass
// through untouched and are simply never persisted.
func (e *Engine) coercePatch(block string, schema Schema, patch Attributes) Attributes {
	out := make(Attributes, len(patch))
	for name, raw := range patch {
		spec, ok := schema.Lookup(name)
		if !ok {
			out[name] = raw
			continue
		}
		out[name] = e.coerceOrDefault(block, spec, raw, true)
	}
	return out
}

// complete fills in every declared attribute missing from attrs.
func complete(schema Schema, attrs Attributes) Attributes {
	out := make(Attributes, len(schema))
	for k, v := range attrs {
		out[k] = v
	}
	for _, spec := range schema {
		if _, ok := out[spec.Name]; !ok {
			out[spec.Name] = spec.ResolvedDefault()
		}
	}
	return out
}

func isDefault(spec AttributeSpec, v any) bool {
	return reflect.DeepEqual(v, spec.ResolvedDefault())
}
