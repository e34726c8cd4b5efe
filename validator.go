package blockweaver

import (
	"fmt"
	"regexp"
	"slices"

	"github.com/andybalholm/cascadia"
)

// blockNamePart is one segment of a block name. Delimiters and registration
// share it so every name a document can carry is one a block can register.
const blockNamePart = `[a-z][a-z0-9-]*`

var blockNamePattern = regexp.MustCompile(`^` + blockNamePart + `/` + blockNamePart + `$`)

// validateBlockType checks a definition before it enters the registry and
// replaces its schemas with coerced copies, so later changes to the caller's
// slices cannot reach the registry.
func validateBlockType(def *BlockType) error {
	if !blockNamePattern.MatchString(def.Name) {
		return &DefinitionError{Block: def.Name, Message: "block names must be lowercase and namespaced, like core/button"}
	}
	if def.Save == nil {
		return &DefinitionError{Block: def.Name, Message: "a save function is required"}
	}
	if def.Category == "" {
		return &DefinitionError{Block: def.Name, Message: "a category is required"}
	}

	schema, err := validateSchema(def.Name, def.Attributes, false)
	if err != nil {
		return err
	}
	def.Attributes = schema

	deprecated := make([]Deprecation, 0, len(def.Deprecated))
	for i, dep := range def.Deprecated {
		if dep.Save == nil {
			return &DefinitionError{Block: def.Name, Message: fmt.Sprintf("deprecation %d has no save function", i)}
		}
		old, err := validateSchema(def.Name, dep.Attributes, false)
		if err != nil {
			return err
		}
		dep.Attributes = old
		deprecated = append(deprecated, dep)
	}
	def.Deprecated = deprecated
	return nil
}

func validateSchema(block string, schema Schema, nested bool) (Schema, error) {
	out := make(Schema, 0, len(schema))
	seen := make(map[string]struct{}, len(schema))

	for _, spec := range schema {
		fail := func(format string, args ...any) error {
			return &DefinitionError{Block: block, Attribute: spec.Name, Message: fmt.Sprintf(format, args...)}
		}

		if spec.Name == "" {
			return nil, fail("attribute name is empty")
		}
		if _, dup := seen[spec.Name]; dup {
			return nil, fail("attribute is declared twice")
		}
		seen[spec.Name] = struct{}{}

		if _, ok := kindNames[spec.Kind]; !ok {
			return nil, fail("unknown kind %d", int(spec.Kind))
		}
		if spec.Kind == KindEnum && len(spec.Enum) == 0 {
			return nil, fail("enum attributes need at least one allowed value")
		}
		if spec.Kind == KindQuery && spec.Source.Type != SourceQuery {
			return nil, fail("query attributes need a query source")
		}

		src := spec.Source
		switch src.Type {
		case SourceNone:
			if nested {
				return nil, fail("attributes inside a query need a markup source")
			}
		case SourceAttribute, SourceChildren, SourceText, SourceHTML:
			if src.Type == SourceAttribute && src.Attribute == "" {
				return nil, fail("attribute source names no attribute")
			}
			if err := compileSelector(src.Selector); err != nil {
				return nil, fail("invalid selector %q: %v", src.Selector, err)
			}
		case SourceMeta:
			if src.Key == "" {
				return nil, fail("meta source has no key")
			}
			if nested {
				return nil, fail("meta sources cannot be nested in a query")
			}
		case SourceQuery:
			if spec.Kind != KindQuery {
				return nil, fail("query sources produce kind query, not %s", spec.Kind)
			}
			if len(src.Schema) == 0 {
				return nil, fail("query source has an empty schema")
			}
			if err := compileSelector(src.Selector); err != nil {
				return nil, fail("invalid selector %q: %v", src.Selector, err)
			}
			sub, err := validateSchema(block, src.Schema, true)
			if err != nil {
				return nil, err
			}
			spec.Source.Schema = sub
		default:
			return nil, fail("unknown source type %d", int(src.Type))
		}

		if spec.Default != nil {
			v, ok := coerce(spec, spec.Default)
			if !ok {
				return nil, fail("default %#v is not a valid %s", spec.Default, spec.Kind)
			}
			spec.Default = v
		}
		spec.Enum = slices.Clone(spec.Enum)
		out = append(out, spec)
	}
	return out, nil
}

func compileSelector(sel string) error {
	if sel == "" {
		return nil
	}
	_, err := cascadia.Compile(sel)
	return err
}
