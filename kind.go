package blockweaver

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// Kind is the declared value type of an attribute.
type Kind int

const (
	KindString  Kind = iota
	KindNumber       // float64
	KindBoolean      // bool
	KindArray        // RichText
	KindEnum         // string restricted to AttributeSpec.Enum
	KindQuery        // []Attributes, one per element matched by a QuerySource
)

var kindNames = map[Kind]string{
	KindString:  "string",
	KindNumber:  "number",
	KindBoolean: "boolean",
	KindArray:   "array",
	KindEnum:    "enum",
	KindQuery:   "query",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind maps a kind name as written in manifests to a Kind.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown attribute kind %q", name)
}

// leadingNumber matches what a lenient number parse accepts: "12px" is 12.
var leadingNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// coerce converts a raw extracted or user-supplied value to the kind of spec.
// ok is false when the value cannot be represented, in which case the caller
// substitutes the resolved default.
func coerce(spec AttributeSpec, raw any) (v any, ok bool) {
	switch spec.Kind {
	case KindString:
		return coerceString(raw)
	case KindEnum:
		s, ok := coerceString(raw)
		if !ok || !slices.Contains(spec.Enum, s.(string)) {
			return nil, false
		}
		return s, true
	case KindNumber:
		return coerceNumber(raw)
	case KindBoolean:
		return coerceBool(raw)
	case KindArray:
		return coerceRichText(raw)
	case KindQuery:
		return coerceObjects(raw)
	}
	return nil, false
}

func coerceObjects(raw any) (any, bool) {
	switch v := raw.(type) {
	case []Attributes:
		return v, true
	case []map[string]any:
		out := make([]Attributes, len(v))
		for i, m := range v {
			out[i] = Attributes(m)
		}
		return out, true
	case []any:
		out := make([]Attributes, 0, len(v))
		for _, item := range v {
			switch m := item.(type) {
			case Attributes:
				out = append(out, m)
			case map[string]any:
				out = append(out, Attributes(m))
			default:
				return nil, false
			}
		}
		return out, true
	}
	return nil, false
}

func coerceString(raw any) (any, bool) {
	switch v := raw.(type) {
	case string:
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case int:
		return strconv.Itoa(v), true
	case bool:
		return strconv.FormatBool(v), true
	case RichText:
		return v.PlainText(), true
	}
	return nil, false
}

func coerceNumber(raw any) (any, bool) {
	switch v := raw.(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, false
		}
		return v, true
	case float32:
		return coerceNumber(float64(v))
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		return coerceNumber(string(v))
	case string:
		m := leadingNumber.FindString(strings.TrimSpace(v))
		if m == "" {
			return nil, false
		}
		f, err := strconv.ParseFloat(m, 64)
		if err != nil {
			return nil, false
		}
		return f, true
	}
	return nil, false
}

func coerceBool(raw any) (any, bool) {
	switch v := raw.(type) {
	case bool:
		return v, true
	case string:
		// A present markup attribute means true unless it spells false.
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "false", "0":
			return false, true
		}
		return true, true
	case float64:
		return v != 0, true
	case int:
		return v != 0, true
	}
	return nil, false
}

func coerceRichText(raw any) (any, bool) {
	switch v := raw.(type) {
	case RichText:
		return normalize(v), true
	case []Inline:
		return normalize(v), true
	case string:
		return normalize(RichText{Plain(v)}), true
	case []any, []string:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, false
		}
		var rt RichText
		if err := json.Unmarshal(data, &rt); err != nil {
			return nil, false
		}
		return normalize(rt), true
	}
	return nil, false
}

func zeroValue(k Kind) any {
	switch k {
	case KindNumber:
		return float64(0)
	case KindBoolean:
		return false
	case KindArray:
		return RichText{}
	case KindQuery:
		return []Attributes{}
	}
	return ""
}

// formatScalar renders a scalar value as a markup attribute value.
func formatScalar(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case RichText:
		return t.PlainText()
	}
	return fmt.Sprint(v)
}
