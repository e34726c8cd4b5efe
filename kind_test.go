package blockweaver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Coerce(t *testing.T) {
	enum := AttributeSpec{Name: "size", Kind: KindEnum, Enum: []string{"small", "large"}}

	cases := []struct {
		name string
		spec AttributeSpec
		raw  any
		want any
		ok   bool
	}{
		{"should keep strings", AttributeSpec{Kind: KindString}, "x", "x", true},
		{"should format numbers as strings", AttributeSpec{Kind: KindString}, 3.5, "3.5", true},
		{"should flatten rich text to a string", AttributeSpec{Kind: KindString}, RichText{Bold(Plain("hi"))}, "hi", true},
		{"should reject maps as strings", AttributeSpec{Kind: KindString}, map[string]any{}, nil, false},
		{"should widen ints to numbers", AttributeSpec{Kind: KindNumber}, 7, float64(7), true},
		{"should read a leading number", AttributeSpec{Kind: KindNumber}, "12px", float64(12), true},
		{"should read exponents", AttributeSpec{Kind: KindNumber}, "1.5e2", float64(150), true},
		{"should reject non-numeric strings", AttributeSpec{Kind: KindNumber}, "abc", nil, false},
		{"should treat a present attribute as true", AttributeSpec{Kind: KindBoolean}, "", true, true},
		{"should read false spelled out", AttributeSpec{Kind: KindBoolean}, "false", false, true},
		{"should read numbers as booleans", AttributeSpec{Kind: KindBoolean}, float64(0), false, true},
		{"should wrap strings as rich text", AttributeSpec{Kind: KindArray}, "Go", RichText{Plain("Go")}, true},
		{"should decode JSON rich text", AttributeSpec{Kind: KindArray}, []any{"a", map[string]any{"type": "em", "children": []any{"b"}}}, RichText{Plain("a"), Italic(Plain("b"))}, true},
		{"should accept enum members", enum, "large", "large", true},
		{"should reject enum outsiders", enum, "medium", nil, false},
		{"should accept object lists for queries", AttributeSpec{Kind: KindQuery}, []any{map[string]any{"url": "a"}}, []Attributes{{"url": "a"}}, true},
		{"should reject scalars for queries", AttributeSpec{Kind: KindQuery}, "x", nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := coerce(tc.spec, tc.raw)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func Test_ParseKind(t *testing.T) {
	for _, k := range []Kind{KindString, KindNumber, KindBoolean, KindArray, KindEnum, KindQuery} {
		got, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	_, err := ParseKind("object")
	assert.Error(t, err)
}

func Test_ResolvedDefault(t *testing.T) {
	assert.Equal(t, "", AttributeSpec{Kind: KindString}.ResolvedDefault())
	assert.Equal(t, float64(0), AttributeSpec{Kind: KindNumber}.ResolvedDefault())
	assert.Equal(t, false, AttributeSpec{Kind: KindBoolean}.ResolvedDefault())
	assert.Equal(t, RichText{}, AttributeSpec{Kind: KindArray}.ResolvedDefault())
	assert.Equal(t, []Attributes{}, AttributeSpec{Kind: KindQuery}.ResolvedDefault())
	assert.Equal(t, "small", AttributeSpec{Kind: KindEnum, Enum: []string{"small", "large"}}.ResolvedDefault())
	assert.Equal(t, "x", AttributeSpec{Kind: KindString, Default: "x"}.ResolvedDefault())
}
