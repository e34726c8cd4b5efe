package blockweaver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func Test_DimRatio(t *testing.T) {
	cases := []struct {
		ratio  float64
		bucket int
		class  string
	}{
		{0, 0, ""},
		{50, 0, ""},
		{10, 10, "has-background-dim-10"},
		{23, 20, "has-background-dim-20"},
		{25, 30, "has-background-dim-30"},
		{27, 30, "has-background-dim-30"},
		{45, 50, "has-background-dim-50"},
		{95, 100, "has-background-dim-100"},
		{100, 100, "has-background-dim-100"},
	}
	for _, tc := range cases {
		bucket, ok := DimRatioBucket(tc.ratio)
		assert.Equal(t, tc.class != "", ok, "ratio %v", tc.ratio)
		assert.Equal(t, tc.bucket, bucket, "ratio %v", tc.ratio)
		assert.Equal(t, tc.class, DimRatioToClass(tc.ratio), "ratio %v", tc.ratio)
	}
}

func Test_DimRatio_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		ratio := rapid.Float64Range(0, 100).Draw(rt, "ratio")
		bucket, ok := DimRatioBucket(ratio)
		if ratio == 0 || ratio == 50 {
			assert.False(rt, ok)
			return
		}
		assert.True(rt, ok)
		assert.Zero(rt, bucket%10)
		assert.LessOrEqual(rt, float64(bucket)-ratio, 5.0)
		assert.LessOrEqual(rt, ratio-float64(bucket), 5.0)
	})
}

func Test_AlignmentWrapperProps(t *testing.T) {
	derive := AlignmentWrapperProps("left", "right", "center")

	for _, align := range []string{"left", "right", "center"} {
		assert.Equal(t, WrapperProps{"data-align": align}, derive(Attributes{"align": align}))
	}
	for _, align := range []string{"", "none", "wide", "full", "LEFT"} {
		assert.Nil(t, derive(Attributes{"align": align}), "align %q", align)
	}
	assert.Nil(t, derive(Attributes{}))
}

func Test_FlagWrapperProps(t *testing.T) {
	derive := FlagWrapperProps("clear", "data-clear")
	assert.Equal(t, WrapperProps{"data-clear": "true"}, derive(Attributes{"clear": true}))
	assert.Nil(t, derive(Attributes{"clear": false}))
	assert.Nil(t, derive(Attributes{}))
}
