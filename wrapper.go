package blockweaver

import (
	"maps"
	"math"
	"slices"
	"strconv"
)

// WrapperProps are presentation-only attributes put on the editor chrome
// around a block. They are derived on every render and never persisted.
type WrapperProps map[string]string

// WrapperPropsFunc derives wrapper props from the live attributes. It must be
// pure and must not hold on to attrs.
type WrapperPropsFunc func(attrs Attributes) WrapperProps

// AlignmentWrapperProps sets data-align when the "align" attribute is one of
// valid; any other value yields nothing.
func AlignmentWrapperProps(valid ...string) WrapperPropsFunc {
	valid = slices.Clone(valid)
	return func(attrs Attributes) WrapperProps {
		align := attrs.String("align")
		if !slices.Contains(valid, align) {
			return nil
		}
		return WrapperProps{"data-align": align}
	}
}

// FlagWrapperProps sets key to "true" while the boolean attribute is on and
// leaves it out otherwise.
func FlagWrapperProps(attr, key string) WrapperPropsFunc {
	return func(attrs Attributes) WrapperProps {
		if !attrs.Bool(attr) {
			return nil
		}
		return WrapperProps{key: "true"}
	}
}

// CombineWrapperProps merges the output of several derivers; later ones win
// on key collisions.
func CombineWrapperProps(fns ...WrapperPropsFunc) WrapperPropsFunc {
	return func(attrs Attributes) WrapperProps {
		out := WrapperProps{}
		for _, fn := range fns {
			maps.Copy(out, fn(attrs))
		}
		return out
	}
}

// DimRatioBucket snaps a dim ratio to the nearest multiple of 10. The ratios
// 0 and 50 are the untinted and stylesheet defaults and have no bucket.
func DimRatioBucket(ratio float64) (int, bool) {
	if ratio == 0 || ratio == 50 {
		return 0, false
	}
	return int(math.Floor(ratio/10+0.5)) * 10, true
}

// DimRatioToClass returns the background-dim class for ratio, or "".
func DimRatioToClass(ratio float64) string {
	bucket, ok := DimRatioBucket(ratio)
	if !ok {
		return ""
	}
	return "has-background-dim-" + strconv.Itoa(bucket)
}
