package blockweaver

import "maps"

// Attributes is the attribute map of one block instance. Values are string,
// float64, bool, RichText or []Attributes depending on the declared kind.
//
// An Attributes value is never modified after it is handed out; updates go
// through Merge, which returns a new map.
type Attributes map[string]any

// Merge returns a new map holding a's entries overridden by patch.
func (a Attributes) Merge(patch Attributes) Attributes {
	out := make(Attributes, len(a)+len(patch))
	maps.Copy(out, a)
	maps.Copy(out, patch)
	return out
}

// String returns the named string attribute or "".
func (a Attributes) String(name string) string {
	s, _ := a[name].(string)
	return s
}

// Number returns the named number attribute or 0.
func (a Attributes) Number(name string) float64 {
	n, _ := a[name].(float64)
	return n
}

// Bool returns the named boolean attribute or false.
func (a Attributes) Bool(name string) bool {
	b, _ := a[name].(bool)
	return b
}

// RichText returns the named rich text attribute or an empty sequence.
func (a Attributes) RichText(name string) RichText {
	if rt, ok := a[name].(RichText); ok {
		return rt
	}
	return RichText{}
}

// Objects returns the named query attribute or nil.
func (a Attributes) Objects(name string) []Attributes {
	objs, _ := a[name].([]Attributes)
	return objs
}
