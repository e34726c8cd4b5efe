package blockweaver

// ControlKind names a presentational widget. Widgets are external to the
// engine; edit functions only describe them and bind their callbacks.
type ControlKind string

const (
	ControlRichText         ControlKind = "rich-text"
	ControlURLInput         ControlKind = "url-input"
	ControlColorPalette     ControlKind = "color-palette"
	ControlToggle           ControlKind = "toggle"
	ControlRange            ControlKind = "range"
	ControlAlignmentToolbar ControlKind = "alignment-toolbar"
	ControlMediaUpload      ControlKind = "media-upload"
	ControlPlaceholder      ControlKind = "placeholder"
	ControlInspector        ControlKind = "inspector"
	ControlPanel            ControlKind = "panel"
	ControlDescription      ControlKind = "description"
	ControlPreview          ControlKind = "preview"
	ControlTextInput        ControlKind = "text-input"
	ControlNumberInput      ControlKind = "number-input"
	ControlSelect           ControlKind = "select"
)

// Control is one node of the tree an edit function returns.
type Control struct {
	Kind     ControlKind
	Key      string // attribute the control is bound to, if any
	Label    string
	Value    any
	Props    map[string]any
	OnChange func(v any)
	OnFocus  func()
	Children []Control
}

// Find returns the first control in depth-first order for which match holds.
func Find(controls []Control, match func(c Control) bool) (Control, bool) {
	for _, c := range controls {
		if match(c) {
			return c, true
		}
		if found, ok := Find(c.Children, match); ok {
			return found, true
		}
	}
	return Control{}, false
}

// ByKey matches controls bound to the named attribute.
func ByKey(key string) func(c Control) bool {
	return func(c Control) bool { return c.Key == key }
}
