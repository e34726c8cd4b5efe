package library

import (
	"github.com/grahms/blockweaver"
)

// ButtonControls binds the editable parts of a button to attributes of the
// block that shows it. The *Key fields name those attributes.
type ButtonControls struct {
	ClassName string
	Title     string

	Text            any // RichText for the button block, string for the cover image
	URL             string
	BackgroundColor string
	TextColor       string

	TextKey            string
	URLKey             string
	BackgroundColorKey string
	TextColorKey       string

	Focused       bool
	ShowInspector bool
	OnFocus       func()
}

// Controls renders the button's editing surface: a rich text span, the URL
// form while focused and the color panels while the inspector is shown.
func (b ButtonControls) Controls(p blockweaver.EditProps) blockweaver.Control {
	set := func(key string) func(any) {
		return func(v any) { p.SetAttributes(blockweaver.Attributes{key: v}) }
	}

	span := blockweaver.Control{
		Kind: blockweaver.ControlPanel,
		Props: map[string]any{
			"tagName":         "span",
			"className":       b.ClassName,
			"title":           b.Title,
			"backgroundColor": b.BackgroundColor,
		},
	}
	span.Children = append(span.Children, blockweaver.Control{
		Kind:     blockweaver.ControlRichText,
		Key:      b.TextKey,
		Value:    b.Text,
		OnChange: set(b.TextKey),
		OnFocus:  b.OnFocus,
		Props: map[string]any{
			"tagName":                "span",
			"placeholder":            p.T("Add text…"),
			"focused":                b.Focused,
			"formattingControls":     []string{"bold", "italic", "strikethrough"},
			"color":                  b.TextColor,
			"keepPlaceholderOnFocus": true,
		},
	})

	if b.Focused {
		span.Children = append(span.Children, blockweaver.Control{
			Kind:     blockweaver.ControlURLInput,
			Key:      b.URLKey,
			Label:    p.T("Apply"),
			Value:    b.URL,
			OnChange: set(b.URLKey),
		})
	}

	if b.ShowInspector {
		span.Children = append(span.Children, blockweaver.Control{
			Kind: blockweaver.ControlInspector,
			Children: []blockweaver.Control{
				{
					Kind:  blockweaver.ControlPanel,
					Label: p.T("Button Background Color"),
					Children: []blockweaver.Control{{
						Kind:     blockweaver.ControlColorPalette,
						Key:      b.BackgroundColorKey,
						Value:    b.BackgroundColor,
						OnChange: set(b.BackgroundColorKey),
					}},
				},
				{
					Kind:  blockweaver.ControlPanel,
					Label: p.T("Button Text Color"),
					Children: []blockweaver.Control{{
						Kind:     blockweaver.ControlColorPalette,
						Key:      b.TextColorKey,
						Value:    b.TextColor,
						OnChange: set(b.TextColorKey),
					}},
				},
			},
		})
	}
	return span
}
