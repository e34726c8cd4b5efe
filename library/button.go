package library

import (
	"github.com/grahms/blockweaver"
	"golang.org/x/net/html"
)

const ButtonName = "core/button"

// Button is the core/button block: a link styled as a button.
func Button() blockweaver.BlockType {
	return blockweaver.BlockType{
		Title:    "Button",
		Icon:     "button",
		Category: "layout",
		Attributes: blockweaver.Schema{
			{Name: "url", Kind: blockweaver.KindString, Source: blockweaver.AttrSource("a", "href")},
			{Name: "title", Kind: blockweaver.KindString, Source: blockweaver.AttrSource("a", "title")},
			{Name: "text", Kind: blockweaver.KindArray, Source: blockweaver.ChildrenSource("a")},
			{Name: "align", Kind: blockweaver.KindString, Default: "none"},
			{Name: "color", Kind: blockweaver.KindString},
			{Name: "textColor", Kind: blockweaver.KindString},
			{Name: "clear", Kind: blockweaver.KindBoolean},
		},
		WrapperProps: blockweaver.CombineWrapperProps(
			blockweaver.AlignmentWrapperProps("left", "right", "center"),
			blockweaver.FlagWrapperProps("clear", "data-clear"),
		),
		Edit: editButton,
		Save: saveButton,
	}
}

func saveButton(p blockweaver.SaveProps) *html.Node {
	a := p.Attributes
	return RenderButton(ButtonRenderProps{
		Align:           a.String("align"),
		Title:           a.String("title"),
		BackgroundColor: a.String("color"),
		TextColor:       a.String("textColor"),
		URL:             a.String("url"),
		Text:            a.RichText("text"),
	})
}

func editButton(p blockweaver.EditProps) []blockweaver.Control {
	a := p.Attributes
	focused := p.Focus != nil

	var controls []blockweaver.Control
	if focused {
		controls = append(controls,
			blockweaver.Control{
				Kind: blockweaver.ControlInspector,
				Children: []blockweaver.Control{
					{Kind: blockweaver.ControlDescription, Label: p.T("A nice little button. Call something out with it.")},
					{
						Kind:  blockweaver.ControlToggle,
						Key:   "clear",
						Label: p.T("Stand on a line"),
						Value: a.Bool("clear"),
						OnChange: func(any) {
							p.SetAttributes(blockweaver.Attributes{"clear": !a.Bool("clear")})
						},
					},
				},
			},
			alignmentToolbar(p),
		)
	}

	controls = append(controls, ButtonControls{
		ClassName:          p.ClassName,
		Title:              a.String("title"),
		Text:               a.RichText("text"),
		URL:                a.String("url"),
		BackgroundColor:    a.String("color"),
		TextColor:          a.String("textColor"),
		TextKey:            "text",
		URLKey:             "url",
		BackgroundColorKey: "color",
		TextColorKey:       "textColor",
		Focused:            focused,
		ShowInspector:      focused,
		OnFocus:            func() { p.SetFocus(&blockweaver.Focus{}) },
	}.Controls(p))
	return controls
}

// alignmentToolbar binds the block alignment toolbar to "align".
func alignmentToolbar(p blockweaver.EditProps) blockweaver.Control {
	return blockweaver.Control{
		Kind:  blockweaver.ControlAlignmentToolbar,
		Key:   "align",
		Value: p.Attributes.String("align"),
		OnChange: func(v any) {
			p.SetAttributes(blockweaver.Attributes{"align": v})
		},
	}
}
