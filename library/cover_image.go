package library

import (
	"github.com/grahms/blockweaver"
	"golang.org/x/net/html"
)

const CoverImageName = "core/cover-image"

// Media is the value a media-upload control reports when an image is picked.
type Media struct {
	ID  int
	URL string
}

// CoverImage is the core/cover-image block: a background image with a title
// and an optional call-to-action button.
func CoverImage() blockweaver.BlockType {
	return blockweaver.BlockType{
		Title:       "Cover Image",
		Description: "Cover Image is a bold image block with an optional title.",
		Icon:        "format-image",
		Category:    "common",
		Attributes: blockweaver.Schema{
			{Name: "title", Kind: blockweaver.KindArray, Source: blockweaver.ChildrenSource("h2")},
			{Name: "url", Kind: blockweaver.KindString},
			{Name: "align", Kind: blockweaver.KindString},
			{Name: "id", Kind: blockweaver.KindNumber},
			{Name: "hasParallax", Kind: blockweaver.KindBoolean, Default: false},
			{Name: "dimRatio", Kind: blockweaver.KindNumber, Default: 50},
			{Name: "buttonBackgroundColor", Kind: blockweaver.KindString},
			{Name: "buttonText", Kind: blockweaver.KindString},
			{Name: "buttonTextColor", Kind: blockweaver.KindString},
			{Name: "buttonUrl", Kind: blockweaver.KindString},
			{Name: "showButton", Kind: blockweaver.KindBoolean, Default: false},
		},
		WrapperProps: blockweaver.AlignmentWrapperProps("left", "center", "right", "wide", "full"),
		Edit:         editCoverImage,
		Save:         saveCoverImage,
	}
}

func coverClasses(className string, a blockweaver.Attributes) string {
	dim := a.Number("dimRatio")
	var dimmed, parallax string
	if dim != 0 {
		dimmed = "has-background-dim"
	}
	if a.Bool("hasParallax") {
		parallax = "has-parallax"
	}
	return blockweaver.ClassNames(className, blockweaver.DimRatioToClass(dim), dimmed, parallax)
}

func backgroundImage(url string) string {
	if url == "" {
		return ""
	}
	return "background-image:url(" + url + ")"
}

func saveCoverImage(p blockweaver.SaveProps) *html.Node {
	a := p.Attributes
	section := blockweaver.El("section",
		blockweaver.Attr("class", coverClasses(p.ClassName, a), "style", backgroundImage(a.String("url"))),
		blockweaver.El("h2", nil, a.RichText("title").Nodes()...),
	)
	if a.Bool("showButton") {
		section.AppendChild(RenderButton(ButtonRenderProps{
			Align:           "center",
			BackgroundColor: a.String("buttonBackgroundColor"),
			TextColor:       a.String("buttonTextColor"),
			URL:             a.String("buttonUrl"),
			Text:            plainRichText(a.String("buttonText")),
		}))
	}
	return section
}

func plainRichText(s string) blockweaver.RichText {
	if s == "" {
		return nil
	}
	return blockweaver.RichText{blockweaver.Plain(s)}
}

func editCoverImage(p blockweaver.EditProps) []blockweaver.Control {
	a := p.Attributes
	set := func(patch blockweaver.Attributes) { p.SetAttributes(patch) }
	onSelectImage := func(v any) {
		if m, ok := v.(Media); ok {
			set(blockweaver.Attributes{"url": m.URL, "id": m.ID})
		}
	}

	focusedEditable := ""
	if p.Focus != nil {
		focusedEditable = p.Focus.Editable
		if focusedEditable == "" {
			focusedEditable = "title"
		}
	}

	var controls []blockweaver.Control
	if p.Focus != nil {
		controls = append(controls,
			alignmentToolbar(p),
			blockweaver.Control{
				Kind:     blockweaver.ControlMediaUpload,
				Key:      "id",
				Label:    p.T("Edit image"),
				Value:    a.Number("id"),
				OnChange: onSelectImage,
				Props:    map[string]any{"type": "image"},
			},
			blockweaver.Control{
				Kind: blockweaver.ControlInspector,
				Children: []blockweaver.Control{
					{Kind: blockweaver.ControlDescription, Label: p.T("Cover Image is a bold image block with an optional title.")},
					{
						Kind:  blockweaver.ControlPanel,
						Label: p.T("Cover Image Settings"),
						Children: []blockweaver.Control{
							{
								Kind:     blockweaver.ControlToggle,
								Key:      "hasParallax",
								Label:    p.T("Fixed Background"),
								Value:    a.Bool("hasParallax"),
								OnChange: func(any) { set(blockweaver.Attributes{"hasParallax": !a.Bool("hasParallax")}) },
							},
							{
								Kind:     blockweaver.ControlRange,
								Key:      "dimRatio",
								Label:    p.T("Background Dimness"),
								Value:    a.Number("dimRatio"),
								OnChange: func(v any) { set(blockweaver.Attributes{"dimRatio": v}) },
								Props:    map[string]any{"min": 0, "max": 100, "step": 10},
							},
							{
								Kind:     blockweaver.ControlToggle,
								Key:      "showButton",
								Label:    p.T("Show Button"),
								Value:    a.Bool("showButton"),
								OnChange: func(any) { set(blockweaver.Attributes{"showButton": !a.Bool("showButton")}) },
							},
						},
					},
				},
			},
		)
	}

	url := a.String("url")
	if url == "" {
		return append(controls, blockweaver.Control{
			Kind:  blockweaver.ControlPlaceholder,
			Label: p.T("Cover Image"),
			Props: map[string]any{
				"instructions": p.T("Drag image here or insert from media library"),
				"icon":         "format-image",
				"className":    p.ClassName,
			},
			Children: []blockweaver.Control{{
				Kind:     blockweaver.ControlMediaUpload,
				Key:      "url",
				Label:    p.T("Insert from Media Library"),
				OnChange: onSelectImage,
				Props:    map[string]any{"type": "image"},
			}},
		})
	}

	preview := blockweaver.Control{
		Kind: blockweaver.ControlPreview,
		Props: map[string]any{
			"tagName":   "section",
			"data-url":  url,
			"style":     backgroundImage(url),
			"className": coverClasses(p.ClassName, a),
		},
	}
	title := a.RichText("title")
	if len(title) > 0 || p.Focus != nil {
		preview.Children = append(preview.Children, blockweaver.Control{
			Kind:     blockweaver.ControlRichText,
			Key:      "title",
			Value:    title,
			OnChange: func(v any) { set(blockweaver.Attributes{"title": v}) },
			OnFocus:  func() { p.SetFocus(&blockweaver.Focus{Editable: "title"}) },
			Props: map[string]any{
				"tagName":       "h2",
				"placeholder":   p.T("Write title…"),
				"focused":       focusedEditable == "title",
				"inlineToolbar": true,
			},
		})
	}
	if a.Bool("showButton") {
		preview.Children = append(preview.Children, ButtonControls{
			ClassName:          "wp-block-button aligncenter",
			Text:               a.String("buttonText"),
			URL:                a.String("buttonUrl"),
			BackgroundColor:    a.String("buttonBackgroundColor"),
			TextColor:          a.String("buttonTextColor"),
			TextKey:            "buttonText",
			URLKey:             "buttonUrl",
			BackgroundColorKey: "buttonBackgroundColor",
			TextColorKey:       "buttonTextColor",
			Focused:            focusedEditable == "button",
			ShowInspector:      p.Focus != nil,
			OnFocus:            func() { p.SetFocus(&blockweaver.Focus{Editable: "button"}) },
		}.Controls(p))
	}
	return append(controls, preview)
}
