package library

import (
	"github.com/grahms/blockweaver"
	"golang.org/x/net/html"
)

// ButtonRenderProps are the values a rendered button is built from. Both the
// button block and the cover image's call-to-action use it.
type ButtonRenderProps struct {
	Align           string
	Title           string
	BackgroundColor string
	TextColor       string
	URL             string
	Text            blockweaver.RichText
}

// RenderButton renders the persisted form of a button:
//
//	<div class="wp-block-button align{Align}" style="background-color:..">
//	  <a href=".." title=".." style="color:..">Text</a>
//	</div>
func RenderButton(p ButtonRenderProps) *html.Node {
	return blockweaver.El("div",
		blockweaver.Attr(
			"class", "wp-block-button align"+p.Align,
			"style", styleDecl("background-color", p.BackgroundColor),
		),
		blockweaver.El("a",
			blockweaver.Attr(
				"href", p.URL,
				"title", p.Title,
				"style", styleDecl("color", p.TextColor),
			),
			p.Text.Nodes()...,
		),
	)
}

func styleDecl(prop, value string) string {
	if value == "" {
		return ""
	}
	return prop + ":" + value
}
