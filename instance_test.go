package blockweaver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Instance(t *testing.T) {
	t.Run("should start with every attribute at its default", func(t *testing.T) {
		engine, _ := newTestEngine(t)
		in, err := engine.NewInstance("core/button", Attributes{"url": "https://x"})
		require.NoError(t, err)

		assert.NotEmpty(t, in.ClientID)
		assert.Equal(t, "core/button", in.Name)
		assert.Equal(t, Attributes{
			"url":   "https://x",
			"title": "",
			"text":  RichText{},
			"align": "none",
			"clear": false,
		}, in.Attributes())
	})

	t.Run("should give every instance its own client id", func(t *testing.T) {
		engine, _ := newTestEngine(t)
		a, err := engine.NewInstance("core/button", nil)
		require.NoError(t, err)
		b, err := engine.NewInstance("core/button", nil)
		require.NoError(t, err)
		assert.NotEqual(t, a.ClientID, b.ClientID)
	})

	t.Run("should replace the attribute map instead of mutating it", func(t *testing.T) {
		engine, _ := newTestEngine(t)
		in, err := engine.NewInstance("core/button", nil)
		require.NoError(t, err)

		before := in.Attributes()
		in.SetAttributes(Attributes{"align": "left", "text": "Go"})

		assert.Equal(t, "none", before["align"])
		assert.Equal(t, "left", in.Attributes()["align"])
		assert.Equal(t, RichText{Plain("Go")}, in.Attributes()["text"])
	})

	t.Run("should keep undeclared keys without saving them", func(t *testing.T) {
		engine, _ := newTestEngine(t)
		in, err := engine.NewInstance("core/button", Attributes{"url": "https://x"})
		require.NoError(t, err)
		in.SetAttributes(Attributes{"draft": true})

		assert.Equal(t, true, in.Attributes()["draft"])
		assert.Equal(t, `<div class="wp-block-button alignnone"><a href="https://x"></a></div>`, in.Save())
		assert.NotContains(t, in.Block().CommentAttributes, "draft")
	})

	t.Run("should bind edit callbacks to the instance", func(t *testing.T) {
		def := testButton()
		def.Edit = func(p EditProps) []Control {
			return []Control{{
				Kind:     ControlURLInput,
				Key:      "url",
				Label:    p.T("Apply"),
				Value:    p.Attributes.String("url"),
				OnChange: func(v any) { p.SetAttributes(Attributes{"url": v}) },
				OnFocus:  func() { p.SetFocus(&Focus{Editable: "url"}) },
			}}
		}
		reg := NewRegistry()
		require.NoError(t, reg.Register("core/button", def))
		engine := NewEngine(reg, WithTranslator(TranslatorFunc(func(key string) string { return "[" + key + "]" })))

		in, err := engine.NewInstance("core/button", nil)
		require.NoError(t, err)
		c, ok := Find(in.Edit(), ByKey("url"))
		require.True(t, ok)
		assert.Equal(t, "[Apply]", c.Label)

		c.OnChange("https://y")
		c.OnFocus()
		assert.Equal(t, "https://y", in.Attributes()["url"])
		assert.Equal(t, &Focus{Editable: "url"}, in.Focus())
	})

	t.Run("should keep working after its type is unregistered", func(t *testing.T) {
		engine, _ := newTestEngine(t)
		in, err := engine.NewInstance("core/button", Attributes{"align": "center"})
		require.NoError(t, err)
		engine.Registry().Unregister("core/button")

		assert.Equal(t, `<div class="wp-block-button aligncenter"><a></a></div>`, in.Save())
		assert.Equal(t, WrapperProps{"data-align": "center"}, in.WrapperProps())

		_, err = engine.NewInstance("core/button", nil)
		assert.ErrorIs(t, err, ErrUnknownBlockType)
	})

	t.Run("should turn into a document block", func(t *testing.T) {
		engine, _ := newTestEngine(t)
		in, err := engine.NewInstance("core/button", Attributes{"align": "right", "clear": true})
		require.NoError(t, err)

		b := in.Block()
		assert.True(t, b.Valid)
		assert.Equal(t, map[string]any{"align": "right", "clear": true}, b.CommentAttributes)

		out, err := engine.SerializeBlock(b)
		require.NoError(t, err)
		assert.Equal(t, "<!-- wp:button {\"align\":\"right\",\"clear\":true} -->\n"+
			`<div class="wp-block-button alignright"><a></a></div>`+"\n<!-- /wp:button -->", out)
	})

	t.Run("should return nothing from Edit when the type has no edit function", func(t *testing.T) {
		engine, _ := newTestEngine(t)
		in, err := engine.NewInstance("core/gallery", nil)
		require.NoError(t, err)
		assert.Nil(t, in.Edit())
	})
}

func Test_Find(t *testing.T) {
	tree := []Control{
		{Kind: ControlPanel, Children: []Control{
			{Kind: ControlToggle, Key: "clear"},
			{Kind: ControlInspector, Children: []Control{{Kind: ControlColorPalette, Key: "color"}}},
		}},
	}

	c, ok := Find(tree, ByKey("color"))
	require.True(t, ok)
	assert.Equal(t, ControlColorPalette, c.Kind)

	_, ok = Find(tree, ByKey("missing"))
	assert.False(t, ok)
}
