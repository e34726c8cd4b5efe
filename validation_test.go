package blockweaver

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func Test_Equivalent(t *testing.T) {
	cases := []struct {
		name string
		a, b string
		want bool
	}{
		{"should ignore attribute order", `<a href="x" title="y">t</a>`, `<a title="y" href="x">t</a>`, true},
		{"should ignore class order", `<div class="b a"></div>`, `<div class="a  b"></div>`, true},
		{"should ignore style whitespace", `<div style="color:red;background-color:#fff"></div>`, `<div style="background-color: #fff; color: red"></div>`, true},
		{"should ignore whitespace between elements", "<div>\n  <a>t</a>\n</div>", "<div><a>t</a></div>", true},
		{"should notice changed text", `<a>one</a>`, `<a>two</a>`, false},
		{"should notice a missing attribute", `<a href="x">t</a>`, `<a>t</a>`, false},
		{"should notice an extra element", `<div><a>t</a></div>`, `<div><a>t</a><span></span></div>`, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Equivalent(tc.a, tc.b))
		})
	}
}

func Test_MarkupDiff(t *testing.T) {
	t.Run("should be empty for equivalent markup", func(t *testing.T) {
		assert.Empty(t, MarkupDiff(`<a href="x">t</a>`, `<a  href="x">t</a>`))
	})

	t.Run("should mark removed and added lines", func(t *testing.T) {
		diff := MarkupDiff(`<div><a href="x">t</a></div>`, `<div><a href="y">t</a></div>`)
		assert.Equal(t, strings.Join([]string{
			`  <div>`,
			`-   <a href="x">`,
			`+   <a href="y">`,
			`      t`,
			`    </a>`,
			`  </div>`,
		}, "\n")+"\n", diff)
	})
}

func Test_Verify(t *testing.T) {
	engine, _ := newTestEngine(t)

	t.Run("should accept markup the block would save", func(t *testing.T) {
		ok, diff, err := engine.Verify("core/button", `<div class="alignnone wp-block-button"><a href="https://x">Go</a></div>`)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Empty(t, diff)
	})

	t.Run("should reject hand-edited markup with a diff", func(t *testing.T) {
		ok, diff, err := engine.Verify("core/button", `<div class="wp-block-button alignnone"><a href="https://x" target="_blank">Go</a></div>`)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Contains(t, diff, `+   <a href="https://x" target="_blank">`)
	})

	t.Run("should fail for unregistered names", func(t *testing.T) {
		_, _, err := engine.Verify("core/missing", "")
		assert.ErrorIs(t, err, ErrUnknownBlockType)
	})
}

// oldButton is the first version of the test button: a bare link with the
// block class and no wrapper.
func oldButton() Deprecation {
	return Deprecation{
		Attributes: Schema{
			{Name: "url", Kind: KindString, Source: AttrSource("a", "href")},
			{Name: "text", Kind: KindArray, Source: ChildrenSource("a")},
		},
		Save: func(p SaveProps) *html.Node {
			return El("a", Attr("class", p.ClassName))
		},
	}
}

func Test_Deprecations(t *testing.T) {
	legacy := "<!-- wp:button -->\n" + `<a class="wp-block-button" href="https://old">Old</a>` + "\n<!-- /wp:button -->"

	newEngine := func(t *testing.T, deps ...Deprecation) (*Engine, *diagnosticRecorder) {
		t.Helper()
		def := testButton()
		def.Deprecated = deps
		reg := NewRegistry()
		require.NoError(t, reg.Register("core/button", def))
		rec := &diagnosticRecorder{}
		return NewEngine(reg, WithDiagnostics(rec)), rec
	}

	t.Run("should migrate markup saved by a deprecated version", func(t *testing.T) {
		engine, rec := newEngine(t, oldButton())
		doc, err := engine.ParseDocument(strings.NewReader(legacy))
		require.NoError(t, err)
		require.Len(t, doc.Blocks, 1)

		b := doc.Blocks[0]
		assert.True(t, b.Valid)
		assert.Equal(t, 1, b.Deprecation)
		assert.Equal(t, Attributes{
			"url":   "https://old",
			"title": "",
			"text":  RichText{Plain("Old")},
			"align": "none",
			"clear": false,
		}, b.Attributes)
		assert.Empty(t, rec.diags)

		out, err := engine.SerializeBlock(b)
		require.NoError(t, err)
		assert.Equal(t, "<!-- wp:button -->\n"+`<div class="wp-block-button alignnone"><a href="https://old">Old</a></div>`+"\n<!-- /wp:button -->", out)
	})

	t.Run("should apply the migration function", func(t *testing.T) {
		dep := oldButton()
		dep.Migrate = func(old Attributes) Attributes {
			return old.Merge(Attributes{"align": "center"})
		}
		engine, _ := newEngine(t, dep)
		doc, err := engine.ParseDocument(strings.NewReader(legacy))
		require.NoError(t, err)
		require.Len(t, doc.Blocks, 1)
		assert.Equal(t, "center", doc.Blocks[0].Attributes["align"])
	})

	t.Run("should pick the first matching deprecation in declared order", func(t *testing.T) {
		never := Deprecation{Save: func(SaveProps) *html.Node { return El("p", nil) }}
		second := oldButton()
		second.Migrate = func(old Attributes) Attributes { return old.Merge(Attributes{"title": "second"}) }
		engine, _ := newEngine(t, never, oldButton(), second)

		doc, err := engine.ParseDocument(strings.NewReader(legacy))
		require.NoError(t, err)
		require.Len(t, doc.Blocks, 1)
		assert.Equal(t, 2, doc.Blocks[0].Deprecation)
		assert.Equal(t, "", doc.Blocks[0].Attributes["title"])
	})

	t.Run("should flag the block invalid when no version matches", func(t *testing.T) {
		engine, rec := newEngine(t, oldButton())
		doc, err := engine.ParseDocument(strings.NewReader("<!-- wp:button -->\n<p>nothing alike</p>\n<!-- /wp:button -->"))
		require.NoError(t, err)
		require.Len(t, doc.Blocks, 1)
		assert.False(t, doc.Blocks[0].Valid)
		assert.Zero(t, doc.Blocks[0].Deprecation)
		require.Len(t, rec.diags, 1)
	})
}
