package blockweaver

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

type chunkedReader struct {
	data   string
	chunks []int
	idx    int
	pos    int
}

func newChunkedReader(s string, chunks []int) *chunkedReader {
	return &chunkedReader{data: s, chunks: chunks}
}

func (c *chunkedReader) Read(p []byte) (int, error) {
	if c.pos >= len(c.data) {
		return 0, io.EOF
	}
	if c.idx >= len(c.chunks) {
		c.chunks = append(c.chunks, c.chunks[len(c.chunks)-1])
	}
	n := c.chunks[c.idx]
	c.idx++
	if c.pos+n > len(c.data) {
		n = len(c.data) - c.pos
	}
	copy(p, c.data[c.pos:c.pos+n])
	c.pos += n
	return n, nil
}

const testDocument = `Intro text

<!-- wp:button {"align":"center"} -->
<div class="wp-block-button aligncenter"><a href="https://x">Go</a></div>
<!-- /wp:button -->

<!-- wp:acme/unknown {"n":1} /-->

<!-- /wp:orphan -->
`

func Test_Document(t *testing.T) {
	t.Run("should split freeform text, blocks and unknown blocks", func(t *testing.T) {
		engine, rec := newTestEngine(t)
		doc, err := engine.ParseDocument(strings.NewReader(testDocument))
		require.NoError(t, err)
		require.Len(t, doc.Blocks, 4)

		assert.Equal(t, Block{Freeform: true, Valid: true, OriginalContent: "Intro text"}, doc.Blocks[0])

		btn := doc.Blocks[1]
		assert.Equal(t, "core/button", btn.Name)
		assert.True(t, btn.Valid)
		assert.Zero(t, btn.Deprecation)
		assert.Equal(t, "center", btn.Attributes["align"])
		assert.Equal(t, "https://x", btn.Attributes["url"])
		assert.Equal(t, map[string]any{"align": "center"}, btn.CommentAttributes)

		unknown := doc.Blocks[2]
		assert.True(t, unknown.Unrecognized)
		assert.Equal(t, "acme/unknown", unknown.Name)
		assert.Equal(t, `{"n":1}`, unknown.RawAttributes)
		assert.Empty(t, unknown.OriginalContent)

		assert.Equal(t, Block{Freeform: true, Valid: true, OriginalContent: "<!-- /wp:orphan -->"}, doc.Blocks[3])
		assert.Empty(t, rec.diags)
	})

	t.Run("should serialize a canonical document back byte for byte", func(t *testing.T) {
		engine, _ := newTestEngine(t)
		doc, err := engine.ParseDocument(strings.NewReader(testDocument))
		require.NoError(t, err)

		var out bytes.Buffer
		require.NoError(t, engine.SerializeDocument(&out, doc))
		assert.Equal(t, testDocument, out.String())
	})

	t.Run("should emit the same blocks whatever the read chunk size", func(t *testing.T) {
		engine, _ := newTestEngine(t)
		want, err := engine.ParseDocument(strings.NewReader(testDocument))
		require.NoError(t, err)

		for _, size := range []int{1, 3, 7, 64} {
			got, err := engine.ParseDocument(newChunkedReader(testDocument, []int{size}))
			require.NoError(t, err)
			assert.Equal(t, want, got, "chunk size %d", size)
		}
	})

	t.Run("should fail on unknown blocks when the policy is strict", func(t *testing.T) {
		engine, _ := newTestEngine(t, WithUnknownPolicy(UnknownStrict))
		_, err := engine.ParseDocument(strings.NewReader(testDocument))
		assert.ErrorIs(t, err, ErrUnknownBlockType)
	})

	t.Run("should balance nested blocks of the same name", func(t *testing.T) {
		engine, _ := newTestEngine(t)
		input := "<!-- wp:acme/box -->\n<div><!-- wp:acme/box -->\ninner\n<!-- /wp:acme/box --></div>\n<!-- /wp:acme/box -->"
		doc, err := engine.ParseDocument(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, doc.Blocks, 1)
		assert.Equal(t, "<div><!-- wp:acme/box -->\ninner\n<!-- /wp:acme/box --></div>", doc.Blocks[0].OriginalContent)
	})

	t.Run("should run an unterminated block to the end of input", func(t *testing.T) {
		engine, _ := newTestEngine(t)
		doc, err := engine.ParseDocument(strings.NewReader("<!-- wp:acme/box -->\n<p>open</p>\n"))
		require.NoError(t, err)
		require.Len(t, doc.Blocks, 1)
		assert.Equal(t, "<p>open</p>", doc.Blocks[0].OriginalContent)
	})

	t.Run("should report malformed delimiter JSON and use defaults", func(t *testing.T) {
		engine, rec := newTestEngine(t)
		input := "<!-- wp:button {\"align\": } -->\n<div class=\"wp-block-button alignnone\"><a href=\"https://x\">Go</a></div>\n<!-- /wp:button -->"
		doc, err := engine.ParseDocument(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, doc.Blocks, 1)
		assert.True(t, doc.Blocks[0].Valid)
		assert.Equal(t, "none", doc.Blocks[0].Attributes["align"])

		require.Len(t, rec.diags, 1)
		var malformed *MalformedSourceError
		assert.ErrorAs(t, rec.diags[0].Err, &malformed)
	})

	t.Run("should keep the content of invalid blocks", func(t *testing.T) {
		engine, rec := newTestEngine(t)
		content := `<div class="wp-block-button alignnone"><a href="https://x">Go</a><span>extra</span></div>`
		input := "<!-- wp:button -->\n" + content + "\n<!-- /wp:button -->"
		doc, err := engine.ParseDocument(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, doc.Blocks, 1)

		b := doc.Blocks[0]
		assert.False(t, b.Valid)
		assert.Contains(t, b.Diff, "+ ")
		assert.Contains(t, b.Diff, "extra")

		require.Len(t, rec.diags, 1)
		var invalid *InvalidBlockError
		require.ErrorAs(t, rec.diags[0].Err, &invalid)
		assert.Equal(t, b.Diff, rec.diags[0].Diff)

		out, err := engine.SerializeBlock(b)
		require.NoError(t, err)
		assert.Equal(t, input, out)
	})
}

func Test_SerializeBlock(t *testing.T) {
	t.Run("should self-close blocks without content", func(t *testing.T) {
		reg := NewRegistry()
		require.NoError(t, reg.Register("core/spacer", BlockType{
			Category:   "layout",
			Attributes: Schema{{Name: "height", Kind: KindNumber, Default: 100}},
			Save:       func(SaveProps) *html.Node { return nil },
		}))
		engine := NewEngine(reg)

		out, err := engine.SerializeBlock(Block{Name: "core/spacer", Valid: true, Attributes: Attributes{"height": 40}})
		require.NoError(t, err)
		assert.Equal(t, `<!-- wp:spacer {"height":40} /-->`, out)

		out, err = engine.SerializeBlock(Block{Name: "spacer", Valid: true})
		require.NoError(t, err)
		assert.Equal(t, `<!-- wp:spacer /-->`, out)
	})

	t.Run("should escape double hyphens in delimiter JSON", func(t *testing.T) {
		engine, _ := newTestEngine(t)
		out, err := engine.SerializeBlock(Block{Name: "core/button", Valid: true, Attributes: Attributes{"align": "a--b"}})
		require.NoError(t, err)
		head, _, _ := strings.Cut(out, "\n")
		assert.Equal(t, `<!-- wp:button {"align":"a\u002d\u002db"} -->`, head)

		doc, err := engine.ParseDocument(strings.NewReader(out))
		require.NoError(t, err)
		require.Len(t, doc.Blocks, 1)
		assert.Equal(t, "a--b", doc.Blocks[0].Attributes["align"])
	})

	t.Run("should keep unrecognized blocks verbatim", func(t *testing.T) {
		engine, _ := newTestEngine(t)
		out, err := engine.SerializeBlock(Block{
			Name:            "acme/embed",
			Unrecognized:    true,
			RawAttributes:   `{"id": 7}`,
			OriginalContent: "<iframe></iframe>",
		})
		require.NoError(t, err)
		assert.Equal(t, "<!-- wp:acme/embed {\"id\": 7} -->\n<iframe></iframe>\n<!-- /wp:acme/embed -->", out)
	})

	t.Run("should fail for unregistered names that are not flagged", func(t *testing.T) {
		engine, _ := newTestEngine(t)
		_, err := engine.SerializeBlock(Block{Name: "acme/nope", Valid: true})
		assert.ErrorIs(t, err, ErrUnknownBlockType)
	})
}

func Test_NormalizeBlockName(t *testing.T) {
	assert.Equal(t, "core/paragraph", NormalizeBlockName("paragraph"))
	assert.Equal(t, "acme/card", NormalizeBlockName("acme/card"))
	assert.Equal(t, "button", serializedBlockName("core/button"))
	assert.Equal(t, "acme/card", serializedBlockName("acme/card"))
}

func Test_Delimiters(t *testing.T) {
	t.Run("should accept only names a block can register under", func(t *testing.T) {
		d, ok := nextDelimiter([]byte(`<!-- wp:acme/my-block /-->`), 0)
		require.True(t, ok)
		assert.Equal(t, "acme/my-block", d.name)
		assert.True(t, d.selfClosing)

		_, ok = nextDelimiter([]byte(`<!-- wp:acme/my_block /-->`), 0)
		assert.False(t, ok)
		assert.Error(t, NewRegistry().Register("acme/my_block", BlockType{
			Category: "common",
			Save:     func(SaveProps) *html.Node { return El("div", nil) },
		}))
	})
}
