package blockweaver

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"strings"
)

// Block is one unit of a parsed document: a registered block with its
// attributes, an unrecognized block kept verbatim, or freeform text found
// between blocks.
type Block struct {
	Name              string         `json:"name,omitempty"`
	Attributes        Attributes     `json:"attributes,omitempty"`
	CommentAttributes map[string]any `json:"commentAttributes,omitempty"`
	RawAttributes     string         `json:"rawAttributes,omitempty"` // delimiter JSON as written
	OriginalContent   string         `json:"originalContent,omitempty"`

	Valid bool `json:"valid"`
	// Deprecation is 1 + the index into BlockType.Deprecated of the version
	// that reproduced the markup; 0 means the current version.
	Deprecation  int    `json:"deprecation,omitempty"`
	Unrecognized bool   `json:"unrecognized,omitempty"`
	Freeform     bool   `json:"freeform,omitempty"`
	Diff         string `json:"diff,omitempty"`
}

type Document struct {
	Blocks []Block `json:"blocks"`
}

// BlockSink receives blocks as ProcessStream completes them.
type BlockSink interface {
	OnBlock(b Block)
}

type BlockSinkFunc func(b Block)

func (f BlockSinkFunc) OnBlock(b Block) { f(b) }

// ParseDocument reads a whole delimited document.
func (e *Engine) ParseDocument(r io.Reader, opts ...CodecOption) (*Document, error) {
	doc := &Document{}
	err := e.ProcessStream(r, BlockSinkFunc(func(b Block) {
		doc.Blocks = append(doc.Blocks, b)
	}), opts...)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// ProcessStream reads r in chunks and emits each block as soon as the buffer
// holds all of it. At EOF the rest of the buffer is drained: an unterminated
// block runs to the end of input.
func (e *Engine) ProcessStream(r io.Reader, sink BlockSink, opts ...CodecOption) error {
	o := collectCodecOptions(opts)
	br := bufio.NewReader(r)
	var buf bytes.Buffer

	for {
		chunk := make([]byte, 4096)
		n, err := br.Read(chunk)
		if n > 0 {
			buf.Write(chunk[:n])
			for {
				progress, perr := e.tryExtract(&buf, false, sink, o)
				if perr != nil {
					return perr
				}
				if !progress {
					break
				}
			}
		}
		if err == io.EOF {
			for {
				progress, perr := e.tryExtract(&buf, true, sink, o)
				if perr != nil {
					return perr
				}
				if !progress {
					return nil
				}
			}
		}
		if err != nil {
			return err
		}
	}
}

func (e *Engine) tryExtract(buf *bytes.Buffer, atEOF bool, sink BlockSink, o codecOptions) (bool, error) {
	b := buf.Bytes()
	if len(b) == 0 {
		return false, nil
	}

	open, ok := nextDelimiter(b, 0)
	if !ok {
		// Freeform text waits for the next delimiter so it is emitted whole.
		if !atEOF {
			return false, nil
		}
		emitFreeform(sink, string(b))
		buf.Reset()
		return true, nil
	}

	// A stray closer is kept as text rather than dropped.
	if open.start > 0 || open.closer {
		cut := open.start
		if cut == 0 {
			cut = open.end
		}
		emitFreeform(sink, string(b[:cut]))
		buf.Next(cut)
		return true, nil
	}

	consumed, inner := open.end, ""
	if !open.selfClosing {
		closeStart, closeEnd, found := findCloser(b, open)
		if !found {
			if !atEOF {
				return false, nil
			}
			closeStart, closeEnd = len(b), len(b)
		}
		consumed, inner = closeEnd, string(b[open.end:closeStart])
	}

	blk, err := e.decodeBlock(open, strings.TrimSpace(inner), o)
	buf.Next(consumed)
	if err != nil {
		return true, err
	}
	sink.OnBlock(blk)
	return true, nil
}

func emitFreeform(sink BlockSink, text string) {
	if text = strings.TrimSpace(text); text == "" {
		return
	}
	sink.OnBlock(Block{Freeform: true, Valid: true, OriginalContent: text})
}

func (e *Engine) decodeBlock(open delimiter, content string, o codecOptions) (Block, error) {
	var comment map[string]any
	if open.rawAttrs != "" {
		if err := json.Unmarshal([]byte(open.rawAttrs), &comment); err != nil {
			e.report(Diagnostic{Block: open.name, Err: &MalformedSourceError{
				Block:   open.name,
				Message: "delimiter attributes: " + err.Error(),
			}})
			comment = nil
		}
	}

	bt, ok := e.reg.Get(open.name)
	if !ok {
		if e.policy == UnknownStrict {
			return Block{}, &UnknownBlockTypeError{Name: open.name}
		}
		e.logger.Debug("Keeping unrecognized block.", "block", open.name)
		return Block{
			Name:              open.name,
			CommentAttributes: comment,
			RawAttributes:     open.rawAttrs,
			OriginalContent:   content,
			Unrecognized:      true,
		}, nil
	}
	return e.parseBlock(bt, content, comment, o), nil
}

// ParseBlock parses the inner markup of one delimited block and checks it
// against the block's save output, falling back to deprecated versions when
// the current one does not reproduce it.
func (e *Engine) ParseBlock(name, markup string, comment map[string]any, opts ...CodecOption) (Block, error) {
	bt, err := e.lookup(name)
	if err != nil {
		return Block{}, err
	}
	return e.parseBlock(bt, markup, comment, collectCodecOptions(opts)), nil
}

func (e *Engine) parseBlock(bt *BlockType, markup string, comment map[string]any, o codecOptions) Block {
	o.comment = comment
	clean := e.sanitize(markup)

	blk := Block{
		Name:              bt.Name,
		CommentAttributes: comment,
		OriginalContent:   markup,
		Valid:             true,
		Attributes:        e.parseWith(bt.Name, bt.Attributes, clean, o),
	}
	expected := e.render(bt.Name, bt.Attributes, bt.Save, blk.Attributes, Meta{})
	if Equivalent(expected, clean) {
		return blk
	}
	if attrs, i, ok := e.migrate(bt, clean, o); ok {
		blk.Attributes = attrs
		blk.Deprecation = i + 1
		return blk
	}

	blk.Valid = false
	blk.Diff = MarkupDiff(expected, clean)
	e.report(Diagnostic{Block: bt.Name, Err: &InvalidBlockError{Name: bt.Name}, Diff: blk.Diff})
	return blk
}

// SerializeBlock renders one block with its delimiters. Invalid blocks keep
// the content they were parsed from so no user markup is lost.
func (e *Engine) SerializeBlock(b Block, opts ...CodecOption) (string, error) {
	switch {
	case b.Freeform:
		return b.OriginalContent, nil
	case b.Unrecognized:
		raw := b.RawAttributes
		if raw == "" {
			var err error
			if raw, err = encodeCommentAttributes(b.CommentAttributes); err != nil {
				return "", err
			}
		}
		return formatBlock(b.Name, raw, b.OriginalContent), nil
	}

	bt, err := e.lookup(NormalizeBlockName(b.Name))
	if err != nil {
		return "", err
	}
	if !b.Valid && b.OriginalContent != "" {
		raw, err := encodeCommentAttributes(b.CommentAttributes)
		if err != nil {
			return "", err
		}
		return formatBlock(bt.Name, raw, b.OriginalContent), nil
	}

	o := collectCodecOptions(opts)
	content := e.render(bt.Name, bt.Attributes, bt.Save, b.Attributes, o.meta)
	raw, err := encodeCommentAttributes(e.commentAttributes(bt.Name, bt.Attributes, b.Attributes))
	if err != nil {
		return "", err
	}
	return formatBlock(bt.Name, raw, content), nil
}

// SerializeDocument writes the blocks of doc separated by blank lines.
func (e *Engine) SerializeDocument(w io.Writer, doc *Document, opts ...CodecOption) error {
	bw := bufio.NewWriter(w)
	first := true
	for _, b := range doc.Blocks {
		s, err := e.SerializeBlock(b, opts...)
		if err != nil {
			return err
		}
		if s == "" {
			continue
		}
		if !first {
			if _, err := bw.WriteString("\n\n"); err != nil {
				return err
			}
		}
		first = false
		if _, err := bw.WriteString(s); err != nil {
			return err
		}
	}
	if !first {
		if _, err := bw.WriteString("\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}
