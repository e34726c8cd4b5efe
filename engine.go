package blockweaver

import (
	"log/slog"
	"maps"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
)

func NewEngine(reg *Registry, opts ...func(*Engine)) *Engine {
	e := &Engine{
		reg:        reg,
		policy:     UnknownPlaceholder,
		logger:     slog.Default(),
		translator: IdentityTranslator,
		selectors:  newSelectorCache(),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

func WithUnknownPolicy(p UnknownBlockPolicy) func(*Engine) {
	return func(e *Engine) { e.policy = p }
}

func WithLogger(l *slog.Logger) func(*Engine) {
	return func(e *Engine) { e.logger = l }
}

// WithDiagnostics delivers recovered extraction problems to sink.
func WithDiagnostics(sink DiagnosticSink) func(*Engine) {
	return func(e *Engine) { e.sink = sink }
}

// WithSanitizer runs persisted markup through p before extraction.
func WithSanitizer(p *bluemonday.Policy) func(*Engine) {
	return func(e *Engine) { e.sanitizer = p }
}

// WithTranslator sets the translator handed to edit functions.
func WithTranslator(t Translator) func(*Engine) {
	return func(e *Engine) {
		if t != nil {
			e.translator = t
		}
	}
}

func (e *Engine) Registry() *Registry { return e.reg }

func (e *Engine) Translator() Translator { return e.translator }

type codecOptions struct {
	meta    Meta
	comment map[string]any
}

// CodecOption supplies per-call inputs to Parse and Serialize.
type CodecOption func(*codecOptions)

// WithMeta sets the record meta sources read from and write into.
func WithMeta(m Meta) CodecOption {
	return func(o *codecOptions) { o.meta = m }
}

// WithCommentAttributes sets the decoded delimiter JSON that attributes
// without a markup source are read from.
func WithCommentAttributes(c map[string]any) CodecOption {
	return func(o *codecOptions) { o.comment = c }
}

func collectCodecOptions(opts []CodecOption) codecOptions {
	var o codecOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (e *Engine) lookup(name string) (*BlockType, error) {
	bt, ok := e.reg.Get(name)
	if !ok {
		return nil, &UnknownBlockTypeError{Name: name}
	}
	return bt, nil
}

// Parse extracts the attributes of the named block from its persisted
// markup. The result holds every declared attribute; problems with single
// attributes are reported as diagnostics and replaced by defaults. Only an
// unregistered name is an error.
func (e *Engine) Parse(name, markup string, opts ...CodecOption) (Attributes, error) {
	bt, err := e.lookup(name)
	if err != nil {
		return nil, err
	}
	return e.parseWith(bt.Name, bt.Attributes, e.sanitize(markup), collectCodecOptions(opts)), nil
}

func (e *Engine) sanitize(markup string) string {
	if e.sanitizer == nil {
		return markup
	}
	return e.sanitizer.Sanitize(markup)
}

// parseWith resolves schema against markup that has already been sanitized.
func (e *Engine) parseWith(block string, schema Schema, markup string, o codecOptions) Attributes {
	return e.resolve(schema, parseFragment(markup), resolveState{block: block, meta: o.meta, comment: o.comment})
}

// Serialize renders attrs through the block's save function and writes every
// sourced attribute into the result. Missing attributes take their defaults.
func (e *Engine) Serialize(name string, attrs Attributes, opts ...CodecOption) (string, error) {
	bt, err := e.lookup(name)
	if err != nil {
		return "", err
	}
	o := collectCodecOptions(opts)
	return e.render(bt.Name, bt.Attributes, bt.Save, attrs, o.meta), nil
}

// render builds the save skeleton and applies the source writes in schema
// order. The skeleton hangs under a document node so that selectors address
// the root element the same way they do when parsing.
func (e *Engine) render(block string, schema Schema, save SaveFunc, attrs Attributes, meta Meta) string {
	attrs = complete(schema, e.coercePatch(block, schema, attrs))

	root := &html.Node{Type: html.DocumentNode}
	if el := save(SaveProps{Attributes: attrs, ClassName: DefaultClassName(block)}); el != nil {
		root.AppendChild(el)
	}
	for _, spec := range schema {
		if root.FirstChild == nil && spec.Source.Type != SourceMeta {
			continue
		}
		e.write(block, spec, root, attrs[spec.Name], meta)
	}
	return renderChildren(root)
}

// CommentAttributes returns the attributes that have no markup source and
// differ from their default: the part of a block persisted in its delimiter.
func (e *Engine) CommentAttributes(name string, attrs Attributes) (map[string]any, error) {
	bt, err := e.lookup(name)
	if err != nil {
		return nil, err
	}
	return e.commentAttributes(bt.Name, bt.Attributes, attrs), nil
}

func (e *Engine) commentAttributes(block string, schema Schema, attrs Attributes) map[string]any {
	out := map[string]any{}
	for _, spec := range schema {
		if spec.Source.Type != SourceNone {
			continue
		}
		raw, ok := attrs[spec.Name]
		if !ok {
			continue
		}
		v := e.coerceOrDefault(block, spec, raw, true)
		if isDefault(spec, v) {
			continue
		}
		out[spec.Name] = v
	}
	return out
}

// WrapperProps derives the block's presentation props from attrs. It returns
// nil when the block has no deriver or the deriver produced nothing.
func (e *Engine) WrapperProps(name string, attrs Attributes) (WrapperProps, error) {
	bt, err := e.lookup(name)
	if err != nil {
		return nil, err
	}
	return deriveWrapperProps(bt, attrs), nil
}

func deriveWrapperProps(bt *BlockType, attrs Attributes) WrapperProps {
	if bt.WrapperProps == nil {
		return nil
	}
	props := bt.WrapperProps(maps.Clone(attrs))
	if len(props) == 0 {
		return nil
	}
	return props
}
