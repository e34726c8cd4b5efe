package blockweaver

import (
	"log/slog"
	"slices"
	"strings"

	"golang.org/x/net/html"
)

// SaveProps is what a save function receives.
type SaveProps struct {
	Attributes Attributes
	ClassName  string
}

// SaveFunc renders the canonical persisted form of a block. The returned
// element is the skeleton source descriptors write their values into; nil
// means the block has no markup.
type SaveFunc func(props SaveProps) *html.Node

// Focus records which editable of a block holds the caret.
type Focus struct {
	Editable string
}

// EditProps is what an edit function receives.
type EditProps struct {
	Attributes    Attributes
	SetAttributes func(patch Attributes)
	Focus         *Focus
	SetFocus      func(f *Focus)
	ClassName     string
	Translator    Translator
}

// T looks up a UI string through the props' translator.
func (p EditProps) T(key string) string {
	if p.Translator == nil {
		return key
	}
	return p.Translator.Translate(key)
}

// EditFunc renders the interactive controls of a block.
type EditFunc func(props EditProps) []Control

// BlockType is the registered definition of a block.
type BlockType struct {
	Name         string
	Title        string
	Description  string
	Icon         string
	Category     string
	Attributes   Schema
	Edit         EditFunc
	Save         SaveFunc
	WrapperProps WrapperPropsFunc
	Deprecated   []Deprecation // newest first
}

// ClassName is the class save functions put on the block's root element.
func (bt *BlockType) ClassName() string {
	return DefaultClassName(bt.Name)
}

// DefaultClassName maps "core/cover-image" to "wp-block-cover-image" and
// "acme/card" to "wp-block-acme-card".
func DefaultClassName(name string) string {
	return "wp-block-" + strings.ReplaceAll(strings.TrimPrefix(name, "core/"), "/", "-")
}

// Registry is the table of block types. It is filled while the host starts
// up and only read afterwards; it does no locking of its own, so concurrent
// registration has to be serialized by the caller.
type Registry struct {
	byName map[string]*BlockType
	order  []string
	logger *slog.Logger
}

func NewRegistry(opts ...func(*Registry)) *Registry {
	r := &Registry{byName: map[string]*BlockType{}, logger: slog.Default()}
	for _, o := range opts {
		o(r)
	}
	return r
}

// WithRegistryLogger sets the logger used for registration messages.
func WithRegistryLogger(l *slog.Logger) func(*Registry) {
	return func(r *Registry) { r.logger = l }
}

// Register validates def and stores it under name. Registering a name twice
// fails with *DuplicateBlockNameError; the first definition stays in place.
func (r *Registry) Register(name string, def BlockType) error {
	if _, exists := r.byName[name]; exists {
		return &DuplicateBlockNameError{Name: name}
	}
	def.Name = name
	if err := validateBlockType(&def); err != nil {
		return err
	}
	r.logger.Debug("Registering block type.", "name", name, "attributes", len(def.Attributes))
	r.byName[name] = &def
	r.order = append(r.order, name)
	return nil
}

// MustRegister is Register for start-up code, where a bad definition is a
// programming error.
func (r *Registry) MustRegister(name string, def BlockType) {
	if err := r.Register(name, def); err != nil {
		panic(err)
	}
}

// Get returns the block type registered under name.
func (r *Registry) Get(name string) (*BlockType, bool) {
	bt, ok := r.byName[name]
	return bt, ok
}

func (r *Registry) Has(name string) bool {
	_, ok := r.byName[name]
	return ok
}

// Types returns the registered block types in registration order.
func (r *Registry) Types() []*BlockType {
	out := make([]*BlockType, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byName[name])
	}
	return out
}

// Unregister removes a block type. Instances referring to it keep working
// with their attributes; only later lookups fail.
func (r *Registry) Unregister(name string) (*BlockType, bool) {
	bt, ok := r.byName[name]
	if !ok {
		return nil, false
	}
	delete(r.byName, name)
	r.order = slices.DeleteFunc(r.order, func(n string) bool { return n == name })
	r.logger.Debug("Unregistered block type.", "name", name)
	return bt, true
}
