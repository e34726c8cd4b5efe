package blockweaver

import (
	"github.com/google/uuid"
)

// Instance is one block in an editing session. It keeps the block type it
// was created with, so unregistering the type later does not affect it.
//
// The attribute map is only ever replaced, never changed in place: a map
// returned by Attributes stays valid and unchanged after SetAttributes.
type Instance struct {
	ClientID string
	Name     string

	engine *Engine
	typ    *BlockType
	attrs  Attributes
	focus  *Focus
}

// NewInstance creates an instance of the named block with attrs coerced and
// every missing attribute at its default.
func (e *Engine) NewInstance(name string, attrs Attributes) (*Instance, error) {
	bt, err := e.lookup(name)
	if err != nil {
		return nil, err
	}
	return &Instance{
		ClientID: uuid.NewString(),
		Name:     bt.Name,
		engine:   e,
		typ:      bt,
		attrs:    complete(bt.Attributes, e.coercePatch(bt.Name, bt.Attributes, attrs)),
	}, nil
}

// InstanceFromBlock wraps a parsed block.
func (e *Engine) InstanceFromBlock(b Block) (*Instance, error) {
	return e.NewInstance(b.Name, b.Attributes)
}

func (in *Instance) Type() *BlockType { return in.typ }

func (in *Instance) Attributes() Attributes { return in.attrs }

// SetAttributes replaces the attribute map with attrs merged with patch.
// Declared attributes are coerced; undeclared keys are kept but never saved.
func (in *Instance) SetAttributes(patch Attributes) {
	in.attrs = in.attrs.Merge(in.engine.coercePatch(in.Name, in.typ.Attributes, patch))
}

func (in *Instance) Focus() *Focus { return in.focus }

func (in *Instance) SetFocus(f *Focus) { in.focus = f }

// Edit renders the block's controls against the current attributes. The
// controls' callbacks update this instance.
func (in *Instance) Edit() []Control {
	if in.typ.Edit == nil {
		return nil
	}
	return in.typ.Edit(EditProps{
		Attributes:    in.attrs,
		SetAttributes: in.SetAttributes,
		Focus:         in.focus,
		SetFocus:      in.SetFocus,
		ClassName:     in.typ.ClassName(),
		Translator:    in.engine.translator,
	})
}

// Save renders the persisted markup of the current attributes.
func (in *Instance) Save(opts ...CodecOption) string {
	o := collectCodecOptions(opts)
	return in.engine.render(in.Name, in.typ.Attributes, in.typ.Save, in.attrs, o.meta)
}

// WrapperProps derives presentation props from the current attributes; nil
// when there are none.
func (in *Instance) WrapperProps() WrapperProps {
	return deriveWrapperProps(in.typ, in.attrs)
}

// Block returns the instance as a document block.
func (in *Instance) Block() Block {
	return Block{
		Name:              in.Name,
		Attributes:        in.attrs,
		CommentAttributes: in.engine.commentAttributes(in.Name, in.typ.Attributes, in.attrs),
		Valid:             true,
	}
}
