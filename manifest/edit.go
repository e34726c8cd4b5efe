package manifest

import (
	"github.com/grahms/blockweaver"
)

var controlForKind = map[blockweaver.Kind]blockweaver.ControlKind{
	blockweaver.KindString:  blockweaver.ControlTextInput,
	blockweaver.KindNumber:  blockweaver.ControlNumberInput,
	blockweaver.KindBoolean: blockweaver.ControlToggle,
	blockweaver.KindArray:   blockweaver.ControlRichText,
	blockweaver.KindEnum:    blockweaver.ControlSelect,
	blockweaver.KindQuery:   blockweaver.ControlPanel,
}

// genericEdit renders one control per attribute, in schema order, plus the
// alignment toolbar for blocks that declare alignments.
func genericEdit(schema blockweaver.Schema, align bool) blockweaver.EditFunc {
	return func(p blockweaver.EditProps) []blockweaver.Control {
		controls := make([]blockweaver.Control, 0, len(schema)+1)
		if align && p.Focus != nil {
			controls = append(controls, blockweaver.Control{
				Kind:     blockweaver.ControlAlignmentToolbar,
				Key:      "align",
				Value:    p.Attributes.String("align"),
				OnChange: func(v any) { p.SetAttributes(blockweaver.Attributes{"align": v}) },
			})
		}
		for _, spec := range schema {
			if align && spec.Name == "align" {
				continue
			}
			name := spec.Name
			c := blockweaver.Control{
				Kind:     controlForKind[spec.Kind],
				Key:      name,
				Label:    p.T(name),
				Value:    p.Attributes[name],
				OnChange: func(v any) { p.SetAttributes(blockweaver.Attributes{name: v}) },
				OnFocus:  func() { p.SetFocus(&blockweaver.Focus{Editable: name}) },
			}
			if spec.Kind == blockweaver.KindEnum {
				c.Props = map[string]any{"options": spec.Enum}
			}
			controls = append(controls, c)
		}
		return controls
	}
}
