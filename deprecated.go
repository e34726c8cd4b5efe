package blockweaver

// Deprecation is an earlier version of a block: the schema and save function
// older content was written with, and how to carry its attributes forward.
type Deprecation struct {
	Attributes Schema
	Save       SaveFunc
	// Migrate maps attributes parsed with the old schema to the current one.
	// Nil keeps every attribute whose name still exists.
	Migrate func(old Attributes) Attributes
}

// migrate tries the deprecations of bt in declared order against markup that
// the current version failed to reproduce. The first version whose save
// output is equivalent to markup wins.
func (e *Engine) migrate(bt *BlockType, markup string, o codecOptions) (Attributes, int, bool) {
	for i, dep := range bt.Deprecated {
		old := e.parseWith(bt.Name, dep.Attributes, markup, o)
		expected := e.render(bt.Name, dep.Attributes, dep.Save, old, Meta{})
		if !Equivalent(expected, markup) {
			continue
		}
		e.logger.Debug("Migrating deprecated block.", "block", bt.Name, "deprecation", i)

		migrated := old
		if dep.Migrate != nil {
			migrated = dep.Migrate(old.Merge(nil))
		}
		return e.project(bt.Name, bt.Attributes, migrated), i, true
	}
	return nil, -1, false
}

// project keeps the declared attributes of attrs, coerced, and defaults the
// rest.
func (e *Engine) project(block string, schema Schema, attrs Attributes) Attributes {
	out := make(Attributes, len(schema))
	for _, spec := range schema {
		raw, ok := attrs[spec.Name]
		out[spec.Name] = e.coerceOrDefault(block, spec, raw, ok)
	}
	return out
}
