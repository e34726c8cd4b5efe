package blockweaver

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownBlockType is matched by *UnknownBlockTypeError.
	ErrUnknownBlockType = errors.New("unknown block type")
	// ErrDuplicateBlockName is matched by *DuplicateBlockNameError.
	ErrDuplicateBlockName = errors.New("duplicate block name")
	// ErrInvalidDefinition is matched by *DefinitionError.
	ErrInvalidDefinition = errors.New("invalid block definition")
)

// UnknownBlockTypeError is returned when a block name has no registry entry.
type UnknownBlockTypeError struct {
	Name string
}

// Error implements the error interface.
func (e *UnknownBlockTypeError) Error() string {
	return fmt.Sprintf("unknown block type %q", e.Name)
}

func (e *UnknownBlockTypeError) Is(target error) bool { return target == ErrUnknownBlockType }

// DuplicateBlockNameError is returned when a name is registered twice.
type DuplicateBlockNameError struct {
	Name string
}

// Error implements the error interface.
func (e *DuplicateBlockNameError) Error() string {
	return fmt.Sprintf("block type %q is already registered", e.Name)
}

func (e *DuplicateBlockNameError) Is(target error) bool { return target == ErrDuplicateBlockName }

// DefinitionError represents a malformed block type definition.
type DefinitionError struct {
	Block     string // Name of the block being registered
	Attribute string // Offending attribute, if any
	Message   string
}

// Error implements the error interface.
func (e *DefinitionError) Error() string {
	if e.Attribute != "" {
		return fmt.Sprintf("block %q, attribute %q: %s", e.Block, e.Attribute, e.Message)
	}
	return fmt.Sprintf("block %q: %s", e.Block, e.Message)
}

func (e *DefinitionError) Is(target error) bool { return target == ErrInvalidDefinition }

// MalformedSourceError describes a source descriptor that could not read or
// write its target. It is never returned: the attribute falls back to its
// default and the error is reported as a Diagnostic.
type MalformedSourceError struct {
	Block     string
	Attribute string
	Selector  string
	Message   string
}

// Error implements the error interface.
func (e *MalformedSourceError) Error() string {
	return fmt.Sprintf("block %q, attribute %q: source %q: %s", e.Block, e.Attribute, e.Selector, e.Message)
}

// CoercionError describes a raw value that could not be coerced to the
// declared kind. Like MalformedSourceError it is recovered locally.
type CoercionError struct {
	Block     string
	Attribute string
	Kind      Kind
	Value     any
}

// Error implements the error interface.
func (e *CoercionError) Error() string {
	return fmt.Sprintf("block %q, attribute %q: cannot coerce %#v to %s", e.Block, e.Attribute, e.Value, e.Kind)
}
