package blockweaver

import (
	"fmt"
	"log/slog"

	"github.com/microcosm-cc/bluemonday"
)

// UnknownBlockPolicy decides what documents do with blocks whose name has no
// registry entry.
type UnknownBlockPolicy int

const (
	UnknownPlaceholder UnknownBlockPolicy = iota // keep the block verbatim and flag it
	UnknownStrict                                // fail with *UnknownBlockTypeError
)

func (p UnknownBlockPolicy) String() string {
	switch p {
	case UnknownPlaceholder:
		return "placeholder"
	case UnknownStrict:
		return "strict"
	}
	return fmt.Sprintf("UnknownBlockPolicy(%d)", int(p))
}

// ParseUnknownBlockPolicy maps "placeholder" and "strict" to their policy.
func ParseUnknownBlockPolicy(s string) (UnknownBlockPolicy, error) {
	switch s {
	case "", "placeholder":
		return UnknownPlaceholder, nil
	case "strict":
		return UnknownStrict, nil
	}
	return 0, fmt.Errorf("unknown block policy %q", s)
}

// Engine runs extraction and serialization against a registry.
type Engine struct {
	reg        *Registry
	policy     UnknownBlockPolicy
	logger     *slog.Logger
	sink       DiagnosticSink
	sanitizer  *bluemonday.Policy
	translator Translator
	selectors  *selectorCache
}
