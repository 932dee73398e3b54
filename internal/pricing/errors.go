package pricing

import (
	"errors"
	"fmt"
)

// Sentinel errors for template lookup failures in the order flow.
var (
	// ErrTemplateNotFound means the referenced template does not exist.
	ErrTemplateNotFound = errors.New("template not found")
	// ErrTemplateKindMismatch means the template's kind does not match the
	// order endpoint being used.
	ErrTemplateKindMismatch = errors.New("template kind does not match order kind")
)

// ConfigError reports a template section that needs a ratio on the axis it
// scales but has none. This is bad administrative data, not a caller mistake.
type ConfigError struct {
	SectionOrder int
	Axis         string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("template section %d has no %s ratio", e.SectionOrder, e.Axis)
}

// ValidationError reports a malformed value in the caller's request.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}
