// Package rowpolicy decides what a store does with rows it cannot parse.
package rowpolicy

import (
	"fmt"
	"strings"
)

// Policy is the malformed-row handling mode of a store
type Policy string

const (
	// Abort fails the whole load on the first bad row
	Abort Policy = "abort"
	// Skip drops bad rows and keeps the rest
	Skip Policy = "skip"
	// Empty turns any bad row into an empty result
	Empty Policy = "empty"
)

// Parse converts a config value into a Policy. An empty string returns def.
func Parse(s string, def Policy) (Policy, error) {
	switch p := Policy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return def, nil
	case Abort, Skip, Empty:
		return p, nil
	default:
		return "", fmt.Errorf("unknown malformed row policy %q (use abort, skip or empty)", s)
	}
}

// ParseError reports a row that could not be decoded
type ParseError struct {
	Path string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
