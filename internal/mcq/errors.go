package mcq

import (
	"fmt"
	"strings"
)

// ValidationError reports bad user input or an invalid configuration.
type ValidationError struct {
	Field   string // Name of the offending field or flag
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ParseError reports a malformed LLM response block or a malformed
// stored question file.
type ParseError struct {
	// Source names what was being parsed: a file path, or "response"
	// for LLM output.
	Source string

	// Block is the 1-based index of the offending question block.
	// Zero when the error is not tied to a single block.
	Block int

	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString("parse error")
	if e.Source != "" {
		fmt.Fprintf(&b, " in %s", e.Source)
	}
	if e.Block > 0 {
		fmt.Fprintf(&b, " (block %d)", e.Block)
	}
	b.WriteString(": ")
	b.WriteString(e.Reason)
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *ParseError) Unwrap() error { return e.Err }
