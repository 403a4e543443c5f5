package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shibukawa/nginxdiscovery/tokenizer"
)

// Sentinel errors
var (
	ErrUnexpectedToken   = errors.New("unexpected token")
	ErrUnterminatedBlock = errors.New("unterminated block")
	ErrEmptyDirective    = errors.New("empty directive")
	ErrNestingTooDeep    = errors.New("block nesting too deep")
)

// Error is a parse failure. It wraps one of the sentinel errors above,
// or a *tokenizer.Error when lexing failed, and carries the position the
// failure refers to. For ErrUnterminatedBlock and ErrNestingTooDeep the
// position is that of the opening brace.
type Error struct {
	Err      error
	Position tokenizer.Position
	Expected string
	Got      string
	Limit    int    // configured nesting limit, set for ErrNestingTooDeep
	Source   string // originating file, if known
}

// Error returns a human-readable message with position information
func (e *Error) Error() string {
	var b strings.Builder

	if e.Source != "" {
		b.WriteString(e.Source)
		b.WriteString(": ")
	}

	switch {
	case errors.Is(e.Err, ErrUnterminatedBlock):
		fmt.Fprintf(&b, "%s: '{' opened at line %d, column %d is never closed",
			ErrUnterminatedBlock, e.Position.Line, e.Position.Column)
	case errors.Is(e.Err, ErrNestingTooDeep):
		fmt.Fprintf(&b, "%s at line %d, column %d: more than %d nested blocks",
			ErrNestingTooDeep, e.Position.Line, e.Position.Column, e.Limit)
	case e.Expected != "":
		fmt.Fprintf(&b, "%s at line %d, column %d: expected %s, got %s",
			e.Err, e.Position.Line, e.Position.Column, e.Expected, e.Got)
	case errors.Is(e.Err, ErrEmptyDirective):
		fmt.Fprintf(&b, "%s at line %d, column %d",
			ErrEmptyDirective, e.Position.Line, e.Position.Column)
	default:
		// lex failures already carry their own position
		b.WriteString(e.Err.Error())
	}

	return b.String()
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}
