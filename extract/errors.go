package extract

import (
	"errors"
	"fmt"

	"github.com/shibukawa/nginxdiscovery/tokenizer"
)

// Sentinel errors
var (
	ErrInvalidListen      = errors.New("invalid listen directive")
	ErrMalformedLogFormat = errors.New("malformed log_format directive")
	ErrMissingArgument    = errors.New("missing argument")
	ErrUnknownLogLevel    = errors.New("unknown error_log level")
)

// Error is an extraction warning tied to a single directive. Extractors
// collect these instead of failing: the offending record is dropped (or,
// for ErrUnknownLogLevel, kept as written) and extraction continues.
type Error struct {
	Err       error
	Directive string
	Position  tokenizer.Position
	Detail    string
}

// Error returns a human-readable message with position information
func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s in %q at line %d, column %d: %s",
			e.Err, e.Directive, e.Position.Line, e.Position.Column, e.Detail)
	}

	return fmt.Sprintf("%s in %q at line %d, column %d",
		e.Err, e.Directive, e.Position.Line, e.Position.Column)
}

// Unwrap returns the sentinel error
func (e *Error) Unwrap() error {
	return e.Err
}

// Strict promotes extraction warnings to a hard failure: with any
// warning present the records are discarded and the first warning is
// returned as the error.
//
//	servers, err := extract.Strict(extract.Servers(config))
func Strict[T any](records []T, warnings []error) ([]T, error) {
	if len(warnings) > 0 {
		return nil, warnings[0]
	}

	return records, nil
}
