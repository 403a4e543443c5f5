package extract

import (
	"github.com/shibukawa/nginxdiscovery/parser"
	"github.com/shibukawa/nginxdiscovery/tokenizer"
)

// ErrorLog represents an NGINX error_log directive
type ErrorLog struct {
	Path     string             `json:"path"`
	Level    string             `json:"level,omitempty"`
	Context  Context            `json:"context"`
	Position tokenizer.Position `json:"position"`
}

// errorLogLevels are the severities NGINX accepts
var errorLogLevels = map[string]bool{
	"debug":  true,
	"info":   true,
	"notice": true,
	"warn":   true,
	"error":  true,
	"crit":   true,
	"alert":  true,
	"emerg":  true,
}

// parseErrorLog interprets an error_log directive. An unrecognized level
// is kept as written and reported as a warning.
func parseErrorLog(d *parser.Directive, ctx Context) (*ErrorLog, *Error) {
	args := d.ArgStrings()
	if len(args) == 0 {
		return nil, &Error{
			Err:       ErrMissingArgument,
			Directive: "error_log",
			Position:  d.Position,
			Detail:    "need a path",
		}
	}

	log := &ErrorLog{Path: args[0], Context: ctx, Position: d.Position}

	if len(args) > 1 {
		log.Level = args[1]

		if !errorLogLevels[args[1]] {
			return log, &Error{
				Err:       ErrUnknownLogLevel,
				Directive: "error_log",
				Position:  d.Position,
				Detail:    args[1],
			}
		}
	}

	return log, nil
}
