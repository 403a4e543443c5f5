package extract

import (
	"strings"

	"github.com/shibukawa/nginxdiscovery/parser"
	"github.com/shibukawa/nginxdiscovery/tokenizer"
)

// AccessLog represents an NGINX access_log directive. The special path
// "off" means logging is disabled for the enclosing scope.
type AccessLog struct {
	Path       string             `json:"path"`
	FormatName string             `json:"format_name,omitempty"`
	Conditions []string           `json:"conditions,omitempty"`
	Options    map[string]string  `json:"options,omitempty"`
	Context    Context            `json:"context"`
	Position   tokenizer.Position `json:"position"`
}

// Disabled reports whether the directive turns logging off
func (l AccessLog) Disabled() bool {
	return l.Path == "off"
}

// parseAccessLog interprets an access_log directive. The first argument
// is the path; a second argument without '=' is the format name;
// if=condition arguments are collected with the prefix stripped; other
// key=value arguments (buffer, flush, gzip) land in Options.
func parseAccessLog(d *parser.Directive, ctx Context) (*AccessLog, *Error) {
	args := d.ArgStrings()
	if len(args) == 0 {
		return nil, &Error{
			Err:       ErrMissingArgument,
			Directive: "access_log",
			Position:  d.Position,
			Detail:    "need a path",
		}
	}

	log := &AccessLog{Path: args[0], Context: ctx, Position: d.Position}

	if log.Path == "off" {
		return log, nil
	}

	for i, arg := range args[1:] {
		switch {
		case strings.HasPrefix(arg, "if="):
			log.Conditions = append(log.Conditions, strings.TrimPrefix(arg, "if="))
		case strings.Contains(arg, "="):
			key, value, _ := strings.Cut(arg, "=")
			if log.Options == nil {
				log.Options = map[string]string{}
			}

			log.Options[key] = value
		case i == 0:
			log.FormatName = arg
		}
	}

	return log, nil
}
