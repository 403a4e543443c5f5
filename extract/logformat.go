package extract

import (
	"strings"

	"github.com/shibukawa/nginxdiscovery/parser"
	"github.com/shibukawa/nginxdiscovery/tokenizer"
)

// LogFormat represents an NGINX log_format directive
type LogFormat struct {
	Name      string             `json:"name"`
	Pattern   string             `json:"pattern"`
	Variables []string           `json:"variables"`
	Position  tokenizer.Position `json:"position"`
}

// NewLogFormat creates a log format record, extracting the variables
// referenced by the pattern.
func NewLogFormat(name, pattern string) LogFormat {
	return LogFormat{
		Name:      name,
		Pattern:   pattern,
		Variables: Variables(pattern),
	}
}

// Variables returns the variable names referenced as $name or ${name}
// inside pattern, in order of first appearance, without duplicates.
// A name is a letter or underscore followed by letters, digits, or
// underscores.
func Variables(pattern string) []string {
	var names []string

	seen := map[string]bool{}

	for i := 0; i < len(pattern); i++ {
		if pattern[i] != '$' {
			continue
		}

		var name string

		if i+1 < len(pattern) && pattern[i+1] == '{' {
			end := strings.IndexByte(pattern[i+2:], '}')
			if end < 0 {
				continue
			}

			name = pattern[i+2 : i+2+end]
			i += 2 + end
		} else {
			j := i + 1
			for j < len(pattern) && isVariableNameByte(pattern[j], j > i+1) {
				j++
			}

			name = pattern[i+1 : j]
			i = j - 1
		}

		if !isVariableName(name) {
			continue
		}

		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}

	return names
}

func isVariableNameByte(b byte, continuation bool) bool {
	if b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') {
		return true
	}

	return continuation && b >= '0' && b <= '9'
}

func isVariableName(name string) bool {
	if name == "" {
		return false
	}

	for i := 0; i < len(name); i++ {
		if !isVariableNameByte(name[i], i > 0) {
			return false
		}
	}

	return true
}

// parseLogFormat interprets a log_format directive: the first argument
// is the format name, the remaining arguments joined with single spaces
// form the pattern.
func parseLogFormat(d *parser.Directive) (*LogFormat, *Error) {
	args := d.ArgStrings()
	if len(args) < 2 {
		return nil, &Error{
			Err:       ErrMalformedLogFormat,
			Directive: "log_format",
			Position:  d.Position,
			Detail:    "need a name and a pattern",
		}
	}

	format := NewLogFormat(args[0], strings.Join(args[1:], " "))
	format.Position = d.Position

	return &format, nil
}
