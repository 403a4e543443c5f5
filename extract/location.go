package extract

import (
	"encoding/json"
	"strings"

	"github.com/shibukawa/nginxdiscovery/parser"
	"github.com/shibukawa/nginxdiscovery/tokenizer"
)

// Modifier represents the match operator of a location block
type Modifier int

const (
	NONE              Modifier = iota // location /path (prefix match)
	EXACT                             // location = /path
	PREFIX_PRIORITY                   // location ^~ /path
	REGEX                             // location ~ pattern
	REGEX_INSENSITIVE                 // location ~* pattern
)

// String returns the string representation of Modifier
func (m Modifier) String() string {
	switch m {
	case NONE:
		return "none"
	case EXACT:
		return "exact"
	case PREFIX_PRIORITY:
		return "prefix_priority"
	case REGEX:
		return "regex"
	case REGEX_INSENSITIVE:
		return "regex_insensitive"
	default:
		return "unknown"
	}
}

// Operator returns the NGINX operator for the modifier ("" for NONE)
func (m Modifier) Operator() string {
	switch m {
	case EXACT:
		return "="
	case PREFIX_PRIORITY:
		return "^~"
	case REGEX:
		return "~"
	case REGEX_INSENSITIVE:
		return "~*"
	default:
		return ""
	}
}

// MarshalJSON serializes the modifier as its lowercase name
func (m Modifier) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// Location represents an NGINX location block. Named locations
// (location @name) have Modifier NONE and the @name as path.
type Location struct {
	Path          string             `json:"path"`
	Modifier      Modifier           `json:"modifier"`
	AccessLogs    []AccessLog        `json:"access_logs,omitempty"`
	ProxyPass     string             `json:"proxy_pass,omitempty"`
	Root          string             `json:"root,omitempty"`
	Alias         string             `json:"alias,omitempty"`
	TryFiles      []string           `json:"try_files,omitempty"`
	RawDirectives []parser.Directive `json:"-"`
	Position      tokenizer.Position `json:"position"`
}

// IsProxy reports whether the location forwards to an upstream
func (l Location) IsProxy() bool {
	return l.ProxyPass != ""
}

// IsStatic reports whether the location serves files directly
func (l Location) IsStatic() bool {
	return !l.IsProxy() && (l.Root != "" || l.Alias != "" || len(l.TryFiles) > 0)
}

// splitLocationArgs determines modifier and path from the head arguments
// of a location block. The modifier may be fused to the path
// (location =/exact), which NGINX accepts.
func splitLocationArgs(args []string) (Modifier, string) {
	if len(args) == 0 {
		return NONE, "/"
	}

	modifier := NONE

	switch args[0] {
	case "=":
		modifier = EXACT
	case "^~":
		modifier = PREFIX_PRIORITY
	case "~":
		modifier = REGEX
	case "~*":
		modifier = REGEX_INSENSITIVE
	default:
		for _, m := range []Modifier{REGEX_INSENSITIVE, PREFIX_PRIORITY, EXACT, REGEX} {
			op := m.Operator()
			if strings.HasPrefix(args[0], op) && len(args[0]) > len(op) {
				return m, args[0][len(op):]
			}
		}

		return NONE, args[0]
	}

	if len(args) > 1 {
		return modifier, args[1]
	}

	if modifier == REGEX || modifier == REGEX_INSENSITIVE {
		return modifier, ""
	}

	return modifier, "/"
}

// parseLocation interprets a location block. Nested locations are
// flattened into the returned slice after their parent; the parent's
// RawDirectives keep only its own body.
func parseLocation(d *parser.Directive) ([]Location, []error) {
	modifier, path := splitLocationArgs(d.ArgStrings())

	location := Location{Path: path, Modifier: modifier, Position: d.Position}

	var (
		nested   []Location
		warnings []error
	)

	if d.Block != nil {
		location.RawDirectives = d.Block.Directives

		for i := range d.Block.Directives {
			child := &d.Block.Directives[i]

			switch child.Name {
			case "proxy_pass":
				if v, ok := child.FirstArg(); ok {
					location.ProxyPass = v
				}
			case "root":
				if v, ok := child.FirstArg(); ok {
					location.Root = v
				}
			case "alias":
				if v, ok := child.FirstArg(); ok {
					location.Alias = v
				}
			case "try_files":
				// surface form: try_files arguments are mostly variables
				location.TryFiles = append(location.TryFiles, child.SurfaceArgs()...)
			case "access_log":
				log, warn := parseAccessLog(child, LocationContext(path))
				if warn != nil {
					warnings = append(warnings, warn)
				}

				if log != nil {
					location.AccessLogs = append(location.AccessLogs, *log)
				}
			case "location":
				locations, ws := parseLocation(child)
				nested = append(nested, locations...)
				warnings = append(warnings, ws...)
			}
		}
	}

	return append([]Location{location}, nested...), warnings
}
