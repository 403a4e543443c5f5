package extract

import (
	"slices"

	"github.com/shibukawa/nginxdiscovery/parser"
	"github.com/shibukawa/nginxdiscovery/tokenizer"
)

// Server represents one NGINX server block (a virtual host)
type Server struct {
	ServerNames   []string           `json:"server_names"`
	Listens       []ListenDirective  `json:"listen"`
	Locations     []Location         `json:"locations"`
	AccessLogs    []AccessLog        `json:"access_logs,omitempty"`
	ErrorLogs     []ErrorLog         `json:"error_logs,omitempty"`
	Root          string             `json:"root,omitempty"`
	Index         []string           `json:"index,omitempty"`
	RawDirectives []parser.Directive `json:"-"`
	Position      tokenizer.Position `json:"position"`
}

// Name returns the first server name, or UnnamedServer when the block
// has none.
func (s *Server) Name() string {
	if len(s.ServerNames) == 0 {
		return UnnamedServer
	}

	return s.ServerNames[0]
}

// HasSSL reports whether any listen directive enables SSL
func (s *Server) HasSSL() bool {
	for _, l := range s.Listens {
		if l.SSL {
			return true
		}
	}

	return false
}

// Ports returns the distinct listen ports in ascending order
func (s *Server) Ports() []uint16 {
	var ports []uint16

	for _, l := range s.Listens {
		if l.Port != nil && !slices.Contains(ports, *l.Port) {
			ports = append(ports, *l.Port)
		}
	}

	slices.Sort(ports)

	return ports
}

// buildServer interprets one server block
func buildServer(d *parser.Directive) (*Server, []error) {
	if d.Block == nil {
		return nil, nil
	}

	server := &Server{
		ServerNames:   []string{},
		Listens:       []ListenDirective{},
		Locations:     []Location{},
		RawDirectives: d.Block.Directives,
		Position:      d.Position,
	}

	var warnings []error

	context := ServerContext(serverNameOf(d))

	for i := range d.Block.Directives {
		child := &d.Block.Directives[i]

		switch child.Name {
		case "server_name":
			server.ServerNames = append(server.ServerNames, child.ArgStrings()...)
		case "listen":
			listen, warn := parseListen(child)
			if warn != nil {
				warnings = append(warnings, warn)
			}

			if listen != nil {
				server.Listens = append(server.Listens, *listen)
			}
		case "root":
			// last one wins, matching NGINX semantics
			if v, ok := child.FirstArg(); ok {
				server.Root = v
			}
		case "index":
			server.Index = append(server.Index, child.ArgStrings()...)
		case "access_log":
			log, warn := parseAccessLog(child, context)
			if warn != nil {
				warnings = append(warnings, warn)
			}

			if log != nil {
				server.AccessLogs = append(server.AccessLogs, *log)
			}
		case "error_log":
			log, warn := parseErrorLog(child, context)
			if warn != nil {
				warnings = append(warnings, warn)
			}

			if log != nil {
				server.ErrorLogs = append(server.ErrorLogs, *log)
			}
		case "location":
			locations, ws := parseLocation(child)
			server.Locations = append(server.Locations, locations...)
			warnings = append(warnings, ws...)
		}
	}

	return server, warnings
}

// serverNameOf returns the first server_name argument of a server
// block, or UnnamedServer.
func serverNameOf(d *parser.Directive) string {
	for _, child := range d.FindChildren("server_name") {
		if v, ok := child.FirstArg(); ok {
			return v
		}
	}

	return UnnamedServer
}
