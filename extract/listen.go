package extract

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shibukawa/nginxdiscovery/parser"
	"github.com/shibukawa/nginxdiscovery/tokenizer"
)

// ListenDirective represents an NGINX listen directive. Port is nil for
// address-only and unix: endpoints.
type ListenDirective struct {
	Address       string             `json:"address"`
	Port          *uint16            `json:"port"`
	SSL           bool               `json:"ssl"`
	HTTP2         bool               `json:"http2"`
	HTTP3         bool               `json:"http3"`
	DefaultServer bool               `json:"default_server"`
	Reuseport     bool               `json:"reuseport"`
	Backlog       *uint32            `json:"backlog,omitempty"`
	IPv6Only      *bool              `json:"ipv6only,omitempty"`
	Raw           []string           `json:"raw,omitempty"`
	Position      tokenizer.Position `json:"position"`
}

// parseListen interprets a listen directive. The first argument is the
// endpoint unless it is itself a recognized flag, in which case the
// directive binds the wildcard address with no port. Unknown arguments
// are kept verbatim in Raw; only a missing or malformed endpoint (a bad
// port or an unbalanced '[...]' address) fails the directive.
func parseListen(d *parser.Directive) (*ListenDirective, *Error) {
	args := d.ArgStrings()
	if len(args) == 0 {
		return nil, &Error{
			Err:       ErrMissingArgument,
			Directive: "listen",
			Position:  d.Position,
			Detail:    "need an address or port",
		}
	}

	listen := &ListenDirective{Address: "*", Position: d.Position}

	rest := args
	if !isListenFlag(args[0]) {
		address, port, err := parseEndpoint(args[0])
		if err != nil {
			return nil, &Error{
				Err:       ErrInvalidListen,
				Directive: "listen",
				Position:  d.Position,
				Detail:    err.Error(),
			}
		}

		listen.Address = address
		listen.Port = port
		rest = args[1:]
	}

	for _, arg := range rest {
		switch {
		case arg == "ssl":
			listen.SSL = true
		case arg == "http2":
			listen.HTTP2 = true
		case arg == "http3" || arg == "quic":
			listen.HTTP3 = true
		case arg == "default_server" || arg == "default":
			listen.DefaultServer = true
		case arg == "reuseport":
			listen.Reuseport = true
		case strings.HasPrefix(arg, "backlog="):
			n, err := strconv.ParseUint(strings.TrimPrefix(arg, "backlog="), 10, 32)
			if err != nil {
				listen.Raw = append(listen.Raw, arg)
				continue
			}

			backlog := uint32(n)
			listen.Backlog = &backlog
		case strings.HasPrefix(arg, "ipv6only="):
			switch strings.TrimPrefix(arg, "ipv6only=") {
			case "on":
				on := true
				listen.IPv6Only = &on
			case "off":
				off := false
				listen.IPv6Only = &off
			default:
				listen.Raw = append(listen.Raw, arg)
			}
		default:
			listen.Raw = append(listen.Raw, arg)
		}
	}

	return listen, nil
}

// isListenFlag reports whether arg is a recognized non-endpoint argument
func isListenFlag(arg string) bool {
	switch arg {
	case "ssl", "http2", "http3", "quic", "default_server", "default", "reuseport":
		return true
	}

	return strings.HasPrefix(arg, "backlog=") || strings.HasPrefix(arg, "ipv6only=")
}

// parseEndpoint splits a listen endpoint into address and optional port.
//
//	"80"                  -> ("*", 80)
//	"0.0.0.0:8080"        -> ("0.0.0.0", 8080)
//	"localhost:3000"      -> ("localhost", 3000)
//	"[::]:443"            -> ("::", 443)
//	"192.168.1.1"         -> ("192.168.1.1", nil)
//	"unix:/run/nginx.sock" -> ("unix:/run/nginx.sock", nil)
func parseEndpoint(arg string) (string, *uint16, error) {
	if isDigits(arg) {
		port, err := parsePort(arg)
		if err != nil {
			return "", nil, err
		}

		return "*", port, nil
	}

	if strings.HasPrefix(arg, "unix:") {
		return arg, nil, nil
	}

	if strings.HasPrefix(arg, "[") {
		end := strings.IndexByte(arg, ']')
		if end < 0 {
			return "", nil, fmt.Errorf("missing ']' in %q", arg)
		}

		address := arg[1:end]

		rest := arg[end+1:]
		if rest == "" {
			return address, nil, nil
		}

		if !strings.HasPrefix(rest, ":") {
			return "", nil, fmt.Errorf("unexpected %q after ']' in %q", rest, arg)
		}

		port, err := parsePort(rest[1:])
		if err != nil {
			return "", nil, err
		}

		return address, port, nil
	}

	if i := strings.LastIndexByte(arg, ':'); i >= 0 && isDigits(arg[i+1:]) {
		port, err := parsePort(arg[i+1:])
		if err != nil {
			return "", nil, err
		}

		return arg[:i], port, nil
	}

	return arg, nil, nil
}

func parsePort(s string) (*uint16, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("port %q is not a number", s)
	}

	if n < 1 || n > 65535 {
		return nil, fmt.Errorf("port %d out of range 1..65535", n)
	}

	port := uint16(n)

	return &port, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}

	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return true
}
