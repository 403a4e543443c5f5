package nginxdiscovery

import (
	wildcard "github.com/IGLOU-EU/go-wildcard/v2"

	"github.com/shibukawa/nginxdiscovery/extract"
)

// FilterSSL keeps the servers with at least one ssl listen
func FilterSSL(servers []extract.Server) []extract.Server {
	var result []extract.Server

	for _, server := range servers {
		if server.HasSSL() {
			result = append(result, server)
		}
	}

	return result
}

// FilterProxy keeps the servers with at least one proxying location
func FilterProxy(servers []extract.Server) []extract.Server {
	var result []extract.Server

	for _, server := range servers {
		for _, location := range server.Locations {
			if location.IsProxy() {
				result = append(result, server)
				break
			}
		}
	}

	return result
}

// FilterByPort keeps the servers with a listen on the given port
func FilterByPort(servers []extract.Server, port uint16) []extract.Server {
	var result []extract.Server

	for _, server := range servers {
		for _, listen := range server.Listens {
			if listen.Port != nil && *listen.Port == port {
				result = append(result, server)
				break
			}
		}
	}

	return result
}

// FilterByName keeps the servers with a server name matching the
// shell-style wildcard pattern: '*' matches any sequence, '?' matches
// a single character.
func FilterByName(servers []extract.Server, pattern string) []extract.Server {
	var result []extract.Server

	for _, server := range servers {
		for _, name := range server.ServerNames {
			if wildcard.Match(pattern, name) {
				result = append(result, server)
				break
			}
		}
	}

	return result
}
