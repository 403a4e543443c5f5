// Package nginxdiscovery parses NGINX configuration files into a typed,
// queryable representation.
//
// Three levels of API are available:
//
//  1. The Discovery façade for common questions: which servers exist,
//     which ports they listen on, where the logs go.
//  2. The extract package for typed records of individual directive
//     families (servers, listens, locations, log formats, logs).
//  3. The tokenizer and parser packages for direct access to the token
//     stream and the directive tree.
//
// The library analyzes configuration text only. It does not resolve
// include directives, evaluate map/if/geo blocks, substitute variables,
// or touch the filesystem beyond reading the file handed to ParseFile.
//
//	discovery, err := nginxdiscovery.FromFile("/etc/nginx/nginx.conf")
//	if err != nil {
//		return err
//	}
//	for _, server := range discovery.Servers() {
//		fmt.Println(server.Name(), server.Ports())
//	}
package nginxdiscovery

import (
	"os"

	"github.com/shibukawa/nginxdiscovery/parser"
)

// Parse parses configuration text into a directive tree
func Parse(text string) (*parser.Config, error) {
	return parser.Parse(text)
}

// ParseWithSource parses configuration text; errors name the given
// source file. Positions are unchanged.
func ParseWithSource(text, source string) (*parser.Config, error) {
	return parser.Parse(text, parser.Options{Source: source})
}

// ParseFile reads and parses a configuration file. The concatenated
// dump emitted by nginx -T parses the same way.
func ParseFile(path string) (*parser.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return parser.Parse(string(data), parser.Options{Source: path})
}
