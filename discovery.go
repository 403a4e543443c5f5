package nginxdiscovery

import (
	"slices"
	"sync"

	"github.com/shibukawa/nginxdiscovery/extract"
	"github.com/shibukawa/nginxdiscovery/parser"
)

// Discovery answers common questions about a parsed configuration. It
// composes the extractors and memoizes their results, so queries are
// cheap to repeat and safe to run from multiple goroutines.
type Discovery struct {
	config *parser.Config

	serversOnce    sync.Once
	servers        []extract.Server
	serverWarnings []error

	formatsOnce    sync.Once
	formats        []extract.LogFormat
	formatWarnings []error

	accessOnce     sync.Once
	accessLogs     []extract.AccessLog
	accessWarnings []error

	errorsOnce    sync.Once
	errorLogs     []extract.ErrorLog
	errorWarnings []error
}

// ProxyLocation pairs a proxying location with the server it belongs to
type ProxyLocation struct {
	ServerName string
	Location   extract.Location
}

// New creates a Discovery over an already parsed configuration
func New(config *parser.Config) *Discovery {
	return &Discovery{config: config}
}

// FromText parses configuration text and wraps it in a Discovery
func FromText(text string) (*Discovery, error) {
	config, err := Parse(text)
	if err != nil {
		return nil, err
	}

	return New(config), nil
}

// FromFile reads and parses a configuration file and wraps it in a
// Discovery.
func FromFile(path string) (*Discovery, error) {
	config, err := ParseFile(path)
	if err != nil {
		return nil, err
	}

	return New(config), nil
}

// Config returns the underlying directive tree
func (d *Discovery) Config() *parser.Config {
	return d.config
}

// Servers returns every server block
func (d *Discovery) Servers() []extract.Server {
	d.serversOnce.Do(func() {
		d.servers, d.serverWarnings = extract.Servers(d.config)
	})

	return d.servers
}

// SSLServers returns the servers with at least one ssl listen
func (d *Discovery) SSLServers() []extract.Server {
	return FilterSSL(d.Servers())
}

// ProxyServers returns the servers with at least one proxying location
func (d *Discovery) ProxyServers() []extract.Server {
	return FilterProxy(d.Servers())
}

// ServersByPort returns the servers listening on the given port
func (d *Discovery) ServersByPort(port uint16) []extract.Server {
	return FilterByPort(d.Servers(), port)
}

// ServersByName returns the servers whose name matches a shell-style
// wildcard pattern ('*' any sequence, '?' one character).
func (d *Discovery) ServersByName(pattern string) []extract.Server {
	return FilterByName(d.Servers(), pattern)
}

// ListeningPorts returns every listen port in ascending order, without
// duplicates.
func (d *Discovery) ListeningPorts() []uint16 {
	var ports []uint16

	for _, server := range d.Servers() {
		for _, listen := range server.Listens {
			if listen.Port != nil && !slices.Contains(ports, *listen.Port) {
				ports = append(ports, *listen.Port)
			}
		}
	}

	slices.Sort(ports)

	return ports
}

// ProxyLocations returns every location with a proxy_pass, paired with
// its server's name.
func (d *Discovery) ProxyLocations() []ProxyLocation {
	var result []ProxyLocation

	for _, server := range d.Servers() {
		for _, location := range server.Locations {
			if location.IsProxy() {
				result = append(result, ProxyLocation{
					ServerName: server.Name(),
					Location:   location,
				})
			}
		}
	}

	return result
}

// LocationCount returns the total number of locations across all servers
func (d *Discovery) LocationCount() int {
	count := 0
	for _, server := range d.Servers() {
		count += len(server.Locations)
	}

	return count
}

// LogFormats returns every log_format directive
func (d *Discovery) LogFormats() []extract.LogFormat {
	d.formatsOnce.Do(func() {
		d.formats, d.formatWarnings = extract.LogFormats(d.config)
	})

	return d.formats
}

// AccessLogs returns every access_log directive with its context
func (d *Discovery) AccessLogs() []extract.AccessLog {
	d.accessOnce.Do(func() {
		d.accessLogs, d.accessWarnings = extract.AccessLogs(d.config)
	})

	return d.accessLogs
}

// ErrorLogs returns every error_log directive with its context
func (d *Discovery) ErrorLogs() []extract.ErrorLog {
	d.errorsOnce.Do(func() {
		d.errorLogs, d.errorWarnings = extract.ErrorLogs(d.config)
	})

	return d.errorLogs
}

// ServerNames returns the union of all server names, keeping the first
// occurrence of each.
func (d *Discovery) ServerNames() []string {
	var names []string

	for _, server := range d.Servers() {
		for _, name := range server.ServerNames {
			if !slices.Contains(names, name) {
				names = append(names, name)
			}
		}
	}

	return names
}

// AllLogFiles returns the distinct access and error log paths,
// excluding disabled ("off") entries.
func (d *Discovery) AllLogFiles() []string {
	var files []string

	add := func(path string) {
		if path != "off" && !slices.Contains(files, path) {
			files = append(files, path)
		}
	}

	for _, log := range d.AccessLogs() {
		add(log.Path)
	}

	for _, log := range d.ErrorLogs() {
		add(log.Path)
	}

	return files
}

// Warnings returns the extraction warnings accumulated across all
// record kinds. A directive visited by more than one extractor (a bad
// error_log is seen by both Servers and ErrorLogs) is reported once.
func (d *Discovery) Warnings() []error {
	d.Servers()
	d.LogFormats()
	d.AccessLogs()
	d.ErrorLogs()

	var all []error
	all = append(all, d.serverWarnings...)
	all = append(all, d.formatWarnings...)
	all = append(all, d.accessWarnings...)
	all = append(all, d.errorWarnings...)

	seen := map[string]bool{}

	var warnings []error

	for _, warning := range all {
		if msg := warning.Error(); !seen[msg] {
			seen[msg] = true
			warnings = append(warnings, warning)
		}
	}

	return warnings
}
