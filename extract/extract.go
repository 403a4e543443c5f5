// Package extract recognizes well-known directive patterns in a parsed
// NGINX configuration and produces typed records: server blocks with
// their listen directives and locations, log formats, and access/error
// logs with their enclosing context.
//
// Extractors are pure functions over an immutable *parser.Config. A
// malformed directive never aborts extraction: the record is dropped
// (an error_log with an unknown level is kept as written) and a warning
// describing it is returned alongside the results. Use
// Strict to promote warnings to a hard failure.
package extract

import (
	"github.com/shibukawa/nginxdiscovery/parser"
)

// Servers extracts one record per server block under http, plus any
// misplaced server blocks at the top level.
func Servers(config *parser.Config) ([]Server, []error) {
	var (
		servers  []Server
		warnings []error
	)

	collect := func(d *parser.Directive) {
		server, ws := buildServer(d)
		warnings = append(warnings, ws...)

		if server != nil {
			servers = append(servers, *server)
		}
	}

	for i := range config.Directives {
		d := &config.Directives[i]

		switch d.Name {
		case "server":
			collect(d)
		case "http":
			for _, s := range d.FindChildren("server") {
				collect(s)
			}
		}
	}

	return servers, warnings
}

// LogFormats extracts every log_format directive in the configuration
func LogFormats(config *parser.Config) ([]LogFormat, []error) {
	var (
		formats  []LogFormat
		warnings []error
	)

	walk(config.Directives, Context{Kind: MAIN}, func(d *parser.Directive, _ Context) {
		if d.Name != "log_format" {
			return
		}

		format, warn := parseLogFormat(d)
		if warn != nil {
			warnings = append(warnings, warn)
		}

		if format != nil {
			formats = append(formats, *format)
		}
	})

	return formats, warnings
}

// AccessLogs extracts every access_log directive with its enclosing
// context.
func AccessLogs(config *parser.Config) ([]AccessLog, []error) {
	var (
		logs     []AccessLog
		warnings []error
	)

	walk(config.Directives, Context{Kind: MAIN}, func(d *parser.Directive, ctx Context) {
		if d.Name != "access_log" {
			return
		}

		log, warn := parseAccessLog(d, ctx)
		if warn != nil {
			warnings = append(warnings, warn)
		}

		if log != nil {
			logs = append(logs, *log)
		}
	})

	return logs, warnings
}

// ErrorLogs extracts every error_log directive with its enclosing
// context.
func ErrorLogs(config *parser.Config) ([]ErrorLog, []error) {
	var (
		logs     []ErrorLog
		warnings []error
	)

	walk(config.Directives, Context{Kind: MAIN}, func(d *parser.Directive, ctx Context) {
		if d.Name != "error_log" {
			return
		}

		log, warn := parseErrorLog(d, ctx)
		if warn != nil {
			warnings = append(warnings, warn)
		}

		if log != nil {
			logs = append(logs, *log)
		}
	})

	return logs, warnings
}

// walk visits every directive depth-first in source order. http, server,
// and location blocks push a new context; any other block passes the
// current one through unchanged.
func walk(directives []parser.Directive, ctx Context, visit func(d *parser.Directive, ctx Context)) {
	for i := range directives {
		d := &directives[i]

		visit(d, ctx)

		if d.Block == nil {
			continue
		}

		child := ctx

		switch d.Name {
		case "http":
			child = Context{Kind: HTTP}
		case "server":
			child = ServerContext(serverNameOf(d))
		case "location":
			_, path := splitLocationArgs(d.ArgStrings())
			child = LocationContext(path)
		}

		walk(d.Block.Directives, child, visit)
	}
}
