package nginxdiscovery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestParse(t *testing.T) {
	config, err := Parse("user nginx;\nworker_processes auto;")
	assert.NoError(t, err)

	assert.Equal(t, 2, len(config.Directives))
	assert.Equal(t, "user", config.Directives[0].Name)
	assert.Equal(t, "worker_processes", config.Directives[1].Name)
}

func TestParseWithSource(t *testing.T) {
	_, err := ParseWithSource("server {", "site.conf")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "site.conf")

	// positions are unchanged by the source label
	config, err := ParseWithSource("user nginx;", "site.conf")
	assert.NoError(t, err)
	assert.Equal(t, 1, config.Directives[0].Position.Line)
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nginx.conf")

	content := `
http {
    server {
        listen 80;
        server_name example.com;
    }
}
`
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	config, err := ParseFile(path)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(config.Directives))

	discovery, err := FromFile(path)
	assert.NoError(t, err)
	assert.Equal(t, []string{"example.com"}, discovery.ServerNames())
}

func TestParseSampleConfig(t *testing.T) {
	discovery, err := FromFile("testdata/nginx.conf")
	assert.NoError(t, err)

	assert.Equal(t, 0, len(discovery.Warnings()))

	servers := discovery.Servers()
	assert.Equal(t, 2, len(servers))
	assert.Equal(t, "example.com", servers[0].Name())
	assert.Equal(t, "api.example.com", servers[1].Name())
	assert.Equal(t, []uint16{80, 443}, discovery.ListeningPorts())
	assert.Equal(t, 1, len(discovery.SSLServers()))
	assert.Equal(t, 4, discovery.LocationCount())

	formats := discovery.LogFormats()
	assert.Equal(t, 1, len(formats))
	assert.Equal(t, "main", formats[0].Name)
	assert.Equal(t, []string{
		"remote_addr", "remote_user", "time_local", "request",
		"status", "body_bytes_sent", "http_referer", "http_user_agent",
	}, formats[0].Variables)

	proxies := discovery.ProxyLocations()
	assert.Equal(t, 1, len(proxies))
	assert.Equal(t, "api.example.com", proxies[0].ServerName)

	// access logs in walk order, then error logs
	assert.Equal(t, []string{
		"/var/log/nginx/access.log",
		"/var/log/nginx/api.log",
		"/var/log/nginx/error.log",
	}, discovery.AllLogFiles())
}

func TestParseFileMissing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "missing.conf"))
	assert.Error(t, err)

	_, err = FromFile(filepath.Join(t.TempDir(), "missing.conf"))
	assert.Error(t, err)
}

func TestParseFileErrorNamesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.conf")
	assert.NoError(t, os.WriteFile(path, []byte("server {\n"), 0o644))

	_, err := ParseFile(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "broken.conf")
}
