package extract

import (
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/shibukawa/nginxdiscovery/parser"
)

func TestExtractBasicServer(t *testing.T) {
	config, err := parser.Parse(`
http {
    server {
        listen 80;
        server_name example.com;
        root /var/www/html;
    }
}
`)
	assert.NoError(t, err)

	servers, warnings := Servers(config)
	assert.Equal(t, 0, len(warnings))
	assert.Equal(t, 1, len(servers))

	server := servers[0]
	assert.Equal(t, []string{"example.com"}, server.ServerNames)
	assert.Equal(t, "example.com", server.Name())
	assert.Equal(t, 1, len(server.Listens))
	assert.Equal(t, port(80), server.Listens[0].Port)
	assert.Equal(t, "/var/www/html", server.Root)
}

func TestExtractMultipleServers(t *testing.T) {
	config, err := parser.Parse(`
http {
    server {
        listen 80;
        server_name example.com;
    }
    server {
        listen 443 ssl;
        server_name secure.example.com;
    }
}
`)
	assert.NoError(t, err)

	servers, _ := Servers(config)

	assert.Equal(t, 2, len(servers))
	assert.False(t, servers[0].HasSSL())
	assert.True(t, servers[1].HasSSL())
	assert.Equal(t, []uint16{80}, servers[0].Ports())
	assert.Equal(t, []uint16{443}, servers[1].Ports())
}

func TestExtractTopLevelServer(t *testing.T) {
	// misplaced but tolerated
	config, err := parser.Parse("server { listen 8080; }")
	assert.NoError(t, err)

	servers, _ := Servers(config)

	assert.Equal(t, 1, len(servers))
	assert.Equal(t, UnnamedServer, servers[0].Name())
	assert.Equal(t, []uint16{8080}, servers[0].Ports())
}

func TestServerNamesAcrossDirectives(t *testing.T) {
	config, err := parser.Parse(`
server {
    server_name example.com www.example.com;
    server_name example.org;
}
`)
	assert.NoError(t, err)

	servers, _ := Servers(config)

	assert.Equal(t, []string{"example.com", "www.example.com", "example.org"}, servers[0].ServerNames)
	assert.Equal(t, "example.com", servers[0].Name())
}

func TestServerRootLastWins(t *testing.T) {
	config, err := parser.Parse(`
server {
    root /var/www/old;
    root /var/www/new;
}
`)
	assert.NoError(t, err)

	servers, _ := Servers(config)

	assert.Equal(t, "/var/www/new", servers[0].Root)
}

func TestServerIndexMerged(t *testing.T) {
	config, err := parser.Parse(`
server {
    index index.html index.htm;
    index index.php;
}
`)
	assert.NoError(t, err)

	servers, _ := Servers(config)

	assert.Equal(t, []string{"index.html", "index.htm", "index.php"}, servers[0].Index)
}

func TestServerLogsExcludeLocations(t *testing.T) {
	config, err := parser.Parse(`
server {
    server_name example.com;
    access_log /var/log/nginx/server.log;
    error_log /var/log/nginx/error.log warn;
    location /api {
        access_log /var/log/nginx/api.log;
    }
}
`)
	assert.NoError(t, err)

	servers, _ := Servers(config)
	server := servers[0]

	// only the directive directly inside the server block
	assert.Equal(t, 1, len(server.AccessLogs))
	assert.Equal(t, "/var/log/nginx/server.log", server.AccessLogs[0].Path)
	assert.Equal(t, ServerContext("example.com"), server.AccessLogs[0].Context)

	assert.Equal(t, 1, len(server.ErrorLogs))
	assert.Equal(t, "warn", server.ErrorLogs[0].Level)

	// the location keeps its own
	assert.Equal(t, 1, len(server.Locations))
	assert.Equal(t, 1, len(server.Locations[0].AccessLogs))
}

func TestServerPortsAreSortedAndUnique(t *testing.T) {
	config, err := parser.Parse(`
server {
    listen 443 ssl;
    listen 80;
    listen [::]:80;
}
`)
	assert.NoError(t, err)

	servers, _ := Servers(config)

	assert.Equal(t, []uint16{80, 443}, servers[0].Ports())
}

func TestServerRawDirectives(t *testing.T) {
	config, err := parser.Parse(`
server {
    listen 80;
    gzip on;
    charset utf-8;
}
`)
	assert.NoError(t, err)

	servers, _ := Servers(config)

	assert.Equal(t, 3, len(servers[0].RawDirectives))
	assert.Equal(t, "gzip", servers[0].RawDirectives[1].Name)
}

func TestServerPosition(t *testing.T) {
	config, err := parser.Parse("http {\n    server { listen 80; }\n}")
	assert.NoError(t, err)

	servers, _ := Servers(config)

	assert.Equal(t, 2, servers[0].Position.Line)
	assert.Equal(t, 5, servers[0].Position.Column)
}

func TestServersIgnoreNonServerBlocks(t *testing.T) {
	config, err := parser.Parse(`
http {
    upstream backend {
        server 127.0.0.1:3000;
    }
    server {
        listen 80;
    }
}
`)
	assert.NoError(t, err)

	servers, _ := Servers(config)

	// the upstream's server directive is not a server block
	assert.Equal(t, 1, len(servers))
}
