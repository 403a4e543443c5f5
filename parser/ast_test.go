package parser

import (
	"encoding/json"
	"testing"

	"github.com/alecthomas/assert/v2"
)

const sampleConfig = `
user nginx;
http {
    log_format main '$remote_addr';
    server {
        listen 80;
        server_name example.com;
        location /api {
            proxy_pass http://backend;
        }
    }
    server {
        listen 443 ssl;
    }
}
`

func TestFindDirectives(t *testing.T) {
	config, err := Parse(sampleConfig)
	assert.NoError(t, err)

	assert.Equal(t, 1, len(config.FindDirectives("user")))
	assert.Equal(t, 1, len(config.FindDirectives("http")))
	// top level only
	assert.Equal(t, 0, len(config.FindDirectives("server")))
}

func TestFindDirectivesRecursive(t *testing.T) {
	config, err := Parse(sampleConfig)
	assert.NoError(t, err)

	servers := config.FindDirectivesRecursive("server")
	assert.Equal(t, 2, len(servers))

	listens := config.FindDirectivesRecursive("listen")
	assert.Equal(t, 2, len(listens))
	assert.Equal(t, []string{"80"}, listens[0].ArgStrings())
	assert.Equal(t, []string{"443", "ssl"}, listens[1].ArgStrings())
}

func TestFindChildren(t *testing.T) {
	config, err := Parse(sampleConfig)
	assert.NoError(t, err)

	http := config.FindDirectives("http")[0]
	assert.Equal(t, 2, len(http.FindChildren("server")))
	// children only, not grandchildren
	assert.Equal(t, 0, len(http.FindChildren("listen")))
}

func TestFindRecursive(t *testing.T) {
	config, err := Parse(sampleConfig)
	assert.NoError(t, err)

	http := config.FindDirectives("http")[0]
	assert.Equal(t, 2, len(http.FindRecursive("listen")))
	assert.Equal(t, 1, len(http.FindRecursive("proxy_pass")))
}

func TestFirstArg(t *testing.T) {
	config, err := Parse("user nginx;\nevents { }")
	assert.NoError(t, err)

	arg, ok := config.Directives[0].FirstArg()
	assert.True(t, ok)
	assert.Equal(t, "nginx", arg)

	_, ok = config.Directives[1].FirstArg()
	assert.False(t, ok)
}

func TestMarshalJSON(t *testing.T) {
	config, err := Parse("user nginx;")
	assert.NoError(t, err)

	data, err := json.Marshal(config)
	assert.NoError(t, err)

	expected := `{"directives":[{"name":"user","args":["nginx"],"block":null,"position":{"line":1,"column":1}}]}`
	assert.Equal(t, expected, string(data))
}

func TestMarshalJSONBlock(t *testing.T) {
	config, err := Parse("events { worker_connections 1024; }")
	assert.NoError(t, err)

	data, err := json.Marshal(config)
	assert.NoError(t, err)

	expected := `{"directives":[{"name":"events","args":[],"block":` +
		`{"directives":[{"name":"worker_connections","args":["1024"],"block":null,"position":{"line":1,"column":10}}]}` +
		`,"position":{"line":1,"column":1}}]}`
	assert.Equal(t, expected, string(data))
}

func TestMarshalJSONQuotedAndVariableArgs(t *testing.T) {
	config, err := Parse(`log_format main '$remote_addr $request';`)
	assert.NoError(t, err)

	data, err := json.Marshal(config.Directives[0])
	assert.NoError(t, err)

	assert.Contains(t, string(data), `"args":["main","$remote_addr $request"]`)
}
