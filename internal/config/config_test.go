package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".mcpcall.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultLoader_Init(t *testing.T) {
	t.Parallel()

	loader := &DefaultLoader{}
	path := filepath.Join(t.TempDir(), ".mcpcall.toml")

	require.NoError(t, loader.Init(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "endpoints = []", string(data))

	// Re-initializing an existing project fails.
	require.Error(t, loader.Init(path))
}

func TestDefaultLoader_Load(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
[[endpoints]]
name = "image-gen"
base_url = "http://127.0.0.1:3001"
timeout = "45s"
max_retries = 5
health_path = "/healthz"
style = "envelope"

  [[endpoints.tools]]
  name = "generate_image"
  schema = '{"type":"object","required":["prompt"]}'

[[endpoints]]
name = "news"
base_url = "http://127.0.0.1:3002"
`)

	loader := &DefaultLoader{}
	cfg, err := loader.Load(path)
	require.NoError(t, err)

	endpoints := cfg.ListEndpoints()
	require.Len(t, endpoints, 2)

	img, found := cfg.Endpoint("image-gen")
	require.True(t, found)
	require.Equal(t, "http://127.0.0.1:3001", img.BaseURL)
	require.Equal(t, 45*time.Second, img.EffectiveTimeout())
	require.Equal(t, 5, img.EffectiveMaxRetries())
	require.Equal(t, "/healthz", img.EffectiveHealthPath())
	require.Equal(t, StyleEnvelope, img.EffectiveStyle())
	require.Equal(t, []string{"generate_image"}, img.ToolNames())

	tool, found := img.Tool("generate_image")
	require.True(t, found)
	require.Contains(t, tool.Schema, "prompt")

	// Unset fields fall back to defaults.
	news, found := cfg.Endpoint("news")
	require.True(t, found)
	require.Equal(t, DefaultTimeout, news.EffectiveTimeout())
	require.Equal(t, DefaultMaxRetries, news.EffectiveMaxRetries())
	require.Equal(t, DefaultHealthPath, news.EffectiveHealthPath())
	require.Equal(t, StylePath, news.EffectiveStyle())
}

func TestDefaultLoader_Load_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		path    func(t *testing.T) string
		content string
	}{
		{
			name: "empty path",
			path: func(t *testing.T) string { return "" },
		},
		{
			name: "missing file",
			path: func(t *testing.T) string { return filepath.Join(t.TempDir(), "missing.toml") },
		},
		{
			name: "invalid TOML",
			path: func(t *testing.T) string { return writeConfig(t, `endpoints = [`) },
		},
		{
			name: "missing base_url",
			path: func(t *testing.T) string {
				return writeConfig(t, "[[endpoints]]\nname = \"a\"\n")
			},
		},
		{
			name: "unknown style",
			path: func(t *testing.T) string {
				return writeConfig(t, "[[endpoints]]\nname = \"a\"\nbase_url = \"http://a\"\nstyle = \"soap\"\n")
			},
		},
		{
			name: "duplicate endpoint names",
			path: func(t *testing.T) string {
				return writeConfig(t,
					"[[endpoints]]\nname = \"a\"\nbase_url = \"http://a\"\n\n"+
						"[[endpoints]]\nname = \"a\"\nbase_url = \"http://b\"\n")
			},
		},
		{
			name: "invalid tool schema JSON",
			path: func(t *testing.T) string {
				return writeConfig(t,
					"[[endpoints]]\nname = \"a\"\nbase_url = \"http://a\"\n"+
						"  [[endpoints.tools]]\n  name = \"t\"\n  schema = \"{\"\n")
			},
		},
	}

	loader := &DefaultLoader{}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := loader.Load(tc.path(t))
			require.Error(t, err)
			require.ErrorIs(t, err, ErrConfigLoadFailed)
		})
	}
}

func TestConfig_AddAndRemoveEndpoint(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "[[endpoints]]\nname = \"existing\"\nbase_url = \"http://e\"\n")

	loader := &DefaultLoader{}
	cfg, err := loader.Load(path)
	require.NoError(t, err)

	require.NoError(t, cfg.AddEndpoint(EndpointEntry{
		Name:    "added",
		BaseURL: "http://a",
		Timeout: Duration(10 * time.Second),
	}))

	// Changes are persisted to disk.
	reloaded, err := loader.Load(path)
	require.NoError(t, err)
	added, found := reloaded.Endpoint("added")
	require.True(t, found)
	require.Equal(t, 10*time.Second, added.EffectiveTimeout())

	require.NoError(t, reloaded.RemoveEndpoint("added"))
	reloaded, err = loader.Load(path)
	require.NoError(t, err)
	_, found = reloaded.Endpoint("added")
	require.False(t, found)

	require.Error(t, reloaded.RemoveEndpoint("never-existed"))
}

func TestConfig_AddEndpoint_RejectsDuplicate(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "[[endpoints]]\nname = \"existing\"\nbase_url = \"http://e\"\n")

	loader := &DefaultLoader{}
	cfg, err := loader.Load(path)
	require.NoError(t, err)

	err = cfg.AddEndpoint(EndpointEntry{Name: "existing", BaseURL: "http://other"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "duplicate endpoint name")
}

func TestDuration_TextRoundTrip(t *testing.T) {
	t.Parallel()

	var d Duration
	require.NoError(t, d.UnmarshalText([]byte("1m30s")))
	require.Equal(t, Duration(90*time.Second), d)

	text, err := d.MarshalText()
	require.NoError(t, err)
	require.Equal(t, "1m30s", string(text))

	require.Error(t, d.UnmarshalText([]byte("not a duration")))
}
