package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestExportYAML(t *testing.T) {
	t.Parallel()

	endpoints := []EndpointEntry{
		{
			Name:       "image-gen",
			BaseURL:    "http://127.0.0.1:3001",
			Timeout:    Duration(45 * time.Second),
			MaxRetries: 5,
			Style:      StyleEnvelope,
			Tools:      []ToolEntry{{Name: "generate_image"}},
		},
		{
			Name:    "news",
			BaseURL: "http://127.0.0.1:3002",
		},
	}

	var sb strings.Builder
	require.NoError(t, ExportYAML(&sb, endpoints))

	out := sb.String()
	require.Contains(t, out, "name: image-gen")
	require.Contains(t, out, "timeout: 45s")
	require.Contains(t, out, "style: envelope")

	// Optional fields left unset are omitted entirely.
	require.NotContains(t, out, "health_path")

	// The document round-trips back into the same entries.
	var doc struct {
		Endpoints []EndpointEntry `yaml:"endpoints"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Endpoints, 2)
	require.Equal(t, "image-gen", doc.Endpoints[0].Name)
	require.Equal(t, Duration(45*time.Second), doc.Endpoints[0].Timeout)
}
