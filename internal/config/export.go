package config

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ExportYAML writes the endpoint registry as a YAML document.
// The output is safe to check into version control: entries carry no secrets,
// only endpoint addresses, retry policy, and tool allow-lists.
func ExportYAML(w io.Writer, endpoints []EndpointEntry) error {
	doc := struct {
		Endpoints []EndpointEntry `yaml:"endpoints"`
	}{
		Endpoints: endpoints,
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer func() { _ = enc.Close() }()

	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode endpoints as YAML: %w", err)
	}

	return nil
}
