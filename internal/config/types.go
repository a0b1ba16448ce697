package config

import (
	"strings"
	"time"
)

var (
	_ Provider = (*DefaultLoader)(nil)
	_ Modifier = (*Config)(nil)
)

// Call styles supported by configured endpoints.
// StylePath posts parameters to {base_url}/{tool}.
// StyleEnvelope posts a {name, arguments} envelope to {base_url}/mcp/tools/call.
const (
	StylePath     = "path"
	StyleEnvelope = "envelope"
)

// Defaults applied when an endpoint entry leaves a field unset.
const (
	DefaultTimeout    = 30 * time.Second
	DefaultMaxRetries = 3
	DefaultHealthPath = "/health"
	DefaultStyle      = StylePath
)

type Loader interface {
	Load(path string) (Modifier, error)
}

type Initializer interface {
	Init(path string) error
}

type Provider interface {
	Initializer
	Loader
}

type Modifier interface {
	AddEndpoint(entry EndpointEntry) error
	RemoveEndpoint(name string) error
	ListEndpoints() []EndpointEntry
	Endpoint(name string) (EndpointEntry, bool)
}

type DefaultLoader struct{}

// Config represents the .mcpcall.toml file structure.
type Config struct {
	Endpoints      []EndpointEntry `toml:"endpoints" yaml:"endpoints"`
	configFilePath string          `toml:"-"          yaml:"-"`
}

// EndpointEntry represents the configuration of a single tool server endpoint.
type EndpointEntry struct {
	// Name is the unique name referenced by the user, e.g. 'image-gen'.
	Name string `json:"name" toml:"name" yaml:"name"`

	// BaseURL is the root URL of the endpoint, e.g. 'http://127.0.0.1:3001'.
	BaseURL string `json:"baseUrl" toml:"base_url" yaml:"base_url"`

	// Timeout bounds each individual call attempt, e.g. '30s'.
	Timeout Duration `json:"timeout,omitempty" toml:"timeout,omitempty" yaml:"timeout,omitempty"`

	// MaxRetries is the number of attempts made before a call is reported failed.
	MaxRetries int `json:"maxRetries,omitempty" toml:"max_retries,omitempty" yaml:"max_retries,omitempty"`

	// HealthPath is the probe path appended to BaseURL, e.g. '/health'.
	HealthPath string `json:"healthPath,omitempty" toml:"health_path,omitempty" yaml:"health_path,omitempty"`

	// Style selects how tool calls are framed on the wire ('path' or 'envelope').
	Style string `json:"style,omitempty" toml:"style,omitempty" yaml:"style,omitempty"`

	// Tools lists the tools allowed on this endpoint.
	// An empty list allows every tool.
	Tools []ToolEntry `json:"tools,omitempty" toml:"tools,omitempty" yaml:"tools,omitempty"`
}

// ToolEntry represents a tool allowed on an endpoint, with an optional inline
// JSON Schema used to validate arguments before any network call is made.
type ToolEntry struct {
	Name   string `json:"name"             toml:"name"             yaml:"name"`
	Schema string `json:"schema,omitempty" toml:"schema,omitempty" yaml:"schema,omitempty"`
}

// EffectiveTimeout returns the configured timeout, or DefaultTimeout when unset.
func (e EndpointEntry) EffectiveTimeout() time.Duration {
	if e.Timeout <= 0 {
		return DefaultTimeout
	}
	return time.Duration(e.Timeout)
}

// EffectiveMaxRetries returns the configured retry budget, or DefaultMaxRetries when unset.
func (e EndpointEntry) EffectiveMaxRetries() int {
	if e.MaxRetries <= 0 {
		return DefaultMaxRetries
	}
	return e.MaxRetries
}

// EffectiveHealthPath returns the configured health path, or DefaultHealthPath when unset.
func (e EndpointEntry) EffectiveHealthPath() string {
	p := strings.TrimSpace(e.HealthPath)
	if p == "" {
		return DefaultHealthPath
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

// EffectiveStyle returns the configured call style, or DefaultStyle when unset.
func (e EndpointEntry) EffectiveStyle() string {
	s := strings.TrimSpace(strings.ToLower(e.Style))
	if s == "" {
		return DefaultStyle
	}
	return s
}

// Tool returns the tool entry with the given name.
// It returns a boolean to indicate whether the tool was found.
func (e EndpointEntry) Tool(name string) (ToolEntry, bool) {
	for _, t := range e.Tools {
		if t.Name == name {
			return t, true
		}
	}
	return ToolEntry{}, false
}

// ToolNames returns the names of all allowed tools for this endpoint.
func (e EndpointEntry) ToolNames() []string {
	names := make([]string, 0, len(e.Tools))
	for _, t := range e.Tools {
		names = append(names, t.Name)
	}
	return names
}
