package config

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/mcpcall/mcpcall/internal/perms"
)

// Init creates the base skeleton configuration file for an mcpcall project.
func (d *DefaultLoader) Init(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	content := `endpoints = []`

	if err := os.WriteFile(path, []byte(content), perms.RegularFile); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}

func (d *DefaultLoader) Load(path string) (Modifier, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("%w: path cannot be empty", ErrConfigLoadFailed)
	}

	_, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: config file cannot be found, run: 'mcpcall init'", ErrConfigLoadFailed)
		}
		return nil, fmt.Errorf("%w: failed to stat config file (%s): %w", ErrConfigLoadFailed, path, err)
	}

	var cfg *Config
	_, err = toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode config from file (%s): %w", ErrConfigLoadFailed, path, err)
	}
	if cfg == nil {
		return nil, fmt.Errorf("%w: config file is empty (%s)", ErrConfigLoadFailed, path)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%w: failed to validate existing config (%s): %w", ErrConfigLoadFailed, path, err)
	}

	// Update the path that loaded this file to track it.
	cfg.configFilePath = path

	return cfg, nil
}

// AddEndpoint attempts to persist a new endpoint to the configuration file (.mcpcall.toml).
func (c *Config) AddEndpoint(entry EndpointEntry) error {
	c.Endpoints = append(c.Endpoints, entry)

	if err := c.validate(); err != nil {
		return err
	}

	if err := c.saveConfig(); err != nil {
		return fmt.Errorf("failed to save updated config: %w", err)
	}

	return nil
}

// RemoveEndpoint removes an endpoint entry by name from the configuration file (.mcpcall.toml).
func (c *Config) RemoveEndpoint(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("endpoint name cannot be empty")
	}

	filtered := make([]EndpointEntry, 0, len(c.Endpoints))
	for _, e := range c.Endpoints {
		if e.Name != name {
			filtered = append(filtered, e)
		}
	}

	if len(filtered) == len(c.Endpoints) {
		return fmt.Errorf("endpoint '%s' not found in config", name)
	}

	c.Endpoints = filtered

	if err := c.validate(); err != nil {
		return err
	}

	if err := c.saveConfig(); err != nil {
		return fmt.Errorf("failed to save updated config: %w", err)
	}

	return nil
}

// ListEndpoints returns a copy of the currently configured endpoint entries.
// This provides read-only access to the internal configuration without exposing
// direct mutation of the underlying slice.
func (c *Config) ListEndpoints() []EndpointEntry {
	return slices.Clone(c.Endpoints)
}

// Endpoint returns the endpoint entry with the given name.
// It returns a boolean to indicate whether the endpoint was found.
func (c *Config) Endpoint(name string) (EndpointEntry, bool) {
	for _, e := range c.Endpoints {
		if e.Name == name {
			return e, true
		}
	}
	return EndpointEntry{}, false
}

func (c *Config) saveConfig() error {
	if c.configFilePath == "" {
		return fmt.Errorf("config file path not present")
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(c.configFilePath, data, perms.RegularFile)
}

// validate orchestrates validation of configuration structure.
func (c *Config) validate() error {
	if err := c.validateFields(); err != nil {
		return err
	}
	if err := c.validateDistinct(); err != nil {
		return err
	}
	return nil
}

// validateFields ensures that every EndpointEntry has a name, a base URL,
// a recognized call style, and parseable tool schemas.
func (c *Config) validateFields() error {
	for _, entry := range c.Endpoints {
		if strings.TrimSpace(entry.Name) == "" {
			return fmt.Errorf("endpoint entry has empty name")
		}
		if strings.TrimSpace(entry.BaseURL) == "" {
			return fmt.Errorf("endpoint '%s' has empty base_url", entry.Name)
		}
		if s := entry.EffectiveStyle(); s != StylePath && s != StyleEnvelope {
			return fmt.Errorf("endpoint '%s' has unknown style '%s'", entry.Name, entry.Style)
		}
		if entry.MaxRetries < 0 {
			return fmt.Errorf("endpoint '%s' has negative max_retries", entry.Name)
		}
		for _, tool := range entry.Tools {
			if strings.TrimSpace(tool.Name) == "" {
				return fmt.Errorf("endpoint '%s' has a tool entry with empty name", entry.Name)
			}
			if tool.Schema != "" && !json.Valid([]byte(tool.Schema)) {
				return fmt.Errorf("endpoint '%s' tool '%s' has invalid schema JSON", entry.Name, tool.Name)
			}
		}
	}
	return nil
}

// validateDistinct ensures that all EndpointEntry's in Config are distinct
// (no duplicate endpoint names allowed).
func (c *Config) validateDistinct() error {
	seen := map[string]struct{}{}

	for _, entry := range c.Endpoints {
		if _, ok := seen[entry.Name]; ok {
			return fmt.Errorf("duplicate endpoint name '%s'", entry.Name)
		}
		seen[entry.Name] = struct{}{}
	}
	return nil
}
