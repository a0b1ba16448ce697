package client

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/mcpcall/mcpcall/internal/config"
	"github.com/mcpcall/mcpcall/internal/errors"
)

// Manager holds clients for all configured endpoints.
// It is safe for concurrent use by multiple goroutines; endpoints are fully
// independent and calls across them are never serialized.
type Manager struct {
	mu      sync.RWMutex
	clients map[string]*Client
}

// NewManager creates an empty, concurrency-safe Manager.
func NewManager() *Manager {
	return &Manager{
		clients: make(map[string]*Client),
	}
}

// NewManagerFromConfig creates one client per configured endpoint.
// The same options are applied to every client.
func NewManagerFromConfig(endpoints []config.EndpointEntry, opt ...Option) (*Manager, error) {
	m := NewManager()
	for _, e := range endpoints {
		c, err := New(e, opt...)
		if err != nil {
			return nil, fmt.Errorf("failed to create client for endpoint '%s': %w", e.Name, err)
		}
		m.Add(e.Name, c)
	}
	return m, nil
}

// Add registers a client by endpoint name.
// This method is safe for concurrent use.
func (m *Manager) Add(name string, c *Client) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clients[name] = c
}

// Client returns the client for the given endpoint name.
// It returns a boolean to indicate whether the client was found.
// This method is safe for concurrent use.
func (m *Manager) Client(name string) (*Client, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.clients[name]
	return c, ok
}

// List returns all known endpoint names, sorted.
// This method is safe for concurrent use.
func (m *Manager) List() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.clients))
	for name := range m.clients {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Remove deletes the client for the given endpoint name.
// This method is safe for concurrent use.
func (m *Manager) Remove(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.clients, name)
}

// CallTool invokes a tool on the named endpoint.
func (m *Manager) CallTool(ctx context.Context, endpoint, tool string, args map[string]any) (*Result, error) {
	c, ok := m.Client(endpoint)
	if !ok {
		return nil, fmt.Errorf("%w: %s", errors.ErrEndpointNotFound, endpoint)
	}
	return c.CallTool(ctx, tool, args)
}

// CheckAll probes every registered endpoint concurrently and returns their
// health snapshots in name order. Probes respect each endpoint's own timeout
// and cached TTL.
func (m *Manager) CheckAll(ctx context.Context) []EndpointHealth {
	names := m.List()
	results := make([]EndpointHealth, len(names))

	g, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		c, ok := m.Client(name)
		if !ok {
			continue
		}
		g.Go(func() error {
			c.Healthy(gctx)
			results[i] = c.Health()
			return nil
		})
	}

	// Probes never return errors; failures degrade to unhealthy records.
	_ = g.Wait()

	return results
}
