package client

import (
	"context"
	"fmt"
	"time"

	"github.com/mcpcall/mcpcall/internal/transport"
)

const (
	HealthStatusOK          HealthStatus = "ok"
	HealthStatusTimeout     HealthStatus = "timeout"
	HealthStatusUnreachable HealthStatus = "unreachable"
	HealthStatusUnknown     HealthStatus = "unknown"
)

type HealthStatus string

type Duration time.Duration

// EndpointHealth is a snapshot of an endpoint's last observed health.
type EndpointHealth struct {
	Name           string       `json:"name"`
	Status         HealthStatus `json:"status"`
	Latency        *Duration    `json:"latency"`
	LastChecked    *time.Time   `json:"last_checked"`
	LastSuccessful *time.Time   `json:"last_successful"`
}

func (d *Duration) MarshalJSON() ([]byte, error) {
	if d == nil {
		return []byte("null"), nil
	}
	s := fmt.Sprintf(`"%s"`, time.Duration(*d).String())
	return []byte(s), nil
}

// healthRecord is the cached outcome of the most recent probe.
// Status and checkedAt are always written together under c.mu so a reader
// never observes a status paired with another probe's timestamp.
type healthRecord struct {
	status         HealthStatus
	latency        time.Duration
	checkedAt      time.Time
	lastSuccessful time.Time
}

// Healthy reports whether the endpoint responded 2xx to its health path.
// Probe results are cached: a result younger than the health TTL is returned
// without network activity. All probe failures degrade to false; Healthy
// never returns an error.
func (c *Client) Healthy(ctx context.Context) bool {
	c.mu.Lock()
	cached := c.health
	now := c.now()
	if !cached.checkedAt.IsZero() && now.Sub(cached.checkedAt) < c.healthTTL {
		c.mu.Unlock()
		return cached.status == HealthStatusOK
	}
	c.mu.Unlock()

	// Probe outside the lock; concurrent callers may race here, which at
	// worst costs one redundant probe. The cache write below is atomic.
	status, latency := c.probe(ctx)

	c.mu.Lock()
	c.health.status = status
	c.health.latency = latency
	c.health.checkedAt = c.now()
	if status == HealthStatusOK {
		c.health.lastSuccessful = c.health.checkedAt
	}
	c.mu.Unlock()

	return status == HealthStatusOK
}

// Health returns a snapshot of the endpoint's cached health record without
// triggering a probe.
func (c *Client) Health() EndpointHealth {
	c.mu.Lock()
	defer c.mu.Unlock()

	h := EndpointHealth{
		Name:   c.endpoint.Name,
		Status: c.health.status,
	}
	if h.Status == "" {
		h.Status = HealthStatusUnknown
	}
	if !c.health.checkedAt.IsZero() {
		t := c.health.checkedAt
		h.LastChecked = &t
		d := Duration(c.health.latency)
		h.Latency = &d
	}
	if !c.health.lastSuccessful.IsZero() {
		t := c.health.lastSuccessful
		h.LastSuccessful = &t
	}
	return h
}

func (c *Client) probe(ctx context.Context) (HealthStatus, time.Duration) {
	probeCtx, cancel := context.WithTimeout(ctx, c.endpoint.EffectiveTimeout())
	defer cancel()

	req := transport.BuildHealthCheck(c.endpoint.BaseURL, c.endpoint.EffectiveHealthPath())

	start := time.Now()
	resp, err := c.transport.Do(probeCtx, req)
	latency := time.Since(start)

	switch {
	case err != nil && transport.IsTimeout(err):
		c.logger.Warn("health check failed", "endpoint", c.endpoint.Name, "error", err)
		return HealthStatusTimeout, latency
	case err != nil:
		c.logger.Warn("health check failed", "endpoint", c.endpoint.Name, "error", err)
		return HealthStatusUnreachable, latency
	case !resp.OK():
		c.logger.Warn("health check failed", "endpoint", c.endpoint.Name, "status", resp.StatusCode)
		return HealthStatusUnreachable, latency
	default:
		c.logger.Debug("health check ok", "endpoint", c.endpoint.Name, "latency", latency)
		return HealthStatusOK, latency
	}
}
