// Package client implements the resilient tool-call client: one logical tool
// invocation against one endpoint, with health gating, bounded retry, and
// exponential backoff between attempts.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/mcpcall/mcpcall/internal/config"
	"github.com/mcpcall/mcpcall/internal/errors"
	"github.com/mcpcall/mcpcall/internal/transport"
)

// Result is the successful outcome of a tool call. Payload holds the raw
// response body as returned by the endpoint: transport success does not
// guarantee the payload parses, so extraction may still fail separately
// without changing the fact that the call succeeded.
type Result struct {
	Payload json.RawMessage
}

// Client executes tool calls against a single configured endpoint.
// It holds no cross-call state other than the health cache; concurrent calls
// are safe.
type Client struct {
	endpoint  config.EndpointEntry
	transport transport.Transport
	logger    hclog.Logger

	now         func() time.Time
	backoffBase time.Duration
	healthTTL   time.Duration

	mu     sync.Mutex
	health healthRecord
}

// New creates a Client for the given endpoint.
func New(endpoint config.EndpointEntry, opt ...Option) (*Client, error) {
	opts, err := NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	return &Client{
		endpoint:    endpoint,
		transport:   opts.Transport,
		logger:      opts.Logger.Named("client").With("endpoint", endpoint.Name),
		now:         opts.Now,
		backoffBase: opts.BackoffBase,
		healthTTL:   opts.HealthTTL,
	}, nil
}

// Endpoint returns the endpoint this client was constructed with.
func (c *Client) Endpoint() config.EndpointEntry {
	return c.endpoint
}

// CallTool executes one logical tool call.
//
// The endpoint's health is checked once per invocation (served from cache
// within its TTL); an unhealthy endpoint fails with ErrUnavailable before any
// call is attempted. The call is then attempted up to the endpoint's retry
// budget, waiting backoffBase * 2^attempt between attempts. A 2xx response
// returns immediately with the raw payload; the body is not required to be
// valid JSON at this stage. Cancelling ctx abandons any in-flight attempt and
// any pending backoff without further retries.
func (c *Client) CallTool(ctx context.Context, tool string, args map[string]any) (*Result, error) {
	if len(c.endpoint.Tools) > 0 && !slices.Contains(c.endpoint.ToolNames(), tool) {
		return nil, fmt.Errorf("%w: %s/%s", errors.ErrToolForbidden, c.endpoint.Name, tool)
	}

	if entry, ok := c.endpoint.Tool(tool); ok && entry.Schema != "" {
		if err := ValidateArguments(entry.Schema, args); err != nil {
			return nil, err
		}
	}

	if !c.Healthy(ctx) {
		return nil, fmt.Errorf("%w: %s", errors.ErrUnavailable, c.endpoint.Name)
	}

	req, err := transport.BuildToolCall(c.endpoint.EffectiveStyle(), c.endpoint.BaseURL, tool, args)
	if err != nil {
		return nil, err
	}

	callID := uuid.NewString()
	logger := c.logger.With("tool", tool, "call_id", callID)

	maxRetries := c.endpoint.EffectiveMaxRetries()

	var (
		lastDetail  string
		lastTimeout bool
	)

	for attempt := 0; attempt < maxRetries; attempt++ {
		logger.Info("attempt started", "attempt", attempt+1, "max", maxRetries)

		resp, err := c.attempt(ctx, req)
		switch {
		case err == nil && resp.OK():
			logger.Info("attempt succeeded", "attempt", attempt+1, "status", resp.StatusCode)
			return &Result{Payload: resp.Body}, nil

		case err == nil:
			lastDetail = fmt.Sprintf("HTTP %d: %s", resp.StatusCode, truncate(string(resp.Body), 200))
			lastTimeout = false
			logger.Warn("attempt failed", "attempt", attempt+1, "status", resp.StatusCode)

		default:
			lastDetail = fmt.Sprintf("request failed: %v", err)
			lastTimeout = transport.IsTimeout(err) && ctx.Err() == nil
			logger.Warn("attempt failed", "attempt", attempt+1, "error", err)
		}

		// No retry once the caller has given up.
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %s/%s: %w", errors.ErrCallFailed, c.endpoint.Name, tool, ctx.Err())
		}

		if attempt == maxRetries-1 {
			break
		}

		if err := c.backoff(ctx, attempt); err != nil {
			return nil, fmt.Errorf("%w: %s/%s: %w", errors.ErrCallFailed, c.endpoint.Name, tool, err)
		}
	}

	if lastTimeout {
		return nil, fmt.Errorf(
			"%w: %w: %s/%s: all %d attempts failed: %s",
			errors.ErrCallFailed, errors.ErrTimeout, c.endpoint.Name, tool, maxRetries, lastDetail,
		)
	}

	return nil, fmt.Errorf(
		"%w: %s/%s: all %d attempts failed: %s",
		errors.ErrCallFailed, c.endpoint.Name, tool, maxRetries, lastDetail,
	)
}

// attempt performs one bounded request.
func (c *Client) attempt(ctx context.Context, req transport.Request) (*transport.Response, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.endpoint.EffectiveTimeout())
	defer cancel()

	return c.transport.Do(attemptCtx, req)
}

// backoff waits backoffBase * 2^attempt, or returns early with the context's
// error if the caller cancels. No lock is held while waiting.
func (c *Client) backoff(ctx context.Context, attempt int) error {
	wait := c.backoffBase << uint(attempt)

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
