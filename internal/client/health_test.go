package client

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mcpcall/mcpcall/internal/transport"
)

// testClock is a manually advanced time source.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestHealthy_CachesWithinTTL(t *testing.T) {
	t.Parallel()

	clock := newTestClock()
	ft := &fakeTransport{handler: func(_ context.Context, _ transport.Request) (*transport.Response, error) {
		return serverError(), nil
	}}

	c := newTestClient(t, testEndpoint(3), ft, WithClock(clock.Now))

	// First call probes the unreachable endpoint.
	require.False(t, c.Healthy(context.Background()))
	require.Equal(t, 1, ft.probes())

	// A second call within the TTL is served from cache.
	clock.Advance(10 * time.Second)
	require.False(t, c.Healthy(context.Background()))
	require.Equal(t, 1, ft.probes())

	// Past the TTL, the endpoint is probed again.
	clock.Advance(21 * time.Second)
	require.False(t, c.Healthy(context.Background()))
	require.Equal(t, 2, ft.probes())
}

func TestHealthy_RecoveryObservedAfterTTL(t *testing.T) {
	t.Parallel()

	clock := newTestClock()

	var mu sync.Mutex
	up := false
	ft := &fakeTransport{handler: func(_ context.Context, _ transport.Request) (*transport.Response, error) {
		mu.Lock()
		defer mu.Unlock()
		if up {
			return ok(`{"status":"ok"}`), nil
		}
		return nil, context.DeadlineExceeded
	}}

	c := newTestClient(t, testEndpoint(3), ft, WithClock(clock.Now))

	require.False(t, c.Healthy(context.Background()))
	require.Equal(t, HealthStatusTimeout, c.Health().Status)

	mu.Lock()
	up = true
	mu.Unlock()

	// Recovery is invisible until the cached result expires.
	require.False(t, c.Healthy(context.Background()))

	clock.Advance(31 * time.Second)
	require.True(t, c.Healthy(context.Background()))

	health := c.Health()
	require.Equal(t, HealthStatusOK, health.Status)
	require.NotNil(t, health.LastChecked)
	require.NotNil(t, health.LastSuccessful)
}

func TestHealthy_NonOKStatusIsUnreachable(t *testing.T) {
	t.Parallel()

	ft := &fakeTransport{handler: func(_ context.Context, _ transport.Request) (*transport.Response, error) {
		return &transport.Response{StatusCode: http.StatusServiceUnavailable}, nil
	}}

	c := newTestClient(t, testEndpoint(3), ft)

	require.False(t, c.Healthy(context.Background()))
	require.Equal(t, HealthStatusUnreachable, c.Health().Status)
}

func TestHealth_FreshClientIsUnknown(t *testing.T) {
	t.Parallel()

	ft := &fakeTransport{handler: func(_ context.Context, _ transport.Request) (*transport.Response, error) {
		return ok(`{}`), nil
	}}
	c := newTestClient(t, testEndpoint(3), ft)

	health := c.Health()
	require.Equal(t, "img", health.Name)
	require.Equal(t, HealthStatusUnknown, health.Status)
	require.Nil(t, health.Latency)
	require.Nil(t, health.LastChecked)
	require.Nil(t, health.LastSuccessful)
}

func TestHealthy_ProbesConfiguredPath(t *testing.T) {
	t.Parallel()

	endpoint := testEndpoint(3)
	endpoint.HealthPath = "/healthz"

	ft := &fakeTransport{handler: func(_ context.Context, req transport.Request) (*transport.Response, error) {
		require.Equal(t, "http://127.0.0.1:3001/healthz", req.URL)
		return ok(`{}`), nil
	}}
	c := newTestClient(t, endpoint, ft)

	require.True(t, c.Healthy(context.Background()))
}

func TestDuration_MarshalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		duration *Duration
		want     string
	}{
		{
			name:     "nil duration",
			duration: nil,
			want:     "null",
		},
		{
			name:     "positive duration",
			duration: func() *Duration { d := Duration(100 * time.Millisecond); return &d }(),
			want:     `"100ms"`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := tc.duration.MarshalJSON()
			require.NoError(t, err)
			require.Equal(t, tc.want, string(got))
		})
	}
}
