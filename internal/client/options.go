package client

import (
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/mcpcall/mcpcall/internal/transport"
)

// Options contains optional configuration for a Client.
// NewOptions should be used to create instances of Options.
type Options struct {
	// Transport issues the actual requests. Defaults to the HTTP transport.
	Transport transport.Transport

	// Logger receives per-attempt and health-check events.
	Logger hclog.Logger

	// Now supplies the current time for the health cache. Overridable in tests.
	Now func() time.Time

	// BackoffBase is the unit multiplied by 2^attempt between retries.
	BackoffBase time.Duration

	// HealthTTL is how long a health probe result is served from cache.
	HealthTTL time.Duration
}

// Option defines a functional option for configuring Options.
// Options are applied in order, with later options overriding earlier ones.
type Option func(*Options) error

// NewOptions creates Options with optional configurations applied.
// Starts with default values, then applies options in order with later options
// overriding earlier ones.
func NewOptions(opts ...Option) (Options, error) {
	options := defaultOptions()

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&options); err != nil {
			return Options{}, err
		}
	}

	return options, nil
}

func defaultOptions() Options {
	return Options{
		Transport:   transport.NewHTTP(nil),
		Logger:      hclog.NewNullLogger(),
		Now:         time.Now,
		BackoffBase: time.Second,
		HealthTTL:   30 * time.Second,
	}
}

// WithTransport injects the transport used for all requests.
func WithTransport(t transport.Transport) Option {
	return func(o *Options) error {
		if t == nil {
			return fmt.Errorf("transport cannot be nil")
		}
		o.Transport = t
		return nil
	}
}

// WithLogger configures the logger for attempt and health-check events.
func WithLogger(logger hclog.Logger) Option {
	return func(o *Options) error {
		if logger == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		o.Logger = logger
		return nil
	}
}

// WithClock overrides the time source consulted by the health cache.
func WithClock(now func() time.Time) Option {
	return func(o *Options) error {
		if now == nil {
			return fmt.Errorf("clock cannot be nil")
		}
		o.Now = now
		return nil
	}
}

// WithBackoffBase configures the backoff time unit between retry attempts.
func WithBackoffBase(base time.Duration) Option {
	return func(o *Options) error {
		if base <= 0 {
			return fmt.Errorf("backoff base must be positive, got %v", base)
		}
		o.BackoffBase = base
		return nil
	}
}

// WithHealthTTL configures how long health probe results are cached.
func WithHealthTTL(ttl time.Duration) Option {
	return func(o *Options) error {
		if ttl <= 0 {
			return fmt.Errorf("health TTL must be positive, got %v", ttl)
		}
		o.HealthTTL = ttl
		return nil
	}
}
