package mcwatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// Sink delivers one rendered notification message.
//
// The built-in sinks (webhook, stdout) are selected automatically from the
// monitor configuration; [WithSink] overrides them entirely, which is also
// the hook tests use to capture notifications.
type Sink interface {
	Deliver(ctx context.Context, message string) error
}

// monitorConfig holds mutable state during Monitor construction.
type monitorConfig struct {
	server           string
	serverType       ServerType
	interval         time.Duration
	offlineThreshold int
	requestTimeout   time.Duration
	apiBaseURL       string
	webhookURL       string
	statePath        string
	statusPort       int
	logger           *slog.Logger
	sink             Sink
	eventCallbacks   []func(ChangeEvent)
}

// Option configures a [Monitor] during construction.
//
// Option implements the functional options pattern. Options return an error
// if validation fails, which [New] propagates.
type Option func(*monitorConfig) error

// WithServer sets the address of the game server to monitor, for example
// "play.example.com:19132". Required.
func WithServer(address string) Option {
	return func(cfg *monitorConfig) error {
		if address == "" {
			return errors.New("server address cannot be empty")
		}
		cfg.server = address
		return nil
	}
}

// WithServerType selects the monitored edition. Defaults to
// [ServerTypeBedrock].
func WithServerType(t ServerType) Option {
	return func(cfg *monitorConfig) error {
		if t != ServerTypeBedrock && t != ServerTypeJava {
			return fmt.Errorf("server type must be %q or %q, got %q", ServerTypeBedrock, ServerTypeJava, t)
		}
		cfg.serverType = t
		return nil
	}
}

// WithCheckInterval sets the fixed wall-clock interval between poll cycles.
// Defaults to 5 minutes.
//
// Returns an error if the duration is zero or negative.
func WithCheckInterval(d time.Duration) Option {
	return func(cfg *monitorConfig) error {
		if d <= 0 {
			return errors.New("check interval must be positive")
		}
		cfg.interval = d
		return nil
	}
}

// WithOfflineThreshold sets how many consecutive offline-or-failed polls are
// required before the server is confirmed offline. Defaults to 2.
//
// Returns an error if the threshold is below 1.
func WithOfflineThreshold(n int) Option {
	return func(cfg *monitorConfig) error {
		if n < 1 {
			return errors.New("offline threshold must be at least 1")
		}
		cfg.offlineThreshold = n
		return nil
	}
}

// WithRequestTimeout bounds each status API request. Defaults to 10 seconds.
//
// Returns an error if the duration is zero or negative.
func WithRequestTimeout(d time.Duration) Option {
	return func(cfg *monitorConfig) error {
		if d <= 0 {
			return errors.New("request timeout must be positive")
		}
		cfg.requestTimeout = d
		return nil
	}
}

// WithAPIBaseURL overrides the status API base URL. Defaults to the public
// mcsrvstat.us API. Mainly useful for tests and self-hosted API instances.
func WithAPIBaseURL(url string) Option {
	return func(cfg *monitorConfig) error {
		if url == "" {
			return errors.New("API base URL cannot be empty")
		}
		cfg.apiBaseURL = url
		return nil
	}
}

// WithWebhookURL sets the chat webhook notifications are delivered to.
// When unset, notifications fall back to stdout with a timestamp prefix.
func WithWebhookURL(url string) Option {
	return func(cfg *monitorConfig) error {
		cfg.webhookURL = url
		return nil
	}
}

// WithStatePath sets the path of the persisted state file. Defaults to
// "mcwatch_state.json" in the working directory.
func WithStatePath(path string) Option {
	return func(cfg *monitorConfig) error {
		if path == "" {
			return errors.New("state path cannot be empty")
		}
		cfg.statePath = path
		return nil
	}
}

// WithStatusPort enables the HTTP status endpoint on the given port.
// Disabled by default.
//
// Returns an error if the port is outside the valid range (1-65535).
func WithStatusPort(port int) Option {
	return func(cfg *monitorConfig) error {
		if port < 1 || port > 65535 {
			return errors.New("status port must be between 1 and 65535")
		}
		cfg.statusPort = port
		return nil
	}
}

// WithLogger sets a custom [slog.Logger]. If not specified, [slog.Default]
// is used.
//
// Returns an error if the logger is nil.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *monitorConfig) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		cfg.logger = logger
		return nil
	}
}

// WithSink replaces the built-in notification sinks with a custom one.
//
// Returns an error if the sink is nil.
func WithSink(sink Sink) Option {
	return func(cfg *monitorConfig) error {
		if sink == nil {
			return errors.New("sink cannot be nil")
		}
		cfg.sink = sink
		return nil
	}
}

// WithEventCallback registers a function called for every emitted
// [ChangeEvent], after the event's notification has been delivered.
//
// Multiple callbacks may be registered; they execute in registration order.
// Callbacks are invoked synchronously from the poll cycle, so they must be
// non-blocking. Panics within callbacks are recovered and logged; they do
// not crash the monitor.
//
// Nil callbacks are silently ignored.
func WithEventCallback(cb func(ChangeEvent)) Option {
	return func(cfg *monitorConfig) error {
		if cb == nil {
			return nil // no-op for nil callback (safe to call)
		}
		cfg.eventCallbacks = append(cfg.eventCallbacks, cb)
		return nil
	}
}
