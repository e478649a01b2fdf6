package hxfrp

import (
	"log/slog"
	"time"
)

// Option configures a Registry.
type Option func(*options)

type options struct {
	logger    *slog.Logger
	path      string
	ttl       time.Duration
	sensitive bool
	swap      SwapMode
}

func defaultOptions() options {
	return options{
		logger: slog.Default(),
		path:   "/_e/",
		ttl:    30 * time.Minute,
		swap:   SwapOuter,
	}
}

// WithLogger sets the logger for session lifecycle and dispatch failures.
// Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithPath sets the URL path events are posted to.
// Defaults to "/_e/". Mount Registry.Handler at the same path.
func WithPath(path string) Option {
	return func(o *options) {
		o.path = path
	}
}

// WithSessionTTL sets how long a session may stay idle before it is
// unmounted and forgotten. Zero disables eviction. Defaults to 30 minutes.
func WithSessionTTL(d time.Duration) Option {
	return func(o *options) {
		o.ttl = d
	}
}

// WithSensitiveTokens encrypts event tokens instead of signing them, hiding
// session ids from the page source.
func WithSensitiveTokens() Option {
	return func(o *options) {
		o.sensitive = true
	}
}

// WithSwap sets the hx-swap mode used when an event response replaces the
// session root. Defaults to SwapOuter.
func WithSwap(mode SwapMode) Option {
	return func(o *options) {
		o.swap = mode
	}
}
