package transdb

import "github.com/bft-labs/transdb/pkg/log"

// Re-export logging types for convenient access.
// Users can also import github.com/bft-labs/transdb/pkg/log directly.
type (
	// Logger is the structured logging interface from pkg/log.
	Logger = log.Logger

	// Field is the structured log field type from pkg/log.
	Field = log.Field
)

// Option configures optional behavior of a DB.
type Option func(*options)

// options holds the optional configuration for a DB instance.
type options struct {
	logger log.Logger
}

// defaultOptions returns options with sensible defaults.
func defaultOptions() options {
	return options{
		logger: log.NewNoopLogger(),
	}
}

// WithLogger sets a custom logger for structured logging. Rejected
// transactions and settlement rollbacks are reported through it.
// If not provided, a no-op logger is used (no output).
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}
