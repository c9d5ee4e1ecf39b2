package engine

import "go.uber.org/zap"

// ============================================================================
// ENGINE OPTIONS — Functional options for Execute() and TableRenderer
// ============================================================================

// Option configures engine behavior via functional options pattern.
type Option func(*config)

type config struct {
	Logger *zap.SugaredLogger
	Tables *TableRenderer // required for table requests
}

// WithLogger routes engine logs to logger. The default discards them.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(c *config) {
		if logger != nil {
			c.Logger = logger
		}
	}
}

// WithTableRenderer supplies the renderer used for table requests.
func WithTableRenderer(r *TableRenderer) Option {
	return func(c *config) {
		c.Tables = r
	}
}

// applyOptions creates a config from functional options.
func applyOptions(opts []Option) *config {
	cfg := &config{
		Logger: zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
