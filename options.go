package asyncio

import "github.com/joeycumines/logiface"

// engineConfig holds resolved construction options for an Engine.
type engineConfig struct {
	panicRecovery bool
	metrics       bool
	logger        *logiface.Logger[logiface.Event]
}

// EngineOption configures an Engine at construction time.
type EngineOption interface {
	applyEngine(*engineConfig)
}

type engineOptionFunc func(*engineConfig)

func (f engineOptionFunc) applyEngine(cfg *engineConfig) { f(cfg) }

// WithPanicRecovery controls whether a handler's panic is recovered by the
// Engine. When disabled (the default), a panicking handler crashes its
// worker goroutine exactly as any other unrecovered Go panic would. When
// enabled, the panic is recovered, logged as a RecoveredPanic, and
// outstanding-work accounting for that handler still completes.
func WithPanicRecovery(enabled bool) EngineOption {
	return engineOptionFunc(func(cfg *engineConfig) {
		cfg.panicRecovery = enabled
	})
}

// WithLogger overrides the package-wide structured logger for a single
// Engine. A nil logger is equivalent to not passing this option.
func WithLogger(l *logiface.Logger[logiface.Event]) EngineOption {
	return engineOptionFunc(func(cfg *engineConfig) {
		cfg.logger = l
	})
}

// WithMetrics enables atomic counters on the Engine, readable via
// Engine.Stats. Disabled by default.
func WithMetrics(enabled bool) EngineOption {
	return engineOptionFunc(func(cfg *engineConfig) {
		cfg.metrics = enabled
	})
}

// resolveEngineOptions applies opts over a zero-valued engineConfig,
// skipping nil options.
func resolveEngineOptions(opts []EngineOption) engineConfig {
	var cfg engineConfig
	for _, o := range opts {
		if o == nil {
			continue
		}
		o.applyEngine(&cfg)
	}
	return cfg
}
