package sched

// schedulerConfig holds resolved construction-time configuration for a
// *Scheduler.
type schedulerConfig struct {
	tolerance   uint32
	staleAfter  uint32
	clock       Clock
	logger      Logger
	historySize int
}

// SchedulerOption configures a *Scheduler at construction time.
type SchedulerOption interface {
	applyScheduler(*schedulerConfig)
}

type schedulerOptionFunc func(*schedulerConfig)

func (f schedulerOptionFunc) applyScheduler(cfg *schedulerConfig) { f(cfg) }

// WithTolerance sets the pass-1 eligibility slack (spec's TOLERANCE),
// in milliseconds. The spec documents 0 as the current-revision default and
// 20 as the value used by an earlier source revision; either may be chosen
// explicitly. Defaults to 0.
func WithTolerance(ms uint32) SchedulerOption {
	return schedulerOptionFunc(func(cfg *schedulerConfig) { cfg.tolerance = ms })
}

// WithStaleAfter overrides STALE_AFTER, the window (in milliseconds)
// separating "overdue" from "not yet due" under 32-bit wraparound. Defaults
// to 3,600,000 (one hour), matching the spec.
func WithStaleAfter(ms uint32) SchedulerOption {
	return schedulerOptionFunc(func(cfg *schedulerConfig) { cfg.staleAfter = ms })
}

// WithClock overrides the time source used for all eligibility and
// timestamp computations. Defaults to [RealClock]. Tests use this to inject
// a deterministic, manually-advanced clock.
func WithClock(c Clock) SchedulerOption {
	return schedulerOptionFunc(func(cfg *schedulerConfig) {
		if c != nil {
			cfg.clock = c
		}
	})
}

// WithLogger sets the Logger a *Scheduler writes diagnostic entries through.
// Defaults to [NewNoOpLogger].
func WithLogger(l Logger) SchedulerOption {
	return schedulerOptionFunc(func(cfg *schedulerConfig) {
		if l != nil {
			cfg.logger = l
		}
	})
}

// WithHistorySize sets the capacity of the scheduler's completion-diagnostics
// ring (see [Scheduler.History]). A size of 0 (the default) disables history
// recording entirely, avoiding the overhead for callers who don't need it.
func WithHistorySize(n int) SchedulerOption {
	return schedulerOptionFunc(func(cfg *schedulerConfig) {
		if n >= 0 {
			cfg.historySize = n
		}
	})
}

// resolveSchedulerOptions applies opts over the documented defaults.
func resolveSchedulerOptions(opts []SchedulerOption) *schedulerConfig {
	cfg := &schedulerConfig{
		tolerance:  0,
		staleAfter: StaleAfterDefault,
		clock:      RealClock,
		logger:     NewNoOpLogger(),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.applyScheduler(cfg)
	}
	return cfg
}
