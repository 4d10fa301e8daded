package update

import (
	"context"
	"log/slog"
	"time"
)

// ComputeDelay returns how long to wait before the next automatic update
// check, and whether a check should be scheduled at all.
//
//   - auto-check disabled: no check (false).
//   - no prior check recorded: check immediately (0).
//   - otherwise: the remainder of the interval since the last check, clamped
//     to zero so a stale or future last-check (clock skew) fires immediately
//     instead of producing a negative delay.
func ComputeDelay(autoCheck bool, interval time.Duration, lastCheck time.Time, haveLastCheck bool, now time.Time) (time.Duration, bool) {
	if !autoCheck {
		return 0, false
	}
	if !haveLastCheck {
		return 0, true
	}
	delay := interval - now.Sub(lastCheck)
	if delay < 0 {
		delay = 0
	}
	return delay, true
}

// SchedulerSource supplies the scheduler with the current preference state.
// It is re-read before every arm so preference changes take effect on the
// next cycle without external re-arming.
type SchedulerSource interface {
	AutoCheck() bool
	UpdateInterval() time.Duration
	LastCheck() (time.Time, bool)
}

// Scheduler drives periodic automatic update checks. One fire runs the check
// callback; the next delay is recomputed after the callback returns, so the
// freshly persisted last-check feeds the next cycle.
type Scheduler struct {
	source SchedulerSource
	check  func(ctx context.Context)
	logger *slog.Logger
	now    func() time.Time // swapped in tests
}

// NewScheduler creates a scheduler reading preferences from source and
// invoking check on every fire.
func NewScheduler(source SchedulerSource, check func(ctx context.Context), logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		source: source,
		check:  check,
		logger: logger,
		now:    time.Now,
	}
}

// Run loops until ctx is cancelled or auto-check is disabled. Each iteration
// recomputes the delay from the current preferences, sleeps, and fires.
func (s *Scheduler) Run(ctx context.Context) error {
	for {
		lastCheck, have := s.source.LastCheck()
		delay, ok := ComputeDelay(s.source.AutoCheck(), s.source.UpdateInterval(), lastCheck, have, s.now())
		if !ok {
			s.logger.Info("automatic update checks disabled, scheduler stopping")
			return nil
		}
		s.logger.Debug("automatic update check scheduled", "delay", delay)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		s.check(ctx)
	}
}
