package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/mfrye/recgov-watch/internal/availability"
	"github.com/mfrye/recgov-watch/internal/campground"
	"github.com/mfrye/recgov-watch/internal/logger"
	"github.com/mfrye/recgov-watch/internal/notify"
)

// DefaultPollInterval is how long the scheduler sleeps between passes.
const DefaultPollInterval = 5 * time.Minute

// Scheduler repeats polling passes until the arrival date passes or the run
// is canceled, forwarding newly-available campgrounds to the notifier.
type Scheduler struct {
	engine   *Engine
	notifier notify.Notifier
	interval time.Duration
	deadline time.Time
	log      *logger.Logger

	// now is swapped in tests.
	now func() time.Time
}

// NewScheduler builds a scheduler. The deadline is normally the arrival date:
// once it has passed there is nothing left worth watching.
func NewScheduler(eng *Engine, notifier notify.Notifier, interval time.Duration, deadline time.Time, log *logger.Logger) *Scheduler {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Scheduler{
		engine:   eng,
		notifier: notifier,
		interval: interval,
		deadline: deadline,
		log:      log,
		now:      time.Now,
	}
}

// Run polls until the deadline passes or ctx is canceled. Cancellation is
// cooperative: it is observed at iteration boundaries, so an in-flight pass
// finishes naturally. A notification failure is fatal and returned.
func (s *Scheduler) Run(ctx context.Context, coll *campground.Collection, window availability.Window) error {
	for {
		if s.now().After(s.deadline) {
			s.log.Info("arrival date has passed, ending watch", logger.Fields{
				"deadline": s.deadline.Format("2006-01-02"),
			})
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		newlyAvailable := s.engine.RunPass(ctx, coll, window)
		if len(newlyAvailable) > 0 {
			if err := s.notifier.Notify(newlyAvailable); err != nil {
				return fmt.Errorf("delivering availability alert: %w", err)
			}
		}

		s.log.Debug("pass complete, sleeping", logger.Fields{
			"tracked":         coll.Len(),
			"newly_available": len(newlyAvailable),
			"interval":        s.interval.String(),
		})

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.interval):
		}
	}
}
