package engine

import (
	"context"
	"strings"

	"github.com/mfrye/recgov-watch/internal/availability"
	"github.com/mfrye/recgov-watch/internal/campground"
	"github.com/mfrye/recgov-watch/internal/logger"
)

// Fetcher returns the rendered availability table markup for a campground
// page, reflecting the given date window.
type Fetcher interface {
	Fetch(ctx context.Context, pageURL string, window availability.Window) (string, error)
}

// Engine performs polling passes over a campground collection. Fetches run
// strictly sequentially: the fetcher is one stateful browser session and is
// not shareable across concurrent callers.
type Engine struct {
	fetcher Fetcher
	log     *logger.Logger
}

// New creates an engine around a page fetcher.
func New(fetcher Fetcher, log *logger.Logger) *Engine {
	return &Engine{
		fetcher: fetcher,
		log:     log,
	}
}

// RunPass checks every non-available campground in the collection once, in
// insertion order, and returns the records that became available during this
// pass, preserving that order. Records whose error count crosses the eviction
// threshold are removed from the collection at the end of the pass.
func (e *Engine) RunPass(ctx context.Context, coll *campground.Collection, window availability.Window) []*campground.Campground {
	newlyAvailable := make([]*campground.Campground, 0)
	var evict []*campground.Campground

	// Snapshot the iteration order so pass-end evictions cannot skip or
	// double-process a neighbor.
	for _, camp := range coll.Records() {
		if camp.Available() {
			e.log.Debug("skipping campground, available site already found", logger.Fields{
				"name": camp.Name,
				"id":   camp.ID,
			})
			continue
		}

		outcome := e.check(ctx, camp, window)
		camp.Apply(outcome)

		switch {
		case outcome == campground.OutcomeAvailable:
			e.log.Info("campground is now available", logger.Fields{
				"name": camp.Name,
				"id":   camp.ID,
				"url":  camp.URL,
			})
			newlyAvailable = append(newlyAvailable, camp)
		case outcome.Failed():
			e.log.Warn("campground check failed", logger.Fields{
				"name":        camp.Name,
				"id":          camp.ID,
				"outcome":     outcome.String(),
				"error_count": camp.ErrorCount,
			})
		default:
			e.log.Debug("campground not available", logger.Fields{
				"name": camp.Name,
				"id":   camp.ID,
			})
		}

		if camp.ShouldEvict() {
			evict = append(evict, camp)
		}
	}

	for _, camp := range evict {
		e.log.Error("campground errored too many times in a row, removing from watch list", logger.Fields{
			"name":        camp.Name,
			"id":          camp.ID,
			"error_count": camp.ErrorCount,
		}, nil)
		coll.Remove(camp.ID)
		logger.IncrCounter("engine.evictions")
	}

	logger.IncrCounter("engine.passes")
	return newlyAvailable
}

// check runs one fetch/parse/evaluate attempt and classifies the result.
func (e *Engine) check(ctx context.Context, camp *campground.Campground, window availability.Window) campground.Outcome {
	markup, err := e.fetcher.Fetch(ctx, camp.URL, window)
	if err != nil {
		e.log.Debug("page fetch failed", logger.Fields{"id": camp.ID, "error": err.Error()})
		return campground.OutcomeFetchFailed
	}

	grid, err := availability.ParseGrid(strings.NewReader(markup))
	if err != nil {
		e.log.Debug("table parse failed", logger.Fields{"id": camp.ID, "error": err.Error()})
		return campground.OutcomeParseFailed
	}

	ok, err := grid.IsFullyAvailable(window)
	if err != nil {
		e.log.Debug("window evaluation failed", logger.Fields{"id": camp.ID, "error": err.Error()})
		return campground.OutcomeEvaluationFailed
	}
	if ok {
		return campground.OutcomeAvailable
	}
	return campground.OutcomeUnavailable
}
