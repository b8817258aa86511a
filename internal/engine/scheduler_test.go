package engine

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/mfrye/recgov-watch/internal/campground"
	"github.com/mfrye/recgov-watch/internal/logger"
)

type fakeNotifier struct {
	err   error
	calls [][]*campground.Campground
}

func (f *fakeNotifier) Notify(available []*campground.Campground) error {
	f.calls = append(f.calls, available)
	return f.err
}

func newTestScheduler(eng *Engine, notifier *fakeNotifier, deadline time.Time) *Scheduler {
	return NewScheduler(eng, notifier, time.Millisecond, deadline, logger.New(logger.LevelError, io.Discard))
}

func TestRunStopsWhenDeadlinePassed(t *testing.T) {
	fetcher := newFakeFetcher()
	notifier := &fakeNotifier{}

	coll := campground.NewCollection()
	coll.Add(campground.New("A", "1"))

	s := newTestScheduler(newTestEngine(fetcher), notifier, time.Now().Add(-time.Hour))
	if err := s.Run(context.Background(), coll, testWindow); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if fetcher.totalCalls() != 0 {
		t.Error("expected no passes once the deadline has passed")
	}
	if len(notifier.calls) != 0 {
		t.Error("expected no notifications once the deadline has passed")
	}
}

func TestRunNotifiesOnAvailability(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.markup["1"] = openMarkup
	notifier := &fakeNotifier{}

	coll := campground.NewCollection()
	coll.Add(campground.New("A", "1"))

	s := newTestScheduler(newTestEngine(fetcher), notifier, time.Now().Add(time.Hour))

	// Move the clock past the deadline after the first sleep so the loop
	// exits cleanly after one pass.
	first := true
	s.now = func() time.Time {
		if first {
			first = false
			return time.Now()
		}
		return s.deadline.Add(time.Second)
	}

	if err := s.Run(context.Background(), coll, testWindow); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(notifier.calls) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notifier.calls))
	}
	if len(notifier.calls[0]) != 1 || notifier.calls[0][0].ID != "1" {
		t.Errorf("unexpected notification payload: %v", notifier.calls[0])
	}
}

func TestRunNotificationFailureIsFatal(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.markup["1"] = openMarkup
	notifier := &fakeNotifier{err: errors.New("smtp down")}

	coll := campground.NewCollection()
	coll.Add(campground.New("A", "1"))

	s := newTestScheduler(newTestEngine(fetcher), notifier, time.Now().Add(time.Hour))
	err := s.Run(context.Background(), coll, testWindow)
	if err == nil {
		t.Fatal("expected notification failure to stop the run")
	}
	if !errors.Is(err, notifier.err) {
		t.Errorf("expected wrapped notifier error, got %v", err)
	}
}

func TestRunObservesCancellation(t *testing.T) {
	fetcher := newFakeFetcher()
	notifier := &fakeNotifier{}

	coll := campground.NewCollection()
	coll.Add(campground.New("A", "1"))

	eng := newTestEngine(fetcher)
	s := NewScheduler(eng, notifier, time.Hour, time.Now().Add(time.Hour), logger.New(logger.LevelError, io.Discard))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- s.Run(ctx, coll, testWindow)
	}()

	// Give the loop time to start its first pass, then cancel during the
	// inter-pass sleep.
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("scheduler did not observe cancellation")
	}

	// Exactly one pass ran before the cancellation fired.
	if fetcher.totalCalls() != 1 {
		t.Errorf("expected exactly 1 fetch before cancellation, got %d", fetcher.totalCalls())
	}
}

func TestRunEmptyPassSendsNothing(t *testing.T) {
	fetcher := newFakeFetcher() // everything unavailable
	notifier := &fakeNotifier{}

	coll := campground.NewCollection()
	coll.Add(campground.New("A", "1"))

	s := newTestScheduler(newTestEngine(fetcher), notifier, time.Now().Add(time.Hour))
	first := true
	s.now = func() time.Time {
		if first {
			first = false
			return time.Now()
		}
		return s.deadline.Add(time.Second)
	}

	if err := s.Run(context.Background(), coll, testWindow); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(notifier.calls) != 0 {
		t.Errorf("expected no notifications for an empty result set, got %d", len(notifier.calls))
	}
}
