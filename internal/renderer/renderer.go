package renderer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/chromedp/chromedp/kb"

	"github.com/mfrye/recgov-watch/internal/availability"
)

const (
	startDateInputID    = "campground-start-date-calendar"
	endDateInputID      = "campground-end-date-calendar"
	availabilityTableID = "availability-table"
	tableLoadingClass   = "rec-table-overlay-loading"
	tutorialCloseXPath  = "/html/body/div[11]/div/div/div/div/div/div/div/button"

	// DefaultElementWait bounds how long a fetch waits for any single page
	// element before giving up on this check.
	DefaultElementWait = 60 * time.Second

	tutorialWait = 5 * time.Second

	// dateInputLength is the length of an MM/DD/YYYY value, the number of
	// keystrokes needed to backtrack over and delete the input's old value.
	dateInputLength = 10
)

// FetchError reports that a page could not be rendered: navigation failed or
// a required element never appeared within the wait bound.
type FetchError struct {
	URL  string
	Step string
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching %s: %s: %v", e.URL, e.Step, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Renderer owns one headless browser session, reused across fetches. It is
// not safe for concurrent use.
type Renderer struct {
	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc
	wait        time.Duration
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithElementWait overrides the per-element wait ceiling.
func WithElementWait(d time.Duration) Option {
	return func(r *Renderer) {
		r.wait = d
	}
}

// New launches a browser session. The session lives until Close is called or
// the parent context is canceled.
func New(parent context.Context, headless bool, opts ...Option) (*Renderer, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("enable-automation", true),
		chromedp.Flag("headless", headless),
	)
	allocCtx, allocCancel := chromedp.NewExecAllocator(parent, allocOpts...)
	browserCtx, cancel := chromedp.NewContext(allocCtx)

	r := &Renderer{
		ctx:         browserCtx,
		cancel:      cancel,
		allocCancel: allocCancel,
		wait:        DefaultElementWait,
	}
	for _, opt := range opts {
		opt(r)
	}

	// Start the browser eagerly so a missing Chrome binary fails at startup,
	// not in the middle of a pass.
	if err := chromedp.Run(browserCtx); err != nil {
		cancel()
		allocCancel()
		return nil, fmt.Errorf("starting browser session: %w", err)
	}
	return r, nil
}

// Close releases the browser session and its processes.
func (r *Renderer) Close() {
	r.cancel()
	r.allocCancel()
}

// Fetch navigates to a campground availability page, enters the window's
// start and checkout dates to refresh the calendar, waits out the table's
// loading overlay, and returns the availability table's outer HTML.
func (r *Renderer) Fetch(ctx context.Context, pageURL string, window availability.Window) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := r.run("navigate", pageURL, chromedp.Navigate(pageURL)); err != nil {
		return "", err
	}
	r.dismissTutorial()

	if err := r.run("start date input", pageURL, enterDate("#"+startDateInputID, window.Start)); err != nil {
		return "", err
	}
	if err := r.run("end date input", pageURL, enterDate("#"+endDateInputID, window.End())); err != nil {
		return "", err
	}

	// Until the loading overlay disappears the table contents are garbage.
	if err := r.run("table loading overlay", pageURL, chromedp.WaitNotPresent("."+tableLoadingClass, chromedp.ByQuery)); err != nil {
		return "", err
	}

	var html string
	if err := r.run("availability table", pageURL, chromedp.OuterHTML("#"+availabilityTableID, &html, chromedp.ByQuery)); err != nil {
		return "", err
	}
	return html, nil
}

// run executes one fetch step with the per-element wait ceiling applied.
func (r *Renderer) run(step, pageURL string, actions ...chromedp.Action) error {
	stepCtx, cancel := context.WithTimeout(r.ctx, r.wait)
	defer cancel()
	if err := chromedp.Run(stepCtx, actions...); err != nil {
		return &FetchError{URL: pageURL, Step: step, Err: err}
	}
	return nil
}

// dismissTutorial closes the first-visit tutorial modal when it appears; the
// table does not load correctly underneath it. Best effort, most loads have
// no modal.
func (r *Renderer) dismissTutorial() {
	ctx, cancel := context.WithTimeout(r.ctx, tutorialWait)
	defer cancel()
	_ = chromedp.Run(ctx, chromedp.Click(tutorialCloseXPath, chromedp.BySearch))
}

// enterDate fills one of the reservation date inputs. The site refills an
// emptied input with its previous value, so clearing it first does not work;
// instead type the new date, arrow-left back over the old value, delete it,
// and submit.
func enterDate(sel string, date time.Time) chromedp.Tasks {
	return chromedp.Tasks{
		chromedp.WaitVisible(sel, chromedp.ByQuery),
		chromedp.SendKeys(sel, dateKeystrokes(date), chromedp.ByQuery),
	}
}

// dateKeystrokes builds the key sequence for one date input.
func dateKeystrokes(date time.Time) string {
	return date.Format("01/02/2006") +
		strings.Repeat(kb.ArrowLeft, dateInputLength) +
		strings.Repeat(kb.Backspace, dateInputLength) +
		kb.Enter
}
