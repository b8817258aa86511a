package campground

import "fmt"

// BaseURL is the recreation.gov campground page prefix facility URLs derive from.
const BaseURL = "https://www.recreation.gov/camping/campgrounds"

// EvictionThreshold is the number of consecutive check failures a campground
// may accumulate before it is removed from the watch list. A record is evicted
// once its error count exceeds this value.
const EvictionThreshold = 5

// Status represents where a campground sits in the check lifecycle.
type Status int

const (
	// StatusPending means the campground has never been successfully checked.
	StatusPending Status = iota
	// StatusUnavailable means the last successful check found no full match.
	StatusUnavailable
	// StatusAvailable is terminal: once a campground has an opening it is
	// never re-checked for the rest of the run.
	StatusAvailable
)

// String returns a human-readable status name.
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusUnavailable:
		return "unavailable"
	case StatusAvailable:
		return "available"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Outcome classifies the result of one fetch/parse/evaluate attempt.
type Outcome int

const (
	// OutcomeAvailable means every requested night had at least one open site.
	OutcomeAvailable Outcome = iota
	// OutcomeUnavailable means the check completed but some night had no site.
	OutcomeUnavailable
	// OutcomeFetchFailed means the page could not be rendered or a required
	// element never appeared.
	OutcomeFetchFailed
	// OutcomeParseFailed means the rendered page lacked the expected table
	// structure.
	OutcomeParseFailed
	// OutcomeEvaluationFailed means the requested window fell outside the
	// rendered calendar's columns.
	OutcomeEvaluationFailed
)

// Failed reports whether the outcome counts against the record's error budget.
func (o Outcome) Failed() bool {
	switch o {
	case OutcomeFetchFailed, OutcomeParseFailed, OutcomeEvaluationFailed:
		return true
	}
	return false
}

// String returns a short outcome label for logging.
func (o Outcome) String() string {
	switch o {
	case OutcomeAvailable:
		return "available"
	case OutcomeUnavailable:
		return "unavailable"
	case OutcomeFetchFailed:
		return "fetch_failed"
	case OutcomeParseFailed:
		return "parse_failed"
	case OutcomeEvaluationFailed:
		return "evaluation_failed"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Campground is the mutable tracking record for one facility. Identity fields
// are set at creation and never change; Status and ErrorCount are updated by
// Apply between polling passes.
type Campground struct {
	ID         string
	Name       string
	URL        string
	Status     Status
	ErrorCount int
}

// New creates a tracking record for a facility. The availability page URL is
// derived from the facility ID.
func New(name, facilityID string) *Campground {
	return &Campground{
		ID:   facilityID,
		Name: name,
		URL:  fmt.Sprintf("%s/%s/availability", BaseURL, facilityID),
	}
}

// Available reports whether the campground has already been found bookable.
func (c *Campground) Available() bool {
	return c.Status == StatusAvailable
}

// Apply folds one check outcome into the record. A successful check (available
// or unavailable) resets the error counter; any failure increments it and
// leaves the status untouched. Available is terminal and never regresses.
func (c *Campground) Apply(o Outcome) {
	if c.Status == StatusAvailable {
		return
	}
	switch o {
	case OutcomeAvailable:
		c.Status = StatusAvailable
		c.ErrorCount = 0
	case OutcomeUnavailable:
		c.Status = StatusUnavailable
		c.ErrorCount = 0
	default:
		c.ErrorCount++
	}
}

// ShouldEvict reports whether the record has failed too many times in a row
// to be worth checking again.
func (c *Campground) ShouldEvict() bool {
	return c.ErrorCount > EvictionThreshold
}

// Envelope is the canonical JSON representation of a record, used for
// operator-visible logging. Field names match the at-rest shape the rest of
// the tooling expects.
type Envelope struct {
	Name       string `json:"name"`
	FacilityID string `json:"facilityID"`
	URL        string `json:"url"`
	Available  bool   `json:"available"`
	ErrorCount int    `json:"error_count"`
}

// Envelope maps the record to its JSON envelope.
func (c *Campground) Envelope() Envelope {
	return Envelope{
		Name:       c.Name,
		FacilityID: c.ID,
		URL:        c.URL,
		Available:  c.Status == StatusAvailable,
		ErrorCount: c.ErrorCount,
	}
}

// Pretty returns a multi-line description of the record for diagnostics.
func (c *Campground) Pretty() string {
	return fmt.Sprintf("Campground:\n\t%s\n\t%s\n\t%s\n\t%s\n\t%d",
		c.Name, c.ID, c.URL, c.Status, c.ErrorCount)
}
