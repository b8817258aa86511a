package campground

import (
	"encoding/json"
	"testing"
)

func TestNewDerivesURL(t *testing.T) {
	c := New("Kirk Creek", "233116")

	if c.ID != "233116" {
		t.Errorf("expected ID 233116, got %s", c.ID)
	}
	if c.Name != "Kirk Creek" {
		t.Errorf("expected name Kirk Creek, got %s", c.Name)
	}
	want := "https://www.recreation.gov/camping/campgrounds/233116/availability"
	if c.URL != want {
		t.Errorf("expected URL %s, got %s", want, c.URL)
	}
	if c.Status != StatusPending {
		t.Errorf("expected new campground to be pending, got %s", c.Status)
	}
	if c.ErrorCount != 0 {
		t.Errorf("expected error count 0, got %d", c.ErrorCount)
	}
}

func TestApplyTransitions(t *testing.T) {
	tests := []struct {
		name       string
		outcomes   []Outcome
		wantStatus Status
		wantErrors int
	}{
		{
			name:       "available on first check",
			outcomes:   []Outcome{OutcomeAvailable},
			wantStatus: StatusAvailable,
			wantErrors: 0,
		},
		{
			name:       "unavailable on first check",
			outcomes:   []Outcome{OutcomeUnavailable},
			wantStatus: StatusUnavailable,
			wantErrors: 0,
		},
		{
			name:       "failures leave status pending",
			outcomes:   []Outcome{OutcomeFetchFailed, OutcomeParseFailed},
			wantStatus: StatusPending,
			wantErrors: 2,
		},
		{
			name:       "success resets error count",
			outcomes:   []Outcome{OutcomeFetchFailed, OutcomeFetchFailed, OutcomeUnavailable},
			wantStatus: StatusUnavailable,
			wantErrors: 0,
		},
		{
			name:       "evaluation failure counts like any other failure",
			outcomes:   []Outcome{OutcomeUnavailable, OutcomeEvaluationFailed},
			wantStatus: StatusUnavailable,
			wantErrors: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New("Test", "1")
			for _, o := range tt.outcomes {
				c.Apply(o)
			}
			if c.Status != tt.wantStatus {
				t.Errorf("expected status %s, got %s", tt.wantStatus, c.Status)
			}
			if c.ErrorCount != tt.wantErrors {
				t.Errorf("expected error count %d, got %d", tt.wantErrors, c.ErrorCount)
			}
		})
	}
}

func TestAvailableIsTerminal(t *testing.T) {
	c := New("Test", "1")
	c.Apply(OutcomeAvailable)

	// No later outcome may move the record away from available.
	for _, o := range []Outcome{OutcomeUnavailable, OutcomeFetchFailed, OutcomeParseFailed, OutcomeEvaluationFailed} {
		c.Apply(o)
		if c.Status != StatusAvailable {
			t.Fatalf("status regressed to %s after outcome %s", c.Status, o)
		}
		if c.ErrorCount != 0 {
			t.Fatalf("error count changed to %d after outcome %s", c.ErrorCount, o)
		}
	}
}

func TestEvictionBoundary(t *testing.T) {
	c := New("Test", "1")

	for i := 0; i < EvictionThreshold; i++ {
		c.Apply(OutcomeFetchFailed)
	}
	if c.ErrorCount != 5 {
		t.Fatalf("expected error count 5, got %d", c.ErrorCount)
	}
	if c.ShouldEvict() {
		t.Error("campground at the threshold should be retained")
	}

	c.Apply(OutcomeFetchFailed)
	if !c.ShouldEvict() {
		t.Error("campground past the threshold should be evicted")
	}
}

func TestSuccessResetsEvictionBudget(t *testing.T) {
	c := New("Test", "1")

	// Five failures, one success, five more failures: never evictable.
	for i := 0; i < 5; i++ {
		c.Apply(OutcomeFetchFailed)
	}
	c.Apply(OutcomeUnavailable)
	for i := 0; i < 5; i++ {
		c.Apply(OutcomeFetchFailed)
	}

	if c.ShouldEvict() {
		t.Errorf("expected no eviction after interleaved success, error count %d", c.ErrorCount)
	}
}

func TestEnvelopeJSONShape(t *testing.T) {
	c := New("Mcgill Campground", "231962")
	c.Apply(OutcomeAvailable)

	data, err := json.Marshal(c.Envelope())
	if err != nil {
		t.Fatalf("marshaling envelope: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshaling envelope: %v", err)
	}

	for _, key := range []string{"name", "facilityID", "url", "available", "error_count"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("envelope missing %q key: %s", key, data)
		}
	}
	if decoded["available"] != true {
		t.Errorf("expected available true, got %v", decoded["available"])
	}
}
