package availability

import (
	"errors"
	"os"
	"reflect"
	"strings"
	"testing"
)

func loadFixture(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile("../../testdata/fixtures/availability_table.html")
	if err != nil {
		t.Fatalf("failed to load test fixture: %v", err)
	}
	return string(data)
}

func TestParseGrid(t *testing.T) {
	grid, err := ParseGrid(strings.NewReader(loadFixture(t)))
	if err != nil {
		t.Fatalf("ParseGrid failed: %v", err)
	}

	wantColumns := []string{"Site", "Fri31", "Sat1"}
	if !reflect.DeepEqual(grid.Columns, wantColumns) {
		t.Errorf("expected columns %v, got %v", wantColumns, grid.Columns)
	}

	if len(grid.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(grid.Rows))
	}
	for i, row := range grid.Rows {
		if len(row) != len(grid.Columns) {
			t.Errorf("row %d has %d cells, expected %d", i, len(row), len(grid.Columns))
		}
	}

	// Availability markers survive in source order.
	if grid.Rows[0][1] != "A" || grid.Rows[1][2] != "A" {
		t.Errorf("expected availability markers at [0][1] and [1][2], got rows %v", grid.Rows)
	}
}

func TestParseGridStripsLocationIcon(t *testing.T) {
	grid, err := ParseGrid(strings.NewReader(loadFixture(t)))
	if err != nil {
		t.Fatalf("ParseGrid failed: %v", err)
	}

	for i, row := range grid.Rows {
		if strings.Contains(row[0], "icon") {
			t.Errorf("row %d site cell still contains icon text: %q", i, row[0])
		}
	}
	if grid.Rows[0][0] != "001 Riverside Loop" {
		t.Errorf("expected clean site name, got %q", grid.Rows[0][0])
	}
}

func TestParseGridIdempotent(t *testing.T) {
	fixture := loadFixture(t)

	first, err := ParseGrid(strings.NewReader(fixture))
	if err != nil {
		t.Fatalf("first parse failed: %v", err)
	}
	second, err := ParseGrid(strings.NewReader(fixture))
	if err != nil {
		t.Fatalf("second parse failed: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("parsing the same markup twice produced different grids")
	}
}

func TestParseGridStructuralErrors(t *testing.T) {
	tests := []struct {
		name   string
		markup string
	}{
		{
			name:   "no table head",
			markup: `<table><tbody><tr><td>A</td></tr></tbody></table>`,
		},
		{
			name:   "single header row",
			markup: `<table><thead><tr><th>Jul 2026</th></tr></thead><tbody><tr><td>A</td></tr></tbody></table>`,
		},
		{
			name:   "no table body",
			markup: `<table><thead><tr><th>Jul 2026</th></tr><tr><th>Fri31</th></tr></thead></table>`,
		},
		{
			name:   "ragged row",
			markup: `<table><thead><tr><th>Jul 2026</th></tr><tr><th>Fri31</th><th>Sat1</th></tr></thead><tbody><tr><td>A</td></tr></tbody></table>`,
		},
		{
			name:   "empty page",
			markup: `<html><body><p>maintenance</p></body></html>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseGrid(strings.NewReader(tt.markup))
			if err == nil {
				t.Fatal("expected a parse error")
			}
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Errorf("expected *ParseError, got %T: %v", err, err)
			}
		})
	}
}
