package availability

import "fmt"

// availableMarker is the cell value denoting a bookable site for a date.
const availableMarker = "A"

// ColumnNotFoundError reports that a required date column is absent from the
// grid, typically because the requested window runs past the rendered
// calendar's range. This is a check failure, not an "unavailable" result.
type ColumnNotFoundError struct {
	Column string
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("date column %q not present in availability table", e.Column)
}

// IsFullyAvailable reports whether every night of the window has at least one
// open site somewhere in the grid. Sites may differ from night to night; a
// stay is viable as long as each date column carries the availability marker
// in some row. Scanning stops at the first night with no openings.
func (g *Grid) IsFullyAvailable(w Window) (bool, error) {
	for _, label := range w.Columns() {
		idx := g.columnIndex(label)
		if idx < 0 {
			return false, &ColumnNotFoundError{Column: label}
		}
		if !g.anyAvailable(idx) {
			return false, nil
		}
	}
	return true, nil
}

// anyAvailable reports whether any row carries the availability marker in the
// given column.
func (g *Grid) anyAvailable(col int) bool {
	for _, row := range g.Rows {
		if row[col] == availableMarker {
			return true
		}
	}
	return false
}
