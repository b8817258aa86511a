package availability

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// locationIconClass marks the decorative camp-location icon embedded in site
// name cells. It carries its own text and must be dropped before reading the
// cell. Found via manual inspection of recreation.gov; do not change unless
// the site changes its layout.
const locationIconClass = "camp-location-name--icon"

// ParseError reports that the rendered markup lacked an expected structural
// anchor, usually because the site changed or the page loaded in an
// unexpected state.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("availability table structure: %s", e.Reason)
}

// Grid is the structured form of one rendered availability table. Columns
// holds the date column labels in source order; each row is one campsite with
// exactly one cell per column. A grid is built fresh from one fetch and never
// mutated afterwards.
type Grid struct {
	Columns []string
	Rows    [][]string
}

// ParseGrid extracts the availability grid from rendered table markup.
func ParseGrid(r io.Reader) (*Grid, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	head := doc.Find("thead").First()
	if head.Length() == 0 {
		return nil, &ParseError{Reason: "missing thead"}
	}

	// Column labels come from the second header row; the first header row is
	// the month heading, not column data.
	headerRows := head.Find("tr")
	if headerRows.Length() < 2 {
		return nil, &ParseError{Reason: "missing date column header row"}
	}
	columns := make([]string, 0)
	headerRows.Eq(1).Find("th").Each(func(_ int, th *goquery.Selection) {
		columns = append(columns, strings.TrimSpace(th.Text()))
	})
	if len(columns) == 0 {
		return nil, &ParseError{Reason: "date column header row has no columns"}
	}

	body := doc.Find("tbody").First()
	if body.Length() == 0 {
		return nil, &ParseError{Reason: "missing tbody"}
	}

	grid := &Grid{Columns: columns}
	var rowErr error
	body.Find("tr").Each(func(i int, tr *goquery.Selection) {
		if rowErr != nil {
			return
		}
		cells := make([]string, 0, len(columns))
		tr.Find("td, th").Each(func(_ int, cell *goquery.Selection) {
			// Site name cells embed a location icon with its own text.
			cell.Find("div." + locationIconClass).Remove()
			cells = append(cells, strings.TrimSpace(cell.Text()))
		})
		if len(cells) != len(columns) {
			rowErr = &ParseError{Reason: fmt.Sprintf("row %d has %d cells, expected %d", i, len(cells), len(columns))}
			return
		}
		grid.Rows = append(grid.Rows, cells)
	})
	if rowErr != nil {
		return nil, rowErr
	}

	return grid, nil
}

// columnIndex returns the position of a column label, or -1 when absent.
func (g *Grid) columnIndex(label string) int {
	for i, col := range g.Columns {
		if col == label {
			return i
		}
	}
	return -1
}
