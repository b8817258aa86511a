package availability

import "time"

// columnLabelLayout renders a date the way the availability table labels its
// columns: abbreviated weekday plus non-zero-padded day of month ("Fri31").
const columnLabelLayout = "Mon2"

// Window is the operator-requested stay: arrival date plus number of nights.
type Window struct {
	Start  time.Time
	Nights int
}

// Columns returns the date column labels covering each night of the stay, in
// calendar order.
func (w Window) Columns() []string {
	labels := make([]string, 0, w.Nights)
	for i := 0; i < w.Nights; i++ {
		labels = append(labels, w.Start.AddDate(0, 0, i).Format(columnLabelLayout))
	}
	return labels
}

// End returns the checkout date, the day after the last night of the stay.
func (w Window) End() time.Time {
	return w.Start.AddDate(0, 0, w.Nights)
}
