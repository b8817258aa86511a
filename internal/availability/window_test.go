package availability

import (
	"reflect"
	"testing"
	"time"
)

func TestWindowColumns(t *testing.T) {
	tests := []struct {
		name   string
		start  time.Time
		nights int
		want   []string
	}{
		{
			name:   "spans a month boundary",
			start:  time.Date(2021, time.December, 31, 0, 0, 0, 0, time.UTC),
			nights: 2,
			want:   []string{"Fri31", "Sat1"},
		},
		{
			name:   "single night",
			start:  time.Date(2022, time.May, 31, 0, 0, 0, 0, time.UTC),
			nights: 1,
			want:   []string{"Tue31"},
		},
		{
			name:   "single-digit days are not zero padded",
			start:  time.Date(2022, time.June, 1, 0, 0, 0, 0, time.UTC),
			nights: 3,
			want:   []string{"Wed1", "Thu2", "Fri3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Window{Start: tt.start, Nights: tt.nights}.Columns()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Columns() = %v, expected %v", got, tt.want)
			}
		})
	}
}

func TestWindowEnd(t *testing.T) {
	w := Window{
		Start:  time.Date(2021, time.December, 31, 0, 0, 0, 0, time.UTC),
		Nights: 2,
	}
	want := time.Date(2022, time.January, 2, 0, 0, 0, 0, time.UTC)
	if !w.End().Equal(want) {
		t.Errorf("End() = %v, expected %v", w.End(), want)
	}
}
