package cli

import (
	"fmt"
	"strings"
	"time"
)

const (
	startDateLayout = "01/02/2006"

	maxNights   = 14
	maxNumSites = 9
)

// GeoSearch is the optional discovery query: a coordinate and a radius in
// miles. All three arguments come together or not at all.
type GeoSearch struct {
	Latitude  float64
	Longitude float64
	Radius    int
}

// parseStartDate parses the operator's arrival date as Month/Day/Year
// (e.g. 05/19/2026).
func parseStartDate(arg string) (time.Time, error) {
	t, err := time.Parse(startDateLayout, strings.TrimSpace(arg))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid start date %q, expected MM/DD/YYYY: %w", arg, err)
	}
	return t, nil
}

// validateNights bounds the stay length to a sane range.
func validateNights(n int) error {
	if n < 1 || n > maxNights {
		return fmt.Errorf("nights must be between 1 and %d, got %d", maxNights, n)
	}
	return nil
}

// validateNumSites bounds the requested site count.
func validateNumSites(n int) error {
	if n < 1 || n > maxNumSites {
		return fmt.Errorf("number of sites must be between 1 and %d, got %d", maxNumSites, n)
	}
	return nil
}

// splitIDList parses a comma-separated facility ID list, dropping empty
// entries.
func splitIDList(arg string) []string {
	if strings.TrimSpace(arg) == "" {
		return nil
	}
	parts := strings.Split(arg, ",")
	ids := make([]string, 0, len(parts))
	for _, p := range parts {
		if id := strings.TrimSpace(p); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// buildGeo enforces the all-or-nothing rule on the discovery arguments.
func buildGeo(latSet, lonSet, radiusSet bool, lat, lon float64, radius int) (*GeoSearch, error) {
	if !latSet && !lonSet && !radiusSet {
		return nil, nil
	}
	if !(latSet && lonSet && radiusSet) {
		return nil, fmt.Errorf("--lat, --lon and --radius must be provided together")
	}
	if radius <= 0 {
		return nil, fmt.Errorf("radius must be positive, got %d", radius)
	}
	return &GeoSearch{Latitude: lat, Longitude: lon, Radius: radius}, nil
}
