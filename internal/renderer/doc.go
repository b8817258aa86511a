// Package renderer drives a headless Chrome session to fetch rendered
// recreation.gov availability tables.
//
// The availability table only exists after client-side rendering, so a plain
// HTTP GET cannot see it. One browser session is reused across all fetches of
// a run and is not safe for concurrent callers. Element identifiers were found
// by manual inspection of recreation.gov; do not change them unless the site
// changes its layout.
package renderer
