// Package engine runs the availability watch: one polling pass checks every
// still-unavailable campground in order, and the scheduler repeats passes at a
// fixed interval until the arrival date passes or the run is canceled.
//
// Per-campground failures never abort a pass; they count against the record's
// error budget and persistent offenders are evicted at pass end. Only a
// failed alert delivery stops the loop.
package engine
