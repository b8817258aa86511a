// Package campground provides the per-campground tracking state for the watcher.
//
// Each Campground carries a status (pending, unavailable, available) and a
// consecutive-error counter. Check outcomes are folded into a record through an
// explicit Outcome value rather than exception-style control flow, which keeps
// the failure taxonomy visible at the call site. A Collection is an ordered,
// deduplicated set of records keyed by facility ID, with a JSON envelope used
// for operator-visible logging.
package campground
