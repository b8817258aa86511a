// Package cli defines the recgov-watch command: flag parsing and validation
// of the operator's inputs, then wiring discovery, the page renderer, the
// polling engine, and alert delivery together for one run.
package cli
