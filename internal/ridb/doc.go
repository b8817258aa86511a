// Package ridb is a client for the recreation.gov RIDB facilities API.
//
// The watcher uses it once at startup to discover reservable campgrounds
// within a radius of a coordinate. Any failure here is fatal to startup: a
// partial campground list assembled from a broken discovery call would
// silently narrow what the operator asked to watch.
//
// API details: https://ridb.recreation.gov/docs
package ridb
