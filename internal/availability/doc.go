// Package availability turns a rendered recreation.gov availability table into
// a structured grid and evaluates it against a requested stay.
//
// The parser depends on two structural anchors of the site's markup: the table
// head, whose second row carries the date column labels (the first row is just
// the month heading), and the table body, whose rows are individual campsites.
// All structural assumptions about the remote markup live in this package so a
// site layout change touches only this boundary.
package availability
