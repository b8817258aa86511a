// Package notify delivers availability alerts for newly-bookable campgrounds.
//
// Alerts go out as an email and, when a phone number is configured, a text
// message routed through the carrier's email-to-SMS gateway. Both ride the
// same SMTP mailer. Each delivery is retried a fixed number of times; a
// delivery that still fails afterwards is surfaced as a NotificationError,
// which the caller treats as fatal — a silently lost alert defeats the whole
// point of watching.
package notify
