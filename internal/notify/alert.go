package notify

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/mfrye/recgov-watch/internal/campground"
	"github.com/mfrye/recgov-watch/internal/logger"
)

// sendAttempts is how many times a single delivery is tried before the alert
// is treated as lost.
const sendAttempts = 5

const defaultRetryWait = 10 * time.Second

// NotificationError reports that an alert could not be delivered after
// exhausting retries.
type NotificationError struct {
	Dest string
	Err  error
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("failed to deliver alert to %s after %d attempts: %v", e.Dest, sendAttempts, e.Err)
}

func (e *NotificationError) Unwrap() error {
	return e.Err
}

// AlertNotifier sends the availability email and, optionally, a text message
// through the carrier's email-to-SMS gateway.
type AlertNotifier struct {
	mailer    Mailer
	emailTo   string
	smsTo     string
	retryWait time.Duration
	log       *logger.Logger
}

// NewAlertNotifier builds a notifier for the given destinations. smsNumber
// and carrier may both be empty to disable the text alert; when a number is
// given the carrier must be one of the supported gateway names.
func NewAlertNotifier(mailer Mailer, emailTo, smsNumber, carrier string, log *logger.Logger) (*AlertNotifier, error) {
	if emailTo == "" {
		return nil, fmt.Errorf("notification email address is required")
	}

	n := &AlertNotifier{
		mailer:    mailer,
		emailTo:   emailTo,
		retryWait: defaultRetryWait,
		log:       log,
	}

	if smsNumber != "" {
		gateway, ok := CarrierGateway(carrier)
		if !ok {
			return nil, fmt.Errorf("unknown carrier %q, supported: %s", carrier, strings.Join(Carriers(), ", "))
		}
		n.smsTo = fmt.Sprintf("%s@%s", smsNumber, gateway)
	}

	return n, nil
}

// Notify delivers the email alert and then the text alert for the given
// campgrounds. Either delivery failing after retries fails the whole call.
func (n *AlertNotifier) Notify(available []*campground.Campground) error {
	if len(available) == 0 {
		return nil
	}

	n.log.Info("sending alert for available campgrounds", logger.Fields{
		"count": len(available),
		"to":    n.emailTo,
	})

	subject := fmt.Sprintf("Alert for %d Available Campgrounds on Recreation.gov", len(available))
	if err := n.deliver(n.emailTo, subject, emailBody(available)); err != nil {
		return err
	}

	if n.smsTo != "" {
		smsSubject := fmt.Sprintf("%d New Campgrounds Available", len(available))
		if err := n.deliver(n.smsTo, smsSubject, textBody(available)); err != nil {
			return err
		}
	}

	logger.IncrCounter("notify.alerts_sent")
	return nil
}

// deliver sends one message, retrying on transport failure.
func (n *AlertNotifier) deliver(to, subject, body string) error {
	attempt := 0
	op := func() error {
		attempt++
		err := n.mailer.Send(to, subject, body)
		if err != nil {
			n.log.Warn("alert delivery failed, retrying", logger.Fields{
				"to":            to,
				"attempt":       attempt,
				"attempts_left": sendAttempts - attempt,
			})
		}
		return err
	}

	policy := backoff.WithMaxRetries(backoff.NewConstantBackOff(n.retryWait), sendAttempts-1)
	if err := backoff.Retry(op, policy); err != nil {
		return &NotificationError{Dest: to, Err: err}
	}

	n.log.Info("alert delivered", logger.Fields{"to": to})
	return nil
}

// emailBody renders the JSON envelopes of the newly-available campgrounds.
func emailBody(available []*campground.Campground) string {
	envelopes := make([]campground.Envelope, 0, len(available))
	for _, c := range available {
		envelopes = append(envelopes, c.Envelope())
	}

	body := "The following campgrounds are now available! Please excuse ugly JSON formatting.\n"
	data, err := json.MarshalIndent(envelopes, "", "  ")
	if err != nil {
		// Fall back to the URL list rather than dropping the alert.
		return body + textBody(available)
	}
	return body + string(data)
}

// textBody keeps the SMS short: one URL per line.
func textBody(available []*campground.Campground) string {
	var sb strings.Builder
	for _, c := range available {
		sb.WriteString("\n")
		sb.WriteString(c.URL)
	}
	return sb.String()
}
