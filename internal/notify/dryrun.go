package notify

import (
	"fmt"
	"io"
	"os"

	"github.com/mfrye/recgov-watch/internal/campground"
)

// DryRunNotifier prints what would be sent without touching SMTP.
type DryRunNotifier struct {
	out io.Writer
}

// NewDryRunNotifier creates a dry-run notifier writing to stdout.
func NewDryRunNotifier() *DryRunNotifier {
	return &DryRunNotifier{out: os.Stdout}
}

// Notify prints the alert that would be delivered.
func (n *DryRunNotifier) Notify(available []*campground.Campground) error {
	fmt.Fprintf(n.out, "--- Dry run: alert for %d campground(s) ---\n", len(available))
	fmt.Fprintln(n.out, emailBody(available))
	fmt.Fprintln(n.out)
	return nil
}
