package notify

import (
	"sort"
	"strings"

	"github.com/mfrye/recgov-watch/internal/campground"
)

// Notifier delivers an alert for a set of newly-available campgrounds.
type Notifier interface {
	Notify(available []*campground.Campground) error
}

// carrierGateways maps cell carriers to their email-to-SMS gateway domains.
var carrierGateways = map[string]string{
	"verizon":    "vtext.com",
	"tmobile":    "tmomail.net",
	"sprint":     "messaging.sprintpcs.com",
	"at&t":       "txt.att.net",
	"boost":      "smsmyboostmobile.com",
	"cricket":    "sms.cricketwireless.net",
	"uscellular": "email.uscc.net",
}

// CarrierGateway returns the email-to-SMS gateway domain for a carrier name,
// case-insensitively. The second return is false for unknown carriers.
func CarrierGateway(carrier string) (string, bool) {
	gateway, ok := carrierGateways[strings.ToLower(carrier)]
	return gateway, ok
}

// Carriers lists the supported carrier names, sorted.
func Carriers() []string {
	names := make([]string, 0, len(carrierGateways))
	for name := range carrierGateways {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
