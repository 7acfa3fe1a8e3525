package webhook

import (
	"scm-event-dispatcher/internal/model"
	"scm-event-dispatcher/internal/rescan"
)

// SecurityConfig holds webhook security settings
type SecurityConfig struct {
	Secret          string   // Shared secret for signature verification
	AllowedIPs      []string // IP or CIDR allow list (optional)
	RateLimitPerMin int      // Max requests per minute per origin
}

// GitHub delivery headers.
const (
	HeaderEvent        = "X-GitHub-Event"
	HeaderDelivery     = "X-GitHub-Delivery"
	HeaderSignature256 = "X-Hub-Signature-256"
	HeaderSignature    = "X-Hub-Signature"
)

const (
	eventPing = "ping"

	// GitHub caps payloads at 25 MB.
	maxPayloadBytes = 25 << 20

	defaultListLimit = 50
	maxListLimit     = 500
)

// supportedEvents maps the event header to a notification kind.
var supportedEvents = map[string]model.NotificationKind{
	"create": model.KindCreate,
	"delete": model.KindDelete,
	"push":   model.KindPush,
}

// DeliveryLister exposes recently delivered re-scan requests.
type DeliveryLister interface {
	Recent(limit int) []rescan.Delivery
}
