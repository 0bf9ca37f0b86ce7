// Package notify covers the two outbound paths: the wa.me receipt link
// handed back to the registrant, and an optional push to the admin when
// a registration lands.
package notify

import (
	"fmt"
	"net/url"
	"strings"

	"kronibola/internal/models"
)

// WhatsAppLink builds a wa.me URI that opens a chat with the admin,
// prefilled with text. Purely presentational; nothing confirms delivery.
func WhatsAppLink(adminPhone, text string) string {
	return "https://wa.me/" + strings.TrimSpace(adminPhone) + "?text=" + url.QueryEscape(text)
}

// ReceiptLink is the message a registrant sends the admin along with
// their payment receipt.
func ReceiptLink(adminPhone string, r models.Registration, s models.Session) string {
	text := fmt.Sprintf(
		"Hi Admin, I have registered for %s. Here is my receipt for %s. Status: %s.",
		s.Label(), r.PlayerName, r.Status,
	)
	return WhatsAppLink(adminPhone, text)
}

// Notifier pushes admin-facing notifications. Failures are logged by the
// caller, never propagated to the registrant.
type Notifier interface {
	Name() string
	RegistrationCreated(r models.Registration, s models.Session) error
}
