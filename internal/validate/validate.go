// Package validate gates registrant-submitted data before anything is
// written. Rules run in order; the first failure wins.
package validate

import (
	"errors"
	"strings"

	"kronibola/internal/models"
	"kronibola/internal/util"
)

var (
	ErrMissingField       = errors.New("name and phone are required")
	ErrInvalidPhoneFormat = errors.New("phone must contain digits only")
	ErrInvalidPhoneLength = errors.New("phone must be 10-13 digits")
	ErrDuplicateName      = errors.New("name already registered for this session")
)

// NormalizePhone strips hyphens and spaces. It does not judge validity.
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	phone = strings.ReplaceAll(phone, "-", "")
	phone = strings.ReplaceAll(phone, " ", "")
	return phone
}

// Registrant checks a submission against the session's existing
// registrations. existing must already be filtered to the session.
// allowRejectedResubmit controls whether a Rejected row blocks the same
// name from registering again.
func Registrant(name, phone string, existing []models.Registration, allowRejectedResubmit bool) error {
	name = strings.TrimSpace(name)
	if name == "" || strings.TrimSpace(phone) == "" {
		return ErrMissingField
	}

	normalized := NormalizePhone(phone)
	for _, r := range normalized {
		if r < '0' || r > '9' {
			return ErrInvalidPhoneFormat
		}
	}
	if len(normalized) < 10 || len(normalized) > 13 {
		return ErrInvalidPhoneLength
	}

	want := util.NormalizeName(name)
	for _, r := range existing {
		if r.Status == models.StatusRejected && allowRejectedResubmit {
			continue
		}
		if util.NormalizeName(r.PlayerName) == want {
			return ErrDuplicateName
		}
	}
	return nil
}
