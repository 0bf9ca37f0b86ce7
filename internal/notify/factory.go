package notify

import (
	"fmt"

	"kronibola/internal/config"
	"kronibola/internal/models"
)

// Noop drops every notification. The default when no channel is
// configured: the wa.me link is the only notification the source system
// ever had.
type Noop struct{}

func (Noop) Name() string { return "none" }

func (Noop) RegistrationCreated(models.Registration, models.Session) error { return nil }

func NewNotifier(cfg config.Config) (Notifier, error) {
	switch cfg.Notifier {
	case "none", "":
		return Noop{}, nil
	case "telegram":
		return NewTelegram(cfg.TelegramToken, cfg.AdminTGID)
	default:
		return nil, fmt.Errorf("unknown notifier: %s", cfg.Notifier)
	}
}
