// Package booking orchestrates the registration flow and the
// administrator's status edits over the session registry and the
// registration ledger.
package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"kronibola/internal/capacity"
	"kronibola/internal/ledger"
	"kronibola/internal/models"
	"kronibola/internal/notify"
	"kronibola/internal/registry"
	"kronibola/internal/util"
	"kronibola/internal/validate"
)

var (
	ErrNoOpenSessions       = errors.New("no sessions are open for registration")
	ErrSessionClosed        = errors.New("session is closed for registration")
	ErrInvalidStatus        = errors.New("invalid payment status")
	ErrInvalidTransition    = errors.New("transition not allowed")
	ErrRegistrationNotFound = errors.New("registration not found")
)

type Service struct {
	// Serializes every read-modify-write cycle against the store. The
	// backend has no transactions; without this, two admin saves can
	// interleave a clear and a rewrite and lose rows.
	mu sync.Mutex

	registry *registry.Registry
	ledger   *ledger.Ledger
	notifier notify.Notifier

	adminWhatsApp         string
	pendingOverdue        time.Duration
	allowRejectedResubmit bool
}

type Options struct {
	AdminWhatsApp         string
	PendingOverdue        time.Duration
	AllowRejectedResubmit bool
}

func New(reg *registry.Registry, led *ledger.Ledger, n notify.Notifier, opts Options) *Service {
	if n == nil {
		n = notify.Noop{}
	}
	if opts.PendingOverdue <= 0 {
		opts.PendingOverdue = time.Hour
	}
	return &Service{
		registry:              reg,
		ledger:                led,
		notifier:              n,
		adminWhatsApp:         opts.AdminWhatsApp,
		pendingOverdue:        opts.PendingOverdue,
		allowRejectedResubmit: opts.AllowRejectedResubmit,
	}
}

// SessionView is a session plus its live occupancy numbers.
type SessionView struct {
	models.Session
	Occupancy int
	SpotsLeft int
	Full      bool
	Progress  float64
}

func (s *Service) view(sess models.Session, regs []models.Registration) SessionView {
	occ := capacity.Occupancy(sess, regs)
	return SessionView{
		Session:   sess,
		Occupancy: occ,
		SpotsLeft: capacity.SpotsLeft(sess, occ),
		Full:      capacity.IsFull(sess, occ),
		Progress:  capacity.Progress(sess, occ),
	}
}

// OpenSessions lists sessions accepting registrations, with occupancy.
func (s *Service) OpenSessions(ctx context.Context) ([]SessionView, error) {
	open, err := s.registry.ListOpen(ctx)
	if err != nil {
		return nil, err
	}
	regs, err := s.ledger.List(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]SessionView, 0, len(open))
	for _, sess := range open {
		views = append(views, s.view(sess, regs))
	}
	return views, nil
}

// AllSessions lists every session, closed ones included, with occupancy.
func (s *Service) AllSessions(ctx context.Context) ([]SessionView, error) {
	all, err := s.registry.List(ctx)
	if err != nil {
		return nil, err
	}
	regs, err := s.ledger.List(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]SessionView, 0, len(all))
	for _, sess := range all {
		views = append(views, s.view(sess, regs))
	}
	return views, nil
}

// UpsertSessions replaces the whole session table (the admin's save).
// A capacity raise frees confirmed slots, so the promotion pass runs
// against the new table before returning.
func (s *Service) UpsertSessions(ctx context.Context, sessions []models.Session) ([]models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved, err := s.registry.Upsert(ctx, sessions)
	if err != nil {
		return nil, err
	}

	regs, err := s.ledger.List(ctx)
	if err != nil {
		return nil, err
	}
	changed, err := s.promoteAll(ctx, regs)
	if err != nil {
		return nil, err
	}
	if changed {
		if err := s.ledger.Rewrite(ctx, regs); err != nil {
			return nil, err
		}
	}
	return saved, nil
}

// RegisterResult is what a successful submission returns to the form.
type RegisterResult struct {
	Registration models.Registration
	Session      SessionView
	ReceiptLink  string
}

// Register runs the full submission path: validation gate, capacity
// decision, ledger append, admin notification.
func (s *Service) Register(ctx context.Context, sessionSelector, name, phone string) (RegisterResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	open, err := s.registry.ListOpen(ctx)
	if err != nil {
		return RegisterResult{}, err
	}
	if len(open) == 0 {
		return RegisterResult{}, ErrNoOpenSessions
	}

	sess, err := s.registry.Get(ctx, sessionSelector)
	if err != nil {
		return RegisterResult{}, err
	}
	if sess.Status != models.SessionOpen {
		return RegisterResult{}, fmt.Errorf("%w: %s", ErrSessionClosed, sess.Label())
	}

	regs, err := s.ledger.List(ctx)
	if err != nil {
		return RegisterResult{}, err
	}

	// Catch up on any promotion the ledger still owes this session
	// (capacity may have been raised out of band) so the newcomer
	// cannot jump ahead of an earlier waitlisted entry.
	if promoted := capacity.Promote(sess, regs); len(promoted) > 0 {
		for _, idx := range promoted {
			log.Printf("booking: promoted %s from waitlist for %s",
				regs[idx].PlayerName, sess.Label())
		}
		if err := s.ledger.Rewrite(ctx, regs); err != nil {
			return RegisterResult{}, err
		}
	}

	existing := []models.Registration{}
	for _, r := range regs {
		if r.BelongsTo(sess) {
			existing = append(existing, r)
		}
	}

	if err := validate.Registrant(name, phone, existing, s.allowRejectedResubmit); err != nil {
		return RegisterResult{}, err
	}

	occ := capacity.Occupancy(sess, regs)
	reg := models.Registration{
		SessionID:   sess.ID,
		SessionDate: sess.Date,
		PlayerName:  name,
		Phone:       validate.NormalizePhone(phone),
		Status:      capacity.DecideInitialStatus(sess, occ),
		Fee:         sess.Fee, // snapshot; later fee edits do not touch this
		CreatedAt:   util.NowISO(),
	}
	if err := s.ledger.Append(ctx, reg); err != nil {
		return RegisterResult{}, err
	}

	// Notification failures never fail the registration; they are
	// logged and the registrant still gets their receipt link.
	if err := s.notifier.RegistrationCreated(reg, sess); err != nil {
		log.Printf("notify admin: %v", err)
	}

	regs = append(regs, reg)
	return RegisterResult{
		Registration: reg,
		Session:      s.view(sess, regs),
		ReceiptLink:  notify.ReceiptLink(s.adminWhatsApp, reg, sess),
	}, nil
}

// PublicRegistrations lists name/date/status for display, optionally
// filtered to one session date.
func (s *Service) PublicRegistrations(ctx context.Context, date string) ([]models.Registration, error) {
	regs, err := s.ledger.List(ctx)
	if err != nil {
		return nil, err
	}
	if date == "" {
		return regs, nil
	}
	out := []models.Registration{}
	for _, r := range regs {
		if r.SessionDate == date {
			out = append(out, r)
		}
	}
	return out, nil
}

// LedgerEntry is a registration with the admin-only overdue flag.
type LedgerEntry struct {
	models.Registration
	Overdue bool
}

// AdminLedger returns the full ledger, flagging Pending rows whose
// payment is older than the overdue threshold.
func (s *Service) AdminLedger(ctx context.Context) ([]LedgerEntry, error) {
	regs, err := s.ledger.List(ctx)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	out := make([]LedgerEntry, 0, len(regs))
	for _, r := range regs {
		e := LedgerEntry{Registration: r}
		if r.Status == models.StatusPending {
			if ts := util.ParseTimestamp(r.CreatedAt); !ts.IsZero() && now.Sub(ts) > s.pendingOverdue {
				e.Overdue = true
			}
		}
		out = append(out, e)
	}
	return out, nil
}
