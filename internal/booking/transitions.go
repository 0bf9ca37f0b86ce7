package booking

import (
	"context"
	"fmt"
	"log"

	"kronibola/internal/capacity"
	"kronibola/internal/models"
	"kronibola/internal/util"
)

// allowedTransition encodes the one hardened rule on the otherwise
// unrestricted admin editing surface: a Rejected row cannot be flipped
// straight to Paid.
func allowedTransition(from, to string) bool {
	if !models.ValidStatus(to) {
		return false
	}
	if from == models.StatusRejected && to == models.StatusPaid {
		return false
	}
	return true
}

// SetStatus applies a single admin status edit, keyed by session ID
// (falling back to the session date for rows that predate the ID
// column) and player name, then runs the waitlist promotion pass. The
// whole edit is realized as a full-ledger rewrite; the store has no
// keyed update.
func (s *Service) SetStatus(ctx context.Context, sessionID, sessionDate, playerName, newStatus string) (models.Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !models.ValidStatus(newStatus) {
		return models.Registration{}, fmt.Errorf("%w: %q", ErrInvalidStatus, newStatus)
	}

	regs, err := s.ledger.List(ctx)
	if err != nil {
		return models.Registration{}, err
	}

	idx := findRegistration(regs, sessionID, sessionDate, playerName)
	if idx < 0 {
		return models.Registration{}, fmt.Errorf("%w: %s / %s", ErrRegistrationNotFound, sessionDate, playerName)
	}

	from := regs[idx].Status
	if !allowedTransition(from, newStatus) {
		return models.Registration{}, fmt.Errorf("%w: %s → %s", ErrInvalidTransition, from, newStatus)
	}
	regs[idx].Status = newStatus

	if _, err := s.promoteAll(ctx, regs); err != nil {
		return models.Registration{}, err
	}
	if err := s.ledger.Rewrite(ctx, regs); err != nil {
		return models.Registration{}, err
	}
	return regs[idx], nil
}

// LedgerEdit is one row of the admin's table save. Remove flags the row
// for physical deletion.
type LedgerEdit struct {
	Registration models.Registration
	Remove       bool
}

// SaveLedger replaces the whole ledger with the admin's edited table:
// flagged rows are dropped, status edits applied, the promotion pass
// run, and the result rewritten in one clear-and-append cycle.
func (s *Service) SaveLedger(ctx context.Context, edits []LedgerEdit) ([]models.Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.ledger.List(ctx)
	if err != nil {
		return nil, err
	}

	next := make([]models.Registration, 0, len(edits))
	for _, e := range edits {
		if e.Remove {
			continue
		}
		r := e.Registration
		if !models.ValidStatus(r.Status) {
			return nil, fmt.Errorf("%w: %q for %s", ErrInvalidStatus, r.Status, r.PlayerName)
		}
		idx := findRegistration(current, r.SessionID, r.SessionDate, r.PlayerName)
		if idx < 0 {
			// A renamed row no longer matches by name; its
			// timestamp still identifies it, so the transition
			// and fee guards apply to renames too.
			idx = findByTimestamp(current, r.SessionID, r.SessionDate, r.CreatedAt)
		}
		if idx >= 0 {
			if !allowedTransition(current[idx].Status, r.Status) {
				return nil, fmt.Errorf("%w: %s → %s for %s",
					ErrInvalidTransition, current[idx].Status, r.Status, r.PlayerName)
			}
			// The fee is a snapshot; the admin table cannot rewrite it.
			r.Fee = current[idx].Fee
			if r.CreatedAt == "" {
				r.CreatedAt = current[idx].CreatedAt
			}
		}
		next = append(next, r)
	}

	if _, err := s.promoteAll(ctx, next); err != nil {
		return nil, err
	}
	if err := s.ledger.Rewrite(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}

// promoteAll runs the FIFO promotion pass for every session: whenever
// occupancy sits below capacity and a waitlisted row exists, the
// earliest-timestamped one becomes Pending. Reports whether any row
// changed.
func (s *Service) promoteAll(ctx context.Context, regs []models.Registration) (bool, error) {
	sessions, err := s.registry.List(ctx)
	if err != nil {
		return false, err
	}
	changed := false
	for _, sess := range sessions {
		for _, idx := range capacity.Promote(sess, regs) {
			changed = true
			log.Printf("booking: promoted %s from waitlist for %s",
				regs[idx].PlayerName, sess.Label())
		}
	}
	return changed, nil
}

// findRegistration locates a row by player name within a session. The
// session is identified by its surrogate ID when both sides carry one;
// rows written before the ID column existed match by date. Without a
// session ID the caller gets plain date matching, which cannot tell two
// same-date sessions apart.
func findRegistration(regs []models.Registration, sessionID, sessionDate, playerName string) int {
	want := util.NormalizeName(playerName)
	for i, r := range regs {
		if util.NormalizeName(r.PlayerName) != want {
			continue
		}
		if sameSession(r, sessionID, sessionDate) {
			return i
		}
	}
	return -1
}

func findByTimestamp(regs []models.Registration, sessionID, sessionDate, createdAt string) int {
	if createdAt == "" {
		return -1
	}
	for i, r := range regs {
		if r.CreatedAt == createdAt && sameSession(r, sessionID, sessionDate) {
			return i
		}
	}
	return -1
}

func sameSession(r models.Registration, sessionID, sessionDate string) bool {
	if sessionID != "" {
		if r.SessionID != "" {
			return r.SessionID == sessionID
		}
		// Legacy row without an ID: the date is all it has.
		return sessionDate != "" && r.SessionDate == sessionDate
	}
	return r.SessionDate == sessionDate
}
