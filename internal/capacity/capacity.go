// Package capacity holds the slot-allocation arithmetic. All functions
// are pure; callers pass the current ledger snapshot.
package capacity

import (
	"sort"

	"kronibola/internal/models"
	"kronibola/internal/util"
)

// Occupancy counts the registrations consuming a slot of the session:
// Pending and Paid only. Waitlist and Rejected never count.
func Occupancy(s models.Session, regs []models.Registration) int {
	n := 0
	for _, r := range regs {
		if r.BelongsTo(s) && r.CountsTowardCapacity() {
			n++
		}
	}
	return n
}

func SpotsLeft(s models.Session, occupancy int) int {
	left := s.Capacity - occupancy
	if left < 0 {
		return 0
	}
	return left
}

func IsFull(s models.Session, occupancy int) bool {
	return SpotsLeft(s, occupancy) == 0
}

// Progress is the fill fraction for display, clamped to [0, 1]. A
// zero-capacity session reads as already full.
func Progress(s models.Session, occupancy int) float64 {
	if s.Capacity <= 0 {
		return 1.0
	}
	p := float64(occupancy) / float64(s.Capacity)
	if p > 1.0 {
		return 1.0
	}
	return p
}

// DecideInitialStatus assigns the status of a brand-new registration.
// Decided once, at submission time; never re-evaluated for existing rows.
func DecideInitialStatus(s models.Session, occupancy int) string {
	if occupancy < s.Capacity {
		return models.StatusPending
	}
	return models.StatusWaitlist
}

// NextPromotable returns the index into regs of the earliest-timestamped
// Waitlist entry for the session, or -1 when none. Ties keep sheet order.
func NextPromotable(s models.Session, regs []models.Registration) int {
	type candidate struct {
		idx int
	}
	waiting := []candidate{}
	for i, r := range regs {
		if r.BelongsTo(s) && r.Status == models.StatusWaitlist {
			waiting = append(waiting, candidate{idx: i})
		}
	}
	if len(waiting) == 0 {
		return -1
	}
	sort.SliceStable(waiting, func(a, b int) bool {
		ta := util.ParseTimestamp(regs[waiting[a].idx].CreatedAt)
		tb := util.ParseTimestamp(regs[waiting[b].idx].CreatedAt)
		return ta.Before(tb)
	})
	return waiting[0].idx
}

// Promote moves waitlisted entries of the session to Pending, earliest
// first, until the session is full again or the waitlist is drained.
// It mutates regs in place and returns the indices promoted.
func Promote(s models.Session, regs []models.Registration) []int {
	promoted := []int{}
	for {
		occ := Occupancy(s, regs)
		if occ >= s.Capacity {
			return promoted
		}
		idx := NextPromotable(s, regs)
		if idx < 0 {
			return promoted
		}
		regs[idx].Status = models.StatusPending
		promoted = append(promoted, idx)
	}
}
