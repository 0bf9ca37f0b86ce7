package capacity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kronibola/internal/models"
)

func session(id string, cap int) models.Session {
	return models.Session{ID: id, Name: "Friday Futsal", Date: "2026-03-06", Capacity: cap}
}

func TestOccupancy(t *testing.T) {
	s := session("s1", 10)
	regs := []models.Registration{
		{SessionID: "s1", Status: models.StatusPending},
		{SessionID: "s1", Status: models.StatusPaid},
		{SessionID: "s1", Status: models.StatusWaitlist},
		{SessionID: "s1", Status: models.StatusRejected},
		{SessionID: "other", Status: models.StatusPaid},
	}
	assert.Equal(t, 2, Occupancy(s, regs))
}

func TestOccupancy_DateFallbackForLegacyRows(t *testing.T) {
	s := session("s1", 10)
	regs := []models.Registration{
		// Row written before the Session ID column existed.
		{SessionDate: "2026-03-06", Status: models.StatusPaid},
		{SessionDate: "2026-03-07", Status: models.StatusPaid},
	}
	assert.Equal(t, 1, Occupancy(s, regs))
}

func TestDecideInitialStatus(t *testing.T) {
	s := session("s1", 2)
	assert.Equal(t, models.StatusPending, DecideInitialStatus(s, 0))
	assert.Equal(t, models.StatusPending, DecideInitialStatus(s, 1))
	assert.Equal(t, models.StatusWaitlist, DecideInitialStatus(s, 2))
	assert.Equal(t, models.StatusWaitlist, DecideInitialStatus(s, 5))
}

func TestSpotsLeftAndFull(t *testing.T) {
	s := session("s1", 2)
	assert.Equal(t, 2, SpotsLeft(s, 0))
	assert.Equal(t, 0, SpotsLeft(s, 2))
	assert.Equal(t, 0, SpotsLeft(s, 3), "never negative")
	assert.False(t, IsFull(s, 1))
	assert.True(t, IsFull(s, 2))
}

func TestProgress(t *testing.T) {
	s := session("s1", 4)
	assert.InDelta(t, 0.5, Progress(s, 2), 1e-9)
	assert.InDelta(t, 1.0, Progress(s, 6), 1e-9, "clamped")
	assert.InDelta(t, 1.0, Progress(session("s1", 0), 0), 1e-9, "zero capacity reads full")
}

func TestPromote_FIFOByTimestamp(t *testing.T) {
	s := session("s1", 2)
	regs := []models.Registration{
		{SessionID: "s1", PlayerName: "A", Status: models.StatusPaid, CreatedAt: "2026-03-01T10:00:00Z"},
		{SessionID: "s1", PlayerName: "C", Status: models.StatusWaitlist, CreatedAt: "2026-03-01T12:00:00Z"},
		{SessionID: "s1", PlayerName: "B", Status: models.StatusWaitlist, CreatedAt: "2026-03-01T11:00:00Z"},
	}

	promoted := Promote(s, regs)
	require.Len(t, promoted, 1)
	assert.Equal(t, "B", regs[promoted[0]].PlayerName, "earliest waitlisted first")
	assert.Equal(t, models.StatusPending, regs[promoted[0]].Status)
	assert.Equal(t, models.StatusWaitlist, regs[1].Status, "later entry stays waitlisted")
}

func TestPromote_DrainsUpToCapacity(t *testing.T) {
	s := session("s1", 3)
	regs := []models.Registration{
		{SessionID: "s1", PlayerName: "A", Status: models.StatusPaid, CreatedAt: "2026-03-01T10:00:00Z"},
		{SessionID: "s1", PlayerName: "B", Status: models.StatusWaitlist, CreatedAt: "2026-03-01T11:00:00Z"},
		{SessionID: "s1", PlayerName: "C", Status: models.StatusWaitlist, CreatedAt: "2026-03-01T12:00:00Z"},
		{SessionID: "s1", PlayerName: "D", Status: models.StatusWaitlist, CreatedAt: "2026-03-01T13:00:00Z"},
	}

	promoted := Promote(s, regs)
	require.Len(t, promoted, 2)
	assert.Equal(t, models.StatusPending, regs[1].Status)
	assert.Equal(t, models.StatusPending, regs[2].Status)
	assert.Equal(t, models.StatusWaitlist, regs[3].Status, "capacity reached")
}

func TestPromote_NothingWhenFull(t *testing.T) {
	s := session("s1", 1)
	regs := []models.Registration{
		{SessionID: "s1", Status: models.StatusPaid},
		{SessionID: "s1", Status: models.StatusWaitlist, CreatedAt: "2026-03-01T11:00:00Z"},
	}
	assert.Empty(t, Promote(s, regs))
}

func TestNextPromotable_None(t *testing.T) {
	s := session("s1", 2)
	regs := []models.Registration{
		{SessionID: "s1", Status: models.StatusPending},
	}
	assert.Equal(t, -1, NextPromotable(s, regs))
}
