// Package registry reads and writes the Sessions table.
package registry

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"kronibola/internal/models"
	"kronibola/internal/rowstore"
)

var ErrSessionNotFound = errors.New("session not found")

var header = []interface{}{
	"Session ID", "Session Name", "Date", "Time",
	"Location", "Fee", "Status", "Max Players",
}

type Registry struct {
	store           rowstore.RowStore
	defaultCapacity int
}

func New(store rowstore.RowStore, defaultCapacity int) *Registry {
	if defaultCapacity <= 0 {
		defaultCapacity = 20
	}
	return &Registry{store: store, defaultCapacity: defaultCapacity}
}

// List returns every session in sheet order, closed ones included.
func (r *Registry) List(ctx context.Context) ([]models.Session, error) {
	values, err := r.store.ReadAll(ctx, rowstore.TableSessions)
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return []models.Session{}, nil
	}

	cols := mapHeader(values[0])
	sessions := make([]models.Session, 0, len(values)-1)
	for _, row := range values[1:] {
		s := models.Session{
			ID:       cell(row, cols, "Session ID"),
			Name:     cell(row, cols, "Session Name"),
			Date:     cell(row, cols, "Date"),
			Time:     cell(row, cols, "Time"),
			Location: cell(row, cols, "Location"),
			Fee:      cell(row, cols, "Fee"),
			Status:   normalizeStatus(cell(row, cols, "Status")),
			Capacity: r.parseCapacity(cell(row, cols, "Max Players")),
		}
		if s.Name == "" && s.Date == "" {
			continue
		}
		sessions = append(sessions, s)
	}
	return sessions, nil
}

// ListOpen returns only sessions accepting new registrations.
func (r *Registry) ListOpen(ctx context.Context) ([]models.Session, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	open := []models.Session{}
	for _, s := range all {
		if s.Status == models.SessionOpen {
			open = append(open, s)
		}
	}
	return open, nil
}

// Get looks a session up by surrogate ID or by its display label
// (name + date). First match wins when two rows share a label.
func (r *Registry) Get(ctx context.Context, selector string) (models.Session, error) {
	all, err := r.List(ctx)
	if err != nil {
		return models.Session{}, err
	}
	selector = strings.TrimSpace(selector)
	for _, s := range all {
		if s.ID != "" && s.ID == selector {
			return s, nil
		}
	}
	for _, s := range all {
		if s.Label() == selector {
			return s, nil
		}
	}
	return models.Session{}, fmt.Errorf("%w: %s", ErrSessionNotFound, selector)
}

// Upsert replaces the whole session table. Rows without a surrogate ID
// get one minted here, so every session created through this path is
// addressable even when two share a date.
func (r *Registry) Upsert(ctx context.Context, sessions []models.Session) ([]models.Session, error) {
	rows := make([][]interface{}, 0, len(sessions))
	out := make([]models.Session, 0, len(sessions))
	for _, s := range sessions {
		if strings.TrimSpace(s.ID) == "" {
			s.ID = uuid.NewString()
		}
		s.Status = normalizeStatus(s.Status)
		if s.Capacity <= 0 {
			s.Capacity = r.defaultCapacity
		}
		rows = append(rows, []interface{}{
			s.ID, s.Name, s.Date, s.Time,
			s.Location, s.Fee, s.Status, strconv.Itoa(s.Capacity),
		})
		out = append(out, s)
	}
	if err := rowstore.Rewrite(ctx, r.store, rowstore.TableSessions, header, rows); err != nil {
		return nil, err
	}
	return out, nil
}

// parseCapacity falls back to the configured default when the Max Players
// cell is absent or not a number (older sheets had no such column).
func (r *Registry) parseCapacity(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		if raw != "" && err != nil {
			log.Printf("registry: non-numeric Max Players %q, defaulting to %d", raw, r.defaultCapacity)
		}
		return r.defaultCapacity
	}
	return n
}

func normalizeStatus(s string) string {
	if strings.EqualFold(strings.TrimSpace(s), models.SessionClosed) {
		return models.SessionClosed
	}
	return models.SessionOpen
}

func mapHeader(row []interface{}) map[string]int {
	cols := map[string]int{}
	for i, v := range row {
		name := strings.TrimSpace(fmt.Sprint(v))
		if name == "" {
			continue
		}
		if _, dup := cols[name]; !dup {
			cols[name] = i
		}
	}
	return cols
}

func cell(row []interface{}, cols map[string]int, name string) string {
	idx, ok := cols[name]
	if !ok || idx >= len(row) || row[idx] == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(row[idx]))
}
