// Package ledger reads and writes the Registrations table. Rows are
// decoded by header name, not position, because the column set has
// drifted across spreadsheet versions (Phone and Session ID are recent).
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"kronibola/internal/models"
	"kronibola/internal/rowstore"
)

// ErrSchemaMismatch marks an expected column missing from the sheet
// header. The field is defaulted and the mismatch logged; reads never
// fail on it.
var ErrSchemaMismatch = errors.New("schema mismatch")

// Canonical column order for writes.
var header = []interface{}{
	"Session ID", "Session Date", "Player Name", "Phone",
	"Payment Status", "Amount", "Timestamp",
}

// Columns present in every schema version. Session ID and Phone are
// optional: old sheets predate them.
var requiredColumns = []string{
	"Session Date", "Player Name", "Payment Status", "Amount", "Timestamp",
}

type Ledger struct {
	store rowstore.RowStore
}

func New(store rowstore.RowStore) *Ledger {
	return &Ledger{store: store}
}

// List returns every registration in sheet order.
func (l *Ledger) List(ctx context.Context) ([]models.Registration, error) {
	values, err := l.store.ReadAll(ctx, rowstore.TableRegistrations)
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return []models.Registration{}, nil
	}

	cols := mapHeader(values[0])
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			log.Printf("ledger: %v: column %q absent, defaulting", ErrSchemaMismatch, name)
		}
	}

	regs := make([]models.Registration, 0, len(values)-1)
	for _, row := range values[1:] {
		if blankRow(row) {
			continue
		}
		regs = append(regs, models.Registration{
			SessionID:   cell(row, cols, "Session ID"),
			SessionDate: cell(row, cols, "Session Date"),
			PlayerName:  cell(row, cols, "Player Name"),
			Phone:       strings.TrimPrefix(cell(row, cols, "Phone"), "'"),
			Status:      cell(row, cols, "Payment Status"),
			Fee:         cell(row, cols, "Amount"),
			CreatedAt:   cell(row, cols, "Timestamp"),
		})
	}
	return regs, nil
}

// Append adds one registration to the end of the table, writing the
// header first on a virgin sheet.
func (l *Ledger) Append(ctx context.Context, r models.Registration) error {
	values, err := l.store.ReadAll(ctx, rowstore.TableRegistrations)
	if err != nil {
		return err
	}
	if len(values) == 0 {
		if err := l.store.AppendRow(ctx, rowstore.TableRegistrations, header); err != nil {
			return err
		}
	}
	return l.store.AppendRow(ctx, rowstore.TableRegistrations, encode(r))
}

// Rewrite replaces the whole table with the given registrations. This is
// the only delete/update primitive the backend has; order is preserved.
func (l *Ledger) Rewrite(ctx context.Context, regs []models.Registration) error {
	rows := make([][]interface{}, 0, len(regs))
	for _, r := range regs {
		rows = append(rows, encode(r))
	}
	return rowstore.Rewrite(ctx, l.store, rowstore.TableRegistrations, header, rows)
}

func encode(r models.Registration) []interface{} {
	// Leading apostrophe keeps the spreadsheet from eating the phone's
	// leading zero by parsing it as a number.
	phone := r.Phone
	if phone != "" && !strings.HasPrefix(phone, "'") {
		phone = "'" + phone
	}
	return []interface{}{
		r.SessionID, r.SessionDate, r.PlayerName, phone,
		r.Status, r.Fee, r.CreatedAt,
	}
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

func blankRow(row []interface{}) bool {
	for _, v := range row {
		if v != nil && strings.TrimSpace(fmt.Sprint(v)) != "" {
			return false
		}
	}
	return true
}
