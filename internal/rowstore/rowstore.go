// Package rowstore abstracts the spreadsheet backend as an ordered table
// of untyped rows. The backend offers no keyed update: mutations are
// append or clear-then-rewrite, so write cost is O(rows).
package rowstore

import (
	"context"
	"errors"
)

// Table names inside the spreadsheet.
const (
	TableRegistrations = "Registrations"
	TableSessions      = "Sessions"
)

// ErrConnection marks the backing store as unreachable. Callers treat it
// as fatal for the operation in progress; nothing retries.
var ErrConnection = errors.New("row store unreachable")

type RowStore interface {
	// ReadAll returns every row of the table in sheet order, header
	// row included when present.
	ReadAll(ctx context.Context, table string) ([][]interface{}, error)
	AppendRow(ctx context.Context, table string, row []interface{}) error
	AppendRows(ctx context.Context, table string, rows [][]interface{}) error
	// Clear removes all rows, header included.
	Clear(ctx context.Context, table string) error
}

// Rewrite replaces a table wholesale: clear, header back, then the rows.
// This is the only way the backend can express an update or a delete.
func Rewrite(ctx context.Context, s RowStore, table string, header []interface{}, rows [][]interface{}) error {
	if err := s.Clear(ctx, table); err != nil {
		return err
	}
	if err := s.AppendRow(ctx, table, header); err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	return s.AppendRows(ctx, table, rows)
}
