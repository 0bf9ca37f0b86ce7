package rowstore

import (
	"context"
	"sync"
)

// Memory is an in-process RowStore used by tests and local runs without
// spreadsheet credentials.
type Memory struct {
	mu     sync.Mutex
	tables map[string][][]interface{}

	// FailWith, when set, is returned by every call. Lets tests
	// exercise the connection-failure path.
	FailWith error
}

func NewMemory() *Memory {
	return &Memory{tables: map[string][][]interface{}{}}
}

func (m *Memory) ReadAll(ctx context.Context, table string) ([][]interface{}, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	src := m.tables[table]
	out := make([][]interface{}, len(src))
	for i, row := range src {
		cp := make([]interface{}, len(row))
		copy(cp, row)
		out[i] = cp
	}
	return out, nil
}

func (m *Memory) AppendRow(ctx context.Context, table string, row []interface{}) error {
	return m.AppendRows(ctx, table, [][]interface{}{row})
}

func (m *Memory) AppendRows(ctx context.Context, table string, rows [][]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return m.FailWith
	}
	for _, row := range rows {
		cp := make([]interface{}, len(row))
		copy(cp, row)
		m.tables[table] = append(m.tables[table], cp)
	}
	return nil
}

func (m *Memory) Clear(ctx context.Context, table string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return m.FailWith
	}
	delete(m.tables, table)
	return nil
}
