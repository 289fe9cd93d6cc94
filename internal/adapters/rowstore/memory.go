package rowstore

import (
	"context"
	"fmt"
	"strconv"
	"sync"
)

// MemoryStore keeps tables in process. Page tokens are row offsets. It is
// safe for concurrent use.
type MemoryStore struct {
	mu       sync.RWMutex
	tables   map[string][]RawRow
	nextID   map[string]int
	pageSize int
}

// NewMemoryStore returns an empty store.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	m := &MemoryStore{
		tables:   make(map[string][]RawRow),
		nextID:   make(map[string]int),
		pageSize: DefaultPageSize,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// ListPage implements Lister.
func (m *MemoryStore) ListPage(ctx context.Context, table, token string) (Page, error) {
	if err := ctx.Err(); err != nil {
		return Page{}, err
	}
	offset := 0
	if token != "" {
		n, err := strconv.Atoi(token)
		if err != nil || n < 0 {
			return Page{}, fmt.Errorf("%w: %q", ErrInvalidToken, token)
		}
		offset = n
	}
	rows := m.Slice(table, offset, m.pageSize)
	page := Page{Rows: rows}
	if end := offset + len(rows); end < m.Count(table) {
		page.Next = strconv.Itoa(end)
	}
	return page, nil
}

// Insert implements Inserter. The row is copied and given an id.
func (m *MemoryStore) Insert(ctx context.Context, table string, row RawRow) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.Append(table, row)
	return nil
}

// Append stores copies of rows without a context, for seeding.
func (m *MemoryStore) Append(table string, rows ...RawRow) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range rows {
		m.nextID[table]++
		cp := make(RawRow, len(row)+1)
		for k, v := range row {
			cp[k] = v
		}
		cp["id"] = m.nextID[table]
		m.tables[table] = append(m.tables[table], cp)
	}
}

// Slice returns up to limit rows starting at offset. The returned slice is
// not shared with the store.
func (m *MemoryStore) Slice(table string, offset, limit int) []RawRow {
	m.mu.RLock()
	defer m.mu.RUnlock()
	all := m.tables[table]
	if offset >= len(all) {
		return []RawRow{}
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	out := make([]RawRow, end-offset)
	copy(out, all[offset:end])
	return out
}

// Count returns the number of rows in table.
func (m *MemoryStore) Count(table string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.tables[table])
}
