package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/cantus-corpus/internal/core/domain"
	"github.com/custodia-labs/cantus-corpus/internal/core/ports/driven"
)

// Ensure TableStore implements the interfaces.
var (
	_ driven.TableReader = (*TableStore)(nil)
	_ driven.TableWriter = (*TableStore)(nil)
)

// TableStore keeps tables keyed by path.
type TableStore struct {
	mu     sync.RWMutex
	tables map[string]*domain.Table
	failOn map[string]error
}

// NewTableStore creates an empty table store.
func NewTableStore() *TableStore {
	return &TableStore{
		tables: make(map[string]*domain.Table),
		failOn: make(map[string]error),
	}
}

// Put stores table under path.
func (s *TableStore) Put(path string, table *domain.Table) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[path] = table
}

// FailWrites makes every write to path fail with err.
func (s *TableStore) FailWrites(path string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failOn[path] = err
}

// Table returns the table stored at path.
func (s *TableStore) Table(path string) (*domain.Table, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tables[path]
	return t, ok
}

// Exists reports whether a table is stored at path.
func (s *TableStore) Exists(path string) bool {
	_, ok := s.Table(path)
	return ok
}

// ReadTable returns a copy of the table stored at path.
func (s *TableStore) ReadTable(_ context.Context, path string) (*domain.Table, error) {
	t, ok := s.Table(path)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, path)
	}
	return cloneTable(t), nil
}

// WriteTable stores a copy of table at path.
func (s *TableStore) WriteTable(_ context.Context, path string, table *domain.Table) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failOn[path]; err != nil {
		return err
	}
	s.tables[path] = cloneTable(table)
	return nil
}

func cloneTable(t *domain.Table) *domain.Table {
	out := &domain.Table{
		Columns: append([]string(nil), t.Columns...),
		Rows:    make([]domain.Row, len(t.Rows)),
	}
	for i, row := range t.Rows {
		r := make(domain.Row, len(row))
		for k, v := range row {
			r[k] = v
		}
		out.Rows[i] = r
	}
	return out
}
