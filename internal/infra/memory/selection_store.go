package memory

import (
	"context"
	"sync"

	"quiz-host/internal/domain"
)

// SelectionStore is an in-memory implementation of app.SelectionStore.
type SelectionStore struct {
	mu  sync.RWMutex
	sel *domain.Selection
}

func NewSelectionStore() *SelectionStore {
	return &SelectionStore{}
}

func (s *SelectionStore) Load(context.Context) (domain.Selection, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.sel == nil {
		return domain.Selection{}, false, nil
	}
	return *s.sel, true, nil
}

func (s *SelectionStore) Save(_ context.Context, sel domain.Selection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sel = &sel
	return nil
}

