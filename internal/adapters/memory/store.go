package memory

import (
	"context"
	"sync"

	"github.com/aretw0/envswitch/pkg/domain"
)

// Store implements ports.RecordStore in memory.
// Safe for concurrent use.
type Store struct {
	history []domain.ActivationRecord
	mu      sync.RWMutex
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{}
}

// Save prepends a copy of the record.
func (s *Store) Save(ctx context.Context, record *domain.ActivationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append([]domain.ActivationRecord{*record}, s.history...)
	return nil
}

// Latest returns a copy of the most recent record.
func (s *Store) Latest(ctx context.Context) (*domain.ActivationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.history) == 0 {
		return nil, domain.ErrRecordNotFound
	}
	rec := s.history[0]
	return &rec, nil
}

// History returns up to limit records, newest first.
func (s *Store) History(ctx context.Context, limit int) ([]domain.ActivationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.history)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]domain.ActivationRecord, n)
	copy(out, s.history[:n])
	return out, nil
}
