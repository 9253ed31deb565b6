package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/aretw0/envswitch/pkg/domain"
)

// DefaultHistorySize is the number of records kept on disk.
const DefaultHistorySize = 50

const historyFile = "activations.json"

// Store implements ports.RecordStore using the local filesystem.
// Records are kept newest first in a single JSON file.
type Store struct {
	BasePath string
	Limit    int

	mu sync.Mutex
}

// DefaultPath returns $XDG_STATE_HOME/envswitch, or ~/.local/state/envswitch.
func DefaultPath() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "envswitch")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".envswitch", "state")
	}
	return filepath.Join(home, ".local", "state", "envswitch")
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to DefaultPath().
func New(basePath string) *Store {
	if basePath == "" {
		basePath = DefaultPath()
	}
	return &Store{BasePath: basePath, Limit: DefaultHistorySize}
}

func (s *Store) path() string {
	return filepath.Join(s.BasePath, historyFile)
}

// Save prepends the record to the history file atomically.
func (s *Store) Save(ctx context.Context, record *domain.ActivationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure state directory: %w", err)
	}

	history, err := s.read()
	if err != nil {
		return err
	}
	history = append([]domain.ActivationRecord{*record}, history...)
	if s.Limit > 0 && len(history) > s.Limit {
		history = history[:s.Limit]
	}

	data, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}
	return WriteAtomic(s.path(), data, 0644)
}

// Latest returns the most recent record.
func (s *Store) Latest(ctx context.Context) (*domain.ActivationRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history, err := s.read()
	if err != nil {
		return nil, err
	}
	if len(history) == 0 {
		return nil, domain.ErrRecordNotFound
	}
	return &history[0], nil
}

// History returns up to limit records, newest first.
func (s *Store) History(ctx context.Context, limit int) ([]domain.ActivationRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history, err := s.read()
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(history) > limit {
		history = history[:limit]
	}
	return history, nil
}

func (s *Store) read() ([]domain.ActivationRecord, error) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.ActivationRecord{}, nil
		}
		return nil, fmt.Errorf("failed to read history file: %w", err)
	}

	var history []domain.ActivationRecord
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, fmt.Errorf("failed to unmarshal history: %w", err)
	}
	return history, nil
}
