package ports

import (
	"context"

	"github.com/aretw0/envswitch/pkg/domain"
)

// RecordStore defines the interface for persisting activation records.
type RecordStore interface {
	// Save appends a record; it becomes the latest one.
	Save(ctx context.Context, record *domain.ActivationRecord) error

	// Latest returns the most recent record.
	// Returns domain.ErrRecordNotFound if nothing was recorded yet.
	Latest(ctx context.Context) (*domain.ActivationRecord, error)

	// History returns up to limit records, newest first. limit <= 0 means all.
	History(ctx context.Context, limit int) ([]domain.ActivationRecord, error)
}
