package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aretw0/envswitch/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces every key written by the store and the locker.
const DefaultPrefix = "envswitch:"

// Store implements ports.RecordStore using a Redis list (newest first).
type Store struct {
	client *backend.Client
	prefix string
	limit  int64
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration of the history list, refreshed on every Save.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// WithLimit caps the number of records kept.
func WithLimit(limit int) Option {
	return func(s *Store) {
		s.limit = int64(limit)
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: DefaultPrefix,
		limit:  50,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

// Client exposes the underlying client, e.g. to build a Locker on it.
func (s *Store) Client() *backend.Client {
	return s.client
}

func (s *Store) key() string {
	return s.prefix + "activations"
}

// Save pushes the record onto the history list.
func (s *Store) Save(ctx context.Context, record *domain.ActivationRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.LPush(ctx, s.key(), data)
	if s.limit > 0 {
		pipe.LTrim(ctx, s.key(), 0, s.limit-1)
	}
	if s.ttl > 0 {
		pipe.Expire(ctx, s.key(), s.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Latest returns the head of the history list.
func (s *Store) Latest(ctx context.Context) (*domain.ActivationRecord, error) {
	val, err := s.client.LIndex(ctx, s.key(), 0).Result()
	if err != nil {
		if err == backend.Nil {
			return nil, domain.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var rec domain.ActivationRecord
	if err := json.Unmarshal([]byte(val), &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal record: %w", err)
	}
	return &rec, nil
}

// History returns up to limit records, newest first.
func (s *Store) History(ctx context.Context, limit int) ([]domain.ActivationRecord, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit) - 1
	}

	vals, err := s.client.LRange(ctx, s.key(), 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}

	history := make([]domain.ActivationRecord, 0, len(vals))
	for _, val := range vals {
		var rec domain.ActivationRecord
		if err := json.Unmarshal([]byte(val), &rec); err != nil {
			return nil, fmt.Errorf("failed to unmarshal record: %w", err)
		}
		history = append(history, rec)
	}
	return history, nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
