package status

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/arrosage/arrosage/engine/infra/store"
	"github.com/arrosage/arrosage/engine/relay"
	"github.com/arrosage/arrosage/pkg/logger"
)

// Key is the Redis key the status object lives under.
const Key = "status"

var (
	// ErrBadFormat marks a stored value that is not a status object.
	ErrBadFormat = errors.New("status: value is not a status object")
	// ErrInvalid marks a status object with out-of-range fields.
	ErrInvalid = errors.New("status: invalid status")
)

// Status records which relay is open and its timing. ShouldCloseAt is
// zero when the step has no deadline.
type Status struct {
	OpenedRelay   int   `json:"opened_relay"`
	OpenedAt      int64 `json:"opened_at"`
	ShouldCloseAt int64 `json:"should_close_at,omitempty"`
}

// Validate checks field ranges.
func (s *Status) Validate() error {
	if !relay.ValidIndex(s.OpenedRelay) {
		return fmt.Errorf("%w: opened_relay %d", ErrInvalid, s.OpenedRelay)
	}
	if s.OpenedAt < 0 {
		return fmt.Errorf("%w: opened_at %d", ErrInvalid, s.OpenedAt)
	}
	return nil
}

// Repository reads and writes the status object in Redis.
type Repository struct {
	client store.Interface
}

// NewRepository creates a status repository over the given client.
func NewRepository(client store.Interface) *Repository {
	return &Repository{client: client}
}

// Get fetches the current status. A cleared status returns (nil, nil):
// idle is a valid state, not an error.
func (r *Repository) Get(ctx context.Context) (*Status, error) {
	raw, err := store.GetString(ctx, r.client, Key)
	if store.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var s Status
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrBadFormat, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Set writes the status object.
func (r *Repository) Set(ctx context.Context, s *Status) error {
	if err := s.Validate(); err != nil {
		return err
	}
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding status object: %w", err)
	}
	if err := r.client.Set(ctx, Key, data, 0).Err(); err != nil {
		return fmt.Errorf("writing key %q: %w", Key, err)
	}
	logger.FromContext(ctx).Debug("status set",
		"opened_relay", s.OpenedRelay,
		"should_close_at", s.ShouldCloseAt,
	)
	return nil
}

// Clear deletes the status object, leaving the system idle.
func (r *Repository) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, Key).Err(); err != nil {
		return fmt.Errorf("clearing key %q: %w", Key, err)
	}
	logger.FromContext(ctx).Debug("status cleared")
	return nil
}
