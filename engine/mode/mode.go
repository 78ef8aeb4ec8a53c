package mode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/arrosage/arrosage/engine/infra/store"
	"github.com/arrosage/arrosage/pkg/logger"
)

// Key is the Redis key the mode object lives under.
const Key = "mode"

// Mode is the operating mode of the watering system.
type Mode string

const (
	Manual   Mode = "manual"
	Auto     Mode = "auto"
	SemiAuto Mode = "semi_auto"
	Pause    Mode = "pause"
)

var (
	// ErrInvalidMode marks a mode outside the valid set, whether supplied
	// by a caller or found in the store.
	ErrInvalidMode = errors.New("mode: invalid mode")
	// ErrBadFormat marks a stored value that is not a mode object.
	ErrBadFormat = errors.New("mode: value is not a mode object")
)

// ValidModes returns the accepted modes in a stable order.
func ValidModes() []Mode {
	return []Mode{Manual, Auto, SemiAuto, Pause}
}

// Valid reports whether m is one of the accepted modes.
func (m Mode) Valid() bool {
	switch m {
	case Manual, Auto, SemiAuto, Pause:
		return true
	}
	return false
}

func (m Mode) String() string {
	return string(m)
}

// State is the stored mode object. PausedAt and PreviousMode carry the
// bookkeeping the pause command records so resume can undo it.
type State struct {
	Current      Mode  `json:"current"`
	PausedAt     int64 `json:"paused_at,omitempty"`
	PreviousMode Mode  `json:"previous_mode,omitempty"`
}

// Repository reads and writes the mode object in Redis.
type Repository struct {
	client store.Interface
}

// NewRepository creates a mode repository over the given client.
func NewRepository(client store.Interface) *Repository {
	return &Repository{client: client}
}

// GetState fetches the stored mode object. The current mode is validated
// against the accepted set.
func (r *Repository) GetState(ctx context.Context) (*State, error) {
	raw, err := store.GetString(ctx, r.client, Key)
	if err != nil {
		return nil, err
	}
	var state State
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrBadFormat, err)
	}
	if !state.Current.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMode, state.Current)
	}
	return &state, nil
}

// Get fetches the current mode.
func (r *Repository) Get(ctx context.Context) (Mode, error) {
	state, err := r.GetState(ctx)
	if err != nil {
		return "", err
	}
	return state.Current, nil
}

// SetState writes the full mode object, then reads it back to verify.
// Like the settings writer, the verification is a non-atomic echo.
func (r *Repository) SetState(ctx context.Context, state *State) error {
	if !state.Current.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidMode, state.Current)
	}
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encoding mode object: %w", err)
	}
	if err := r.client.Set(ctx, Key, data, 0).Err(); err != nil {
		return fmt.Errorf("writing key %q: %w", Key, err)
	}
	stored, err := r.GetState(ctx)
	if err != nil {
		return fmt.Errorf("verifying written mode: %w", err)
	}
	if stored.Current != state.Current {
		return fmt.Errorf("verification mismatch: wrote %q, read back %q", state.Current, stored.Current)
	}
	logger.FromContext(ctx).Debug("mode set", "mode", state.Current)
	return nil
}

// Set writes a bare mode object holding only the current mode.
func (r *Repository) Set(ctx context.Context, m Mode) error {
	return r.SetState(ctx, &State{Current: m})
}
