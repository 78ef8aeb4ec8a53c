package settings

import (
	"context"
	"fmt"

	"github.com/arrosage/arrosage/engine/infra/store"
	"github.com/arrosage/arrosage/pkg/config"
	"github.com/arrosage/arrosage/pkg/logger"
)

// Repository reads and writes the settings array in Redis.
type Repository struct {
	client store.Interface
	cfg    *config.SettingsConfig
}

// NewRepository creates a settings repository over the given client.
func NewRepository(client store.Interface, cfg *config.SettingsConfig) *Repository {
	return &Repository{client: client, cfg: cfg}
}

// Config returns the tunable constants this repository validates against.
func (r *Repository) Config() *config.SettingsConfig {
	return r.cfg
}

// BuildDefault constructs the canonical pattern from the configured
// constants.
func (r *Repository) BuildDefault() Array {
	return Build(r.cfg.DefaultValue, r.cfg.LastValue, r.cfg.ArraySize)
}

// Write stores the array under the settings key, then reads it back and
// compares it against what was written. The read-back is a sanity echo
// only: nothing guards against a concurrent writer interleaving between
// the SET and the GET.
func (r *Repository) Write(ctx context.Context, arr Array) error {
	log := logger.FromContext(ctx)
	encoded, err := arr.Encode()
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, Key, encoded, 0).Err(); err != nil {
		return fmt.Errorf("writing key %q: %w", Key, err)
	}
	log.Debug("settings written", "key", Key, "value", encoded)
	stored, err := r.Read(ctx)
	if err != nil {
		return fmt.Errorf("verifying written settings: %w", err)
	}
	if !stored.Equal(arr) {
		return fmt.Errorf("verification mismatch: wrote %v, read back %v", arr, stored)
	}
	log.Debug("settings verified", "key", Key, "length", len(stored))
	return nil
}

// WriteDefault writes the canonical pattern and returns it.
func (r *Repository) WriteDefault(ctx context.Context) (Array, error) {
	arr := r.BuildDefault()
	if err := r.Write(ctx, arr); err != nil {
		return nil, err
	}
	return arr, nil
}

// Read fetches and decodes the settings array. A missing key surfaces as
// store.ErrNotFound; a present but unparseable value as ErrBadFormat.
func (r *Repository) Read(ctx context.Context) (Array, error) {
	raw, err := store.GetString(ctx, r.client, Key)
	if err != nil {
		return nil, err
	}
	return Decode(raw)
}

// Validate computes the verdicts for arr against the configured constants.
func (r *Repository) Validate(arr Array) Check {
	return arr.Validate(r.cfg.DefaultValue, r.cfg.LastValue, r.cfg.ArraySize)
}
