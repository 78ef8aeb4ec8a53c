package loop

import (
	"context"
	"fmt"
	"time"

	"github.com/arrosage/arrosage/engine/relay"
	"github.com/arrosage/arrosage/engine/settings"
	"github.com/arrosage/arrosage/engine/status"
	"github.com/arrosage/arrosage/pkg/logger"
)

// Controller runs watering sequences: one relay at a time, each open for
// the duration the settings array assigns to it.
type Controller struct {
	settings *settings.Repository
	status   *status.Repository
	relays   relay.Controller
	now      func() time.Time
}

// NewController wires a sequence controller.
func NewController(s *settings.Repository, st *status.Repository, r relay.Controller) *Controller {
	return &Controller{settings: s, status: st, relays: r, now: time.Now}
}

// StartSequence clears any previous state and opens the first relay.
func (c *Controller) StartSequence(ctx context.Context) error {
	if err := c.status.Clear(ctx); err != nil {
		return err
	}
	return c.StartStep(ctx, 0)
}

// StartStep closes every relay, opens relay n and records the step status
// with its closing deadline taken from the settings array.
func (c *Controller) StartStep(ctx context.Context, n int) error {
	if !relay.ValidIndex(n) {
		return fmt.Errorf("%w: %d", relay.ErrBadIndex, n)
	}
	durations, err := c.settings.Read(ctx)
	if err != nil {
		return fmt.Errorf("loading step durations: %w", err)
	}
	if n >= len(durations) {
		return fmt.Errorf("no duration for relay %d in a %d-element settings array", n, len(durations))
	}
	if err := c.relays.CloseAll(); err != nil {
		return err
	}
	if err := c.relays.Open(n); err != nil {
		return err
	}
	now := c.now().Unix()
	st := &status.Status{OpenedRelay: n, OpenedAt: now}
	if durations[n] > 0 {
		st.ShouldCloseAt = now + int64(durations[n])
	}
	if err := c.status.Set(ctx, st); err != nil {
		return err
	}
	logger.FromContext(ctx).Info("step started",
		"relay", n,
		"duration_seconds", durations[n],
	)
	return nil
}

// StepFinished reports whether the active step has reached its deadline.
// An idle system, or a step without a deadline, is never finished.
func (c *Controller) StepFinished(ctx context.Context) (bool, error) {
	st, err := c.status.Get(ctx)
	if err != nil {
		return false, err
	}
	if st == nil || st.ShouldCloseAt == 0 {
		return false, nil
	}
	return c.now().Unix() >= st.ShouldCloseAt, nil
}

// Finish closes every relay and clears the status, ending the sequence.
func (c *Controller) Finish(ctx context.Context) error {
	if err := c.relays.CloseAll(); err != nil {
		return err
	}
	if err := c.status.Clear(ctx); err != nil {
		return err
	}
	logger.FromContext(ctx).Info("sequence complete")
	return nil
}
