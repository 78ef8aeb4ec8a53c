package command

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/arrosage/arrosage/engine/loop"
	"github.com/arrosage/arrosage/engine/mode"
	"github.com/arrosage/arrosage/engine/relay"
	"github.com/arrosage/arrosage/engine/settings"
	"github.com/arrosage/arrosage/engine/status"
	"github.com/arrosage/arrosage/pkg/logger"
)

// SemiAutoStepSeconds is the uniform per-relay duration the semi-auto
// command configures for supervised runs.
const SemiAutoStepSeconds = 10

var (
	// ErrNotPaused is returned by Resume when the system is not paused.
	ErrNotPaused = errors.New("command: system is not paused")
	// ErrNoActiveStep is returned by Resume when no relay was open.
	ErrNoActiveStep = errors.New("command: no active step to resume")
)

// Commands bundles the operator actions: reset, manual, semi-auto,
// pause and resume.
type Commands struct {
	modes    *mode.Repository
	statuses *status.Repository
	settings *settings.Repository
	relays   relay.Controller
	seq      *loop.Controller
	now      func() time.Time
}

// New wires the operator commands.
func New(
	m *mode.Repository,
	st *status.Repository,
	s *settings.Repository,
	r relay.Controller,
	seq *loop.Controller,
) *Commands {
	return &Commands{
		modes:    m,
		statuses: st,
		settings: s,
		relays:   r,
		seq:      seq,
		now:      time.Now,
	}
}

// Reset returns the system to its initial state: all relays closed,
// status cleared. The mode is left untouched.
func (c *Commands) Reset(ctx context.Context) error {
	log := logger.FromContext(ctx)
	if err := c.relays.CloseAll(); err != nil {
		return fmt.Errorf("closing relays: %w", err)
	}
	if err := c.statuses.Clear(ctx); err != nil {
		return err
	}
	log.Info("system reset")
	return nil
}

// Manual stops any activity and switches to manual mode.
func (c *Commands) Manual(ctx context.Context) error {
	if err := c.Reset(ctx); err != nil {
		return err
	}
	return c.modes.Set(ctx, mode.Manual)
}

// SemiAuto configures a supervised run: semi_auto mode, a uniform
// short-duration settings array, and the sequence started at relay 0.
func (c *Commands) SemiAuto(ctx context.Context) error {
	if err := c.modes.Set(ctx, mode.SemiAuto); err != nil {
		return err
	}
	arr := settings.Uniform(SemiAutoStepSeconds, c.settings.Config().ArraySize)
	if err := c.settings.Write(ctx, arr); err != nil {
		return err
	}
	if err := c.seq.StartSequence(ctx); err != nil {
		return err
	}
	logger.FromContext(ctx).Info("semi-auto run configured",
		"step_seconds", SemiAutoStepSeconds,
	)
	return nil
}

// Pause records when and from which mode the system was paused, then
// closes every relay. Pausing an already paused system is a no-op.
func (c *Commands) Pause(ctx context.Context) error {
	state, err := c.modes.GetState(ctx)
	if err != nil {
		return err
	}
	if state.Current == mode.Pause {
		return nil
	}
	if err := c.modes.SetState(ctx, &mode.State{
		Current:      mode.Pause,
		PausedAt:     c.now().Unix(),
		PreviousMode: state.Current,
	}); err != nil {
		return err
	}
	if err := c.relays.CloseAll(); err != nil {
		return fmt.Errorf("closing relays: %w", err)
	}
	logger.FromContext(ctx).Info("system paused", "previous_mode", state.Current)
	return nil
}

// Resume shifts the active step's deadline by the pause duration, reopens
// the paused relay and restores the previous mode.
func (c *Commands) Resume(ctx context.Context) error {
	state, err := c.modes.GetState(ctx)
	if err != nil {
		return err
	}
	if state.Current != mode.Pause || state.PausedAt == 0 {
		return ErrNotPaused
	}
	previous := state.PreviousMode
	if !previous.Valid() {
		previous = mode.Manual
	}
	delta := c.now().Unix() - state.PausedAt
	st, err := c.statuses.Get(ctx)
	if err != nil {
		return err
	}
	if st == nil {
		return ErrNoActiveStep
	}
	if st.ShouldCloseAt > 0 {
		st.ShouldCloseAt += delta
	}
	if err := c.statuses.Set(ctx, st); err != nil {
		return err
	}
	if err := c.relays.Open(st.OpenedRelay); err != nil {
		return fmt.Errorf("reopening relay %d: %w", st.OpenedRelay, err)
	}
	if err := c.modes.Set(ctx, previous); err != nil {
		return err
	}
	logger.FromContext(ctx).Info("system resumed",
		"relay", st.OpenedRelay,
		"paused_seconds", delta,
		"mode", previous,
	)
	return nil
}
