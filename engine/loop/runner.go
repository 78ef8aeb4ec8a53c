package loop

import (
	"context"
	"time"

	"github.com/arrosage/arrosage/engine/infra/store"
	"github.com/arrosage/arrosage/engine/mode"
	"github.com/arrosage/arrosage/engine/relay"
	"github.com/arrosage/arrosage/engine/status"
	"github.com/arrosage/arrosage/pkg/logger"
)

const defaultTick = 100 * time.Millisecond

// Runner polls the system state and advances active sequences while the
// mode is auto or semi_auto. It never starts sequences on its own; they
// are started by the semi-auto command or through the API.
type Runner struct {
	modes    *mode.Repository
	statuses *status.Repository
	ctrl     *Controller
	tick     time.Duration
}

// NewRunner wires a control loop.
func NewRunner(m *mode.Repository, st *status.Repository, ctrl *Controller) *Runner {
	return &Runner{modes: m, statuses: st, ctrl: ctrl, tick: defaultTick}
}

// Run blocks until the context is canceled, ticking at the poll interval.
func (r *Runner) Run(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info("control loop started", "tick", r.tick)
	ticker := time.NewTicker(r.tick)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Info("control loop stopped")
			return nil
		case <-ticker.C:
			if err := r.Tick(ctx); err != nil {
				log.Error("control loop tick failed", "error", err)
			}
		}
	}
}

// Tick runs a single iteration of the loop body.
func (r *Runner) Tick(ctx context.Context) error {
	current, err := r.modes.Get(ctx)
	if store.IsNotFound(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if current != mode.Auto && current != mode.SemiAuto {
		return nil
	}
	st, err := r.statuses.Get(ctx)
	if err != nil {
		return err
	}
	if st == nil {
		return nil
	}
	finished, err := r.ctrl.StepFinished(ctx)
	if err != nil {
		return err
	}
	if !finished {
		return nil
	}
	if st.OpenedRelay < relay.Count-1 {
		return r.ctrl.StartStep(ctx, st.OpenedRelay+1)
	}
	return r.ctrl.Finish(ctx)
}
