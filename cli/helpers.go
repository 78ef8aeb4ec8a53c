package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arrosage/arrosage/engine/command"
	"github.com/arrosage/arrosage/engine/infra/store"
	"github.com/arrosage/arrosage/engine/loop"
	"github.com/arrosage/arrosage/engine/mode"
	"github.com/arrosage/arrosage/engine/relay"
	"github.com/arrosage/arrosage/engine/settings"
	"github.com/arrosage/arrosage/engine/status"
	"github.com/arrosage/arrosage/pkg/config"
	"github.com/arrosage/arrosage/pkg/logger"
)

// app bundles everything a subcommand needs: configuration, an open
// store connection and the repositories over it.
type app struct {
	ctx      context.Context
	cfg      *config.Config
	store    *store.Store
	settings *settings.Repository
	modes    *mode.Repository
	statuses *status.Repository
	relays   relay.Controller
	seq      *loop.Controller
	cmds     *command.Commands
}

// setupApp loads configuration, builds the logger and opens the store
// connection. Callers must defer Close.
func setupApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := newLoggerFromFlags(cmd, cfg)
	ctx := logger.ContextWithLogger(cmd.Context(), log)

	st, err := store.New(ctx, &cfg.Redis)
	if err != nil {
		return nil, err
	}

	a := &app{ctx: ctx, cfg: cfg, store: st}
	a.settings = settings.NewRepository(st, &cfg.Settings)
	a.modes = mode.NewRepository(st)
	a.statuses = status.NewRepository(st)
	// No hardware driver is wired in; relay state is tracked in-process.
	a.relays = relay.NewMemory()
	a.seq = loop.NewController(a.settings, a.statuses, a.relays)
	a.cmds = command.New(a.modes, a.statuses, a.settings, a.relays, a.seq)
	return a, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		logger.FromContext(a.ctx).Warn("failed to close store connection", "error", err)
	}
}

func newLoggerFromFlags(cmd *cobra.Command, cfg *config.Config) logger.Logger {
	level := cfg.Log.Level
	if flagLevel, err := cmd.Flags().GetString("log-level"); err == nil && flagLevel != "" {
		level = flagLevel
	}
	jsonOut := cfg.Log.JSON
	if flagJSON, err := cmd.Flags().GetBool("log-json"); err == nil && flagJSON {
		jsonOut = true
	}
	logCfg := logger.DefaultConfig()
	logCfg.Level = logger.LogLevel(level)
	logCfg.JSON = jsonOut
	return logger.NewLogger(logCfg)
}

// printf writes user-facing output to the command's stdout.
func printf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format+"\n", args...)
}
