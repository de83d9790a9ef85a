// Package app wires configuration, transport, stores, the poller, and
// the terminal UI into runnable consoles.
package app

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/five82/marquee/internal/apierror"
	"github.com/five82/marquee/internal/config"
	"github.com/five82/marquee/internal/flagapi"
	"github.com/five82/marquee/internal/logging"
	"github.com/five82/marquee/internal/maintenance"
	"github.com/five82/marquee/internal/movieapi"
	"github.com/five82/marquee/internal/notify"
	"github.com/five82/marquee/internal/poller"
	"github.com/five82/marquee/internal/prefs"
	"github.com/five82/marquee/internal/state"
	"github.com/five82/marquee/internal/transport"
	"github.com/five82/marquee/internal/ui"
)

// dispatcher routes classified transport failures to the session-wide
// notification channel and the maintenance gate. Maintenance responses
// latch the gate and never reach the channel.
type dispatcher struct {
	notes *notify.Channel
	gate  *maintenance.Gate
	log   zerolog.Logger
}

var _ transport.Interceptor = (*dispatcher)(nil)

func (d *dispatcher) OnEnvelope(env *apierror.Envelope) {
	if env == nil {
		return
	}
	d.notes.Publish(env)
	d.log.Info().
		Int("code", env.Code).
		Str("class", env.Class.String()).
		Str("reason", env.Reason).
		Msg("error published")
}

func (d *dispatcher) OnMaintenance() {
	d.gate.Enable()
	d.log.Info().Msg("maintenance gate latched")
}

// session is the shared plumbing both consoles build before their UI.
type session struct {
	cfg     config.Config
	log     zerolog.Logger
	notes   *notify.Channel
	gate    *maintenance.Gate
	reg     *state.Registry
	client  *transport.Client
	cleanup func()
}

func newSession(configPath string, appCfg config.App) (*session, error) {
	cfg, err := config.Load(configPath, appCfg)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, closeLog, err := logging.New(cfg.LogPath)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}
	log = log.With().Str("app", appCfg.Name).Logger()

	notes := &notify.Channel{}
	gate := &maintenance.Gate{}

	client, err := transport.NewClient(transport.Options{
		BaseURL:     cfg.BaseURL,
		Timeout:     cfg.Timeout,
		UserAgent:   appCfg.Name + "/0.1",
		Interceptor: &dispatcher{notes: notes, gate: gate, log: log},
		Log:         log,
	})
	if err != nil {
		closeLog()
		return nil, fmt.Errorf("init transport: %w", err)
	}

	log.Info().Str("base_url", cfg.BaseURL).Msg("session started")
	return &session{
		cfg:     cfg,
		log:     log,
		notes:   notes,
		gate:    gate,
		reg:     &state.Registry{},
		client:  client,
		cleanup: closeLog,
	}, nil
}

// RunFlags starts the feature-flag admin console and blocks until it
// exits.
func RunFlags(ctx context.Context, configPath string) error {
	sess, err := newSession(configPath, config.FlagConsole)
	if err != nil {
		return err
	}
	defer sess.cleanup()

	svc := flagapi.NewClient(sess.client)
	store := state.NewFlagStore(svc)

	prefsPath := prefs.DefaultPath(config.FlagConsole.Name)
	if size := prefs.Load(prefsPath).PageSize; size > 0 {
		store.SetPageSize(size)
	}

	poller.Start(ctx, sess.reg, svc, []string{ui.DarkModeFlag}, sess.cfg.PollInterval, sess.log)

	model := ui.NewFlagModel(ui.FlagOptions{
		Context:   ctx,
		Store:     store,
		Notes:     sess.notes,
		Gate:      sess.gate,
		Registry:  sess.reg,
		PrefsPath: prefsPath,
	})
	if _, err := tea.NewProgram(model, tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("run flag console: %w", err)
	}
	return nil
}

// RunMovies starts the movie search console and blocks until it exits.
func RunMovies(ctx context.Context, configPath string) error {
	sess, err := newSession(configPath, config.MovieConsole)
	if err != nil {
		return err
	}
	defer sess.cleanup()

	svc := movieapi.NewClient(sess.client)
	store := state.NewMovieStore(svc)

	poller.Start(ctx, sess.reg, svc, []string{ui.DarkModeFlag}, sess.cfg.PollInterval, sess.log)

	model := ui.NewMovieModel(ui.MovieOptions{
		Context:   ctx,
		Store:     store,
		Notes:     sess.notes,
		Gate:      sess.gate,
		Registry:  sess.reg,
		PrefsPath: prefs.DefaultPath(config.MovieConsole.Name),
	})
	if _, err := tea.NewProgram(model, tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("run movie console: %w", err)
	}
	return nil
}
