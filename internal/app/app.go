package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/five82/lumen/internal/config"
	"github.com/five82/lumen/internal/discovery"
	"github.com/five82/lumen/internal/hue"
	"github.com/five82/lumen/internal/logging"
	"github.com/five82/lumen/internal/prefs"
	"github.com/five82/lumen/internal/state"
	"github.com/five82/lumen/internal/throttle"
	"github.com/five82/lumen/internal/ui"
)

// Options configure a lumen command.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/lumen/prefs.toml
	Host       string // overrides config and environment when set
	Debug      bool

	// Console, when set, receives log output instead of the log file.
	// Only non-interactive commands use it.
	Console io.Writer
}

// Env holds the collaborators shared by every command.
type Env struct {
	Config  config.Config
	Logger  *slog.Logger
	Session *hue.Session

	logCloser io.Closer
}

// Setup loads configuration, opens the log file, locates the bridge and
// creates a session. Callers must Close the returned Env.
func Setup(ctx context.Context, opts Options) (*Env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	env := &Env{Config: cfg}
	if opts.Console != nil {
		env.Logger = logging.NewConsole(opts.Console, opts.Debug)
	} else {
		logger, closer, err := logging.New(logging.Options{Path: cfg.LogFile, Debug: opts.Debug})
		if err != nil {
			return nil, fmt.Errorf("open log: %w", err)
		}
		env.Logger, env.logCloser = logger, closer
	}
	logger := env.Logger

	host, err := resolveHost(ctx, opts.Host, cfg, logger)
	if err != nil {
		_ = env.Close()
		return nil, err
	}

	session, err := hue.NewSession(host,
		hue.WithUsername(cfg.Username),
		hue.WithDeviceType(cfg.DeviceType),
		hue.WithLogger(logger),
	)
	if err != nil {
		_ = env.Close()
		if errors.Is(err, hue.ErrNoHost) {
			return nil, fmt.Errorf("no bridge host: set %s, host in %s, or pass --host", config.EnvHost, config.DefaultPath())
		}
		return nil, fmt.Errorf("init bridge session: %w", err)
	}
	env.Session = session

	logger.Info("session ready",
		slog.String("host", session.Host()),
		slog.Bool("paired", session.Paired()),
	)
	return env, nil
}

// Close shuts the session down and closes the log file.
func (e *Env) Close() error {
	if e.Session != nil {
		e.Session.Shutdown()
	}
	if e.logCloser != nil {
		return e.logCloser.Close()
	}
	return nil
}

// Run boots the lumen TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	env, err := Setup(ctx, opts)
	if err != nil {
		return err
	}
	defer func() { _ = env.Close() }()

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	userPrefs, err := prefs.Load(prefsPath)
	if err != nil {
		env.Logger.Warn("using default preferences", slog.String("error", err.Error()))
	}

	uiOpts := ui.Options{
		Context:   ctx,
		Bridge:    env.Session,
		Store:     &state.Store{},
		Logger:    env.Logger,
		Prefs:     userPrefs,
		PrefsPath: prefsPath,
		Host:      env.Session.Host(),
		Interval:  throttle.DefaultInterval,
		AutoPair:  !env.Session.Paired(),
	}
	if err := ui.Run(uiOpts); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

// resolveHost picks the bridge host: explicit flag, then config and
// environment, then mDNS discovery when enabled.
func resolveHost(ctx context.Context, flagHost string, cfg config.Config, logger *slog.Logger) (string, error) {
	if flagHost != "" {
		return flagHost, nil
	}
	if cfg.Host != "" {
		return cfg.Host, nil
	}
	if !cfg.Discover {
		return "", nil
	}

	host, err := discovery.Locate(ctx, cfg.DiscoveryTimeout, logger)
	if err != nil {
		if errors.Is(err, discovery.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("discover bridge: %w", err)
	}
	return host, nil
}
