package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/fang"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/hylla/cards/internal/adapters/storage/sqlite"
	"github.com/hylla/cards/internal/app"
	"github.com/hylla/cards/internal/config"
	"github.com/hylla/cards/internal/modal"
	"github.com/hylla/cards/internal/platform"
	"github.com/hylla/cards/internal/session"
	"github.com/hylla/cards/internal/tui"
	"github.com/hylla/cards/internal/view"
)

// version is set at build time.
var version = "dev"

// program is the subset of tea.Program the CLI drives.
type program interface {
	Run() (tea.Model, error)
}

// programFactory builds the TUI program; tests replace it.
var programFactory = func(m tea.Model) program {
	return tea.NewProgram(m)
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

// run executes the command tree through fang.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	root := newRootCommand(stdout, stderr)
	root.SetArgs(args)
	return fang.Execute(ctx, root, fang.WithVersion(version))
}

// rootFlags holds persistent flag values shared by every subcommand.
type rootFlags struct {
	configPath string
	appName    string
	devMode    bool
}

// runtimeEnv is the resolved configuration for one invocation.
type runtimeEnv struct {
	appName    string
	devMode    bool
	paths      platform.Paths
	configPath string
	cfg        config.Config
}

// newRootCommand builds the cards command tree.
func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}

	flags := &rootFlags{appName: platform.DefaultAppName, devMode: version == "dev"}
	if envApp := strings.TrimSpace(os.Getenv("CARDS_APP_NAME")); envApp != "" {
		flags.appName = envApp
	}
	if envDev, ok := parseBoolEnv("CARDS_DEV_MODE"); ok {
		flags.devMode = envDev
	}

	root := &cobra.Command{
		Use:   "cards",
		Short: "Organize tasks into lists from the terminal",
		Long:  "cards keeps task lists with due dates and per-list filters in a keyboard-driven board.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := resolveRuntime(flags)
			if err != nil {
				return err
			}
			return runTUI(cmd.Context(), env, stderr)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to config TOML")
	root.PersistentFlags().StringVar(&flags.appName, "app", flags.appName, "application name for config/data path resolution")
	root.PersistentFlags().BoolVar(&flags.devMode, "dev", flags.devMode, "use dev mode paths (<app>-dev)")

	root.AddCommand(newPathsCommand(stdout, flags))
	root.AddCommand(newInitCommand(stdout, flags))
	root.AddCommand(newDemoCommand(stdout, flags))
	return root
}

func newPathsCommand(stdout io.Writer, flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Print resolved config and data paths",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			paths, err := platform.DefaultPathsWithOptions(platform.Options{AppName: flags.appName, DevMode: flags.devMode})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(stdout, "app: %s\n", flags.appName)
			_, _ = fmt.Fprintf(stdout, "dev_mode: %t\n", flags.devMode)
			_, _ = fmt.Fprintf(stdout, "config: %s\n", configPathFor(flags, paths))
			_, _ = fmt.Fprintf(stdout, "data_dir: %s\n", paths.DataDir)
			_, _ = fmt.Fprintf(stdout, "log_dir: %s\n", paths.LogDir)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
}

func newInitCommand(stdout io.Writer, flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a default config file if none exists",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			paths, err := platform.DefaultPathsWithOptions(platform.Options{AppName: flags.appName, DevMode: flags.devMode})
			if err != nil {
				return err
			}
			path := configPathFor(flags, paths)
			written, err := config.WriteDefault(path)
			if err != nil {
				return fmt.Errorf("write default config %q: %w", path, err)
			}
			if !written {
				_, _ = fmt.Fprintf(stdout, "config exists: %s\n", path)
				return nil
			}
			_, _ = fmt.Fprintf(stdout, "wrote config: %s\n", path)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
}

func newDemoCommand(stdout io.Writer, flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run the groceries walkthrough against a fresh store and print each filter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := resolveRuntime(flags)
			if err != nil {
				return err
			}
			return runDemo(cmd.Context(), env.cfg, stdout)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
}

// configPathFor applies --config, then CARDS_CONFIG, then the platform default.
func configPathFor(flags *rootFlags, paths platform.Paths) string {
	if p := strings.TrimSpace(flags.configPath); p != "" {
		return p
	}
	if envPath := strings.TrimSpace(os.Getenv("CARDS_CONFIG")); envPath != "" {
		return envPath
	}
	return paths.ConfigPath
}

// resolveRuntime resolves paths and loads config.
func resolveRuntime(flags *rootFlags) (runtimeEnv, error) {
	paths, err := platform.DefaultPathsWithOptions(platform.Options{AppName: flags.appName, DevMode: flags.devMode})
	if err != nil {
		return runtimeEnv{}, err
	}
	configPath := configPathFor(flags, paths)
	cfg, err := config.Load(configPath, config.Default())
	if err != nil {
		return runtimeEnv{}, fmt.Errorf("load config %q: %w", configPath, err)
	}
	return runtimeEnv{
		appName:    flags.appName,
		devMode:    flags.devMode,
		paths:      paths,
		configPath: configPath,
		cfg:        cfg,
	}, nil
}

// newSession wires a fresh in-memory store into a session.
func newSession(cfg config.Config, idGen app.IDGenerator, notifier app.Notifier) (*session.Session, func() error, error) {
	repo, err := sqlite.OpenInMemory()
	if err != nil {
		return nil, nil, fmt.Errorf("open sqlite repository: %w", err)
	}
	store := app.NewStore(repo, idGen, time.Now)
	sess := session.New(store, notifier,
		session.WithViewOptions(view.Options{
			DateLayout: cfg.Display.DateLayout,
			Language:   cfg.Display.Language,
		}),
		session.WithModalOptions(modal.Options{
			DetailDateLayout: cfg.Display.DetailDateLayout,
			DetailTimeLayout: cfg.Display.DetailTimeLayout,
		}),
	)
	return sess, repo.Close, nil
}

// runTUI launches the board program.
func runTUI(_ context.Context, env runtimeEnv, stderr io.Writer) error {
	logger, err := newRuntimeLogger(stderr, env.appName, env.devMode, env.cfg.Logging, env.paths.LogDir, time.Now)
	if err != nil {
		return fmt.Errorf("configure runtime logger: %w", err)
	}
	// Runtime logs stay in the dev-file sink while the board is active.
	logger.SetConsoleEnabled(false)
	defer func() {
		_ = logger.Close()
	}()

	logger.Info("startup configuration resolved", "app", env.appName, "dev_mode", env.devMode)
	logger.Debug("runtime paths resolved", "config_path", env.configPath, "data_dir", env.paths.DataDir)
	logger.Info("configuration loaded", "config_path", env.configPath, "log_level", env.cfg.Logging.Level)
	if devPath := logger.DevLogPath(); devPath != "" {
		logger.Info("dev file logging enabled", "path", devPath)
	}

	sess, closeRepo, err := newSession(env.cfg, uuid.NewString, logNotifier(logger))
	if err != nil {
		logger.Error("sqlite open failed", "err", err)
		return err
	}
	defer func() {
		if closeErr := closeRepo(); closeErr != nil {
			logger.Warn("sqlite close failed", "err", closeErr)
		}
	}()

	toastDuration, err := env.cfg.NotificationDuration()
	if err != nil {
		return err
	}
	m := tui.NewModel(
		sess,
		tui.WithConfirm(tui.ConfirmConfig{
			DeleteAll:  env.cfg.Confirm.DeleteAll,
			DeleteList: env.cfg.Confirm.DeleteList,
		}),
		tui.WithToastDuration(toastDuration),
	)
	logger.Info("starting tui program loop")
	if _, err := programFactory(m).Run(); err != nil {
		logger.Error("tui program terminated with error", "err", err)
		return fmt.Errorf("run tui program: %w", err)
	}
	logger.Info("command flow complete", "command", "tui")
	return nil
}

// logNotifier forwards user-facing notifications to the runtime log.
func logNotifier(logger *runtimeLogger) app.Notifier {
	return app.NotifierFunc(func(n app.Notification) {
		switch n.Severity {
		case app.SeverityError:
			logger.Warn("notification", "severity", n.Severity, "message", n.Message)
		case app.SeveritySuccess:
			logger.Info("notification", "severity", n.Severity, "message", n.Message)
		default:
			logger.Debug("notification", "severity", n.Severity, "message", n.Message)
		}
	})
}

// parseBoolEnv reads a boolean environment variable; ok is false when unset or malformed.
func parseBoolEnv(name string) (bool, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}
