package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/fang"
	charmLog "github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ebenmoss/remedy/internal/adapters/storage/memory"
	"github.com/ebenmoss/remedy/internal/app"
	"github.com/ebenmoss/remedy/internal/config"
	"github.com/ebenmoss/remedy/internal/domain"
	"github.com/ebenmoss/remedy/internal/platform"
	"github.com/ebenmoss/remedy/internal/seed"
	"github.com/ebenmoss/remedy/internal/tui"
)

// version stores a package-level helper value.
var version = "dev"

// program represents program data used by this package.
type program interface {
	Run() (tea.Model, error)
}

// programFactory stores a package-level helper value.
var programFactory = func(m tea.Model) program {
	return tea.NewProgram(m)
}

// rootOptions carries the flag values shared by the board and paths commands.
type rootOptions struct {
	configPath string
	appName    string
	devMode    bool
}

// main handles main.
func main() {
	if err := fang.Execute(context.Background(), newRootCommand()); err != nil {
		os.Exit(1)
	}
}

// newRootCommand builds the CLI surface.
func newRootCommand() *cobra.Command {
	opts := rootOptions{appName: defaultAppName(), devMode: defaultDevMode()}

	root := &cobra.Command{
		Use:     "remedy",
		Short:   "Terminal board for complaint-sourced remediation tasks",
		Version: version,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBoard(cmd.Context(), opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to config TOML")
	root.PersistentFlags().StringVar(&opts.appName, "app", opts.appName, "application name for config/data path resolution")
	root.PersistentFlags().BoolVar(&opts.devMode, "dev", opts.devMode, "use dev mode paths (<app>-dev)")

	root.AddCommand(newPathsCommand(&opts))
	return root
}

// newPathsCommand prints the resolved runtime paths.
func newPathsCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Show resolved config and data paths",
		RunE: func(cmd *cobra.Command, _ []string) error {
			paths, err := platform.DefaultPathsWithOptions(platform.Options{
				AppName: opts.appName,
				DevMode: opts.devMode,
			})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "app: %s\n", opts.appName)
			_, _ = fmt.Fprintf(out, "dev_mode: %t\n", opts.devMode)
			_, _ = fmt.Fprintf(out, "config: %s\n", resolveConfigPath(opts.configPath, paths))
			_, _ = fmt.Fprintf(out, "data_dir: %s\n", paths.DataDir)
			_, _ = fmt.Fprintf(out, "log: %s\n", paths.LogPath)
			return nil
		},
	}
}

// runBoard runs the requested command flow.
func runBoard(ctx context.Context, opts rootOptions, stdout, stderr io.Writer) error {
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}

	paths, err := platform.DefaultPathsWithOptions(platform.Options{
		AppName: opts.appName,
		DevMode: opts.devMode,
	})
	if err != nil {
		return err
	}
	configPath := resolveConfigPath(opts.configPath, paths)

	cfg, err := config.Load(configPath, config.Default())
	if err != nil {
		return fmt.Errorf("load config %q: %w", configPath, err)
	}

	logger, err := newRuntimeLogger(stderr, opts.appName, opts.devMode, cfg.Logging, paths.LogPath)
	if err != nil {
		return fmt.Errorf("configure runtime logger: %w", err)
	}
	// Keep TUI rendering clean: runtime logs stay in the file sink while
	// the board is active.
	logger.SetConsoleEnabled(false)
	defer func() {
		if closeErr := logger.Close(); closeErr != nil && logger.shouldLogToSink(logger.consoleSink) {
			_, _ = fmt.Fprintf(stderr, "warning: close runtime log sink: %v\n", closeErr)
		}
	}()

	logger.Info("startup configuration resolved", "app", opts.appName, "dev_mode", opts.devMode)
	logger.Debug("runtime paths resolved", "config_path", configPath, "data_dir", paths.DataDir, "log_path", paths.LogPath)
	logger.Info("configuration loaded", "config_path", configPath, "log_level", cfg.Logging.Level)

	repo := memory.Open()
	svc := app.NewService(repo, uuid.NewString, nil)
	logger.Debug("application service initialized")

	if cfg.Board.SeedDemoData {
		if err := seed.Load(ctx, repo, uuid.NewString, time.Now()); err != nil {
			logger.Error("demo board seed failed", "err", err)
			return fmt.Errorf("seed demo board: %w", err)
		}
		logger.Info("demo board seeded")
	}

	roster := domain.DefaultRoster()
	if len(cfg.Owners.Names) > 0 {
		roster, err = domain.NewRoster(cfg.Owners.Names)
		if err != nil {
			return fmt.Errorf("build owner roster: %w", err)
		}
	}

	m := tui.NewModel(
		svc,
		tui.WithCardFieldConfig(toCardFieldConfig(cfg.CardFields)),
		tui.WithConfirmDelete(cfg.Board.ConfirmDelete),
		tui.WithOwners(roster),
		tui.WithKeyOverrides(tui.KeyOverrides{
			AddTask:   cfg.Keys.AddTask,
			Grab:      cfg.Keys.Grab,
			Duplicate: cfg.Keys.Duplicate,
			Delete:    cfg.Keys.Delete,
			Toggle:    cfg.Keys.Toggle,
			Yank:      cfg.Keys.Yank,
		}),
	)
	logger.Info("starting tui program loop")
	if _, err := programFactory(m).Run(); err != nil {
		logger.Error("tui program terminated with error", "err", err)
		return fmt.Errorf("run tui program: %w", err)
	}
	logger.Info("command flow complete", "command", "board")
	return nil
}

// toCardFieldConfig maps persisted config values into model options.
func toCardFieldConfig(cfg config.CardFieldsConfig) tui.CardFieldConfig {
	return tui.CardFieldConfig{
		ShowOwner:      cfg.ShowOwner,
		ShowPriority:   cfg.ShowPriority,
		ShowDueDate:    cfg.ShowDueDate,
		ShowCost:       cfg.ShowCost,
		ShowRatingBump: cfg.ShowRatingBump,
		ShowMentions:   cfg.ShowMentions,
	}
}

// resolveConfigPath picks the config file from flag, env, then defaults.
func resolveConfigPath(flagPath string, paths platform.Paths) string {
	if trimmed := strings.TrimSpace(flagPath); trimmed != "" {
		return trimmed
	}
	if envPath := strings.TrimSpace(os.Getenv("REMEDY_CONFIG")); envPath != "" {
		return envPath
	}
	return paths.ConfigPath
}

// defaultAppName resolves the app name from the environment.
func defaultAppName() string {
	if envApp := strings.TrimSpace(os.Getenv("REMEDY_APP_NAME")); envApp != "" {
		return envApp
	}
	return "remedy"
}

// defaultDevMode resolves dev mode from the build version and environment.
func defaultDevMode() bool {
	if envDev, ok := parseBoolEnv("REMEDY_DEV_MODE"); ok {
		return envDev
	}
	return version == "dev"
}

// parseBoolEnv parses input into a normalized form.
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

// runtimeLogger fans log events to a styled console sink and an optional file sink.
type runtimeLogger struct {
	sinks          []*charmLog.Logger
	consoleSink    *charmLog.Logger
	consoleEnabled bool
	closeFile      func() error
	logPath        string
}

// newRuntimeLogger configures runtime log sinks from CLI/config state.
func newRuntimeLogger(stderr io.Writer, appName string, devMode bool, cfg config.LoggingConfig, fallbackPath string) (*runtimeLogger, error) {
	level, err := charmLog.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parse logging level %q: %w", cfg.Level, err)
	}
	if stderr == nil {
		stderr = io.Discard
	}

	consoleLogger := charmLog.NewWithOptions(stderr, charmLog.Options{
		Level:           level,
		Prefix:          appName,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Formatter:       charmLog.TextFormatter,
	})

	logger := &runtimeLogger{
		sinks:          []*charmLog.Logger{consoleLogger},
		consoleSink:    consoleLogger,
		consoleEnabled: true,
	}
	logPath := strings.TrimSpace(cfg.DevFile)
	if logPath == "" {
		if !devMode {
			return logger, nil
		}
		logPath = fallbackPath
	}
	if logPath == "" {
		return logger, nil
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	// Keep file output parseable and unstyled while preserving styled console logs.
	fileLogger := charmLog.NewWithOptions(logFile, charmLog.Options{
		Level:           level,
		Prefix:          appName,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Formatter:       charmLog.LogfmtFormatter,
	})
	logger.sinks = append(logger.sinks, fileLogger)
	logger.closeFile = logFile.Close
	logger.logPath = logPath
	return logger, nil
}

// LogPath returns the active log file path.
func (l *runtimeLogger) LogPath() string {
	if l == nil {
		return ""
	}
	return l.logPath
}

// Close closes the optional file sink.
func (l *runtimeLogger) Close() error {
	if l == nil || l.closeFile == nil {
		return nil
	}
	return l.closeFile()
}

// SetConsoleEnabled toggles whether the console sink receives runtime events.
func (l *runtimeLogger) SetConsoleEnabled(enabled bool) {
	if l == nil {
		return
	}
	l.consoleEnabled = enabled
}

// shouldLogToSink reports whether one sink should receive runtime output.
func (l *runtimeLogger) shouldLogToSink(sink *charmLog.Logger) bool {
	if l == nil || sink == nil {
		return false
	}
	if sink == l.consoleSink && !l.consoleEnabled {
		return false
	}
	return true
}

// Debug logs a debug event to all configured sinks.
func (l *runtimeLogger) Debug(msg string, keyvals ...any) {
	if l == nil {
		return
	}
	for _, sink := range l.sinks {
		if !l.shouldLogToSink(sink) {
			continue
		}
		sink.Debug(msg, keyvals...)
	}
}

// Info logs an informational event to all configured sinks.
func (l *runtimeLogger) Info(msg string, keyvals ...any) {
	if l == nil {
		return
	}
	for _, sink := range l.sinks {
		if !l.shouldLogToSink(sink) {
			continue
		}
		sink.Info(msg, keyvals...)
	}
}

// Warn logs a warning event to all configured sinks.
func (l *runtimeLogger) Warn(msg string, keyvals ...any) {
	if l == nil {
		return
	}
	for _, sink := range l.sinks {
		if !l.shouldLogToSink(sink) {
			continue
		}
		sink.Warn(msg, keyvals...)
	}
}

// Error logs an error event to all configured sinks.
func (l *runtimeLogger) Error(msg string, keyvals ...any) {
	if l == nil {
		return
	}
	for _, sink := range l.sinks {
		if !l.shouldLogToSink(sink) {
			continue
		}
		sink.Error(msg, keyvals...)
	}
}
