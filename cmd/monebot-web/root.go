package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/monebot/website/internal/config"
	"github.com/monebot/website/pkg/logging"
)

// app carries state shared by the subcommands.
type app struct {
	v        *viper.Viper
	cfgFile  string
	level    *slog.LevelVar
	zapLevel zap.AtomicLevel
	stderr   io.Writer
}

func newApp() *app {
	return &app{
		v:        config.New(),
		level:    new(slog.LevelVar),
		zapLevel: zap.NewAtomicLevel(),
		stderr:   os.Stderr,
	}
}

func newRootCmd() *cobra.Command {
	a := newApp()

	root := &cobra.Command{
		Use:   "monebot-web",
		Short: "MoneBot marketing and documentation website",
		Long: `monebot-web serves the MoneBot website: the landing page, the API and
webhook documentation and the dashboard redirect.

Configuration is read from .monebot.yml (or --config, or MONEBOT_CONFIG_FILE)
and overridden by MONEBOT_<SECTION>_<KEY> environment variables and flags.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.readConfig()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default is .monebot.yml, can also use MONEBOT_CONFIG_FILE)")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.String("log-format", "text", "log format (text, json)")
	bindFlags(a.v, pf, map[string]string{
		"log-level":  "log.level",
		"log-format": "log.format",
	})

	root.AddCommand(newServeCmd(a), newConfigCmd(a), newVersionCmd())
	return root
}

// bindFlags binds each named flag to its configuration key.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet, keys map[string]string) {
	fs.VisitAll(func(f *pflag.Flag) {
		if key, ok := keys[f.Name]; ok {
			_ = v.BindPFlag(key, f)
		}
	})
}

// readConfig loads the config file: --config first, then MONEBOT_CONFIG_FILE,
// then .monebot.yml in the working directory. A missing default file is not
// an error.
func (a *app) readConfig() error {
	explicit := true
	switch {
	case a.cfgFile != "":
		a.v.SetConfigFile(a.cfgFile)
	case os.Getenv(config.EnvPrefix+"_CONFIG_FILE") != "":
		a.v.SetConfigFile(os.Getenv(config.EnvPrefix + "_CONFIG_FILE"))
	default:
		explicit = false
		a.v.AddConfigPath(".")
		a.v.SetConfigType("yaml")
		a.v.SetConfigName(strings.TrimSuffix(config.DefaultFile, ".yml"))
	}

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !explicit && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// newLogger builds the configured backend. The returned func flushes it.
func (a *app) newLogger(cfg config.LogConfig) (logging.Logger, func(), error) {
	a.applyLevel(cfg.Level)

	if strings.EqualFold(cfg.Backend, "zap") {
		zl, err := logging.NewZapLogger(a.zapLevel)
		if err != nil {
			return nil, nil, fmt.Errorf("build zap logger: %w", err)
		}
		return zl, func() { _ = zl.Sync() }, nil
	}

	opts := []logging.LoggerOption{logging.WithLevel(a.level), logging.WithOutput(a.stderr)}
	if strings.EqualFold(cfg.Format, "json") {
		opts = append(opts, logging.WithJSON())
	}
	return logging.NewSlogLogger(opts...), func() {}, nil
}

// applyLevel sets both backends' levels from a level name.
func (a *app) applyLevel(name string) {
	level := logging.ParseLevel(name)
	a.level.Set(level)
	a.zapLevel.SetLevel(zapLevelFor(level))
}

func zapLevelFor(level slog.Level) zapcore.Level {
	switch {
	case level <= slog.LevelDebug:
		return zapcore.DebugLevel
	case level <= slog.LevelInfo:
		return zapcore.InfoLevel
	case level <= slog.LevelWarn:
		return zapcore.WarnLevel
	default:
		return zapcore.ErrorLevel
	}
}

// watchConfig re-applies the log level when the config file changes. Other
// settings take effect on restart.
func (a *app) watchConfig(logger logging.Logger) {
	if a.v.ConfigFileUsed() == "" {
		return
	}
	a.v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		level := a.v.GetString("log.level")
		a.applyLevel(level)
		logger.Info("config reloaded",
			logging.String("file", e.Name),
			logging.String("log_level", level),
		)
	})
	a.v.WatchConfig()
}
