package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/monebot/website/internal/config"
	"github.com/monebot/website/pkg/logging"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "site.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "monebot-web dev")
}

func TestConfig_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	out, err := run(t, "config")
	require.NoError(t, err)

	var cfg config.Config
	require.NoError(t, yaml.Unmarshal([]byte(out), &cfg))
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "https://monebot.com/dashboard", cfg.Site.DashboardURL)
	assert.Equal(t, "125K+", cfg.Stats.ServerCount)
}

func TestConfig_FileAndFlags(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9090\nsite:\n  dashboard_url: https://example.com/panel\nlog:\n  level: debug\n")

	out, err := run(t, "config", "--config", path, "--log-level", "warn")
	require.NoError(t, err)
	assert.Contains(t, out, "# "+path)
	assert.Contains(t, out, "port: 9090")
	assert.Contains(t, out, "dashboard_url: https://example.com/panel")
	assert.Contains(t, out, "level: warn")
}

func TestConfig_EnvOverride(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("MONEBOT_SERVER_PORT", "7070")
	out, err := run(t, "config")
	require.NoError(t, err)
	assert.Contains(t, out, "port: 7070")
}

func TestConfig_MissingExplicitFile(t *testing.T) {
	_, err := run(t, "config", "--config", filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}

func TestConfig_Invalid(t *testing.T) {
	path := writeConfig(t, "log:\n  format: xml\n")
	_, err := run(t, "config", "--config", path)
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestApplyLevel(t *testing.T) {
	a := newApp()
	a.applyLevel("debug")
	assert.Equal(t, slog.LevelDebug, a.level.Level())
	assert.Equal(t, zapcore.DebugLevel, a.zapLevel.Level())

	a.applyLevel("error")
	assert.Equal(t, slog.LevelError, a.level.Level())
	assert.Equal(t, zapcore.ErrorLevel, a.zapLevel.Level())
}

func TestNewLogger_SlogJSON(t *testing.T) {
	a := newApp()
	var buf bytes.Buffer
	a.stderr = &buf

	logger, flush, err := a.newLogger(config.LogConfig{Level: "info", Format: "json", Backend: "slog"})
	require.NoError(t, err)
	defer flush()

	logger.Debug("hidden")
	logger.Info("shown", logging.String("page", "home"))
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"page":"home"`)

	a.applyLevel("debug")
	logger.Debug("now visible")
	assert.Contains(t, buf.String(), "now visible")
}

func TestNewLogger_Zap(t *testing.T) {
	a := newApp()
	logger, flush, err := a.newLogger(config.LogConfig{Level: "warn", Format: "json", Backend: "zap"})
	require.NoError(t, err)
	defer flush()
	assert.IsType(t, &logging.ZapLogger{}, logger)
	assert.Equal(t, zapcore.WarnLevel, a.zapLevel.Level())
}
