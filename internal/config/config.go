// Package config loads the website configuration with Viper from a YAML
// file, MONEBOT_ environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is the environment variable prefix, e.g. MONEBOT_SERVER_PORT.
const EnvPrefix = "MONEBOT"

// DefaultFile is the config file looked up in the working directory.
const DefaultFile = ".monebot.yml"

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	Server   ServerConfig   `mapstructure:"server" yaml:"server"`
	Site     SiteConfig     `mapstructure:"site" yaml:"site"`
	Stats    StatsConfig    `mapstructure:"stats" yaml:"stats"`
	UI       UIConfig       `mapstructure:"ui" yaml:"ui"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`
	API      APIConfig      `mapstructure:"api" yaml:"api"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host" yaml:"host"`
	Port            int           `mapstructure:"port" yaml:"port"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins" yaml:"allowed_origins"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	MaxSessions     int           `mapstructure:"max_sessions" yaml:"max_sessions"`
}

// Addr returns host:port for net/http.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

type SiteConfig struct {
	BaseURL      string `mapstructure:"base_url" yaml:"base_url"`
	DashboardURL string `mapstructure:"dashboard_url" yaml:"dashboard_url"`
	InviteURL    string `mapstructure:"invite_url" yaml:"invite_url"`
}

type StatsConfig struct {
	// Endpoint is the statistics URL. A path is resolved against the
	// server's own address.
	Endpoint    string        `mapstructure:"endpoint" yaml:"endpoint"`
	Timeout     time.Duration `mapstructure:"timeout" yaml:"timeout"`
	ServerCount string        `mapstructure:"server_count" yaml:"server_count"`
	MemberCount string        `mapstructure:"member_count" yaml:"member_count"`
}

type UIConfig struct {
	CopyReset time.Duration `mapstructure:"copy_reset" yaml:"copy_reset"`
}

type LogConfig struct {
	Level   string `mapstructure:"level" yaml:"level"`
	Format  string `mapstructure:"format" yaml:"format"`
	Backend string `mapstructure:"backend" yaml:"backend"`
}

type DatabaseConfig struct {
	URL string `mapstructure:"url" yaml:"url"`
}

type APIConfig struct {
	Rate  float64 `mapstructure:"rate" yaml:"rate"`
	Burst int     `mapstructure:"burst" yaml:"burst"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{})
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.max_sessions", 10000)

	v.SetDefault("site.base_url", "https://monebot.com")
	v.SetDefault("site.dashboard_url", "https://monebot.com/dashboard")
	v.SetDefault("site.invite_url", "https://discord.com/oauth2/authorize")

	v.SetDefault("stats.endpoint", "/api/discord-stats")
	v.SetDefault("stats.timeout", 5*time.Second)
	v.SetDefault("stats.server_count", "125K+")
	v.SetDefault("stats.member_count", "15M+")

	v.SetDefault("ui.copy_reset", 2*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.backend", "slog")

	v.SetDefault("database.url", "")

	v.SetDefault("api.rate", 10.0)
	v.SetDefault("api.burst", 20)
}

// New returns a Viper instance with defaults and environment binding.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load unmarshals and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// Env and flag values for slices arrive as one comma-separated string.
	cfg.Server.AllowedOrigins = splitList(cfg.Server.AllowedOrigins)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func splitList(in []string) []string {
	var out []string
	for _, s := range in {
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Validate checks configuration values for correctness.
func Validate(cfg *Config) error {
	if cfg.Server.Port < 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("%w: server.port %d out of range", ErrInvalid, cfg.Server.Port)
	}
	if cfg.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("%w: server.shutdown_timeout must be positive", ErrInvalid)
	}
	if cfg.Server.MaxSessions < 0 {
		return fmt.Errorf("%w: server.max_sessions must not be negative", ErrInvalid)
	}

	for _, origin := range cfg.Server.AllowedOrigins {
		if origin == "*" {
			continue
		}
		if err := validateAbsoluteURL(origin); err != nil {
			return fmt.Errorf("%w: server.allowed_origins: %v", ErrInvalid, err)
		}
	}

	if err := validateAbsoluteURL(cfg.Site.BaseURL); err != nil {
		return fmt.Errorf("%w: site.base_url: %v", ErrInvalid, err)
	}
	if err := validateAbsoluteURL(cfg.Site.DashboardURL); err != nil {
		return fmt.Errorf("%w: site.dashboard_url: %v", ErrInvalid, err)
	}

	if cfg.Stats.Endpoint == "" {
		return fmt.Errorf("%w: stats.endpoint is required", ErrInvalid)
	}
	if !isAbsoluteEndpoint(cfg.Stats.Endpoint) && cfg.Server.Port == 0 {
		return fmt.Errorf("%w: stats.endpoint %q is a path, so server.port must be set", ErrInvalid, cfg.Stats.Endpoint)
	}
	if cfg.Stats.Timeout <= 0 {
		return fmt.Errorf("%w: stats.timeout must be positive", ErrInvalid)
	}
	if cfg.UI.CopyReset <= 0 {
		return fmt.Errorf("%w: ui.copy_reset must be positive", ErrInvalid)
	}

	switch strings.ToLower(cfg.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log.format %q (want text or json)", ErrInvalid, cfg.Log.Format)
	}
	switch strings.ToLower(cfg.Log.Backend) {
	case "slog", "zap":
	default:
		return fmt.Errorf("%w: log.backend %q (want slog or zap)", ErrInvalid, cfg.Log.Backend)
	}

	if cfg.API.Rate <= 0 || cfg.API.Burst <= 0 {
		return fmt.Errorf("%w: api.rate and api.burst must be positive", ErrInvalid)
	}
	return nil
}

func validateAbsoluteURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%q must use http or https", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%q has no host", raw)
	}
	return nil
}

// StatsURL resolves the stats endpoint against the local listen address
// when it is a bare path.
func (c *Config) StatsURL() string {
	if isAbsoluteEndpoint(c.Stats.Endpoint) {
		return c.Stats.Endpoint
	}
	host := c.Server.Host
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "127.0.0.1"
	}
	u := url.URL{
		Scheme: "http",
		Host:   net.JoinHostPort(host, strconv.Itoa(c.Server.Port)),
	}
	return u.String() + c.Stats.Endpoint
}

func isAbsoluteEndpoint(endpoint string) bool {
	return strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://")
}
