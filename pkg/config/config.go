package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config aggregates the campaign dashboard settings. Fields are populated from
// environment variables prefixed with CAMPAIGN_.
type Config struct {
	HTTP      HTTP      `envPrefix:"HTTP_"`
	API       API       `envPrefix:"API_"`
	Log       Logger    `envPrefix:"LOG_"`
	Metrics   Metrics   `envPrefix:"METRICS_"`
	Dashboard Dashboard `envPrefix:"DASHBOARD_"`
}

// HTTP configures the dashboard server.
type HTTP struct {
	Port     uint16 `env:"PORT" envDefault:"8080"`
	BasePath string `env:"BASE_PATH" envDefault:"/"`
}

// Addr returns the listen address.
func (h HTTP) Addr() string {
	return fmt.Sprintf(":%d", h.Port)
}

// API configures the upstream campaign API. An empty BaseURL selects the
// in-memory mock backend.
type API struct {
	BaseURL string        `env:"BASE_URL"`
	Key     string        `env:"KEY"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"10s"`
}

// Logger defines level and encoding of the zap logger.
type Logger struct {
	Level  string `env:"LEVEL" envDefault:"info"`
	Format string `env:"FORMAT" envDefault:"json"`
}

// Metrics configures the prometheus endpoint. An empty Addr disables it.
type Metrics struct {
	Addr string `env:"ADDR" envDefault:":9090"`
}

// Dashboard holds UI behavior switches.
type Dashboard struct {
	FreeReorder  bool          `env:"FREE_REORDER" envDefault:"false"`
	ChartTTL     time.Duration `env:"CHART_TTL" envDefault:"5m"`
	LayoutFile   string        `env:"LAYOUT_FILE"`
	ChartsAssets string        `env:"CHARTS_ASSETS_HOST"`
}

// Load reads configuration from the environment.
func Load() (Config, error) {
	return LoadWithEnv(nil)
}

// LoadWithEnv reads configuration from the provided variables instead of the
// process environment when vars is non-nil.
func LoadWithEnv(vars map[string]string) (Config, error) {
	var cfg Config
	opts := env.Options{Prefix: "CAMPAIGN_"}
	if vars != nil {
		opts.Environment = vars
	}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// ZapLevel converts the textual level. Unknown levels default to info.
func (c Logger) ZapLevel() zapcore.Level {
	switch strings.ToLower(c.Level) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error", "err":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Build creates a zap logger for the configured level and format ("json" or
// "console").
func (c Logger) Build() (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if strings.EqualFold(c.Format, "console") || strings.EqualFold(c.Format, "text") {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(c.ZapLevel())
	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("config: build logger: %w", err)
	}
	return logger, nil
}
