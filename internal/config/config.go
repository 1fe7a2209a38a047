package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Backend BackendConfig `yaml:"backend" mapstructure:"backend"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Display DisplayConfig `yaml:"display" mapstructure:"display"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// BackendConfig locates the scraper backend API.
type BackendConfig struct {
	BaseURL     string `yaml:"base_url" mapstructure:"base_url"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// Timeout returns the per-request timeout; zero means none.
func (b BackendConfig) Timeout() time.Duration {
	return time.Duration(b.TimeoutSecs) * time.Second
}

// ServerConfig configures the web UI server.
type ServerConfig struct {
	Port        int      `yaml:"port" mapstructure:"port"`
	ProxyAPI    bool     `yaml:"proxy_api" mapstructure:"proxy_api"`
	CORSOrigins []string `yaml:"cors_origins" mapstructure:"cors_origins"`
}

// DisplayConfig controls how values are rendered.
type DisplayConfig struct {
	TimeZone string `yaml:"time_zone" mapstructure:"time_zone"`
}

// Location resolves TimeZone, falling back to the local zone.
func (d DisplayConfig) Location() (*time.Location, error) {
	if d.TimeZone == "" || d.TimeZone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(d.TimeZone)
	if err != nil {
		return nil, eris.Wrapf(err, "config: load time zone %q", d.TimeZone)
	}
	return loc, nil
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("SCRAPERUI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("backend.base_url", "http://localhost:8000")
	v.SetDefault("backend.timeout_secs", 0)
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.proxy_api", true)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("display.time_zone", "Local")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the settings required by mode: "client" for commands that
// only talk to the backend, "serve" for the web UI server.
func (c *Config) Validate(mode string) error {
	var problems []string

	switch mode {
	case "client", "serve":
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if strings.TrimSpace(c.Backend.BaseURL) == "" {
		problems = append(problems, "backend.base_url is required")
	}
	if c.Backend.TimeoutSecs < 0 {
		problems = append(problems, "backend.timeout_secs must be >= 0")
	}
	if _, err := c.Display.Location(); err != nil {
		problems = append(problems, "display.time_zone is not a known zone")
	}
	if mode == "serve" && c.Server.Port <= 0 {
		problems = append(problems, "server.port must be > 0")
	}

	if len(problems) > 0 {
		return eris.Errorf("config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
