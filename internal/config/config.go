package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Geocode GeocodeConfig `yaml:"geocode" mapstructure:"geocode"`
	Output  OutputConfig  `yaml:"output" mapstructure:"output"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// GeocodeConfig configures address lookups.
type GeocodeConfig struct {
	Provider     string  `yaml:"provider" mapstructure:"provider"` // nominatim, google, fixture
	Country      string  `yaml:"country" mapstructure:"country"`
	TimeoutSecs  int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	RateLimit    float64 `yaml:"rate_limit" mapstructure:"rate_limit"`
	NominatimURL string  `yaml:"nominatim_url" mapstructure:"nominatim_url"`
	UserAgent    string  `yaml:"user_agent" mapstructure:"user_agent"`
	GoogleKey    string  `yaml:"google_key" mapstructure:"google_key"`
	FixturesPath string  `yaml:"fixtures_path" mapstructure:"fixtures_path"`
}

// OutputConfig configures what is written besides the enriched rows.
type OutputConfig struct {
	Progress    bool   `yaml:"progress" mapstructure:"progress"`
	RejectsPath string `yaml:"rejects_path" mapstructure:"rejects_path"`
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
	v.SetEnvPrefix("CLIENTINFO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("geocode.provider", "nominatim")
	v.SetDefault("geocode.country", "AU")
	v.SetDefault("geocode.timeout_secs", 30)
	v.SetDefault("geocode.rate_limit", 1.0)
	v.SetDefault("geocode.nominatim_url", "https://nominatim.openstreetmap.org/search")
	v.SetDefault("geocode.user_agent", "client-info-cli")
	v.SetDefault("geocode.google_key", "")
	v.SetDefault("geocode.fixtures_path", "")
	v.SetDefault("output.progress", true)
	v.SetDefault("output.rejects_path", "")

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

// Validate checks values that would otherwise fail deep inside a run.
func (c *Config) Validate() error {
	switch c.Geocode.Provider {
	case "nominatim":
	case "google":
		if c.Geocode.GoogleKey == "" {
			return eris.New("config: geocode.google_key is required for the google provider")
		}
	case "fixture":
		if c.Geocode.FixturesPath == "" {
			return eris.New("config: geocode.fixtures_path is required for the fixture provider")
		}
	default:
		return eris.Errorf("config: unknown geocode provider %q", c.Geocode.Provider)
	}
	if c.Geocode.TimeoutSecs < 0 {
		return eris.Errorf("config: geocode.timeout_secs must not be negative, got %d", c.Geocode.TimeoutSecs)
	}
	return nil
}

// InitLogger initializes the global zap logger. Output goes to stderr so stdout
// carries only enriched rows.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}
	zapCfg.OutputPaths = []string{"stderr"}
	zapCfg.ErrorOutputPaths = []string{"stderr"}

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
