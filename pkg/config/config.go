package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server struct {
		Listen    string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
		Timeout   time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
		PageTitle string        `yaml:"page_title" json:"page_title" jsonschema:"default=Signboard,description=Title shown on display pages"`
	} `yaml:"server" json:"server" jsonschema:"description=Server configuration"`

	Database struct {
		DSN string `yaml:"dsn" json:"dsn" jsonschema:"default=file:signboard.db?cache=shared&mode=rwc,description=Cache database connection string"`
	} `yaml:"database" json:"database" jsonschema:"description=Cache database configuration"`

	Schedule struct {
		UpdateInterval  time.Duration `yaml:"update_interval" json:"update_interval" jsonschema:"default=5m,description=Default feed poll interval"`
		CleanupInterval time.Duration `yaml:"cleanup_interval" json:"cleanup_interval" jsonschema:"default=1h,description=How often to purge expired cache entries"`
	} `yaml:"schedule" json:"schedule" jsonschema:"description=Scheduler configuration"`

	Weather WeatherConfig `yaml:"weather" json:"weather" jsonschema:"description=Weather panel configuration"`

	Feeds []Feed `yaml:"feeds" json:"feeds" jsonschema:"description=Calendar feeds to poll and display"`
}

// Feed describes a single calendar source to poll and display.
type Feed struct {
	Name           string        `yaml:"name" json:"name" jsonschema:"description=Unique feed name (defaults to the URL)"`
	URL            string        `yaml:"url" json:"url" jsonschema:"required,description=RSS channel URL"`
	Title          string        `yaml:"title" json:"title" jsonschema:"description=Display title (defaults to the channel title)"`
	Variant        string        `yaml:"variant" json:"variant" jsonschema:"default=calendar,enum=calendar,enum=meetings,description=Entry parsing variant"`
	UpdateInterval time.Duration `yaml:"update_interval" json:"update_interval" jsonschema:"description=Poll interval override for this feed"`
	MaxItems       int           `yaml:"max_items" json:"max_items" jsonschema:"default=10,minimum=0,description=Maximum items shown on the display"`
	Locations      []string      `yaml:"locations" json:"locations" jsonschema:"description=Keep only meetings at these street addresses"`
}

// WeatherConfig holds OpenWeatherMap panel settings.
type WeatherConfig struct {
	Enabled          bool          `yaml:"enabled" json:"enabled" jsonschema:"default=false,description=Enable the weather panel"`
	APIKey           string        `yaml:"api_key" json:"api_key" jsonschema:"description=OpenWeatherMap API key (can use environment variable)"`
	Zip              string        `yaml:"zip" json:"zip" jsonschema:"description=ZIP or postal code"`
	Country          string        `yaml:"country" json:"country" jsonschema:"default=US,description=ISO 3166 country code"`
	Units            string        `yaml:"units" json:"units" jsonschema:"default=imperial,enum=standard,enum=metric,enum=imperial,description=Measurement units"`
	UpdateInterval   time.Duration `yaml:"update_interval" json:"update_interval" jsonschema:"default=15m,description=Current conditions refresh interval"`
	ForecastInterval time.Duration `yaml:"forecast_interval" json:"forecast_interval" jsonschema:"default=1h,description=Forecast refresh interval"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// set defaults for server
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = 30 * time.Second
	}
	if cfg.Server.PageTitle == "" {
		cfg.Server.PageTitle = "Signboard"
	}

	// set defaults for database
	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "file:signboard.db?cache=shared&mode=rwc&_txlock=immediate"
	}

	// set defaults for schedule
	if cfg.Schedule.UpdateInterval == 0 {
		cfg.Schedule.UpdateInterval = 5 * time.Minute
	}
	if cfg.Schedule.CleanupInterval == 0 {
		cfg.Schedule.CleanupInterval = time.Hour
	}

	// set defaults for weather
	if cfg.Weather.Country == "" {
		cfg.Weather.Country = "US"
	}
	if cfg.Weather.Units == "" {
		cfg.Weather.Units = "imperial"
	}
	if cfg.Weather.UpdateInterval == 0 {
		cfg.Weather.UpdateInterval = 15 * time.Minute
	}
	if cfg.Weather.ForecastInterval == 0 {
		cfg.Weather.ForecastInterval = time.Hour
	}

	// set defaults for feeds
	for i := range cfg.Feeds {
		if cfg.Feeds[i].Name == "" {
			cfg.Feeds[i].Name = cfg.Feeds[i].URL
		}
		if cfg.Feeds[i].UpdateInterval == 0 {
			cfg.Feeds[i].UpdateInterval = cfg.Schedule.UpdateInterval
		}
		if cfg.Feeds[i].MaxItems == 0 {
			cfg.Feeds[i].MaxItems = 10
		}
	}

	// validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// schema validation is supplementary, warn but don't fail
		log.Printf("[WARN] schema validation failed: %v", err)
	}

	return &cfg, nil
}

// validate checks configuration for correctness
func validate(cfg *Config) error {

	// validate server config
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}

	// validate feeds
	if len(cfg.Feeds) == 0 {
		return fmt.Errorf("at least one feed is required")
	}
	seen := make(map[string]bool, len(cfg.Feeds))
	for i, f := range cfg.Feeds {
		if f.URL == "" {
			return fmt.Errorf("feeds[%d].url is required", i)
		}
		if seen[f.Name] {
			return fmt.Errorf("duplicate feed name %q", f.Name)
		}
		seen[f.Name] = true
		if f.UpdateInterval < time.Minute {
			return fmt.Errorf("feed %q update interval must be at least 1 minute", f.Name)
		}
		if f.MaxItems < 0 {
			return fmt.Errorf("feed %q max_items must be non-negative", f.Name)
		}
	}

	// validate weather config
	if cfg.Weather.Enabled {
		if cfg.Weather.APIKey == "" {
			return fmt.Errorf("weather.api_key is required when weather is enabled")
		}
		if cfg.Weather.Zip == "" {
			return fmt.Errorf("weather.zip is required when weather is enabled")
		}
		switch cfg.Weather.Units {
		case "standard", "metric", "imperial":
		default:
			return fmt.Errorf("weather.units must be one of standard, metric or imperial")
		}
	}

	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GetPageTitle returns the configured display page title
func (c *Config) GetPageTitle() string {
	return c.Server.PageTitle
}

// GetFeeds returns the configured calendar feeds
func (c *Config) GetFeeds() []Feed {
	return c.Feeds
}

// GetWeatherConfig returns weather panel configuration
func (c *Config) GetWeatherConfig() WeatherConfig {
	return c.Weather
}
