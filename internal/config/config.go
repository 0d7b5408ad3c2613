package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Calendar backends
const (
	CalendarFeiertage = "feiertage" // feiertage-api.de with offline fallback
	CalendarGerman    = "german"    // computed offline
	CalendarFile      = "file"      // local holiday list
)

// Config represents application configuration
type Config struct {
	Calendar CalendarConfig `mapstructure:"calendar"`
	Log      LogConfig      `mapstructure:"log"`
	Report   ReportConfig   `mapstructure:"report"`
}

// CalendarConfig represents holiday calendar configuration
type CalendarConfig struct {
	Type         string `mapstructure:"type"`
	APIURL       string `mapstructure:"api_url"`
	State        string `mapstructure:"state"` // two-letter code, e.g. BW; only the german type accepts empty (federal holidays)
	FallbackFile string `mapstructure:"fallback_file"`
	CacheTTL     string `mapstructure:"cache_ttl"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// ReportConfig represents output configuration
type ReportConfig struct {
	Language string `mapstructure:"language"`
	Format   string `mapstructure:"format"` // "text" or "json"
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("calendar.type", CalendarFeiertage)
	v.SetDefault("calendar.api_url", "https://feiertage-api.de/api/")
	v.SetDefault("calendar.state", "BW")
	v.SetDefault("calendar.fallback_file", "")
	v.SetDefault("calendar.cache_ttl", "24h")
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("report.language", "de")
	v.SetDefault("report.format", "text")
}

// Load loads configuration from file.
// Without an explicit path a missing config file is not an error; defaults apply.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.timesheet-checker")
		v.AddConfigPath("/etc/timesheet-checker")
	}

	// TIMESHEET_CALENDAR_STATE overrides calendar.state
	v.SetEnvPrefix("timesheet")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	config.ExpandEnvVars()

	// Validate config
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Calendar.Type {
	case CalendarFeiertage:
		if c.Calendar.APIURL == "" {
			return fmt.Errorf("calendar.api_url is required for feiertage type")
		}
		if c.Calendar.State == "" {
			return fmt.Errorf("calendar.state is required for feiertage type")
		}
	case CalendarGerman:
	case CalendarFile:
		if c.Calendar.FallbackFile == "" {
			return fmt.Errorf("calendar.fallback_file is required for file type")
		}
	default:
		return fmt.Errorf("calendar.type must be '%s', '%s' or '%s', got '%s'",
			CalendarFeiertage, CalendarGerman, CalendarFile, c.Calendar.Type)
	}

	if c.Calendar.CacheTTL != "" {
		ttl, err := time.ParseDuration(c.Calendar.CacheTTL)
		if err != nil {
			return fmt.Errorf("calendar.cache_ttl: %w", err)
		}
		if ttl <= 0 {
			return fmt.Errorf("calendar.cache_ttl must be positive")
		}
	}

	switch strings.ToLower(c.Report.Language) {
	case "de", "en":
	default:
		return fmt.Errorf("report.language must be 'de' or 'en', got '%s'", c.Report.Language)
	}

	switch c.Report.Format {
	case "text", "json":
	default:
		return fmt.Errorf("report.format must be 'text' or 'json', got '%s'", c.Report.Format)
	}

	return nil
}

// GetCacheTTL returns cache TTL duration
func (c *CalendarConfig) GetCacheTTL() time.Duration {
	if c.CacheTTL == "" {
		return 24 * time.Hour
	}
	duration, err := time.ParseDuration(c.CacheTTL)
	if err != nil {
		return 24 * time.Hour
	}
	return duration
}

// ExpandEnvVars expands environment variables in config paths
func (c *Config) ExpandEnvVars() {
	c.Calendar.FallbackFile = os.ExpandEnv(c.Calendar.FallbackFile)
	c.Log.File = os.ExpandEnv(c.Log.File)
}
