package config

import (
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. OPTRACK_ADDR.
const EnvPrefix = "optrack"

// Keys understood in the config file and environment.
const (
	KeyAddr        = "addr"
	KeyLogLevel    = "log_level"
	KeyLogFormat   = "log_format"
	KeySeedFile    = "seed_file"
	KeyJobInterval = "job_interval"
	KeyDemo        = "demo"
)

// DemoInterval is the job interval used by demo mode.
const DemoInterval = 30 * time.Second

// ServerConfig holds configuration for the optrack server.
type ServerConfig struct {
	Addr        string        `mapstructure:"addr"         validate:"required"`                        // Listen address (default ":8080")
	LogLevel    string        `mapstructure:"log_level"    validate:"oneof=debug info warn warning error"` // Log level: debug, info, warn, error
	LogFormat   string        `mapstructure:"log_format"   validate:"oneof=text json"`                 // Log format: text, json
	SeedFile    string        `mapstructure:"seed_file"`                                               // Optional YAML replacing the embedded live submissions
	JobInterval time.Duration `mapstructure:"job_interval" validate:"gt=0"`                            // Background job period (default 24h)
	Demo        bool          `mapstructure:"demo"`                                                    // Run background jobs every 30s
}

// DefaultServerConfig returns sensible defaults.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:        ":8080",
		LogLevel:    "info",
		LogFormat:   "text",
		JobInterval: 24 * time.Hour,
	}
}

// Interval returns the effective background job period.
func (c ServerConfig) Interval() time.Duration {
	if c.Demo {
		return DemoInterval
	}
	return c.JobInterval
}

// Load overlays the defaults with a YAML config file and OPTRACK_* environment
// variables, environment taking precedence. An empty path searches for
// optrack.yaml in the working directory and /etc/optrack; a missing file is
// not an error unless path names it explicitly. The result is not validated
// so command-line flags can still replace bad values; call Validate once
// every source is merged.
func Load(path string) (ServerConfig, error) {
	def := DefaultServerConfig()
	v := viper.New()

	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("optrack")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/optrack/")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyAddr, def.Addr)
	v.SetDefault(KeyLogLevel, def.LogLevel)
	v.SetDefault(KeyLogFormat, def.LogFormat)
	v.SetDefault(KeySeedFile, def.SeedFile)
	v.SetDefault(KeyJobInterval, def.JobInterval)
	v.SetDefault(KeyDemo, def.Demo)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return ServerConfig{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg ServerConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return ServerConfig{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg.normalized(), nil
}

// ApplyFlags copies every flag explicitly set on fs over c. Flags are matched
// by name: addr, log-level, log-format, seed, job-interval, demo and debug,
// the last forcing the debug log level.
func (c ServerConfig) ApplyFlags(fs *flag.FlagSet) (ServerConfig, error) {
	var err error
	fs.Visit(func(f *flag.Flag) {
		if err != nil {
			return
		}
		val := f.Value.String()
		switch f.Name {
		case "addr":
			c.Addr = val
		case "log-level":
			c.LogLevel = val
		case "log-format":
			c.LogFormat = val
		case "seed":
			c.SeedFile = val
		case "job-interval":
			c.JobInterval, err = time.ParseDuration(val)
		case "demo":
			c.Demo = val == "true"
		}
	})
	if err != nil {
		return ServerConfig{}, fmt.Errorf("apply flags: %w", err)
	}
	if f := fs.Lookup("debug"); f != nil && f.Value.String() == "true" {
		c.LogLevel = "debug"
	}
	return c.normalized(), nil
}

func (c ServerConfig) normalized() ServerConfig {
	c.LogLevel = strings.ToLower(c.LogLevel)
	c.LogFormat = strings.ToLower(c.LogFormat)
	return c
}

// Validate checks the field constraints.
func (c ServerConfig) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
