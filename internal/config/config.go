// Package config loads the runner configuration from defaults, an optional config file,
// an optional .env file and RX_TUTORIAL_* environment variables.
package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of the environment variables read by Load.
const EnvPrefix = "RX_TUTORIAL"

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatCBOR = "cbor"
)

// Config is the runner configuration.
type Config struct {
	Debug     bool          `mapstructure:"debug"`
	Delay     time.Duration `mapstructure:"delay"`
	Timeout   time.Duration `mapstructure:"timeout"`
	Format    string        `mapstructure:"format"`
	Scenarios []string      `mapstructure:"scenarios"`
}

type loaderOptions struct {
	configFile string
	envFile    string
}

// Option customizes Load.
type Option func(*loaderOptions)

// WithConfigFile reads the given YAML, TOML or JSON file. An empty path is ignored.
func WithConfigFile(path string) Option {
	return func(o *loaderOptions) {
		o.configFile = path
	}
}

// WithEnvFile loads the given .env file into the process environment before reading it.
// Variables already set in the environment win. An empty path is ignored.
func WithEnvFile(path string) Option {
	return func(o *loaderOptions) {
		o.envFile = path
	}
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Delay:   100 * time.Millisecond,
		Timeout: 5 * time.Second,
		Format:  FormatText,
	}
}

// Load builds a Config. Later sources override earlier ones: defaults, config file, environment.
func Load(opts ...Option) (*Config, error) {
	o := &loaderOptions{}
	for _, it := range opts {
		it(o)
	}

	if o.envFile != "" {
		if err := godotenv.Load(o.envFile); err != nil {
			return nil, errors.Wrapf(err, "config: load env file %s", o.envFile)
		}
	}

	v := viper.New()
	dft := Default()
	v.SetDefault("debug", dft.Debug)
	v.SetDefault("delay", dft.Delay)
	v.SetDefault("timeout", dft.Timeout)
	v.SetDefault("format", dft.Format)
	v.SetDefault("scenarios", []string{})

	if o.configFile != "" {
		v.SetConfigFile(o.configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "config: read %s", o.configFile)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		return nil, errors.Wrap(err, "config: decode")
	}
	c.Format = strings.ToLower(strings.TrimSpace(c.Format))
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the value ranges.
func (c *Config) Validate() error {
	switch c.Format {
	case FormatText, FormatJSON, FormatCBOR:
	default:
		return errors.Errorf("config: unsupported format %q", c.Format)
	}
	if c.Timeout <= 0 {
		return errors.Errorf("config: timeout must be positive, got %s", c.Timeout)
	}
	if c.Delay <= 0 {
		return errors.Errorf("config: delay must be positive, got %s", c.Delay)
	}
	return nil
}
