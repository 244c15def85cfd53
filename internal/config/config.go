package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/sartorproj/goframe/frame"
	"github.com/sartorproj/goframe/quantile"
	"github.com/sartorproj/goframe/stats"
)

// Global configuration structure.
type Global struct {
	IndexColumn    string `mapstructure:"index_column" yaml:"index_column"`
	TimeFormat     string `mapstructure:"time_format" yaml:"time_format"`
	Delimiter      string `mapstructure:"delimiter" yaml:"delimiter"`
	QuantileMethod string `mapstructure:"quantile_method" yaml:"quantile_method"`
	NaNPolicy      string `mapstructure:"nan_policy" yaml:"nan_policy"`
	OutputFormat   string `mapstructure:"output_format" yaml:"output_format"`
	// Digits after the decimal point in output; negative keeps full precision.
	FloatPrecision int `mapstructure:"float_precision" yaml:"float_precision"`
}

// MaxFloatPrecision is the largest accepted float_precision.
const MaxFloatPrecision = 15

// Keys lists the configuration keys in display order.
var Keys = []string{"index_column", "time_format", "delimiter", "quantile_method", "nan_policy", "output_format", "float_precision"}

func defaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".goframe", "config.yaml"), nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("GOFRAME")
	v.AutomaticEnv()

	v.SetDefault("index_column", "")
	v.SetDefault("time_format", "2006-01-02T15:04:05Z07:00")
	v.SetDefault("delimiter", ",")
	v.SetDefault("quantile_method", "linear")
	v.SetDefault("nan_policy", "recoverable")
	v.SetDefault("output_format", "yaml")
	v.SetDefault("float_precision", -1)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		path, err := defaultPath()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(filepath.Dir(path))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// optional read
		_ = v.ReadInConfig()
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.goframe/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		p, err := defaultPath()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = p
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Validate checks that every enumerated setting holds a known value.
func (c *Global) Validate() error {
	if _, err := c.Method(); err != nil {
		return err
	}
	if _, err := c.Policy(); err != nil {
		return err
	}
	if _, err := c.DelimiterRune(); err != nil {
		return err
	}
	switch c.OutputFormat {
	case "yaml", "csv":
	default:
		return fmt.Errorf("invalid output_format: %s (use yaml or csv)", c.OutputFormat)
	}
	if c.FloatPrecision > MaxFloatPrecision {
		return fmt.Errorf("invalid float_precision: %d (at most %d, negative for full precision)", c.FloatPrecision, MaxFloatPrecision)
	}
	return nil
}

// Set assigns key from its string form.
func (c *Global) Set(key, val string) error {
	switch key {
	case "index_column":
		c.IndexColumn = val
	case "time_format":
		c.TimeFormat = val
	case "delimiter":
		c.Delimiter = val
	case "quantile_method":
		c.QuantileMethod = strings.ToLower(val)
	case "nan_policy":
		c.NaNPolicy = strings.ToLower(val)
	case "output_format":
		c.OutputFormat = strings.ToLower(val)
	case "float_precision":
		p, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid int for float_precision: %v", val)
		}
		c.FloatPrecision = p
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return c.Validate()
}

// Method returns the configured quantile method.
func (c *Global) Method() (quantile.Method, error) {
	return quantile.ParseMethod(c.QuantileMethod)
}

// Policy returns the configured NaN policy.
func (c *Global) Policy() (stats.NaNPolicy, error) {
	return stats.ParsePolicy(c.NaNPolicy)
}

// DelimiterRune returns the CSV delimiter, which must be a single character.
func (c *Global) DelimiterRune() (rune, error) {
	if c.Delimiter == `\t` {
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(c.Delimiter)
	if c.Delimiter == "" || size != len(c.Delimiter) || r == utf8.RuneError {
		return 0, fmt.Errorf("invalid delimiter: %q (use a single character)", c.Delimiter)
	}
	return r, nil
}

// CSVOptions returns the CSV loading options for this configuration.
func (c *Global) CSVOptions() *frame.CSVOptions {
	opts := frame.DefaultCSVOptions()
	opts.IndexColumn = c.IndexColumn
	if c.TimeFormat != "" {
		opts.TimeFormat = c.TimeFormat
	}
	if r, err := c.DelimiterRune(); err == nil {
		opts.Delimiter = r
	}
	return opts
}
