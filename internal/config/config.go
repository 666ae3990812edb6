package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/KaramelBytes/colstat-cli/internal/stats"
	"github.com/KaramelBytes/colstat-cli/internal/utils"
	"github.com/c2h5oh/datasize"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	dirName  = ".colstat"
	fileName = "config.yaml"
)

// Global configuration structure.
type Global struct {
	InputDelimiter  string `mapstructure:"input_delimiter" yaml:"input_delimiter"`
	OutputDelimiter string `mapstructure:"output_delimiter" yaml:"output_delimiter"`
	Precision       int    `mapstructure:"precision" yaml:"precision"`
	ZeroAsEmpty     bool   `mapstructure:"zero_as_empty" yaml:"zero_as_empty"`

	// Distinct counting for string profiles
	CardinalityStrategy string `mapstructure:"cardinality_strategy" yaml:"cardinality_strategy"`
	CardinalityCap      int    `mapstructure:"cardinality_cap" yaml:"cardinality_cap"`
	SketchPrecision     int    `mapstructure:"sketch_precision" yaml:"sketch_precision"`

	// Input limits, e.g. "16MB"
	MaxLineSize string `mapstructure:"max_line_size" yaml:"max_line_size"`

	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
}

// Default returns the built-in configuration.
func Default() *Global {
	return &Global{
		InputDelimiter:      ",",
		Precision:           0,
		CardinalityStrategy: string(stats.StrategyExact),
		CardinalityCap:      stats.DefaultCardinalityCap,
		SketchPrecision:     stats.DefaultSketchPrecision,
		MaxLineSize:         "16MB",
		LogLevel:            "WARNING",
	}
}

// DefaultPath returns ~/.colstat/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, dirName, fileName), nil
}

// Save writes the given configuration to cfgFile, or to the default path
// when cfgFile is empty.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := utils.SafeWriteFile(path, b); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults. Flags are applied by the caller.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("COLSTAT")
	v.AutomaticEnv()

	d := Default()
	v.SetDefault("input_delimiter", d.InputDelimiter)
	v.SetDefault("output_delimiter", d.OutputDelimiter)
	v.SetDefault("precision", d.Precision)
	v.SetDefault("zero_as_empty", d.ZeroAsEmpty)
	v.SetDefault("cardinality_strategy", d.CardinalityStrategy)
	v.SetDefault("cardinality_cap", d.CardinalityCap)
	v.SetDefault("sketch_precision", d.SketchPrecision)
	v.SetDefault("max_line_size", d.MaxLineSize)
	v.SetDefault("log_level", d.LogLevel)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		// a missing explicit file is fine, config init creates it
		if _, err := os.Stat(cfgFile); err == nil {
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		v.AddConfigPath(filepath.Join(home, dirName))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// the default file is optional, a broken one is not
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

// Validate checks that every value can be used for a run.
func (c *Global) Validate() error {
	if _, err := ParseDelimiter(c.InputDelimiter); err != nil {
		return fmt.Errorf("input_delimiter: %w", err)
	}
	if c.OutputDelimiter != "" {
		if _, err := ParseDelimiter(c.OutputDelimiter); err != nil {
			return fmt.Errorf("output_delimiter: %w", err)
		}
	}
	if c.Precision < 0 {
		return fmt.Errorf("precision must be >= 0, got %d", c.Precision)
	}
	if _, err := c.CardinalityOptions(); err != nil {
		return err
	}
	if _, err := c.MaxLineBytes(); err != nil {
		return err
	}
	return nil
}

// CardinalityOptions converts the cardinality settings.
func (c *Global) CardinalityOptions() (stats.CardinalityOptions, error) {
	strategy, err := stats.ParseStrategy(c.CardinalityStrategy)
	if err != nil {
		return stats.CardinalityOptions{}, err
	}
	if c.SketchPrecision < 0 || c.SketchPrecision > 255 {
		return stats.CardinalityOptions{}, fmt.Errorf("sketch precision out of range: %d", c.SketchPrecision)
	}
	o := stats.CardinalityOptions{
		Strategy:  strategy,
		Cap:       c.CardinalityCap,
		Precision: uint8(c.SketchPrecision),
	}
	if err := o.Validate(); err != nil {
		return stats.CardinalityOptions{}, err
	}
	return o, nil
}

// MaxLineBytes parses MaxLineSize; empty means the input default.
func (c *Global) MaxLineBytes() (int, error) {
	if c.MaxLineSize == "" {
		return 0, nil
	}
	var size datasize.ByteSize
	if err := size.UnmarshalText([]byte(c.MaxLineSize)); err != nil {
		return 0, fmt.Errorf("max_line_size %q: %w", c.MaxLineSize, err)
	}
	if size.Bytes() == 0 || size.Bytes() > 1<<30 {
		return 0, fmt.Errorf("max_line_size %q must be between 1B and 1GB", c.MaxLineSize)
	}
	return int(size.Bytes()), nil
}

// ParseDelimiter accepts a single character, or the names "tab", "comma",
// "semicolon", "pipe" and "space".
func ParseDelimiter(s string) (rune, error) {
	switch s {
	case "tab", `\t`:
		return '\t', nil
	case "comma":
		return ',', nil
	case "semicolon":
		return ';', nil
	case "pipe":
		return '|', nil
	case "space":
		return ' ', nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	if r == '\n' || r == '\r' || r == utf8.RuneError {
		return 0, fmt.Errorf("invalid delimiter %q", s)
	}
	return r, nil
}
