// Package config loads chart settings from defaults, an optional YAML/JSON/
// JSONC file and CANCHART_* environment variables, in increasing precedence.
package config

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/iafilius/CanDashboard/src/chart"
	"github.com/iafilius/CanDashboard/src/metrics"
)

// EnvPrefix prefixes environment overrides, e.g. CANCHART_DARK_MODE=false.
const EnvPrefix = "CANCHART"

// DefaultName is the config file looked up in the home directory when no
// path is given.
const DefaultName = ".canchart"

// Terminal sizes the braille preview in cells.
type Terminal struct {
	Width  int `mapstructure:"width" yaml:"width"`
	Height int `mapstructure:"height" yaml:"height"`
}

// Config holds the chart props plus host settings.
type Config struct {
	DataFile   string  `mapstructure:"data_file" yaml:"data_file,omitempty"`
	Width      float64 `mapstructure:"width" yaml:"width"`
	Height     float64 `mapstructure:"height" yaml:"height"`
	PixelRatio float64 `mapstructure:"pixel_ratio" yaml:"pixel_ratio"`
	Overlay    bool    `mapstructure:"overlay" yaml:"overlay"`
	DarkMode   bool    `mapstructure:"dark_mode" yaml:"dark_mode"`
	// Metric names the single-series metric ("category.key", key or label);
	// empty picks the first of Metrics.
	Metric   string               `mapstructure:"metric" yaml:"metric,omitempty"`
	Metrics  []metrics.Descriptor `mapstructure:"metrics" yaml:"metrics"`
	Terminal Terminal             `mapstructure:"terminal" yaml:"terminal"`
	LogLevel string               `mapstructure:"log_level" yaml:"log_level"`
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("data_file", "")
	v.SetDefault("width", chart.DefaultWidth)
	v.SetDefault("height", chart.DefaultHeight)
	v.SetDefault("pixel_ratio", 1.0)
	v.SetDefault("overlay", false)
	v.SetDefault("dark_mode", true)
	v.SetDefault("metric", "")
	v.SetDefault("terminal.width", 80)
	v.SetDefault("terminal.height", 16)
	v.SetDefault("log_level", "info")
}

// New returns a viper instance with defaults and environment binding.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads path (if non-empty) into a fresh viper instance and decodes it.
func Load(path string) (Config, error) {
	v := New()
	if err := ReadFile(v, path); err != nil {
		return Config{}, err
	}
	return Decode(v)
}

// ReadFile merges the config file at path into v. A .jsonc file has its
// full-line // comments stripped first.
func ReadFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	if strings.EqualFold(filepath.Ext(path), ".jsonc") {
		b, err := StripJSONC(path)
		if err != nil {
			return fmt.Errorf("read config: %w", err)
		}
		v.SetConfigType("json")
		if err := v.ReadConfig(bytes.NewReader(b)); err != nil {
			return fmt.Errorf("parse config %s: %w", path, err)
		}
		return nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	return nil
}

// FindDefault returns the home-directory config file if one exists.
func FindDefault() (string, bool) {
	home, err := homedir.Dir()
	if err != nil {
		return "", false
	}
	for _, ext := range []string{".yaml", ".yml", ".json", ".jsonc"} {
		p := filepath.Join(home, DefaultName+ext)
		if _, err := os.Stat(p); err == nil {
			return p, true
		}
	}
	return "", false
}

// Decode unmarshals v and validates the result.
func Decode(v *viper.Viper) (Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// StripJSONC loads a JSONC file (full-line // comments) and returns raw JSON bytes.
func StripJSONC(filename string) ([]byte, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []byte
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "//") {
			continue
		}
		// Inline // is kept: colors and URLs may contain it.
		out = append(out, []byte(line+"\n")...)
	}
	return out, scanner.Err()
}

// Validate rejects settings no chart can be drawn with.
func (c Config) Validate() error {
	var errs []error
	if c.Width <= 0 {
		errs = append(errs, fmt.Errorf("width must be positive, got %v", c.Width))
	}
	if c.Height < 0 {
		errs = append(errs, fmt.Errorf("height must not be negative, got %v", c.Height))
	}
	if c.PixelRatio <= 0 {
		errs = append(errs, fmt.Errorf("pixel_ratio must be positive, got %v", c.PixelRatio))
	}
	for i, d := range c.Metrics {
		if d.Key == "" || d.Category == "" {
			errs = append(errs, fmt.Errorf("metrics[%d]: key and category are required", i))
		}
	}
	if c.Metric != "" && len(c.Metrics) > 0 {
		if _, ok := metrics.Find(c.Metrics, c.Metric); !ok {
			errs = append(errs, fmt.Errorf("metric %q is not among the configured metrics", c.Metric))
		}
	}
	return errors.Join(errs...)
}

// WithDiscovered fills an empty metric list from the data.
func (c Config) WithDiscovered(points []metrics.DataPoint) Config {
	if len(c.Metrics) == 0 {
		c.Metrics = metrics.Discover(points)
	}
	return c
}

// Primary returns the single-series metric.
func (c Config) Primary() (metrics.Descriptor, bool) {
	if c.Metric != "" {
		return metrics.Find(c.Metrics, c.Metric)
	}
	if len(c.Metrics) == 0 {
		return metrics.Descriptor{}, false
	}
	return c.Metrics[0], true
}

// ChartOptions maps the config onto chart props.
func (c Config) ChartOptions() chart.Options {
	opts := chart.Options{Height: c.Height, Overlay: c.Overlay, DarkMode: c.DarkMode}
	if c.Overlay {
		opts.Metrics = c.Metrics
		return opts
	}
	if m, ok := c.Primary(); ok {
		opts.Metric = &m
	}
	return opts
}

// ChartConfig returns a chart configuration for data.
func (c Config) ChartConfig(data []metrics.DataPoint) chart.Config {
	return chart.Config{
		Options:    c.ChartOptions(),
		Data:       data,
		Width:      c.Width,
		PixelRatio: c.PixelRatio,
	}
}

// Marshal renders c as YAML.
func Marshal(c Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
