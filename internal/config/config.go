package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"estsoil-loimis/internal/pipeline"
)

// ErrInvalidConfig is returned when a configuration fails validation.
var ErrInvalidConfig = errors.New("invalid configuration")

const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config is the top-level configuration file.
type Config struct {
	// Tables is a path to a lookup tables file. Empty means the embedded tables.
	Tables          string  `yaml:"tables,omitempty"`
	Workers         int     `yaml:"workers,omitempty"`
	MaxRepairRounds int     `yaml:"max_repair_rounds,omitempty"`
	DefaultDepthMM  uint32  `yaml:"default_depth_mm,omitempty"`
	MaxLayers       int     `yaml:"max_layers,omitempty"`
	Log             Log     `yaml:"log,omitempty"`
	Columns         Columns `yaml:"columns,omitempty"`
}

// Log selects the logger level and handler.
type Log struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"`
}

// Columns names the CSV columns a batch run reads.
type Columns struct {
	ID       string `yaml:"id,omitempty"`
	Code     string `yaml:"code,omitempty"`
	SoilType string `yaml:"soil_type,omitempty"`
}

// Default returns the built-in configuration.
func Default() Config {
	opts := pipeline.DefaultOptions()

	return Config{
		Workers:         4,
		MaxRepairRounds: opts.MaxRounds,
		DefaultDepthMM:  opts.DefaultDepthMM,
		MaxLayers:       opts.MaxLayers,
		Log: Log{
			Level:  "info",
			Format: LogFormatText,
		},
		Columns: Columns{
			ID:       "id",
			Code:     "loimis",
			SoilType: "siffer",
		},
	}
}

// Load reads path and merges it over Default. An empty path yields Default.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse decodes YAML data, rejecting unknown keys, and merges it over Default.
func Parse(data []byte) (Config, error) {
	var over Config

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&over); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	cfg := Merge(Default(), over)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Merge returns base with every non-zero field of over applied.
func Merge(base, over Config) Config {
	out := base

	if s := strings.TrimSpace(over.Tables); s != "" {
		out.Tables = s
	}

	if over.Workers != 0 {
		out.Workers = over.Workers
	}

	if over.MaxRepairRounds != 0 {
		out.MaxRepairRounds = over.MaxRepairRounds
	}

	if over.DefaultDepthMM != 0 {
		out.DefaultDepthMM = over.DefaultDepthMM
	}

	if over.MaxLayers != 0 {
		out.MaxLayers = over.MaxLayers
	}

	if s := strings.TrimSpace(over.Log.Level); s != "" {
		out.Log.Level = strings.ToLower(s)
	}

	if s := strings.TrimSpace(over.Log.Format); s != "" {
		out.Log.Format = strings.ToLower(s)
	}

	if over.Columns.ID != "" {
		out.Columns.ID = over.Columns.ID
	}

	if over.Columns.Code != "" {
		out.Columns.Code = over.Columns.Code
	}

	if over.Columns.SoilType != "" {
		out.Columns.SoilType = over.Columns.SoilType
	}

	return out
}

// Validate checks ranges and enumerations.
func (c Config) Validate() error {
	var errs []error

	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be >= 1, got %d", c.Workers))
	}

	if c.MaxRepairRounds < 1 {
		errs = append(errs, fmt.Errorf("max_repair_rounds must be >= 1, got %d", c.MaxRepairRounds))
	}

	if c.DefaultDepthMM == 0 {
		errs = append(errs, errors.New("default_depth_mm must be > 0"))
	}

	if c.MaxLayers < 1 {
		errs = append(errs, fmt.Errorf("max_layers must be >= 1, got %d", c.MaxLayers))
	}

	if _, err := ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}

	switch c.Log.Format {
	case LogFormatText, LogFormatJSON:
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q", c.Log.Format))
	}

	if c.Columns.ID == "" || c.Columns.Code == "" {
		errs = append(errs, errors.New("columns.id and columns.code are required"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}

	return nil
}

// PipelineOptions maps the config onto compiler options.
func (c Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		MaxRounds:      c.MaxRepairRounds,
		DefaultDepthMM: c.DefaultDepthMM,
		MaxLayers:      c.MaxLayers,
	}
}

// ParseLevel maps a level name onto slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("unknown log level %q", s)
	}

	return lvl, nil
}

// NewLogger builds the logger described by c.Log, writing to w.
func (c Config) NewLogger(w io.Writer) (*slog.Logger, error) {
	lvl, err := ParseLevel(c.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	opts := &slog.HandlerOptions{Level: lvl}

	switch c.Log.Format {
	case LogFormatJSON:
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	case LogFormatText, "":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("%w: unknown log format %q", ErrInvalidConfig, c.Log.Format)
	}
}
