// Package config loads dashboard settings from an optional YAML file.
//
// Defaults are applied first, the YAML document overrides them, and the
// result is checked against the embedded CUE schema (schema.cue). A missing
// --config flag means defaults only; there are no environment overrides.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"

	"github.com/roach88/launchdash/internal/dashboard"
	"github.com/roach88/launchdash/internal/launch"
)

//go:embed schema.cue
var schemaSource string

// Error codes for configuration failures.
const (
	ErrCodeReadFailed   = "E010" // Config file unreadable
	ErrCodeParseFailed  = "E011" // YAML malformed or unknown field
	ErrCodeSchemaFailed = "E012" // Values rejected by schema
)

// Default settings. Layout values come from the dashboard package.
const (
	DefaultListen       = "127.0.0.1:8050"
	DefaultHeading      = dashboard.DefaultHeading
	DefaultSliderStep   = dashboard.DefaultSliderStep
	DefaultMarkInterval = dashboard.DefaultMarkInterval
	DefaultMaxSessions  = 1024
)

// Config holds all dashboard settings.
type Config struct {
	// DataPath is the launch file. Relative paths in a config file are
	// resolved against the config file's directory.
	DataPath string `yaml:"data_path" json:"data_path"`

	// Listen is the HTTP listen address (host:port).
	Listen string `yaml:"listen" json:"listen"`

	// Heading is the page title shown above the controls.
	Heading string `yaml:"heading" json:"heading"`

	// SliderStep is the payload slider increment in kilograms.
	SliderStep float64 `yaml:"slider_step" json:"slider_step"`

	// MarkInterval is the spacing of labelled slider marks in kilograms.
	MarkInterval float64 `yaml:"mark_interval" json:"mark_interval"`

	// MaxSessions bounds the number of live dashboard sessions.
	MaxSessions int `yaml:"max_sessions" json:"max_sessions"`

	Log LogConfig `yaml:"log" json:"log"`
}

// LogConfig selects the slog level and handler format.
type LogConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
}

// Error reports a configuration failure.
type Error struct {
	Code    string
	Path    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Code + ": "
	if e.Path != "" {
		msg += e.Path + ": "
	}
	msg += e.Message
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DataPath:     launch.DefaultPath,
		Listen:       DefaultListen,
		Heading:      DefaultHeading,
		SliderStep:   DefaultSliderStep,
		MarkInterval: DefaultMarkInterval,
		MaxSessions:  DefaultMaxSessions,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads the YAML file at path over the defaults and validates the
// result. An empty path returns the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		cfg := Default()
		return cfg, cfg.Validate()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, &Error{Code: ErrCodeReadFailed, Path: path, Message: "failed to read config file", Err: err}
	}

	cfg, err := Parse(data)
	if err != nil {
		var ce *Error
		if errors.As(err, &ce) {
			ce.Path = path
		}
		return Config{}, err
	}

	if !filepath.IsAbs(cfg.DataPath) {
		cfg.DataPath = filepath.Join(filepath.Dir(path), cfg.DataPath)
	}

	return cfg, nil
}

// Parse decodes a YAML document over the defaults and validates it.
// Unknown fields are rejected to catch typos.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, &Error{Code: ErrCodeParseFailed, Message: "failed to parse YAML", Err: err}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration against the embedded CUE schema.
func (c Config) Validate() error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue")).LookupPath(cue.ParsePath("#Config"))
	if err := schema.Err(); err != nil {
		return &Error{Code: ErrCodeSchemaFailed, Message: "invalid embedded schema", Err: err}
	}

	value := schema.Unify(ctx.Encode(c))
	if err := value.Validate(cue.Concrete(true)); err != nil {
		return &Error{Code: ErrCodeSchemaFailed, Message: strings.TrimSpace(cueerrors.Details(err, nil))}
	}
	return nil
}
