// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/keepsake/lib/capability"
	"github.com/bureau-foundation/keepsake/lib/keepsake"
)

// EnvVar names the environment variable Load reads the config path
// from.
const EnvVar = "KEEPSAKE_CONFIG"

// Config is the complete keepsake configuration.
type Config struct {
	// Event describes the commemorated night.
	Event EventConfig `yaml:"event" json:"event"`

	// Defaults selects the initial presentation.
	Defaults DefaultsConfig `yaml:"defaults" json:"defaults"`

	// Paths configures where images are written.
	Paths PathsConfig `yaml:"paths" json:"paths"`

	// Capabilities can force platform integrations off.
	Capabilities CapabilitiesConfig `yaml:"capabilities" json:"capabilities"`

	// Log configures diagnostics.
	Log LogConfig `yaml:"log" json:"log"`
}

// EventConfig mirrors keepsake.Event in file form.
type EventConfig struct {
	Name    string `yaml:"name" json:"name" validate:"required"`
	Details string `yaml:"details" json:"details"`

	// Tag is mixed into every ticket code. Changing it invalidates
	// every previously issued ID.
	Tag string `yaml:"tag" json:"tag" validate:"required"`

	// Target is an RFC 3339 timestamp with an explicit offset.
	Target string `yaml:"target" json:"target" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`

	TicketPrefix string   `yaml:"ticket_prefix" json:"ticket_prefix" validate:"required,max=16"`
	FileSlug     string   `yaml:"file_slug" json:"file_slug" validate:"required,excludesall=/\\"`
	Hashtags     []string `yaml:"hashtags" json:"hashtags" validate:"dive,startswith=#"`
	ShareTitle   string   `yaml:"share_title" json:"share_title"`
	ShareDate    string   `yaml:"share_date" json:"share_date"`
	ShareURL     string   `yaml:"share_url" json:"share_url" validate:"omitempty,url"`
}

// DefaultsConfig selects the initial theme and layout. An empty format
// means "pick from the terminal width".
type DefaultsConfig struct {
	Theme  string `yaml:"theme" json:"theme" validate:"required,oneof=emerald rose violet amber cyan"`
	Format string `yaml:"format" json:"format" validate:"omitempty,oneof=wide story"`
}

// PathsConfig configures file locations. ${VAR} and ${VAR:-default}
// are expanded after loading.
type PathsConfig struct {
	// OutputDir receives downloaded PNGs.
	OutputDir string `yaml:"output_dir" json:"output_dir" validate:"required"`

	// TempDir receives images opened in an external viewer. Empty
	// means the system temp directory.
	TempDir string `yaml:"temp_dir" json:"temp_dir"`
}

// CapabilitiesConfig overrides platform detection.
type CapabilitiesConfig struct {
	DisableShare          bool `yaml:"disable_share" json:"disable_share"`
	DisableOpener         bool `yaml:"disable_opener" json:"disable_opener"`
	DisableImageClipboard bool `yaml:"disable_image_clipboard" json:"disable_image_clipboard"`
	DisableTextClipboard  bool `yaml:"disable_text_clipboard" json:"disable_text_clipboard"`

	// ShareCommand replaces termux-share as the native share command.
	// It receives title, text and URL on stdin, one per line.
	ShareCommand []string `yaml:"share_command" json:"share_command" validate:"omitempty,min=1,dive,required"`
}

// LogConfig configures diagnostics.
type LogConfig struct {
	Level string `yaml:"level" json:"level" validate:"required,oneof=debug info warn error"`

	// Output is an optional JSON log file. The interactive view writes
	// there instead of stderr.
	Output string `yaml:"output" json:"output"`
}

// Default returns the built-in configuration: the Buray — Harbiye
// event, emerald theme, width-picked format, downloads into the
// working directory.
func Default() *Config {
	event := keepsake.DefaultEvent()
	return &Config{
		Event: EventConfig{
			Name:         event.Name,
			Details:      event.Details,
			Tag:          event.Tag,
			Target:       event.Target.Format(time.RFC3339),
			TicketPrefix: event.TicketPrefix,
			FileSlug:     event.FileSlug,
			Hashtags:     append([]string(nil), event.Hashtags...),
			ShareTitle:   event.ShareTitle,
			ShareDate:    event.ShareDate,
			ShareURL:     event.ShareURL,
		},
		Defaults: DefaultsConfig{
			Theme: string(keepsake.DefaultTheme),
		},
		Paths: PathsConfig{
			OutputDir: ".",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads the file named by KEEPSAKE_CONFIG. Without the variable
// it returns the validated defaults.
func Load() (*Config, error) {
	path := os.Getenv(EnvVar)
	if path == "" {
		cfg := Default()
		return cfg, cfg.Validate()
	}
	return LoadFile(path)
}

// LoadFile loads a YAML file, or a JSON/JSONC file when the extension
// is .json or .jsonc, over the defaults. Unknown keys are errors.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		decoder := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	default:
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	cfg.expandVariables()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// expandVariables expands ${VAR} and ${VAR:-default} in path fields.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}
	c.Paths.OutputDir = expandVars(c.Paths.OutputDir, vars)
	c.Paths.TempDir = expandVars(c.Paths.TempDir, vars)
	c.Log.Output = expandVars(c.Log.Output, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default} patterns, checking
// vars before the environment.
func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		name := parts[1]
		defaultValue := parts[2]

		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("yaml"), ",")
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	return v
}

// Validate checks the configuration and reports every problem, one
// per joined error, using the file's key names.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err
	}
	errs := make([]error, 0, len(fieldErrors))
	for _, fieldError := range fieldErrors {
		errs = append(errs, fmt.Errorf("%s %s", fieldPath(fieldError), describe(fieldError)))
	}
	return errors.Join(errs...)
}

// fieldPath drops the root struct name: "Config.event.tag" -> "event.tag".
func fieldPath(fieldError validator.FieldError) string {
	_, path, found := strings.Cut(fieldError.Namespace(), ".")
	if !found {
		return fieldError.Namespace()
	}
	return path
}

func describe(fieldError validator.FieldError) string {
	switch fieldError.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fieldError.Param(), " ", ", ")
	case "datetime":
		return "must be an RFC 3339 timestamp with offset"
	case "url":
		return "must be a URL"
	case "startswith":
		return "must start with " + fieldError.Param()
	case "max":
		return "must be at most " + fieldError.Param() + " characters"
	case "min":
		return "must have at least " + fieldError.Param() + " element"
	case "excludesall":
		return "must not contain path separators"
	default:
		return "failed " + fieldError.Tag() + " check"
	}
}

// KeepsakeEvent converts the event section.
func (c *Config) KeepsakeEvent() (keepsake.Event, error) {
	target, err := time.Parse(time.RFC3339, c.Event.Target)
	if err != nil {
		return keepsake.Event{}, fmt.Errorf("event.target: %w", err)
	}
	return keepsake.Event{
		Name:         c.Event.Name,
		Details:      c.Event.Details,
		Tag:          c.Event.Tag,
		Target:       target,
		TicketPrefix: c.Event.TicketPrefix,
		FileSlug:     c.Event.FileSlug,
		Hashtags:     append([]string(nil), c.Event.Hashtags...),
		ShareTitle:   c.Event.ShareTitle,
		ShareDate:    c.Event.ShareDate,
		ShareURL:     c.Event.ShareURL,
	}, nil
}

// DetectOptions converts the capabilities section.
func (c *Config) DetectOptions() capability.DetectOptions {
	return capability.DetectOptions{
		DisableShare:          c.Capabilities.DisableShare,
		DisableOpener:         c.Capabilities.DisableOpener,
		DisableImageClipboard: c.Capabilities.DisableImageClipboard,
		DisableTextClipboard:  c.Capabilities.DisableTextClipboard,
		ShareCommand:          append([]string(nil), c.Capabilities.ShareCommand...),
	}
}

// LogLevel returns the configured slog level.
func (c *Config) LogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}
