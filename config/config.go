// Package config loads CLI settings from an optional YAML file, overridden by
// INFERSCHEMA_* environment variables.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joeshaw/envdecode"
	"gopkg.in/yaml.v3"

	"github.com/reoring/inferschema"
	"github.com/reoring/inferschema/internal/logging"
)

// Config holds the layouts and runtime settings.
type Config struct {
	Formats  Formats `yaml:"formats"`
	LogLevel string  `yaml:"logLevel" env:"INFERSCHEMA_LOG_LEVEL"`
	// Language selects the message dictionary ("en" or "ja").
	Language string `yaml:"language" env:"INFERSCHEMA_LANG"`
}

// Formats are Go time layouts.
type Formats struct {
	Date     string `yaml:"date" env:"INFERSCHEMA_DATE_FORMAT"`
	DateTime string `yaml:"datetime" env:"INFERSCHEMA_DATETIME_FORMAT"`
	Time     string `yaml:"time" env:"INFERSCHEMA_TIME_FORMAT"`
}

// Default returns the built-in settings.
func Default() Config {
	f := inferschema.DefaultFormats()
	return Config{
		Formats:  Formats{Date: f.Date, DateTime: f.DateTime, Time: f.Time},
		LogLevel: "info",
		Language: "en",
	}
}

// Load reads path (skipped when empty), applies the environment and validates
// the result.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: %w", err)
		}
		if err := decodeYAML(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: %s: %w", path, err)
		}
	}
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, fmt.Errorf("config: environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decodeYAML(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// reference is formatted with each layout; a layout without any time element
// formats to itself.
var reference = time.Date(2001, 2, 3, 4, 5, 6, 7000, time.FixedZone("", 3600))

// Validate reports unusable layouts, levels and languages.
func (c Config) Validate() error {
	var errs []error
	for _, f := range []struct{ name, layout string }{
		{"formats.date", c.Formats.Date},
		{"formats.datetime", c.Formats.DateTime},
		{"formats.time", c.Formats.Time},
	} {
		name, layout := f.name, f.layout
		if layout == "" {
			errs = append(errs, fmt.Errorf("%s must not be empty", name))
			continue
		}
		if reference.Format(layout) == layout {
			errs = append(errs, fmt.Errorf("%s %q has no date or time elements", name, layout))
		}
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	switch c.Language {
	case "", "en", "ja":
	default:
		errs = append(errs, fmt.Errorf("language %q is not one of en, ja", c.Language))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// SampleFormats converts the layouts for inferschema.WithFormats.
func (c Config) SampleFormats() inferschema.Formats {
	return inferschema.Formats{Date: c.Formats.Date, DateTime: c.Formats.DateTime, Time: c.Formats.Time}
}
