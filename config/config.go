// Package config loads host configuration from YAML or TOML files,
// validates it and watches it for changes.
//
// The same document drives every host: the terminal runner reads it at
// start-up and re-applies the consent policy on every save, the snapshot
// command reads its sizing block.
//
//	seed: 42
//	density: medium       # low | medium | high
//	consent: mixed        # granted | mixed | denied
//	variant: consent      # consent | backdrop
//	interactive: true
//	reduced_motion: false
//	pointer: fine         # fine | coarse
//	fps: 30
//	debounce_ms: 120      # omit for the variant default
//	metrics: { addr: "127.0.0.1:9464" }
//	log: { level: info }
//	snapshot: { width: 1280, height: 720, dpr: 1, frames: 0 }
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/consentflow/core"
	"github.com/katalvlaran/consentflow/engine"
	"github.com/katalvlaran/consentflow/profile"
)

// Sentinel errors.
var (
	// ErrUnsupportedFormat is returned for files that are neither YAML nor TOML.
	ErrUnsupportedFormat = errors.New("config: unsupported file format")
	// ErrInvalid wraps every validation failure.
	ErrInvalid = errors.New("config: invalid configuration")
)

// validate is shared; validator.Validate caches struct metadata.
var validate = validator.New()

// Format names a document syntax.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
	}
}

// Config is the host configuration document.
type Config struct {
	Seed          int64  `yaml:"seed" toml:"seed"`
	Density       string `yaml:"density" toml:"density" validate:"oneof=low medium high"`
	Consent       string `yaml:"consent" toml:"consent" validate:"oneof=granted mixed denied"`
	Variant       string `yaml:"variant" toml:"variant" validate:"oneof=consent backdrop"`
	Interactive   bool   `yaml:"interactive" toml:"interactive"`
	ReducedMotion bool   `yaml:"reduced_motion" toml:"reduced_motion"`
	Pointer       string `yaml:"pointer" toml:"pointer" validate:"oneof=fine coarse"`
	FPS           int    `yaml:"fps" toml:"fps" validate:"min=1,max=240"`
	DebounceMS    int    `yaml:"debounce_ms" toml:"debounce_ms" validate:"omitempty,min=1,max=5000"`

	Metrics  Metrics  `yaml:"metrics" toml:"metrics"`
	Log      Log      `yaml:"log" toml:"log"`
	Snapshot Snapshot `yaml:"snapshot" toml:"snapshot"`
}

// Metrics configures the Prometheus endpoint; an empty Addr disables it.
type Metrics struct {
	Addr string `yaml:"addr" toml:"addr" validate:"omitempty,hostname_port"`
}

// Log configures the zap logger.
type Log struct {
	Level       string `yaml:"level" toml:"level" validate:"oneof=debug info warn error"`
	Development bool   `yaml:"development" toml:"development"`
}

// Snapshot sizes offscreen renders.
type Snapshot struct {
	Width  int     `yaml:"width" toml:"width" validate:"min=1,max=8192"`
	Height int     `yaml:"height" toml:"height" validate:"min=1,max=8192"`
	DPR    float64 `yaml:"dpr" toml:"dpr" validate:"gt=0,lte=2"`
	Frames int     `yaml:"frames" toml:"frames" validate:"min=0,max=100000"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Seed:        42,
		Density:     profile.DefaultDensity.String(),
		Consent:     core.DefaultPolicy.String(),
		Variant:     engine.VariantConsent.String(),
		Interactive: true,
		Pointer:     "fine",
		FPS:         30,
		Log:         Log{Level: "info"},
		Snapshot:    Snapshot{Width: 1280, Height: 720, DPR: 1},
	}
}

// Load reads, decodes and validates the file at path. Fields absent from
// the file keep their Default values.
func Load(path string) (Config, error) {
	format, err := FormatOf(path)
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("Load: %w", err)
	}
	cfg, err := Parse(data, format)
	if err != nil {
		return Config{}, fmt.Errorf("Load: %s: %w", path, err)
	}

	return cfg, nil
}

// Parse decodes data over Default and validates the result.
func Parse(data []byte, format Format) (Config, error) {
	cfg := Default()
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("decode yaml: %w", err)
		}
	case FormatTOML:
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return Config{}, fmt.Errorf("decode toml: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Config{}, fmt.Errorf("decode toml: unknown keys %v", undecoded)
		}
	default:
		return Config{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks every field constraint.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
			}
			return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	return nil
}

// Policy returns the parsed consent policy.
func (c Config) Policy() core.Policy {
	p, err := core.ParsePolicy(c.Consent)
	if err != nil {
		return core.DefaultPolicy
	}
	return p
}

// DensityTier returns the parsed density.
func (c Config) DensityTier() profile.Density {
	d, err := profile.ParseDensity(c.Density)
	if err != nil {
		return profile.DefaultDensity
	}
	return d
}

// VariantKind returns the parsed variant.
func (c Config) VariantKind() engine.Variant {
	v, err := engine.ParseVariant(c.Variant)
	if err != nil {
		return engine.VariantConsent
	}
	return v
}

// Debounce returns the resize debounce window; an unset debounce_ms takes
// the variant's default.
func (c Config) Debounce() time.Duration {
	if c.DebounceMS == 0 {
		return c.VariantKind().ResizeDebounce()
	}
	return time.Duration(c.DebounceMS) * time.Millisecond
}

// EngineOptions translates the document into engine options.
func (c Config) EngineOptions(logger *zap.Logger) []engine.Option {
	opts := []engine.Option{
		engine.WithSeed(c.Seed),
		engine.WithDensity(c.DensityTier()),
		engine.WithPolicy(c.Policy()),
		engine.WithVariant(c.VariantKind()),
		engine.WithInteractive(c.Interactive),
		engine.WithReducedMotion(c.ReducedMotion),
		engine.WithPointerFine(c.Pointer != "coarse"),
		engine.WithDebounce(c.Debounce()),
	}
	if logger != nil {
		opts = append(opts, engine.WithLogger(logger))
	}

	return opts
}
