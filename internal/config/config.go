// Package config loads solver settings for the dex command from TOML or YAML
// files.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/bartolsthoorn/highsdex/highs"
)

var validate = validator.New()

// Settings holds solve settings.
type Settings struct {
	LogLevel   string   `toml:"log_level" yaml:"log_level" validate:"oneof=debug info warn error"`
	Output     bool     `toml:"output" yaml:"output"`
	TimeLimit  float64  `toml:"time_limit" yaml:"time_limit" validate:"gte=0"`
	MIPRelGap  *float64 `toml:"mip_rel_gap" yaml:"mip_rel_gap" validate:"omitempty,gte=0,lte=1"`
	MIPAbsGap  *float64 `toml:"mip_abs_gap" yaml:"mip_abs_gap" validate:"omitempty,gte=0"`
	Threads    int      `toml:"threads" yaml:"threads" validate:"gte=0"`
	Presolve   string   `toml:"presolve" yaml:"presolve" validate:"omitempty,oneof=off choose on"`
	RandomSeed *int     `toml:"random_seed" yaml:"random_seed" validate:"omitempty,gte=0"`
	Seeds      int      `toml:"seeds" yaml:"seeds" validate:"gte=1"`
	LogFile    string   `toml:"log_file" yaml:"log_file"`
	Options    Options  `toml:"options" yaml:"options"`
}

// Options are raw HiGHS options by value type.
type Options struct {
	Bool   map[string]bool    `toml:"bool" yaml:"bool"`
	Int    map[string]int     `toml:"int" yaml:"int"`
	Float  map[string]float64 `toml:"float" yaml:"float"`
	String map[string]string  `toml:"string" yaml:"string"`
}

// Default returns the settings used when no file is given.
func Default() *Settings {
	return &Settings{LogLevel: "info", Seeds: 5}
}

// Load reads settings from path. The format follows the extension: .toml, or
// .yaml / .yml. Fields missing from the file keep their defaults.
func Load(path string) (*Settings, error) {
	path = os.ExpandEnv(path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	s := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(string(data), s); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, s); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("config: %s: unsupported format %q", path, ext)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks the field constraints.
func (s *Settings) Validate() error {
	return validate.Struct(s)
}

// Level returns the slog level for LogLevel.
func (s *Settings) Level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return l
}

// SolveOptions converts the settings into HiGHS options. Unset fields leave
// the solver defaults alone.
func (s *Settings) SolveOptions() []highs.SolveOption {
	opts := []highs.SolveOption{highs.WithOutput(s.Output)}
	if s.TimeLimit > 0 {
		opts = append(opts, highs.WithTimeLimit(s.TimeLimit))
	}
	if s.MIPRelGap != nil {
		opts = append(opts, highs.WithMIPRelGap(*s.MIPRelGap))
	}
	if s.MIPAbsGap != nil {
		opts = append(opts, highs.WithMIPAbsGap(*s.MIPAbsGap))
	}
	if s.Threads > 0 {
		opts = append(opts, highs.WithThreads(s.Threads))
	}
	if s.Presolve != "" {
		opts = append(opts, highs.WithPresolve(s.Presolve))
	}
	if s.RandomSeed != nil {
		opts = append(opts, highs.WithRandomSeed(*s.RandomSeed))
	}
	if s.LogFile != "" {
		opts = append(opts, highs.WithLogFile(s.LogFile))
	}
	for k, v := range s.Options.Bool {
		opts = append(opts, highs.WithBoolOption(k, v))
	}
	for k, v := range s.Options.Int {
		opts = append(opts, highs.WithIntOption(k, v))
	}
	for k, v := range s.Options.Float {
		opts = append(opts, highs.WithFloatOption(k, v))
	}
	for k, v := range s.Options.String {
		opts = append(opts, highs.WithStringOption(k, v))
	}
	return opts
}
