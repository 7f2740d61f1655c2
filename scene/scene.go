// Package scene loads animations described in YAML and builds the
// controllers that play them.
package scene

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/AnatoleLucet/spring"
	"github.com/AnatoleLucet/spring/interp"
)

var (
	ErrEmpty             = errors.New("scene: no controllers")
	ErrMissingID         = errors.New("scene: controller without id")
	ErrDuplicateID       = errors.New("scene: duplicate controller id")
	ErrUnknownPreset     = errors.New("scene: unknown preset")
	ErrUnknownEasing     = errors.New("scene: unknown easing")
	ErrUnknownController = errors.New("scene: unknown controller")
	ErrDerived           = errors.New("scene: invalid derived value")
)

// Scene is the YAML form of a set of controllers.
type Scene struct {
	Name        string                `yaml:"name"`
	Presets     map[string]ConfigSpec `yaml:"presets,omitempty"`
	Controllers []ControllerSpec      `yaml:"controllers"`
}

type ControllerSpec struct {
	ID   string         `yaml:"id"`
	From map[string]any `yaml:"from,omitempty"`
	To   map[string]any `yaml:"to,omitempty"`
	// Sequence plays its bundles one after the other, instead of To.
	Sequence []map[string]any `yaml:"sequence,omitempty"`

	Delay  time.Duration            `yaml:"delay,omitempty"`
	Delays map[string]time.Duration `yaml:"delays,omitempty"`

	Preset  string       `yaml:"preset,omitempty"`
	Config  *ConfigSpec  `yaml:"config,omitempty"`
	Configs []ConfigSpec `yaml:"configs,omitempty"`

	Immediate bool `yaml:"immediate,omitempty"`
	Reverse   bool `yaml:"reverse,omitempty"`
	// Attach names an earlier controller whose values become the goals.
	Attach string `yaml:"attach,omitempty"`

	Derived []DerivedSpec `yaml:"derived,omitempty"`
}

// ConfigSpec is a spring config. Preset, when set, is the base the other
// fields override.
type ConfigSpec struct {
	Preset    string        `yaml:"preset,omitempty"`
	Tension   float64       `yaml:"tension,omitempty"`
	Friction  float64       `yaml:"friction,omitempty"`
	Mass      float64       `yaml:"mass,omitempty"`
	Velocity  float64       `yaml:"velocity,omitempty"`
	Clamp     bool          `yaml:"clamp,omitempty"`
	Precision float64       `yaml:"precision,omitempty"`
	Duration  time.Duration `yaml:"duration,omitempty"`
	Easing    string        `yaml:"easing,omitempty"`
	Decay     float64       `yaml:"decay,omitempty"`
}

// DerivedSpec computes an extra value from one key, either through an
// expression over x or through a range interpolation.
type DerivedSpec struct {
	Name string `yaml:"name"`
	From string `yaml:"from"`

	Expr string `yaml:"expr,omitempty"`

	Range       []float64 `yaml:"range,omitempty"`
	Output      []any     `yaml:"output,omitempty"`
	Extrapolate string    `yaml:"extrapolate,omitempty"`
	Easing      string    `yaml:"easing,omitempty"`
	ColorSpace  string    `yaml:"colorSpace,omitempty"`
}

func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Scene, error) {
	var s Scene
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse scene YAML: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks ids, attachments and names without building anything.
func (s *Scene) Validate() error {
	if len(s.Controllers) == 0 {
		return ErrEmpty
	}

	seen := make(map[string]bool, len(s.Controllers))
	for i, cs := range s.Controllers {
		if cs.ID == "" {
			return fmt.Errorf("%w at index %d", ErrMissingID, i)
		}
		if seen[cs.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicateID, cs.ID)
		}
		if cs.Attach != "" && !seen[cs.Attach] {
			return fmt.Errorf("%w: %s attaches to %s", ErrUnknownController, cs.ID, cs.Attach)
		}
		seen[cs.ID] = true

		if _, err := s.props(cs); err != nil {
			return fmt.Errorf("controller %s: %w", cs.ID, err)
		}
		for _, d := range cs.Derived {
			if _, err := d.calc(); err != nil {
				return fmt.Errorf("controller %s: %w", cs.ID, err)
			}
		}
	}
	return nil
}

// Config resolves spec against the scene presets and the built-in ones.
func (s *Scene) Config(spec ConfigSpec) (spring.Config, error) {
	return s.config(spec, map[string]bool{})
}

func (s *Scene) config(spec ConfigSpec, seen map[string]bool) (spring.Config, error) {
	var cfg spring.Config

	if spec.Preset != "" {
		base, err := s.preset(spec.Preset, seen)
		if err != nil {
			return spring.Config{}, err
		}
		cfg = base
	}

	if spec.Tension != 0 {
		cfg.Tension = spec.Tension
	}
	if spec.Friction != 0 {
		cfg.Friction = spec.Friction
	}
	if spec.Mass != 0 {
		cfg.Mass = spec.Mass
	}
	if spec.Velocity != 0 {
		cfg.Velocity = spec.Velocity
	}
	if spec.Clamp {
		cfg.Clamp = true
	}
	if spec.Precision != 0 {
		cfg.Precision = spec.Precision
	}
	if spec.Duration != 0 {
		cfg.Duration = spec.Duration
	}
	if spec.Decay != 0 {
		cfg.Decay = spec.Decay
	}
	if spec.Easing != "" {
		fn, ok := interp.Easing(spec.Easing)
		if !ok {
			return spring.Config{}, fmt.Errorf("%w: %s", ErrUnknownEasing, spec.Easing)
		}
		cfg.Easing = fn
	}

	return cfg, nil
}

func (s *Scene) preset(name string, seen map[string]bool) (spring.Config, error) {
	if spec, ok := s.Presets[name]; ok {
		if seen[name] {
			return spring.Config{}, fmt.Errorf("%w: %s refers to itself", ErrUnknownPreset, name)
		}
		seen[name] = true
		return s.config(spec, seen)
	}
	if cfg, ok := spring.Presets[name]; ok {
		return cfg, nil
	}
	return spring.Config{}, fmt.Errorf("%w: %s", ErrUnknownPreset, name)
}

// props turns a controller spec into the props of its first update. Attach
// is left to Build.
func (s *Scene) props(cs ControllerSpec) (spring.Props, error) {
	p := spring.Props{
		From:      cs.From,
		To:        cs.To,
		Delay:     cs.Delay,
		Immediate: cs.Immediate,
		Reverse:   cs.Reverse,
	}

	for _, bundle := range cs.Sequence {
		p.Sequence = append(p.Sequence, bundle)
	}

	if cs.Delays != nil {
		delays, fallback := cs.Delays, cs.Delay
		p.DelayFn = func(key string) time.Duration {
			if d, ok := delays[key]; ok {
				return d
			}
			return fallback
		}
	}

	spec := ConfigSpec{Preset: cs.Preset}
	if cs.Config != nil {
		spec = *cs.Config
		if spec.Preset == "" {
			spec.Preset = cs.Preset
		}
	}
	cfg, err := s.Config(spec)
	if err != nil {
		return spring.Props{}, err
	}
	p.Config = cfg

	for _, cspec := range cs.Configs {
		cfg, err := s.Config(cspec)
		if err != nil {
			return spring.Props{}, err
		}
		p.Configs = append(p.Configs, cfg)
	}

	return p, nil
}

func (d DerivedSpec) calc() (interp.Func, error) {
	if d.Name == "" || d.From == "" {
		return nil, fmt.Errorf("%w: name and from are required", ErrDerived)
	}

	if d.Expr != "" {
		fn, err := interp.Expr(d.Expr)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrDerived, d.Name, err)
		}
		return fn, nil
	}

	cfg := interp.Config{Range: d.Range, Output: d.Output}
	if d.Extrapolate != "" {
		e, err := interp.ParseExtrapolate(d.Extrapolate)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrDerived, d.Name, err)
		}
		cfg.Extrapolate = e
	}
	if d.Easing != "" {
		fn, ok := interp.Easing(d.Easing)
		if !ok {
			return nil, fmt.Errorf("%w: %s: %w: %s", ErrDerived, d.Name, ErrUnknownEasing, d.Easing)
		}
		cfg.Easing = fn
	}
	if d.ColorSpace != "" {
		cs, err := interp.ParseColorSpace(d.ColorSpace)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrDerived, d.Name, err)
		}
		cfg.ColorSpace = cs
	}

	fn, err := interp.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDerived, d.Name, err)
	}
	return fn, nil
}
