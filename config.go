package spring

import (
	"reflect"
	"time"
)

const (
	defaultTension   = 170
	defaultFriction  = 26
	defaultMass      = 1
	defaultPrecision = 0.01
)

// Config describes how one key animates. Zero fields take their defaults:
// tension 170, friction 26, mass 1, precision 0.01, no clamping, no initial
// velocity, linear easing. A positive Duration switches from the spring to
// an eased tween, a positive Decay to an exponential decay driven by Velocity.
type Config struct {
	Tension   float64
	Friction  float64
	Mass      float64
	Velocity  float64
	Clamp     bool
	Precision float64

	Duration time.Duration
	Easing   func(float64) float64

	// Decay is the per-millisecond velocity retention, 0.998 is a good start.
	// Decaying keys read Velocity in units per millisecond, springs in units
	// per second.
	Decay float64
}

var (
	DefaultConfig = Config{Tension: 170, Friction: 26}
	Gentle        = Config{Tension: 120, Friction: 14}
	Wobbly        = Config{Tension: 180, Friction: 12}
	Stiff         = Config{Tension: 210, Friction: 20}
	Slow          = Config{Tension: 280, Friction: 60}
	Molasses      = Config{Tension: 280, Friction: 120}
)

// Presets indexes the named configs.
var Presets = map[string]Config{
	"default":  DefaultConfig,
	"gentle":   Gentle,
	"wobbly":   Wobbly,
	"stiff":    Stiff,
	"slow":     Slow,
	"molasses": Molasses,
}

func (c Config) IsZero() bool {
	return c.Tension == 0 && c.Friction == 0 && c.Mass == 0 &&
		c.Velocity == 0 && !c.Clamp && c.Precision == 0 &&
		c.Duration == 0 && c.Easing == nil && c.Decay == 0
}

// resolved fills in the defaults.
func (c Config) resolved() Config {
	if c.Tension == 0 {
		c.Tension = defaultTension
	}
	if c.Friction == 0 {
		c.Friction = defaultFriction
	}
	if c.Mass == 0 {
		c.Mass = defaultMass
	}
	if c.Precision == 0 {
		c.Precision = defaultPrecision
	}
	if c.Easing == nil {
		c.Easing = linear
	}
	return c
}

func (c Config) equal(o Config) bool {
	return c.Tension == o.Tension &&
		c.Friction == o.Friction &&
		c.Mass == o.Mass &&
		c.Velocity == o.Velocity &&
		c.Clamp == o.Clamp &&
		c.Precision == o.Precision &&
		c.Duration == o.Duration &&
		c.Decay == o.Decay &&
		sameFunc(c.Easing, o.Easing)
}

func sameFunc(a, b func(float64) float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}

func linear(t float64) float64 { return t }
