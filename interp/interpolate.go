// Package interp builds pure functions that map an input domain onto an
// output range of numbers, colors or string templates.
package interp

import (
	"fmt"
	"math"
	"strconv"
)

// Func maps one or more inputs to an output value. Range based
// interpolators only look at the first input.
type Func func(inputs ...any) any

// Extrapolate decides what happens to inputs outside of the range.
type Extrapolate int

const (
	// Inherit uses Config.Extrapolate, only meaningful for the left/right overrides.
	Inherit Extrapolate = iota
	// Extend continues the nearest segment linearly.
	Extend
	// Clamp pins the output to the nearest boundary.
	Clamp
	// Identity returns the input unchanged.
	Identity
)

func (e Extrapolate) String() string {
	switch e {
	case Inherit:
		return "inherit"
	case Extend:
		return "extend"
	case Clamp:
		return "clamp"
	case Identity:
		return "identity"
	default:
		return "unknown"
	}
}

// ParseExtrapolate accepts the names returned by String.
func ParseExtrapolate(s string) (Extrapolate, error) {
	switch s {
	case "", "inherit":
		return Inherit, nil
	case "extend":
		return Extend, nil
	case "clamp":
		return Clamp, nil
	case "identity":
		return Identity, nil
	}
	return Inherit, fmt.Errorf("unknown extrapolation %q", s)
}

// Config describes a range interpolation.
type Config struct {
	// Range is the input domain, [0, 1] when empty.
	Range []float64
	// Output holds one value per Range entry: all numbers, or strings.
	Output []any

	Extrapolate      Extrapolate
	ExtrapolateLeft  Extrapolate
	ExtrapolateRight Extrapolate

	// Easing is applied to the normalized position inside a segment.
	Easing func(float64) float64
	// Map is applied to the raw input before anything else.
	Map func(float64) float64

	// ColorSpace selects how color outputs are blended.
	ColorSpace ColorSpace
}

func (c Config) left() Extrapolate {
	if c.ExtrapolateLeft != Inherit {
		return c.ExtrapolateLeft
	}
	if c.Extrapolate != Inherit {
		return c.Extrapolate
	}
	return Extend
}

func (c Config) right() Extrapolate {
	if c.ExtrapolateRight != Inherit {
		return c.ExtrapolateRight
	}
	if c.Extrapolate != Inherit {
		return c.Extrapolate
	}
	return Extend
}

func (c Config) validate() error {
	if len(c.Range) < 2 {
		return ErrRangeTooShort
	}
	if len(c.Range) != len(c.Output) {
		return fmt.Errorf("%w: %d range values, %d outputs", ErrRangeMismatch, len(c.Range), len(c.Output))
	}
	for i := 1; i < len(c.Range); i++ {
		if !(c.Range[i] > c.Range[i-1]) {
			return fmt.Errorf("%w: %v", ErrRangeNotMonotonic, c.Range)
		}
	}
	return nil
}

// New builds the interpolator described by cfg.
func New(cfg Config) (Func, error) {
	if len(cfg.Range) == 0 {
		cfg.Range = []float64{0, 1}
	}
	if cfg.Easing == nil {
		cfg.Easing = linear
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	numbers := make([]float64, len(cfg.Output))
	numeric := true
	for i, out := range cfg.Output {
		switch v := out.(type) {
		case string:
			numeric = false
		default:
			f, ok := toFloat(v)
			if !ok {
				return nil, fmt.Errorf("%w: got %T", ErrOutputType, out)
			}
			numbers[i] = f
		}
	}

	if numeric {
		fn := numberInterpolator(cfg, numbers)
		return func(inputs ...any) any {
			input, ok := first(inputs)
			if !ok {
				return firstRaw(inputs)
			}
			return fn(input)
		}, nil
	}

	return stringInterpolator(cfg)
}

// Must is like New but panics on an invalid config.
func Must(cfg Config) Func {
	fn, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return fn
}

// Range is a shorthand for New(Config{Range: r, Output: out}).
func Range(r []float64, out ...any) (Func, error) {
	return New(Config{Range: r, Output: out})
}

// Fn wraps an explicit mapping function.
func Fn(fn func(inputs ...any) any) Func {
	return Func(fn)
}

func numberInterpolator(cfg Config, output []float64) func(float64) float64 {
	left, right := cfg.left(), cfg.right()

	return func(input float64) float64 {
		i := findRange(input, cfg.Range)
		return interpolate(
			input,
			cfg.Range[i], cfg.Range[i+1],
			output[i], output[i+1],
			cfg.Easing, left, right, cfg.Map,
		)
	}
}

// findRange returns the index of the segment whose lower bound is the
// greatest bound not above input, limited to the edge segments.
func findRange(input float64, r []float64) int {
	i := 1
	for ; i < len(r)-1; i++ {
		if r[i] > input {
			break
		}
	}
	return i - 1
}

func interpolate(
	input, inMin, inMax, outMin, outMax float64,
	easing func(float64) float64,
	left, right Extrapolate,
	mapFn func(float64) float64,
) float64 {
	result := input
	if mapFn != nil {
		result = mapFn(input)
	}

	if result < inMin {
		switch left {
		case Identity:
			return result
		case Clamp:
			result = inMin
		}
	}

	if result > inMax {
		switch right {
		case Identity:
			return result
		case Clamp:
			result = inMax
		}
	}

	if outMin == outMax {
		return outMin
	}

	if inMin == inMax {
		if input <= inMin {
			return outMin
		}
		return outMax
	}

	switch {
	case math.IsInf(inMin, -1):
		result = -result
	case math.IsInf(inMax, 1):
		result = result - inMin
	default:
		result = (result - inMin) / (inMax - inMin)
	}

	result = easing(result)

	switch {
	case math.IsInf(outMin, -1):
		result = -result
	case math.IsInf(outMax, 1):
		result = result + outMin
	case result == 0:
		result = outMin
	case result == 1:
		result = outMax
	default:
		result = result*(outMax-outMin) + outMin
	}

	return result
}

func linear(t float64) float64 { return t }

func first(inputs []any) (float64, bool) {
	if len(inputs) == 0 {
		return 0, false
	}
	return toFloat(inputs[0])
}

func firstRaw(inputs []any) any {
	if len(inputs) == 0 {
		return nil
	}
	return inputs[0]
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}

// FormatNumber prints f the shortest way that round-trips.
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
