package spring

import (
	"github.com/AnatoleLucet/spring/interp"
)

// InterpolationConfig describes a range interpolation, see interp.Config.
type InterpolationConfig = interp.Config

// Interpolation is a node computed from one or more parent nodes. It is
// evaluated on every read, so it never lags behind its parents.
type Interpolation struct {
	ArrayNode

	calc interp.Func
}

// Interpolate derives a node from parent using a range interpolation.
func Interpolate(parent Node, cfg InterpolationConfig) (*Interpolation, error) {
	calc, err := interp.New(cfg)
	if err != nil {
		return nil, err
	}
	return newInterpolation([]Node{parent}, calc), nil
}

// To derives a node from parent through fn.
func To(parent Node, fn func(inputs ...any) any) *Interpolation {
	return newInterpolation([]Node{parent}, interp.Fn(fn))
}

// Combine derives a node from several parents at once; fn receives their
// values in order.
func Combine(parents []Node, fn func(inputs ...any) any) *Interpolation {
	return newInterpolation(parents, interp.Fn(fn))
}

func newInterpolation(parents []Node, calc interp.Func) *Interpolation {
	i := &Interpolation{calc: calc}
	i.payload = parentPayload(parents)
	i.g = graphOf(i.payload)
	i.id = i.g.Add(i)
	return i
}

// parentPayload flattens a single array parent into its members so that
// an interpolation over a vector receives one input per component.
func parentPayload(parents []Node) []any {
	if len(parents) == 1 {
		switch p := parents[0].(type) {
		case *Interpolation:
		case *ValueArray:
			return append([]any(nil), p.payload...)
		case *ArrayNode:
			return append([]any(nil), p.payload...)
		}
	}

	payload := make([]any, len(parents))
	for i, p := range parents {
		payload[i] = p
	}
	return payload
}

func (i *Interpolation) inputs() []any {
	inputs := make([]any, len(i.payload))
	for k, m := range i.payload {
		inputs[k] = resolve(m, false)
	}
	return inputs
}

func (i *Interpolation) Value() any {
	return i.calc(i.inputs()...)
}

func (i *Interpolation) AnimatedValue() any {
	return i.Value()
}

// Calc runs the interpolator on explicit inputs.
func (i *Interpolation) Calc(inputs ...any) any {
	return i.calc(inputs...)
}

// UpdateConfig replaces the interpolator, keeping the parents.
func (i *Interpolation) UpdateConfig(cfg InterpolationConfig) error {
	calc, err := interp.New(cfg)
	if err != nil {
		return err
	}
	i.calc = calc
	return nil
}

// SetFunc replaces the interpolator with fn.
func (i *Interpolation) SetFunc(fn interp.Func) {
	i.calc = fn
}

// Interpolate chains a new interpolation from this one.
func (i *Interpolation) Interpolate(cfg InterpolationConfig) (*Interpolation, error) {
	return Interpolate(i, cfg)
}

// To chains a new node from this one through fn.
func (i *Interpolation) To(fn func(inputs ...any) any) *Interpolation {
	return To(i, fn)
}
