package spring

import (
	"time"

	"github.com/AnatoleLucet/spring/internal"
)

// Value is a primitive animated value: a number (or a plain string for
// goals that cannot be animated) plus the physics state the loop advances.
type Value struct {
	node

	value any

	startPosition float64
	lastPosition  float64
	lastVelocity  float64
	// zero until the first physics step, velocity is unset while it is zero
	lastTime  time.Time
	startTime time.Time
	done      bool

	// results of consumers computed from this value, dropped on every change
	cache map[internal.NodeID]any
}

// NewValue creates a primitive value in the graph of the calling goroutine.
func NewValue(initial any) *Value {
	return newValue(internal.GetRuntime().Graph, initial)
}

func newValue(g *internal.Graph, initial any) *Value {
	v := &Value{
		cache: make(map[internal.NodeID]any),
	}
	v.g = g
	v.id = g.Add(v)
	v.set(initial)

	f := v.Float()
	v.startPosition = f
	v.lastPosition = f
	return v
}

func (v *Value) Value() any { return v.value }

func (v *Value) AnimatedValue() any { return v.value }

// Float returns the value as a number, 0 for strings.
func (v *Value) Float() float64 {
	f, _ := toFloat(v.value)
	return f
}

// SetValue sets the current value without touching the animation state.
func (v *Value) SetValue(x any) {
	v.set(x)
}

func (v *Value) set(x any) {
	if f, ok := toFloat(x); ok {
		x = f
	}
	v.value = x
	clear(v.cache)
}

// Done reports whether the value reached its goal.
func (v *Value) Done() bool { return v.done }

// Velocity returns the last velocity computed by the spring, in units per second.
func (v *Value) Velocity() float64 { return v.lastVelocity }

// reset prepares the value for a new animation starting at now. The
// velocity and last step time survive when keep is set.
func (v *Value) reset(now time.Time, keep bool) {
	f := v.Float()
	v.startPosition = f
	v.lastPosition = f
	if !keep {
		v.lastVelocity = 0
		v.lastTime = time.Time{}
	}
	v.startTime = now
	v.done = false
	clear(v.cache)
}

func (v *Value) leaves(dst []*Value) []*Value {
	return append(dst, v)
}

// Interpolate derives a node from this value.
func (v *Value) Interpolate(cfg InterpolationConfig) (*Interpolation, error) {
	return Interpolate(v, cfg)
}

// To derives a node from this value through fn.
func (v *Value) To(fn func(inputs ...any) any) *Interpolation {
	return To(v, fn)
}

// ValueArray is a fixed-length numeric vector of primitive values.
type ValueArray struct {
	ArrayNode
}

func NewValueArray(initial []float64) *ValueArray {
	return newValueArray(internal.GetRuntime().Graph, initial)
}

func newValueArray(g *internal.Graph, initial []float64) *ValueArray {
	payload := make([]any, len(initial))
	for i, f := range initial {
		payload[i] = newValue(g, f)
	}

	a := &ValueArray{}
	a.payload = payload
	a.g = g
	a.id = g.Add(a)
	return a
}

// Value returns the current vector.
func (a *ValueArray) Value() any {
	out := make([]float64, len(a.payload))
	for i, m := range a.payload {
		out[i] = m.(*Value).Float()
	}
	return out
}

func (a *ValueArray) AnimatedValue() any { return a.Value() }

// Values returns the primitive values of the vector.
func (a *ValueArray) Values() []*Value {
	out := make([]*Value, len(a.payload))
	for i, m := range a.payload {
		out[i] = m.(*Value)
	}
	return out
}

// SetValue sets every component from a vector of the same length. Extra
// or missing components are ignored.
func (a *ValueArray) SetValue(x any) {
	vec, ok := toVector(x)
	if !ok {
		return
	}
	for i, v := range a.Values() {
		if i < len(vec) {
			v.set(vec[i])
		}
	}
}

func (a *ValueArray) Len() int { return len(a.payload) }
