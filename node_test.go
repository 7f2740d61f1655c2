package spring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNodes(t *testing.T) {
	t.Run("arrays resolve members and constants", func(t *testing.T) {
		g := NewGraph()
		x := newValue(g, 1)
		a := NewArray(x, "px", 2)

		assert.Equal(t, []any{1.0, "px", 2}, a.Value())
		assert.Equal(t, []any{1.0}, a.AnimatedValue())

		x.SetValue(5)
		assert.Equal(t, []any{5.0, "px", 2}, a.Value())
	})

	t.Run("objects resolve members and constants", func(t *testing.T) {
		g := NewGraph()
		o := NewObject(map[string]any{"x": newValue(g, 1), "unit": "px"})

		assert.Equal(t, map[string]any{"x": 1.0, "unit": "px"}, o.Value())
		assert.Equal(t, map[string]any{"x": 1.0}, o.AnimatedValue())
	})

	t.Run("object animated values are cached until a leaf changes", func(t *testing.T) {
		g := NewGraph()
		x := newValue(g, 1)
		y := newValue(g, 2)
		o := NewObject(map[string]any{"x": x, "y": y})

		first := o.AnimatedValue().(map[string]any)
		first["marker"] = true
		assert.Equal(t, true, o.AnimatedValue().(map[string]any)["marker"])

		y.SetValue(3)
		assert.Equal(t, map[string]any{"x": 1.0, "y": 3.0}, o.AnimatedValue())
	})

	t.Run("retaining a composite attaches it to its members", func(t *testing.T) {
		g := NewGraph()
		x := newValue(g, 0)
		y := newValue(g, 0)
		a := NewArray(x, y)

		assert.False(t, Live(x))

		Retain(a)
		assert.True(t, Live(a))
		assert.True(t, Live(x))
		assert.True(t, Live(y))

		Release(a)
		assert.False(t, Live(a))
		assert.False(t, Live(x))
		assert.False(t, Live(y))
	})

	t.Run("members shared by two composites stay attached until both release", func(t *testing.T) {
		g := NewGraph()
		x := newValue(g, 0)
		a := NewArray(x)
		o := NewObject(map[string]any{"x": x})

		Retain(a)
		Retain(o)
		Release(a)
		assert.True(t, Live(x))

		Release(o)
		assert.False(t, Live(x))
	})

	t.Run("explicit edges", func(t *testing.T) {
		g := NewGraph()
		x := newValue(g, 0)
		y := newValue(g, 0)

		AddChild(x, y)
		assert.True(t, Live(x))
		assert.False(t, Live(y))

		RemoveChild(x, y)
		assert.False(t, Live(x))
	})

	t.Run("value arrays hold one value per component", func(t *testing.T) {
		g := NewGraph()
		v := newValueArray(g, []float64{1, 2, 3})

		assert.Equal(t, 3, v.Len())
		assert.Equal(t, []float64{1, 2, 3}, v.Value())

		v.SetValue([]int{4, 5})
		assert.Equal(t, []float64{4, 5, 3}, v.Value())
		assert.Len(t, v.leaves(nil), 3)
	})

	t.Run("values normalize numbers to float64", func(t *testing.T) {
		g := NewGraph()
		v := newValue(g, int64(3))

		assert.Equal(t, 3.0, v.Value())
		assert.Equal(t, 3.0, v.Float())

		v.SetValue("auto")
		assert.Equal(t, "auto", v.Value())
		assert.Equal(t, 0.0, v.Float())
	})
}
