package spring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AnatoleLucet/spring/interp"
)

func TestInterpolation(t *testing.T) {
	t.Run("follows its parent on every read", func(t *testing.T) {
		g := NewGraph()
		x := newValue(g, 0)

		px, err := x.Interpolate(InterpolationConfig{Range: []float64{0, 1}, Output: []any{"0px", "100px"}})
		assert.NoError(t, err)
		assert.Equal(t, "0px", px.Value())

		x.SetValue(0.5)
		assert.Equal(t, "50px", px.Value())
	})

	t.Run("chains", func(t *testing.T) {
		g := NewGraph()
		x := newValue(g, 2)

		double := x.To(func(in ...any) any { return in[0].(float64) * 2 })
		label := double.To(func(in ...any) any { return interp.FormatNumber(in[0].(float64)) + "!" })

		assert.Equal(t, "4!", label.Value())

		x.SetValue(3)
		assert.Equal(t, "6!", label.Value())
	})

	t.Run("spreads vectors into one input per component", func(t *testing.T) {
		g := NewGraph()
		v := newValueArray(g, []float64{1, 2})

		sum := To(v, func(in ...any) any { return in[0].(float64) + in[1].(float64) })
		assert.Equal(t, 3.0, sum.Value())
	})

	t.Run("combines several parents", func(t *testing.T) {
		g := NewGraph()
		x := newValue(g, 1)
		y := newValue(g, 2)

		xy := Combine([]Node{x, y}, func(in ...any) any { return []any{in[1], in[0]} })
		assert.Equal(t, []any{2.0, 1.0}, xy.Value())
	})

	t.Run("rejects malformed configs", func(t *testing.T) {
		g := NewGraph()
		x := newValue(g, 0)

		_, err := Interpolate(x, InterpolationConfig{Range: []float64{0, 1, 2}, Output: []any{0, 1}})
		assert.ErrorIs(t, err, interp.ErrRangeMismatch)
	})

	t.Run("config can be swapped", func(t *testing.T) {
		g := NewGraph()
		x := newValue(g, 1)

		i, err := x.Interpolate(InterpolationConfig{Output: []any{0, 10}})
		assert.NoError(t, err)
		assert.Equal(t, 10.0, i.Value())

		assert.NoError(t, i.UpdateConfig(InterpolationConfig{Output: []any{0, 20}}))
		assert.Equal(t, 20.0, i.Value())
		assert.Equal(t, 10.0, i.Calc(0.5))
	})

	t.Run("retaining an interpolation attaches its parents", func(t *testing.T) {
		g := NewGraph()
		x := newValue(g, 1)
		i := x.To(func(in ...any) any { return in[0] })

		Retain(i)
		assert.True(t, Live(x))

		Release(i)
		assert.False(t, Live(x))
	})

	t.Run("binds to controller values", func(t *testing.T) {
		h := newHarness()
		c := h.controller()
		c.Update(Props{From: Values{"x": 0}, To: Values{"x": 1}}).Start(nil)

		pct, err := c.Values()["x"].(*Value).Interpolate(InterpolationConfig{Output: []any{"0%", "100%"}})
		assert.NoError(t, err)

		h.settle(t)
		assert.Equal(t, "100%", pct.Value())
	})
}
