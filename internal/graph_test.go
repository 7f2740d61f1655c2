package internal

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recorder struct {
	name string
	log  *[]string
}

func (r *recorder) Attach() { *r.log = append(*r.log, r.name+" attach") }
func (r *recorder) Detach() { *r.log = append(*r.log, r.name+" detach") }

func TestGraph(t *testing.T) {
	t.Run("attaches on the first consumer only", func(t *testing.T) {
		log := []string{}
		g := NewGraph()

		a := g.Add(&recorder{"a", &log})
		b := g.Add(&recorder{"b", &log})
		c := g.Add(&recorder{"c", &log})

		g.AddChild(a, b)
		g.AddChild(a, c)

		assert.Equal(t, []string{"a attach"}, log)
		assert.Equal(t, []NodeID{b, c}, collect(g, a))
	})

	t.Run("detaches when the last consumer goes away", func(t *testing.T) {
		log := []string{}
		g := NewGraph()

		a := g.Add(&recorder{"a", &log})
		b := g.Add(&recorder{"b", &log})
		c := g.Add(&recorder{"c", &log})
		g.AddChild(a, b)
		g.AddChild(a, c)

		g.RemoveChild(a, b)
		assert.Equal(t, []string{"a attach"}, log)

		g.RemoveChild(a, c)
		assert.Equal(t, []string{"a attach", "a detach"}, log)
		assert.False(t, g.Live(a))
	})

	t.Run("ignores edges that do not exist", func(t *testing.T) {
		log := []string{}
		g := NewGraph()

		a := g.Add(&recorder{"a", &log})
		b := g.Add(&recorder{"b", &log})

		g.RemoveChild(a, b)
		assert.Empty(t, log)
	})

	t.Run("host edges keep nodes live", func(t *testing.T) {
		log := []string{}
		g := NewGraph()

		a := g.Add(&recorder{"a", &log})
		g.Retain(a)
		assert.True(t, g.Live(a))

		g.Release(a)
		assert.False(t, g.Live(a))
		assert.Equal(t, []string{"a attach", "a detach"}, log)
	})

	t.Run("frees only nodes without consumers", func(t *testing.T) {
		log := []string{}
		g := NewGraph()

		a := g.Add(&recorder{"a", &log})
		b := g.Add(&recorder{"b", &log})
		g.AddChild(a, b)

		assert.False(t, g.Free(a))
		assert.True(t, g.Free(b))
		assert.Equal(t, 1, g.Len())
	})

	t.Run("stale handles do not reach recycled slots", func(t *testing.T) {
		log := []string{}
		g := NewGraph()

		a := g.Add(&recorder{"a", &log})
		g.Free(a)
		b := g.Add(&recorder{"b", &log})

		assert.NotEqual(t, a, b)
		assert.Nil(t, g.Hooks(a))
		assert.NotNil(t, g.Hooks(b))

		g.Retain(a)
		assert.Empty(t, log)
	})

	t.Run("the zero handle is never valid", func(t *testing.T) {
		g := NewGraph()
		assert.True(t, NodeID{}.IsZero())
		assert.Nil(t, g.Hooks(NodeID{}))
		assert.Equal(t, "node(host)", Host.String())
		assert.Equal(t, "node(1:1)", fmt.Sprint(g.Add(&recorder{"a", &[]string{}})))
	})
}

func collect(g *Graph, id NodeID) []NodeID {
	out := []NodeID{}
	for c := range g.Consumers(id) {
		out = append(out, c)
	}
	return out
}
