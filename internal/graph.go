package internal

import "iter"

// Graph is an arena of animated nodes. Nodes reference each other by handle
// only, so a consumer edge never keeps a node reachable by itself.
type Graph struct {
	slots []slot
	free  []uint32
}

func NewGraph() *Graph {
	return &Graph{
		// index 0 is reserved so the zero NodeID stays invalid
		slots: make([]slot, 1, 64),
	}
}

// Add stores hooks in a new slot and returns its handle.
func (g *Graph) Add(hooks Hooks) NodeID {
	if n := len(g.free); n > 0 {
		index := g.free[n-1]
		g.free = g.free[:n-1]

		s := &g.slots[index]
		s.hooks = hooks
		return NodeID{index: index, gen: s.gen}
	}

	g.slots = append(g.slots, slot{hooks: hooks, gen: 1})
	return NodeID{index: uint32(len(g.slots) - 1), gen: 1}
}

func (g *Graph) lookup(id NodeID) *slot {
	if id.index == 0 || int(id.index) >= len(g.slots) {
		return nil
	}

	s := &g.slots[id.index]
	if s.gen != id.gen || s.hooks == nil {
		return nil
	}

	return s
}

// Hooks returns the hooks stored under id, or nil for a stale handle.
func (g *Graph) Hooks(id NodeID) Hooks {
	s := g.lookup(id)
	if s == nil {
		return nil
	}
	return s.hooks
}

// AddChild registers child as a consumer of parent. The parent is attached
// when this is its first consumer.
func (g *Graph) AddChild(parent, child NodeID) {
	s := g.lookup(parent)
	if s == nil {
		return
	}

	s.consumers = append(s.consumers, child)
	if len(s.consumers) == 1 {
		s.hooks.Attach()
	}
}

// RemoveChild drops one consumer edge from parent to child. The parent is
// detached when its last consumer goes away.
func (g *Graph) RemoveChild(parent, child NodeID) {
	s := g.lookup(parent)
	if s == nil {
		return
	}

	if !s.removeConsumer(child) {
		return
	}

	if len(s.consumers) == 0 {
		s.hooks.Detach()
	}
}

// Retain marks id as used by the host.
func (g *Graph) Retain(id NodeID) { g.AddChild(id, Host) }

// Release drops a host edge added with Retain.
func (g *Graph) Release(id NodeID) { g.RemoveChild(id, Host) }

// Live reports whether id has at least one consumer.
func (g *Graph) Live(id NodeID) bool {
	s := g.lookup(id)
	return s != nil && len(s.consumers) > 0
}

// Consumers returns an iterator over the consumers of id.
func (g *Graph) Consumers(id NodeID) iter.Seq[NodeID] {
	return func(yield func(NodeID) bool) {
		s := g.lookup(id)
		if s == nil {
			return
		}

		for _, c := range s.consumers {
			if !yield(c) {
				return
			}
		}
	}
}

// Free recycles the slot of id. Nodes that still have consumers are kept.
func (g *Graph) Free(id NodeID) bool {
	s := g.lookup(id)
	if s == nil || len(s.consumers) > 0 {
		return false
	}

	s.hooks = nil
	s.consumers = nil
	s.gen++
	g.free = append(g.free, id.index)

	return true
}

// Len returns the number of nodes currently stored.
func (g *Graph) Len() int {
	return len(g.slots) - 1 - len(g.free)
}
