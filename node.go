package spring

import (
	"github.com/AnatoleLucet/spring/internal"
)

// NodeID is the handle of a node inside its graph.
type NodeID = internal.NodeID

// Node is a unit of the animated graph: a primitive value, a composite of
// other nodes, or a value computed from other nodes.
type Node interface {
	ID() NodeID

	// Value resolves the node into plain values.
	Value() any
	// AnimatedValue is like Value but leaves out constant payload members.
	AnimatedValue() any

	graph() *internal.Graph
	leaves(dst []*Value) []*Value
}

type node struct {
	id internal.NodeID
	g  *internal.Graph
}

func (n *node) ID() NodeID { return n.id }

func (n *node) graph() *internal.Graph { return n.g }

func (n *node) Attach() {}

func (n *node) Detach() {}

// graphOf picks the graph of the first node found in members, falling back
// to the graph of the calling goroutine.
func graphOf(members []any) *internal.Graph {
	for _, m := range members {
		if n, ok := m.(Node); ok {
			return n.graph()
		}
	}
	return internal.GetRuntime().Graph
}

func resolve(member any, animated bool) any {
	n, ok := member.(Node)
	if !ok {
		return member
	}
	if animated {
		return n.AnimatedValue()
	}
	return n.Value()
}

// ArrayNode is an ordered, fixed-size composite of nodes and constants.
type ArrayNode struct {
	node

	payload []any
}

// NewArray creates an array node over members, which may mix nodes and
// plain values.
func NewArray(members ...any) *ArrayNode {
	a := &ArrayNode{payload: members}
	a.g = graphOf(members)
	a.id = a.g.Add(a)
	return a
}

// Payload returns the members of the array.
func (a *ArrayNode) Payload() []any { return a.payload }

func (a *ArrayNode) Value() any {
	out := make([]any, len(a.payload))
	for i, m := range a.payload {
		out[i] = resolve(m, false)
	}
	return out
}

func (a *ArrayNode) AnimatedValue() any {
	out := make([]any, 0, len(a.payload))
	for _, m := range a.payload {
		if n, ok := m.(Node); ok {
			out = append(out, n.AnimatedValue())
		}
	}
	return out
}

// Attach registers the array as a consumer of each member node.
func (a *ArrayNode) Attach() {
	for _, m := range a.payload {
		if n, ok := m.(Node); ok {
			a.g.AddChild(n.ID(), a.id)
		}
	}
}

func (a *ArrayNode) Detach() {
	for _, m := range a.payload {
		if n, ok := m.(Node); ok {
			a.g.RemoveChild(n.ID(), a.id)
		}
	}
}

func (a *ArrayNode) leaves(dst []*Value) []*Value {
	for _, m := range a.payload {
		if n, ok := m.(Node); ok {
			dst = n.leaves(dst)
		}
	}
	return dst
}

// Interpolate derives a node from the members of the array.
func (a *ArrayNode) Interpolate(cfg InterpolationConfig) (*Interpolation, error) {
	return Interpolate(a, cfg)
}

// To derives a node from the members of the array through fn.
func (a *ArrayNode) To(fn func(inputs ...any) any) *Interpolation {
	return To(a, fn)
}

// ObjectNode is a keyed composite of nodes and constants, typically the
// bundle of props a host binds to one element.
type ObjectNode struct {
	node

	payload map[string]any
}

func NewObject(payload map[string]any) *ObjectNode {
	members := make([]any, 0, len(payload))
	for _, m := range payload {
		members = append(members, m)
	}

	o := &ObjectNode{payload: payload}
	o.g = graphOf(members)
	o.id = o.g.Add(o)
	return o
}

func (o *ObjectNode) Payload() map[string]any { return o.payload }

func (o *ObjectNode) Value() any {
	out := make(map[string]any, len(o.payload))
	for k, m := range o.payload {
		out[k] = resolve(m, false)
	}
	return out
}

// AnimatedValue resolves only the node members. The result is cached on the
// primitive leaves underneath and reused until one of them changes.
func (o *ObjectNode) AnimatedValue() any {
	leaves := o.leaves(nil)
	if len(leaves) > 0 {
		if cached, ok := leaves[0].cache[o.id]; ok && o.cachedOnAll(leaves) {
			return cached
		}
	}

	out := make(map[string]any, len(o.payload))
	for k, m := range o.payload {
		if n, ok := m.(Node); ok {
			out[k] = n.AnimatedValue()
		}
	}

	for _, l := range leaves {
		l.cache[o.id] = out
	}
	return out
}

func (o *ObjectNode) cachedOnAll(leaves []*Value) bool {
	for _, l := range leaves {
		if _, ok := l.cache[o.id]; !ok {
			return false
		}
	}
	return true
}

func (o *ObjectNode) Attach() {
	for _, m := range o.payload {
		if n, ok := m.(Node); ok {
			o.g.AddChild(n.ID(), o.id)
		}
	}
}

func (o *ObjectNode) Detach() {
	for _, m := range o.payload {
		if n, ok := m.(Node); ok {
			o.g.RemoveChild(n.ID(), o.id)
		}
	}
}

func (o *ObjectNode) leaves(dst []*Value) []*Value {
	for _, m := range o.payload {
		if n, ok := m.(Node); ok {
			dst = n.leaves(dst)
		}
	}
	return dst
}

// Retain marks n as used by the host, attaching it (and transitively its
// members) if it had no consumer yet.
func Retain(n Node) { n.graph().Retain(n.ID()) }

// Release undoes Retain.
func Release(n Node) { n.graph().Release(n.ID()) }

// Live reports whether anything consumes n.
func Live(n Node) bool { return n.graph().Live(n.ID()) }

// AddChild registers child as a consumer of parent.
func AddChild(parent, child Node) { parent.graph().AddChild(parent.ID(), child.ID()) }

// RemoveChild drops one consumer edge from parent to child.
func RemoveChild(parent, child Node) { parent.graph().RemoveChild(parent.ID(), child.ID()) }
