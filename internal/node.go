package internal

import "fmt"

// NodeID is a handle into a Graph. The zero value never refers to a node.
type NodeID struct {
	index uint32
	gen   uint32
}

// Host is the consumer handle used for edges held by the host (a binding
// layer outside the graph).
var Host = NodeID{index: ^uint32(0), gen: ^uint32(0)}

func (id NodeID) IsZero() bool {
	return id == NodeID{}
}

func (id NodeID) String() string {
	if id == Host {
		return "node(host)"
	}
	return fmt.Sprintf("node(%d:%d)", id.index, id.gen)
}

// Hooks receives the lifecycle transitions of a node. Attach is called when
// the node gains its first consumer, Detach when it loses its last one.
type Hooks interface {
	Attach()
	Detach()
}

type slot struct {
	hooks Hooks
	gen   uint32

	// handles of the nodes consuming this one, in insertion order
	consumers []NodeID
}

func (s *slot) removeConsumer(id NodeID) bool {
	for i, c := range s.consumers {
		if c == id {
			s.consumers = append(s.consumers[:i], s.consumers[i+1:]...)
			return true
		}
	}

	return false
}
