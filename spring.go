// Package spring animates named values with spring physics.
//
// A Controller owns a set of keys. Update queues goals for them, Start
// plays the queue, and a Loop advances every started controller once per
// tick until all of its keys have settled. The values live in a graph of
// nodes: primitive values, arrays and objects of nodes, and interpolations
// computed from other nodes, so derived values never lag behind.
//
//	c := spring.NewController()
//	c.Update(spring.Props{From: spring.Values{"x": 0}, To: spring.Values{"x": 10}})
//	c.Start(nil)
//	for !spring.DefaultLoop().Idle() {
//		spring.Tick()
//	}
package spring

import (
	"github.com/AnatoleLucet/spring/internal"
)

type (
	Loop        = internal.Loop
	LoopOption  = internal.LoopOption
	Graph       = internal.Graph
	Clock       = internal.Clock
	ManualClock = internal.ManualClock
	Renderer    = internal.Renderer
)

func NewLoop(opts ...LoopOption) *Loop {
	return internal.NewLoop(opts...)
}

func NewGraph() *Graph {
	return internal.NewGraph()
}

var (
	WithClock      = internal.WithClock
	WithRenderer   = internal.WithRenderer
	WithLogger     = internal.WithLogger
	NewManualClock = internal.NewManualClock
	SystemClock    = internal.SystemClock
)

// DefaultLoop returns the loop of the calling goroutine.
func DefaultLoop() *Loop {
	return internal.GetRuntime().Loop
}

// Tick advances the loop of the calling goroutine by one frame.
func Tick() {
	DefaultLoop().Tick()
}

// Reset drops the graph and loop of the calling goroutine.
func Reset() {
	internal.DropRuntime()
}
