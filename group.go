package spring

import (
	"fmt"

	"github.com/google/uuid"
)

// Group drives several controllers with per-index props. In a trail, every
// controller after the first follows the values of the one before it.
type Group struct {
	id          string
	controllers []*Controller
	trail       bool
}

// NewGroup creates n controllers sharing opts. WithID names the group and
// the controllers become "<id>/<index>".
func NewGroup(n int, opts ...Option) *Group {
	probe := &Controller{}
	for _, opt := range opts {
		opt(probe)
	}

	g := &Group{id: probe.id}
	if g.id == "" {
		g.id = uuid.NewString()
	}

	g.controllers = make([]*Controller, n)
	for i := range n {
		id := WithID(fmt.Sprintf("%s/%d", g.id, i))
		g.controllers[i] = NewController(append(opts[:len(opts):len(opts)], id)...)
	}
	return g
}

// NewTrail creates a group where controller i is attached to controller i-1.
func NewTrail(n int, opts ...Option) *Group {
	g := NewGroup(n, opts...)
	g.trail = true
	return g
}

func (g *Group) ID() string { return g.id }

func (g *Group) Len() int { return len(g.controllers) }

func (g *Group) Controllers() []*Controller {
	return append([]*Controller(nil), g.controllers...)
}

func (g *Group) Controller(i int) *Controller {
	return g.controllers[i]
}

// Update updates every controller with the props returned for its index.
func (g *Group) Update(props func(i int) Props) *Group {
	for i, c := range g.controllers {
		p := props(i)
		if g.trail && i > 0 && p.Attach == nil {
			leader := g.controllers[i-1]
			p.Attach = func(*Controller) *Controller { return leader }
		}
		c.Update(p)
	}
	return g
}

// Start starts every controller. onDone, when set, is called once the first
// queued entry of every controller reported back; finished is false if any
// of them was stopped. Entries delayed past that point are not waited for.
func (g *Group) Start(onDone func(finished bool)) *Group {
	pending := len(g.controllers)
	all := true

	for _, c := range g.controllers {
		reported := false
		c.Start(func(finished bool) {
			if reported {
				return
			}
			reported = true
			all = all && finished

			pending--
			if pending == 0 && onDone != nil {
				onDone(all)
			}
		})
	}

	if len(g.controllers) == 0 && onDone != nil {
		onDone(true)
	}
	return g
}

func (g *Group) Stop(finished bool) *Group {
	for _, c := range g.controllers {
		c.Stop(finished)
	}
	return g
}

func (g *Group) Pause(finished bool) *Group {
	for _, c := range g.controllers {
		c.Pause(finished)
	}
	return g
}

// Destroy destroys every controller.
func (g *Group) Destroy() {
	for _, c := range g.controllers {
		c.Destroy()
	}
}

// Snapshot returns the values of every controller, by index.
func (g *Group) Snapshot() []Values {
	out := make([]Values, len(g.controllers))
	for i, c := range g.controllers {
		out[i] = c.Snapshot()
	}
	return out
}
