package scene

import (
	"maps"

	"github.com/AnatoleLucet/spring"
	"github.com/AnatoleLucet/spring/interp"
	"github.com/AnatoleLucet/spring/render"
)

// Player holds the controllers built from a scene.
type Player struct {
	controllers []*spring.Controller
	byID        map[string]*spring.Controller
	derived     map[string][]*derived
}

type derived struct {
	spec DerivedSpec
	calc interp.Func

	source spring.NodeID
	node   *spring.Interpolation
}

// Build creates and updates one controller per spec. opts apply to every
// controller; their ids come from the scene.
func Build(s *Scene, opts ...spring.Option) (*Player, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	p := &Player{
		byID:    make(map[string]*spring.Controller, len(s.Controllers)),
		derived: make(map[string][]*derived),
	}

	for _, cs := range s.Controllers {
		c := spring.NewController(append(opts[:len(opts):len(opts)], spring.WithID(cs.ID))...)

		props, err := s.props(cs)
		if err != nil {
			return nil, err
		}
		if cs.Attach != "" {
			target := p.byID[cs.Attach]
			props.Attach = func(*spring.Controller) *spring.Controller { return target }
		}
		c.Update(props)

		for _, spec := range cs.Derived {
			calc, err := spec.calc()
			if err != nil {
				return nil, err
			}
			p.derived[cs.ID] = append(p.derived[cs.ID], &derived{spec: spec, calc: calc})
		}

		p.controllers = append(p.controllers, c)
		p.byID[cs.ID] = c
	}

	return p, nil
}

func (p *Player) Controllers() []*spring.Controller {
	return append([]*spring.Controller(nil), p.controllers...)
}

func (p *Player) Controller(id string) (*spring.Controller, bool) {
	c, ok := p.byID[id]
	return c, ok
}

// Start starts every controller in scene order. onDone is called once the
// first queued entry of every controller reported back; later delayed
// entries are not waited for.
func (p *Player) Start(onDone func(finished bool)) {
	pending := len(p.controllers)
	all := true

	for _, c := range p.controllers {
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
}

// Values returns the values of controller id, derived ones included.
func (p *Player) Values(id string) spring.Values {
	c, ok := p.byID[id]
	if !ok {
		return nil
	}
	values := c.Snapshot()
	p.addDerived(id, c, values)
	return values
}

// Renderer wraps next so that frames carry the derived values too.
func (p *Player) Renderer(next spring.Renderer) spring.Renderer {
	return render.Func(func(id string, values map[string]any) {
		c, ok := p.byID[id]
		if ok && len(p.derived[id]) > 0 {
			values = maps.Clone(values)
			p.addDerived(id, c, values)
		}
		next.Render(id, values)
	})
}

func (p *Player) addDerived(id string, c *spring.Controller, values map[string]any) {
	nodes := c.Values()

	for _, d := range p.derived[id] {
		source, ok := nodes[d.spec.From]
		if !ok {
			continue
		}

		// the key got new nodes, follow them
		if d.node == nil || d.source != source.ID() {
			d.node = spring.To(source, d.calc)
			d.source = source.ID()
		}
		values[d.spec.Name] = d.node.Value()
	}
}
