package spring

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/AnatoleLucet/spring/internal"
	"github.com/AnatoleLucet/spring/interp"
)

// State of a controller.
type State int

const (
	Idle State = iota
	Running
	Queued
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Queued:
		return "queued"
	default:
		return "unknown"
	}
}

// entry is the animation state of one key.
type entry struct {
	name string
	kind goalKind

	// parent is the primitive (or vector) the loop animates. For
	// interpolated goals it is a 0..1 driver feeding interpolation.
	parent        Node
	interpolation Node
	animated      []*Value

	// one goal and one start per animated leaf; goals are numbers, strings
	// or the *Value of an attached controller
	toValues   []any
	fromValues []any

	previous  any
	config    Config
	resolved  Config
	immediate bool
}

func (e *entry) done() bool {
	for _, v := range e.animated {
		if !v.done {
			return false
		}
	}
	return true
}

// Controller owns a bundle of named animations.
type Controller struct {
	id    string
	loop  *internal.Loop
	graph *internal.Graph

	idle       bool
	hasChanged bool

	// guid is bumped by each Start that drains a queue; local is the value
	// of the latest one. Delayed and async work compare against guid.
	guid  int
	local int

	props  Props
	merged Values

	animations     map[string]*entry
	interpolations map[string]Node
	values         Values
	configs        []*entry

	listeners  []func(finished bool)
	queue      []Props
	localQueue []Props
}

type Option func(*Controller)

// WithLoop drives the controller with l instead of the loop of the calling goroutine.
func WithLoop(l *Loop) Option {
	return func(c *Controller) { c.loop = l }
}

// WithGraph stores the controller's nodes in g.
func WithGraph(g *Graph) Option {
	return func(c *Controller) { c.graph = g }
}

// WithID sets the id passed to the renderer.
func WithID(id string) Option {
	return func(c *Controller) { c.id = id }
}

func NewController(opts ...Option) *Controller {
	c := &Controller{
		idle:           true,
		merged:         Values{},
		animations:     make(map[string]*entry),
		interpolations: make(map[string]Node),
		values:         Values{},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.id == "" {
		c.id = uuid.NewString()
	}
	if c.loop == nil || c.graph == nil {
		r := internal.GetRuntime()
		if c.loop == nil {
			c.loop = r.Loop
		}
		if c.graph == nil {
			c.graph = r.Graph
		}
	}

	return c
}

func (c *Controller) ID() string { return c.id }

func (c *Controller) Loop() *Loop { return c.loop }

func (c *Controller) State() State {
	switch {
	case len(c.queue) > 0:
		return Queued
	case c.loop.Active(c) || !c.idle:
		return Running
	default:
		return Idle
	}
}

// Values returns the live node of every key, for binding.
func (c *Controller) Values() map[string]Node {
	return maps.Clone(c.interpolations)
}

// Snapshot returns the plain value of every key as of the last step.
func (c *Controller) Snapshot() Values {
	return maps.Clone(c.values)
}

// Update queues the goals of p and applies the rest of it right away.
// Each key of To gets its own delay; keys sharing a delay are merged into
// one entry. Sequence and Script updates are queued whole.
func (c *Controller) Update(p Props) *Controller {
	if c.loop.Stepping() {
		c.loop.Defer(func() { c.Update(p) })
		return c
	}

	rest := p.withoutGoals()

	if p.async() {
		op := p
		op.Delay = p.delayFor("")
		op.DelayFn = nil
		c.queue = append(c.queue, op)
	} else if p.To != nil {
		ops := make(map[time.Duration]*Props)
		var order []time.Duration

		for _, key := range sortedKeys(p.To) {
			delay := p.delayFor(key)

			op, ok := ops[delay]
			if !ok {
				next := rest
				next.Delay = delay
				next.To = Values{}
				op = &next
				ops[delay] = op
				order = append(order, delay)
			}
			op.To[key] = p.To[key]
		}

		c.queue = make([]Props, 0, len(order))
		for _, delay := range order {
			c.queue = append(c.queue, *ops[delay])
		}
	}

	slices.SortStableFunc(c.queue, func(a, b Props) int {
		return cmp.Compare(a.Delay, b.Delay)
	})

	c.diff(rest)
	return c
}

// Start runs the queue built by Update, or, when it is empty, registers the
// controller with the loop. onEnd is called with whether the animation
// finished rather than being stopped.
func (c *Controller) Start(onEnd func(finished bool)) *Controller {
	if c.loop.Stepping() {
		c.loop.Defer(func() { c.Start(onEnd) })
		return c
	}

	if len(c.queue) == 0 {
		if onEnd != nil {
			c.listeners = append(c.listeners, onEnd)
		}
		if c.props.OnStart != nil {
			c.props.OnStart()
		}
		c.loop.Start(c)
		return c
	}

	c.idle = false

	// an interrupted queue leaves its goals behind in merged
	for _, p := range c.localQueue {
		if p.From != nil {
			c.merged = layer(p.From, c.merged)
		}
		if p.To != nil {
			c.merged = layer(c.merged, p.To)
		}
	}

	c.guid++
	local := c.guid
	c.local = local

	queue := c.queue
	c.localQueue = queue
	c.queue = nil

	for i, p := range queue {
		last := i == len(queue)-1
		cb := func(finished bool) {
			if last && local == c.guid && finished {
				c.idle = true
				if c.props.OnRest != nil {
					c.props.OnRest(maps.Clone(c.merged))
				}
			}
			if onEnd != nil {
				onEnd(finished)
			}
		}

		run := func() {
			if p.async() {
				c.runAsync(p, cb)
			} else {
				c.diff(p).Start(cb)
			}
		}

		if p.Delay > 0 {
			c.loop.After(p.Delay, func() {
				if local == c.guid {
					run()
				}
			})
		} else {
			run()
		}
	}

	return c
}

// Stop resolves and clears the pending listeners. The controller stays
// registered with the loop.
func (c *Controller) Stop(finished bool) *Controller {
	listeners := c.listeners
	c.listeners = nil

	for _, l := range listeners {
		l(finished)
	}
	return c
}

// Pause releases the listeners and, if finished, removes the controller
// from the loop.
func (c *Controller) Pause(finished bool) *Controller {
	c.Stop(true)
	if finished {
		c.loop.Stop(c)
	}
	return c
}

// Destroy stops the controller and drops all of its state. Delayed entries
// and running sequences of the destroyed controller never resume. A
// destroyed controller can be updated again and starts from scratch.
func (c *Controller) Destroy() {
	c.guid++
	c.Stop(false)
	c.loop.Stop(c)

	for _, e := range c.animations {
		c.free(e)
	}

	c.props = Props{}
	c.merged = Values{}
	c.animations = make(map[string]*entry)
	c.interpolations = make(map[string]Node)
	c.values = Values{}
	c.configs = nil
	c.queue = nil
	c.localQueue = nil
	c.local = 0
	c.idle = true
}

func (c *Controller) free(e *entry) {
	if e.interpolation != e.parent {
		c.graph.Free(e.interpolation.ID())
	}
	c.graph.Free(e.parent.ID())
	for _, v := range e.animated {
		if v != e.parent {
			c.graph.Free(v.ID())
		}
	}
}

// runAsync plays the bundles of a Sequence or Script entry one by one. Each
// bundle starts on the tick after the previous one settled, unless a newer
// Start superseded this one.
func (c *Controller) runAsync(p Props, onEnd func(finished bool)) {
	local := c.local
	script := p.script()

	base := p.withoutGoals()
	base.Configs = nil

	var step func(i int)
	step = func(i int) {
		if local != c.guid {
			return
		}

		bundle, ok := script(i)
		if !ok {
			onEnd(true)
			return
		}

		fresh := base.with(bundle)
		if i < len(p.Configs) {
			fresh.Config = p.Configs[i]
			fresh.ConfigFn = nil
		}

		c.diff(fresh).Start(func(bool) {
			c.loop.Defer(func() { step(i + 1) })
		})
	}

	step(0)
}

// layer returns a copy of base with over written on top.
func layer(base, over Values) Values {
	out := make(Values, len(base)+len(over))
	maps.Copy(out, base)
	maps.Copy(out, over)
	return out
}

// diff reconciles the goals of p with the running animations.
func (c *Controller) diff(p Props) *Controller {
	c.props = c.props.merge(p)

	from, to := c.props.From, c.props.To
	if c.props.Reverse {
		from, to = to, from
	}

	// from seeds, what was already there stays, to overrides
	c.merged = layer(layer(from, c.merged), to)
	c.hasChanged = false

	var target *Controller
	if c.props.Attach != nil {
		target = c.props.Attach(c)
	}

	for _, name := range sortedKeys(c.merged) {
		c.diffKey(name, c.merged[name], from, target)
	}

	if c.hasChanged {
		c.publish()
	}
	return c
}

func (c *Controller) diffKey(name string, value any, from Values, target *Controller) {
	g := classify(value)

	e := c.animations[name]
	if e != nil && e.kind != g.kind {
		c.free(e)
		e = nil
	}

	fromValue := value
	if f, ok := from[name]; ok {
		fromValue = f
	}

	toConfig := c.props.configFor(name)
	goalValue := g.value()

	var toValue any = goalValue
	if g.kind == goalInterpolated {
		toValue = 1.0
	}
	if target != nil {
		if te, ok := target.animations[name]; ok && te.kind == g.kind {
			toValue = te.parent
		}
	}

	isFirst := e == nil
	isActive := !isFirst && !e.done()

	var currentValue any
	if !isFirst {
		currentValue = e.interpolation.Value()
	}

	currentDiffersFromGoal := !equal(goalValue, currentValue)
	hasNewGoal := isFirst || !equal(goalValue, e.previous)
	hasNewConfig := isFirst || !toConfig.equal(e.config)

	if !(c.props.Reset || (hasNewGoal && currentDiffersFromGoal) || hasNewConfig) {
		if !currentDiffersFromGoal {
			// the goal moved but the value is already there: settle silently
			if g.kind == goalInterpolated {
				e.parent.(*Value).set(1.0)
				e.interpolation.(*Interpolation).SetFunc(constant(goalValue))
			}
			for _, v := range e.animated {
				v.done = true
			}
			e.previous = goalValue
			c.hasChanged = true
		}
		return
	}

	next := &entry{name: name, kind: g.kind}

	switch g.kind {
	case goalNumber, goalPlain:
		if isFirst {
			next.parent = newValue(c.graph, fromValue)
		} else {
			next.parent = e.parent
		}
		next.interpolation = next.parent

	case goalVector:
		if isFirst {
			vec, ok := toVector(fromValue)
			if !ok {
				vec = g.vector
			}
			next.parent = newValueArray(c.graph, vec)
		} else {
			next.parent = e.parent
		}
		next.interpolation = next.parent

	case goalInterpolated:
		var prev any
		if !isFirst && !c.props.Reset {
			prev = e.interpolation.(*Interpolation).Calc(e.parent.Value())
		}
		if prev == nil {
			prev = fromValue
		}

		var driver *Value
		if isFirst {
			driver = newValue(c.graph, 0.0)
		} else {
			driver = e.parent.(*Value)
			driver.set(0.0)
		}
		next.parent = driver

		calc := stringRange(prev, g.text)
		if isFirst {
			next.interpolation = newInterpolation([]Node{driver}, calc)
		} else {
			ip := e.interpolation.(*Interpolation)
			ip.SetFunc(calc)
			next.interpolation = ip
		}
	}

	next.toValues = toArray(toValue)
	next.animated = next.parent.leaves(nil)

	if c.props.Reset && g.kind != goalInterpolated {
		setValue(next.parent, fromValue)
	}

	c.hasChanged = true

	now := c.loop.Now()
	for _, v := range next.animated {
		v.reset(now, isActive)
	}

	next.immediate = c.props.immediateFor(name)
	if next.immediate {
		setValue(next.parent, toValue)
	}

	next.fromValues = toArray(next.parent.Value())
	next.previous = goalValue
	next.config = toConfig
	next.resolved = toConfig.resolved()

	c.animations[name] = next
}

// publish makes the entries visible to the loop and to readers.
func (c *Controller) publish() {
	c.configs = c.configs[:0]
	c.interpolations = make(map[string]Node, len(c.animations))
	c.values = make(Values, len(c.animations))

	for _, name := range sortedKeys(c.animations) {
		e := c.animations[name]
		c.configs = append(c.configs, e)
		c.interpolations[name] = e.interpolation
		c.values[name] = e.interpolation.Value()
	}
}

// Advance steps every unsettled leaf to now. It is called by the loop.
func (c *Controller) Advance(now time.Time) (map[string]any, bool) {
	active := false

	for _, e := range c.configs {
		for i, v := range e.animated {
			if v.done {
				continue
			}
			if c.step(e, i, v, now) {
				active = true
			}
		}
		c.values[e.name] = e.interpolation.Value()
	}

	if c.props.OnFrame != nil {
		c.props.OnFrame(c.Snapshot())
	}

	return c.Snapshot(), active
}

// Settle is called by the loop once the controller has been deregistered.
func (c *Controller) Settle() {
	c.Stop(true)
}

func setValue(n Node, x any) {
	if other, ok := x.(Node); ok {
		x = other.Value()
	}

	switch p := n.(type) {
	case *Value:
		p.set(x)
	case *ValueArray:
		p.SetValue(x)
	}
}

func constant(v any) interp.Func {
	return func(...any) any { return v }
}

// stringRange interpolates between two goals over 0..1. Goals whose shapes
// cannot be interpolated jump to the end value once the driver reaches 1.
func stringRange(from any, to string) interp.Func {
	fn, err := interp.New(interp.Config{Output: []any{stringify(from), to}})
	if err == nil {
		return fn
	}

	end := interp.Normalize(to)
	start := from
	return func(inputs ...any) any {
		if t, ok := toFloat(firstInput(inputs)); ok && t >= 1 {
			return end
		}
		return start
	}
}

func stringify(v any) any {
	if _, ok := toFloat(v); ok {
		return v
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func firstInput(inputs []any) any {
	if len(inputs) == 0 {
		return nil
	}
	return inputs[0]
}
