package spring

import (
	"maps"
	"slices"
	"time"
)

// Values maps prop names to plain values: numbers, numeric vectors or strings.
type Values map[string]any

// Script yields the successive target bundles of an async animation, one per
// step, and reports false once it is exhausted. A bundle only starts once
// the previous one settled.
type Script func(step int) (Props, bool)

// Props is one update of a controller.
type Props struct {
	// From seeds keys that have no value yet.
	From Values
	// To is the goal of each key. Alongside Sequence or Script, it is
	// folded under the first bundle.
	To Values
	// Sequence animates through its bundles one after the other.
	Sequence []Values
	// Script yields bundles one after the other, like Sequence.
	Script Script

	// Delay postpones the goals of To. DelayFn, when set, wins and is asked per key.
	Delay   time.Duration
	DelayFn func(key string) time.Duration

	// Config applies to every key. ConfigFn, when set, wins and is asked per key.
	Config   Config
	ConfigFn func(key string) Config
	// Configs holds one config per Sequence or Script step.
	Configs []Config

	// Reset restarts every key from From.
	Reset bool
	// Immediate jumps to the goal without animating. ImmediateFn, when set, wins.
	Immediate   bool
	ImmediateFn func(key string) bool
	// Reverse swaps From and To.
	Reverse bool

	// Attach returns a controller whose values become the goals of this one.
	Attach func(*Controller) *Controller

	OnStart func()
	OnRest  func(Values)
	OnFrame func(Values)
}

func (p Props) async() bool {
	return p.Sequence != nil || p.Script != nil
}

func (p Props) delayFor(key string) time.Duration {
	if p.DelayFn != nil {
		return p.DelayFn(key)
	}
	return p.Delay
}

func (p Props) configFor(key string) Config {
	if p.ConfigFn != nil {
		return p.ConfigFn(key)
	}
	return p.Config
}

func (p Props) immediateFor(key string) bool {
	if p.ImmediateFn != nil {
		return p.ImmediateFn(key)
	}
	return p.Immediate
}

// script turns Sequence or Script into a Script. The goals of To are
// layered under the first bundle.
func (p Props) script() Script {
	next := p.Script
	if next == nil {
		sequence := p.Sequence
		next = func(step int) (Props, bool) {
			if step >= len(sequence) {
				return Props{}, false
			}
			return Props{To: sequence[step]}, true
		}
	}

	if p.To == nil {
		return next
	}

	to := p.To
	return func(step int) (Props, bool) {
		bundle, ok := next(step)
		if ok && step == 0 {
			bundle.To = layer(to, bundle.To)
		}
		return bundle, ok
	}
}

// withoutGoals strips what Update queues, keeping what it diffs right away.
func (p Props) withoutGoals() Props {
	p.To = nil
	p.Sequence = nil
	p.Script = nil
	p.Delay = 0
	p.DelayFn = nil
	return p
}

// merge layers next over p. Maps, configs and callbacks stick until they
// are replaced; the Reset, Immediate and Reverse flags only last one update.
func (p Props) merge(next Props) Props {
	out := p

	if next.From != nil {
		out.From = next.From
	}
	if next.To != nil {
		out.To = next.To
	}
	if !next.Config.IsZero() || next.ConfigFn != nil {
		out.Config = next.Config
		out.ConfigFn = next.ConfigFn
	}
	if next.Configs != nil {
		out.Configs = next.Configs
	}

	out.Reset = next.Reset
	out.Immediate = next.Immediate
	out.ImmediateFn = next.ImmediateFn
	out.Reverse = next.Reverse

	if next.Attach != nil {
		out.Attach = next.Attach
	}
	if next.OnStart != nil {
		out.OnStart = next.OnStart
	}
	if next.OnRest != nil {
		out.OnRest = next.OnRest
	}
	if next.OnFrame != nil {
		out.OnFrame = next.OnFrame
	}

	return out
}

// with layers a script bundle over the base props of an async entry.
func (p Props) with(bundle Props) Props {
	out := p.merge(bundle)
	out.Reset = p.Reset || bundle.Reset
	out.Immediate = p.Immediate || bundle.Immediate
	if out.ImmediateFn == nil {
		out.ImmediateFn = p.ImmediateFn
	}
	out.Reverse = p.Reverse || bundle.Reverse
	return out
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	return slices.Sorted(maps.Keys(m))
}
