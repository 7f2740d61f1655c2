package spring

import (
	"math"
	"time"
)

// maxGap is the longest pause the spring integrates over. Past it, the
// spring resumes as if no time had passed.
const maxGap = 64 * time.Millisecond

// step advances the i-th leaf of e to now and reports whether it is still
// animating.
func (c *Controller) step(e *entry, i int, v *Value, now time.Time) bool {
	cfg := e.resolved

	var from, to any
	if i < len(e.fromValues) {
		from = e.fromValues[i]
	}
	if i < len(e.toValues) {
		to = e.toValues[i]
	}

	// an attached goal follows a leaf of another controller
	var followed *Value
	if n, ok := to.(*Value); ok {
		followed = n
		to = n.Value()
	}

	if e.immediate {
		v.set(to)
		v.done = true
		return false
	}

	start, okFrom := toFloat(from)
	end, okTo := toFloat(to)
	if !okFrom || !okTo {
		v.set(to)
		v.done = true
		return false
	}

	position := v.lastPosition
	var finished bool

	switch {
	case cfg.Duration > 0:
		elapsed := now.Sub(v.startTime)
		t := min(float64(elapsed)/float64(cfg.Duration), 1)
		position = start + cfg.Easing(t)*(end-start)
		finished = elapsed >= cfg.Duration

	case cfg.Decay > 0:
		ms := float64(now.Sub(v.startTime)) / float64(time.Millisecond)
		k := 1 - cfg.Decay
		position = start + (cfg.Velocity/k)*(1-math.Exp(-k*ms))
		finished = ms > 0 && math.Abs(v.lastPosition-position) < 0.1
		if finished {
			end = position
		}

	default:
		last := v.lastTime
		if last.IsZero() {
			last = now
		}
		velocity := v.lastVelocity
		if v.lastTime.IsZero() {
			velocity = cfg.Velocity
		}
		if now.Sub(last) > maxGap {
			last = now
		}

		steps := int(now.Sub(last) / time.Millisecond)
		for range steps {
			force := -cfg.Tension * (position - end)
			damping := -cfg.Friction * velocity
			acceleration := (force + damping) / cfg.Mass
			velocity += acceleration / 1000
			position += velocity / 1000
		}

		overshooting := false
		if cfg.Clamp && cfg.Tension != 0 {
			if start < end {
				overshooting = position > end
			} else {
				overshooting = position < end
			}
		}
		still := math.Abs(velocity) <= cfg.Precision
		arrived := cfg.Tension == 0 || math.Abs(end-position) <= cfg.Precision
		finished = overshooting || (still && arrived)

		v.lastVelocity = velocity
		v.lastTime = now
	}

	if followed != nil && !followed.done {
		finished = false
	}

	if finished {
		position = end
		v.done = true
	}

	v.set(position)
	v.lastPosition = position
	return !finished
}
