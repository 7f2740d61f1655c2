package internal

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type job struct {
	id    string
	steps int
	log   *[]string
}

func (j *job) ID() string { return j.id }

func (j *job) Advance(now time.Time) (map[string]any, bool) {
	j.steps--
	*j.log = append(*j.log, fmt.Sprintf("%s step", j.id))
	return map[string]any{"steps": j.steps}, j.steps > 0
}

func (j *job) Settle() {
	*j.log = append(*j.log, fmt.Sprintf("%s settle", j.id))
}

type renderer struct {
	frames []string
}

func (r *renderer) Render(id string, values map[string]any) {
	r.frames = append(r.frames, fmt.Sprintf("%s %v", id, values["steps"]))
}

func TestLoop(t *testing.T) {
	t.Run("advances jobs until they settle", func(t *testing.T) {
		log := []string{}
		r := &renderer{}
		l := NewLoop(WithRenderer(r))

		l.Start(&job{id: "a", steps: 2, log: &log})
		l.Tick()
		l.Tick()
		l.Tick()

		assert.Equal(t, []string{"a step", "a step", "a settle"}, log)
		assert.Equal(t, []string{"a 1", "a 0"}, r.frames)
		assert.True(t, l.Idle())
		assert.Equal(t, 3, l.Frame())
	})

	t.Run("starting twice registers once", func(t *testing.T) {
		log := []string{}
		l := NewLoop()

		j := &job{id: "a", steps: 1, log: &log}
		l.Start(j)
		l.Start(j)
		assert.Equal(t, 1, l.Len())

		l.Stop(j)
		l.Stop(j)
		assert.Equal(t, 0, l.Len())
	})

	t.Run("fires timers in due order on ticks only", func(t *testing.T) {
		log := []string{}
		clock := NewManualClock(time.Unix(0, 0))
		l := NewLoop(WithClock(clock))

		l.After(20*time.Millisecond, func() { log = append(log, "20ms") })
		l.After(10*time.Millisecond, func() { log = append(log, "10ms first") })
		l.After(10*time.Millisecond, func() { log = append(log, "10ms second") })

		clock.Add(30 * time.Millisecond)
		assert.Empty(t, log)

		l.Tick()
		assert.Equal(t, []string{"10ms first", "10ms second", "20ms"}, log)
	})

	t.Run("runs deferred work on the next tick", func(t *testing.T) {
		log := []string{}
		l := NewLoop()

		l.Defer(func() {
			log = append(log, "first")
			l.Defer(func() { log = append(log, "second") })
		})
		assert.False(t, l.Idle())

		l.Tick()
		assert.Equal(t, []string{"first"}, log)

		l.Tick()
		assert.Equal(t, []string{"first", "second"}, log)
	})

	t.Run("reports stepping while jobs advance", func(t *testing.T) {
		l := NewLoop()
		stepping := []bool{}

		l.Start(&probe{advance: func() { stepping = append(stepping, l.Stepping()) }})
		l.Tick()

		assert.Equal(t, []bool{true}, stepping)
		assert.False(t, l.Stepping())
	})

	t.Run("jobs started while stepping wait for the next tick", func(t *testing.T) {
		log := []string{}
		l := NewLoop()
		late := &job{id: "late", steps: 1, log: &log}

		l.Start(&probe{advance: func() { l.Start(late) }})
		l.Tick()
		assert.Empty(t, log)

		l.Tick()
		assert.Equal(t, []string{"late step", "late settle"}, log)
	})

	t.Run("run stops with its context", func(t *testing.T) {
		l := NewLoop()
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		err := l.Run(ctx, 200)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Greater(t, l.Frame(), 0)
	})
}

type probe struct {
	advance func()
}

func (p *probe) ID() string { return "probe" }

func (p *probe) Advance(time.Time) (map[string]any, bool) {
	p.advance()
	return nil, false
}

func (p *probe) Settle() {}
