package spring

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGroup(t *testing.T) {
	t.Run("names controllers after the group", func(t *testing.T) {
		h := newHarness()
		g := NewGroup(2, WithLoop(h.loop), WithGraph(h.graph), WithID("dots"))

		assert.Equal(t, "dots", g.ID())
		assert.Equal(t, "dots/0", g.Controller(0).ID())
		assert.Equal(t, "dots/1", g.Controller(1).ID())
	})

	t.Run("updates each controller with its own props", func(t *testing.T) {
		h := newHarness()
		g := NewGroup(3, WithLoop(h.loop), WithGraph(h.graph))
		log := []string{}

		g.Update(func(i int) Props {
			return Props{From: Values{"x": 0}, To: Values{"x": i * 10}}
		}).Start(func(finished bool) {
			log = append(log, fmt.Sprintf("done %v", finished))
		})
		h.settle(t)

		assert.Equal(t, []Values{{"x": 0.0}, {"x": 10.0}, {"x": 20.0}}, g.Snapshot())
		assert.Equal(t, []string{"done true"}, log)
	})

	t.Run("reports once the first entry of each controller ended", func(t *testing.T) {
		h := newHarness()
		g := NewGroup(2, WithLoop(h.loop), WithGraph(h.graph))
		log := []string{}

		g.Update(func(i int) Props {
			return Props{
				From:    Values{"x": 0, "y": 0},
				To:      Values{"x": 10, "y": 10},
				DelayFn: func(key string) time.Duration {
					if key == "y" {
						return 200 * time.Millisecond
					}
					return 0
				},
				Config: Config{Duration: 48 * time.Millisecond},
			}
		}).Start(func(finished bool) {
			log = append(log, fmt.Sprintf("done %v", finished))
		})

		h.advance(5 * frame)
		assert.Equal(t, []string{"done true"}, log)
		assert.Equal(t, 0.0, g.Snapshot()[0]["y"])

		h.settle(t)
		assert.Equal(t, []string{"done true"}, log)
		assert.Equal(t, []Values{{"x": 10.0, "y": 10.0}, {"x": 10.0, "y": 10.0}}, g.Snapshot())
	})

	t.Run("trails follow the controller before them", func(t *testing.T) {
		h := newHarness()
		g := NewTrail(3, WithLoop(h.loop), WithGraph(h.graph))

		g.Update(func(int) Props {
			return Props{From: Values{"x": 0}, To: Values{"x": 100}}
		}).Start(nil)

		h.advance(10 * frame)
		values := g.Snapshot()
		lead := values[0]["x"].(float64)
		second := values[1]["x"].(float64)
		third := values[2]["x"].(float64)
		assert.Greater(t, lead, second)
		assert.Greater(t, second, third)

		h.settle(t)
		assert.Equal(t, []Values{{"x": 100.0}, {"x": 100.0}, {"x": 100.0}}, g.Snapshot())
	})

	t.Run("followers settle after their leader", func(t *testing.T) {
		h := newHarness()
		g := NewTrail(2, WithLoop(h.loop), WithGraph(h.graph))
		log := []string{}

		g.Update(func(i int) Props {
			return Props{
				From:   Values{"x": 0},
				To:     Values{"x": 1},
				OnRest: func(Values) { log = append(log, fmt.Sprintf("rest %d", i)) },
			}
		}).Start(nil)
		h.settle(t)

		assert.Equal(t, []string{"rest 0", "rest 1"}, log)
	})

	t.Run("stop reports unfinished", func(t *testing.T) {
		h := newHarness()
		g := NewGroup(2, WithLoop(h.loop), WithGraph(h.graph))
		log := []string{}

		g.Update(func(int) Props {
			return Props{From: Values{"x": 0}, To: Values{"x": 1}}
		}).Start(func(finished bool) {
			log = append(log, fmt.Sprintf("done %v", finished))
		})
		h.tick()

		g.Stop(false)
		assert.Equal(t, []string{"done false"}, log)
	})

	t.Run("destroy deregisters every controller", func(t *testing.T) {
		h := newHarness()
		g := NewGroup(2, WithLoop(h.loop), WithGraph(h.graph))

		g.Update(func(int) Props {
			return Props{From: Values{"x": 0}, To: Values{"x": 1}, Delay: time.Millisecond}
		}).Start(nil)
		h.tick()
		h.tick()
		assert.Equal(t, 2, h.loop.Len())

		g.Destroy()
		assert.Equal(t, 0, h.loop.Len())
	})
}
