package internal

import (
	"container/heap"
	"time"
)

type timer struct {
	due time.Time
	seq uint64
	fn  func()
}

// TimerHeap orders pending callbacks by due time, then by insertion order.
type TimerHeap struct {
	timers timers
	seq    uint64
}

func NewTimerHeap() *TimerHeap {
	return &TimerHeap{}
}

func (h *TimerHeap) Insert(due time.Time, fn func()) {
	h.seq++
	heap.Push(&h.timers, &timer{due: due, seq: h.seq, fn: fn})
}

func (h *TimerHeap) Len() int {
	return h.timers.Len()
}

// Drain pops every timer due at or before now, in order, and hands it to process.
// Timers inserted by process are only drained if they are already due.
func (h *TimerHeap) Drain(now time.Time, process func(func())) {
	for h.timers.Len() > 0 {
		next := h.timers[0]
		if next.due.After(now) {
			return
		}

		heap.Pop(&h.timers)
		process(next.fn)
	}
}

type timers []*timer

func (t timers) Len() int { return len(t) }

func (t timers) Less(i, j int) bool {
	if t[i].due.Equal(t[j].due) {
		return t[i].seq < t[j].seq
	}
	return t[i].due.Before(t[j].due)
}

func (t timers) Swap(i, j int) { t[i], t[j] = t[j], t[i] }

func (t *timers) Push(x any) { *t = append(*t, x.(*timer)) }

func (t *timers) Pop() any {
	old := *t
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*t = old[:n-1]
	return item
}
