package internal

// DeferQueue holds callbacks postponed to the start of the next tick.
type DeferQueue struct {
	callbacks []func()
}

func NewDeferQueue() *DeferQueue {
	return &DeferQueue{
		callbacks: make([]func(), 0),
	}
}

func (q *DeferQueue) Enqueue(fn func()) {
	q.callbacks = append(q.callbacks, fn)
}

func (q *DeferQueue) Len() int {
	return len(q.callbacks)
}

// Run executes the callbacks queued so far. Callbacks enqueued while running
// wait for the next call.
func (q *DeferQueue) Run() {
	callbacks := q.callbacks
	q.callbacks = nil

	for _, cb := range callbacks {
		cb()
	}
}
