package internal

import (
	"context"
	"log/slog"
	"slices"
	"time"
)

// Job is something the loop advances every tick.
type Job interface {
	// ID identifies the job towards the renderer.
	ID() string

	// Advance steps the job to now and returns its plain values. It reports
	// false once everything it animates has settled.
	Advance(now time.Time) (values map[string]any, active bool)

	// Settle is called right after the job has been deregistered.
	Settle()
}

// Renderer applies the values of a job once per tick.
type Renderer interface {
	Render(id string, values map[string]any)
}

// Loop is the frame scheduler: a set of active jobs advanced on each Tick,
// plus the timer and deferred-work queues that only ever run on ticks.
type Loop struct {
	clock    Clock
	renderer Renderer
	logger   *slog.Logger

	jobs   []Job
	active map[Job]struct{}

	timers   *TimerHeap
	deferred *DeferQueue
	stepping stepDepth

	// incremented at the end of every tick
	frame int
}

type LoopOption func(*Loop)

func WithClock(c Clock) LoopOption {
	return func(l *Loop) { l.clock = c }
}

func WithRenderer(r Renderer) LoopOption {
	return func(l *Loop) { l.renderer = r }
}

func WithLogger(logger *slog.Logger) LoopOption {
	return func(l *Loop) { l.logger = logger }
}

func NewLoop(opts ...LoopOption) *Loop {
	l := &Loop{
		clock:    SystemClock,
		logger:   slog.New(slog.DiscardHandler),
		active:   make(map[Job]struct{}),
		timers:   NewTimerHeap(),
		deferred: NewDeferQueue(),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

func (l *Loop) Now() time.Time {
	return l.clock.Now()
}

func (l *Loop) SetRenderer(r Renderer) {
	l.renderer = r
}

// Start registers j. Registering an active job is a no-op.
func (l *Loop) Start(j Job) {
	if _, ok := l.active[j]; ok {
		return
	}

	l.active[j] = struct{}{}
	l.jobs = append(l.jobs, j)
	l.logger.Debug("job registered", "id", j.ID(), "active", len(l.jobs))
}

// Stop deregisters j. Stopping an inactive job is a no-op.
func (l *Loop) Stop(j Job) {
	if _, ok := l.active[j]; !ok {
		return
	}

	delete(l.active, j)
	l.jobs = slices.DeleteFunc(l.jobs, func(other Job) bool { return other == j })
	l.logger.Debug("job deregistered", "id", j.ID(), "active", len(l.jobs))
}

func (l *Loop) Active(j Job) bool {
	_, ok := l.active[j]
	return ok
}

// Len returns the number of registered jobs.
func (l *Loop) Len() int {
	return len(l.jobs)
}

// After runs fn on the first tick at or past now+d.
func (l *Loop) After(d time.Duration, fn func()) {
	l.timers.Insert(l.clock.Now().Add(d), fn)
}

// Defer runs fn at the start of the next tick.
func (l *Loop) Defer(fn func()) {
	l.deferred.Enqueue(fn)
}

// Stepping reports whether the loop is currently advancing jobs.
func (l *Loop) Stepping() bool {
	return l.stepping.active()
}

// Idle reports whether the loop has nothing left to do.
func (l *Loop) Idle() bool {
	return len(l.jobs) == 0 && l.timers.Len() == 0 && l.deferred.Len() == 0
}

// Frame returns the number of completed ticks.
func (l *Loop) Frame() int {
	return l.frame
}

// Tick fires due timers and deferred work, then advances every registered
// job by one step. Jobs that settle are deregistered before they are told so.
func (l *Loop) Tick() {
	now := l.clock.Now()

	l.timers.Drain(now, func(fn func()) {
		l.logger.Debug("timer fired", "frame", l.frame)
		fn()
	})
	l.deferred.Run()

	jobs := slices.Clone(l.jobs)
	l.stepping.run(func() {
		for _, j := range jobs {
			if !l.Active(j) {
				continue
			}

			values, active := j.Advance(now)
			if l.renderer != nil {
				l.renderer.Render(j.ID(), values)
			}

			if !active {
				l.Stop(j)
				j.Settle()
			}
		}
	})

	l.frame++
}

// Run ticks at the given rate until ctx is done.
func (l *Loop) Run(ctx context.Context, fps int) error {
	if fps <= 0 {
		fps = 60
	}

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			l.Tick()
		}
	}
}
