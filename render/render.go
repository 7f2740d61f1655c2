// Package render holds the sinks a loop can hand its frames to.
package render

import (
	"encoding/json"
	"io"
	"log/slog"
	"maps"
	"sync"
)

// Func adapts a function to the spring.Renderer interface.
type Func func(id string, values map[string]any)

func (f Func) Render(id string, values map[string]any) {
	f(id, values)
}

type renderer interface {
	Render(id string, values map[string]any)
}

// Multi fans frames out to several renderers, in order.
func Multi(renderers ...renderer) Func {
	return func(id string, values map[string]any) {
		for _, r := range renderers {
			r.Render(id, values)
		}
	}
}

// Log writes every frame as a debug record.
func Log(logger *slog.Logger) Func {
	return func(id string, values map[string]any) {
		logger.Debug("frame", "id", id, "values", values)
	}
}

// Frame is one rendered set of values.
type Frame struct {
	Frame  int            `json:"frame"`
	ID     string         `json:"id"`
	Values map[string]any `json:"values"`
}

// JSON writes frames as JSON lines.
type JSON struct {
	mu    sync.Mutex
	enc   *json.Encoder
	frame func() int
	err   error
}

// NewJSON writes to w. frame, when set, numbers the lines.
func NewJSON(w io.Writer, frame func() int) *JSON {
	return &JSON{enc: json.NewEncoder(w), frame: frame}
}

func (j *JSON) Render(id string, values map[string]any) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.err != nil {
		return
	}

	f := Frame{ID: id, Values: values}
	if j.frame != nil {
		f.Frame = j.frame()
	}
	j.err = j.enc.Encode(f)
}

// Err returns the first write error.
func (j *JSON) Err() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	return j.err
}

// Recorder keeps every frame in memory.
type Recorder struct {
	mu     sync.Mutex
	frames []Frame
}

func (r *Recorder) Render(id string, values map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.frames = append(r.frames, Frame{Frame: len(r.frames), ID: id, Values: maps.Clone(values)})
}

func (r *Recorder) Frames() []Frame {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]Frame(nil), r.frames...)
}

// Last returns the latest values rendered for id.
func (r *Recorder) Last(id string) (map[string]any, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := len(r.frames) - 1; i >= 0; i-- {
		if r.frames[i].ID == id {
			return r.frames[i].Values, true
		}
	}
	return nil, false
}
