package render

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestRenderers(t *testing.T) {
	t.Run("json writes one line per frame", func(t *testing.T) {
		var buf bytes.Buffer
		n := 0
		j := NewJSON(&buf, func() int { n++; return n })

		j.Render("a", map[string]any{"x": 1})
		j.Render("b", map[string]any{"y": "auto"})

		assert.NoError(t, j.Err())
		assert.Equal(t,
			`{"frame":1,"id":"a","values":{"x":1}}`+"\n"+
				`{"frame":2,"id":"b","values":{"y":"auto"}}`+"\n",
			buf.String())
	})

	t.Run("json keeps the first write error", func(t *testing.T) {
		j := NewJSON(failingWriter{}, nil)

		j.Render("a", map[string]any{})
		j.Render("a", map[string]any{})

		assert.EqualError(t, j.Err(), "disk full")
	})

	t.Run("recorder keeps copies of every frame", func(t *testing.T) {
		r := &Recorder{}
		values := map[string]any{"x": 1}

		r.Render("a", values)
		values["x"] = 2
		r.Render("a", values)
		r.Render("b", map[string]any{"y": 3})

		assert.Len(t, r.Frames(), 3)
		last, ok := r.Last("a")
		assert.True(t, ok)
		assert.Equal(t, map[string]any{"x": 2}, last)
		assert.Equal(t, map[string]any{"x": 1}, r.Frames()[0].Values)

		_, ok = r.Last("c")
		assert.False(t, ok)
	})

	t.Run("multi fans out in order", func(t *testing.T) {
		log := []string{}
		first := Func(func(id string, _ map[string]any) { log = append(log, "first "+id) })
		second := Func(func(id string, _ map[string]any) { log = append(log, "second "+id) })

		Multi(first, second).Render("a", nil)

		assert.Equal(t, []string{"first a", "second a"}, log)
	})

	t.Run("log writes debug records", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

		Log(logger).Render("a", map[string]any{"x": 1})

		assert.True(t, strings.Contains(buf.String(), "msg=frame id=a"))
	})
}
