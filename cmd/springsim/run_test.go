package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnatoleLucet/spring/render"
	"github.com/AnatoleLucet/spring/scene"
)

const slide = `
name: slide
controllers:
  - id: box
    from: {x: 0}
    to: {x: 10}
    config: {duration: 100ms}
`

func TestPlay(t *testing.T) {
	t.Run("prints one json line per frame", func(t *testing.T) {
		s, err := scene.Parse([]byte(slide))
		require.NoError(t, err)

		var out bytes.Buffer
		frames, err := play(s, &out, nil, runOptions{fps: 50, maxFrames: 100})
		require.NoError(t, err)

		lines := []render.Frame{}
		scanner := bufio.NewScanner(&out)
		for scanner.Scan() {
			var f render.Frame
			require.NoError(t, json.Unmarshal(scanner.Bytes(), &f))
			lines = append(lines, f)
		}

		assert.Equal(t, 6, frames)
		assert.Len(t, lines, 6)
		assert.Equal(t, "box", lines[0].ID)
		assert.Equal(t, 0.0, lines[0].Values["x"])
		assert.Equal(t, 10.0, lines[len(lines)-1].Values["x"])
	})

	t.Run("gives up after max frames", func(t *testing.T) {
		s, err := scene.Parse([]byte(slide))
		require.NoError(t, err)

		_, err = play(s, &bytes.Buffer{}, nil, runOptions{fps: 50, maxFrames: 2})
		assert.ErrorIs(t, err, ErrNotSettled)
	})

	t.Run("renders to the given sink", func(t *testing.T) {
		s, err := scene.Parse([]byte(slide))
		require.NoError(t, err)

		rec := &render.Recorder{}
		var out bytes.Buffer
		_, err = play(s, &out, rec, runOptions{fps: 50, maxFrames: 100})
		require.NoError(t, err)

		assert.Empty(t, out.String())
		assert.Len(t, rec.Frames(), 6)
	})

	t.Run("rejects a zero frame rate", func(t *testing.T) {
		s, err := scene.Parse([]byte(slide))
		require.NoError(t, err)

		_, err = play(s, &bytes.Buffer{}, nil, runOptions{})
		assert.Error(t, err)
	})
}

func TestCommands(t *testing.T) {
	t.Run("run reads the scene file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "slide.yaml")
		require.NoError(t, os.WriteFile(path, []byte(slide), 0o644))

		var out bytes.Buffer
		cmd := NewRootCommand()
		cmd.SetOut(&out)
		cmd.SetArgs([]string{"run", path, "--fps", "50"})

		require.NoError(t, cmd.Execute())
		assert.Equal(t, 6, strings.Count(out.String(), "\n"))
	})

	t.Run("presets lists the named configs", func(t *testing.T) {
		var out bytes.Buffer
		cmd := NewRootCommand()
		cmd.SetOut(&out)
		cmd.SetArgs([]string{"presets"})

		require.NoError(t, cmd.Execute())
		assert.Contains(t, out.String(), "wobbly     tension=180 friction=12")
	})

	t.Run("presets can list easings", func(t *testing.T) {
		var out bytes.Buffer
		cmd := NewRootCommand()
		cmd.SetOut(&out)
		cmd.SetArgs([]string{"presets", "--easings"})

		require.NoError(t, cmd.Execute())
		assert.Contains(t, out.String(), "inOutCubic\n")
	})
}
