package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/AnatoleLucet/spring"
	"github.com/AnatoleLucet/spring/render"
	"github.com/AnatoleLucet/spring/render/mqtt"
	"github.com/AnatoleLucet/spring/scene"
)

var ErrNotSettled = errors.New("scene did not settle")

type runOptions struct {
	fps       int
	maxFrames int
	realtime  bool
	mqttURL   string
	topic     string
	clientID  string
}

func NewRunCommand() *cobra.Command {
	opts := runOptions{}

	cmd := &cobra.Command{
		Use:   "run <scene.yaml>",
		Short: "Play a scene until every controller settles",
		Long: `Play a scene until every controller settles.

Time is simulated: each frame advances a manual clock by 1/fps, so the
output is the same on every run.

Examples:
  # Print every frame as a JSON line
  springsim run fade.yaml

  # Publish frames to lights/<controller id> at 30 frames per second
  springsim run fade.yaml --fps 30 --realtime --mqtt-url tcp://localhost:1883 --topic lights`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := scene.Load(args[0])
			if err != nil {
				return err
			}
			log.Printf("Loaded scene %q with %d controllers", s.Name, len(s.Controllers))

			var sink spring.Renderer
			if opts.mqttURL != "" {
				client, err := mqtt.Dial(opts.mqttURL, opts.clientID, 5*time.Second)
				if err != nil {
					return err
				}
				defer client.Disconnect(250)

				sink = mqtt.New(client, opts.topic, mqtt.WithLogger(logger()))
			}

			frames, err := play(s, cmd.OutOrStdout(), sink, opts)
			if err != nil {
				return err
			}
			log.Printf("Settled after %d frames", frames)
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.fps, "fps", 60, "Frames per simulated second")
	cmd.Flags().IntVar(&opts.maxFrames, "max-frames", 6000, "Give up after this many frames")
	cmd.Flags().BoolVar(&opts.realtime, "realtime", false, "Sleep between frames")
	cmd.Flags().StringVar(&opts.mqttURL, "mqtt-url", "", "Publish frames to this MQTT broker instead of stdout")
	cmd.Flags().StringVar(&opts.topic, "topic", "springsim", "MQTT topic prefix")
	cmd.Flags().StringVar(&opts.clientID, "client-id", "springsim", "MQTT client id")

	return cmd
}

// play runs s on its own loop and returns the number of frames it took.
// Frames go to sink, or as JSON lines to out when sink is nil.
func play(s *scene.Scene, out io.Writer, sink spring.Renderer, opts runOptions) (int, error) {
	if opts.fps <= 0 {
		return 0, fmt.Errorf("invalid fps %d", opts.fps)
	}
	interval := time.Second / time.Duration(opts.fps)

	clock := spring.NewManualClock(time.Unix(0, 0))
	loop := spring.NewLoop(spring.WithClock(clock), spring.WithLogger(logger()))

	player, err := scene.Build(s, spring.WithLoop(loop), spring.WithGraph(spring.NewGraph()))
	if err != nil {
		return 0, err
	}

	var lines *render.JSON
	if sink == nil {
		lines = render.NewJSON(out, loop.Frame)
		sink = lines
	}
	loop.SetRenderer(player.Renderer(sink))

	player.Start(nil)

	for !loop.Idle() {
		if loop.Frame() >= opts.maxFrames {
			return loop.Frame(), fmt.Errorf("%w after %d frames", ErrNotSettled, loop.Frame())
		}

		loop.Tick()
		clock.Add(interval)

		if opts.realtime {
			time.Sleep(interval)
		}
	}

	if lines != nil {
		if err := lines.Err(); err != nil {
			return loop.Frame(), fmt.Errorf("write frames: %w", err)
		}
	}
	return loop.Frame(), nil
}
