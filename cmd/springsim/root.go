package main

import (
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

const Version = "0.1.0"

type Config struct {
	Debug bool
}

var GlobalConfig = &Config{}

func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "springsim",
		Short: "Simulate spring animations described in YAML",
		Long: `springsim plays the controllers of a scene file frame by frame and
prints every frame as a JSON line, or publishes it over MQTT.`,
		Version:      Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if GlobalConfig.Debug {
				log.SetOutput(os.Stderr)
				log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
			} else {
				log.SetOutput(io.Discard)
			}
		},
	}

	cmd.PersistentFlags().BoolVar(&GlobalConfig.Debug, "debug", false, "Enable debug logging")

	cmd.AddCommand(NewRunCommand())
	cmd.AddCommand(NewPresetsCommand())

	return cmd
}

// logger returns the structured logger handed to loops and renderers.
func logger() *slog.Logger {
	if !GlobalConfig.Debug {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
