package main

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/AnatoleLucet/spring"
	"github.com/AnatoleLucet/spring/interp"
)

func NewPresetsCommand() *cobra.Command {
	var easings bool

	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List the spring presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if easings {
				for _, name := range interp.EasingNames() {
					fmt.Fprintln(out, name)
				}
				return nil
			}

			for _, name := range slices.Sorted(maps.Keys(spring.Presets)) {
				cfg := spring.Presets[name]
				fmt.Fprintf(out, "%-10s tension=%g friction=%g\n", name, cfg.Tension, cfg.Friction)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&easings, "easings", false, "List the easing names instead")

	return cmd
}
