package main

import (
	"github.com/spf13/cobra"

	"github.com/limaJavier/unit-timetabling/pkg/model"
)

func newSlotsCommand(a *app) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "slots",
		Short: "Regenerates the weekly time-slot catalog",
		Long: `Builds the Monday to Friday catalog of long (3-hour) and short (2-hour) sessions.
Persisting it clears the current timetable and every previous time slot`,
		RunE: func(cmd *cobra.Command, args []string) error {
			slots := model.DefaultTimeSlots()
			if !dryRun {
				var err error
				if slots, err = a.store.ReplaceTimeSlots(cmd.Context(), slots); err != nil {
					return err
				}
			}
			return printJson(cmd, slots)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the catalog without persisting it")
	return cmd
}
