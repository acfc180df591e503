package main

import (
	"github.com/spf13/cobra"

	"github.com/limaJavier/unit-timetabling/pkg/model"
)

func newAnalyzeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze",
		Short: "Bounds how many units any placement of the snapshot could schedule",
		Long: `Matches units to distinct (room, time slot) resources of the right room type and
session profile. Lecturer and student group clashes are ignored, so the bound is optimistic`,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := a.loadInput(cmd.Context())
			if err != nil {
				return err
			}
			report, err := model.AnalyzeFeasibility(input, a.cfg.Generator.LongSessionSchool)
			if err != nil {
				return err
			}
			return printJson(cmd, report)
		},
	}
}
