package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/limaJavier/unit-timetabling/internal/export"
)

func newExportCommand(a *app) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Writes the stored timetable to an xlsx workbook with one sheet per student group",
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := a.loadInput(cmd.Context())
			if err != nil {
				return err
			}
			timetable, err := a.store.Timetable(cmd.Context())
			if err != nil {
				return err
			}
			if err := export.WriteFile(out, timetable, input); err != nil {
				return err
			}
			a.logger.Info("timetable exported", zap.String("file", out), zap.Int("entries", len(timetable)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "timetable.xlsx", "Path of the workbook to write")
	return cmd
}
