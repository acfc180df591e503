package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/limaJavier/unit-timetabling/pkg/model"
)

func newViewCommand(a *app) *cobra.Command {
	var department string
	var lecturer uint64

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Prints the stored timetable with resolved names, ordered by day and start time",
		RunE: func(cmd *cobra.Command, args []string) error {
			if department != "" && cmd.Flags().Changed("lecturer") {
				return fmt.Errorf("--department and --lecturer cannot be combined")
			}

			input, err := a.loadInput(cmd.Context())
			if err != nil {
				return err
			}
			timetable, err := a.store.Timetable(cmd.Context())
			if err != nil {
				return err
			}

			var entries []model.FormattedEntry
			switch {
			case department != "":
				entries, err = model.TimetableByDepartment(timetable, input, department)
			case cmd.Flags().Changed("lecturer"):
				entries, err = model.TimetableByLecturer(timetable, input, lecturer)
			default:
				entries = model.FormatTimetable(timetable, input)
			}
			if err != nil {
				return err
			}
			return printJson(cmd, entries)
		},
	}

	cmd.Flags().StringVar(&department, "department", "", "Only show units of the department with this code")
	cmd.Flags().Uint64Var(&lecturer, "lecturer", 0, "Only show entries taught by the lecturer with this id")
	return cmd
}

func newStatsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Prints entity counts of the snapshot and the stored timetable",
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := a.loadInput(cmd.Context())
			if err != nil {
				return err
			}
			timetable, err := a.store.Timetable(cmd.Context())
			if err != nil {
				return err
			}
			return printJson(cmd, model.ComputeStatistics(input, timetable))
		},
	}
}

func newConflictsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "conflicts",
		Short: "Itemizes every double-booking of the stored timetable",
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := a.loadInput(cmd.Context())
			if err != nil {
				return err
			}
			timetable, err := a.store.Timetable(cmd.Context())
			if err != nil {
				return err
			}
			return printJson(cmd, model.AnalyzeConflicts(timetable, input))
		},
	}
}
