package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/limaJavier/unit-timetabling/pkg/model"
)

func newValidateCommand(a *app) *cobra.Command {
	var timetableFile string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Audits a timetable for double-bookings and room-type mismatches",
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := a.loadInput(cmd.Context())
			if err != nil {
				return err
			}
			timetable, err := a.loadTimetable(cmd.Context(), timetableFile)
			if err != nil {
				return err
			}

			result := model.Validate(timetable, input)
			a.metrics.ObserveValidation(result)

			if err := printJson(cmd, result); err != nil {
				return err
			}
			if !result.IsValid {
				return &exitError{code: exitInvalid, message: fmt.Sprintf("timetable has %v conflicts", len(result.Conflicts))}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&timetableFile, "timetable", "", "Validate the entries of this JSON file instead of the stored timetable")
	return cmd
}

func (a *app) loadTimetable(ctx context.Context, file string) ([]model.TimetableEntry, error) {
	if file == "" {
		return a.store.Timetable(ctx)
	}

	bytes, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("cannot read timetable file: %w", err)
	}
	var entriesJson any
	if err := json.Unmarshal(bytes, &entriesJson); err != nil {
		return nil, fmt.Errorf("cannot parse timetable file: %w", err)
	}
	return model.DecodeEntries(entriesJson)
}
