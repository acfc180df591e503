package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/limaJavier/unit-timetabling/pkg/model"
)

type generateOutput struct {
	Seed       uint64                 `json:"seed"`
	Report     model.BuildReport      `json:"report"`
	Validation model.ValidationResult `json:"validation"`
}

func newGenerateCommand(a *app) *cobra.Command {
	var seed uint64
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generates a timetable and replaces the stored one",
		Long: `Places every unit into a random free (room, time slot) pair using a bounded number of
attempts per unit. Units that cannot be placed are reported and left out. The result is
validated before it is persisted`,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := a.loadInput(cmd.Context())
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("seed") {
				seed = a.cfg.Generator.Seed
			}
			timetabler, runSeed := a.timetabler(input, seed)

			timetable, report := timetabler.Build(input)
			validation := timetabler.Verify(timetable, input)
			a.metrics.ObserveBuild(report)
			a.metrics.ObserveValidation(validation)

			a.logger.Info("generate finished",
				zap.String("run", report.RunId),
				zap.Uint64("seed", runSeed),
				zap.Int("scheduled", report.Scheduled),
				zap.Int("skipped", len(report.Skipped)),
				zap.Bool("valid", validation.IsValid),
			)

			if err := printJson(cmd, generateOutput{Seed: runSeed, Report: report, Validation: validation}); err != nil {
				return err
			}
			if !validation.IsValid {
				return &exitError{code: exitInvalid, message: fmt.Sprintf("generated timetable has %v conflicts", len(validation.Conflicts))}
			}
			if dryRun {
				return nil
			}
			return a.store.ReplaceTimetable(cmd.Context(), timetable)
		},
	}

	cmd.Flags().Uint64Var(&seed, "seed", 0, "Seed of the random source; overrides generator.seed, 0 picks a time-based seed")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Generate and report without persisting the timetable")
	return cmd
}
