package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math/rand/v2"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/limaJavier/unit-timetabling/internal/config"
	"github.com/limaJavier/unit-timetabling/internal/logger"
	"github.com/limaJavier/unit-timetabling/internal/metrics"
	"github.com/limaJavier/unit-timetabling/internal/store"
	"github.com/limaJavier/unit-timetabling/pkg/model"
)

// app holds what every subcommand needs once the root command has been set up
type app struct {
	configPath string
	envFile    string
	inputFile  string

	cfg     *config.Config
	logger  *zap.Logger
	store   store.Store
	metrics *metrics.Recorder
}

// newRootCommand wires the command tree. The caller must call app.teardown once the command has run
func newRootCommand() (*cobra.Command, *app) {
	a := &app{}

	root := &cobra.Command{
		Use:   "timetable",
		Short: "timetable generates and audits weekly university timetables",
		Long: `timetable builds the weekly time-slot catalog, places every unit into a room and a
time slot without double-booking lecturers, rooms or student groups, and audits
existing timetables for conflicts`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.Context())
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to the configuration file; ./config.yaml is used when empty")
	root.PersistentFlags().StringVar(&a.envFile, "env", ".env", "Path to an optional .env file")
	root.PersistentFlags().StringVar(&a.inputFile, "input", "", "Read the entity snapshot from this JSON file instead of the store")

	root.AddCommand(
		newSlotsCommand(a),
		newGenerateCommand(a),
		newValidateCommand(a),
		newViewCommand(a),
		newStatsCommand(a),
		newConflictsCommand(a),
		newAnalyzeCommand(a),
		newExportCommand(a),
	)
	return root, a
}

func (a *app) setup(ctx context.Context) error {
	if err := godotenv.Load(a.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("cannot load env file: %w", err)
	}

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	a.logger, err = logger.NewLogger(cfg.Log)
	if err != nil {
		return err
	}

	if ctx == nil {
		ctx = context.Background()
	}
	a.store, err = store.Open(ctx, cfg.Store, a.logger)
	if err != nil {
		return err
	}

	a.metrics = metrics.NewRecorder()
	return nil
}

func (a *app) teardown() {
	if a.metrics != nil && a.cfg.Metrics.File != "" {
		if err := a.metrics.WriteToTextfile(a.cfg.Metrics.File); err != nil {
			a.logger.Error("cannot write metrics file", zap.Error(err))
		}
	}
	if a.store != nil {
		a.store.Close()
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

func (a *app) loadInput(ctx context.Context) (model.ModelInput, error) {
	if a.inputFile != "" {
		return model.InputFromJson(a.inputFile)
	}
	return a.store.Load(ctx)
}

// timetabler assembles the generator from configuration; a zero seed picks a time-based one
func (a *app) timetabler(input model.ModelInput, seed uint64) (model.Timetabler, uint64) {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	random := rand.New(rand.NewPCG(seed, seed))

	strategy := model.Strategy{
		Order:       model.LabFirstThenYear,
		MaxAttempts: model.BoundedAttempts(a.cfg.Generator.MaxAttempts),
	}
	if a.cfg.Generator.Ordering == config.MostConstrainedOrdering {
		strategy.Order = model.MostConstrainedFirst(input, a.cfg.Generator.LongSessionSchool)
	}

	return model.NewGreedyTimetabler(random, strategy, a.cfg.Generator.LongSessionSchool, a.logger), seed
}

func printJson(cmd *cobra.Command, value any) error {
	bytes, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot encode output: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(bytes))
	return err
}
