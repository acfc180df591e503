package main

import (
	"encoding/csv"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/limaJavier/unit-timetabling/internal/config"
	"github.com/limaJavier/unit-timetabling/internal/logger"
	"github.com/limaJavier/unit-timetabling/pkg/model"
)

var header = []string{"Instance", "Ordering", "Seed", "Units", "UpperBound", "Scheduled", "Skipped", "Valid", "Elapsed(ms)"}

type Instance struct {
	Name       string
	Input      model.ModelInput
	UpperBound int
}

type BenchmarkResult struct {
	Instance  *Instance
	Ordering  string
	Seed      uint64
	Scheduled int
	Skipped   int
	Valid     bool
	Duration  time.Duration
}

type options struct {
	directory         string
	out               string
	seeds             string
	maxAttempts       int
	longSessionSchool string
}

func main() {
	opts := options{}

	cmd := &cobra.Command{
		Use:          "benchmark",
		Short:        "Measures schedule coverage of the generator over a directory of instance files",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts)
		},
	}
	cmd.Flags().StringVar(&opts.directory, "instances", "test/instances", "Directory holding the JSON instance files")
	cmd.Flags().StringVar(&opts.out, "out", "benchmark_results.csv", "Path of the CSV file to write")
	cmd.Flags().StringVar(&opts.seeds, "seeds", "1-10", "Seeds to run, as a comma separated list of values or inclusive ranges")
	cmd.Flags().IntVar(&opts.maxAttempts, "max-attempts", model.DefaultAttemptCap, "Attempt cap per unit")
	cmd.Flags().StringVar(&opts.longSessionSchool, "long-session-school", "SPAS", "Code of the school whose units take long sessions")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(opts options) error {
	log, err := logger.NewLogger(config.LogConfig{Level: "info", Format: "console"})
	if err != nil {
		return err
	}
	defer log.Sync()

	seeds, err := parseSeeds(opts.seeds)
	if err != nil {
		return err
	}
	instances, err := getInstances(opts.directory, opts.longSessionSchool)
	if err != nil {
		return err
	}

	results := make([]BenchmarkResult, 0, len(instances)*len(seeds)*2)
	for _, instance := range instances {
		for _, ordering := range []string{config.LabFirstOrdering, config.MostConstrainedOrdering} {
			for _, seed := range seeds {
				log.Info("benchmarking",
					zap.String("instance", instance.Name),
					zap.String("ordering", ordering),
					zap.Uint64("seed", seed),
				)
				results = append(results, measure(instance, ordering, seed, opts))
			}
		}
	}

	return toCsv(opts.out, results)
}

func getInstances(directory, longSessionSchool string) ([]*Instance, error) {
	files, err := os.ReadDir(directory)
	if err != nil {
		return nil, fmt.Errorf("cannot read directory: %w", err)
	}

	instances := make([]*Instance, 0, len(files))
	for _, file := range files {
		if file.IsDir() || filepath.Ext(file.Name()) != ".json" {
			continue
		}
		filename := filepath.Join(directory, file.Name())
		input, err := model.InputFromJson(filename)
		if err != nil {
			return nil, fmt.Errorf("cannot parse input file %v: %w", filename, err)
		}
		feasibility, err := model.AnalyzeFeasibility(input, longSessionSchool)
		if err != nil {
			return nil, fmt.Errorf("cannot analyze input file %v: %w", filename, err)
		}

		instances = append(instances, &Instance{Name: filename, Input: input, UpperBound: feasibility.UpperBound})
	}
	return instances, nil
}

func measure(instance *Instance, ordering string, seed uint64, opts options) BenchmarkResult {
	strategy := model.Strategy{
		Order:       model.LabFirstThenYear,
		MaxAttempts: model.BoundedAttempts(opts.maxAttempts),
	}
	if ordering == config.MostConstrainedOrdering {
		strategy.Order = model.MostConstrainedFirst(instance.Input, opts.longSessionSchool)
	}
	timetabler := model.NewGreedyTimetabler(rand.New(rand.NewPCG(seed, seed)), strategy, opts.longSessionSchool, nil)

	start := time.Now()
	timetable, report := timetabler.Build(instance.Input)
	duration := time.Since(start)

	return BenchmarkResult{
		Instance:  instance,
		Ordering:  ordering,
		Seed:      seed,
		Scheduled: report.Scheduled,
		Skipped:   len(report.Skipped),
		Valid:     timetabler.Verify(timetable, instance.Input).IsValid,
		Duration:  duration,
	}
}

func toCsv(path string, results []BenchmarkResult) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("cannot write CSV header: %w", err)
	}
	for _, result := range results {
		if err := writer.Write(record(result)); err != nil {
			return fmt.Errorf("cannot write CSV record: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func record(result BenchmarkResult) []string {
	return []string{
		result.Instance.Name,
		result.Ordering,
		fmt.Sprintf("%d", result.Seed),
		fmt.Sprintf("%d", len(result.Instance.Input.Units)),
		fmt.Sprintf("%d", result.Instance.UpperBound),
		fmt.Sprintf("%d", result.Scheduled),
		fmt.Sprintf("%d", result.Skipped),
		fmt.Sprintf("%v", result.Valid),
		fmt.Sprintf("%.3f", float64(result.Duration.Microseconds())/1000),
	}
}

const maxSeedRange = 10_000

// parseSeeds accepts values and inclusive ranges, e.g. "1,4,10-12"
func parseSeeds(seedsStr string) ([]uint64, error) {
	seeds := make([]uint64, 0)
	for _, part := range strings.Split(seedsStr, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		bounds := strings.SplitN(part, "-", 2)
		low, err := strconv.ParseUint(bounds[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid seed %q: %w", part, err)
		}
		high := low
		if len(bounds) == 2 {
			if high, err = strconv.ParseUint(bounds[1], 10, 64); err != nil {
				return nil, fmt.Errorf("invalid seed range %q: %w", part, err)
			} else if high < low {
				return nil, fmt.Errorf("invalid seed range %q: upper bound below lower bound", part)
			} else if high-low >= maxSeedRange {
				return nil, fmt.Errorf("invalid seed range %q: more than %v seeds", part, maxSeedRange)
			}
		}
		for offset := range high - low + 1 {
			seeds = append(seeds, low+offset)
		}
	}

	if len(seeds) == 0 {
		return nil, fmt.Errorf("no seeds given")
	}
	slices.Sort(seeds)
	return lo.Uniq(seeds), nil
}
