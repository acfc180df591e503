package main

import (
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/limaJavier/unit-timetabling/pkg/model"
)

func TestParseSeeds(t *testing.T) {
	seeds, err := parseSeeds("1-3")
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 2, 3}, seeds)

	seeds, err = parseSeeds("10, 4,2-4")
	require.NoError(t, err)
	assert.Equal(t, []uint64{2, 3, 4, 10}, seeds)

	_, err = parseSeeds("5-1")
	assert.Error(t, err)
	_, err = parseSeeds("a")
	assert.Error(t, err)
	_, err = parseSeeds("")
	assert.Error(t, err)
}

func TestParseSeedsAtUpperLimit(t *testing.T) {
	seeds, err := parseSeeds("18446744073709551614-18446744073709551615")
	require.NoError(t, err)
	assert.Equal(t, []uint64{math.MaxUint64 - 1, math.MaxUint64}, seeds)

	_, err = parseSeeds("0-18446744073709551615")
	assert.Error(t, err)
	_, err = parseSeeds("1-10000")
	assert.NoError(t, err)
	_, err = parseSeeds("1-10001")
	assert.Error(t, err)
}

func TestRecord(t *testing.T) {
	instance := &Instance{
		Name:       "small.json",
		Input:      model.ModelInput{Units: make([]model.Unit, 3)},
		UpperBound: 3,
	}

	row := record(BenchmarkResult{
		Instance:  instance,
		Ordering:  "lab-first",
		Seed:      7,
		Scheduled: 2,
		Skipped:   1,
		Valid:     true,
		Duration:  1500 * time.Microsecond,
	})

	assert.Equal(t, []string{"small.json", "lab-first", "7", "3", "3", "2", "1", "true", "1.500"}, row)
	assert.Len(t, row, len(header))
}

func TestRun(t *testing.T) {
	//** Arrange
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lab.json"), []byte(`{
		"schools": [{"id": 1, "name": "School of Pure and Applied Sciences", "code": "SPAS"}],
		"departments": [{"id": 1, "name": "Information Technology", "code": "ITCS", "school_id": 1}],
		"lecturers": [{"id": 1, "name": "Wanjiku Kamau", "employee_id": "EMP001", "employment_type": "full_time", "max_units": 4}],
		"rooms": [{"id": 1, "name": "Computer Lab A", "capacity": 40, "room_type": "lab"}],
		"units": [{"id": 1, "name": "Databases", "code": "ITCS301", "department_id": 1, "year_level": 3, "semester": 1, "requires_lab": true, "lecturer_id": 1}],
		"student_groups": [{"id": 1, "department_id": 1, "year_level": 3, "size": 35}],
		"time_slots": [{"id": 1, "day_of_week": 1, "start_time": "07:00", "end_time": "10:00", "session_type": "long"}]
	}`), 0666))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0666))
	out := filepath.Join(dir, "results.csv")

	//** Act
	err := run(options{directory: dir, out: out, seeds: "1-2", maxAttempts: 100, longSessionSchool: "SPAS"})

	//** Assert
	require.NoError(t, err)
	file, err := os.Open(out)
	require.NoError(t, err)
	defer file.Close()
	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 1+2*2)
	assert.Equal(t, header, rows[0])
	for _, row := range rows[1:] {
		assert.Equal(t, "1", row[5])
		assert.Equal(t, "true", row[7])
	}
}
