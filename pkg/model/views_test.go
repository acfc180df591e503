package model

import (
	"errors"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func viewsTimetable() []TimetableEntry {
	// Slot 15 is Tuesday 07:00 (short), slot 1 is Monday 07:00 (long), slot 7 is Monday 11:00 (short)
	return []TimetableEntry{
		{UnitId: 17, LecturerId: 5, RoomId: 3, TimeSlotId: 15, StudentGroupId: 9, WeekType: AllWeeks},
		{UnitId: 1, LecturerId: 1, RoomId: 19, TimeSlotId: 1, StudentGroupId: 1, WeekType: AllWeeks},
		{UnitId: 18, LecturerId: 6, RoomId: 4, TimeSlotId: 7, StudentGroupId: 9, WeekType: AllWeeks},
	}
}

func TestFormatTimetable(t *testing.T) {
	//** Act
	formatted := FormatTimetable(viewsTimetable(), universityInput())

	//** Assert
	require.Len(t, formatted, 3)
	assert.Equal(t, FormattedEntry{
		Course:      "Information Technology and Computer Science unit 1",
		Code:        "ITCS100",
		Lecturer:    "Lecturer 01",
		Department:  "Information Technology and Computer Science",
		Day:         "Monday",
		DayOfWeek:   1,
		StartTime:   "07:00",
		EndTime:     "10:00",
		Room:        "Computer Lab A",
		YearLevel:   1,
		RequiresLab: true,
	}, formatted[0])
	assert.Equal(t, []string{"Monday", "Monday", "Tuesday"}, lo.Map(formatted, func(entry FormattedEntry, _ int) string { return entry.Day }))
	assert.Equal(t, "11:00", formatted[1].StartTime)
}

func TestTimetableByDepartment(t *testing.T) {
	//** Act
	nursing, err := TimetableByDepartment(viewsTimetable(), universityInput(), "NURS")

	//** Assert
	require.NoError(t, err)
	assert.Len(t, nursing, 2)
	assert.True(t, lo.EveryBy(nursing, func(entry FormattedEntry) bool { return entry.Department == "Nursing" }))

	_, err = TimetableByDepartment(viewsTimetable(), universityInput(), "LAW")
	assert.True(t, errors.Is(err, ErrDepartmentNotFound))
}

func TestTimetableByLecturer(t *testing.T) {
	//** Act
	entries, err := TimetableByLecturer(viewsTimetable(), universityInput(), 5)

	//** Assert
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Lecturer 05", entries[0].Lecturer)

	_, err = TimetableByLecturer(viewsTimetable(), universityInput(), 404)
	assert.True(t, errors.Is(err, ErrLecturerNotFound))
}

func TestComputeStatistics(t *testing.T) {
	//** Act
	statistics := ComputeStatistics(universityInput(), viewsTimetable())

	//** Assert
	assert.Equal(t, Statistics{
		Schools:           2,
		Departments:       4,
		Lecturers:         12,
		Units:             32,
		Rooms:             20,
		StudentGroups:     16,
		TimeSlots:         50,
		TimetableEntries:  3,
		LabRooms:          2,
		NormalRooms:       18,
		FullTimeLecturers: 8,
		PartTimeLecturers: 4,
		UnitsRequiringLab: 4,
	}, statistics)
}

func TestAnalyzeConflicts(t *testing.T) {
	//** Arrange
	timetable := []TimetableEntry{
		{UnitId: 2, LecturerId: 3, RoomId: 1, TimeSlotId: 5, StudentGroupId: 1},
		{UnitId: 4, LecturerId: 3, RoomId: 1, TimeSlotId: 5, StudentGroupId: 2},
		{UnitId: 6, LecturerId: 4, RoomId: 2, TimeSlotId: 6, StudentGroupId: 3},
	}

	//** Act
	details := AnalyzeConflicts(timetable, universityInput())

	//** Assert
	assert.Equal(t, []ConflictDetail{
		{Kind: LecturerConflict, TimeSlotId: 5, Day: "Monday", Time: "07:00 - 09:00", ResourceId: 3, ConflictingUnits: []uint64{2, 4}},
		{Kind: RoomConflict, TimeSlotId: 5, Day: "Monday", Time: "07:00 - 09:00", ResourceId: 1, ConflictingUnits: []uint64{2, 4}},
	}, details)
	assert.Empty(t, AnalyzeConflicts(timetable[2:], universityInput()))
}
