package export

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/limaJavier/unit-timetabling/pkg/model"
)

func exportInput() model.ModelInput {
	return model.ModelInput{
		Schools:     []model.School{{Id: 1, Name: "School of Pure and Applied Sciences", Code: "SPAS"}},
		Departments: []model.Department{{Id: 1, Name: "Information Technology", Code: "ITCS", SchoolId: 1}},
		Lecturers:   []model.Lecturer{{Id: 1, Name: "Wanjiku Kamau", EmployeeId: "EMP001", EmploymentType: model.FullTime, MaxUnits: 4}},
		Rooms: []model.Room{
			{Id: 1, Name: "Room 101", Capacity: 60, RoomType: model.NormalRoom},
			{Id: 2, Name: "Computer Lab A", Capacity: 40, RoomType: model.LabRoom},
		},
		Units: []model.Unit{
			{Id: 1, Name: "Databases", Code: "ITCS301", DepartmentId: 1, YearLevel: 3, Semester: 1, RequiresLab: true, LecturerId: 1},
			{Id: 2, Name: "Ethics", Code: "ITCS302", DepartmentId: 1, YearLevel: 3, Semester: 1, LecturerId: 1},
		},
		StudentGroups: []model.StudentGroup{
			{Id: 1, DepartmentId: 1, YearLevel: 3, Size: 35},
			{Id: 2, DepartmentId: 1, YearLevel: 1, Size: 50},
		},
		TimeSlots: model.DefaultTimeSlots(),
	}
}

func TestWorkbook(t *testing.T) {
	//** Arrange
	input := exportInput()
	timetable := []model.TimetableEntry{
		{UnitId: 1, LecturerId: 1, RoomId: 2, TimeSlotId: 1, StudentGroupId: 1, WeekType: model.AllWeeks},  // Monday 07:00-10:00
		{UnitId: 2, LecturerId: 1, RoomId: 1, TimeSlotId: 11, StudentGroupId: 1, WeekType: model.AllWeeks}, // Tuesday 07:00-10:00
	}

	//** Act
	file, err := Workbook(timetable, input)
	require.NoError(t, err)
	defer file.Close()

	//** Assert
	assert.Equal(t, []string{AllSheet, "G1 ITCS Y3", "G2 ITCS Y1"}, file.GetSheetList())

	rows, err := file.GetRows(AllSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, allHeader, rows[0])
	assert.Equal(t, []string{"Monday", "07:00", "10:00", "ITCS301", "Databases", "Wanjiku Kamau", "Information Technology", "Computer Lab A", "3"}, rows[1])

	header, err := file.GetRows("G1 ITCS Y3")
	require.NoError(t, err)
	assert.Equal(t, []string{"Time", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}, header[0])

	// Windows sorted by start then end: 07:00-09:00 comes before 07:00-10:00
	window, err := file.GetCellValue("G1 ITCS Y3", "A3")
	require.NoError(t, err)
	assert.Equal(t, "07:00 - 10:00", window)

	monday, err := file.GetCellValue("G1 ITCS Y3", "B3")
	require.NoError(t, err)
	assert.Equal(t, "ITCS301 (Computer Lab A)", monday)

	tuesday, err := file.GetCellValue("G1 ITCS Y3", "C3")
	require.NoError(t, err)
	assert.Equal(t, "ITCS302 (Room 101)", tuesday)

	other, err := file.GetCellValue("G2 ITCS Y1", "B3")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestWorkbookSharesClashingCell(t *testing.T) {
	//** Arrange
	input := exportInput()
	timetable := []model.TimetableEntry{
		{UnitId: 2, LecturerId: 1, RoomId: 1, TimeSlotId: 1, StudentGroupId: 1, WeekType: model.AllWeeks},
		{UnitId: 1, LecturerId: 1, RoomId: 2, TimeSlotId: 1, StudentGroupId: 1, WeekType: model.AllWeeks},
	}

	//** Act
	file, err := Workbook(timetable, input)
	require.NoError(t, err)
	defer file.Close()

	//** Assert
	value, err := file.GetCellValue("G1 ITCS Y3", "B3")
	require.NoError(t, err)
	assert.Equal(t, "ITCS301 (Computer Lab A)\nITCS302 (Room 101)", value)
}

func TestWriteFile(t *testing.T) {
	//** Arrange
	path := filepath.Join(t.TempDir(), "timetable.xlsx")

	//** Act
	err := WriteFile(path, []model.TimetableEntry{}, exportInput())

	//** Assert
	require.NoError(t, err)
	file, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer file.Close()
	assert.Contains(t, file.GetSheetList(), AllSheet)
}
