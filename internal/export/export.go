package export

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
	"github.com/xuri/excelize/v2"

	"github.com/limaJavier/unit-timetabling/pkg/model"
)

const AllSheet = "All"

var allHeader = []string{"Day", "Start", "End", "Code", "Course", "Lecturer", "Department", "Room", "Year"}

type window struct {
	start model.Clock
	end   model.Clock
}

// Workbook lays the timetable out as an "All" sheet listing every entry plus one grid sheet per student group,
// with time windows as rows and Monday..Friday as columns
func Workbook(timetable []model.TimetableEntry, modelInput model.ModelInput) (*excelize.File, error) {
	file := excelize.NewFile()

	headerStyle, err := file.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		file.Close()
		return nil, err
	}

	if err := writeAll(file, timetable, modelInput, headerStyle); err != nil {
		file.Close()
		return nil, err
	}

	groups := slices.SortedFunc(slices.Values(modelInput.StudentGroups), func(a, b model.StudentGroup) int {
		return cmp.Compare(a.Id, b.Id)
	})
	for _, group := range groups {
		if err := writeGroup(file, group, timetable, modelInput, headerStyle); err != nil {
			file.Close()
			return nil, err
		}
	}

	if err := file.DeleteSheet("Sheet1"); err != nil {
		file.Close()
		return nil, err
	}
	allIndex, err := file.GetSheetIndex(AllSheet)
	if err != nil {
		file.Close()
		return nil, err
	}
	file.SetActiveSheet(allIndex)
	return file, nil
}

func WriteFile(path string, timetable []model.TimetableEntry, modelInput model.ModelInput) error {
	file, err := Workbook(timetable, modelInput)
	if err != nil {
		return fmt.Errorf("cannot build workbook: %w", err)
	}
	defer file.Close()

	if err := file.SaveAs(path); err != nil {
		return fmt.Errorf("cannot save workbook: %w", err)
	}
	return nil
}

// GroupSheetName names the sheet of a student group, e.g. "G3 ITCS Y2"
func GroupSheetName(group model.StudentGroup, modelInput model.ModelInput) string {
	department, ok := lo.Find(modelInput.Departments, func(department model.Department) bool {
		return department.Id == group.DepartmentId
	})
	code := "?"
	if ok {
		code = department.Code
	}
	name := fmt.Sprintf("G%d %s Y%d", group.Id, code, group.YearLevel)
	if len(name) > excelize.MaxSheetNameLength {
		name = name[:excelize.MaxSheetNameLength]
	}
	return name
}

func writeAll(file *excelize.File, timetable []model.TimetableEntry, modelInput model.ModelInput, headerStyle int) error {
	if _, err := file.NewSheet(AllSheet); err != nil {
		return err
	}

	if err := writeHeader(file, AllSheet, allHeader, headerStyle); err != nil {
		return err
	}
	for i, entry := range model.FormatTimetable(timetable, modelInput) {
		values := []any{
			entry.Day, entry.StartTime, entry.EndTime, entry.Code, entry.Course,
			entry.Lecturer, entry.Department, entry.Room, entry.YearLevel,
		}
		for column, value := range values {
			cell, err := excelize.CoordinatesToCellName(column+1, i+2)
			if err != nil {
				return err
			}
			if err := file.SetCellValue(AllSheet, cell, value); err != nil {
				return err
			}
		}
	}
	return file.SetColWidth(AllSheet, "A", "I", 16)
}

func writeGroup(
	file *excelize.File,
	group model.StudentGroup,
	timetable []model.TimetableEntry,
	modelInput model.ModelInput,
	headerStyle int,
) error {
	sheet := GroupSheetName(group, modelInput)
	if _, err := file.NewSheet(sheet); err != nil {
		return err
	}

	header := []string{"Time"}
	for day := model.FirstDay; day <= model.LastDay; day++ {
		header = append(header, model.DayNames[day])
	}
	if err := writeHeader(file, sheet, header, headerStyle); err != nil {
		return err
	}

	units := lo.KeyBy(modelInput.Units, func(unit model.Unit) uint64 { return unit.Id })
	rooms := lo.KeyBy(modelInput.Rooms, func(room model.Room) uint64 { return room.Id })
	slots := lo.KeyBy(modelInput.TimeSlots, func(slot model.TimeSlot) uint64 { return slot.Id })

	windows := lo.Uniq(lo.Map(modelInput.TimeSlots, func(slot model.TimeSlot, _ int) window {
		return window{start: slot.StartTime, end: slot.EndTime}
	}))
	slices.SortFunc(windows, func(a, b window) int {
		return cmp.Or(cmp.Compare(a.start, b.start), cmp.Compare(a.end, b.end))
	})
	rows := make(map[window]int, len(windows))
	for i, w := range windows {
		rows[w] = i + 2
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := file.SetCellValue(sheet, cell, fmt.Sprintf("%v - %v", w.start, w.end)); err != nil {
			return err
		}
	}

	//** Collect the lines of every cell before writing so that clashing entries share a cell
	cells := make(map[string][]string)
	for _, entry := range timetable {
		if entry.StudentGroupId != group.Id {
			continue
		}
		slot, ok := slots[entry.TimeSlotId]
		if !ok {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(slot.DayOfWeek-model.FirstDay+2, rows[window{slot.StartTime, slot.EndTime}])
		if err != nil {
			return err
		}
		cells[cell] = append(cells[cell], fmt.Sprintf("%v (%v)", units[entry.UnitId].Code, rooms[entry.RoomId].Name))
	}
	for cell, lines := range cells {
		slices.Sort(lines)
		if err := file.SetCellValue(sheet, cell, strings.Join(lines, "\n")); err != nil {
			return err
		}
	}

	return file.SetColWidth(sheet, "A", "F", 22)
}

func writeHeader(file *excelize.File, sheet string, header []string, style int) error {
	for column, title := range header {
		cell, err := excelize.CoordinatesToCellName(column+1, 1)
		if err != nil {
			return err
		}
		if err := file.SetCellValue(sheet, cell, title); err != nil {
			return err
		}
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	return file.SetCellStyle(sheet, "A1", last, style)
}
