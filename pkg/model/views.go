package model

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/samber/lo"
)

type FormattedEntry struct {
	Course      string `json:"course"`
	Code        string `json:"code"`
	Lecturer    string `json:"lecturer"`
	Department  string `json:"department"`
	Day         string `json:"day"`
	DayOfWeek   int    `json:"-"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Room        string `json:"room"`
	YearLevel   int    `json:"year_level"`
	RequiresLab bool   `json:"requires_lab"`
}

type Statistics struct {
	Schools           int `json:"total_schools"`
	Departments       int `json:"total_departments"`
	Lecturers         int `json:"total_lecturers"`
	Units             int `json:"total_units"`
	Rooms             int `json:"total_rooms"`
	StudentGroups     int `json:"total_student_groups"`
	TimeSlots         int `json:"total_time_slots"`
	TimetableEntries  int `json:"total_timetable_entries"`
	LabRooms          int `json:"lab_rooms"`
	NormalRooms       int `json:"normal_rooms"`
	FullTimeLecturers int `json:"full_time_lecturers"`
	PartTimeLecturers int `json:"part_time_lecturers"`
	UnitsRequiringLab int `json:"units_requiring_lab"`
}

type ConflictKind string

const (
	LecturerConflict     ConflictKind = "lecturer_conflict"
	RoomConflict         ConflictKind = "room_conflict"
	StudentGroupConflict ConflictKind = "student_group_conflict"
)

type ConflictDetail struct {
	Kind             ConflictKind `json:"type"`
	TimeSlotId       uint64       `json:"time_slot_id"`
	Day              string       `json:"day"`
	Time             string       `json:"time"`
	ResourceId       uint64       `json:"resource_id"`
	ConflictingUnits []uint64     `json:"conflicting_units"`
}

// FormatTimetable resolves every entry into display names, ordered by day and start time.
// Entries referencing unknown units or slots are dropped
func FormatTimetable(timetable []TimetableEntry, modelInput ModelInput) []FormattedEntry {
	idx := newIndex(modelInput)

	formatted := make([]FormattedEntry, 0, len(timetable))
	for _, entry := range timetable {
		unit, unitOk := idx.units[entry.UnitId]
		slot, slotOk := idx.slots[entry.TimeSlotId]
		if !unitOk || !slotOk {
			continue
		}

		formatted = append(formatted, FormattedEntry{
			Course:      unit.Name,
			Code:        unit.Code,
			Lecturer:    idx.lecturers[entry.LecturerId].Name,
			Department:  idx.departments[unit.DepartmentId].Name,
			Day:         DayNames[slot.DayOfWeek],
			DayOfWeek:   slot.DayOfWeek,
			StartTime:   slot.StartTime.String(),
			EndTime:     slot.EndTime.String(),
			Room:        idx.rooms[entry.RoomId].Name,
			YearLevel:   unit.YearLevel,
			RequiresLab: unit.RequiresLab,
		})
	}

	slices.SortStableFunc(formatted, func(a, b FormattedEntry) int {
		return cmp.Or(
			cmp.Compare(a.DayOfWeek, b.DayOfWeek),
			cmp.Compare(a.StartTime, b.StartTime),
			cmp.Compare(a.Code, b.Code),
		)
	})
	return formatted
}

func TimetableByDepartment(timetable []TimetableEntry, modelInput ModelInput, departmentCode string) ([]FormattedEntry, error) {
	department, ok := lo.Find(modelInput.Departments, func(department Department) bool {
		return department.Code == departmentCode
	})
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrDepartmentNotFound, departmentCode)
	}

	idx := newIndex(modelInput)
	return FormatTimetable(lo.Filter(timetable, func(entry TimetableEntry, _ int) bool {
		return idx.units[entry.UnitId].DepartmentId == department.Id
	}), modelInput), nil
}

func TimetableByLecturer(timetable []TimetableEntry, modelInput ModelInput, lecturerId uint64) ([]FormattedEntry, error) {
	if !lo.ContainsBy(modelInput.Lecturers, func(lecturer Lecturer) bool { return lecturer.Id == lecturerId }) {
		return nil, fmt.Errorf("%w: %v", ErrLecturerNotFound, lecturerId)
	}

	return FormatTimetable(lo.Filter(timetable, func(entry TimetableEntry, _ int) bool {
		return entry.LecturerId == lecturerId
	}), modelInput), nil
}

func ComputeStatistics(modelInput ModelInput, timetable []TimetableEntry) Statistics {
	return Statistics{
		Schools:           len(modelInput.Schools),
		Departments:       len(modelInput.Departments),
		Lecturers:         len(modelInput.Lecturers),
		Units:             len(modelInput.Units),
		Rooms:             len(modelInput.Rooms),
		StudentGroups:     len(modelInput.StudentGroups),
		TimeSlots:         len(modelInput.TimeSlots),
		TimetableEntries:  len(timetable),
		LabRooms:          lo.CountBy(modelInput.Rooms, func(room Room) bool { return room.RoomType == LabRoom }),
		NormalRooms:       lo.CountBy(modelInput.Rooms, func(room Room) bool { return room.RoomType == NormalRoom }),
		FullTimeLecturers: lo.CountBy(modelInput.Lecturers, func(lecturer Lecturer) bool { return lecturer.EmploymentType == FullTime }),
		PartTimeLecturers: lo.CountBy(modelInput.Lecturers, func(lecturer Lecturer) bool { return lecturer.EmploymentType == PartTime }),
		UnitsRequiringLab: lo.CountBy(modelInput.Units, func(unit Unit) bool { return unit.RequiresLab }),
	}
}

// AnalyzeConflicts itemizes every double-booking with the units involved in it
func AnalyzeConflicts(timetable []TimetableEntry, modelInput ModelInput) []ConflictDetail {
	idx := newIndex(modelInput)
	details := make([]ConflictDetail, 0)

	slotBookings := lo.GroupBy(timetable, func(entry TimetableEntry) uint64 { return entry.TimeSlotId })
	slotIds := lo.Keys(slotBookings)
	slices.Sort(slotIds)

	axes := []struct {
		kind     ConflictKind
		resource func(entry TimetableEntry) uint64
	}{
		{LecturerConflict, func(entry TimetableEntry) uint64 { return entry.LecturerId }},
		{RoomConflict, func(entry TimetableEntry) uint64 { return entry.RoomId }},
		{StudentGroupConflict, func(entry TimetableEntry) uint64 { return entry.StudentGroupId }},
	}

	for _, slotId := range slotIds {
		entries := slotBookings[slotId]
		if len(entries) < 2 {
			continue
		}
		slot := idx.slots[slotId]

		for _, axis := range axes {
			for _, resource := range duplicated(entries, axis.resource) {
				units := lo.FilterMap(entries, func(entry TimetableEntry, _ int) (uint64, bool) {
					return entry.UnitId, axis.resource(entry) == resource
				})
				details = append(details, ConflictDetail{
					Kind:             axis.kind,
					TimeSlotId:       slotId,
					Day:              DayNames[slot.DayOfWeek],
					Time:             fmt.Sprintf("%v - %v", slot.StartTime, slot.EndTime),
					ResourceId:       resource,
					ConflictingUnits: units,
				})
			}
		}
	}

	return details
}
