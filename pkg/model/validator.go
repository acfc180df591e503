package model

import (
	"fmt"
	"slices"

	"github.com/samber/lo"
)

type ValidationResult struct {
	IsValid   bool     `json:"is_valid"`
	Conflicts []string `json:"conflicts"`
	Warnings  []string `json:"warnings"`
}

// Validate audits an arbitrary set of entries for double-bookings and room-type mismatches.
// It never mutates its input, so it can be run on generated or externally edited timetables alike
func Validate(timetable []TimetableEntry, modelInput ModelInput) ValidationResult {
	idx := newIndex(modelInput)
	conflicts := make([]string, 0)
	warnings := make([]string, 0)

	//** Double bookings per time slot
	slotBookings := lo.GroupBy(timetable, func(entry TimetableEntry) uint64 { return entry.TimeSlotId })
	slotIds := lo.Keys(slotBookings)
	slices.Sort(slotIds)

	for _, slotId := range slotIds {
		entries := slotBookings[slotId]

		for _, lecturer := range duplicated(entries, func(entry TimetableEntry) uint64 { return entry.LecturerId }) {
			conflicts = append(conflicts, fmt.Sprintf("Lecturer %v double-booked in time slot %v", lecturer, slotId))
		}
		for _, room := range duplicated(entries, func(entry TimetableEntry) uint64 { return entry.RoomId }) {
			conflicts = append(conflicts, fmt.Sprintf("Room %v double-booked in time slot %v", room, slotId))
		}
		for _, group := range duplicated(entries, func(entry TimetableEntry) uint64 { return entry.StudentGroupId }) {
			conflicts = append(conflicts, fmt.Sprintf("Student group %v double-booked in time slot %v", group, slotId))
		}
	}

	//** Lab requirements
	for _, entry := range timetable {
		unit, unitOk := idx.units[entry.UnitId]
		room, roomOk := idx.rooms[entry.RoomId]
		if unitOk && roomOk && unit.RequiresLab && room.RoomType != LabRoom {
			conflicts = append(conflicts, fmt.Sprintf("Lab unit %v assigned to non-lab room %v", unit.Code, room.Name))
		}
	}

	//** Advisories
	for _, entry := range timetable {
		room, roomOk := idx.rooms[entry.RoomId]
		group, groupOk := idx.groups[entry.StudentGroupId]
		if roomOk && groupOk && room.Capacity < group.Size {
			warnings = append(warnings, fmt.Sprintf("Room %v (capacity %v) is smaller than student group %v (size %v)", room.Name, room.Capacity, group.Id, group.Size))
		}
	}

	load := lo.CountValuesBy(timetable, func(entry TimetableEntry) uint64 { return entry.LecturerId })
	lecturerIds := lo.Keys(load)
	slices.Sort(lecturerIds)
	for _, lecturerId := range lecturerIds {
		lecturer, ok := idx.lecturers[lecturerId]
		if ok && load[lecturerId] > lecturer.MaxUnits {
			warnings = append(warnings, fmt.Sprintf("Lecturer %v is scheduled for %v entries, above the maximum of %v", lecturer.Name, load[lecturerId], lecturer.MaxUnits))
		}
	}

	return ValidationResult{
		IsValid:   len(conflicts) == 0,
		Conflicts: conflicts,
		Warnings:  warnings,
	}
}

// duplicated returns, in ascending order, the ids appearing in more than one entry
func duplicated(entries []TimetableEntry, key func(entry TimetableEntry) uint64) []uint64 {
	counts := lo.CountValuesBy(entries, key)
	ids := lo.Keys(lo.PickBy(counts, func(_ uint64, count int) bool { return count > 1 }))
	slices.Sort(ids)
	return ids
}
