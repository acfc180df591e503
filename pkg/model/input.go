package model

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
)

type EmploymentType string

const (
	FullTime EmploymentType = "full_time"
	PartTime EmploymentType = "part_time"
)

type RoomType string

const (
	NormalRoom RoomType = "normal"
	LabRoom    RoomType = "lab"
)

type SessionType string

const (
	LongSession  SessionType = "long"  // 3-hour blocks
	ShortSession SessionType = "short" // 2-hour blocks
)

type WeekType string

const (
	AllWeeks  WeekType = "all"
	OddWeeks  WeekType = "odd"
	EvenWeeks WeekType = "even"
)

type School struct {
	Id   uint64 `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

type Department struct {
	Id       uint64 `json:"id"`
	Name     string `json:"name"`
	Code     string `json:"code"`
	SchoolId uint64 `json:"school_id"`
}

type Unit struct {
	Id           uint64 `json:"id"`
	Name         string `json:"name"`
	Code         string `json:"code"`
	DepartmentId uint64 `json:"department_id"`
	YearLevel    int    `json:"year_level"`
	Semester     int    `json:"semester"`
	RequiresLab  bool   `json:"requires_lab"`
	LecturerId   uint64 `json:"lecturer_id"`
}

type Lecturer struct {
	Id             uint64         `json:"id"`
	Name           string         `json:"name"`
	EmployeeId     string         `json:"employee_id"`
	EmploymentType EmploymentType `json:"employment_type"`
	MaxUnits       int            `json:"max_units"`
	Phone          string         `json:"phone,omitempty"`
	Email          string         `json:"email,omitempty"`
}

type Room struct {
	Id       uint64   `json:"id"`
	Name     string   `json:"name"`
	Capacity int      `json:"capacity"`
	RoomType RoomType `json:"room_type"`
}

type TimeSlot struct {
	Id          uint64      `json:"id"`
	DayOfWeek   int         `json:"day_of_week"` // 1 = Monday, 5 = Friday
	StartTime   Clock       `json:"start_time"`
	EndTime     Clock       `json:"end_time"`
	SessionType SessionType `json:"session_type"`
}

type StudentGroup struct {
	Id           uint64 `json:"id"`
	DepartmentId uint64 `json:"department_id"`
	YearLevel    int    `json:"year_level"`
	Size         int    `json:"size"`
}

// TimetableEntry is the atomic scheduling decision: one unit taught by one lecturer to one group in one room at one slot
type TimetableEntry struct {
	UnitId         uint64   `json:"unit_id"`
	LecturerId     uint64   `json:"lecturer_id"`
	RoomId         uint64   `json:"room_id"`
	TimeSlotId     uint64   `json:"time_slot_id"`
	StudentGroupId uint64   `json:"student_group_id"`
	WeekType       WeekType `json:"week_type"`
}

// ModelInput is the entity snapshot a generation or validation run works on
type ModelInput struct {
	Schools       []School       `json:"schools"`
	Departments   []Department   `json:"departments"`
	Lecturers     []Lecturer     `json:"lecturers"`
	Rooms         []Room         `json:"rooms"`
	Units         []Unit         `json:"units"`
	StudentGroups []StudentGroup `json:"student_groups"`
	TimeSlots     []TimeSlot     `json:"time_slots"`
}

func InputFromJson(file string) (ModelInput, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return ModelInput{}, fmt.Errorf("cannot read input file: %w", err)
	}
	var inputJson map[string]any
	if err := json.Unmarshal(bytes, &inputJson); err != nil {
		return ModelInput{}, err
	}

	return DecodeInput(inputJson)
}

// DecodeInput decodes a generic JSON document into a ModelInput and checks its invariants
func DecodeInput(inputJson map[string]any) (ModelInput, error) {
	var input ModelInput
	if err := decode(inputJson, &input); err != nil {
		return ModelInput{}, err
	}
	if err := input.Check(); err != nil {
		return ModelInput{}, err
	}
	return input, nil
}

func decode(source any, target any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: clockDecodeHook,
		TagName:    "json",
		Result:     target,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(source); err != nil {
		return fmt.Errorf("cannot decode input: %w", err)
	}
	return nil
}

// Check verifies the structural invariants of every entity and returns the first violation found
func (input ModelInput) Check() error {
	for _, unit := range input.Units {
		if unit.YearLevel < 1 || unit.YearLevel > 4 {
			return fmt.Errorf("unit \"%v\" has year level %v outside [1,4]", unit.Code, unit.YearLevel)
		} else if unit.Semester != 1 && unit.Semester != 2 {
			return fmt.Errorf("unit \"%v\" has semester %v outside {1,2}", unit.Code, unit.Semester)
		}
	}
	for _, lecturer := range input.Lecturers {
		if lecturer.MaxUnits <= 0 {
			return fmt.Errorf("lecturer \"%v\" must have a positive max units: %v", lecturer.Name, lecturer.MaxUnits)
		} else if !slices.Contains([]EmploymentType{FullTime, PartTime}, lecturer.EmploymentType) {
			return fmt.Errorf("lecturer \"%v\" has an invalid employment type: %v", lecturer.Name, lecturer.EmploymentType)
		}
	}
	for _, room := range input.Rooms {
		if !slices.Contains([]RoomType{NormalRoom, LabRoom}, room.RoomType) {
			return fmt.Errorf("room \"%v\" has an invalid room type: %v", room.Name, room.RoomType)
		}
	}
	for _, slot := range input.TimeSlots {
		if slot.DayOfWeek < 1 || slot.DayOfWeek > 5 {
			return fmt.Errorf("time slot %v has day %v outside [1,5]", slot.Id, slot.DayOfWeek)
		} else if !slices.Contains([]SessionType{LongSession, ShortSession}, slot.SessionType) {
			return fmt.Errorf("time slot %v has an invalid session type: %v", slot.Id, slot.SessionType)
		}
	}
	for _, group := range input.StudentGroups {
		if group.YearLevel < 1 || group.YearLevel > 4 {
			return fmt.Errorf("student group %v has year level %v outside [1,4]", group.Id, group.YearLevel)
		}
	}
	return nil
}

// DecodeEntries decodes a generic JSON array into timetable entries, defaulting the week type to "all"
func DecodeEntries(entriesJson any) ([]TimetableEntry, error) {
	entries := make([]TimetableEntry, 0)
	if entriesJson == nil {
		return entries, nil
	}
	if err := decode(entriesJson, &entries); err != nil {
		return nil, err
	}
	return lo.Map(entries, func(entry TimetableEntry, _ int) TimetableEntry {
		if entry.WeekType == "" {
			entry.WeekType = AllWeeks
		}
		return entry
	}), nil
}

// index is a read-only lookup over a ModelInput shared by the validator, the views and the generator
type index struct {
	schools     map[uint64]School
	departments map[uint64]Department
	lecturers   map[uint64]Lecturer
	rooms       map[uint64]Room
	units       map[uint64]Unit
	groups      map[uint64]StudentGroup
	slots       map[uint64]TimeSlot
	cohorts     map[[2]uint64]StudentGroup // (department, year level) -> first matching group
}

func newIndex(input ModelInput) index {
	cohorts := make(map[[2]uint64]StudentGroup)
	for _, group := range input.StudentGroups {
		key := [2]uint64{group.DepartmentId, uint64(group.YearLevel)}
		if _, ok := cohorts[key]; !ok {
			cohorts[key] = group
		}
	}

	return index{
		schools:     lo.KeyBy(input.Schools, func(school School) uint64 { return school.Id }),
		departments: lo.KeyBy(input.Departments, func(department Department) uint64 { return department.Id }),
		lecturers:   lo.KeyBy(input.Lecturers, func(lecturer Lecturer) uint64 { return lecturer.Id }),
		rooms:       lo.KeyBy(input.Rooms, func(room Room) uint64 { return room.Id }),
		units:       lo.KeyBy(input.Units, func(unit Unit) uint64 { return unit.Id }),
		groups:      lo.KeyBy(input.StudentGroups, func(group StudentGroup) uint64 { return group.Id }),
		slots:       lo.KeyBy(input.TimeSlots, func(slot TimeSlot) uint64 { return slot.Id }),
		cohorts:     cohorts,
	}
}

// sessionType resolves the session profile of a unit through its department's school
func (idx index) sessionType(unit Unit, longSessionSchool string) (SessionType, bool) {
	department, ok := idx.departments[unit.DepartmentId]
	if !ok {
		return "", false
	}
	school, ok := idx.schools[department.SchoolId]
	if !ok {
		return "", false
	}
	if school.Code == longSessionSchool {
		return LongSession, true
	}
	return ShortSession, true
}

// studentGroup resolves the group matching the unit's department and year level
func (idx index) studentGroup(unit Unit) (StudentGroup, bool) {
	group, ok := idx.cohorts[[2]uint64{unit.DepartmentId, uint64(unit.YearLevel)}]
	return group, ok
}
