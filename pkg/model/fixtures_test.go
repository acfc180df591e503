package model

import (
	"fmt"
	"math/rand/v2"
)

const longSessionSchool = "SPAS"

func newRandom(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

// universityInput builds a snapshot shaped like a small university: two schools, four departments, twenty rooms
// (two of them labs), the default slot catalog, one student group per department and year, and units spread over them
func universityInput() ModelInput {
	input := ModelInput{
		Schools: []School{
			{Id: 1, Name: "School of Pure and Applied Sciences", Code: "SPAS"},
			{Id: 2, Name: "School of Health Sciences", Code: "SHS"},
		},
		Departments: []Department{
			{Id: 1, Name: "Information Technology and Computer Science", Code: "ITCS", SchoolId: 1},
			{Id: 2, Name: "Mathematics and Computing", Code: "MAC", SchoolId: 1},
			{Id: 3, Name: "Nursing", Code: "NURS", SchoolId: 2},
			{Id: 4, Name: "Psychology", Code: "PSYC", SchoolId: 2},
		},
		TimeSlots: DefaultTimeSlots(),
	}

	for i := 1; i <= 18; i++ {
		input.Rooms = append(input.Rooms, Room{Id: uint64(i), Name: fmt.Sprintf("Room %02d", i), Capacity: 60, RoomType: NormalRoom})
	}
	input.Rooms = append(input.Rooms,
		Room{Id: 19, Name: "Computer Lab A", Capacity: 40, RoomType: LabRoom},
		Room{Id: 20, Name: "Computer Lab B", Capacity: 35, RoomType: LabRoom},
	)

	for i := 1; i <= 12; i++ {
		employment, maxUnits := FullTime, 4
		if i > 8 {
			employment, maxUnits = PartTime, 2
		}
		input.Lecturers = append(input.Lecturers, Lecturer{
			Id:             uint64(i),
			Name:           fmt.Sprintf("Lecturer %02d", i),
			EmployeeId:     fmt.Sprintf("L%03d", i),
			EmploymentType: employment,
			MaxUnits:       maxUnits,
		})
	}

	groupId := uint64(1)
	for _, department := range input.Departments {
		for year := 1; year <= 4; year++ {
			input.StudentGroups = append(input.StudentGroups, StudentGroup{Id: groupId, DepartmentId: department.Id, YearLevel: year, Size: 30})
			groupId++
		}
	}

	unitId := uint64(1)
	for _, department := range input.Departments {
		for year := 1; year <= 4; year++ {
			for n := 0; n < 2; n++ {
				input.Units = append(input.Units, Unit{
					Id:           unitId,
					Name:         fmt.Sprintf("%v unit %v", department.Name, unitId),
					Code:         fmt.Sprintf("%v%d%02d", department.Code, year, n),
					DepartmentId: department.Id,
					YearLevel:    year,
					Semester:     1,
					RequiresLab:  department.Code == "ITCS" && n == 0,
					LecturerId:   (unitId-1)%12 + 1,
				})
				unitId++
			}
		}
	}

	return input
}

// labScenarioInput is one lab unit, one lab room, one normal room, ten free long slots, one lecturer and its group
func labScenarioInput() ModelInput {
	slots := make([]TimeSlot, 0, 10)
	for i := range 10 {
		window := LongSessionWindows[i%len(LongSessionWindows)]
		slots = append(slots, TimeSlot{
			Id:          uint64(i + 1),
			DayOfWeek:   i/len(LongSessionWindows) + 1,
			StartTime:   window.Start,
			EndTime:     window.End,
			SessionType: LongSession,
		})
	}

	return ModelInput{
		Schools:     []School{{Id: 1, Name: "School of Pure and Applied Sciences", Code: "SPAS"}},
		Departments: []Department{{Id: 1, Name: "Information Technology", Code: "ITCS", SchoolId: 1}},
		Lecturers:   []Lecturer{{Id: 1, Name: "Wanjiku Kamau", EmployeeId: "FT001", EmploymentType: FullTime, MaxUnits: 4}},
		Rooms: []Room{
			{Id: 1, Name: "Room 01", Capacity: 50, RoomType: NormalRoom},
			{Id: 2, Name: "Computer Lab A", Capacity: 40, RoomType: LabRoom},
		},
		Units: []Unit{
			{Id: 1, Name: "Operating Systems", Code: "ITCS301", DepartmentId: 1, YearLevel: 3, Semester: 1, RequiresLab: true, LecturerId: 1},
		},
		StudentGroups: []StudentGroup{{Id: 1, DepartmentId: 1, YearLevel: 3, Size: 35}},
		TimeSlots:     slots,
	}
}
