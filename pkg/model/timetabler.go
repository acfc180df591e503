package model

type Timetabler interface {
	// Build assigns every unit it can to a (room, time slot) pair. Units that cannot be placed are
	// listed in the report rather than failing the run
	Build(
		modelInput ModelInput,
	) (timetable []TimetableEntry, report BuildReport)

	Verify(
		timetable []TimetableEntry,
		modelInput ModelInput,
	) ValidationResult
}

// RandomSource is the only source of non-determinism of a Timetabler; *rand.Rand from math/rand/v2 satisfies it
type RandomSource interface {
	IntN(n int) int
}

type SkipReason string

const (
	EmptyInput        SkipReason = "empty_input"
	NoStudentGroup    SkipReason = "no_student_group"
	NoSessionProfile  SkipReason = "no_session_profile"
	NoSuitableRoom    SkipReason = "no_suitable_room"
	NoTimeSlot        SkipReason = "no_time_slot"
	AttemptsExhausted SkipReason = "attempts_exhausted"
)

type SkippedUnit struct {
	UnitId   uint64     `json:"unit_id"`
	Reason   SkipReason `json:"reason"`
	Attempts int        `json:"attempts"`
}

type BuildReport struct {
	RunId     string         `json:"run_id"`
	Units     int            `json:"units"`
	Scheduled int            `json:"scheduled"`
	Skipped   []SkippedUnit  `json:"skipped"`
	Attempts  map[uint64]int `json:"attempts"`         // Random trials spent per unit
	Reason    SkipReason     `json:"reason,omitempty"` // Set only when the whole run exited early
}
