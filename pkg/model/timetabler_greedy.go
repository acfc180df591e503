package model

import (
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

type greedyTimetabler struct {
	random            RandomSource
	strategy          Strategy
	longSessionSchool string
	logger            *zap.Logger
}

// NewGreedyTimetabler returns a bounded-retry randomized greedy Timetabler.
// Units whose school code equals longSessionSchool are scheduled on long sessions, every other unit on short ones.
// A nil random source is replaced by a time-seeded one
func NewGreedyTimetabler(random RandomSource, strategy Strategy, longSessionSchool string, logger *zap.Logger) Timetabler {
	if random == nil {
		seed := uint64(time.Now().UnixNano())
		random = rand.New(rand.NewPCG(seed, seed))
	}
	defaults := DefaultStrategy()
	if strategy.Order == nil {
		strategy.Order = defaults.Order
	}
	if strategy.MaxAttempts == nil {
		strategy.MaxAttempts = defaults.MaxAttempts
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &greedyTimetabler{
		random:            random,
		strategy:          strategy,
		longSessionSchool: longSessionSchool,
		logger:            logger,
	}
}

func (timetabler *greedyTimetabler) Build(modelInput ModelInput) ([]TimetableEntry, BuildReport) {
	report := BuildReport{
		RunId:    uuid.NewString(),
		Units:    len(modelInput.Units),
		Skipped:  make([]SkippedUnit, 0),
		Attempts: make(map[uint64]int),
	}
	logger := timetabler.logger.With(zap.String("run", report.RunId))
	timetable := make([]TimetableEntry, 0, len(modelInput.Units))

	logger.Info("generating timetable",
		zap.Int("units", len(modelInput.Units)),
		zap.Int("time_slots", len(modelInput.TimeSlots)),
		zap.Int("rooms", len(modelInput.Rooms)),
	)

	//** Structural emptiness
	if len(modelInput.Units) == 0 || len(modelInput.TimeSlots) == 0 || len(modelInput.Rooms) == 0 {
		logger.Warn("nothing to schedule: units, time slots and rooms must all be non-empty")
		report.Reason = EmptyInput
		return timetable, report
	}

	//** Initialize dependencies
	idx := newIndex(modelInput)
	state := newPlacementState()
	roomsByType := lo.GroupBy(modelInput.Rooms, func(room Room) RoomType { return room.RoomType })
	slotsBySession := lo.GroupBy(modelInput.TimeSlots, func(slot TimeSlot) SessionType { return slot.SessionType })

	skip := func(unit Unit, reason SkipReason, attempts int) {
		report.Skipped = append(report.Skipped, SkippedUnit{UnitId: unit.Id, Reason: reason, Attempts: attempts})
		logger.Warn("unit left unscheduled",
			zap.String("unit", unit.Code),
			zap.String("reason", string(reason)),
			zap.Int("attempts", attempts),
		)
	}

	//** Place units in priority order
	for _, unit := range timetabler.strategy.Order(modelInput.Units) {
		group, ok := idx.studentGroup(unit)
		if !ok {
			skip(unit, NoStudentGroup, 0)
			continue
		}

		sessionType, ok := idx.sessionType(unit, timetabler.longSessionSchool)
		if !ok {
			skip(unit, NoSessionProfile, 0)
			continue
		}

		rooms := roomsByType[requiredRoomType(unit)]
		if len(rooms) == 0 {
			skip(unit, NoSuitableRoom, 0)
			continue
		}
		slots := slotsBySession[sessionType]
		if len(slots) == 0 {
			skip(unit, NoTimeSlot, 0)
			continue
		}

		entry, attempts, ok := timetabler.place(unit, group, slots, rooms, state, logger)
		report.Attempts[unit.Id] = attempts
		if !ok {
			skip(unit, AttemptsExhausted, attempts)
			continue
		}

		timetable = append(timetable, entry)
		logger.Debug("unit scheduled",
			zap.String("unit", unit.Code),
			zap.Uint64("time_slot", entry.TimeSlotId),
			zap.Uint64("room", entry.RoomId),
			zap.Int("attempts", attempts),
		)
	}

	report.Scheduled = len(timetable)
	logger.Info("timetable generated",
		zap.Int("scheduled", report.Scheduled),
		zap.Int("skipped", len(report.Skipped)),
	)
	return timetable, report
}

// place runs up to the strategy's budget of random trials and commits the first conflict-free (slot, room) pair
func (timetabler *greedyTimetabler) place(
	unit Unit,
	group StudentGroup,
	slots []TimeSlot,
	rooms []Room,
	state *placementState,
	logger *zap.Logger,
) (TimetableEntry, int, bool) {
	maxAttempts := timetabler.strategy.MaxAttempts(len(slots), len(rooms))

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		slot := slots[timetabler.random.IntN(len(slots))]
		room := rooms[timetabler.random.IntN(len(rooms))]
		key := keyOf(slot)

		if conflicts := state.Conflicts(unit.LecturerId, room.Id, group.Id, key); len(conflicts) > 0 {
			logger.Debug("placement attempt failed",
				zap.String("unit", unit.Code),
				zap.Int("attempt", attempt),
				zap.String("conflicts", strings.Join(conflicts, ", ")),
			)
			continue
		}

		state.Occupy(unit.LecturerId, room.Id, group.Id, key)
		return TimetableEntry{
			UnitId:         unit.Id,
			LecturerId:     unit.LecturerId,
			RoomId:         room.Id,
			TimeSlotId:     slot.Id,
			StudentGroupId: group.Id,
			WeekType:       AllWeeks,
		}, attempt, true
	}

	return TimetableEntry{}, maxAttempts, false
}

func (timetabler *greedyTimetabler) Verify(timetable []TimetableEntry, modelInput ModelInput) ValidationResult {
	return Validate(timetable, modelInput)
}
