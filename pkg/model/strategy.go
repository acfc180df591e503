package model

import (
	"cmp"
	"slices"
)

// UnitOrdering returns the order in which units are placed. It must not modify its argument
type UnitOrdering func(units []Unit) []Unit

// AttemptBudget returns how many random trials a unit gets given its candidate slot and room counts
type AttemptBudget func(slots, rooms int) int

type Strategy struct {
	Order       UnitOrdering
	MaxAttempts AttemptBudget
}

const DefaultAttemptCap = 100

func DefaultStrategy() Strategy {
	return Strategy{
		Order:       LabFirstThenYear,
		MaxAttempts: BoundedAttempts(DefaultAttemptCap),
	}
}

// LabFirstThenYear places lab units first, then ascending year level, keeping input order otherwise
func LabFirstThenYear(units []Unit) []Unit {
	ordered := slices.Clone(units)
	slices.SortStableFunc(ordered, func(a, b Unit) int {
		if a.RequiresLab != b.RequiresLab {
			if a.RequiresLab {
				return -1
			}
			return 1
		}
		return cmp.Compare(a.YearLevel, b.YearLevel)
	})
	return ordered
}

// MostConstrainedFirst places units with the fewest candidate (slot, room) pairs first.
// Ties fall back to LabFirstThenYear
func MostConstrainedFirst(modelInput ModelInput, longSessionSchool string) UnitOrdering {
	idx := newIndex(modelInput)

	rooms := make(map[RoomType]int)
	for _, room := range modelInput.Rooms {
		rooms[room.RoomType]++
	}
	slots := make(map[SessionType]int)
	for _, slot := range modelInput.TimeSlots {
		slots[slot.SessionType]++
	}

	candidates := func(unit Unit) int {
		sessionType, ok := idx.sessionType(unit, longSessionSchool)
		if !ok {
			return 0
		}
		return slots[sessionType] * rooms[requiredRoomType(unit)]
	}

	return func(units []Unit) []Unit {
		ordered := LabFirstThenYear(units)
		slices.SortStableFunc(ordered, func(a, b Unit) int {
			return cmp.Compare(candidates(a), candidates(b))
		})
		return ordered
	}
}

// BoundedAttempts caps the budget at limit trials: min(limit, slots*rooms)
func BoundedAttempts(limit int) AttemptBudget {
	return func(slots, rooms int) int {
		return min(limit, slots*rooms)
	}
}

// ExhaustiveAttempts grants as many trials as there are candidate pairs
func ExhaustiveAttempts(slots, rooms int) int {
	return slots * rooms
}

func requiredRoomType(unit Unit) RoomType {
	if unit.RequiresLab {
		return LabRoom
	}
	return NormalRoom
}
