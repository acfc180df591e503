package model

// slotKey is the occupancy granularity: two slots on the same day starting at the same time are the same key,
// whatever their end time, session type or id. Slots that overlap without sharing a start time do not collide
type slotKey struct {
	day   int
	start Clock
}

func keyOf(slot TimeSlot) slotKey {
	return slotKey{day: slot.DayOfWeek, start: slot.StartTime}
}

// placementState holds the three occupancy indexes of a single generation run
type placementState struct {
	lecturers map[uint64]map[slotKey]bool
	rooms     map[uint64]map[slotKey]bool
	groups    map[uint64]map[slotKey]bool
}

func newPlacementState() *placementState {
	return &placementState{
		lecturers: make(map[uint64]map[slotKey]bool),
		rooms:     make(map[uint64]map[slotKey]bool),
		groups:    make(map[uint64]map[slotKey]bool),
	}
}

// Conflicts returns the axes (lecturer, room, student) already busy at key; an empty result means the placement is free
func (state *placementState) Conflicts(lecturer, room, group uint64, key slotKey) []string {
	conflicts := make([]string, 0, 3)
	if state.lecturers[lecturer][key] {
		conflicts = append(conflicts, "lecturer")
	}
	if state.rooms[room][key] {
		conflicts = append(conflicts, "room")
	}
	if state.groups[group][key] {
		conflicts = append(conflicts, "student")
	}
	return conflicts
}

func (state *placementState) Occupy(lecturer, room, group uint64, key slotKey) {
	occupy(state.lecturers, lecturer, key)
	occupy(state.rooms, room, key)
	occupy(state.groups, group, key)
}

func occupy(occupancy map[uint64]map[slotKey]bool, resource uint64, key slotKey) {
	if _, ok := occupancy[resource]; !ok {
		occupancy[resource] = make(map[slotKey]bool)
	}
	occupancy[resource][key] = true
}
