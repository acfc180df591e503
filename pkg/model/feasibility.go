package model

import (
	"slices"

	"github.com/onsi/gomega/matchers/support/goraph/bipartitegraph"
	"github.com/samber/lo"
)

type FeasibilityReport struct {
	Units        int      `json:"units"`
	Resolvable   int      `json:"resolvable"`   // Units with a student group, a session profile and candidate rooms and slots
	UpperBound   int      `json:"upper_bound"`  // Most units any placement could schedule
	Unresolvable []uint64 `json:"unresolvable"` // Units that cannot be considered at all
	Unmatched    []uint64 `json:"unmatched"`    // Resolvable units left out of the maximum matching
}

type roomKey struct {
	room uint64
	key  slotKey
}

// AnalyzeFeasibility bounds the number of units any placement can schedule. Each unit is matched to a distinct
// (room, slot-key) resource of the right room type and session profile; lecturer and student group clashes
// are ignored, so the bound is optimistic
func AnalyzeFeasibility(modelInput ModelInput, longSessionSchool string) (FeasibilityReport, error) {
	idx := newIndex(modelInput)
	report := FeasibilityReport{
		Units:        len(modelInput.Units),
		Unresolvable: make([]uint64, 0),
		Unmatched:    make([]uint64, 0),
	}

	//** Candidate keys per session profile
	keysBySession := make(map[SessionType]map[slotKey]bool)
	for _, slot := range modelInput.TimeSlots {
		if _, ok := keysBySession[slot.SessionType]; !ok {
			keysBySession[slot.SessionType] = make(map[slotKey]bool)
		}
		keysBySession[slot.SessionType][keyOf(slot)] = true
	}

	//** Resolve units
	units := make([]Unit, 0, len(modelInput.Units))
	sessions := make(map[uint64]SessionType)
	for _, unit := range modelInput.Units {
		_, hasGroup := idx.studentGroup(unit)
		sessionType, hasSession := idx.sessionType(unit, longSessionSchool)
		hasRoom := lo.SomeBy(modelInput.Rooms, func(room Room) bool { return room.RoomType == requiredRoomType(unit) })

		if !hasGroup || !hasSession || !hasRoom || len(keysBySession[sessionType]) == 0 {
			report.Unresolvable = append(report.Unresolvable, unit.Id)
			continue
		}
		units = append(units, unit)
		sessions[unit.Id] = sessionType
	}
	report.Resolvable = len(units)
	if len(units) == 0 {
		return report, nil
	}

	//** Resources
	resources := make([]roomKey, 0)
	seen := make(map[roomKey]bool)
	for _, room := range modelInput.Rooms {
		for _, slot := range modelInput.TimeSlots {
			resource := roomKey{room: room.Id, key: keyOf(slot)}
			if !seen[resource] {
				seen[resource] = true
				resources = append(resources, resource)
			}
		}
	}

	neighbors := func(unitAny any, resourceAny any) (bool, error) {
		unit := unitAny.(Unit)
		resource := resourceAny.(roomKey)

		return idx.rooms[resource.room].RoomType == requiredRoomType(unit) && keysBySession[sessions[unit.Id]][resource.key], nil
	}

	unitsAny, resourcesAny := lo.Map(units, func(unit Unit, _ int) any { return unit }), lo.Map(resources, func(resource roomKey, _ int) any { return resource })

	graph, err := bipartitegraph.NewBipartiteGraph(unitsAny, resourcesAny, neighbors)
	if err != nil {
		return FeasibilityReport{}, err
	}

	matching := graph.LargestMatching()
	report.UpperBound = len(matching)

	matched := make(map[int]bool)
	for _, edge := range matching {
		matched[edge.Node1] = true
	}
	for i, unit := range units {
		if !matched[i] {
			report.Unmatched = append(report.Unmatched, unit.Id)
		}
	}
	slices.Sort(report.Unmatched)

	return report, nil
}
