package model

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
)

func TestDefaultTimeSlots(t *testing.T) {
	//** Act
	first := DefaultTimeSlots()
	second := DefaultTimeSlots()

	//** Assert
	assert.Len(t, first, 50)
	assert.Equal(t, first, second)

	perDay := lo.GroupBy(first, func(slot TimeSlot) int { return slot.DayOfWeek })
	assert.Len(t, perDay, 5)
	for day := FirstDay; day <= LastDay; day++ {
		slots := perDay[day]
		assert.Equal(t, 4, lo.CountBy(slots, func(slot TimeSlot) bool { return slot.SessionType == LongSession }))
		assert.Equal(t, 6, lo.CountBy(slots, func(slot TimeSlot) bool { return slot.SessionType == ShortSession }))
	}
}

func TestGenerateTimeSlotsLayout(t *testing.T) {
	//** Act
	slots := DefaultTimeSlots()

	//** Assert
	for i, slot := range slots {
		assert.Equal(t, uint64(i+1), slot.Id)
	}

	// Each day emits its long windows before its short ones
	monday := slots[:10]
	assert.Equal(t, TimeSlot{Id: 1, DayOfWeek: 1, StartTime: NewClock(7, 0), EndTime: NewClock(10, 0), SessionType: LongSession}, monday[0])
	assert.Equal(t, TimeSlot{Id: 4, DayOfWeek: 1, StartTime: NewClock(16, 0), EndTime: NewClock(19, 0), SessionType: LongSession}, monday[3])
	assert.Equal(t, TimeSlot{Id: 5, DayOfWeek: 1, StartTime: NewClock(7, 0), EndTime: NewClock(9, 0), SessionType: ShortSession}, monday[4])
	assert.Equal(t, TimeSlot{Id: 10, DayOfWeek: 1, StartTime: NewClock(17, 0), EndTime: NewClock(19, 0), SessionType: ShortSession}, monday[9])
	assert.Equal(t, 5, slots[49].DayOfWeek)
}

func TestGenerateTimeSlotsCustomTables(t *testing.T) {
	//** Arrange
	long := []SessionWindow{{NewClock(8, 0), NewClock(11, 0)}}

	//** Act
	slots := GenerateTimeSlots(long, nil)

	//** Assert
	assert.Len(t, slots, 5)
	assert.True(t, lo.EveryBy(slots, func(slot TimeSlot) bool { return slot.SessionType == LongSession }))
}
