package model

// SessionWindow is a start/end pair of one session-duration table
type SessionWindow struct {
	Start Clock
	End   Clock
}

const (
	FirstDay = 1 // Monday
	LastDay  = 5 // Friday
)

var DayNames = map[int]string{
	1: "Monday",
	2: "Tuesday",
	3: "Wednesday",
	4: "Thursday",
	5: "Friday",
}

// LongSessionWindows are the 3-hour blocks; the gaps model tea and lunch breaks
var LongSessionWindows = []SessionWindow{
	{NewClock(7, 0), NewClock(10, 0)},
	{NewClock(10, 30), NewClock(13, 30)},
	{NewClock(14, 0), NewClock(17, 0)},
	{NewClock(16, 0), NewClock(19, 0)},
}

// ShortSessionWindows are the 2-hour blocks
var ShortSessionWindows = []SessionWindow{
	{NewClock(7, 0), NewClock(9, 0)},
	{NewClock(9, 0), NewClock(11, 0)},
	{NewClock(11, 0), NewClock(13, 0)},
	{NewClock(14, 0), NewClock(16, 0)},
	{NewClock(16, 0), NewClock(18, 0)},
	{NewClock(17, 0), NewClock(19, 0)},
}

// GenerateTimeSlots builds the weekly catalog: for each day, one slot per long window followed by one per short window.
// Ids are assigned sequentially from 1 in emission order
func GenerateTimeSlots(longWindows, shortWindows []SessionWindow) []TimeSlot {
	timeSlots := make([]TimeSlot, 0, (LastDay-FirstDay+1)*(len(longWindows)+len(shortWindows)))

	add := func(day int, window SessionWindow, sessionType SessionType) {
		timeSlots = append(timeSlots, TimeSlot{
			Id:          uint64(len(timeSlots) + 1),
			DayOfWeek:   day,
			StartTime:   window.Start,
			EndTime:     window.End,
			SessionType: sessionType,
		})
	}

	for day := FirstDay; day <= LastDay; day++ {
		for _, window := range longWindows {
			add(day, window, LongSession)
		}
		for _, window := range shortWindows {
			add(day, window, ShortSession)
		}
	}

	return timeSlots
}

func DefaultTimeSlots() []TimeSlot {
	return GenerateTimeSlots(LongSessionWindows, ShortSessionWindows)
}
