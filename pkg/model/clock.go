package model

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Clock is a wall-clock time of day expressed in minutes after midnight
type Clock uint16

func NewClock(hour, minute int) Clock {
	return Clock(hour*60 + minute)
}

func ParseClock(value string) (Clock, error) {
	hourStr, minuteStr, found := strings.Cut(strings.TrimSpace(value), ":")
	if !found {
		return 0, fmt.Errorf("invalid clock \"%v\": expected HH:MM", value)
	}
	// Accept HH:MM:SS as produced by SQL time columns, seconds are dropped
	minuteStr, _, _ = strings.Cut(minuteStr, ":")

	hour, err := strconv.Atoi(hourStr)
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid clock \"%v\": hour out of range", value)
	}
	minute, err := strconv.Atoi(minuteStr)
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid clock \"%v\": minute out of range", value)
	}
	return NewClock(hour, minute), nil
}

func (clock Clock) Hour() int {
	return int(clock) / 60
}

func (clock Clock) Minute() int {
	return int(clock) % 60
}

func (clock Clock) String() string {
	return fmt.Sprintf("%02d:%02d", clock.Hour(), clock.Minute())
}

func (clock Clock) MarshalText() ([]byte, error) {
	return []byte(clock.String()), nil
}

func (clock *Clock) UnmarshalText(text []byte) error {
	parsed, err := ParseClock(string(text))
	if err != nil {
		return err
	}
	*clock = parsed
	return nil
}

// clockDecodeHook lets mapstructure turn "HH:MM" strings into Clock values
func clockDecodeHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf(Clock(0)) || from.Kind() != reflect.String {
		return data, nil
	}
	return ParseClock(reflect.ValueOf(data).String())
}
