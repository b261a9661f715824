package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidTimeSlot is returned when a slot does not end after it starts.
var ErrInvalidTimeSlot = errors.New("time slot must end after it starts")

// minuteEpsilon absorbs float noise when comparing hour durations in minutes.
const minuteEpsilon = 1e-9

// TimeSlot is a time-of-day range. Start is inclusive, End is exclusive.
type TimeSlot struct {
	Start int `bson:"start" json:"start"` // minutes from midnight (e.g., 540 for 9:00 AM)
	End   int `bson:"end" json:"end"`     // minutes from midnight (e.g., 1020 for 5:00 PM)
}

// NewTimeSlot builds a slot and enforces End > Start.
func NewTimeSlot(start, end int) (TimeSlot, error) {
	if end <= start {
		return TimeSlot{}, fmt.Errorf("%w: %s-%s", ErrInvalidTimeSlot, FormatClock(start), FormatClock(end))
	}
	return TimeSlot{Start: start, End: end}, nil
}

// Valid reports whether the slot ends after it starts.
func (s TimeSlot) Valid() bool {
	return s.End > s.Start
}

// Minutes returns the slot length in minutes.
func (s TimeSlot) Minutes() int {
	return s.End - s.Start
}

// Duration returns the slot length in hours.
func (s TimeSlot) Duration() float64 {
	return float64(s.End-s.Start) / 60
}

// Overlaps is strict: slots that only touch do not overlap.
func (s TimeSlot) Overlaps(other TimeSlot) bool {
	return s.Start < other.End && s.End > other.Start
}

// Contains reports whether minute falls in [Start, End).
func (s TimeSlot) Contains(minute int) bool {
	return minute >= s.Start && minute < s.End
}

// MeetsMinimum reports whether the slot lasts at least hours (inclusive).
func (s TimeSlot) MeetsMinimum(hours float64) bool {
	return float64(s.Minutes()) >= hours*60-minuteEpsilon
}

// Label renders the slot as "09:00-17:00".
func (s TimeSlot) Label() string {
	return FormatClock(s.Start) + "-" + FormatClock(s.End)
}

// FormatClock renders minutes from midnight as HH:MM.
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ParseClock parses HH:MM into minutes from midnight.
func ParseClock(raw string) (int, error) {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", raw)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", raw)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", raw)
	}
	return h*60 + m, nil
}
