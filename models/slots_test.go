package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeSlotOverlapsIsSymmetric(t *testing.T) {
	slots := []TimeSlot{
		{Start: 540, End: 600},
		{Start: 600, End: 660},
		{Start: 570, End: 630},
		{Start: 480, End: 1020},
		{Start: 1020, End: 1080},
		{Start: 0, End: 1},
	}
	for _, a := range slots {
		for _, b := range slots {
			assert.Equal(t, a.Overlaps(b), b.Overlaps(a), "%s vs %s", a.Label(), b.Label())
		}
	}
}

func TestTimeSlotTouchingDoesNotOverlap(t *testing.T) {
	a := TimeSlot{Start: 540, End: 600}
	b := TimeSlot{Start: 600, End: 660}
	assert.False(t, a.Overlaps(b))
	assert.True(t, a.Overlaps(TimeSlot{Start: 599, End: 601}))
}

func TestTimeSlotContainsIsHalfOpen(t *testing.T) {
	s := TimeSlot{Start: 540, End: 1020}
	assert.True(t, s.Contains(540))
	assert.True(t, s.Contains(1019))
	assert.False(t, s.Contains(1020))
	assert.False(t, s.Contains(539))
}

func TestTimeSlotDurationAndMinimum(t *testing.T) {
	s := TimeSlot{Start: 540, End: 1020}
	assert.Equal(t, 8.0, s.Duration())
	assert.True(t, s.MeetsMinimum(8))
	assert.False(t, s.MeetsMinimum(8.01))

	short := TimeSlot{Start: 600, End: 666}
	assert.True(t, short.MeetsMinimum(1.1))
}

func TestNewTimeSlotRejectsEmptyRange(t *testing.T) {
	_, err := NewTimeSlot(600, 600)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidTimeSlot))

	s, err := NewTimeSlot(540, 600)
	require.NoError(t, err)
	assert.Equal(t, "09:00-10:00", s.Label())
}

func TestParseClock(t *testing.T) {
	m, err := ParseClock("14:30")
	require.NoError(t, err)
	assert.Equal(t, 870, m)

	for _, bad := range []string{"", "24:00", "9", "09:60", "aa:bb"} {
		_, err := ParseClock(bad)
		assert.Error(t, err, bad)
	}
}
