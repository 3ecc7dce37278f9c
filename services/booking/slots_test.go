package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAvailability struct {
	taken map[string]bool
	err   error
}

func (s stubAvailability) BookedSlotIDs(date, companionID string) (map[string]bool, error) {
	return s.taken, s.err
}

func TestGenerateSlotsWithinWindow(t *testing.T) {
	g := NewSlotGenerator(DefaultWindow(), nil)

	slots, err := g.Generate("2026-09-01", 60, "")
	require.NoError(t, err)
	require.Len(t, slots, 19)

	assert.Equal(t, "08:00", slots[0].StartTime)
	assert.Equal(t, "09:00", slots[0].EndTime)

	last := slots[len(slots)-1]
	assert.Equal(t, "17:00", last.StartTime)
	assert.Equal(t, "18:00", last.EndTime)

	closeMins := g.Window.CloseHour * 60
	for i, slot := range slots {
		assert.LessOrEqual(t, slot.End, closeMins, "slot %s overruns closing time", slot.ID)
		assert.Equal(t, slot.Start+60, slot.End)
		if i > 0 {
			assert.Equal(t, 30, slot.Start-slots[i-1].Start, "slots must be chronological at 30-minute steps")
		}
	}
}

func TestGenerateLongestDurationEndsAtClose(t *testing.T) {
	g := NewSlotGenerator(DefaultWindow(), nil)

	slots, err := g.Generate("2026-09-01", 180, "")
	require.NoError(t, err)
	require.Len(t, slots, 15)

	last := slots[len(slots)-1]
	assert.Equal(t, "15:00", last.StartTime)
	assert.Equal(t, "18:00", last.EndTime)
}

func TestGenerateSlotCountShrinksWithDuration(t *testing.T) {
	g := NewSlotGenerator(DefaultWindow(), nil)

	prev := -1
	for _, minutes := range []int{60, 90, 120, 150, 180} {
		slots, err := g.Generate("2026-09-01", minutes, "")
		require.NoError(t, err)
		if prev >= 0 {
			assert.LessOrEqual(t, len(slots), prev, "a longer lesson must never add candidates")
		}
		prev = len(slots)
	}
}

func TestGenerateStableSlotIDs(t *testing.T) {
	g := NewSlotGenerator(DefaultWindow(), nil)

	first, err := g.Generate("2026-09-01", 90, "")
	require.NoError(t, err)
	second, err := g.Generate("2026-09-01", 90, "")
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
	}
	assert.Equal(t, "2026-09-01-08:00", first[0].ID)
	assert.Equal(t, SlotID("2026-09-01", first[3].Start), first[3].ID)
}

func TestGenerateRejectsInvalidInput(t *testing.T) {
	g := NewSlotGenerator(DefaultWindow(), nil)

	_, err := g.Generate("not-a-date", 60, "")
	assert.True(t, HasCode(err, CodeInvalidSelection))

	_, err = g.Generate("2026-09-01", 45, "")
	assert.True(t, HasCode(err, CodeInvalidSelection))
}

func TestGenerateAppliesAvailabilityOverlay(t *testing.T) {
	takenID := SlotID("2026-09-01", 510) // 08:30
	g := NewSlotGenerator(DefaultWindow(), stubAvailability{
		taken: map[string]bool{takenID: true},
	})

	slots, err := g.Generate("2026-09-01", 60, "")
	require.NoError(t, err)

	for _, slot := range slots {
		if slot.ID == takenID {
			assert.False(t, slot.Available)
		} else {
			assert.True(t, slot.Available)
		}
	}
}

func TestSimulatedAvailabilityIsDeterministic(t *testing.T) {
	sim := SimulatedAvailability{Window: DefaultWindow()}

	first, err := sim.BookedSlotIDs("2026-09-01", "companion-1")
	require.NoError(t, err)
	second, err := sim.BookedSlotIDs("2026-09-01", "companion-1")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
