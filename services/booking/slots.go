package booking

import (
	"fmt"
	"time"

	"blissdrive/models"
	"blissdrive/utils"
)

// Window defines the working-hours bounds and slot-start granularity used by
// the slot generator. Hours are naive local wall-clock values anchored to the
// requested date; no timezone conversion is performed.
type Window struct {
	OpenHour     int // inclusive, e.g. 8
	CloseHour    int // exclusive for starts; lessons may end exactly here
	IntervalMins int // slot-start granularity, e.g. 30
}

// DefaultWindow returns the standard 08:00-18:00 window with 30-minute starts.
func DefaultWindow() Window {
	return Window{OpenHour: 8, CloseHour: 18, IntervalMins: 30}
}

// AvailabilitySource tells the generator which slot IDs are already taken on
// a date. Production wiring backs this with the booking repository; the
// simulated source exists only for development.
type AvailabilitySource interface {
	BookedSlotIDs(date, companionID string) (map[string]bool, error)
}

// SlotGenerator produces the ordered sequence of candidate time windows a
// student may book for a given date and lesson duration. Generation is purely
// derived from its inputs and safe to recompute on every date or duration
// change; availability is an overlay supplied by the AvailabilitySource.
type SlotGenerator struct {
	Window       Window
	Availability AvailabilitySource
}

// NewSlotGenerator builds a generator over the given window and source.
func NewSlotGenerator(window Window, availability AvailabilitySource) *SlotGenerator {
	return &SlotGenerator{Window: window, Availability: availability}
}

// SlotID derives the deterministic identity of a slot from its date and start
// minute: "<date>-<HH:MM>". The same (date, start) always maps to the same ID.
func SlotID(date string, startMins int) string {
	return fmt.Sprintf("%s-%s", date, utils.MinutesToClock(startMins))
}

// Generate returns the chronological candidate slots for (date, duration).
// A candidate starting at minute s is included only if s+duration ends at or
// before closing time; a lesson may finish exactly at close but never after.
// Longer durations therefore yield fewer, earlier-ending candidates. An empty
// result is valid: it means no slot of that length fits before closing.
func (g *SlotGenerator) Generate(date string, durationMinutes int, companionID string) ([]models.TimeSlot, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, NewInvalidSelectionError(fmt.Sprintf("invalid date %q", date))
	}
	if !ValidDuration(durationMinutes) {
		return nil, NewInvalidSelectionError(fmt.Sprintf("duration %d is not a catalog option", durationMinutes))
	}

	taken := map[string]bool{}
	if g.Availability != nil {
		var err error
		taken, err = g.Availability.BookedSlotIDs(date, companionID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve slot availability for %s: %w", date, err)
		}
	}

	openMins := g.Window.OpenHour * 60
	closeMins := g.Window.CloseHour * 60

	var slots []models.TimeSlot
	for start := openMins; start < closeMins; start += g.Window.IntervalMins {
		end := start + durationMinutes
		if end > closeMins {
			continue
		}
		id := SlotID(date, start)
		slots = append(slots, models.TimeSlot{
			ID:        id,
			Date:      date,
			Start:     start,
			End:       end,
			StartTime: utils.MinutesToClock(start),
			EndTime:   utils.MinutesToClock(end),
			Available: !taken[id],
		})
	}
	return slots, nil
}
