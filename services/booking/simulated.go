package booking

import (
	"hash/fnv"
	"math/rand"
)

// SimulatedAvailability is a development stand-in for the real availability
// source. It marks roughly 30% of a day's slots as taken, seeded from the
// (date, companion) pair so repeated queries within a wizard run agree.
// Production wiring must use the booking repository instead; this has no
// backing semantics.
type SimulatedAvailability struct {
	Window Window
}

func (s SimulatedAvailability) BookedSlotIDs(date, companionID string) (map[string]bool, error) {
	h := fnv.New64a()
	h.Write([]byte(date))
	h.Write([]byte(companionID))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	taken := make(map[string]bool)
	for start := s.Window.OpenHour * 60; start < s.Window.CloseHour*60; start += s.Window.IntervalMins {
		if rng.Float64() < 0.3 {
			taken[SlotID(date, start)] = true
		}
	}
	return taken, nil
}
