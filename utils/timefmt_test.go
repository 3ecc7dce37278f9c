package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatElapsed(t *testing.T) {
	assert.Equal(t, "00:00:00", FormatElapsed(0))
	assert.Equal(t, "00:00:59", FormatElapsed(59))
	assert.Equal(t, "00:01:00", FormatElapsed(60))
	assert.Equal(t, "01:30:00", FormatElapsed(5400))
	assert.Equal(t, "02:03:04", FormatElapsed(2*3600+3*60+4))

	// Hours are not wrapped at 24.
	assert.Equal(t, "25:00:01", FormatElapsed(25*3600+1))

	// Negative input clamps to zero.
	assert.Equal(t, "00:00:00", FormatElapsed(-5))
}

func TestMinutesToClock(t *testing.T) {
	assert.Equal(t, "08:00", MinutesToClock(480))
	assert.Equal(t, "08:30", MinutesToClock(510))
	assert.Equal(t, "15:00", MinutesToClock(900))
	assert.Equal(t, "18:00", MinutesToClock(1080))
	assert.Equal(t, "00:00", MinutesToClock(0))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 105.0, Round2(105.00000000000001))
	assert.Equal(t, 60.0, Round2(60))
	assert.Equal(t, 81.67, Round2(81.6666666))
	assert.Equal(t, 0.1, Round2(0.10000000000000002))
}
