package booking

import (
	"testing"

	"blissdrive/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidDuration(t *testing.T) {
	for _, opt := range DurationOptions {
		assert.True(t, ValidDuration(opt.Minutes), "catalog option %d should be valid", opt.Minutes)
	}
	assert.False(t, ValidDuration(45))
	assert.False(t, ValidDuration(0))
	assert.False(t, ValidDuration(210))
}

func TestHourlyRate(t *testing.T) {
	rate, err := HourlyRate(models.LessonPractice)
	require.NoError(t, err)
	assert.Equal(t, 60.0, rate)

	rate, err = HourlyRate(models.LessonRoadTest)
	require.NoError(t, err)
	assert.Equal(t, 98.0, rate)

	_, err = HourlyRate(models.LessonType("freestyle"))
	assert.Error(t, err)
}

func TestHourlyRatesMatchesTable(t *testing.T) {
	rates := HourlyRates()
	require.Len(t, rates, 2)
	for lt, rate := range rates {
		expected, err := HourlyRate(lt)
		require.NoError(t, err)
		assert.Equal(t, expected, rate)
	}

	// The returned map is a copy; callers cannot mutate the table.
	rates[models.LessonPractice] = 1
	rate, err := HourlyRate(models.LessonPractice)
	require.NoError(t, err)
	assert.Equal(t, 60.0, rate)
}

func TestEstimatePrice(t *testing.T) {
	price, err := EstimatePrice(models.LessonPractice, 90)
	require.NoError(t, err)
	assert.Equal(t, 90.0, price)

	price, err = EstimatePrice(models.LessonPractice, 60)
	require.NoError(t, err)
	assert.Equal(t, 60.0, price)

	price, err = EstimatePrice(models.LessonRoadTest, 150)
	require.NoError(t, err)
	assert.Equal(t, 245.0, price)

	_, err = EstimatePrice(models.LessonType("freestyle"), 60)
	assert.Error(t, err)
}
