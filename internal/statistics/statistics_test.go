package statistics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatisticsEmpty(t *testing.T) {
	stats := &Statistics{}

	assert.Zero(t, stats.Mean())
	assert.Zero(t, stats.Variance())
	assert.Zero(t, stats.StdDev())
	assert.Zero(t, stats.StdError())
	assert.Zero(t, stats.Median())
	assert.Zero(t, stats.WinRate())
	assert.Zero(t, stats.MeanHands())
	assert.NoError(t, stats.Validate())
}

func TestStatisticsSinglePlacement(t *testing.T) {
	stats := &Statistics{}
	stats.Add(Placement{Place: 1, Seats: 4, Stack: 4000, Hands: 120, Seed: 9})

	assert.Equal(t, 1, stats.Runs)
	assert.Equal(t, 1.0, stats.Mean())
	assert.Zero(t, stats.Variance())
	assert.Equal(t, 1.0, stats.WinRate())
	assert.Equal(t, 120.0, stats.MeanHands())
	assert.Equal(t, 1, stats.BestPlace)
	assert.Zero(t, stats.Busts)
	assert.NoError(t, stats.Validate())
}

func TestStatisticsMultiplePlacements(t *testing.T) {
	stats := &Statistics{}
	for i, place := range []int{1, 2, 3, 4, 2} {
		busted := 0
		if place > 1 {
			busted = 10 * place
		}
		stats.Add(Placement{Place: place, Seats: 4, BustedRound: busted, Hands: 100, Seed: int64(i)})
	}

	require.NoError(t, stats.Validate())
	assert.Equal(t, 5, stats.Runs)
	assert.InDelta(t, 2.4, stats.Mean(), 1e-9)
	// Sample variance of 1,2,3,4,2.
	assert.InDelta(t, 1.3, stats.Variance(), 1e-9)
	assert.InDelta(t, math.Sqrt(1.3), stats.StdDev(), 1e-9)
	assert.InDelta(t, 0.2, stats.WinRate(), 1e-9)
	assert.Equal(t, 4, stats.Busts)
	assert.Equal(t, 2.0, stats.Median())
	assert.Equal(t, 1.0, stats.Percentile(0))
	assert.Equal(t, 4.0, stats.Percentile(1))
	assert.Equal(t, int64(3), stats.WorstSeed)

	low, high := stats.ConfidenceInterval95()
	assert.Less(t, low, stats.Mean())
	assert.Greater(t, high, stats.Mean())
	assert.InDelta(t, stats.Mean(), (low+high)/2, 1e-9)
}

func TestStatisticsValidateDetectsDrift(t *testing.T) {
	stats := &Statistics{}
	stats.Add(Placement{Place: 2})
	stats.SumPlace = 5
	assert.Error(t, stats.Validate())

	stats = &Statistics{}
	stats.Add(Placement{Place: 1})
	stats.Runs = 2
	assert.Error(t, stats.Validate())
}

func TestByAgentRanked(t *testing.T) {
	b := ByAgent{}
	b.Add("random", Placement{Place: 2})
	b.Add("random", Placement{Place: 3})
	b.Add("aggressive", Placement{Place: 1})
	b.Add("aggressive", Placement{Place: 1})
	b.Add("folder", Placement{Place: 3})
	b.Add("callingstation", Placement{Place: 3})

	assert.Equal(t, []string{"aggressive", "random", "callingstation", "folder"}, b.Ranked())
	assert.Equal(t, 2, b["aggressive"].Wins)
}
