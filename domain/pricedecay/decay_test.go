package pricedecay_test

import (
	"testing"
	"time"

	"github.com/osmosis-labs/osmosis/osmomath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liquidrop-labs/liquidrop/domain/pricedecay"
)

var defaultStartTime = time.Unix(1_700_000_000, 0).UTC()

func TestCurrentPrice(t *testing.T) {
	tests := []struct {
		name       string
		startPrice osmomath.Dec
		floor      osmomath.Dec
		decayRate  osmomath.Dec
		elapsed    time.Duration

		expected osmomath.Dec
	}{
		{
			name:       "zero elapsed returns start price",
			startPrice: osmomath.NewDec(100),
			floor:      osmomath.NewDec(1),
			decayRate:  osmomath.MustNewDecFromStr("0.0001"),
			elapsed:    0,

			expected: osmomath.NewDec(100),
		},
		{
			name:       "zero decay rate holds the start price",
			startPrice: osmomath.NewDec(100),
			floor:      osmomath.NewDec(1),
			decayRate:  osmomath.ZeroDec(),
			elapsed:    24 * time.Hour,

			expected: osmomath.NewDec(100),
		},
		{
			name:       "very large elapsed decays to the floor",
			startPrice: osmomath.NewDec(100),
			floor:      osmomath.NewDec(1),
			decayRate:  osmomath.MustNewDecFromStr("0.0001"),
			elapsed:    100 * 365 * 24 * time.Hour,

			expected: osmomath.NewDec(1),
		},
		{
			name:       "floor above start price floors immediately",
			startPrice: osmomath.NewDec(10),
			floor:      osmomath.NewDec(50),
			decayRate:  osmomath.MustNewDecFromStr("0.0001"),
			elapsed:    0,

			expected: osmomath.NewDec(50),
		},
		{
			name:       "now before start time is treated as zero elapsed",
			startPrice: osmomath.NewDec(100),
			floor:      osmomath.NewDec(1),
			decayRate:  osmomath.MustNewDecFromStr("0.0001"),
			elapsed:    -time.Hour,

			expected: osmomath.NewDec(100),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual := pricedecay.CurrentPrice(tt.startPrice, defaultStartTime, tt.floor, tt.decayRate, defaultStartTime.Add(tt.elapsed))

			assert.Equal(t, tt.expected.String(), actual.String())
		})
	}
}

// One half-life of decay: with rate 0.0001/s, ln(2)/rate ~= 6931.47s. After
// 6931 whole seconds the price must sit just above half the start price.
func TestCurrentPrice_HalfLife(t *testing.T) {
	startPrice := osmomath.NewDec(100)
	floor := osmomath.NewDec(1)
	decayRate := osmomath.MustNewDecFromStr("0.0001")

	price := pricedecay.CurrentPrice(startPrice, defaultStartTime, floor, decayRate, defaultStartTime.Add(6931*time.Second))

	require.True(t, price.GT(osmomath.MustNewDecFromStr("50.0023")), "price: %s", price)
	require.True(t, price.LT(osmomath.MustNewDecFromStr("50.0024")), "price: %s", price)
}

func TestCurrentPrice_Monotonicity(t *testing.T) {
	startPrice := osmomath.NewDec(1000)
	floor := osmomath.MustNewDecFromStr("0.5")
	decayRate := osmomath.MustNewDecFromStr("0.001")

	previous := pricedecay.CurrentPrice(startPrice, defaultStartTime, floor, decayRate, defaultStartTime)
	require.Equal(t, startPrice.String(), previous.String())

	// Sweep a wide range of elapsed times, including far past the point where
	// the schedule hits the floor.
	for _, elapsedSeconds := range []int64{1, 2, 10, 60, 600, 3600, 86_400, 864_000, 8_640_000, 86_400_000} {
		current := pricedecay.CurrentPrice(startPrice, defaultStartTime, floor, decayRate, defaultStartTime.Add(time.Duration(elapsedSeconds)*time.Second))

		assert.True(t, current.LTE(previous), "elapsed %d: %s > %s", elapsedSeconds, current, previous)
		assert.True(t, current.GTE(floor), "elapsed %d: %s below floor", elapsedSeconds, current)
		assert.True(t, current.LTE(startPrice), "elapsed %d: %s above start", elapsedSeconds, current)

		previous = current
	}

	// Deep in the tail the schedule is pinned to the floor exactly.
	assert.Equal(t, floor.String(), previous.String())
}
