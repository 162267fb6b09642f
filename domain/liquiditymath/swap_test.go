package liquiditymath_test

import (
	"testing"

	"github.com/osmosis-labs/osmosis/osmomath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liquidrop-labs/liquidrop/domain/liquiditymath"
)

func TestComputeSwapAmountV2(t *testing.T) {
	tests := []struct {
		name    string
		reserve osmomath.Int
		deposit osmomath.Int
		fee     osmomath.Dec

		expected    osmomath.Int
		expectError bool
	}{
		{
			name:    "zero reserve returns zero",
			reserve: osmomath.ZeroInt(),
			deposit: osmomath.NewInt(1000),
			fee:     osmomath.MustNewDecFromStr("0.003"),

			expected: osmomath.ZeroInt(),
		},
		{
			name:    "zero deposit returns zero",
			reserve: osmomath.NewInt(1_000_000),
			deposit: osmomath.ZeroInt(),
			fee:     osmomath.MustNewDecFromStr("0.003"),

			expected: osmomath.ZeroInt(),
		},
		{
			name:    "classic 30 bps pool",
			reserve: osmomath.NewInt(1_000_000),
			deposit: osmomath.NewInt(1000),
			fee:     osmomath.MustNewDecFromStr("0.003"),

			// positive root of 0.997 s^2 + 1.997 R s - A R = 0, truncated
			expected: osmomath.NewInt(500),
		},
		{
			name:    "fee out of range",
			reserve: osmomath.NewInt(1_000_000),
			deposit: osmomath.NewInt(1000),
			fee:     osmomath.OneDec(),

			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual, err := liquiditymath.ComputeSwapAmountV2(tt.reserve, tt.deposit, tt.fee)
			if tt.expectError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)

			assert.Equal(t, tt.expected.String(), actual.String())
		})
	}
}

// The defining property: the swap output is bounded by the deposit for any
// reserve/deposit/fee combination.
func TestComputeSwapAmountV2_Bounds(t *testing.T) {
	reserves := []int64{1, 17, 999, 1_000_000, 5_000_000_000}
	deposits := []int64{1, 3, 1000, 250_000, 9_000_000_000}
	fees := []string{"0", "0.0005", "0.003", "0.01", "0.2"}

	for _, reserve := range reserves {
		for _, deposit := range deposits {
			for _, feeStr := range fees {
				fee := osmomath.MustNewDecFromStr(feeStr)

				swapAmount, err := liquiditymath.ComputeSwapAmountV2(osmomath.NewInt(reserve), osmomath.NewInt(deposit), fee)
				require.NoError(t, err, "reserve %d deposit %d fee %s", reserve, deposit, feeStr)

				assert.False(t, swapAmount.IsNegative(), "reserve %d deposit %d fee %s: %s", reserve, deposit, feeStr, swapAmount)
				assert.True(t, swapAmount.LTE(osmomath.NewInt(deposit)), "reserve %d deposit %d fee %s: %s", reserve, deposit, feeStr, swapAmount)
			}
		}
	}
}

// With no fee and a deposit tiny relative to the reserve, the optimal split
// approaches half the deposit from below.
func TestComputeSwapAmountV2_DeepReserveHalvesDeposit(t *testing.T) {
	reserve := osmomath.NewInt(1_000_000_000_000)
	deposit := osmomath.NewInt(1000)

	swapAmount, err := liquiditymath.ComputeSwapAmountV2(reserve, deposit, osmomath.ZeroDec())
	require.NoError(t, err)

	assert.Equal(t, osmomath.NewInt(499).String(), swapAmount.String())
}
