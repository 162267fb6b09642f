// Package liquiditymath holds the closed-form balancing arithmetic used to
// turn a single-asset payment into a correctly-proportioned two-asset deposit
// against a constant-product pool.
package liquiditymath

import (
	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/liquidrop-labs/liquidrop/domain"
)

// ComputeSwapAmountV2 returns the portion of deposit that must be swapped into
// the other asset so that the remainder plus the swap output match the pool's
// current ratio. reserve is the pool's balance of the asset being deposited,
// fee the pool's proportional fee as a WAD fraction.
//
// Derivation: with phi = 1 - fee and reserve R, swapping s yields
// y = phi*s*R_other/(R + phi*s). Requiring (deposit - s)/y to equal the
// post-swap pool ratio reduces, via the constant-product invariant, to
//
//	phi*s^2 + R*(1+phi)*s - deposit*R = 0
//
// whose positive root is taken. The result is independent of R_other.
//
// Guarantees 0 <= result <= deposit. Returns zero when reserve or deposit is
// zero. No iteration and no floating point.
func ComputeSwapAmountV2(reserve, deposit osmomath.Int, fee osmomath.Dec) (osmomath.Int, error) {
	if reserve.IsNil() || deposit.IsNil() || reserve.IsZero() || deposit.IsZero() {
		return osmomath.ZeroInt(), nil
	}
	if reserve.IsNegative() || deposit.IsNegative() {
		return osmomath.Int{}, domain.SwapAmountOutOfBoundsError{SwapAmount: "negative input", Deposit: deposit.String()}
	}
	if fee.IsNil() || fee.IsNegative() || fee.GTE(osmomath.OneDec()) {
		return osmomath.Int{}, domain.SettingsError{Reason: "pool fee must be in [0, 1)"}
	}

	r := osmomath.NewDecFromInt(reserve)
	a := osmomath.NewDecFromInt(deposit)
	phi := osmomath.OneDec().Sub(fee)
	onePlusPhi := osmomath.OneDec().Add(phi)

	// discriminant = R * (R*(1+phi)^2 + 4*phi*A)
	inner := r.Mul(onePlusPhi).Mul(onePlusPhi).Add(phi.Mul(a).MulInt64(4))
	discriminant := r.Mul(inner)

	root, err := osmomath.MonotonicSqrt(discriminant)
	if err != nil {
		return osmomath.Int{}, err
	}

	numerator := root.Sub(r.Mul(onePlusPhi))
	if numerator.IsNegative() {
		// sqrt rounding can land a hair below R*(1+phi) when the deposit is
		// tiny relative to the reserve; the exact root is non-negative.
		return osmomath.ZeroInt(), nil
	}

	swapAmount := numerator.QuoTruncate(phi.MulInt64(2)).TruncateInt()
	if swapAmount.GT(deposit) {
		return osmomath.Int{}, domain.SwapAmountOutOfBoundsError{
			SwapAmount: swapAmount.String(),
			Deposit:    deposit.String(),
		}
	}

	return swapAmount, nil
}
