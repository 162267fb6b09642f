// Package pricedecay implements the continuous time-decaying price schedule
// applied to every listing. All prices and rates are WAD-scaled (10^18)
// fixed-point values; multiplications truncate toward zero.
package pricedecay

import (
	"time"

	"github.com/osmosis-labs/osmosis/osmomath"
)

var (
	// log2(e) at BigDec precision, used to evaluate e^x via 2^(x*log2(e)).
	log2E = osmomath.MustNewBigDecFromStr("1.442695040888963407359924681001892137")

	twoBigDec = osmomath.NewBigDec(2)

	// 2^-120 is below BigDec precision (10^-36), so any exponent magnitude at
	// or past this bound decays to exactly zero.
	maxExp2Magnitude = osmomath.NewBigDec(120)
)

// CurrentPrice evaluates the decay schedule at the given instant:
//
//	max(startPrice * e^(-decayRate * elapsedSeconds), floor)
//
// The result is monotonically non-increasing in elapsed time and clamped at
// floor. A now before startTime is treated as zero elapsed time.
func CurrentPrice(startPrice osmomath.Dec, startTime time.Time, floor, decayRate osmomath.Dec, now time.Time) osmomath.Dec {
	elapsedSeconds := now.Unix() - startTime.Unix()
	if elapsedSeconds < 0 {
		elapsedSeconds = 0
	}

	exponent := osmomath.BigDecFromDec(decayRate).Mul(osmomath.NewBigDec(elapsedSeconds))
	decayFactor := expNeg(exponent)

	candidate := osmomath.BigDecFromDec(startPrice).Mul(decayFactor).Dec()

	return osmomath.MaxDec(candidate, floor)
}

// expNeg computes e^-x for non-negative x using the identity
// e^-x = 1 / 2^(x*log2(e)), splitting the exponent into integer and
// fractional parts so that osmomath.Exp2's [0, 1) domain applies.
func expNeg(x osmomath.BigDec) osmomath.BigDec {
	if x.IsZero() {
		return osmomath.OneBigDec()
	}

	exponent := x.Mul(log2E)
	if exponent.GTE(maxExp2Magnitude) {
		return osmomath.ZeroBigDec()
	}

	integerPart := exponent.TruncateInt64()
	fractionalPart := exponent.Sub(osmomath.NewBigDec(integerPart))

	// 2^exponent = 2^integer * 2^fractional
	powered := osmomath.Exp2(fractionalPart).Mul(twoBigDec.PowerInteger(uint64(integerPart)))

	return osmomath.OneBigDec().Quo(powered)
}
