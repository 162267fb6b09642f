package domain

import (
	"fmt"
	"time"

	"github.com/osmosis-labs/osmosis/osmomath"
)

// Address identifies an account on the hosting venue.
// The zero value is treated as the null address everywhere.
type Address string

// IsZero returns true if the address is the null address.
func (a Address) IsZero() bool {
	return a == ""
}

// AuctionSettings is the operator-configured, immutable pricing policy
// shared by every listing. All prices are WAD-scaled (10^18) fractions
// of notional ("bips" in the venue's parlance).
type AuctionSettings struct {
	// DecayRatePerSecond is the per-second exponential price-decline constant.
	DecayRatePerSecond osmomath.Dec `json:"decay_rate_per_second"`

	// MinDeposit is the negligible-deposit threshold. Purchases must clear it
	// on both legs, and it sizes nothing else: replacement listings are seeded
	// from the balances the engine holds at mint time.
	MinDeposit osmomath.Int `json:"min_deposit"`

	// PriceGrowthIncrement is reserved. It is carried in settings for
	// forward-compatibility but does not participate in pricing.
	PriceGrowthIncrement osmomath.Dec `json:"price_growth_increment"`

	InitialPriceBips osmomath.Dec `json:"initial_price_bips"`
	FloorPriceBips   osmomath.Dec `json:"floor_price_bips"`
	CeilingPriceBips osmomath.Dec `json:"ceiling_price_bips"`
}

// Validate enforces 0 < floor <= initial <= ceiling and sane auxiliary fields.
func (s AuctionSettings) Validate() error {
	if s.DecayRatePerSecond.IsNil() || s.DecayRatePerSecond.IsNegative() {
		return SettingsError{Reason: "decay rate must be non-negative"}
	}
	if s.MinDeposit.IsNil() || s.MinDeposit.IsNegative() {
		return SettingsError{Reason: "min deposit must be non-negative"}
	}
	if s.FloorPriceBips.IsNil() || !s.FloorPriceBips.IsPositive() {
		return SettingsError{Reason: "floor price must be positive"}
	}
	if s.InitialPriceBips.IsNil() || s.InitialPriceBips.LT(s.FloorPriceBips) {
		return SettingsError{Reason: "initial price must be at least the floor price"}
	}
	if s.CeilingPriceBips.IsNil() || s.CeilingPriceBips.LT(s.InitialPriceBips) {
		return SettingsError{Reason: "ceiling price must be at least the initial price"}
	}
	return nil
}

// BureauState is the aggregate sale bookkeeping mutated on every successful
// sale and every newly established listing.
type BureauState struct {
	// TotalAuctions counts every listing ever created.
	TotalAuctions uint64 `json:"total_auctions"`

	// LastSalePriceBips is the WAD sale price of the most recently sold
	// listing, or zero if nothing has sold yet. It seeds the start price of
	// the next listing.
	LastSalePriceBips osmomath.Dec `json:"last_sale_price_bips"`
}

// AuctionState tracks one sellable position's price schedule and sale status.
// Records are never deleted; SalePriceBips != 0 marks the terminal state.
type AuctionState struct {
	PositionID     uint64       `json:"position_id"`
	StartPriceBips osmomath.Dec `json:"start_price_bips"`
	FloorPriceBips osmomath.Dec `json:"floor_price_bips"`
	StartTime      time.Time    `json:"start_time"`
	SalePriceBips  osmomath.Dec `json:"sale_price_bips"`
}

// IsSold returns true once the listing has been purchased.
func (a AuctionState) IsSold() bool {
	return !a.SalePriceBips.IsNil() && !a.SalePriceBips.IsZero()
}

// IsStarted returns true if the listing has been established.
func (a AuctionState) IsStarted() bool {
	return !a.StartTime.IsZero()
}

// PurchaseResult summarizes the effects of one successful purchase.
type PurchaseResult struct {
	// SoldPositionID is the position whose ownership token went to the receiver.
	SoldPositionID uint64 `json:"sold_position_id"`

	// NewPositionID is the freshly established replacement listing.
	NewPositionID uint64 `json:"new_position_id"`

	SalePriceBips osmomath.Dec `json:"sale_price_bips"`

	TipA osmomath.Int `json:"tip_a"`
	TipB osmomath.Int `json:"tip_b"`

	DepositA osmomath.Int `json:"deposit_a"`
	DepositB osmomath.Int `json:"deposit_b"`
}

// AuctionRoutes is the immutable bundle of collaborator handles the engine
// operates against. It is read-only after construction.
type AuctionRoutes struct {
	// EngineAddress is the account the engine acts as on the venue.
	EngineAddress Address

	// AdminAddress holds administrative privilege for admin-only operations.
	AdminAddress Address

	// PoolAddress is the AMM pool account; reserves are read as the pool's
	// funding-token balances.
	PoolAddress Address

	// TokenA is the primary funding asset, TokenB the secondary one.
	TokenA FungibleToken
	TokenB FungibleToken

	Pool            Pool
	SwapExecutor    SwapExecutor
	PoolingHelper   PoolingHelper
	PositionManager PositionManager
	Custody         CustodyService
	Wrapper         WrapperToken
}

// Validate returns an error if any collaborator handle is missing.
func (r AuctionRoutes) Validate() error {
	if r.EngineAddress.IsZero() || r.AdminAddress.IsZero() || r.PoolAddress.IsZero() {
		return SettingsError{Reason: "engine, admin and pool addresses must be set"}
	}
	for name, handle := range map[string]any{
		"token a":          r.TokenA,
		"token b":          r.TokenB,
		"pool":             r.Pool,
		"swap executor":    r.SwapExecutor,
		"pooling helper":   r.PoolingHelper,
		"position manager": r.PositionManager,
		"custody":          r.Custody,
		"wrapper":          r.Wrapper,
	} {
		if handle == nil {
			return SettingsError{Reason: fmt.Sprintf("missing %s route", name)}
		}
	}
	return nil
}
