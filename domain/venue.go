package domain

import (
	"context"
	"time"

	"github.com/osmosis-labs/osmosis/osmomath"
)

// This file defines the capability contracts the auction engine expects from
// the venue hosting it. All handles act on behalf of the engine account unless
// an explicit owner argument says otherwise.

// FungibleToken is a standard fungible funding asset. Amounts are in the
// asset's native integer precision.
type FungibleToken interface {
	// TransferFrom moves amount from owner to recipient using the engine's
	// allowance.
	TransferFrom(ctx context.Context, owner, recipient Address, amount osmomath.Int) error

	// Transfer moves amount from the engine to recipient.
	Transfer(ctx context.Context, recipient Address, amount osmomath.Int) error

	// Approve grants spender an allowance over the engine's balance.
	Approve(ctx context.Context, spender Address, amount osmomath.Int) error

	// BalanceOf returns the balance of the given account.
	BalanceOf(ctx context.Context, account Address) (osmomath.Int, error)
}

// Pool exposes the AMM pool the listed positions belong to. Reserves are read
// as the pool account's funding-token balances.
type Pool interface {
	// Fee returns the proportional swap fee as a WAD fraction (1e18 = 100%).
	Fee(ctx context.Context) (osmomath.Dec, error)
}

// SwapExecutor performs swaps between the two funding assets against the pool.
type SwapExecutor interface {
	// Buy spends amountIn of the secondary asset from the engine and credits
	// the primary asset to recipient. Returns the output amount.
	Buy(ctx context.Context, amountIn osmomath.Int, recipient Address) (osmomath.Int, error)

	// Sell spends amountIn of the primary asset from the engine and credits
	// the secondary asset to recipient. Returns the output amount.
	Sell(ctx context.Context, amountIn osmomath.Int, recipient Address) (osmomath.Int, error)
}

// PoolingHelper mints a fresh concentrated-liquidity position from possibly
// unbalanced funding amounts pulled from the engine.
type PoolingHelper interface {
	MintImbalanced(ctx context.Context, amountA, amountB osmomath.Int, recipient Address) (uint64, error)
}

// PositionInfo is the position manager's view of one position.
type PositionInfo struct {
	PositionID uint64       `json:"position_id"`
	Liquidity  osmomath.Int `json:"liquidity"`
	AmountA    osmomath.Int `json:"amount_a"`
	AmountB    osmomath.Int `json:"amount_b"`
	Owner      Address      `json:"owner"`
}

// PositionManager custodies positions and their underlying liquidity.
type PositionManager interface {
	// Position returns the current state of the given position.
	Position(ctx context.Context, positionID uint64) (PositionInfo, error)

	// IncreaseLiquidity deposits both amounts into an existing position. The
	// deadline bounds venue-side execution.
	IncreaseLiquidity(ctx context.Context, positionID uint64, amountA, amountB osmomath.Int, deadline time.Time) error

	// DecreaseLiquidity removes the given liquidity, leaving the withdrawn
	// amounts claimable via Collect.
	DecreaseLiquidity(ctx context.Context, positionID uint64, liquidity osmomath.Int) (osmomath.Int, osmomath.Int, error)

	// Collect claims all withdrawn and accrued amounts to recipient.
	Collect(ctx context.Context, positionID uint64, recipient Address) (osmomath.Int, osmomath.Int, error)

	// Transfer moves custody of the position itself.
	Transfer(ctx context.Context, from, to Address, positionID uint64) error

	// OwnerOf returns the current custodian of the position.
	OwnerOf(ctx context.Context, positionID uint64) (Address, error)

	// TokenURI returns the venue's metadata for the position.
	TokenURI(ctx context.Context, positionID uint64) (string, error)
}

// CustodyService is the external staking/yield service positions are parked in
// while owned by their buyers.
type CustodyService interface {
	Enter(ctx context.Context, positionID uint64) error
	Exit(ctx context.Context, positionID uint64) error
}

// WrapperToken is the semi-fungible ownership-wrapper issuer. One unit of
// id tracks ownership of the position with that identifier.
type WrapperToken interface {
	Transfer(ctx context.Context, from, to Address, positionID uint64, amount osmomath.Int) error
	SetApprovalForAll(ctx context.Context, operator Address, approved bool) error
}
