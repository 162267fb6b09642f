package mvc

import (
	"context"

	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/liquidrop-labs/liquidrop/domain"
)

// AuctionUsecase represents the auction engine's use cases.
type AuctionUsecase interface {
	// GetAuctionSettings returns the operator-configured pricing policy.
	GetAuctionSettings() domain.AuctionSettings

	// GetBureauState returns the aggregate sale bookkeeping.
	GetBureauState() domain.BureauState

	// GetCurrentAuctionCount returns the number of active (unsold) listings.
	GetCurrentAuctionCount() uint64

	// GetCurrentAuctions returns the identifiers of all active listings.
	GetCurrentAuctions() []uint64

	// GetCurrentAuctionStates returns the records of all active listings.
	GetCurrentAuctionStates() []domain.AuctionState

	// GetAuctionState returns the record for the given position.
	// Returns NotListedError if no record exists.
	GetAuctionState(positionID uint64) (domain.AuctionState, error)

	// GetCurrentPriceBips returns the listing's current WAD price under the
	// decay schedule. Returns NotListedError, AlreadySoldError or
	// NotStartedError as applicable.
	GetCurrentPriceBips(positionID uint64) (osmomath.Dec, error)

	// GetTokenURI passes through to the position manager's metadata lookup.
	GetTokenURI(ctx context.Context, positionID uint64) (string, error)

	// IsInitialized returns true once the bootstrap listing exists.
	IsInitialized() bool

	// GetAuctionCount returns the admin-set target listing count.
	GetAuctionCount() uint64

	// Initialize bootstraps the engine with its first listing. Admin-only,
	// callable exactly once. Returns the bootstrap position identifier.
	Initialize(ctx context.Context, caller domain.Address, amountA, amountB osmomath.Int, receiver domain.Address) (uint64, error)

	// SetAuctionCount raises (never lowers) the live listing supply to the
	// given target, funding the shortfall with replenishFunds of the
	// secondary asset pulled from the caller. Admin-only.
	SetAuctionCount(ctx context.Context, caller domain.Address, targetCount uint64, replenishFunds osmomath.Int) error

	// Purchase buys the given listing at its current decayed price.
	Purchase(ctx context.Context, buyer domain.Address, positionID uint64, amountA, amountB osmomath.Int, beneficiary, receiver domain.Address) (domain.PurchaseResult, error)
}
