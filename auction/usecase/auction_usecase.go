package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/liquidrop-labs/liquidrop/domain"
	"github.com/liquidrop-labs/liquidrop/domain/mvc"
	"github.com/liquidrop-labs/liquidrop/domain/pricedecay"
	"github.com/liquidrop-labs/liquidrop/log"
)

// auctionUsecase owns the auction ledger: global settings, aggregate sale
// bookkeeping, the active-listing set and one record per listed position.
// All mutations go through the operations in admin.go / purchase.go / base.go.
type auctionUsecase struct {
	routes   domain.AuctionRoutes
	settings domain.AuctionSettings

	logger log.Logger

	// opMx is the operation-in-progress guard. Every public mutating entry
	// point TryLocks it; an overlapping or re-entrant invocation is rejected
	// with ReentrantCallError rather than queued. Several ledger invariants
	// (sale price set at most once, active-set membership) rely on this.
	opMx sync.Mutex

	// stateMx guards the ledger fields below for the read accessors.
	stateMx sync.RWMutex

	initialized        bool
	targetAuctionCount uint64
	bureau             domain.BureauState
	activeSet          map[uint64]struct{}
	states             map[uint64]*domain.AuctionState

	now func() time.Time
}

var _ mvc.AuctionUsecase = &auctionUsecase{}

// NewAuctionUsecase creates a new auction usecase over the given collaborator
// routes and pricing settings.
func NewAuctionUsecase(routes domain.AuctionRoutes, settings domain.AuctionSettings, logger log.Logger) (*auctionUsecase, error) {
	if err := routes.Validate(); err != nil {
		return nil, err
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	return &auctionUsecase{
		routes:   routes,
		settings: settings,

		logger: logger,

		bureau: domain.BureauState{
			TotalAuctions:     0,
			LastSalePriceBips: osmomath.ZeroDec(),
		},
		activeSet: make(map[uint64]struct{}),
		states:    make(map[uint64]*domain.AuctionState),

		now: time.Now,
	}, nil
}

// GetAuctionSettings implements mvc.AuctionUsecase.
func (u *auctionUsecase) GetAuctionSettings() domain.AuctionSettings {
	return u.settings
}

// GetBureauState implements mvc.AuctionUsecase.
func (u *auctionUsecase) GetBureauState() domain.BureauState {
	u.stateMx.RLock()
	defer u.stateMx.RUnlock()

	return u.bureau
}

// GetCurrentAuctionCount implements mvc.AuctionUsecase.
func (u *auctionUsecase) GetCurrentAuctionCount() uint64 {
	u.stateMx.RLock()
	defer u.stateMx.RUnlock()

	return uint64(len(u.activeSet))
}

// GetCurrentAuctions implements mvc.AuctionUsecase.
func (u *auctionUsecase) GetCurrentAuctions() []uint64 {
	u.stateMx.RLock()
	defer u.stateMx.RUnlock()

	positionIDs := make([]uint64, 0, len(u.activeSet))
	for positionID := range u.activeSet {
		positionIDs = append(positionIDs, positionID)
	}

	sort.Slice(positionIDs, func(i, j int) bool { return positionIDs[i] < positionIDs[j] })

	return positionIDs
}

// GetCurrentAuctionStates implements mvc.AuctionUsecase.
func (u *auctionUsecase) GetCurrentAuctionStates() []domain.AuctionState {
	u.stateMx.RLock()
	defer u.stateMx.RUnlock()

	positionIDs := make([]uint64, 0, len(u.activeSet))
	for positionID := range u.activeSet {
		positionIDs = append(positionIDs, positionID)
	}
	sort.Slice(positionIDs, func(i, j int) bool { return positionIDs[i] < positionIDs[j] })

	states := make([]domain.AuctionState, 0, len(positionIDs))
	for _, positionID := range positionIDs {
		states = append(states, *u.states[positionID])
	}

	return states
}

// GetAuctionState implements mvc.AuctionUsecase.
func (u *auctionUsecase) GetAuctionState(positionID uint64) (domain.AuctionState, error) {
	u.stateMx.RLock()
	defer u.stateMx.RUnlock()

	state, ok := u.states[positionID]
	if !ok {
		return domain.AuctionState{}, domain.NotListedError{PositionID: positionID}
	}

	return *state, nil
}

// GetCurrentPriceBips implements mvc.AuctionUsecase.
func (u *auctionUsecase) GetCurrentPriceBips(positionID uint64) (osmomath.Dec, error) {
	u.stateMx.RLock()
	defer u.stateMx.RUnlock()

	state, ok := u.states[positionID]
	if !ok || state.PositionID != positionID {
		return osmomath.Dec{}, domain.NotListedError{PositionID: positionID}
	}
	if state.IsSold() {
		return osmomath.Dec{}, domain.AlreadySoldError{PositionID: positionID}
	}
	if !state.IsStarted() {
		return osmomath.Dec{}, domain.NotStartedError{PositionID: positionID}
	}

	return pricedecay.CurrentPrice(state.StartPriceBips, state.StartTime, state.FloorPriceBips, u.settings.DecayRatePerSecond, u.now()), nil
}

// GetTokenURI implements mvc.AuctionUsecase.
func (u *auctionUsecase) GetTokenURI(ctx context.Context, positionID uint64) (string, error) {
	return u.routes.PositionManager.TokenURI(ctx, positionID)
}

// IsInitialized implements mvc.AuctionUsecase.
func (u *auctionUsecase) IsInitialized() bool {
	u.stateMx.RLock()
	defer u.stateMx.RUnlock()

	return u.initialized
}

// GetAuctionCount implements mvc.AuctionUsecase.
func (u *auctionUsecase) GetAuctionCount() uint64 {
	u.stateMx.RLock()
	defer u.stateMx.RUnlock()

	return u.targetAuctionCount
}

// orZeroInt normalizes a nil amount to zero so callers may omit one leg.
func orZeroInt(amount osmomath.Int) osmomath.Int {
	if amount.IsNil() {
		return osmomath.ZeroInt()
	}
	return amount
}
