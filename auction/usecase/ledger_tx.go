package usecase

import (
	"github.com/osmosis-labs/osmosis/osmomath"
	"go.uber.org/zap"

	"github.com/liquidrop-labs/liquidrop/domain"
)

// ledgerTx journals every effect of one externally-invoked operation so that
// any failure unwinds all of them: ledger mutations are recorded as undo
// closures, and value movements through collaborators are recorded as
// compensating transfers that return the funds to whoever paid them in.
//
// Usage: tx := u.beginTx(); defer tx.Rollback(); ...; tx.Commit().
type ledgerTx struct {
	u             *auctionUsecase
	undo          []func()
	compensations []func() error
	committed     bool
}

func (u *auctionUsecase) beginTx() *ledgerTx {
	return &ledgerTx{u: u}
}

// Commit marks the transaction as applied; Rollback becomes a no-op.
func (t *ledgerTx) Commit() {
	t.committed = true
}

// journalCompensation registers a compensating transfer to run if the
// operation fails. Compensations run in reverse order, before the ledger undo.
func (t *ledgerTx) journalCompensation(fn func() error) {
	t.compensations = append(t.compensations, fn)
}

// Rollback reverts all journaled effects in reverse order: compensating
// transfers first, then the ledger mutations. A compensation failure is logged
// and does not stop the remaining ones.
func (t *ledgerTx) Rollback() {
	if t.committed {
		return
	}

	for i := len(t.compensations) - 1; i >= 0; i-- {
		if err := t.compensations[i](); err != nil {
			t.u.logger.Error("compensating transfer failed during rollback", zap.Error(err))
		}
	}
	t.compensations = nil

	t.u.stateMx.Lock()
	defer t.u.stateMx.Unlock()

	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
	t.undo = nil
}

func (t *ledgerTx) setInitialized() {
	t.u.stateMx.Lock()
	defer t.u.stateMx.Unlock()

	previous := t.u.initialized
	t.u.initialized = true
	t.undo = append(t.undo, func() { t.u.initialized = previous })
}

func (t *ledgerTx) setTargetCount(targetCount uint64) {
	t.u.stateMx.Lock()
	defer t.u.stateMx.Unlock()

	previous := t.u.targetAuctionCount
	t.u.targetAuctionCount = targetCount
	t.undo = append(t.undo, func() { t.u.targetAuctionCount = previous })
}

func (t *ledgerTx) incrementTotalAuctions() {
	t.u.stateMx.Lock()
	defer t.u.stateMx.Unlock()

	t.u.bureau.TotalAuctions++
	t.undo = append(t.undo, func() { t.u.bureau.TotalAuctions-- })
}

func (t *ledgerTx) setLastSalePrice(price osmomath.Dec) {
	t.u.stateMx.Lock()
	defer t.u.stateMx.Unlock()

	previous := t.u.bureau.LastSalePriceBips
	t.u.bureau.LastSalePriceBips = price
	t.undo = append(t.undo, func() { t.u.bureau.LastSalePriceBips = previous })
}

// putState inserts a freshly established auction record.
func (t *ledgerTx) putState(state domain.AuctionState) {
	t.u.stateMx.Lock()
	defer t.u.stateMx.Unlock()

	positionID := state.PositionID
	t.u.states[positionID] = &state
	t.undo = append(t.undo, func() { delete(t.u.states, positionID) })
}

// setSalePrice marks the record sold at the given price.
func (t *ledgerTx) setSalePrice(positionID uint64, price osmomath.Dec) {
	t.u.stateMx.Lock()
	defer t.u.stateMx.Unlock()

	state := t.u.states[positionID]
	previous := state.SalePriceBips
	state.SalePriceBips = price
	t.undo = append(t.undo, func() { state.SalePriceBips = previous })
}

func (t *ledgerTx) addActive(positionID uint64) {
	t.u.stateMx.Lock()
	defer t.u.stateMx.Unlock()

	t.u.activeSet[positionID] = struct{}{}
	t.undo = append(t.undo, func() { delete(t.u.activeSet, positionID) })
}

// removeActive removes the identifier from the active set, failing with
// AuctionNotFoundError if it is absent.
func (t *ledgerTx) removeActive(positionID uint64) error {
	t.u.stateMx.Lock()
	defer t.u.stateMx.Unlock()

	if _, ok := t.u.activeSet[positionID]; !ok {
		return domain.AuctionNotFoundError{PositionID: positionID}
	}

	delete(t.u.activeSet, positionID)
	t.undo = append(t.undo, func() { t.u.activeSet[positionID] = struct{}{} })

	return nil
}
