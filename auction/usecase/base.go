package usecase

import (
	"context"

	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/liquidrop-labs/liquidrop/domain"
)

// mintAndCollect mints a position from the given amounts via the pooling
// collaborator, confirms the engine custodies it, then immediately unwinds all
// of its liquidity and collects the proceeds back into the engine's holdings.
// The position minted here is a liquidity-accounting vehicle for a future
// listing; its underlying tokens are reclaimed, not locked.
func (u *auctionUsecase) mintAndCollect(ctx context.Context, amountA, amountB osmomath.Int) (uint64, error) {
	if amountA.IsNil() || !amountA.IsPositive() {
		return 0, domain.ZeroAmountError{Field: "mint amount a"}
	}
	if amountB.IsNil() || !amountB.IsPositive() {
		return 0, domain.ZeroAmountError{Field: "mint amount b"}
	}

	positionID, err := u.routes.PoolingHelper.MintImbalanced(ctx, amountA, amountB, u.routes.EngineAddress)
	if err != nil {
		return 0, err
	}

	owner, err := u.routes.PositionManager.OwnerOf(ctx, positionID)
	if err != nil {
		return 0, err
	}
	if owner != u.routes.EngineAddress {
		return 0, domain.PositionNotOwnedError{PositionID: positionID, Owner: owner}
	}

	info, err := u.routes.PositionManager.Position(ctx, positionID)
	if err != nil {
		return 0, err
	}

	if !info.Liquidity.IsNil() && info.Liquidity.IsPositive() {
		if _, _, err := u.routes.PositionManager.DecreaseLiquidity(ctx, positionID, info.Liquidity); err != nil {
			return 0, err
		}
	}

	if _, _, err := u.routes.PositionManager.Collect(ctx, positionID, u.routes.EngineAddress); err != nil {
		return 0, err
	}

	return positionID, nil
}

// refundEngineHoldings transfers every funding-asset balance the engine holds
// to the given account. The engine keeps nothing of its own between
// operations, so during a rollback its balances are exactly the funds the
// failed operation pulled in (swapped legs come back in the asset they were
// swapped into).
func (u *auctionUsecase) refundEngineHoldings(ctx context.Context, recipient domain.Address) error {
	for _, token := range []domain.FungibleToken{u.routes.TokenA, u.routes.TokenB} {
		balance, err := token.BalanceOf(ctx, u.routes.EngineAddress)
		if err != nil {
			return err
		}
		if balance.IsPositive() {
			if err := token.Transfer(ctx, recipient, balance); err != nil {
				return err
			}
		}
	}
	return nil
}

// positionLiquidity reads a position's current liquidity, normalizing an
// unset value to zero.
func (u *auctionUsecase) positionLiquidity(ctx context.Context, positionID uint64) (osmomath.Int, error) {
	info, err := u.routes.PositionManager.Position(ctx, positionID)
	if err != nil {
		return osmomath.Int{}, err
	}
	return orZeroInt(info.Liquidity), nil
}

// unwindPositionLiquidity pulls the given amount of liquidity back out of a
// position and collects the proceeds into the engine's holdings. Compensates
// a deposit made into the position by a failed operation.
func (u *auctionUsecase) unwindPositionLiquidity(ctx context.Context, positionID uint64, liquidity osmomath.Int) error {
	if liquidity.IsNil() || !liquidity.IsPositive() {
		return nil
	}
	if _, _, err := u.routes.PositionManager.DecreaseLiquidity(ctx, positionID, liquidity); err != nil {
		return err
	}
	_, _, err := u.routes.PositionManager.Collect(ctx, positionID, u.routes.EngineAddress)
	return err
}

// nextStartPriceBips computes the starting price for the next listing: the
// configured initial price while nothing has sold yet, afterwards twice the
// last sale price capped at the ceiling.
func (u *auctionUsecase) nextStartPriceBips() osmomath.Dec {
	u.stateMx.RLock()
	lastSalePrice := u.bureau.LastSalePriceBips
	u.stateMx.RUnlock()

	if lastSalePrice.IsZero() {
		return u.settings.InitialPriceBips
	}

	return osmomath.MinDec(lastSalePrice.MulInt64(2), u.settings.CeilingPriceBips)
}

// establishAuction creates the auction record for a freshly minted position
// and adds it to the active set.
func (u *auctionUsecase) establishAuction(tx *ledgerTx, positionID uint64) (domain.AuctionState, error) {
	u.stateMx.RLock()
	_, alreadyActive := u.activeSet[positionID]
	u.stateMx.RUnlock()

	if alreadyActive {
		return domain.AuctionState{}, domain.AuctionAlreadyActiveError{PositionID: positionID}
	}

	state := domain.AuctionState{
		PositionID:     positionID,
		StartPriceBips: u.nextStartPriceBips(),
		FloorPriceBips: u.settings.FloorPriceBips,
		StartTime:      u.now(),
		SalePriceBips:  osmomath.ZeroDec(),
	}

	tx.putState(state)
	tx.addActive(positionID)
	tx.incrementTotalAuctions()

	return state, nil
}
