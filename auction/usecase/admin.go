package usecase

import (
	"context"

	"github.com/osmosis-labs/osmosis/osmomath"
	"go.uber.org/zap"

	"github.com/liquidrop-labs/liquidrop/domain"
	"github.com/liquidrop-labs/liquidrop/domain/liquiditymath"
)

var oneInt = osmomath.OneInt()

// Initialize implements mvc.AuctionUsecase.
//
// It bootstraps the engine with its first listing: both funding amounts are
// pulled from the caller and deposited into a fresh position (no tip, no
// auction pricing), the position is staked with the custody service, and any
// leftover dust plus the ownership-wrapper token go to the receiver.
// Callable exactly once, by the admin only.
func (u *auctionUsecase) Initialize(ctx context.Context, caller domain.Address, amountA, amountB osmomath.Int, receiver domain.Address) (uint64, error) {
	if !u.opMx.TryLock() {
		return 0, domain.ReentrantCallError{Operation: "initialize"}
	}
	defer u.opMx.Unlock()

	if caller != u.routes.AdminAddress {
		return 0, domain.UnauthorizedError{Caller: caller}
	}
	if u.IsInitialized() {
		return 0, domain.AlreadyInitializedError{}
	}

	amountA, amountB = orZeroInt(amountA), orZeroInt(amountB)
	if !amountA.IsPositive() {
		return 0, domain.ZeroAmountError{Field: "amount a"}
	}
	if !amountB.IsPositive() {
		return 0, domain.ZeroAmountError{Field: "amount b"}
	}
	if receiver.IsZero() {
		return 0, domain.ZeroAddressError{Field: "receiver"}
	}

	tx := u.beginTx()
	defer tx.Rollback()

	engine := u.routes.EngineAddress

	// The rollback sweep returns the engine's holdings to the caller should
	// anything past the pulls fail.
	tx.journalCompensation(func() error { return u.refundEngineHoldings(ctx, caller) })

	if err := u.routes.TokenA.TransferFrom(ctx, caller, engine, amountA); err != nil {
		return 0, err
	}
	if err := u.routes.TokenB.TransferFrom(ctx, caller, engine, amountB); err != nil {
		return 0, err
	}

	positionID, err := u.routes.PoolingHelper.MintImbalanced(ctx, amountA, amountB, engine)
	if err != nil {
		return 0, err
	}
	tx.journalCompensation(func() error {
		liquidity, err := u.positionLiquidity(ctx, positionID)
		if err != nil {
			return err
		}
		return u.unwindPositionLiquidity(ctx, positionID, liquidity)
	})

	owner, err := u.routes.PositionManager.OwnerOf(ctx, positionID)
	if err != nil {
		return 0, err
	}
	if owner != engine {
		return 0, domain.PositionNotOwnedError{PositionID: positionID, Owner: owner}
	}

	if err := u.routes.Custody.Enter(ctx, positionID); err != nil {
		return 0, err
	}
	tx.journalCompensation(func() error { return u.routes.Custody.Exit(ctx, positionID) })

	if _, err := u.establishAuction(tx, positionID); err != nil {
		return 0, err
	}

	// Forward leftover dust from the imbalanced mint to the receiver, clawing
	// it back should the wrapper hand-off below fail.
	for _, token := range []domain.FungibleToken{u.routes.TokenA, u.routes.TokenB} {
		balance, err := token.BalanceOf(ctx, engine)
		if err != nil {
			return 0, err
		}
		if balance.IsPositive() {
			if err := token.Transfer(ctx, receiver, balance); err != nil {
				return 0, err
			}
			tx.journalCompensation(func() error {
				return token.TransferFrom(ctx, receiver, engine, balance)
			})
		}
	}

	if err := u.routes.Wrapper.Transfer(ctx, engine, receiver, positionID, oneInt); err != nil {
		return 0, err
	}

	tx.setInitialized()
	tx.setTargetCount(1)
	tx.Commit()

	domain.LiquidropListingsEstablished.Inc()

	u.logger.Info("initialized auction engine",
		zap.Uint64("position_id", positionID),
		zap.String("receiver", string(receiver)),
	)

	return positionID, nil
}

// SetAuctionCount implements mvc.AuctionUsecase.
//
// Raising the target mints the shortfall: replenishFunds of the secondary
// asset are pulled from the caller, part of the accumulated balance is swapped
// into the primary asset per the one-sided split formula, each new position is
// minted-and-collected and listed, and the remainder is swapped back and
// refunded. Lowering the target only records the new value; active listings
// are never retired. That asymmetry is intentional.
func (u *auctionUsecase) SetAuctionCount(ctx context.Context, caller domain.Address, targetCount uint64, replenishFunds osmomath.Int) error {
	if !u.opMx.TryLock() {
		return domain.ReentrantCallError{Operation: "set auction count"}
	}
	defer u.opMx.Unlock()

	if caller != u.routes.AdminAddress {
		return domain.UnauthorizedError{Caller: caller}
	}
	if !u.IsInitialized() {
		return domain.NotInitializedError{}
	}

	tx := u.beginTx()
	defer tx.Rollback()

	currentTarget := u.GetAuctionCount()
	if targetCount <= currentTarget {
		tx.setTargetCount(targetCount)
		tx.Commit()
		return nil
	}

	shortfall := targetCount - currentTarget

	replenishFunds = orZeroInt(replenishFunds)
	if !replenishFunds.IsPositive() {
		return domain.ZeroAmountError{Field: "replenish funds"}
	}

	engine := u.routes.EngineAddress

	// The rollback sweep returns the engine's holdings to the caller should
	// anything past the pull fail.
	tx.journalCompensation(func() error { return u.refundEngineHoldings(ctx, caller) })

	if err := u.routes.TokenB.TransferFrom(ctx, caller, engine, replenishFunds); err != nil {
		return err
	}

	fee, err := u.routes.Pool.Fee(ctx)
	if err != nil {
		return err
	}

	for i := uint64(0); i < shortfall; i++ {
		balanceB, err := u.routes.TokenB.BalanceOf(ctx, engine)
		if err != nil {
			return err
		}

		reserveB, err := u.routes.TokenB.BalanceOf(ctx, u.routes.PoolAddress)
		if err != nil {
			return err
		}

		swapAmount, err := liquiditymath.ComputeSwapAmountV2(reserveB, balanceB, fee)
		if err != nil {
			return err
		}

		if swapAmount.IsPositive() {
			if _, err := u.routes.SwapExecutor.Buy(ctx, swapAmount, engine); err != nil {
				return err
			}
		}

		balanceA, err := u.routes.TokenA.BalanceOf(ctx, engine)
		if err != nil {
			return err
		}
		balanceB, err = u.routes.TokenB.BalanceOf(ctx, engine)
		if err != nil {
			return err
		}

		positionID, err := u.mintAndCollect(ctx, balanceA, balanceB)
		if err != nil {
			return err
		}

		if _, err := u.establishAuction(tx, positionID); err != nil {
			return err
		}
	}

	// Unwind the leftover primary balance and refund the secondary remainder.
	balanceA, err := u.routes.TokenA.BalanceOf(ctx, engine)
	if err != nil {
		return err
	}
	if balanceA.IsPositive() {
		if _, err := u.routes.SwapExecutor.Sell(ctx, balanceA, engine); err != nil {
			return err
		}
	}

	balanceB, err := u.routes.TokenB.BalanceOf(ctx, engine)
	if err != nil {
		return err
	}
	if balanceB.IsPositive() {
		if err := u.routes.TokenB.Transfer(ctx, caller, balanceB); err != nil {
			return err
		}
	}

	tx.setTargetCount(targetCount)
	tx.Commit()

	domain.LiquidropListingsEstablished.Add(float64(shortfall))

	u.logger.Info("scaled auction supply",
		zap.Uint64("target_count", targetCount),
		zap.Uint64("minted", shortfall),
	)

	return nil
}
