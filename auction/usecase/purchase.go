package usecase

import (
	"context"
	"time"

	"github.com/osmosis-labs/osmosis/osmomath"
	"go.uber.org/zap"

	"github.com/liquidrop-labs/liquidrop/domain"
	"github.com/liquidrop-labs/liquidrop/domain/liquiditymath"
	"github.com/liquidrop-labs/liquidrop/domain/pricedecay"
)

// increaseLiquidityDeadline bounds venue-side execution of the final deposit.
const increaseLiquidityDeadline = time.Minute

// Purchase implements mvc.AuctionUsecase.
//
// The buyer pays in one or both funding assets. The listing's current decayed
// price determines the tip diverted to the beneficiary; the post-tip payment
// is balanced into a two-asset deposit via the one-sided split formula, poured
// into the sold position, and a replacement listing is established so the
// auction never runs dry. The ownership-wrapper token for the enlarged
// position goes to the receiver.
func (u *auctionUsecase) Purchase(ctx context.Context, buyer domain.Address, positionID uint64, amountA, amountB osmomath.Int, beneficiary, receiver domain.Address) (domain.PurchaseResult, error) {
	if !u.opMx.TryLock() {
		return domain.PurchaseResult{}, domain.ReentrantCallError{Operation: "purchase"}
	}
	defer u.opMx.Unlock()

	result, err := u.purchase(ctx, buyer, positionID, amountA, amountB, beneficiary, receiver)
	if err != nil {
		domain.LiquidropPurchaseError.WithLabelValues(err.Error()).Inc()
		return domain.PurchaseResult{}, err
	}

	domain.LiquidropPurchaseTotal.Inc()

	u.logger.Info("purchased listing",
		zap.Uint64("position_id", result.SoldPositionID),
		zap.Uint64("replacement_position_id", result.NewPositionID),
		zap.String("sale_price_bips", result.SalePriceBips.String()),
	)

	return result, nil
}

func (u *auctionUsecase) purchase(ctx context.Context, buyer domain.Address, positionID uint64, amountA, amountB osmomath.Int, beneficiary, receiver domain.Address) (domain.PurchaseResult, error) {
	amountA, amountB = orZeroInt(amountA), orZeroInt(amountB)

	// Step 1: preconditions.
	if positionID == 0 {
		return domain.PurchaseResult{}, domain.InvalidPositionIDError{PositionID: positionID}
	}
	if !amountA.IsPositive() && !amountB.IsPositive() {
		return domain.PurchaseResult{}, domain.ZeroAmountError{Field: "amount a and amount b"}
	}
	if buyer.IsZero() {
		return domain.PurchaseResult{}, domain.ZeroAddressError{Field: "buyer"}
	}
	if beneficiary.IsZero() {
		return domain.PurchaseResult{}, domain.ZeroAddressError{Field: "beneficiary"}
	}
	if receiver.IsZero() {
		return domain.PurchaseResult{}, domain.ZeroAddressError{Field: "receiver"}
	}

	// Step 2: load the listing.
	u.stateMx.RLock()
	state, ok := u.states[positionID]
	u.stateMx.RUnlock()
	if !ok {
		return domain.PurchaseResult{}, domain.NotListedError{PositionID: positionID}
	}
	if state.IsSold() {
		return domain.PurchaseResult{}, domain.AlreadySoldError{PositionID: positionID}
	}
	if !state.IsStarted() {
		return domain.PurchaseResult{}, domain.NotStartedError{PositionID: positionID}
	}

	// Step 3: price the listing and mark it sold.
	currentPrice := pricedecay.CurrentPrice(state.StartPriceBips, state.StartTime, state.FloorPriceBips, u.settings.DecayRatePerSecond, u.now())

	tx := u.beginTx()
	defer tx.Rollback()

	tx.setSalePrice(positionID, currentPrice)
	tx.setLastSalePrice(currentPrice)

	engine := u.routes.EngineAddress

	// Step 4: pull the payment. The rollback sweep returns the engine's
	// holdings to the buyer should anything past this point fail.
	tx.journalCompensation(func() error { return u.refundEngineHoldings(ctx, buyer) })

	if amountA.IsPositive() {
		if err := u.routes.TokenA.TransferFrom(ctx, buyer, engine, amountA); err != nil {
			return domain.PurchaseResult{}, err
		}
	}
	if amountB.IsPositive() {
		if err := u.routes.TokenB.TransferFrom(ctx, buyer, engine, amountB); err != nil {
			return domain.PurchaseResult{}, err
		}
	}

	// Step 5: size the tip. A single zero leg from truncation is allowed;
	// both legs truncating to zero aborts. The transfers wait until the
	// deposit checks have passed so a failed purchase never pays out.
	tipA := osmomath.NewDecFromInt(amountA).MulTruncate(currentPrice).TruncateInt()
	tipB := osmomath.NewDecFromInt(amountB).MulTruncate(currentPrice).TruncateInt()
	if tipA.IsZero() && tipB.IsZero() {
		return domain.PurchaseResult{}, domain.InvalidTipError{PositionID: positionID}
	}

	depositA := amountA.Sub(tipA)
	depositB := amountB.Sub(tipB)

	// Step 6: balance a single-sided deposit against the live reserve.
	if depositA.IsPositive() != depositB.IsPositive() {
		fee, err := u.routes.Pool.Fee(ctx)
		if err != nil {
			return domain.PurchaseResult{}, err
		}

		if depositA.IsPositive() {
			reserveA, err := u.routes.TokenA.BalanceOf(ctx, u.routes.PoolAddress)
			if err != nil {
				return domain.PurchaseResult{}, err
			}

			swapAmount, err := liquiditymath.ComputeSwapAmountV2(reserveA, depositA, fee)
			if err != nil {
				return domain.PurchaseResult{}, err
			}

			amountOut, err := u.routes.SwapExecutor.Sell(ctx, swapAmount, engine)
			if err != nil {
				return domain.PurchaseResult{}, err
			}

			depositA = depositA.Sub(swapAmount)
			depositB = depositB.Add(amountOut)
		} else {
			reserveB, err := u.routes.TokenB.BalanceOf(ctx, u.routes.PoolAddress)
			if err != nil {
				return domain.PurchaseResult{}, err
			}

			swapAmount, err := liquiditymath.ComputeSwapAmountV2(reserveB, depositB, fee)
			if err != nil {
				return domain.PurchaseResult{}, err
			}

			amountOut, err := u.routes.SwapExecutor.Buy(ctx, swapAmount, engine)
			if err != nil {
				return domain.PurchaseResult{}, err
			}

			depositB = depositB.Sub(swapAmount)
			depositA = depositA.Add(amountOut)
		}
	}

	// Step 7: both legs must clear the negligible-deposit threshold.
	if !depositA.GT(u.settings.MinDeposit) {
		return domain.PurchaseResult{}, domain.NotEnoughForDustError{Amount: depositA.String(), Threshold: u.settings.MinDeposit.String()}
	}
	if !depositB.GT(u.settings.MinDeposit) {
		return domain.PurchaseResult{}, domain.NotEnoughForDustError{Amount: depositB.String(), Threshold: u.settings.MinDeposit.String()}
	}

	// Divert the tip, clawing it back from the beneficiary on rollback.
	if tipA.IsPositive() {
		if err := u.routes.TokenA.Transfer(ctx, beneficiary, tipA); err != nil {
			return domain.PurchaseResult{}, err
		}
		tx.journalCompensation(func() error {
			return u.routes.TokenA.TransferFrom(ctx, beneficiary, engine, tipA)
		})
	}
	if tipB.IsPositive() {
		if err := u.routes.TokenB.Transfer(ctx, beneficiary, tipB); err != nil {
			return domain.PurchaseResult{}, err
		}
		tx.journalCompensation(func() error {
			return u.routes.TokenB.TransferFrom(ctx, beneficiary, engine, tipB)
		})
	}

	// Step 8: retire the sold listing and establish its replacement.
	if err := tx.removeActive(positionID); err != nil {
		return domain.PurchaseResult{}, err
	}

	newPositionID, err := u.mintAndCollect(ctx, depositA, depositB)
	if err != nil {
		return domain.PurchaseResult{}, err
	}

	if _, err := u.establishAuction(tx, newPositionID); err != nil {
		return domain.PurchaseResult{}, err
	}

	// Step 9: pour the balanced deposit into the sold position, stake it, and
	// hand the ownership wrapper to the receiver. Each move journals its own
	// compensation so a later failure can still make the buyer whole.
	liquidityBefore, err := u.positionLiquidity(ctx, positionID)
	if err != nil {
		return domain.PurchaseResult{}, err
	}

	deadline := u.now().Add(increaseLiquidityDeadline)
	if err := u.routes.PositionManager.IncreaseLiquidity(ctx, positionID, depositA, depositB, deadline); err != nil {
		return domain.PurchaseResult{}, err
	}

	liquidityAfter, err := u.positionLiquidity(ctx, positionID)
	if err != nil {
		return domain.PurchaseResult{}, err
	}
	addedLiquidity := liquidityAfter.Sub(liquidityBefore)
	tx.journalCompensation(func() error {
		return u.unwindPositionLiquidity(ctx, positionID, addedLiquidity)
	})

	if err := u.routes.Custody.Enter(ctx, positionID); err != nil {
		return domain.PurchaseResult{}, err
	}
	tx.journalCompensation(func() error { return u.routes.Custody.Exit(ctx, positionID) })

	if err := u.routes.Wrapper.Transfer(ctx, engine, receiver, positionID, oneInt); err != nil {
		return domain.PurchaseResult{}, err
	}
	tx.journalCompensation(func() error {
		return u.routes.Wrapper.Transfer(ctx, receiver, engine, positionID, oneInt)
	})

	// Step 10: refund any residual secondary balance to the caller.
	residualB, err := u.routes.TokenB.BalanceOf(ctx, engine)
	if err != nil {
		return domain.PurchaseResult{}, err
	}
	if residualB.IsPositive() {
		if err := u.routes.TokenB.Transfer(ctx, buyer, residualB); err != nil {
			return domain.PurchaseResult{}, err
		}
	}

	tx.Commit()

	domain.LiquidropListingsEstablished.Inc()

	return domain.PurchaseResult{
		SoldPositionID: positionID,
		NewPositionID:  newPositionID,
		SalePriceBips:  currentPrice,
		TipA:           tipA,
		TipB:           tipB,
		DepositA:       depositA,
		DepositB:       depositB,
	}, nil
}
