package mocks

import (
	"context"
	"time"

	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/liquidrop-labs/liquidrop/domain"
)

// FungibleTokenMock delegates every call to the corresponding function field.
// Unset fields succeed with zero values.
type FungibleTokenMock struct {
	TransferFromFn func(ctx context.Context, owner, recipient domain.Address, amount osmomath.Int) error
	TransferFn     func(ctx context.Context, recipient domain.Address, amount osmomath.Int) error
	ApproveFn      func(ctx context.Context, spender domain.Address, amount osmomath.Int) error
	BalanceOfFn    func(ctx context.Context, account domain.Address) (osmomath.Int, error)
}

var _ domain.FungibleToken = &FungibleTokenMock{}

func (m *FungibleTokenMock) TransferFrom(ctx context.Context, owner, recipient domain.Address, amount osmomath.Int) error {
	if m.TransferFromFn != nil {
		return m.TransferFromFn(ctx, owner, recipient, amount)
	}
	return nil
}

func (m *FungibleTokenMock) Transfer(ctx context.Context, recipient domain.Address, amount osmomath.Int) error {
	if m.TransferFn != nil {
		return m.TransferFn(ctx, recipient, amount)
	}
	return nil
}

func (m *FungibleTokenMock) Approve(ctx context.Context, spender domain.Address, amount osmomath.Int) error {
	if m.ApproveFn != nil {
		return m.ApproveFn(ctx, spender, amount)
	}
	return nil
}

func (m *FungibleTokenMock) BalanceOf(ctx context.Context, account domain.Address) (osmomath.Int, error) {
	if m.BalanceOfFn != nil {
		return m.BalanceOfFn(ctx, account)
	}
	return osmomath.ZeroInt(), nil
}

// PoolMock mocks domain.Pool.
type PoolMock struct {
	FeeFn func(ctx context.Context) (osmomath.Dec, error)
}

var _ domain.Pool = &PoolMock{}

func (m *PoolMock) Fee(ctx context.Context) (osmomath.Dec, error) {
	if m.FeeFn != nil {
		return m.FeeFn(ctx)
	}
	return osmomath.ZeroDec(), nil
}

// SwapExecutorMock mocks domain.SwapExecutor.
type SwapExecutorMock struct {
	BuyFn  func(ctx context.Context, amountIn osmomath.Int, recipient domain.Address) (osmomath.Int, error)
	SellFn func(ctx context.Context, amountIn osmomath.Int, recipient domain.Address) (osmomath.Int, error)
}

var _ domain.SwapExecutor = &SwapExecutorMock{}

func (m *SwapExecutorMock) Buy(ctx context.Context, amountIn osmomath.Int, recipient domain.Address) (osmomath.Int, error) {
	if m.BuyFn != nil {
		return m.BuyFn(ctx, amountIn, recipient)
	}
	return osmomath.ZeroInt(), nil
}

func (m *SwapExecutorMock) Sell(ctx context.Context, amountIn osmomath.Int, recipient domain.Address) (osmomath.Int, error) {
	if m.SellFn != nil {
		return m.SellFn(ctx, amountIn, recipient)
	}
	return osmomath.ZeroInt(), nil
}

// PoolingHelperMock mocks domain.PoolingHelper.
type PoolingHelperMock struct {
	MintImbalancedFn func(ctx context.Context, amountA, amountB osmomath.Int, recipient domain.Address) (uint64, error)
}

var _ domain.PoolingHelper = &PoolingHelperMock{}

func (m *PoolingHelperMock) MintImbalanced(ctx context.Context, amountA, amountB osmomath.Int, recipient domain.Address) (uint64, error) {
	if m.MintImbalancedFn != nil {
		return m.MintImbalancedFn(ctx, amountA, amountB, recipient)
	}
	return 0, nil
}

// PositionManagerMock mocks domain.PositionManager.
type PositionManagerMock struct {
	PositionFn          func(ctx context.Context, positionID uint64) (domain.PositionInfo, error)
	IncreaseLiquidityFn func(ctx context.Context, positionID uint64, amountA, amountB osmomath.Int, deadline time.Time) error
	DecreaseLiquidityFn func(ctx context.Context, positionID uint64, liquidity osmomath.Int) (osmomath.Int, osmomath.Int, error)
	CollectFn           func(ctx context.Context, positionID uint64, recipient domain.Address) (osmomath.Int, osmomath.Int, error)
	TransferFn          func(ctx context.Context, from, to domain.Address, positionID uint64) error
	OwnerOfFn           func(ctx context.Context, positionID uint64) (domain.Address, error)
	TokenURIFn          func(ctx context.Context, positionID uint64) (string, error)
}

var _ domain.PositionManager = &PositionManagerMock{}

func (m *PositionManagerMock) Position(ctx context.Context, positionID uint64) (domain.PositionInfo, error) {
	if m.PositionFn != nil {
		return m.PositionFn(ctx, positionID)
	}
	return domain.PositionInfo{}, nil
}

func (m *PositionManagerMock) IncreaseLiquidity(ctx context.Context, positionID uint64, amountA, amountB osmomath.Int, deadline time.Time) error {
	if m.IncreaseLiquidityFn != nil {
		return m.IncreaseLiquidityFn(ctx, positionID, amountA, amountB, deadline)
	}
	return nil
}

func (m *PositionManagerMock) DecreaseLiquidity(ctx context.Context, positionID uint64, liquidity osmomath.Int) (osmomath.Int, osmomath.Int, error) {
	if m.DecreaseLiquidityFn != nil {
		return m.DecreaseLiquidityFn(ctx, positionID, liquidity)
	}
	return osmomath.ZeroInt(), osmomath.ZeroInt(), nil
}

func (m *PositionManagerMock) Collect(ctx context.Context, positionID uint64, recipient domain.Address) (osmomath.Int, osmomath.Int, error) {
	if m.CollectFn != nil {
		return m.CollectFn(ctx, positionID, recipient)
	}
	return osmomath.ZeroInt(), osmomath.ZeroInt(), nil
}

func (m *PositionManagerMock) Transfer(ctx context.Context, from, to domain.Address, positionID uint64) error {
	if m.TransferFn != nil {
		return m.TransferFn(ctx, from, to, positionID)
	}
	return nil
}

func (m *PositionManagerMock) OwnerOf(ctx context.Context, positionID uint64) (domain.Address, error) {
	if m.OwnerOfFn != nil {
		return m.OwnerOfFn(ctx, positionID)
	}
	return "", nil
}

func (m *PositionManagerMock) TokenURI(ctx context.Context, positionID uint64) (string, error) {
	if m.TokenURIFn != nil {
		return m.TokenURIFn(ctx, positionID)
	}
	return "", nil
}

// CustodyServiceMock mocks domain.CustodyService.
type CustodyServiceMock struct {
	EnterFn func(ctx context.Context, positionID uint64) error
	ExitFn  func(ctx context.Context, positionID uint64) error
}

var _ domain.CustodyService = &CustodyServiceMock{}

func (m *CustodyServiceMock) Enter(ctx context.Context, positionID uint64) error {
	if m.EnterFn != nil {
		return m.EnterFn(ctx, positionID)
	}
	return nil
}

func (m *CustodyServiceMock) Exit(ctx context.Context, positionID uint64) error {
	if m.ExitFn != nil {
		return m.ExitFn(ctx, positionID)
	}
	return nil
}

// WrapperTokenMock mocks domain.WrapperToken.
type WrapperTokenMock struct {
	TransferFn          func(ctx context.Context, from, to domain.Address, positionID uint64, amount osmomath.Int) error
	SetApprovalForAllFn func(ctx context.Context, operator domain.Address, approved bool) error
}

var _ domain.WrapperToken = &WrapperTokenMock{}

func (m *WrapperTokenMock) Transfer(ctx context.Context, from, to domain.Address, positionID uint64, amount osmomath.Int) error {
	if m.TransferFn != nil {
		return m.TransferFn(ctx, from, to, positionID, amount)
	}
	return nil
}

func (m *WrapperTokenMock) SetApprovalForAll(ctx context.Context, operator domain.Address, approved bool) error {
	if m.SetApprovalForAllFn != nil {
		return m.SetApprovalForAllFn(ctx, operator, approved)
	}
	return nil
}
