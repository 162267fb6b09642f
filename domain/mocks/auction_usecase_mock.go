package mocks

import (
	"context"

	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/liquidrop-labs/liquidrop/domain"
	"github.com/liquidrop-labs/liquidrop/domain/mvc"
)

// AuctionUsecaseMock mocks mvc.AuctionUsecase for delivery-layer tests.
type AuctionUsecaseMock struct {
	GetAuctionSettingsFn      func() domain.AuctionSettings
	GetBureauStateFn          func() domain.BureauState
	GetCurrentAuctionCountFn  func() uint64
	GetCurrentAuctionsFn      func() []uint64
	GetCurrentAuctionStatesFn func() []domain.AuctionState
	GetAuctionStateFn         func(positionID uint64) (domain.AuctionState, error)
	GetCurrentPriceBipsFn     func(positionID uint64) (osmomath.Dec, error)
	GetTokenURIFn             func(ctx context.Context, positionID uint64) (string, error)
	IsInitializedFn           func() bool
	GetAuctionCountFn         func() uint64
	InitializeFn              func(ctx context.Context, caller domain.Address, amountA, amountB osmomath.Int, receiver domain.Address) (uint64, error)
	SetAuctionCountFn         func(ctx context.Context, caller domain.Address, targetCount uint64, replenishFunds osmomath.Int) error
	PurchaseFn                func(ctx context.Context, buyer domain.Address, positionID uint64, amountA, amountB osmomath.Int, beneficiary, receiver domain.Address) (domain.PurchaseResult, error)
}

var _ mvc.AuctionUsecase = &AuctionUsecaseMock{}

func (m *AuctionUsecaseMock) GetAuctionSettings() domain.AuctionSettings {
	if m.GetAuctionSettingsFn != nil {
		return m.GetAuctionSettingsFn()
	}
	return domain.AuctionSettings{}
}

func (m *AuctionUsecaseMock) GetBureauState() domain.BureauState {
	if m.GetBureauStateFn != nil {
		return m.GetBureauStateFn()
	}
	return domain.BureauState{}
}

func (m *AuctionUsecaseMock) GetCurrentAuctionCount() uint64 {
	if m.GetCurrentAuctionCountFn != nil {
		return m.GetCurrentAuctionCountFn()
	}
	return 0
}

func (m *AuctionUsecaseMock) GetCurrentAuctions() []uint64 {
	if m.GetCurrentAuctionsFn != nil {
		return m.GetCurrentAuctionsFn()
	}
	return nil
}

func (m *AuctionUsecaseMock) GetCurrentAuctionStates() []domain.AuctionState {
	if m.GetCurrentAuctionStatesFn != nil {
		return m.GetCurrentAuctionStatesFn()
	}
	return nil
}

func (m *AuctionUsecaseMock) GetAuctionState(positionID uint64) (domain.AuctionState, error) {
	if m.GetAuctionStateFn != nil {
		return m.GetAuctionStateFn(positionID)
	}
	return domain.AuctionState{}, nil
}

func (m *AuctionUsecaseMock) GetCurrentPriceBips(positionID uint64) (osmomath.Dec, error) {
	if m.GetCurrentPriceBipsFn != nil {
		return m.GetCurrentPriceBipsFn(positionID)
	}
	return osmomath.ZeroDec(), nil
}

func (m *AuctionUsecaseMock) GetTokenURI(ctx context.Context, positionID uint64) (string, error) {
	if m.GetTokenURIFn != nil {
		return m.GetTokenURIFn(ctx, positionID)
	}
	return "", nil
}

func (m *AuctionUsecaseMock) IsInitialized() bool {
	if m.IsInitializedFn != nil {
		return m.IsInitializedFn()
	}
	return false
}

func (m *AuctionUsecaseMock) GetAuctionCount() uint64 {
	if m.GetAuctionCountFn != nil {
		return m.GetAuctionCountFn()
	}
	return 0
}

func (m *AuctionUsecaseMock) Initialize(ctx context.Context, caller domain.Address, amountA, amountB osmomath.Int, receiver domain.Address) (uint64, error) {
	if m.InitializeFn != nil {
		return m.InitializeFn(ctx, caller, amountA, amountB, receiver)
	}
	return 0, nil
}

func (m *AuctionUsecaseMock) SetAuctionCount(ctx context.Context, caller domain.Address, targetCount uint64, replenishFunds osmomath.Int) error {
	if m.SetAuctionCountFn != nil {
		return m.SetAuctionCountFn(ctx, caller, targetCount, replenishFunds)
	}
	return nil
}

func (m *AuctionUsecaseMock) Purchase(ctx context.Context, buyer domain.Address, positionID uint64, amountA, amountB osmomath.Int, beneficiary, receiver domain.Address) (domain.PurchaseResult, error) {
	if m.PurchaseFn != nil {
		return m.PurchaseFn(ctx, buyer, positionID, amountA, amountB, beneficiary, receiver)
	}
	return domain.PurchaseResult{}, nil
}
