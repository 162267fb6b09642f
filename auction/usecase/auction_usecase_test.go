package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/osmosis-labs/osmosis/osmomath"
	"github.com/stretchr/testify/suite"

	auctionusecase "github.com/liquidrop-labs/liquidrop/auction/usecase"
	"github.com/liquidrop-labs/liquidrop/domain"
	"github.com/liquidrop-labs/liquidrop/log"
	"github.com/liquidrop-labs/liquidrop/venue/inmemory"
)

const (
	engineAddress      = domain.Address("engine")
	adminAddress       = domain.Address("admin")
	poolAddress        = domain.Address("pool")
	buyerAddress       = domain.Address("buyer")
	receiverAddress    = domain.Address("receiver")
	beneficiaryAddress = domain.Address("beneficiary")
)

var (
	defaultFee      = osmomath.MustNewDecFromStr("0.003")
	defaultReserve  = osmomath.NewInt(1_000_000_000_000)
	defaultSettings = domain.AuctionSettings{
		DecayRatePerSecond:   osmomath.MustNewDecFromStr("0.0001"),
		MinDeposit:           osmomath.NewInt(1000),
		PriceGrowthIncrement: osmomath.ZeroDec(),
		InitialPriceBips:     osmomath.MustNewDecFromStr("0.05"),
		FloorPriceBips:       osmomath.MustNewDecFromStr("0.01"),
		CeilingPriceBips:     osmomath.MustNewDecFromStr("0.2"),
	}

	defaultTime = time.Unix(1_700_000_000, 0).UTC()
)

type AuctionUsecaseTestSuite struct {
	suite.Suite

	venue   *inmemory.Venue
	usecase *auctionusecase.AuctionUsecase
}

func TestAuctionUsecaseTestSuite(t *testing.T) {
	suite.Run(t, new(AuctionUsecaseTestSuite))
}

func (s *AuctionUsecaseTestSuite) SetupTest() {
	s.venue = inmemory.NewVenue(engineAddress, poolAddress, defaultFee, defaultReserve, defaultReserve)

	usecase, err := auctionusecase.NewAuctionUsecase(s.venue.Routes(adminAddress), defaultSettings, log.NewNoOpLogger())
	s.Require().NoError(err)

	usecase.SetTimeNow(func() time.Time { return defaultTime })
	s.usecase = usecase

	s.venue.FundA(adminAddress, osmomath.NewInt(1_000_000))
	s.venue.FundB(adminAddress, osmomath.NewInt(10_000_000))
	s.venue.FundB(buyerAddress, osmomath.NewInt(10_000_000))
}

// initialize bootstraps the engine with the default amounts.
func (s *AuctionUsecaseTestSuite) initialize() uint64 {
	positionID, err := s.usecase.Initialize(context.Background(), adminAddress, osmomath.NewInt(1000), osmomath.NewInt(1000), receiverAddress)
	s.Require().NoError(err)
	return positionID
}

func (s *AuctionUsecaseTestSuite) TestInitialize_Bootstrap() {
	positionID := s.initialize()

	s.Require().True(s.usecase.IsInitialized())
	s.Require().Equal(uint64(1), s.usecase.GetCurrentAuctionCount())
	s.Require().Equal(uint64(1), s.usecase.GetAuctionCount())
	s.Require().Equal([]uint64{positionID}, s.usecase.GetCurrentAuctions())

	bureau := s.usecase.GetBureauState()
	s.Require().Equal(uint64(1), bureau.TotalAuctions)
	s.Require().True(bureau.LastSalePriceBips.IsZero())

	state, err := s.usecase.GetAuctionState(positionID)
	s.Require().NoError(err)
	s.Require().Equal(defaultSettings.InitialPriceBips.String(), state.StartPriceBips.String())
	s.Require().Equal(defaultSettings.FloorPriceBips.String(), state.FloorPriceBips.String())
	s.Require().False(state.IsSold())

	// The bootstrap position is staked and its ownership wrapper forwarded.
	s.Require().True(s.venue.IsStaked(positionID))
	s.Require().Equal(osmomath.OneInt().String(), s.venue.WrapperBalance(receiverAddress, positionID).String())
}

func (s *AuctionUsecaseTestSuite) TestInitialize_Errors() {
	ctx := context.Background()

	// Not the admin.
	_, err := s.usecase.Initialize(ctx, buyerAddress, osmomath.NewInt(1000), osmomath.NewInt(1000), receiverAddress)
	s.Require().ErrorAs(err, &domain.UnauthorizedError{})

	// Zero amounts and zero receiver.
	_, err = s.usecase.Initialize(ctx, adminAddress, osmomath.ZeroInt(), osmomath.NewInt(1000), receiverAddress)
	s.Require().ErrorAs(err, &domain.ZeroAmountError{})

	_, err = s.usecase.Initialize(ctx, adminAddress, osmomath.NewInt(1000), osmomath.NewInt(1000), "")
	s.Require().ErrorAs(err, &domain.ZeroAddressError{})

	// Second call.
	s.initialize()
	_, err = s.usecase.Initialize(ctx, adminAddress, osmomath.NewInt(1000), osmomath.NewInt(1000), receiverAddress)
	s.Require().ErrorAs(err, &domain.AlreadyInitializedError{})
}

func (s *AuctionUsecaseTestSuite) TestSetAuctionCount_ScaleUp() {
	ctx := context.Background()
	s.initialize()

	err := s.usecase.SetAuctionCount(ctx, adminAddress, 3, osmomath.NewInt(1_000_000))
	s.Require().NoError(err)

	s.Require().Equal(uint64(3), s.usecase.GetCurrentAuctionCount())
	s.Require().Equal(uint64(3), s.usecase.GetAuctionCount())
	s.Require().Equal(uint64(3), s.usecase.GetBureauState().TotalAuctions)

	// No sale has happened, so every listing starts at the initial price.
	for _, state := range s.usecase.GetCurrentAuctionStates() {
		s.Require().Equal(defaultSettings.InitialPriceBips.String(), state.StartPriceBips.String())
		s.Require().False(state.IsSold())
	}

	// The replenishment remainder was refunded: the admin spent strictly less
	// than the pulled funds.
	adminB := s.venue.BalanceB(adminAddress)
	s.Require().True(adminB.GT(osmomath.NewInt(9_000_000-1_000_000)), "admin balance b: %s", adminB)
}

func (s *AuctionUsecaseTestSuite) TestSetAuctionCount_LoweringNeverRetires() {
	ctx := context.Background()
	s.initialize()

	s.Require().NoError(s.usecase.SetAuctionCount(ctx, adminAddress, 3, osmomath.NewInt(1_000_000)))

	// Lowering the target only records it; active listings are untouched.
	s.Require().NoError(s.usecase.SetAuctionCount(ctx, adminAddress, 1, osmomath.Int{}))
	s.Require().Equal(uint64(1), s.usecase.GetAuctionCount())
	s.Require().Equal(uint64(3), s.usecase.GetCurrentAuctionCount())
}

func (s *AuctionUsecaseTestSuite) TestSetAuctionCount_Errors() {
	ctx := context.Background()

	err := s.usecase.SetAuctionCount(ctx, adminAddress, 3, osmomath.NewInt(1_000_000))
	s.Require().ErrorAs(err, &domain.NotInitializedError{})

	s.initialize()

	err = s.usecase.SetAuctionCount(ctx, buyerAddress, 3, osmomath.NewInt(1_000_000))
	s.Require().ErrorAs(err, &domain.UnauthorizedError{})

	err = s.usecase.SetAuctionCount(ctx, adminAddress, 3, osmomath.ZeroInt())
	s.Require().ErrorAs(err, &domain.ZeroAmountError{})
}

// scaleUp establishes listings beyond the bootstrap one and returns the
// identifier of a non-bootstrap active listing, whose ownership wrapper the
// engine still custodies.
func (s *AuctionUsecaseTestSuite) scaleUp() uint64 {
	s.Require().NoError(s.usecase.SetAuctionCount(context.Background(), adminAddress, 3, osmomath.NewInt(1_000_000)))

	auctions := s.usecase.GetCurrentAuctions()
	s.Require().Len(auctions, 3)

	return auctions[1]
}

func (s *AuctionUsecaseTestSuite) TestPurchase_SingleAsset() {
	ctx := context.Background()
	s.initialize()
	positionID := s.scaleUp()

	amountB := osmomath.NewInt(1_000_000)

	result, err := s.usecase.Purchase(ctx, buyerAddress, positionID, osmomath.Int{}, amountB, beneficiaryAddress, receiverAddress)
	s.Require().NoError(err)

	// Sold at the undecayed start price.
	s.Require().Equal(defaultSettings.InitialPriceBips.String(), result.SalePriceBips.String())

	// Tip of amountB * price went to the beneficiary in asset B only.
	s.Require().Equal(osmomath.NewInt(50_000).String(), result.TipB.String())
	s.Require().True(result.TipA.IsZero())
	s.Require().Equal(osmomath.NewInt(50_000).String(), s.venue.BalanceB(beneficiaryAddress).String())

	// The single-sided payment was balanced into two legs above the threshold.
	s.Require().True(result.DepositA.GT(defaultSettings.MinDeposit))
	s.Require().True(result.DepositB.GT(defaultSettings.MinDeposit))

	// Replenishment: the sold listing is replaced, the active count holds.
	s.Require().Equal(uint64(3), s.usecase.GetCurrentAuctionCount())
	s.Require().NotContains(s.usecase.GetCurrentAuctions(), positionID)
	s.Require().Contains(s.usecase.GetCurrentAuctions(), result.NewPositionID)

	// The sold record is terminal and excluded from the active set.
	state, err := s.usecase.GetAuctionState(positionID)
	s.Require().NoError(err)
	s.Require().True(state.IsSold())

	// The receiver owns the wrapper of the enlarged sold position; it is
	// parked in custody.
	s.Require().Equal(osmomath.OneInt().String(), s.venue.WrapperBalance(receiverAddress, positionID).String())
	s.Require().True(s.venue.IsStaked(positionID))

	// Bureau bookkeeping.
	bureau := s.usecase.GetBureauState()
	s.Require().Equal(result.SalePriceBips.String(), bureau.LastSalePriceBips.String())
	s.Require().Equal(uint64(4), bureau.TotalAuctions)
}

func (s *AuctionUsecaseTestSuite) TestPurchase_OneShot() {
	ctx := context.Background()
	s.initialize()
	positionID := s.scaleUp()

	_, err := s.usecase.Purchase(ctx, buyerAddress, positionID, osmomath.Int{}, osmomath.NewInt(1_000_000), beneficiaryAddress, receiverAddress)
	s.Require().NoError(err)

	_, err = s.usecase.Purchase(ctx, buyerAddress, positionID, osmomath.Int{}, osmomath.NewInt(1_000_000), beneficiaryAddress, receiverAddress)
	s.Require().ErrorAs(err, &domain.AlreadySoldError{})
}

func (s *AuctionUsecaseTestSuite) TestPurchase_StartPriceDoublingWithCap() {
	ctx := context.Background()
	s.initialize()
	s.scaleUp()

	buy := func(positionID uint64) domain.PurchaseResult {
		result, err := s.usecase.Purchase(ctx, buyerAddress, positionID, osmomath.Int{}, osmomath.NewInt(1_000_000), beneficiaryAddress, receiverAddress)
		s.Require().NoError(err)
		return result
	}

	// First sale at the initial price doubles the next start price.
	result := buy(s.usecase.GetCurrentAuctions()[1])
	s.Require().Equal(osmomath.MustNewDecFromStr("0.05").String(), result.SalePriceBips.String())

	replacement, err := s.usecase.GetAuctionState(result.NewPositionID)
	s.Require().NoError(err)
	s.Require().Equal(osmomath.MustNewDecFromStr("0.1").String(), replacement.StartPriceBips.String())

	// Selling the doubled listing reaches the ceiling exactly.
	result = buy(result.NewPositionID)
	s.Require().Equal(osmomath.MustNewDecFromStr("0.1").String(), result.SalePriceBips.String())

	replacement, err = s.usecase.GetAuctionState(result.NewPositionID)
	s.Require().NoError(err)
	s.Require().Equal(defaultSettings.CeilingPriceBips.String(), replacement.StartPriceBips.String())

	// Beyond the ceiling the start price stays capped.
	result = buy(result.NewPositionID)
	s.Require().Equal(defaultSettings.CeilingPriceBips.String(), result.SalePriceBips.String())

	replacement, err = s.usecase.GetAuctionState(result.NewPositionID)
	s.Require().NoError(err)
	s.Require().Equal(defaultSettings.CeilingPriceBips.String(), replacement.StartPriceBips.String())
}

func (s *AuctionUsecaseTestSuite) TestPurchase_DecayToFloor() {
	ctx := context.Background()
	s.initialize()
	positionID := s.scaleUp()

	// Far past the decay horizon the quoted price is pinned at the floor.
	s.usecase.SetTimeNow(func() time.Time { return defaultTime.Add(100 * 365 * 24 * time.Hour) })

	price, err := s.usecase.GetCurrentPriceBips(positionID)
	s.Require().NoError(err)
	s.Require().Equal(defaultSettings.FloorPriceBips.String(), price.String())

	result, err := s.usecase.Purchase(ctx, buyerAddress, positionID, osmomath.Int{}, osmomath.NewInt(1_000_000), beneficiaryAddress, receiverAddress)
	s.Require().NoError(err)
	s.Require().Equal(defaultSettings.FloorPriceBips.String(), result.SalePriceBips.String())
}

func (s *AuctionUsecaseTestSuite) TestPurchase_Errors() {
	ctx := context.Background()
	s.initialize()
	positionID := s.scaleUp()

	amountB := osmomath.NewInt(1_000_000)

	// Zero position ID.
	_, err := s.usecase.Purchase(ctx, buyerAddress, 0, osmomath.Int{}, amountB, beneficiaryAddress, receiverAddress)
	s.Require().ErrorAs(err, &domain.InvalidPositionIDError{})

	// No payment.
	_, err = s.usecase.Purchase(ctx, buyerAddress, positionID, osmomath.Int{}, osmomath.Int{}, beneficiaryAddress, receiverAddress)
	s.Require().ErrorAs(err, &domain.ZeroAmountError{})

	// Null beneficiary / receiver.
	_, err = s.usecase.Purchase(ctx, buyerAddress, positionID, osmomath.Int{}, amountB, "", receiverAddress)
	s.Require().ErrorAs(err, &domain.ZeroAddressError{})

	_, err = s.usecase.Purchase(ctx, buyerAddress, positionID, osmomath.Int{}, amountB, beneficiaryAddress, "")
	s.Require().ErrorAs(err, &domain.ZeroAddressError{})

	// Unknown listing.
	_, err = s.usecase.Purchase(ctx, buyerAddress, 999, osmomath.Int{}, amountB, beneficiaryAddress, receiverAddress)
	s.Require().ErrorAs(err, &domain.NotListedError{})

	// Both tips truncate to zero: 19 * 0.05 < 1. The aborted attempt returns
	// the pulled payment in full.
	_, err = s.usecase.Purchase(ctx, buyerAddress, positionID, osmomath.Int{}, osmomath.NewInt(19), beneficiaryAddress, receiverAddress)
	s.Require().ErrorAs(err, &domain.InvalidTipError{})
	s.Require().Equal(osmomath.NewInt(10_000_000).String(), s.venue.BalanceB(buyerAddress).String())

	// Post-tip legs fail to clear the dust threshold.
	_, err = s.usecase.Purchase(ctx, buyerAddress, positionID, osmomath.Int{}, osmomath.NewInt(2000), beneficiaryAddress, receiverAddress)
	s.Require().ErrorAs(err, &domain.NotEnoughForDustError{})

	// None of the failures consumed the listing, paid a tip or left funds
	// with the engine.
	state, err := s.usecase.GetAuctionState(positionID)
	s.Require().NoError(err)
	s.Require().False(state.IsSold())
	s.Require().Equal(uint64(3), s.usecase.GetCurrentAuctionCount())
	s.Require().True(s.venue.BalanceB(beneficiaryAddress).IsZero())
	s.Require().True(s.venue.BalanceA(engineAddress).IsZero())
	s.Require().True(s.venue.BalanceB(engineAddress).IsZero())
}

func (s *AuctionUsecaseTestSuite) TestPurchase_FailedAttemptRefundsBuyer() {
	ctx := context.Background()
	s.initialize()
	positionID := s.scaleUp()

	buyerBefore := s.venue.BalanceB(buyerAddress)
	payment := osmomath.NewInt(2000)

	// Both post-tip legs of a 2000 payment land under the deposit threshold
	// after the balancing swap, so the attempt aborts mid-flight.
	_, err := s.usecase.Purchase(ctx, buyerAddress, positionID, osmomath.Int{}, payment, beneficiaryAddress, receiverAddress)
	s.Require().ErrorAs(err, &domain.NotEnoughForDustError{})

	// No tip was paid and the engine kept nothing.
	s.Require().True(s.venue.BalanceB(beneficiaryAddress).IsZero())
	s.Require().True(s.venue.BalanceA(engineAddress).IsZero())
	s.Require().True(s.venue.BalanceB(engineAddress).IsZero())

	// The buyer got the payment back: the unswapped leg in asset B, the
	// already-swapped leg in asset A, short of the original amount by at most
	// a few units of swap fee and rounding.
	refundedB := s.venue.BalanceB(buyerAddress).Sub(buyerBefore.Sub(payment))
	refundedA := s.venue.BalanceA(buyerAddress)
	refunded := refundedA.Add(refundedB)
	s.Require().True(refunded.GTE(osmomath.NewInt(1990)), "refunded: %s", refunded)
	s.Require().True(refunded.LTE(payment))
}

func (s *AuctionUsecaseTestSuite) TestGetCurrentPriceBips_Errors() {
	s.initialize()
	positionID := s.scaleUp()

	_, err := s.usecase.GetCurrentPriceBips(999)
	s.Require().ErrorAs(err, &domain.NotListedError{})

	_, err = s.usecase.Purchase(context.Background(), buyerAddress, positionID, osmomath.Int{}, osmomath.NewInt(1_000_000), beneficiaryAddress, receiverAddress)
	s.Require().NoError(err)

	_, err = s.usecase.GetCurrentPriceBips(positionID)
	s.Require().ErrorAs(err, &domain.AlreadySoldError{})
}

func (s *AuctionUsecaseTestSuite) TestGetTokenURI() {
	s.initialize()

	uri, err := s.usecase.GetTokenURI(context.Background(), 1)
	s.Require().NoError(err)
	s.Require().Contains(uri, "1")
}
