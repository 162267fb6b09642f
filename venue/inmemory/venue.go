// Package inmemory provides a self-contained constant-product venue
// implementing every collaborator contract the auction engine consumes. It
// backs local runs of the server and the end-to-end scenario tests.
package inmemory

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/liquidrop-labs/liquidrop/domain"
)

type asset int

const (
	assetA asset = iota
	assetB
)

type position struct {
	id        uint64
	liquidity osmomath.Int
	amountA   osmomath.Int
	amountB   osmomath.Int

	// claimable amounts left behind by DecreaseLiquidity until Collect.
	claimableA osmomath.Int
	claimableB osmomath.Int

	owner domain.Address
}

type wrapperKey struct {
	account    domain.Address
	positionID uint64
}

// Venue is an in-memory two-asset AMM: fungible balances for both funding
// assets, one constant-product pool, a position book and the ownership-wrapper
// ledger. All handles returned by Routes share the venue's single lock, so it
// behaves like the sequentially-ordered host the engine expects.
type Venue struct {
	mx sync.Mutex

	engineAddress domain.Address
	poolAddress   domain.Address

	fee osmomath.Dec

	balances map[asset]map[domain.Address]osmomath.Int

	positions      map[uint64]*position
	nextPositionID uint64

	staked map[uint64]struct{}

	wrapperBalances map[wrapperKey]osmomath.Int

	baseURI string
}

// NewVenue creates a venue with the given pool reserves seeded.
func NewVenue(engineAddress, poolAddress domain.Address, fee osmomath.Dec, reserveA, reserveB osmomath.Int) *Venue {
	v := &Venue{
		engineAddress: engineAddress,
		poolAddress:   poolAddress,
		fee:           fee,
		balances: map[asset]map[domain.Address]osmomath.Int{
			assetA: make(map[domain.Address]osmomath.Int),
			assetB: make(map[domain.Address]osmomath.Int),
		},
		positions:       make(map[uint64]*position),
		nextPositionID:  1,
		staked:          make(map[uint64]struct{}),
		wrapperBalances: make(map[wrapperKey]osmomath.Int),
		baseURI:         "https://liquidrop.example/positions/",
	}

	v.balances[assetA][poolAddress] = reserveA
	v.balances[assetB][poolAddress] = reserveB

	return v
}

// Routes bundles venue handles into the engine's collaborator routes.
func (v *Venue) Routes(adminAddress domain.Address) domain.AuctionRoutes {
	return domain.AuctionRoutes{
		EngineAddress:   v.engineAddress,
		AdminAddress:    adminAddress,
		PoolAddress:     v.poolAddress,
		TokenA:          &tokenHandle{v: v, asset: assetA},
		TokenB:          &tokenHandle{v: v, asset: assetB},
		Pool:            &poolHandle{v: v},
		SwapExecutor:    &swapHandle{v: v},
		PoolingHelper:   &poolingHandle{v: v},
		PositionManager: &positionManagerHandle{v: v},
		Custody:         &custodyHandle{v: v},
		Wrapper:         &wrapperHandle{v: v},
	}
}

// FundA credits the given account with the primary asset. Test helper.
func (v *Venue) FundA(account domain.Address, amount osmomath.Int) {
	v.mx.Lock()
	defer v.mx.Unlock()
	v.credit(assetA, account, amount)
}

// FundB credits the given account with the secondary asset. Test helper.
func (v *Venue) FundB(account domain.Address, amount osmomath.Int) {
	v.mx.Lock()
	defer v.mx.Unlock()
	v.credit(assetB, account, amount)
}

// BalanceA returns the primary-asset balance of the account.
func (v *Venue) BalanceA(account domain.Address) osmomath.Int {
	v.mx.Lock()
	defer v.mx.Unlock()
	return v.balanceOf(assetA, account)
}

// BalanceB returns the secondary-asset balance of the account.
func (v *Venue) BalanceB(account domain.Address) osmomath.Int {
	v.mx.Lock()
	defer v.mx.Unlock()
	return v.balanceOf(assetB, account)
}

// WrapperBalance returns the ownership-wrapper balance of account for the
// given position.
func (v *Venue) WrapperBalance(account domain.Address, positionID uint64) osmomath.Int {
	v.mx.Lock()
	defer v.mx.Unlock()

	balance, ok := v.wrapperBalances[wrapperKey{account: account, positionID: positionID}]
	if !ok {
		return osmomath.ZeroInt()
	}
	return balance
}

// IsStaked returns true if the position is parked in the custody service.
func (v *Venue) IsStaked(positionID uint64) bool {
	v.mx.Lock()
	defer v.mx.Unlock()

	_, ok := v.staked[positionID]
	return ok
}

func (v *Venue) balanceOf(a asset, account domain.Address) osmomath.Int {
	balance, ok := v.balances[a][account]
	if !ok {
		return osmomath.ZeroInt()
	}
	return balance
}

func (v *Venue) credit(a asset, account domain.Address, amount osmomath.Int) {
	v.balances[a][account] = v.balanceOf(a, account).Add(amount)
}

func (v *Venue) move(a asset, from, to domain.Address, amount osmomath.Int) error {
	if amount.IsNegative() {
		return fmt.Errorf("negative transfer amount (%s)", amount)
	}

	balance := v.balanceOf(a, from)
	if balance.LT(amount) {
		return fmt.Errorf("insufficient balance: (%s) holds (%s), needs (%s)", from, balance, amount)
	}

	v.balances[a][from] = balance.Sub(amount)
	v.credit(a, to, amount)

	return nil
}

// integer sqrt of a*b, the usual constant-product liquidity measure.
func liquidityFor(amountA, amountB osmomath.Int) osmomath.Int {
	product := new(big.Int).Mul(amountA.BigInt(), amountB.BigInt())
	return osmomath.NewIntFromBigInt(new(big.Int).Sqrt(product))
}

type tokenHandle struct {
	v     *Venue
	asset asset
}

var _ domain.FungibleToken = &tokenHandle{}

func (t *tokenHandle) TransferFrom(_ context.Context, owner, recipient domain.Address, amount osmomath.Int) error {
	t.v.mx.Lock()
	defer t.v.mx.Unlock()
	return t.v.move(t.asset, owner, recipient, amount)
}

func (t *tokenHandle) Transfer(_ context.Context, recipient domain.Address, amount osmomath.Int) error {
	t.v.mx.Lock()
	defer t.v.mx.Unlock()
	return t.v.move(t.asset, t.v.engineAddress, recipient, amount)
}

func (t *tokenHandle) Approve(context.Context, domain.Address, osmomath.Int) error {
	// Allowances are not modeled; TransferFrom always succeeds when funded.
	return nil
}

func (t *tokenHandle) BalanceOf(_ context.Context, account domain.Address) (osmomath.Int, error) {
	t.v.mx.Lock()
	defer t.v.mx.Unlock()
	return t.v.balanceOf(t.asset, account), nil
}

type poolHandle struct {
	v *Venue
}

var _ domain.Pool = &poolHandle{}

func (p *poolHandle) Fee(context.Context) (osmomath.Dec, error) {
	return p.v.fee, nil
}

type swapHandle struct {
	v *Venue
}

var _ domain.SwapExecutor = &swapHandle{}

// Buy spends the secondary asset for the primary one.
func (s *swapHandle) Buy(_ context.Context, amountIn osmomath.Int, recipient domain.Address) (osmomath.Int, error) {
	return s.swap(assetB, assetA, amountIn, recipient)
}

// Sell spends the primary asset for the secondary one.
func (s *swapHandle) Sell(_ context.Context, amountIn osmomath.Int, recipient domain.Address) (osmomath.Int, error) {
	return s.swap(assetA, assetB, amountIn, recipient)
}

// swap runs x*y=k with the proportional fee applied on the input side:
// out = reserveOut * phi * in / (reserveIn + phi * in).
func (s *swapHandle) swap(assetIn, assetOut asset, amountIn osmomath.Int, recipient domain.Address) (osmomath.Int, error) {
	s.v.mx.Lock()
	defer s.v.mx.Unlock()

	if !amountIn.IsPositive() {
		return osmomath.Int{}, fmt.Errorf("swap amount (%s) must be positive", amountIn)
	}

	reserveIn := s.v.balanceOf(assetIn, s.v.poolAddress)
	reserveOut := s.v.balanceOf(assetOut, s.v.poolAddress)

	phi := osmomath.OneDec().Sub(s.v.fee)
	effectiveIn := phi.MulInt(amountIn)

	amountOut := osmomath.NewDecFromInt(reserveOut).
		MulTruncate(effectiveIn).
		QuoTruncate(osmomath.NewDecFromInt(reserveIn).Add(effectiveIn)).
		TruncateInt()

	if err := s.v.move(assetIn, s.v.engineAddress, s.v.poolAddress, amountIn); err != nil {
		return osmomath.Int{}, err
	}
	if err := s.v.move(assetOut, s.v.poolAddress, recipient, amountOut); err != nil {
		return osmomath.Int{}, err
	}

	return amountOut, nil
}

type poolingHandle struct {
	v *Venue
}

var _ domain.PoolingHelper = &poolingHandle{}

// MintImbalanced pulls both amounts from the engine into pool custody and
// books a new position. The wrapper issuer credits the recipient one unit.
func (p *poolingHandle) MintImbalanced(_ context.Context, amountA, amountB osmomath.Int, recipient domain.Address) (uint64, error) {
	p.v.mx.Lock()
	defer p.v.mx.Unlock()

	if !amountA.IsPositive() || !amountB.IsPositive() {
		return 0, fmt.Errorf("cannot mint a zero-liquidity position (%s, %s)", amountA, amountB)
	}

	if err := p.v.move(assetA, p.v.engineAddress, p.v.poolAddress, amountA); err != nil {
		return 0, err
	}
	if err := p.v.move(assetB, p.v.engineAddress, p.v.poolAddress, amountB); err != nil {
		return 0, err
	}

	positionID := p.v.nextPositionID
	p.v.nextPositionID++

	p.v.positions[positionID] = &position{
		id:         positionID,
		liquidity:  liquidityFor(amountA, amountB),
		amountA:    amountA,
		amountB:    amountB,
		claimableA: osmomath.ZeroInt(),
		claimableB: osmomath.ZeroInt(),
		owner:      recipient,
	}

	key := wrapperKey{account: recipient, positionID: positionID}
	p.v.wrapperBalances[key] = osmomath.OneInt()

	return positionID, nil
}

type positionManagerHandle struct {
	v *Venue
}

var _ domain.PositionManager = &positionManagerHandle{}

func (m *positionManagerHandle) Position(_ context.Context, positionID uint64) (domain.PositionInfo, error) {
	m.v.mx.Lock()
	defer m.v.mx.Unlock()

	pos, err := m.v.position(positionID)
	if err != nil {
		return domain.PositionInfo{}, err
	}

	return domain.PositionInfo{
		PositionID: pos.id,
		Liquidity:  pos.liquidity,
		AmountA:    pos.amountA,
		AmountB:    pos.amountB,
		Owner:      pos.owner,
	}, nil
}

func (m *positionManagerHandle) IncreaseLiquidity(_ context.Context, positionID uint64, amountA, amountB osmomath.Int, _ time.Time) error {
	m.v.mx.Lock()
	defer m.v.mx.Unlock()

	pos, err := m.v.position(positionID)
	if err != nil {
		return err
	}

	if err := m.v.move(assetA, m.v.engineAddress, m.v.poolAddress, amountA); err != nil {
		return err
	}
	if err := m.v.move(assetB, m.v.engineAddress, m.v.poolAddress, amountB); err != nil {
		return err
	}

	pos.amountA = pos.amountA.Add(amountA)
	pos.amountB = pos.amountB.Add(amountB)
	pos.liquidity = liquidityFor(pos.amountA, pos.amountB)

	return nil
}

func (m *positionManagerHandle) DecreaseLiquidity(_ context.Context, positionID uint64, liquidity osmomath.Int) (osmomath.Int, osmomath.Int, error) {
	m.v.mx.Lock()
	defer m.v.mx.Unlock()

	pos, err := m.v.position(positionID)
	if err != nil {
		return osmomath.Int{}, osmomath.Int{}, err
	}

	if liquidity.GT(pos.liquidity) {
		return osmomath.Int{}, osmomath.Int{}, fmt.Errorf("position (%d) has liquidity (%s), cannot remove (%s)", positionID, pos.liquidity, liquidity)
	}

	var outA, outB osmomath.Int
	if liquidity.Equal(pos.liquidity) {
		outA, outB = pos.amountA, pos.amountB
	} else {
		outA = pos.amountA.Mul(liquidity).Quo(pos.liquidity)
		outB = pos.amountB.Mul(liquidity).Quo(pos.liquidity)
	}

	pos.amountA = pos.amountA.Sub(outA)
	pos.amountB = pos.amountB.Sub(outB)
	pos.liquidity = pos.liquidity.Sub(liquidity)

	pos.claimableA = pos.claimableA.Add(outA)
	pos.claimableB = pos.claimableB.Add(outB)

	return outA, outB, nil
}

func (m *positionManagerHandle) Collect(_ context.Context, positionID uint64, recipient domain.Address) (osmomath.Int, osmomath.Int, error) {
	m.v.mx.Lock()
	defer m.v.mx.Unlock()

	pos, err := m.v.position(positionID)
	if err != nil {
		return osmomath.Int{}, osmomath.Int{}, err
	}

	outA, outB := pos.claimableA, pos.claimableB
	pos.claimableA = osmomath.ZeroInt()
	pos.claimableB = osmomath.ZeroInt()

	if outA.IsPositive() {
		if err := m.v.move(assetA, m.v.poolAddress, recipient, outA); err != nil {
			return osmomath.Int{}, osmomath.Int{}, err
		}
	}
	if outB.IsPositive() {
		if err := m.v.move(assetB, m.v.poolAddress, recipient, outB); err != nil {
			return osmomath.Int{}, osmomath.Int{}, err
		}
	}

	return outA, outB, nil
}

func (m *positionManagerHandle) Transfer(_ context.Context, from, to domain.Address, positionID uint64) error {
	m.v.mx.Lock()
	defer m.v.mx.Unlock()

	pos, err := m.v.position(positionID)
	if err != nil {
		return err
	}
	if pos.owner != from {
		return fmt.Errorf("position (%d) is owned by (%s), not (%s)", positionID, pos.owner, from)
	}

	pos.owner = to
	return nil
}

func (m *positionManagerHandle) OwnerOf(_ context.Context, positionID uint64) (domain.Address, error) {
	m.v.mx.Lock()
	defer m.v.mx.Unlock()

	pos, err := m.v.position(positionID)
	if err != nil {
		return "", err
	}
	return pos.owner, nil
}

func (m *positionManagerHandle) TokenURI(_ context.Context, positionID uint64) (string, error) {
	m.v.mx.Lock()
	defer m.v.mx.Unlock()

	if _, err := m.v.position(positionID); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%d", m.v.baseURI, positionID), nil
}

func (v *Venue) position(positionID uint64) (*position, error) {
	pos, ok := v.positions[positionID]
	if !ok {
		return nil, fmt.Errorf("position (%d) does not exist", positionID)
	}
	return pos, nil
}

type custodyHandle struct {
	v *Venue
}

var _ domain.CustodyService = &custodyHandle{}

func (c *custodyHandle) Enter(_ context.Context, positionID uint64) error {
	c.v.mx.Lock()
	defer c.v.mx.Unlock()

	if _, ok := c.v.positions[positionID]; !ok {
		return fmt.Errorf("position (%d) does not exist", positionID)
	}

	c.v.staked[positionID] = struct{}{}
	return nil
}

func (c *custodyHandle) Exit(_ context.Context, positionID uint64) error {
	c.v.mx.Lock()
	defer c.v.mx.Unlock()

	if _, ok := c.v.staked[positionID]; !ok {
		return fmt.Errorf("position (%d) is not staked", positionID)
	}

	delete(c.v.staked, positionID)
	return nil
}

type wrapperHandle struct {
	v *Venue
}

var _ domain.WrapperToken = &wrapperHandle{}

func (w *wrapperHandle) Transfer(_ context.Context, from, to domain.Address, positionID uint64, amount osmomath.Int) error {
	w.v.mx.Lock()
	defer w.v.mx.Unlock()

	fromKey := wrapperKey{account: from, positionID: positionID}
	balance, ok := w.v.wrapperBalances[fromKey]
	if !ok || balance.LT(amount) {
		return fmt.Errorf("wrapper balance of (%s) for position (%d) is below (%s)", from, positionID, amount)
	}

	toKey := wrapperKey{account: to, positionID: positionID}
	w.v.wrapperBalances[fromKey] = balance.Sub(amount)

	current, ok := w.v.wrapperBalances[toKey]
	if !ok {
		current = osmomath.ZeroInt()
	}
	w.v.wrapperBalances[toKey] = current.Add(amount)

	return nil
}

func (w *wrapperHandle) SetApprovalForAll(context.Context, domain.Address, bool) error {
	// Operator approvals are not modeled.
	return nil
}
