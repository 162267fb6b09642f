package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/liquidrop-labs/liquidrop/domain"
	"github.com/liquidrop-labs/liquidrop/domain/mvc"
	"github.com/liquidrop-labs/liquidrop/log"
)

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

// AuctionHandler represent the httphandler for the auction engine
type AuctionHandler struct {
	AUsecase mvc.AuctionUsecase

	logger log.Logger
}

const resourcePrefix = "/auction"

// AdminKeyHeader carries the operator credential required by admin endpoints.
const AdminKeyHeader = "X-Liquidrop-Admin-Key"

func formatAuctionResource(resource string) string {
	return resourcePrefix + resource
}

// requireAdminKey rejects requests whose admin-key header does not match the
// configured credential. An empty configured key locks the admin surface.
func requireAdminKey(adminKey string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			presented := c.Request().Header.Get(AdminKeyHeader)
			if adminKey == "" || presented != adminKey {
				err := domain.UnauthorizedError{Caller: domain.Address(c.RealIP())}
				return c.JSON(domain.GetStatusCode(err), ResponseError{Message: err.Error()})
			}
			return next(c)
		}
	}
}

// NewAuctionHandler will initialize the auction/ resources endpoint
func NewAuctionHandler(e *echo.Echo, us mvc.AuctionUsecase, adminKey string, logger log.Logger) {
	handler := &AuctionHandler{
		AUsecase: us,
		logger:   logger,
	}

	e.GET(formatAuctionResource("/settings"), handler.GetAuctionSettings)
	e.GET(formatAuctionResource("/bureau"), handler.GetBureauState)
	e.GET(formatAuctionResource("/count"), handler.GetAuctionCounts)
	e.GET(formatAuctionResource("/listings"), handler.GetCurrentAuctionStates)
	e.GET(formatAuctionResource("/listings/ids"), handler.GetCurrentAuctions)
	e.GET(formatAuctionResource("/listings/:id"), handler.GetAuctionState)
	e.GET(formatAuctionResource("/listings/:id/price"), handler.GetCurrentPriceBips)
	e.GET(formatAuctionResource("/listings/:id/uri"), handler.GetTokenURI)

	adminOnly := requireAdminKey(adminKey)
	e.POST(formatAuctionResource("/initialize"), handler.Initialize, adminOnly)
	e.POST(formatAuctionResource("/count"), handler.SetAuctionCount, adminOnly)

	e.POST(formatAuctionResource("/purchase"), handler.Purchase)
}

// GetAuctionSettings returns the operator-configured pricing policy.
func (a *AuctionHandler) GetAuctionSettings(c echo.Context) error {
	return c.JSON(http.StatusOK, a.AUsecase.GetAuctionSettings())
}

// GetBureauState returns the aggregate sale bookkeeping.
func (a *AuctionHandler) GetBureauState(c echo.Context) error {
	return c.JSON(http.StatusOK, a.AUsecase.GetBureauState())
}

// AuctionCountsResponse is a structure for serializing listing counts.
type AuctionCountsResponse struct {
	ActiveCount uint64 `json:"active_count"`
	TargetCount uint64 `json:"target_count"`
	Initialized bool   `json:"initialized"`
}

// GetAuctionCounts returns the active and target listing counts.
func (a *AuctionHandler) GetAuctionCounts(c echo.Context) error {
	return c.JSON(http.StatusOK, AuctionCountsResponse{
		ActiveCount: a.AUsecase.GetCurrentAuctionCount(),
		TargetCount: a.AUsecase.GetAuctionCount(),
		Initialized: a.AUsecase.IsInitialized(),
	})
}

// GetCurrentAuctions returns the identifiers of all active listings.
func (a *AuctionHandler) GetCurrentAuctions(c echo.Context) error {
	return c.JSON(http.StatusOK, a.AUsecase.GetCurrentAuctions())
}

// GetCurrentAuctionStates returns the records of all active listings.
func (a *AuctionHandler) GetCurrentAuctionStates(c echo.Context) error {
	return c.JSON(http.StatusOK, a.AUsecase.GetCurrentAuctionStates())
}

// GetAuctionState returns the record for one listing.
func (a *AuctionHandler) GetAuctionState(c echo.Context) error {
	positionID, err := parsePositionID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	state, err := a.AUsecase.GetAuctionState(positionID)
	if err != nil {
		return c.JSON(domain.GetStatusCode(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, state)
}

// PriceResponse is a structure for serializing a current listing price.
type PriceResponse struct {
	PositionID       uint64       `json:"position_id"`
	CurrentPriceBips osmomath.Dec `json:"current_price_bips"`
}

// GetCurrentPriceBips returns the listing's current decayed price.
func (a *AuctionHandler) GetCurrentPriceBips(c echo.Context) error {
	positionID, err := parsePositionID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	price, err := a.AUsecase.GetCurrentPriceBips(positionID)
	if err != nil {
		return c.JSON(domain.GetStatusCode(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, PriceResponse{PositionID: positionID, CurrentPriceBips: price})
}

// TokenURIResponse is a structure for serializing position metadata lookups.
type TokenURIResponse struct {
	PositionID uint64 `json:"position_id"`
	URI        string `json:"uri"`
}

// GetTokenURI passes through to the position manager's metadata lookup.
func (a *AuctionHandler) GetTokenURI(c echo.Context) error {
	positionID, err := parsePositionID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	uri, err := a.AUsecase.GetTokenURI(c.Request().Context(), positionID)
	if err != nil {
		return c.JSON(domain.GetStatusCode(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, TokenURIResponse{PositionID: positionID, URI: uri})
}

// InitializeRequest is the body for POST /auction/initialize.
type InitializeRequest struct {
	Caller   string `json:"caller"`
	AmountA  string `json:"amount_a"`
	AmountB  string `json:"amount_b"`
	Receiver string `json:"receiver"`
}

// InitializeResponse reports the bootstrap position.
type InitializeResponse struct {
	PositionID uint64 `json:"position_id"`
}

// Initialize bootstraps the engine with its first listing.
func (a *AuctionHandler) Initialize(c echo.Context) error {
	var req InitializeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	amountA, err := parseAmount(req.AmountA, "amount_a")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	amountB, err := parseAmount(req.AmountB, "amount_b")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	positionID, err := a.AUsecase.Initialize(c.Request().Context(), domain.Address(req.Caller), amountA, amountB, domain.Address(req.Receiver))
	if err != nil {
		return c.JSON(domain.GetStatusCode(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, InitializeResponse{PositionID: positionID})
}

// SetAuctionCountRequest is the body for POST /auction/count.
type SetAuctionCountRequest struct {
	Caller         string `json:"caller"`
	TargetCount    uint64 `json:"target_count"`
	ReplenishFunds string `json:"replenish_funds"`
}

// SetAuctionCount scales the live listing supply toward the target.
func (a *AuctionHandler) SetAuctionCount(c echo.Context) error {
	var req SetAuctionCountRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	replenishFunds, err := parseAmount(req.ReplenishFunds, "replenish_funds")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := a.AUsecase.SetAuctionCount(c.Request().Context(), domain.Address(req.Caller), req.TargetCount, replenishFunds); err != nil {
		return c.JSON(domain.GetStatusCode(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, AuctionCountsResponse{
		ActiveCount: a.AUsecase.GetCurrentAuctionCount(),
		TargetCount: a.AUsecase.GetAuctionCount(),
		Initialized: a.AUsecase.IsInitialized(),
	})
}

// PurchaseRequest is the body for POST /auction/purchase.
type PurchaseRequest struct {
	Buyer       string `json:"buyer"`
	PositionID  uint64 `json:"position_id"`
	AmountA     string `json:"amount_a"`
	AmountB     string `json:"amount_b"`
	Beneficiary string `json:"beneficiary"`
	Receiver    string `json:"receiver"`
}

// Purchase buys a listing at its current decayed price.
func (a *AuctionHandler) Purchase(c echo.Context) error {
	var req PurchaseRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	amountA, err := parseAmount(req.AmountA, "amount_a")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	amountB, err := parseAmount(req.AmountB, "amount_b")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	result, err := a.AUsecase.Purchase(
		c.Request().Context(),
		domain.Address(req.Buyer),
		req.PositionID,
		amountA,
		amountB,
		domain.Address(req.Beneficiary),
		domain.Address(req.Receiver),
	)
	if err != nil {
		return c.JSON(domain.GetStatusCode(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, result)
}

func parsePositionID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}

// parseAmount parses a decimal-string token amount, treating an empty string
// as zero so callers may omit one leg.
func parseAmount(amountStr, field string) (osmomath.Int, error) {
	if amountStr == "" {
		return osmomath.ZeroInt(), nil
	}

	amount, ok := osmomath.NewIntFromString(amountStr)
	if !ok {
		return osmomath.Int{}, domain.ZeroAmountError{Field: field + " is malformed"}
	}

	return amount, nil
}
