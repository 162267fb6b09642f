package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// SettingsError indicates invalid operator configuration.
type SettingsError struct {
	Reason string
}

func (e SettingsError) Error() string {
	return "invalid auction settings: " + e.Reason
}

// ZeroAmountError indicates a funding amount that is required to be positive.
type ZeroAmountError struct {
	Field string
}

func (e ZeroAmountError) Error() string {
	return fmt.Sprintf("amount (%s) must be positive", e.Field)
}

// ZeroAddressError indicates a required address argument was the null address.
type ZeroAddressError struct {
	Field string
}

func (e ZeroAddressError) Error() string {
	return fmt.Sprintf("address (%s) must not be the null address", e.Field)
}

// InvalidPositionIDError indicates a malformed position identifier.
type InvalidPositionIDError struct {
	PositionID uint64
}

func (e InvalidPositionIDError) Error() string {
	return fmt.Sprintf("position ID (%d) is not valid", e.PositionID)
}

// NotListedError indicates that no auction record exists for the identifier.
type NotListedError struct {
	PositionID uint64
}

func (e NotListedError) Error() string {
	return fmt.Sprintf("position (%d) is not listed", e.PositionID)
}

// AlreadySoldError indicates the listing has already been purchased.
type AlreadySoldError struct {
	PositionID uint64
}

func (e AlreadySoldError) Error() string {
	return fmt.Sprintf("auction for position (%d) has already been sold", e.PositionID)
}

// NotStartedError indicates the auction record exists but was never established.
type NotStartedError struct {
	PositionID uint64
}

func (e NotStartedError) Error() string {
	return fmt.Sprintf("auction for position (%d) has not started", e.PositionID)
}

// AlreadyInitializedError indicates a second call to the once-only bootstrap.
type AlreadyInitializedError struct{}

func (e AlreadyInitializedError) Error() string {
	return "auction engine is already initialized"
}

// NotInitializedError indicates the engine has not been bootstrapped yet.
type NotInitializedError struct{}

func (e NotInitializedError) Error() string {
	return "auction engine is not initialized"
}

// UnauthorizedError indicates the caller lacks administrative privilege.
type UnauthorizedError struct {
	Caller Address
}

func (e UnauthorizedError) Error() string {
	return fmt.Sprintf("caller (%s) lacks administrative privilege", e.Caller)
}

// InvalidTipError indicates that both tip legs truncated to zero.
type InvalidTipError struct {
	PositionID uint64
}

func (e InvalidTipError) Error() string {
	return fmt.Sprintf("purchase of position (%d) yields no tip on either leg", e.PositionID)
}

// NotEnoughForDustError indicates a post-tip deposit leg at or below the
// negligible-deposit threshold.
type NotEnoughForDustError struct {
	Amount    string
	Threshold string
}

func (e NotEnoughForDustError) Error() string {
	return fmt.Sprintf("deposit leg (%s) does not exceed the dust threshold (%s)", e.Amount, e.Threshold)
}

// AuctionNotFoundError indicates an active-set membership mismatch. This is a
// defensive invariant check, not a user error.
type AuctionNotFoundError struct {
	PositionID uint64
}

func (e AuctionNotFoundError) Error() string {
	return fmt.Sprintf("position (%d) is missing from the active set", e.PositionID)
}

// AuctionAlreadyActiveError indicates an attempt to establish a record for an
// identifier already in the active set. Invariant violation.
type AuctionAlreadyActiveError struct {
	PositionID uint64
}

func (e AuctionAlreadyActiveError) Error() string {
	return fmt.Sprintf("position (%d) is already in the active set", e.PositionID)
}

// SwapAmountOutOfBoundsError indicates the liquidity math produced a swap
// amount outside [0, deposit]. Invariant violation.
type SwapAmountOutOfBoundsError struct {
	SwapAmount string
	Deposit    string
}

func (e SwapAmountOutOfBoundsError) Error() string {
	return fmt.Sprintf("swap amount (%s) is outside [0, %s]", e.SwapAmount, e.Deposit)
}

// PositionNotOwnedError indicates the pooling collaborator's output is not
// custodied by the engine. Invariant violation.
type PositionNotOwnedError struct {
	PositionID uint64
	Owner      Address
}

func (e PositionNotOwnedError) Error() string {
	return fmt.Sprintf("position (%d) is owned by (%s), not the engine", e.PositionID, e.Owner)
}

// ReentrantCallError indicates a nested or overlapping entry into a guarded
// operation.
type ReentrantCallError struct {
	Operation string
}

func (e ReentrantCallError) Error() string {
	return fmt.Sprintf("operation (%s) rejected: another operation is in progress", e.Operation)
}

// GetStatusCode returns the HTTP status code for the given error.
func GetStatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}

	switch {
	case errors.As(err, &NotListedError{}),
		errors.As(err, &AuctionNotFoundError{}):
		return http.StatusNotFound
	case errors.As(err, &AlreadySoldError{}),
		errors.As(err, &AlreadyInitializedError{}),
		errors.As(err, &NotInitializedError{}),
		errors.As(err, &NotStartedError{}),
		errors.As(err, &ReentrantCallError{}):
		return http.StatusConflict
	case errors.As(err, &ZeroAmountError{}),
		errors.As(err, &ZeroAddressError{}),
		errors.As(err, &InvalidPositionIDError{}),
		errors.As(err, &InvalidTipError{}),
		errors.As(err, &NotEnoughForDustError{}),
		errors.As(err, &SettingsError{}):
		return http.StatusBadRequest
	case errors.As(err, &UnauthorizedError{}):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
