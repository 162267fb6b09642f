package usecase

import "time"

// AuctionUsecase exposes the concrete usecase type to external test packages.
type AuctionUsecase = auctionUsecase

// SetTimeNow overrides the usecase clock for tests.
func (u *auctionUsecase) SetTimeNow(now func() time.Time) {
	u.now = now
}
