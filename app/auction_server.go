package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/osmosis-labs/osmosis/osmomath"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	auctionhttp "github.com/liquidrop-labs/liquidrop/auction/delivery/http"
	auctionusecase "github.com/liquidrop-labs/liquidrop/auction/usecase"
	"github.com/liquidrop-labs/liquidrop/domain"
	"github.com/liquidrop-labs/liquidrop/log"
	"github.com/liquidrop-labs/liquidrop/venue/inmemory"
)

// AuctionServer runs the auction engine behind an HTTP surface.
type AuctionServer interface {
	Start(context.Context) error
	Shutdown(context.Context) error
}

type auctionServer struct {
	e       *echo.Echo
	address string
	logger  log.Logger
}

var _ AuctionServer = &auctionServer{}

// NewAuctionServer wires the engine against the configured in-memory venue
// and registers the HTTP handlers.
func NewAuctionServer(config domain.Config, logger log.Logger) (AuctionServer, error) {
	if config.Auction == nil || config.Venue == nil {
		return nil, domain.SettingsError{Reason: "auction and venue config sections are required"}
	}

	settings, err := config.Auction.Settings()
	if err != nil {
		return nil, err
	}

	fee, err := osmomath.NewDecFromStr(config.Venue.Fee)
	if err != nil {
		return nil, domain.SettingsError{Reason: "malformed venue fee: " + err.Error()}
	}
	reserveA, ok := osmomath.NewIntFromString(config.Venue.ReserveA)
	if !ok {
		return nil, domain.SettingsError{Reason: "malformed venue reserve a"}
	}
	reserveB, ok := osmomath.NewIntFromString(config.Venue.ReserveB)
	if !ok {
		return nil, domain.SettingsError{Reason: "malformed venue reserve b"}
	}

	venue := inmemory.NewVenue(
		domain.Address(config.Venue.EngineAddress),
		domain.Address(config.Venue.PoolAddress),
		fee,
		reserveA,
		reserveB,
	)
	routes := venue.Routes(domain.Address(config.AdminAddress))

	auctionUsecase, err := auctionusecase.NewAuctionUsecase(routes, settings, logger)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true

	auctionhttp.NewAuctionHandler(e, auctionUsecase, config.AdminKey, logger)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return &auctionServer{
		e:       e,
		address: config.ServerAddress,
		logger:  logger,
	}, nil
}

// Start implements AuctionServer.
func (s *auctionServer) Start(context.Context) error {
	s.logger.Info("Starting auction server", zap.String("address", s.address))

	if err := s.e.Start(s.address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown implements AuctionServer.
func (s *auctionServer) Shutdown(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}
