package main

import (
	"github.com/liquidrop-labs/liquidrop/domain"
)

// DefaultConfig defines the default config for the auction engine server.
var DefaultConfig = domain.Config{
	ServerAddress: ":9093",

	LoggerFilename:     "liquidrop.log",
	LoggerIsProduction: true,
	LoggerLevel:        "info",

	AdminAddress: "liquidrop-admin",
	AdminKey:     "liquidrop-admin-key",

	Auction: &domain.AuctionConfig{
		// ~1% decline per 100 seconds; half-life of roughly 1.9 hours.
		DecayRatePerSecond:   "0.0001",
		MinDeposit:           "1000",
		PriceGrowthIncrement: "0",
		InitialPriceBips:     "0.05",
		FloorPriceBips:       "0.01",
		CeilingPriceBips:     "0.2",
	},

	Venue: &domain.VenueConfig{
		EngineAddress: "liquidrop-engine",
		PoolAddress:   "liquidrop-pool",
		Fee:           "0.003",
		ReserveA:      "1000000000000",
		ReserveB:      "1000000000000",
	},
}
