package domain

import (
	"github.com/osmosis-labs/osmosis/osmomath"
)

// Config defines the config for the auction engine server.
type Config struct {
	// Defines the web server configuration.
	ServerAddress string `mapstructure:"server-address"`

	// Defines the logger configuration.
	LoggerFilename     string `mapstructure:"logger-filename"`
	LoggerIsProduction bool   `mapstructure:"logger-is-production"`
	LoggerLevel        string `mapstructure:"logger-level"`

	// AdminAddress holds administrative privilege over the engine.
	AdminAddress string `mapstructure:"admin-address"`

	// AdminKey is the operator credential admin endpoints require in the
	// request header. An empty key locks the admin surface.
	AdminKey string `mapstructure:"admin-key"`

	// Auction encapsulates the auction pricing config.
	Auction *AuctionConfig `mapstructure:"auction"`

	// Venue encapsulates the in-memory reference venue config.
	Venue *VenueConfig `mapstructure:"venue"`
}

// VenueConfig configures the in-memory reference venue the server runs
// against when no external venue is wired.
type VenueConfig struct {
	EngineAddress string `mapstructure:"engine-address"`
	PoolAddress   string `mapstructure:"pool-address"`

	// Fee is the pool's proportional swap fee as a WAD-semantics decimal
	// string, e.g. "0.003".
	Fee string `mapstructure:"fee"`

	ReserveA string `mapstructure:"reserve-a"`
	ReserveB string `mapstructure:"reserve-b"`
}

// AuctionConfig is the operator-facing form of AuctionSettings. Prices and the
// decay rate are decimal strings at WAD semantics, amounts are integer strings.
type AuctionConfig struct {
	DecayRatePerSecond   string `mapstructure:"decay-rate-per-second"`
	MinDeposit           string `mapstructure:"min-deposit"`
	PriceGrowthIncrement string `mapstructure:"price-growth-increment"`
	InitialPriceBips     string `mapstructure:"initial-price-bips"`
	FloorPriceBips       string `mapstructure:"floor-price-bips"`
	CeilingPriceBips     string `mapstructure:"ceiling-price-bips"`
}

// Settings parses the auction config into validated AuctionSettings.
func (c *AuctionConfig) Settings() (AuctionSettings, error) {
	decayRate, err := osmomath.NewDecFromStr(c.DecayRatePerSecond)
	if err != nil {
		return AuctionSettings{}, SettingsError{Reason: "malformed decay rate: " + err.Error()}
	}

	minDeposit, ok := osmomath.NewIntFromString(c.MinDeposit)
	if !ok {
		return AuctionSettings{}, SettingsError{Reason: "malformed min deposit"}
	}

	growthIncrement, err := osmomath.NewDecFromStr(c.PriceGrowthIncrement)
	if err != nil {
		return AuctionSettings{}, SettingsError{Reason: "malformed price growth increment: " + err.Error()}
	}

	initialPrice, err := osmomath.NewDecFromStr(c.InitialPriceBips)
	if err != nil {
		return AuctionSettings{}, SettingsError{Reason: "malformed initial price: " + err.Error()}
	}

	floorPrice, err := osmomath.NewDecFromStr(c.FloorPriceBips)
	if err != nil {
		return AuctionSettings{}, SettingsError{Reason: "malformed floor price: " + err.Error()}
	}

	ceilingPrice, err := osmomath.NewDecFromStr(c.CeilingPriceBips)
	if err != nil {
		return AuctionSettings{}, SettingsError{Reason: "malformed ceiling price: " + err.Error()}
	}

	settings := AuctionSettings{
		DecayRatePerSecond:   decayRate,
		MinDeposit:           minDeposit,
		PriceGrowthIncrement: growthIncrement,
		InitialPriceBips:     initialPrice,
		FloorPriceBips:       floorPrice,
		CeilingPriceBips:     ceilingPrice,
	}

	if err := settings.Validate(); err != nil {
		return AuctionSettings{}, err
	}

	return settings, nil
}
