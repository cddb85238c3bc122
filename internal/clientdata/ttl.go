package clientdata

import "time"

// TTL constants for the CoinGecko cache tables.
// These are added to time.Now() when storing to calculate expires_at.
const (
	// Symbol-to-id mappings almost never change
	TTLCoinIDs = 30 * 24 * time.Hour

	// Search results are stable enough to hold for a day
	TTLSearch = 24 * time.Hour

	// Market data moves constantly; keep it short
	TTLMarkets = 5 * time.Minute

	// Top coins list shifts slowly by market cap
	TTLTopCoins = time.Hour
)
