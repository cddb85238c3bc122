package domain

import "strings"

// Token classification lists. These are fixed product rules, not market data:
// the scoring and gamification thresholds are defined against them.

// Majors are BTC, ETH and SOL - the defensive core of a crypto portfolio.
var Majors = []string{"BTC", "ETH", "SOL"}

// MajorStablecoins are the stablecoins the scorers treat as a liquidity
// cushion. Other stablecoins carry structural depeg risk and don't count.
var MajorStablecoins = []string{"USDC", "USDT", "DAI", "PYUSD"}

// Stablecoins is the wider stablecoin list used by the gamification
// derivations (spirit animal, FOMO meter, time machine).
var Stablecoins = []string{"USDT", "USDC", "DAI", "BUSD", "TUSD", "USDP", "FRAX", "LUSD"}

// Memecoins recognized by the gamification derivations.
var Memecoins = []string{"DOGE", "SHIB", "PEPE", "FLOKI", "BONK", "WIF", "MEME", "WOJAK", "BRETT", "POPCAT"}

// DeFiTokens recognized by the celebrity matcher.
var DeFiTokens = []string{"UNI", "AAVE", "CRV", "YFI", "COMP", "MKR", "SNX", "SUSHI", "LDO", "GMX"}

// YieldAssets are tokens with staking/yield potential, used by the
// passive-income objective alignment check.
var YieldAssets = []string{
	"ETH", "SOL", "DOT", "ATOM", "AVAX", "NEAR", "MATIC", "ADA", "ALGO", "FTM",
	"SUI", "APT", "SEI", "INJ", "ENA", "HYPE", "AAVE", "TIA", "LDO", "PENDLE",
}

// inList reports whether symbol is in list, ignoring case.
func inList(symbol string, list []string) bool {
	for _, s := range list {
		if strings.EqualFold(s, symbol) {
			return true
		}
	}
	return false
}

// IsMajor reports whether the symbol is one of the majors.
func IsMajor(symbol string) bool { return inList(symbol, Majors) }

// IsMajorStablecoin reports whether the symbol is a major stablecoin.
func IsMajorStablecoin(symbol string) bool { return inList(symbol, MajorStablecoins) }

// IsStablecoin reports whether the symbol is in the wider stablecoin list.
func IsStablecoin(symbol string) bool { return inList(symbol, Stablecoins) }

// IsMemecoin reports whether the symbol is a recognized memecoin.
func IsMemecoin(symbol string) bool { return inList(symbol, Memecoins) }

// IsDeFiToken reports whether the symbol is a recognized DeFi token.
func IsDeFiToken(symbol string) bool { return inList(symbol, DeFiTokens) }

// IsYieldAsset reports whether the symbol has staking/yield potential.
func IsYieldAsset(symbol string) bool { return inList(symbol, YieldAssets) }
