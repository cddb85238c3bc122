// Package sectors provides the static token-to-sector classification table.
// The table is immutable and loaded at process start; unknown symbols
// classify as "Outros".
package sectors

import (
	"strings"

	"github.com/paradigma/diagnostico/internal/domain"
)

// SectorOther is the default sector for unknown symbols.
const SectorOther = "Outros"

// SectorMeme tags memecoins; the scorers key their memecoin checks on it.
const SectorMeme = "Meme"

// table maps upper-cased token symbols to sector tags.
var table = map[string]string{
	// Layer 1
	"BTC":  "Layer1",
	"ETH":  "Layer1",
	"SOL":  "Layer1",
	"ADA":  "Layer1",
	"AVAX": "Layer1",
	"DOT":  "Layer1",
	"ATOM": "Layer1",
	"NEAR": "Layer1",
	"ALGO": "Layer1",
	"FTM":  "Layer1",
	"SUI":  "Layer1",
	"APT":  "Layer1",
	"SEI":  "Layer1",
	"TON":  "Layer1",
	"TRX":  "Layer1",
	"XRP":  "Layer1",
	"LTC":  "Layer1",
	"BCH":  "Layer1",
	"HYPE": "Layer1",

	// Layer 2 / scaling
	"MATIC": "Layer2",
	"ARB":   "Layer2",
	"OP":    "Layer2",
	"STRK":  "Layer2",
	"IMX":   "Layer2",

	// DeFi
	"UNI":    "DeFi",
	"AAVE":   "DeFi",
	"CRV":    "DeFi",
	"YFI":    "DeFi",
	"COMP":   "DeFi",
	"MKR":    "DeFi",
	"SNX":    "DeFi",
	"SUSHI":  "DeFi",
	"LDO":    "DeFi",
	"GMX":    "DeFi",
	"PENDLE": "DeFi",
	"ENA":    "DeFi",
	"INJ":    "DeFi",
	"JUP":    "DeFi",
	"RAY":    "DeFi",

	// Stablecoins
	"USDT":  "Stablecoin",
	"USDC":  "Stablecoin",
	"DAI":   "Stablecoin",
	"PYUSD": "Stablecoin",
	"BUSD":  "Stablecoin",
	"TUSD":  "Stablecoin",
	"USDP":  "Stablecoin",
	"FRAX":  "Stablecoin",
	"LUSD":  "Stablecoin",
	"USDE":  "Stablecoin",

	// Memecoins
	"DOGE":   "Meme",
	"SHIB":   "Meme",
	"PEPE":   "Meme",
	"FLOKI":  "Meme",
	"BONK":   "Meme",
	"WIF":    "Meme",
	"MEME":   "Meme",
	"WOJAK":  "Meme",
	"BRETT":  "Meme",
	"POPCAT": "Meme",

	// Exchange tokens
	"BNB": "Exchange",
	"OKB": "Exchange",
	"CRO": "Exchange",

	// Infrastructure / oracles / data
	"LINK": "Oracle",
	"PYTH": "Oracle",
	"GRT":  "Infraestrutura",
	"FIL":  "Infraestrutura",
	"AR":   "Infraestrutura",
	"TIA":  "Infraestrutura",

	// AI
	"FET": "IA",
	"RNDR": "IA",
	"TAO": "IA",

	// Gaming / NFT
	"AXS":  "Gaming",
	"SAND": "Gaming",
	"MANA": "Gaming",
	"GALA": "Gaming",

	// Privacy
	"XMR": "Privacidade",
	"ZEC": "Privacidade",
}

// Classify returns the sector tag for a token symbol. Classification is
// deterministic and total: unknown symbols return SectorOther.
func Classify(symbol string) string {
	if sector, ok := table[strings.ToUpper(symbol)]; ok {
		return sector
	}
	return SectorOther
}

// Breakdown aggregates allocation percentages by sector.
func Breakdown(allocation []domain.AssetAllocation) map[string]float64 {
	breakdown := make(map[string]float64)
	for _, item := range allocation {
		breakdown[Classify(item.Token)] += item.Percentage
	}
	return breakdown
}

// Count returns the number of distinct sectors in the allocation.
func Count(allocation []domain.AssetAllocation) int {
	return len(Breakdown(allocation))
}

// IsMeme reports whether a symbol classifies into the meme sector.
func IsMeme(symbol string) bool {
	return Classify(symbol) == SectorMeme
}
