package coingecko

// seedCoinIDs maps common ticker symbols to CoinGecko ids, saving a search
// round-trip for the tokens users actually hold.
var seedCoinIDs = map[string]string{
	"BTC":    "bitcoin",
	"ETH":    "ethereum",
	"SOL":    "solana",
	"USDC":   "usd-coin",
	"USDT":   "tether",
	"BNB":    "binancecoin",
	"XRP":    "ripple",
	"ADA":    "cardano",
	"DOGE":   "dogecoin",
	"AVAX":   "avalanche-2",
	"DOT":    "polkadot",
	"MATIC":  "matic-network",
	"LINK":   "chainlink",
	"SHIB":   "shiba-inu",
	"UNI":    "uniswap",
	"ATOM":   "cosmos",
	"LTC":    "litecoin",
	"BCH":    "bitcoin-cash",
	"NEAR":   "near",
	"DAI":    "dai",
	"ARB":    "arbitrum",
	"OP":     "optimism",
	"INJ":    "injective-protocol",
	"SUI":    "sui",
	"APT":    "aptos",
	"SEI":    "sei-network",
	"TIA":    "celestia",
	"AAVE":   "aave",
	"LDO":    "lido-dao",
	"CRV":    "curve-dao-token",
	"MKR":    "maker",
	"GRT":    "the-graph",
	"RNDR":   "render-token",
	"FIL":    "filecoin",
	"FET":    "fetch-ai",
	"WLD":    "worldcoin-wld",
	"PEPE":   "pepe",
	"WIF":    "dogwifcoin",
	"BONK":   "bonk",
	"FLOKI":  "floki",
	"PENDLE": "pendle",
	"JUP":    "jupiter-exchange-solana",
	"JTO":    "jito-governance-token",
	"PYTH":   "pyth-network",
	"HYPE":   "hyperliquid",
	"ENA":    "ethena",
	"ONDO":   "ondo-finance",
	"STX":    "stacks",
	"TON":    "the-open-network",
	"RUNE":   "thorchain",
	"GMX":    "gmx",
	"DYDX":   "dydx-chain",
	"IMX":    "immutable-x",
	"TEL":    "telcoin",
}
