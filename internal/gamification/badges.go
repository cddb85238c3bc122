package gamification

import (
	"strings"

	"github.com/paradigma/diagnostico/internal/domain"
	"github.com/paradigma/diagnostico/internal/scoring"
)

// BadgesFor evaluates the full achievement catalog against a portfolio. All
// nine badges are always returned, locked or not, so the UI can render the
// grid.
func BadgesFor(allocation []domain.AssetAllocation, score, sectorCount int) []domain.Badge {
	btc := scoring.Percentage(allocation, "BTC")
	stables := scoring.SumWhere(allocation, domain.IsStablecoin)
	hasMemes := hasMemecoins(allocation)
	numAssets := len(allocation)

	// Unlike the spirit animal, "To the Moon" excludes SOL from altcoins.
	altcoins := scoring.SumWhere(allocation, func(symbol string) bool {
		return !strings.EqualFold(symbol, "BTC") &&
			!strings.EqualFold(symbol, "ETH") &&
			!strings.EqualFold(symbol, "SOL") &&
			!domain.IsStablecoin(symbol)
	})

	return []domain.Badge{
		{
			ID:          "hodler",
			Emoji:       "🏅",
			Name:        "Hodler de Ferro",
			Description: "50%+ do portfólio em Bitcoin",
			Unlocked:    btc >= 50,
		},
		{
			ID:          "diversifier",
			Emoji:       "🎯",
			Name:        "Diversificador Master",
			Description: "Exposição a 5+ setores diferentes",
			Unlocked:    sectorCount >= 5,
		},
		{
			ID:          "diamond",
			Emoji:       "💎",
			Name:        "Diamond Hands",
			Description: "80%+ do portfólio em Bitcoin",
			Unlocked:    btc >= 80,
		},
		{
			ID:          "moon",
			Emoji:       "🌙",
			Name:        "To the Moon",
			Description: "30%+ em altcoins de alto potencial",
			Unlocked:    altcoins >= 30,
		},
		{
			ID:          "shield",
			Emoji:       "🛡️",
			Name:        "Escudo de Aço",
			Description: "20%+ em stablecoins para proteção",
			Unlocked:    stables >= 20,
		},
		{
			ID:          "degen",
			Emoji:       "🎰",
			Name:        "Degen Assumido",
			Description: "Possui pelo menos uma memecoin",
			Unlocked:    hasMemes,
		},
		{
			ID:          "balance",
			Emoji:       "⚖️",
			Name:        "Equilibrista",
			Description: "Score de aderência 90+",
			Unlocked:    score >= 90,
		},
		{
			ID:          "visionary",
			Emoji:       "🔮",
			Name:        "Visionário",
			Description: "6+ ativos no portfólio",
			Unlocked:    numAssets >= 6,
		},
		{
			ID:          "minimalist",
			Emoji:       "🎍",
			Name:        "Minimalista",
			Description: "Apenas 3 ou menos ativos",
			Unlocked:    numAssets <= 3,
		},
	}
}
