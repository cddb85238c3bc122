package gamification

import (
	"math"

	"github.com/paradigma/diagnostico/internal/domain"
	"github.com/paradigma/diagnostico/internal/scoring"
)

// FOMOMeterFor positions the portfolio on the HODL/FOMO axis. Majors and
// stablecoins pull towards HODL, altcoins and especially memecoins towards
// FOMO. The result is clamped to [5,95] so the needle never pins.
func FOMOMeterFor(allocation []domain.AssetAllocation) domain.FOMOMeter {
	btc := scoring.Percentage(allocation, "BTC")
	eth := scoring.Percentage(allocation, "ETH")
	stables := scoring.SumWhere(allocation, domain.IsStablecoin)
	memes := scoring.SumWhere(allocation, domain.IsMemecoin)
	altcoins := altcoinPercentage(allocation)

	hodlScore := btc*0.8 + eth*0.6 + stables*1.0
	fomoScore := altcoins*0.7 + memes*1.5

	pct := 50
	if total := hodlScore + fomoScore; total > 0 {
		pct = int(math.Round(fomoScore / total * 100))
	}
	pct = int(scoring.Clamp(float64(pct), 5, 95))

	switch {
	case pct <= 20:
		return domain.FOMOMeter{
			Percentage:  pct,
			Label:       "",
			Emoji:       "🧊",
			Description: "Você é frio como gelo. Paciência é sua maior virtude.",
		}
	case pct <= 40:
		return domain.FOMOMeter{
			Percentage:  pct,
			Label:       "HODL Moderado",
			Emoji:       "❄️",
			Description: "Racional e calculista. Você não se deixa levar pela emoção.",
		}
	case pct <= 60:
		return domain.FOMOMeter{
			Percentage:  pct,
			Label:       "Equilibrado",
			Emoji:       "⚖️",
			Description: "Você tem um pé na racionalidade, mas não resiste a uma oportunidade.",
		}
	case pct <= 80:
		return domain.FOMOMeter{
			Percentage:  pct,
			Label:       "FOMO Moderado",
			Emoji:       "🌡️",
			Description: "O mercado te empolga! Você gosta de surfar as tendências.",
		}
	default:
		return domain.FOMOMeter{
			Percentage:  pct,
			Label:       "FOMO Total",
			Emoji:       "🔥",
			Description: "Degen mode ativado! Você vive no limite.",
		}
	}
}
