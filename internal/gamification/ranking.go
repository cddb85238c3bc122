package gamification

import (
	"math"
	"math/rand"
	"strings"

	"github.com/paradigma/diagnostico/internal/domain"
	"github.com/paradigma/diagnostico/internal/scoring"
)

// RankingFor computes simulated percentile rankings. There is no real user
// population behind these numbers; the jitter comes from the injected random
// source so results stay reproducible under a seeded generator.
func RankingFor(rng *rand.Rand, score int, allocation []domain.AssetAllocation) domain.Ranking {
	numAssets := len(allocation)
	hasMemes := hasMemecoins(allocation)
	stables := scoring.SumWhere(allocation, domain.IsStablecoin)
	btcEth := scoring.SumWhere(allocation, func(symbol string) bool {
		return strings.EqualFold(symbol, "BTC") || strings.EqualFold(symbol, "ETH")
	})

	overall := percentile(float64(score)*0.9 + rng.Float64()*10)

	var diversification float64
	switch {
	case numAssets >= 6:
		diversification = 85 + rng.Float64()*14
	case numAssets >= 4:
		diversification = 60 + rng.Float64()*25
	case numAssets >= 3:
		diversification = 40 + rng.Float64()*20
	default:
		diversification = 20 + rng.Float64()*20
	}

	memeAdjust := 10.0
	if hasMemes {
		memeAdjust = -10.0
	}
	riskManagement := percentile(stables*0.8 + btcEth*0.5 + memeAdjust + rng.Float64()*15)
	growthPotential := percentile(100 - stables*0.8 - btcEth*0.2 + rng.Float64()*15)

	return domain.Ranking{
		Overall:         overall,
		Diversification: percentile(diversification),
		RiskManagement:  riskManagement,
		GrowthPotential: growthPotential,
	}
}

// percentile rounds and pins the value inside [1,99].
func percentile(v float64) int {
	return int(scoring.Clamp(math.Round(v), 1, 99))
}
