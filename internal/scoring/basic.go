package scoring

import (
	"fmt"
	"sort"

	"github.com/paradigma/diagnostico/internal/domain"
)

// Severity penalty table for the fallback score: the score starts at 100 and
// each flag subtracts the penalty indexed by its severity.
var severityPenalty = map[int]int{
	5: 25,
	4: 15,
	3: 12,
	2: 8,
	1: 3,
	0: 0,
}

// BasicFlags computes the rule-based diagnostic flags used when no narrative
// analysis is available. Flags are returned sorted by severity descending;
// ties keep insertion order.
func BasicFlags(allocation []domain.AssetAllocation, profile domain.InvestorProfile) []domain.Flag {
	ctx := BuildContext(allocation, profile)
	flags := make([]domain.Flag, 0, 4)

	// Majors exposure
	if ctx.MajorPercentage >= 40 {
		flags = append(flags, domain.Flag{
			Kind:     domain.FlagGreen,
			Category: domain.CategoryAsset,
			Message:  fmt.Sprintf("✅ Boa exposição em criptos consolidadas: %.1f%% em BTC/ETH/SOL", ctx.MajorPercentage),
			Severity: 0,
		})
	} else {
		flags = append(flags, domain.Flag{
			Kind:       domain.FlagYellow,
			Category:   domain.CategoryAsset,
			Message:    fmt.Sprintf("⚠️ Exposição baixa em criptos consolidadas: %.1f%%", ctx.MajorPercentage),
			Actionable: "Considere aumentar exposição em BTC, ETH ou SOL para uma base mais sólida.",
			Severity:   2,
		})
	}

	// Stablecoin cushion for conservative profiles
	if profile.RiskTolerance == domain.RiskLow && ctx.StablecoinPercentage < 10 {
		flags = append(flags, domain.Flag{
			Kind:       domain.FlagRed,
			Category:   domain.CategoryProfile,
			Message:    "🚨 Stablecoins insuficientes para perfil conservador",
			Actionable: "Adicione 10-40% em stablecoins como USDC ou USDT.",
			Severity:   4,
		})
	}

	// Memecoin exposure against the per-profile limit
	limit := MemeLimit(profile.RiskTolerance)
	if ctx.MemecoinPercentage > limit {
		kind := domain.FlagYellow
		severity := 2
		if ctx.MemecoinPercentage > limit*2 {
			kind = domain.FlagRed
			severity = 4
		}
		// Any memecoin exposure on a conservative profile is critical.
		if profile.RiskTolerance == domain.RiskLow {
			kind = domain.FlagRed
			severity = 5
		}
		flags = append(flags, domain.Flag{
			Kind:       kind,
			Category:   domain.CategorySector,
			Message:    fmt.Sprintf("🎲 Exposição em Memecoins: %.1f%% (máximo recomendado: %.0f%%)", ctx.MemecoinPercentage, limit),
			Actionable: "Reduza exposição em memecoins para diminuir risco especulativo.",
			Severity:   severity,
		})
	}

	// Diversification band
	if ctx.NumAssets >= 4 && ctx.NumAssets <= 8 {
		flags = append(flags, domain.Flag{
			Kind:     domain.FlagGreen,
			Category: domain.CategoryAsset,
			Message:  fmt.Sprintf("✅ Diversificação adequada: %d ativos", ctx.NumAssets),
			Severity: 0,
		})
	}

	SortFlags(flags)
	return flags
}

// BasicScore derives the fallback adherence score from the flags: 100 minus
// the per-severity penalties, clamped to [0, 100].
func BasicScore(flags []domain.Flag) int {
	score := 100
	for _, flag := range flags {
		score -= severityPenalty[flag.Severity]
	}
	return ClampScore(score)
}

// SortFlags orders flags by severity descending. The sort is stable so flags
// of equal severity keep their insertion order.
func SortFlags(flags []domain.Flag) {
	sort.SliceStable(flags, func(i, j int) bool {
		return flags[i].Severity > flags[j].Severity
	})
}
