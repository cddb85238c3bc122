package narrative

import (
	"fmt"
	"strings"

	"github.com/paradigma/diagnostico/internal/domain"
	"github.com/paradigma/diagnostico/internal/scoring"
)

// criticalMarkers escalate a weakness to a red flag when present in its text.
var criticalMarkers = []string{"crítico", "extremo", "urgente"}

// FlagsFromAnalysis converts a narrative analysis into diagnostic flags.
// Weaknesses become red (critical wording) or yellow flags, pairing each with
// the recommendation at the same index when available; strengths become green
// flags. Two hardcoded safety checks run regardless of what the analysis
// says. Flags are returned sorted by severity descending.
func FlagsFromAnalysis(allocation []domain.AssetAllocation, profile domain.InvestorProfile, analysis *domain.AIAnalysis) []domain.Flag {
	ctx := scoring.BuildContext(allocation, profile)
	flags := make([]domain.Flag, 0, len(analysis.Weaknesses)+len(analysis.Strengths)+2)

	for i, weakness := range analysis.Weaknesses {
		critical := containsAny(strings.ToLower(weakness), criticalMarkers)
		kind := domain.FlagYellow
		severity := 2
		if critical {
			kind = domain.FlagRed
			severity = 4
		}
		actionable := ""
		if i < len(analysis.Recommendations) {
			actionable = analysis.Recommendations[i]
		}
		flags = append(flags, domain.Flag{
			Kind:       kind,
			Category:   domain.CategoryProfile,
			Message:    weakness,
			Actionable: actionable,
			Severity:   severity,
		})
	}

	for _, strength := range analysis.Strengths {
		flags = append(flags, domain.Flag{
			Kind:     domain.FlagGreen,
			Category: domain.CategoryAsset,
			Message:  strength,
			Severity: 0,
		})
	}

	// Safety nets independent of the narrative output.
	if ctx.MemecoinPercentage > 0 && profile.RiskTolerance == domain.RiskLow {
		flags = append(flags, domain.Flag{
			Kind:       domain.FlagRed,
			Category:   domain.CategorySector,
			Message:    fmt.Sprintf("🚨 Memecoins em perfil conservador: %.1f%%", ctx.MemecoinPercentage),
			Actionable: "Para perfil conservador, elimine exposição em memecoins.",
			Severity:   5,
		})
	}

	if ctx.StablecoinPercentage == 0 && profile.RiskTolerance == domain.RiskLow {
		flags = append(flags, domain.Flag{
			Kind:       domain.FlagRed,
			Category:   domain.CategoryProfile,
			Message:    "🚨 Zero stablecoins em perfil conservador",
			Actionable: "Adicione 10-40% em stablecoins para proteção e liquidez.",
			Severity:   4,
		})
	}

	scoring.SortFlags(flags)
	return flags
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
