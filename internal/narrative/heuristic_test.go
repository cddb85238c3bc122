package narrative

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paradigma/diagnostico/internal/domain"
	"github.com/paradigma/diagnostico/internal/scoring"
)

func mediumProfile() domain.InvestorProfile {
	return domain.InvestorProfile{
		Horizon:       domain.HorizonLong,
		RiskTolerance: domain.RiskMedium,
		Objectives:    []domain.Objective{domain.ObjectiveMultiply},
	}
}

func buildCtx(allocation []domain.AssetAllocation, profile domain.InvestorProfile) scoring.Context {
	return scoring.BuildContext(allocation, profile)
}

func TestHeuristicAnalysisMajorsHeavy(t *testing.T) {
	allocation := []domain.AssetAllocation{
		{Token: "BTC", Percentage: 60},
		{Token: "ETH", Percentage: 40},
	}

	analysis := HeuristicAnalysis(buildCtx(allocation, mediumProfile()))

	// base 70 +15 majors -5 diversification +5 BTC concentration
	assert.Equal(t, 85, analysis.OverallScore)
	require.Len(t, analysis.Strengths, 2)
	assert.Contains(t, analysis.Strengths[0], "Excelente base em criptos consolidadas")
	assert.Contains(t, analysis.Strengths[1], "Posição estratégica em BTC")
	require.Len(t, analysis.Weaknesses, 1)
	assert.Contains(t, analysis.Weaknesses[0], "Pouca diversificação")
	assert.NotEmpty(t, analysis.Summary)
	assert.NotEmpty(t, analysis.RiskAssessment)
	assert.NotEmpty(t, analysis.DetailedAnalysis)
}

func TestHeuristicAnalysisScoreClamped(t *testing.T) {
	allocation := []domain.AssetAllocation{
		{Token: "BTC", Percentage: 40},
		{Token: "ETH", Percentage: 20},
		{Token: "USDC", Percentage: 25},
		{Token: "SOL", Percentage: 15},
	}
	profile := domain.InvestorProfile{
		Horizon:       domain.HorizonLong,
		RiskTolerance: domain.RiskLow,
		Objectives:    []domain.Objective{domain.ObjectivePreserve},
	}

	analysis := HeuristicAnalysis(buildCtx(allocation, profile))

	// Raw sum exceeds 100 and must be clamped.
	assert.Equal(t, 100, analysis.OverallScore)
	assert.Contains(t, analysis.Summary, "alta")
}

func TestHeuristicAnalysisMemeHeavy(t *testing.T) {
	allocation := []domain.AssetAllocation{
		{Token: "DOGE", Percentage: 60},
		{Token: "PEPE", Percentage: 40},
	}
	profile := domain.InvestorProfile{
		Horizon:       domain.HorizonShort,
		RiskTolerance: domain.RiskHigh,
		Objectives:    []domain.Objective{domain.ObjectiveMultiply},
	}

	analysis := HeuristicAnalysis(buildCtx(allocation, profile))

	// base 70 -15 majors -5 diversification +3 stables -15 meme -10 concentration
	assert.Equal(t, 28, analysis.OverallScore)

	var sawMajors, sawMeme, sawConcentration bool
	for _, w := range analysis.Weaknesses {
		switch {
		case w == "Exposição muito baixa em criptos consolidadas: apenas 0% em BTC, ETH e SOL":
			sawMajors = true
		case w == "Exposição excessiva em memecoins: 100% (limite para arrojado: 15%)":
			sawMeme = true
		case w == "Alta concentração em DOGE: 60%":
			sawConcentration = true
		}
	}
	assert.True(t, sawMajors)
	assert.True(t, sawMeme)
	assert.True(t, sawConcentration)
	assert.NotEmpty(t, analysis.Recommendations)
}

func TestHeuristicAnalysisStablecoinBands(t *testing.T) {
	tests := []struct {
		name      string
		risk      domain.RiskTolerance
		stablePct float64
		strength  bool
		weakness  bool
	}{
		{"ideal for conservative", domain.RiskLow, 25, true, false},
		{"acceptable but not ideal", domain.RiskLow, 18, false, false},
		{"too low for conservative", domain.RiskLow, 5, false, true},
		{"too many stables", domain.RiskMedium, 40, false, true},
		{"zero for aggressive is acceptable", domain.RiskHigh, 0, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			allocation := []domain.AssetAllocation{
				{Token: "BTC", Percentage: 100 - tt.stablePct},
				{Token: "USDC", Percentage: tt.stablePct},
			}
			profile := domain.InvestorProfile{
				Horizon:       domain.HorizonMedium,
				RiskTolerance: tt.risk,
				Objectives:    []domain.Objective{domain.ObjectivePreserve},
			}

			analysis := HeuristicAnalysis(buildCtx(allocation, profile))

			assert.Equal(t, tt.strength, hasContaining(analysis.Strengths, "Posição estratégica em stablecoins"))
			assert.Equal(t, tt.weakness,
				hasContaining(analysis.Weaknesses, "exposição em stablecoins") ||
					hasContaining(analysis.Weaknesses, "concentração em stablecoins"))
		})
	}
}

func TestHeuristicAnalysisPassiveIncome(t *testing.T) {
	profile := domain.InvestorProfile{
		Horizon:       domain.HorizonLong,
		RiskTolerance: domain.RiskMedium,
		Objectives:    []domain.Objective{domain.ObjectivePassiveIncome},
	}

	withYield := HeuristicAnalysis(buildCtx([]domain.AssetAllocation{
		{Token: "BTC", Percentage: 50},
		{Token: "ETH", Percentage: 30},
		{Token: "SOL", Percentage: 20},
	}, profile))
	assert.True(t, hasContaining(withYield.Strengths, "potencial de yield"))

	withoutYield := HeuristicAnalysis(buildCtx([]domain.AssetAllocation{
		{Token: "BTC", Percentage: 90},
		{Token: "USDC", Percentage: 10},
	}, profile))
	assert.True(t, hasContaining(withoutYield.Weaknesses, "renda passiva"))
}

func TestHeuristicAnalysisUnknownRiskFallsBackToMedium(t *testing.T) {
	allocation := []domain.AssetAllocation{
		{Token: "BTC", Percentage: 85},
		{Token: "USDC", Percentage: 15},
	}
	profile := domain.InvestorProfile{
		Horizon:       domain.HorizonLong,
		RiskTolerance: domain.RiskTolerance("unknown"),
		Objectives:    []domain.Objective{domain.ObjectiveMultiply},
	}

	analysis := HeuristicAnalysis(buildCtx(allocation, profile))

	assert.Contains(t, analysis.Summary, "moderado")
	assert.Greater(t, analysis.OverallScore, 0)
}

func hasContaining(items []string, substr string) bool {
	for _, item := range items {
		if strings.Contains(item, substr) {
			return true
		}
	}
	return false
}
