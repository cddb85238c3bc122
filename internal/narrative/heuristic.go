package narrative

import (
	"fmt"
	"strings"

	"github.com/paradigma/diagnostico/internal/domain"
	"github.com/paradigma/diagnostico/internal/scoring"
)

// stableRange is the stablecoin band considered healthy for a risk profile.
type stableRange struct {
	min, max, ideal float64
}

var stableRanges = map[domain.RiskTolerance]stableRange{
	domain.RiskLow:    {min: 15, max: 40, ideal: 25},
	domain.RiskMedium: {min: 10, max: 25, ideal: 15},
	domain.RiskHigh:   {min: 0, max: 15, ideal: 5},
}

var riskLabels = map[domain.RiskTolerance]string{
	domain.RiskLow:    "conservador",
	domain.RiskMedium: "moderado",
	domain.RiskHigh:   "arrojado",
}

// HeuristicAnalysis produces a narrative-shaped analysis without any external
// provider. It recomputes strengths, weaknesses and recommendations from
// additive/subtractive rules starting at a base score of 70.
//
// The thresholds here deliberately differ from the basic rule scorer's: both
// rule sets shipped with the product and are preserved as-is. See DESIGN.md
// for the duplication note.
func HeuristicAnalysis(ctx scoring.Context) *domain.AIAnalysis {
	score := 70
	var strengths, weaknesses, recommendations []string

	riskLabel := riskLabels[ctx.Profile.RiskTolerance]
	if riskLabel == "" {
		riskLabel = riskLabels[domain.RiskMedium]
	}

	// Consolidated (majors) exposure tiers
	switch {
	case ctx.MajorPercentage >= 50:
		strengths = append(strengths, fmt.Sprintf("Excelente base em criptos consolidadas: %.0f%% em BTC, ETH e SOL", ctx.MajorPercentage))
		score += 15
	case ctx.MajorPercentage >= 40:
		strengths = append(strengths, fmt.Sprintf("Boa base em criptos consolidadas: %.0f%% em BTC, ETH e SOL", ctx.MajorPercentage))
		score += 10
	case ctx.MajorPercentage >= 20:
		weaknesses = append(weaknesses, fmt.Sprintf("Apenas %.0f%% de exposição a criptos consolidadas (BTC, ETH, SOL)", ctx.MajorPercentage))
		recommendations = append(recommendations, "Considere aumentar a exposição em BTC, ETH e SOL para ao menos 40%")
		score -= 5
	default:
		weaknesses = append(weaknesses, fmt.Sprintf("Exposição muito baixa em criptos consolidadas: apenas %.0f%% em BTC, ETH e SOL", ctx.MajorPercentage))
		recommendations = append(recommendations, "É fundamental ter ao menos 40% em criptos consolidadas (BTC, ETH, SOL) para proteção")
		score -= 15
	}

	// Diversification band
	switch {
	case ctx.NumAssets >= 4 && ctx.NumAssets <= 8:
		strengths = append(strengths, fmt.Sprintf("Diversificação equilibrada: %d ativos no portfólio", ctx.NumAssets))
		score += 5
	case ctx.NumAssets < 4:
		weaknesses = append(weaknesses, fmt.Sprintf("Pouca diversificação: apenas %d ativo(s)", ctx.NumAssets))
		recommendations = append(recommendations, "Considere adicionar mais ativos para reduzir risco específico")
		score -= 5
	case ctx.NumAssets > 12:
		weaknesses = append(weaknesses, fmt.Sprintf("Possível over-diversification: %d ativos", ctx.NumAssets))
		recommendations = append(recommendations, "Considere consolidar posições - muitos ativos podem diluir retornos")
		score -= 5
	}

	// Stablecoin band per risk tolerance. Only an ideal-level position counts
	// as a strength; merely acceptable is neutral.
	band := stableRanges[ctx.Profile.RiskTolerance]
	if band == (stableRange{}) {
		band = stableRanges[domain.RiskMedium]
	}
	switch {
	case ctx.StablecoinPercentage >= band.ideal && ctx.StablecoinPercentage <= band.max:
		strengths = append(strengths, fmt.Sprintf("Posição estratégica em stablecoins: %.0f%% para liquidez e proteção", ctx.StablecoinPercentage))
		score += 10
	case ctx.StablecoinPercentage >= band.min && ctx.StablecoinPercentage < band.ideal:
		score += 3
	case ctx.StablecoinPercentage < band.min && ctx.Profile.RiskTolerance == domain.RiskLow:
		weaknesses = append(weaknesses, fmt.Sprintf("Baixa exposição em stablecoins para perfil %s: %.0f%%", riskLabel, ctx.StablecoinPercentage))
		recommendations = append(recommendations, fmt.Sprintf("Aumente sua posição em stablecoins (USDC, USDT) para %.0f-%.0f%%", band.min, band.max))
		score -= 10
	case ctx.StablecoinPercentage > band.max:
		weaknesses = append(weaknesses, fmt.Sprintf("Alta concentração em stablecoins: %.0f%%", ctx.StablecoinPercentage))
		recommendations = append(recommendations, "Considere alocar parte das stablecoins em ativos com potencial de valorização")
		score -= 5
	}

	// Memecoin limit per risk tolerance
	memeLimit := scoring.MemeLimit(ctx.Profile.RiskTolerance)
	if ctx.MemecoinPercentage > memeLimit {
		weaknesses = append(weaknesses, fmt.Sprintf("Exposição excessiva em memecoins: %.0f%% (limite para %s: %.0f%%)", ctx.MemecoinPercentage, riskLabel, memeLimit))
		recommendations = append(recommendations, fmt.Sprintf("Reduza memecoins para no máximo %.0f%% do portfólio", memeLimit))
		score -= 15
	} else if ctx.MemecoinPercentage > 0 && ctx.MemecoinPercentage <= memeLimit/2 {
		strengths = append(strengths, fmt.Sprintf("Exposição controlada em memecoins: %.0f%%", ctx.MemecoinPercentage))
	}

	// Concentration check on the single largest position
	var top *domain.AssetAllocation
	for i := range ctx.Allocation {
		if top == nil || ctx.Allocation[i].Percentage > top.Percentage {
			top = &ctx.Allocation[i]
		}
	}
	if top != nil {
		token := strings.ToUpper(top.Token)
		if top.Percentage > 50 && token != "BTC" && token != "ETH" {
			weaknesses = append(weaknesses, fmt.Sprintf("Alta concentração em %s: %.0f%%", top.Token, top.Percentage))
			recommendations = append(recommendations, fmt.Sprintf("Considere diversificar a posição de %s", top.Token))
			score -= 10
		} else if top.Percentage >= 40 && token == "BTC" {
			strengths = append(strengths, fmt.Sprintf("Posição estratégica em BTC: %.0f%%", top.Percentage))
			score += 5
		}
	}

	// Objective alignment: passive income expects yield-capable assets
	if ctx.Profile.HasObjective(domain.ObjectivePassiveIncome) {
		yieldExposure := scoring.SumWhere(ctx.Allocation, domain.IsYieldAsset)
		if yieldExposure >= 20 {
			strengths = append(strengths, fmt.Sprintf("Boa exposição em ativos com potencial de yield: %.0f%%", yieldExposure))
		} else {
			weaknesses = append(weaknesses, "Objetivo de renda passiva com baixa exposição em ativos de yield")
			recommendations = append(recommendations, "Para renda passiva, considere ETH, SOL ou outros ativos com staking")
		}
	}

	// Sector spread
	if len(ctx.SectorBreakdown) >= 3 {
		strengths = append(strengths, fmt.Sprintf("Diversificação setorial: exposição em %d setores diferentes", len(ctx.SectorBreakdown)))
	}

	score = scoring.ClampScore(score)

	return &domain.AIAnalysis{
		Summary:          buildSummary(ctx, score, riskLabel),
		RiskAssessment:   buildRiskAssessment(score, riskLabel),
		Strengths:        strengths,
		Weaknesses:       weaknesses,
		Recommendations:  recommendations,
		OverallScore:     score,
		DetailedAnalysis: buildDetailedAnalysis(ctx, memeLimit, riskLabel, recommendations),
	}
}

func buildSummary(ctx scoring.Context, score int, riskLabel string) string {
	scoreLevel := "baixa"
	if score >= 80 {
		scoreLevel = "alta"
	} else if score >= 60 {
		scoreLevel = "moderada"
	}

	var parts []string
	if ctx.MajorPercentage >= 40 {
		parts = append(parts, fmt.Sprintf("uma base sólida em criptos consolidadas (%.0f%%)", ctx.MajorPercentage))
	}
	if ctx.NumAssets >= 4 {
		parts = append(parts, fmt.Sprintf("boa diversificação com %d ativos", ctx.NumAssets))
	}

	if len(parts) > 0 {
		return fmt.Sprintf("Seu portfólio apresenta %s. Aderência %s ao perfil %s.", strings.Join(parts, " e "), scoreLevel, riskLabel)
	}
	return fmt.Sprintf("Portfólio analisado com aderência %s ao perfil %s.", scoreLevel, riskLabel)
}

func buildRiskAssessment(score int, riskLabel string) string {
	switch {
	case score >= 80:
		return fmt.Sprintf("O portfólio está bem alinhado com seu perfil %s. A distribuição de ativos demonstra consciência dos riscos e objetivos estabelecidos.", riskLabel)
	case score >= 60:
		return fmt.Sprintf("O portfólio apresenta alinhamento moderado com seu perfil %s. Existem alguns ajustes que podem otimizar a relação risco-retorno.", riskLabel)
	default:
		return fmt.Sprintf("O portfólio necessita atenção para melhor adequação ao perfil %s. Os pontos de melhoria identificados são importantes para seus objetivos.", riskLabel)
	}
}

func buildDetailedAnalysis(ctx scoring.Context, memeLimit float64, riskLabel string, recommendations []string) string {
	shares := sortedSectors(ctx.SectorBreakdown)
	if len(shares) > 3 {
		shares = shares[:3]
	}
	sectorParts := make([]string, 0, len(shares))
	for _, s := range shares {
		sectorParts = append(sectorParts, fmt.Sprintf("%s (%.0f%%)", s.name, s.pct))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Composição Geral**: Seu portfólio conta com %d ativo(s), sendo %.0f%% em criptos consolidadas (BTC, ETH, SOL) e %.0f%% em stablecoins.\n\n",
		ctx.NumAssets, ctx.MajorPercentage, ctx.StablecoinPercentage)
	fmt.Fprintf(&b, "**Setores**: A distribuição setorial inclui %s.\n\n", strings.Join(sectorParts, ", "))

	baseAdvice := "recomendamos aumentar a exposição em criptos consolidadas (BTC, ETH, SOL)"
	if ctx.MajorPercentage >= 40 {
		baseAdvice = "a base defensiva está adequada"
	}
	fmt.Fprintf(&b, "**Análise de Risco**: Para seu perfil %s, %s.", riskLabel, baseAdvice)
	if ctx.MemecoinPercentage > 0 {
		verdict := "excede o recomendado"
		if ctx.MemecoinPercentage <= memeLimit {
			verdict = "está dentro do aceitável"
		}
		fmt.Fprintf(&b, " A exposição de %.0f%% em memecoins %s.", ctx.MemecoinPercentage, verdict)
	}

	if len(recommendations) > 0 {
		fmt.Fprintf(&b, "\n\n**Próximos Passos**: %s", recommendations[0])
	}

	return b.String()
}
