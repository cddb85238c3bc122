package gamification

import (
	"fmt"
	"strings"

	"github.com/paradigma/diagnostico/internal/domain"
)

// TimeScenarios are the fixed historical entry points with approximate price
// multipliers to a common reference point. Illustrative, not backtesting.
var TimeScenarios = []domain.TimeMachineScenario{
	{
		Date:        "Janeiro 2021",
		Label:       "Pré-Bull Run",
		Emoji:       "🚀",
		Description: "Antes da grande alta de 2021",
		Multipliers: map[string]float64{
			"BTC": 2.1, "ETH": 3.5, "SOL": 25.0, "BNB": 4.0, "ADA": 8.0, "DOT": 3.0,
			"DOGE": 50.0, "SHIB": 500.0, "AVAX": 15.0, "MATIC": 20.0, "LINK": 2.5,
			"UNI": 3.0, "AAVE": 2.0, "DEFAULT": 5.0, "STABLE": 1.0,
		},
	},
	{
		Date:        "Novembro 2021",
		Label:       "ATH (Topo Histórico)",
		Emoji:       "📉",
		Description: "No topo do mercado - pior momento para comprar",
		Multipliers: map[string]float64{
			"BTC": 0.6, "ETH": 0.5, "SOL": 0.35, "BNB": 0.7, "ADA": 0.25, "DOT": 0.2,
			"DOGE": 0.35, "SHIB": 0.15, "AVAX": 0.25, "MATIC": 0.5, "LINK": 0.4,
			"UNI": 0.3, "AAVE": 0.25, "DEFAULT": 0.3, "STABLE": 1.0,
		},
	},
	{
		Date:        "Novembro 2022",
		Label:       "Quebra da FTX",
		Emoji:       "💥",
		Description: "O colapso que abalou o mercado crypto",
		Multipliers: map[string]float64{
			"BTC": 2.8, "ETH": 3.2, "SOL": 12.0, "BNB": 2.0, "ADA": 1.8, "DOT": 1.5,
			"DOGE": 2.5, "SHIB": 3.0, "AVAX": 4.0, "MATIC": 1.5, "LINK": 3.0,
			"UNI": 2.0, "AAVE": 2.5, "FTT": 0.02, "DEFAULT": 2.5, "STABLE": 1.0,
		},
	},
	{
		Date:        "Janeiro 2023",
		Label:       "Fundo do Bear",
		Emoji:       "🐻",
		Description: "No fundo do bear market - melhor momento",
		Multipliers: map[string]float64{
			"BTC": 2.5, "ETH": 2.8, "SOL": 8.0, "BNB": 1.8, "ADA": 1.5, "DOT": 1.3,
			"DOGE": 1.8, "SHIB": 2.0, "AVAX": 3.0, "MATIC": 1.2, "LINK": 2.5,
			"UNI": 1.5, "AAVE": 1.8, "DEFAULT": 2.0, "STABLE": 1.0,
		},
	},
	{
		Date:        "Abril 2024",
		Label:       "Halving do Bitcoin",
		Emoji:       "⛏️",
		Description: "No momento do 4º halving",
		Multipliers: map[string]float64{
			"BTC": 1.4, "ETH": 1.3, "SOL": 1.5, "BNB": 1.2, "ADA": 0.9, "DOT": 0.8,
			"DOGE": 1.1, "SHIB": 0.9, "AVAX": 1.2, "MATIC": 0.7, "LINK": 1.5,
			"UNI": 1.0, "AAVE": 1.3, "DEFAULT": 1.2, "STABLE": 1.0,
		},
	},
}

// TimeMachineFor simulates the portfolio's return had it been bought at each
// scenario date. Stablecoins always use the STABLE multiplier; tokens without
// an explicit entry fall back to DEFAULT.
func TimeMachineFor(allocation []domain.AssetAllocation) []domain.TimeMachineResult {
	results := make([]domain.TimeMachineResult, 0, len(TimeScenarios))
	for _, scenario := range TimeScenarios {
		var totalMultiplier float64
		for _, asset := range allocation {
			totalMultiplier += asset.Percentage / 100 * multiplierFor(scenario, asset.Token)
		}

		change := (totalMultiplier - 1) * 100
		wouldBe := fmt.Sprintf("%.0f%%", change)
		if change >= 0 {
			wouldBe = "+" + wouldBe
		}

		results = append(results, domain.TimeMachineResult{
			Scenario:        scenario,
			PortfolioChange: change,
			WouldBe:         wouldBe,
		})
	}
	return results
}

func multiplierFor(scenario domain.TimeMachineScenario, token string) float64 {
	if domain.IsStablecoin(token) {
		return scenario.Multipliers["STABLE"]
	}
	if m, ok := scenario.Multipliers[strings.ToUpper(token)]; ok {
		return m
	}
	return scenario.Multipliers["DEFAULT"]
}
