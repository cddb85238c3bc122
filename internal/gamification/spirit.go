// Package gamification computes the playful presentation layer of a
// diagnostic: spirit animal, badges, FOMO meter, celebrity match, time
// machine simulations, motivational phrases and simulated rankings. All
// functions are pure; the ones that pick from a pool take an explicit
// random source.
package gamification

import (
	"strings"

	"github.com/paradigma/diagnostico/internal/domain"
	"github.com/paradigma/diagnostico/internal/scoring"
)

// SpiritAnimals is the full catalog, in display order. IDs are stable.
var SpiritAnimals = []domain.SpiritAnimal{
	{
		ID:          "turtle",
		Emoji:       "🐢",
		Name:        "Tartaruga",
		Description: "Devagar e sempre. Você prioriza segurança acima de tudo.",
		Criteria:    "Mais de 30% em stablecoins",
	},
	{
		ID:          "lion",
		Emoji:       "🦁",
		Name:        "Leão",
		Description: "O rei da selva crypto. Você aposta no líder do mercado.",
		Criteria:    "Mais de 50% em BTC",
	},
	{
		ID:          "fox",
		Emoji:       "🦊",
		Name:        "Raposa",
		Description: "Esperto e versátil. Você acredita na inovação do Ethereum.",
		Criteria:    "Mais de 40% em ETH",
	},
	{
		ID:          "eagle",
		Emoji:       "🦅",
		Name:        "Águia",
		Description: "Visão aguçada para oportunidades. Caçador de altcoins.",
		Criteria:    "Mais de 40% em altcoins (exceto BTC/ETH)",
	},
	{
		ID:          "shiba",
		Emoji:       "🐕",
		Name:        "Shiba",
		Description: "Você gosta de viver perigosamente! Degen assumido.",
		Criteria:    "Possui memecoins no portfólio",
	},
	{
		ID:          "octopus",
		Emoji:       "🐙",
		Name:        "Polvo",
		Description: "Tentáculos em todo lugar. Diversificação é seu lema.",
		Criteria:    "Mais de 8 ativos diferentes",
	},
	{
		ID:          "wolf",
		Emoji:       "🐺",
		Name:        "Lobo",
		Description: "Estrategista nato. Equilíbrio perfeito entre risco e segurança.",
		Criteria:    "Score acima de 85 com boa diversificação",
	},
	{
		ID:          "phoenix",
		Emoji:       "🔥",
		Name:        "Fênix",
		Description: "Renasce das cinzas. Heavy em SOL e projetos de recuperação.",
		Criteria:    "Mais de 30% em SOL",
	},
}

func spiritAnimalByID(id string) domain.SpiritAnimal {
	for _, a := range SpiritAnimals {
		if a.ID == id {
			return a
		}
	}
	return domain.SpiritAnimal{}
}

// altcoinPercentage sums everything that is not BTC, not ETH and not a
// stablecoin. SOL counts as an altcoin here.
func altcoinPercentage(allocation []domain.AssetAllocation) float64 {
	return scoring.SumWhere(allocation, func(symbol string) bool {
		return !strings.EqualFold(symbol, "BTC") &&
			!strings.EqualFold(symbol, "ETH") &&
			!domain.IsStablecoin(symbol)
	})
}

// SpiritAnimalFor selects the archetype for a portfolio. The checks run in a
// fixed priority order; the first matching animal wins and a balanced
// portfolio defaults to the wolf.
func SpiritAnimalFor(allocation []domain.AssetAllocation, score int) domain.SpiritAnimal {
	btc := scoring.Percentage(allocation, "BTC")
	eth := scoring.Percentage(allocation, "ETH")
	sol := scoring.Percentage(allocation, "SOL")
	stables := scoring.SumWhere(allocation, domain.IsStablecoin)
	altcoins := altcoinPercentage(allocation)
	hasMemes := hasMemecoins(allocation)
	numAssets := len(allocation)

	switch {
	case numAssets >= 8:
		return spiritAnimalByID("octopus")
	case hasMemes && altcoins > 20:
		return spiritAnimalByID("shiba")
	case stables >= 30:
		return spiritAnimalByID("turtle")
	case btc >= 50:
		return spiritAnimalByID("lion")
	case eth >= 40:
		return spiritAnimalByID("fox")
	case sol >= 30:
		return spiritAnimalByID("phoenix")
	case altcoins >= 40:
		return spiritAnimalByID("eagle")
	case score >= 85 && numAssets >= 4:
		return spiritAnimalByID("wolf")
	default:
		// Balanced portfolio, same archetype.
		return spiritAnimalByID("wolf")
	}
}

func hasMemecoins(allocation []domain.AssetAllocation) bool {
	for _, a := range allocation {
		if domain.IsMemecoin(a.Token) {
			return true
		}
	}
	return false
}
