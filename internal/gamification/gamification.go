package gamification

import (
	"math/rand"

	"github.com/paradigma/diagnostico/internal/domain"
	"github.com/paradigma/diagnostico/internal/scoring"
)

// Compute assembles the complete gamification bundle for a scored portfolio.
// sectorCount is the number of distinct sectors in the allocation.
func Compute(rng *rand.Rand, allocation []domain.AssetAllocation, score, sectorCount int) domain.Gamification {
	memes := scoring.SumWhere(allocation, domain.IsMemecoin)
	hasMemes := hasMemecoins(allocation)

	return domain.Gamification{
		SpiritAnimal: SpiritAnimalFor(allocation, score),
		Badges:       BadgesFor(allocation, score, sectorCount),
		FOMOMeter:    FOMOMeterFor(allocation),
		Celebrity:    CelebrityMatchFor(allocation),
		TimeMachine:  TimeMachineFor(allocation),
		Phrase:       PhraseFor(rng, score, hasMemes, memes),
		Ranking:      RankingFor(rng, score, allocation),
	}
}
