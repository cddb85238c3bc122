package gamification

import (
	"math/rand"

	"github.com/paradigma/diagnostico/internal/domain"
)

// Phrase pools per score band. Heavy memecoin holders get their own pool
// regardless of score.
var (
	highScorePhrases = []domain.MotivationalPhrase{
		{Text: "Warren Buffett estaria orgulhoso... se ele investisse em crypto.", Emoji: "🎩"},
		{Text: "Seu portfólio está mais sólido que a convicção de um maximalista.", Emoji: "💪"},
		{Text: "Você investe melhor que 90% dos influencers de crypto.", Emoji: "📊"},
	}

	mediumScorePhrases = []domain.MotivationalPhrase{
		{Text: "Não está ruim, mas também não está no caminho da Lambo.", Emoji: "🚗"},
		{Text: "Seu portfólio tem potencial, só precisa de uns ajustes.", Emoji: "🔧"},
		{Text: "Bom começo! Agora é hora de refinar a estratégia.", Emoji: "🎯"},
	}

	lowScorePhrases = []domain.MotivationalPhrase{
		{Text: "Seu portfólio precisa de terapia. Nós podemos ajudar.", Emoji: "🛋️"},
		{Text: "Já considerou pedir conselhos para alguém que não seja do Twitter?", Emoji: "🤔"},
		{Text: "Você está a uma rugpull de virar meme você mesmo.", Emoji: "💀"},
		{Text: "Pelo menos você está aqui buscando ajuda. Isso já é alguma coisa!", Emoji: "🆘"},
		{Text: "Seu portfólio parece que foi montado jogando dardos.", Emoji: "🎯"},
	}

	memePhrases = []domain.MotivationalPhrase{
		{Text: "Você realmente gosta de viver perigosamente, né?", Emoji: "🎰"},
		{Text: "Pelo menos você vai ter histórias incríveis para contar.", Emoji: "📖"},
		{Text: "Degen mode: ATIVADO. Boa sorte, guerreiro.", Emoji: "⚔️"},
	}
)

// PhraseFor picks a phrase for the diagnostic. The random source is injected
// so callers that need deterministic output (and tests) can seed it.
func PhraseFor(rng *rand.Rand, score int, hasMemes bool, memecoinPercent float64) domain.MotivationalPhrase {
	pool := lowScorePhrases
	switch {
	case hasMemes && memecoinPercent >= 30:
		pool = memePhrases
	case score >= 80:
		pool = highScorePhrases
	case score >= 60:
		pool = mediumScorePhrases
	}
	return pool[rng.Intn(len(pool))]
}
