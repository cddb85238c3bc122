// Package diagnostic assembles the complete portfolio diagnostic: token
// enrichment, scoring, flags, metrics and gamification.
package diagnostic

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/paradigma/diagnostico/internal/domain"
	"github.com/paradigma/diagnostico/internal/gamification"
	"github.com/paradigma/diagnostico/internal/narrative"
	"github.com/paradigma/diagnostico/internal/scoring"
	"github.com/paradigma/diagnostico/internal/sectors"
)

// TokenDataProvider supplies market data for portfolio tokens. A failing
// provider degrades the diagnostic (no enrichment) but never blocks it.
type TokenDataProvider interface {
	GetTokenData(ctx context.Context, symbols []string) ([]domain.TokenData, error)
}

// Service generates portfolio diagnostics.
type Service struct {
	scorer *narrative.Scorer
	tokens TokenDataProvider
	log    zerolog.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewService creates the diagnostic service. tokens may be nil, in which case
// allocations are never enriched with market data.
func NewService(scorer *narrative.Scorer, tokens TokenDataProvider, log zerolog.Logger) *Service {
	return &Service{
		scorer: scorer,
		tokens: tokens,
		log:    log.With().Str("component", "diagnostic").Logger(),
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Generate produces a complete diagnostic for the allocation and profile.
// Inputs are assumed validated by the transport layer.
func (s *Service) Generate(ctx context.Context, allocation []domain.AssetAllocation, profile domain.InvestorProfile) (*domain.PortfolioDiagnostic, error) {
	allocation = s.enrich(ctx, allocation)

	analysis, flags, score := s.analyze(ctx, allocation, profile)

	sectorBreakdown := sectors.Breakdown(allocation)
	majors := scoring.SumWhere(allocation, domain.IsMajor)
	stables := scoring.SumWhere(allocation, domain.IsMajorStablecoin)

	diagnostic := &domain.PortfolioDiagnostic{
		ID:              uuid.NewString(),
		Profile:         profile,
		Allocation:      allocation,
		AdherenceScore:  score,
		AdherenceLevel:  domain.LevelForScore(score),
		Flags:           flags,
		SectorBreakdown: sectorBreakdown,
		AIAnalysis:      analysis,
		Metrics: domain.Metrics{
			Volatility:           0.7,
			Liquidity:            majors + stables,
			StablecoinPercentage: stables,
			DiversificationScore: diversificationScore(len(allocation)),
		},
		Gamification: s.gamify(allocation, score, len(sectorBreakdown)),
	}

	s.log.Info().
		Str("id", diagnostic.ID).
		Int("score", score).
		Str("level", string(diagnostic.AdherenceLevel)).
		Int("assets", len(allocation)).
		Msg("Diagnostic generated")

	return diagnostic, nil
}

// analyze runs the narrative scorer, dropping to the basic rule scorer if the
// narrative path fails unexpectedly.
func (s *Service) analyze(ctx context.Context, allocation []domain.AssetAllocation, profile domain.InvestorProfile) (analysis *domain.AIAnalysis, flags []domain.Flag, score int) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error().Interface("panic", r).Msg("Narrative scoring panicked, using basic rule scorer")
			analysis = nil
			flags = scoring.BasicFlags(allocation, profile)
			score = scoring.BasicScore(flags)
		}
	}()

	result := s.scorer.Analyze(ctx, allocation, profile)
	return result.Analysis, result.Flags, result.Score
}

func (s *Service) enrich(ctx context.Context, allocation []domain.AssetAllocation) []domain.AssetAllocation {
	enriched := make([]domain.AssetAllocation, len(allocation))
	copy(enriched, allocation)

	if s.tokens == nil || len(allocation) == 0 {
		return enriched
	}

	symbols := make([]string, len(allocation))
	for i, a := range allocation {
		symbols[i] = a.Token
	}

	data, err := s.tokens.GetTokenData(ctx, symbols)
	if err != nil {
		s.log.Warn().Err(err).Msg("Token data fetch failed, continuing without enrichment")
		return enriched
	}

	bySymbol := make(map[string]domain.TokenData, len(data))
	for _, td := range data {
		bySymbol[strings.ToUpper(td.Symbol)] = td
	}
	for i := range enriched {
		if td, ok := bySymbol[strings.ToUpper(enriched[i].Token)]; ok {
			tdCopy := td
			enriched[i].TokenData = &tdCopy
		}
	}
	return enriched
}

func (s *Service) gamify(allocation []domain.AssetAllocation, score, sectorCount int) domain.Gamification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return gamification.Compute(s.rng, allocation, score, sectorCount)
}

func diversificationScore(numAssets int) float64 {
	return scoring.Clamp(float64(numAssets)*15, 0, 100)
}
