// Package narrative produces the narrative-assisted portfolio analysis. A
// configured provider is asked once per request for a richer analysis; on
// absence, failure or timeout the internal heuristic takes over. The caller
// never sees a provider error.
package narrative

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"

	"github.com/paradigma/diagnostico/internal/domain"
	"github.com/paradigma/diagnostico/internal/scoring"
)

// Provider generates a narrative analysis for a portfolio. Implementations
// make a single attempt per call; retrying is not the engine's contract.
type Provider interface {
	Analyze(ctx context.Context, allocation []domain.AssetAllocation, profile domain.InvestorProfile, metrics scoring.Context) (*domain.AIAnalysis, error)
}

// Result is the outcome of a scoring pass.
type Result struct {
	Analysis     *domain.AIAnalysis
	Flags        []domain.Flag
	Score        int
	FromProvider bool // false when the heuristic fallback produced the analysis
}

// Scorer selects between the narrative provider and the heuristic fallback.
// A circuit breaker wraps the provider so a flapping upstream short-circuits
// straight to the heuristic path instead of burning the request deadline.
type Scorer struct {
	provider Provider // nil disables the provider path entirely
	breaker  *gobreaker.CircuitBreaker
	log      zerolog.Logger
}

// NewScorer creates a scorer. provider may be nil, in which case every
// request takes the heuristic path.
func NewScorer(provider Provider, log zerolog.Logger) *Scorer {
	return &Scorer{
		provider: provider,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "narrative-provider",
			Timeout: 60 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 3
			},
		}),
		log: log.With().Str("component", "narrative_scorer").Logger(),
	}
}

// Analyze runs the scorer selection: provider if configured and healthy,
// heuristic otherwise. It always returns a complete result.
func (s *Scorer) Analyze(ctx context.Context, allocation []domain.AssetAllocation, profile domain.InvestorProfile) Result {
	metrics := scoring.BuildContext(allocation, profile)

	if s.provider != nil {
		analysis, err := s.callProvider(ctx, allocation, profile, metrics)
		if err == nil {
			return s.buildResult(allocation, profile, analysis, true)
		}
		s.log.Warn().Err(err).Msg("Narrative provider failed, falling back to heuristic analysis")
	}

	return s.buildResult(allocation, profile, HeuristicAnalysis(metrics), false)
}

func (s *Scorer) callProvider(ctx context.Context, allocation []domain.AssetAllocation, profile domain.InvestorProfile, metrics scoring.Context) (*domain.AIAnalysis, error) {
	result, err := s.breaker.Execute(func() (interface{}, error) {
		return s.provider.Analyze(ctx, allocation, profile, metrics)
	})
	if err != nil {
		return nil, err
	}
	analysis := result.(*domain.AIAnalysis)
	sanitize(analysis)
	return analysis, nil
}

func (s *Scorer) buildResult(allocation []domain.AssetAllocation, profile domain.InvestorProfile, analysis *domain.AIAnalysis, fromProvider bool) Result {
	return Result{
		Analysis:     analysis,
		Flags:        FlagsFromAnalysis(allocation, profile, analysis),
		Score:        scoring.ClampScore(analysis.OverallScore),
		FromProvider: fromProvider,
	}
}

// sanitize enforces the provider output contract: score clamped to [0,100],
// nil slices defaulted to empty so downstream code can range freely.
func sanitize(analysis *domain.AIAnalysis) {
	analysis.OverallScore = scoring.ClampScore(analysis.OverallScore)
	if analysis.Strengths == nil {
		analysis.Strengths = []string{}
	}
	if analysis.Weaknesses == nil {
		analysis.Weaknesses = []string{}
	}
	if analysis.Recommendations == nil {
		analysis.Recommendations = []string{}
	}
}
