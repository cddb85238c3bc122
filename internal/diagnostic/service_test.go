package diagnostic

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paradigma/diagnostico/internal/domain"
	"github.com/paradigma/diagnostico/internal/narrative"
	"github.com/paradigma/diagnostico/internal/scoring"
)

type stubTokens struct {
	data []domain.TokenData
	err  error
}

func (s *stubTokens) GetTokenData(_ context.Context, _ []string) ([]domain.TokenData, error) {
	return s.data, s.err
}

type panickingProvider struct{}

func (panickingProvider) Analyze(_ context.Context, _ []domain.AssetAllocation, _ domain.InvestorProfile, _ scoring.Context) (*domain.AIAnalysis, error) {
	panic("boom")
}

func testProfile() domain.InvestorProfile {
	return domain.InvestorProfile{
		Horizon:       domain.HorizonLong,
		RiskTolerance: domain.RiskMedium,
		Objectives:    []domain.Objective{domain.ObjectiveMultiply},
	}
}

func testAllocation() []domain.AssetAllocation {
	return []domain.AssetAllocation{
		{Token: "BTC", Percentage: 60},
		{Token: "ETH", Percentage: 40},
	}
}

func newTestService(tokens TokenDataProvider) *Service {
	scorer := narrative.NewScorer(nil, zerolog.Nop())
	return NewService(scorer, tokens, zerolog.Nop())
}

func TestGenerateCompleteDiagnostic(t *testing.T) {
	svc := newTestService(nil)

	d, err := svc.Generate(context.Background(), testAllocation(), testProfile())

	require.NoError(t, err)
	_, parseErr := uuid.Parse(d.ID)
	assert.NoError(t, parseErr)
	assert.Equal(t, 85, d.AdherenceScore)
	assert.Equal(t, domain.AdherenceHigh, d.AdherenceLevel)
	assert.NotEmpty(t, d.Flags)
	require.NotNil(t, d.AIAnalysis)

	assert.InDelta(t, 0.7, d.Metrics.Volatility, 0.001)
	assert.InDelta(t, 100.0, d.Metrics.Liquidity, 0.001)
	assert.InDelta(t, 0.0, d.Metrics.StablecoinPercentage, 0.001)
	assert.InDelta(t, 30.0, d.Metrics.DiversificationScore, 0.001)

	assert.Equal(t, "lion", d.Gamification.SpiritAnimal.ID)
	assert.Len(t, d.Gamification.Badges, 9)
	assert.Len(t, d.Gamification.TimeMachine, 5)
	assert.NotEmpty(t, d.Gamification.Phrase.Text)
}

func TestGenerateEnrichesAllocation(t *testing.T) {
	tokens := &stubTokens{data: []domain.TokenData{
		{Symbol: "BTC", Name: "Bitcoin", Price: 60000},
	}}
	svc := newTestService(tokens)

	d, err := svc.Generate(context.Background(), testAllocation(), testProfile())

	require.NoError(t, err)
	require.NotNil(t, d.Allocation[0].TokenData)
	assert.Equal(t, "Bitcoin", d.Allocation[0].TokenData.Name)
	assert.Nil(t, d.Allocation[1].TokenData)
}

func TestGenerateContinuesWhenTokenDataFails(t *testing.T) {
	svc := newTestService(&stubTokens{err: errors.New("rate limited")})

	d, err := svc.Generate(context.Background(), testAllocation(), testProfile())

	require.NoError(t, err)
	assert.Nil(t, d.Allocation[0].TokenData)
	assert.Equal(t, 85, d.AdherenceScore)
}

func TestGenerateDoesNotMutateInput(t *testing.T) {
	tokens := &stubTokens{data: []domain.TokenData{{Symbol: "BTC", Name: "Bitcoin"}}}
	svc := newTestService(tokens)
	input := testAllocation()

	_, err := svc.Generate(context.Background(), input, testProfile())

	require.NoError(t, err)
	assert.Nil(t, input[0].TokenData)
}

func TestGenerateBasicScorerOnNarrativePanic(t *testing.T) {
	scorer := narrative.NewScorer(panickingProvider{}, zerolog.Nop())
	svc := NewService(scorer, nil, zerolog.Nop())

	d, err := svc.Generate(context.Background(), testAllocation(), testProfile())

	require.NoError(t, err)
	assert.Nil(t, d.AIAnalysis)
	// Basic rule scorer output for a pure-majors two-asset portfolio.
	assert.Equal(t, 100, d.AdherenceScore)
	require.Len(t, d.Flags, 1)
	assert.Equal(t, domain.FlagGreen, d.Flags[0].Kind)
}

func TestGenerateSectorBreakdown(t *testing.T) {
	allocation := []domain.AssetAllocation{
		{Token: "BTC", Percentage: 40},
		{Token: "UNI", Percentage: 30},
		{Token: "DOGE", Percentage: 30},
	}
	svc := newTestService(nil)

	d, err := svc.Generate(context.Background(), allocation, testProfile())

	require.NoError(t, err)
	assert.InDelta(t, 40.0, d.SectorBreakdown["Layer1"], 0.001)
	assert.InDelta(t, 30.0, d.SectorBreakdown["DeFi"], 0.001)
	assert.InDelta(t, 30.0, d.SectorBreakdown["Meme"], 0.001)
}
