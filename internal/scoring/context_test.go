package scoring

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/paradigma/diagnostico/internal/domain"
)

func TestBuildContext(t *testing.T) {
	allocation := []domain.AssetAllocation{
		{Token: "BTC", Percentage: 40},
		{Token: "ETH", Percentage: 20},
		{Token: "USDC", Percentage: 15},
		{Token: "DOGE", Percentage: 10},
		{Token: "UNI", Percentage: 15},
	}

	ctx := BuildContext(allocation, mediumProfile())

	assert.InDelta(t, 60.0, ctx.MajorPercentage, 0.001)
	assert.InDelta(t, 15.0, ctx.StablecoinPercentage, 0.001)
	assert.InDelta(t, 10.0, ctx.MemecoinPercentage, 0.001)
	assert.Equal(t, 5, ctx.NumAssets)
	assert.InDelta(t, 60.0, ctx.SectorBreakdown["Layer1"], 0.001)
}

func TestBuildContextEmpty(t *testing.T) {
	ctx := BuildContext(nil, mediumProfile())

	assert.Zero(t, ctx.MajorPercentage)
	assert.Zero(t, ctx.StablecoinPercentage)
	assert.Zero(t, ctx.MemecoinPercentage)
	assert.Zero(t, ctx.NumAssets)
}

func TestSumWhereIgnoresNonFinite(t *testing.T) {
	allocation := []domain.AssetAllocation{
		{Token: "BTC", Percentage: math.NaN()},
		{Token: "ETH", Percentage: 30},
		{Token: "SOL", Percentage: math.Inf(1)},
	}

	assert.InDelta(t, 30.0, SumWhere(allocation, domain.IsMajor), 0.001)
}

func TestPercentageCaseInsensitive(t *testing.T) {
	allocation := []domain.AssetAllocation{{Token: "btc", Percentage: 55}}

	assert.InDelta(t, 55.0, Percentage(allocation, "BTC"), 0.001)
	assert.Zero(t, Percentage(allocation, "ETH"))
}

func TestMemeLimit(t *testing.T) {
	assert.Equal(t, 0.0, MemeLimit(domain.RiskLow))
	assert.Equal(t, 5.0, MemeLimit(domain.RiskMedium))
	assert.Equal(t, 15.0, MemeLimit(domain.RiskHigh))
}
