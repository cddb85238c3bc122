package sectors

import (
	"testing"

	"github.com/paradigma/diagnostico/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		symbol string
		want   string
	}{
		{"BTC", "Layer1"},
		{"btc", "Layer1"}, // case-insensitive
		{"UNI", "DeFi"},
		{"USDC", "Stablecoin"},
		{"DOGE", "Meme"},
		{"BNB", "Exchange"},
		{"LINK", "Oracle"},
		{"UNKNOWNTOKEN", SectorOther},
		{"", SectorOther},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.symbol), "Classify(%q)", tt.symbol)
	}
}

func TestBreakdown(t *testing.T) {
	allocation := []domain.AssetAllocation{
		{Token: "BTC", Percentage: 40},
		{Token: "ETH", Percentage: 30},
		{Token: "UNI", Percentage: 20},
		{Token: "XYZ123", Percentage: 10},
	}

	breakdown := Breakdown(allocation)

	assert.InDelta(t, 70.0, breakdown["Layer1"], 0.001)
	assert.InDelta(t, 20.0, breakdown["DeFi"], 0.001)
	assert.InDelta(t, 10.0, breakdown[SectorOther], 0.001)
	assert.Equal(t, 3, Count(allocation))
}

func TestBreakdownEmpty(t *testing.T) {
	assert.Empty(t, Breakdown(nil))
	assert.Equal(t, 0, Count(nil))
}

func TestIsMeme(t *testing.T) {
	assert.True(t, IsMeme("PEPE"))
	assert.True(t, IsMeme("shib"))
	assert.False(t, IsMeme("BTC"))
}
