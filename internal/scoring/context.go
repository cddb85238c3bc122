// Package scoring implements the rule-based diagnostic scoring of a
// portfolio against an investor profile.
package scoring

import (
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/paradigma/diagnostico/internal/domain"
	"github.com/paradigma/diagnostico/internal/sectors"
)

// Context carries the aggregate metrics every scorer consumes. It is built
// once per request and never mutated.
type Context struct {
	Allocation           []domain.AssetAllocation
	Profile              domain.InvestorProfile
	SectorBreakdown      map[string]float64
	MajorPercentage      float64 // BTC+ETH+SOL
	StablecoinPercentage float64 // major stablecoins only
	MemecoinPercentage   float64 // sector == Meme
	NumAssets            int
}

// BuildContext computes the aggregate metrics for an allocation. It tolerates
// degenerate input: an empty allocation yields a zero-valued context.
func BuildContext(allocation []domain.AssetAllocation, profile domain.InvestorProfile) Context {
	return Context{
		Allocation:           allocation,
		Profile:              profile,
		SectorBreakdown:      sectors.Breakdown(allocation),
		MajorPercentage:      SumWhere(allocation, domain.IsMajor),
		StablecoinPercentage: SumWhere(allocation, domain.IsMajorStablecoin),
		MemecoinPercentage:   SumWhere(allocation, sectors.IsMeme),
		NumAssets:            len(allocation),
	}
}

// SumWhere sums allocation percentages for tokens matching the predicate.
// Non-finite percentages are ignored so NaN input can't poison the aggregates.
func SumWhere(allocation []domain.AssetAllocation, match func(symbol string) bool) float64 {
	pcts := make([]float64, 0, len(allocation))
	for _, item := range allocation {
		if !math.IsNaN(item.Percentage) && !math.IsInf(item.Percentage, 0) && match(item.Token) {
			pcts = append(pcts, item.Percentage)
		}
	}
	return floats.Sum(pcts)
}

// Percentage returns the allocation percentage of a single token, 0 if absent.
func Percentage(allocation []domain.AssetAllocation, symbol string) float64 {
	for _, item := range allocation {
		if strings.EqualFold(item.Token, symbol) {
			if math.IsNaN(item.Percentage) || math.IsInf(item.Percentage, 0) {
				return 0
			}
			return item.Percentage
		}
	}
	return 0
}

// MemeLimit returns the maximum recommended memecoin exposure for a risk
// tolerance, in percent.
func MemeLimit(risk domain.RiskTolerance) float64 {
	switch risk {
	case domain.RiskLow:
		return 0
	case domain.RiskHigh:
		return 15
	default:
		return 5
	}
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// ClampScore bounds an integer score to [0, 100].
func ClampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
