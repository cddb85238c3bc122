// Package domain contains the core types of the portfolio diagnostic engine.
// The domain layer is pure: no infrastructure dependencies, no mutation after
// construction. Every entity lives for a single request/response cycle.
package domain

// Horizon is the investor's stated investment horizon.
type Horizon string

// Horizon values.
const (
	HorizonShort  Horizon = "short"  // up to 1 year
	HorizonMedium Horizon = "medium" // 1-3 years
	HorizonLong   Horizon = "long"   // more than 3 years
)

// RiskTolerance is the investor's self-reported risk tolerance.
type RiskTolerance string

// RiskTolerance values.
const (
	RiskLow    RiskTolerance = "low"
	RiskMedium RiskTolerance = "medium"
	RiskHigh   RiskTolerance = "high"
)

// Objective is an investment objective. A profile carries at least one.
type Objective string

// Objective values.
const (
	ObjectivePreserve      Objective = "preserve"
	ObjectivePassiveIncome Objective = "passive_income"
	ObjectiveMultiply      Objective = "multiply"
)

// TokenData holds market data for a token, fetched from the token data
// provider. It enriches the allocation for presentation; scoring never
// depends on it.
type TokenData struct {
	Symbol            string   `json:"symbol"`
	Name              string   `json:"name"`
	Price             float64  `json:"price"`
	MarketCap         float64  `json:"marketCap"`
	FullyDilutedValue *float64 `json:"fullyDilutedValuation,omitempty"`
	TotalSupply       *float64 `json:"totalSupply,omitempty"`
	CirculatingSupply float64  `json:"circulatingSupply"`
	Volume24h         float64  `json:"volume24h"`
	PriceChange24h    float64  `json:"priceChange24h"`
	Image             string   `json:"image,omitempty"`
}

// AssetAllocation is one entry of a portfolio: a token symbol and the
// percentage of the portfolio allocated to it.
type AssetAllocation struct {
	Token      string     `json:"token"`
	Percentage float64    `json:"percentage"`
	TokenData  *TokenData `json:"tokenData,omitempty"`
}

// InvestorProfile is the investor's self-reported risk profile.
type InvestorProfile struct {
	Horizon       Horizon       `json:"horizon"`
	RiskTolerance RiskTolerance `json:"riskTolerance"`
	Objectives    []Objective   `json:"objective"`
}

// HasObjective reports whether the profile includes the given objective.
func (p InvestorProfile) HasObjective(obj Objective) bool {
	for _, o := range p.Objectives {
		if o == obj {
			return true
		}
	}
	return false
}

// FlagKind classifies a diagnostic flag: red=critical, yellow=caution,
// green=positive.
type FlagKind string

// FlagKind values.
const (
	FlagRed    FlagKind = "red"
	FlagYellow FlagKind = "yellow"
	FlagGreen  FlagKind = "green"
)

// FlagCategory groups flags by the aspect of the portfolio they concern.
type FlagCategory string

// FlagCategory values.
const (
	CategoryAsset     FlagCategory = "asset"
	CategorySector    FlagCategory = "sector"
	CategoryLiquidity FlagCategory = "liquidity"
	CategoryProfile   FlagCategory = "profile"
	CategoryObjective FlagCategory = "objective"
)

// Flag is a categorized, severity-ranked diagnostic message. Severity drives
// both display ordering (descending) and the fallback score penalty.
type Flag struct {
	Kind       FlagKind     `json:"type"`
	Category   FlagCategory `json:"category"`
	Message    string       `json:"message"`
	Actionable string       `json:"actionable,omitempty"`
	Severity   int          `json:"severity"` // 0-5
}

// AIAnalysis is the narrative analysis of a portfolio. It is produced either
// by the narrative provider or by the internal heuristic fallback.
type AIAnalysis struct {
	Summary          string   `json:"summary"`
	RiskAssessment   string   `json:"riskAssessment"`
	Strengths        []string `json:"strengths"`
	Weaknesses       []string `json:"weaknesses"`
	Recommendations  []string `json:"recommendations"`
	OverallScore     int      `json:"overallScore"` // 0-100
	DetailedAnalysis string   `json:"detailedAnalysis"`
}

// AdherenceLevel buckets the adherence score for presentation.
type AdherenceLevel string

// AdherenceLevel values.
const (
	AdherenceHigh   AdherenceLevel = "high"
	AdherenceMedium AdherenceLevel = "medium"
	AdherenceLow    AdherenceLevel = "low"
)

// LevelForScore derives the adherence level from a 0-100 score.
func LevelForScore(score int) AdherenceLevel {
	switch {
	case score >= 80:
		return AdherenceHigh
	case score >= 60:
		return AdherenceMedium
	default:
		return AdherenceLow
	}
}

// Metrics are presentation-level aggregate metrics of the portfolio.
type Metrics struct {
	Volatility           float64 `json:"volatility"`
	Liquidity            float64 `json:"liquidity"`
	StablecoinPercentage float64 `json:"stablecoinPercentage"`
	DiversificationScore float64 `json:"diversificationScore"`
}

// PortfolioDiagnostic is the complete engine output returned to the
// presentation layer. Field names and enumerations are part of the stable
// interface: the UI switches on them.
type PortfolioDiagnostic struct {
	ID              string             `json:"id"`
	Profile         InvestorProfile    `json:"profile"`
	Allocation      []AssetAllocation  `json:"allocation"`
	AdherenceScore  int                `json:"adherenceScore"`
	AdherenceLevel  AdherenceLevel     `json:"adherenceLevel"`
	Flags           []Flag             `json:"flags"`
	SectorBreakdown map[string]float64 `json:"sectorBreakdown"`
	AIAnalysis      *AIAnalysis        `json:"aiAnalysis,omitempty"`
	Metrics         Metrics            `json:"metrics"`
	Gamification    Gamification       `json:"gamification"`
}
