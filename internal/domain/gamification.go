package domain

// Gamification presentation artifacts. These are computed purely from the
// allocation (plus score where noted) and never depend on the narrative
// provider, so they are always fully populated.

// SpiritAnimal is a gamified archetype label summarizing portfolio
// personality. The IDs are part of the stable UI contract.
type SpiritAnimal struct {
	ID          string `json:"id"`
	Emoji       string `json:"emoji"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Criteria    string `json:"criteria"`
}

// Badge is an achievement with a boolean unlock state.
type Badge struct {
	ID          string `json:"id"`
	Emoji       string `json:"emoji"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Unlocked    bool   `json:"unlocked"`
}

// FOMOMeter contrasts speculative (FOMO) vs conservative (HODL) weighting on
// a 0-100 scale: 0 = full HODL, 100 = full FOMO.
type FOMOMeter struct {
	Percentage  int    `json:"percentage"`
	Label       string `json:"label"`
	Emoji       string `json:"emoji"`
	Description string `json:"description"`
}

// CelebrityMatch pairs the portfolio with the closest crypto celebrity.
type CelebrityMatch struct {
	Name        string `json:"name"`
	Image       string `json:"image"`
	Match       int    `json:"match"` // 0-100
	Description string `json:"description"`
	Portfolio   string `json:"portfolio"`
}

// TimeMachineScenario is a fixed historical entry point with illustrative
// per-token price multipliers. Not real backtesting.
type TimeMachineScenario struct {
	Date        string             `json:"date"`
	Label       string             `json:"label"`
	Emoji       string             `json:"emoji"`
	Description string             `json:"description"`
	Multipliers map[string]float64 `json:"multipliers"`
}

// TimeMachineResult is the what-if return of the portfolio under one scenario.
type TimeMachineResult struct {
	Scenario        TimeMachineScenario `json:"scenario"`
	PortfolioChange float64             `json:"portfolioChange"`
	WouldBe         string              `json:"wouldBe"` // formatted with explicit sign
}

// MotivationalPhrase is flavor text selected per score band.
type MotivationalPhrase struct {
	Text  string `json:"text"`
	Emoji string `json:"emoji"`
}

// Ranking holds simulated percentile rankings. The population is fictional;
// this is presentation flavor.
type Ranking struct {
	Overall         int `json:"overall"`
	Diversification int `json:"diversification"`
	RiskManagement  int `json:"riskManagement"`
	GrowthPotential int `json:"growthPotential"`
}

// Gamification bundles all presentation artifacts of a diagnostic.
type Gamification struct {
	SpiritAnimal SpiritAnimal        `json:"spiritAnimal"`
	Badges       []Badge             `json:"badges"`
	FOMOMeter    FOMOMeter           `json:"fomoMeter"`
	Celebrity    CelebrityMatch      `json:"celebrityMatch"`
	TimeMachine  []TimeMachineResult `json:"timeMachine"`
	Phrase       MotivationalPhrase  `json:"motivationalPhrase"`
	Ranking      Ranking             `json:"ranking"`
}
