package models

import (
	"fmt"

	"craps-sim-backend/internal/craps"
)

// BatchConfig is the full configuration surface for one trial batch.
// It is supplied once (flags, scenario file, or API request) and is
// immutable while the batch runs.
type BatchConfig struct {
	Trials          int    `json:"trials" yaml:"trials"`
	InitialBankroll int    `json:"initial_bankroll" yaml:"initial_bankroll"`
	MinBet          int    `json:"min_bet" yaml:"min_bet"`
	OddsPolicy      string `json:"odds_policy" yaml:"odds_policy"`
	AdaptiveOdds    bool   `json:"adaptive_odds" yaml:"adaptive_odds"`
	GrowBets        bool   `json:"grow_bets" yaml:"grow_bets"`
	OddsOffComeOut  bool   `json:"odds_off_come_out" yaml:"odds_off_come_out"`

	// MaxRolls cuts a trial off early; 0 means no cutoff.
	MaxRolls int `json:"max_rolls" yaml:"max_rolls"`

	// Seed makes random rolls reproducible; 0 seeds from the clock.
	Seed int64 `json:"seed" yaml:"seed"`

	// RollScript replays a recorded roll file cyclically instead of
	// rolling at random.
	RollScript string `json:"roll_script" yaml:"roll_script"`

	// RollLog appends every produced roll as a "d1 d2" line.
	RollLog string `json:"roll_log" yaml:"roll_log"`

	CSVPath  string `json:"csv_path" yaml:"csv_path"`
	CSVLabel string `json:"csv_label" yaml:"csv_label"`

	Quantiles []float64 `json:"quantiles" yaml:"quantiles"`
}

// DefaultBatchConfig mirrors the historical table: $300 bankroll, $5
// minimum, 1-2-3x odds, deciles.
func DefaultBatchConfig() BatchConfig {
	return BatchConfig{
		Trials:          1,
		InitialBankroll: 300,
		MinBet:          5,
		OddsPolicy:      string(craps.Policy123),
		Quantiles:       DefaultQuantiles(),
	}
}

func DefaultQuantiles() []float64 {
	return []float64{0.0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0}
}

func (c *BatchConfig) Validate() error {
	if c.Trials < 1 {
		return fmt.Errorf("trials must be at least 1")
	}
	if c.MinBet < 1 {
		return fmt.Errorf("minimum bet must be at least 1")
	}
	if c.InitialBankroll < c.MinBet {
		return fmt.Errorf("initial bankroll %d cannot cover the minimum bet %d", c.InitialBankroll, c.MinBet)
	}
	if !craps.OddsPolicy(c.OddsPolicy).Valid() {
		return fmt.Errorf("unknown odds policy %q (want one of %v)", c.OddsPolicy, craps.KnownPolicies())
	}
	if c.MaxRolls < 0 {
		return fmt.Errorf("max rolls cannot be negative")
	}
	for _, q := range c.Quantiles {
		if q < 0 || q > 1 {
			return fmt.Errorf("quantile %v out of [0, 1]", q)
		}
	}
	return nil
}

// Rules extracts the immutable per-trial staking rules.
func (c *BatchConfig) Rules() craps.Rules {
	return craps.Rules{
		InitialBankroll: c.InitialBankroll,
		MinBet:          c.MinBet,
		OddsPolicy:      craps.OddsPolicy(c.OddsPolicy),
		AdaptiveOdds:    c.AdaptiveOdds,
		GrowBets:        c.GrowBets,
		OddsOffComeOut:  c.OddsOffComeOut,
	}
}
