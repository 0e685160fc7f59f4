package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"craps-sim-backend/internal/craps"
)

// TrialResult is the outcome of one simulated trial.
type TrialResult struct {
	Rolls       int `json:"rolls"`
	MaxBankroll int `json:"max_bankroll"`
}

// QuantileValue is one row of a nearest-rank quantile table.
type QuantileValue struct {
	Q     float64 `json:"q"`
	Value int     `json:"value"`
}

// BatchSummary aggregates a whole trial batch.
type BatchSummary struct {
	BatchID           string          `json:"batch_id"`
	Trials            int             `json:"trials"`
	RollQuantiles     []QuantileValue `json:"roll_quantiles"`
	BankrollQuantiles []QuantileValue `json:"bankroll_quantiles"`
	Elapsed           time.Duration   `json:"elapsed_ns"`
}

func GenerateBatchID() string {
	return fmt.Sprintf("batch_%s_%d",
		time.Now().Format("20060102"),
		uuid.New().ID())
}

// WagerState is the wire form of a live wager for streaming clients.
type WagerState struct {
	Kind   string `json:"kind"` // "line" or "come"
	Stake  int    `json:"stake"`
	Target int    `json:"target,omitempty"`
	Odds   int    `json:"odds,omitempty"`
}

// RollUpdate is one streamed engine transition.
type RollUpdate struct {
	Roll     int          `json:"roll"`
	Dice     craps.Roll   `json:"dice"`
	Sum      int          `json:"sum"`
	Point    int          `json:"point"`
	Bankroll int          `json:"bankroll"`
	Peak     int          `json:"peak"`
	Wagers   []WagerState `json:"wagers"`
}

func WagerStates(wagers []craps.Wager) []WagerState {
	out := make([]WagerState, 0, len(wagers))
	for _, w := range wagers {
		switch w := w.(type) {
		case craps.LineWager:
			out = append(out, WagerState{Kind: "line", Stake: w.Stake, Odds: w.Odds})
		case craps.ComeWager:
			out = append(out, WagerState{Kind: "come", Stake: w.Stake, Target: w.Target, Odds: w.Odds})
		}
	}
	return out
}
