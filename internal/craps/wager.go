package craps

import "fmt"

// Wager is a closed union: exactly LineWager and ComeWager implement it.
// The engine owns every live wager; nothing outside the engine aliases
// them, so both variants are plain values.
type Wager interface {
	// AtRisk is the money currently held by the wager (stake plus odds).
	AtRisk() int
	wager()
}

// LineWager is the single pass-line wager live during the come-out and
// point phases. Odds == 0 means no odds wager is attached.
type LineWager struct {
	Stake int `json:"stake"`
	Odds  int `json:"odds,omitempty"`
}

func (w LineWager) AtRisk() int { return w.Stake + w.Odds }
func (w LineWager) wager()      {}

func (w LineWager) String() string {
	return fmt.Sprintf("line{a%d o%d}", w.Stake, w.Odds)
}

// ComeWager is a come-style side wager. Target == 0 means the wager was
// just placed and has not yet acquired its own number; at most one such
// wager is live at a time.
type ComeWager struct {
	Stake  int `json:"stake"`
	Target int `json:"target,omitempty"`
	Odds   int `json:"odds,omitempty"`
}

func (w ComeWager) AtRisk() int { return w.Stake + w.Odds }
func (w ComeWager) wager()      {}

func (w ComeWager) String() string {
	return fmt.Sprintf("come{a%d t%d o%d}", w.Stake, w.Target, w.Odds)
}
