package craps

import (
	"go.uber.org/zap"
)

// Rules is the immutable staking configuration for a trial. It is
// passed in once and never mutated, so the engine stays testable in
// isolation.
type Rules struct {
	InitialBankroll int        `json:"initial_bankroll" yaml:"initial_bankroll"`
	MinBet          int        `json:"min_bet" yaml:"min_bet"`
	OddsPolicy      OddsPolicy `json:"odds_policy" yaml:"odds_policy"`

	// AdaptiveOdds picks the odds table from the bankroll ratio instead
	// of OddsPolicy.
	AdaptiveOdds bool `json:"adaptive_odds" yaml:"adaptive_odds"`

	// GrowBets doubles the base wager while bankroll/2^k stays at or
	// above the initial bankroll.
	GrowBets bool `json:"grow_bets" yaml:"grow_bets"`

	// OddsOffComeOut returns come-wager odds instead of losing them on
	// a come-out seven.
	OddsOffComeOut bool `json:"odds_off_come_out" yaml:"odds_off_come_out"`
}

// Engine is the per-trial wager state machine: the current point, the
// bankroll, and the set of live wagers. One call to Step consumes one
// roll and realizes every payout it triggers.
type Engine struct {
	rules Rules

	point    int // 0 = come-out, no point established
	bankroll int
	peak     int
	wagers   []Wager

	log *zap.SugaredLogger
}

// NewEngine starts a trial with the opening line wager already placed,
// so the bankroll begins at initial minus the minimum bet.
func NewEngine(rules Rules, log *zap.SugaredLogger) *Engine {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	bankroll := rules.InitialBankroll - rules.MinBet
	return &Engine{
		rules:    rules,
		bankroll: bankroll,
		peak:     bankroll,
		wagers:   []Wager{LineWager{Stake: rules.MinBet}},
		log:      log,
	}
}

func (e *Engine) Point() int    { return e.point }
func (e *Engine) Bankroll() int { return e.bankroll }
func (e *Engine) Peak() int     { return e.peak }
func (e *Engine) Rules() Rules  { return e.rules }

// Wagers returns a copy of the live wagers.
func (e *Engine) Wagers() []Wager {
	out := make([]Wager, len(e.wagers))
	copy(out, e.wagers)
	return out
}

// TotalAtRisk is the money currently held by live wagers.
func (e *Engine) TotalAtRisk() int {
	total := 0
	for _, w := range e.wagers {
		total += w.AtRisk()
	}
	return total
}

// Busted reports the terminal state: too broke to place the minimum
// wager with nothing left on the table.
func (e *Engine) Busted() bool {
	return e.bankroll < e.rules.MinBet && len(e.wagers) == 0
}

// Step consumes one roll: resolves every live wager, moves the point,
// and places at most one fresh wager.
func (e *Engine) Step(roll Roll) {
	sum := roll.Sum()
	e.log.Debugf("roll:%s sum:%d point:%d bankroll:%d wagers:%v", roll, sum, e.point, e.bankroll, e.wagers)

	var kept []Wager
	newPoint := e.point

	if sum == 7 {
		for _, w := range e.wagers {
			switch w := w.(type) {
			case LineWager:
				if e.point == 0 {
					e.credit(2 * w.Stake)
					e.log.Debug("pass-line winner")
				}
				// with a point up, seven-out takes the line wager and its odds
			case ComeWager:
				switch {
				case w.Target == 0:
					e.credit(2 * w.Stake)
					e.log.Debug("fresh come wager wins on the seven")
				case e.rules.OddsOffComeOut && e.point == 0 && w.Odds > 0:
					// come odds are off while no point is up: the flat
					// stake is lost but the odds come back
					e.credit(w.Odds)
					e.log.Debugf("come %d down, odds %d returned", w.Target, w.Odds)
				}
			}
		}
		newPoint = 0
	} else {
		for _, w := range e.wagers {
			switch w := w.(type) {
			case LineWager:
				if e.point != 0 {
					if sum == e.point {
						winnings := 2 * w.Stake
						if w.Odds > 0 {
							winnings += w.Odds + OddsPayout(w.Odds, e.point)
						}
						e.credit(winnings)
						// making the point returns the table to the
						// come-out; live come wagers stay up
						newPoint = 0
						e.log.Debugf("pass wins %d on the point", winnings)
					} else {
						kept = append(kept, w)
						newPoint = e.point
					}
				} else {
					switch sum {
					case 2, 3, 12:
						e.log.Debug("craps, line wager down")
					case 11:
						// yo pays the flat stake once and the wager comes down
						e.credit(w.Stake)
						e.log.Debug("pass wins on yo")
					default:
						newPoint = sum
						kept = append(kept, LineWager{Stake: w.Stake, Odds: e.takeOdds(w.Stake, sum)})
					}
				}
			case ComeWager:
				if w.Target != 0 {
					if sum == w.Target {
						winnings := 2 * w.Stake
						if w.Odds > 0 {
							winnings += w.Odds + OddsPayout(w.Odds, w.Target)
						}
						e.credit(winnings)
						e.log.Debugf("come %d wins %d", w.Target, winnings)
					} else {
						kept = append(kept, w)
					}
				} else {
					switch sum {
					case 2, 3, 12:
						e.log.Debug("craps, come wager down")
					case 11:
						e.credit(w.Stake)
						e.log.Debug("come wins on yo")
					default:
						kept = append(kept, ComeWager{Stake: w.Stake, Target: sum, Odds: e.takeOdds(w.Stake, sum)})
					}
				}
			}
		}
	}

	e.point = newPoint
	e.wagers = kept
	e.placeNext()
	e.log.Debugf("point:%d bankroll:%d peak:%d wagers:%v", e.point, e.bankroll, e.peak, e.wagers)
}

// credit pays winnings (or a refund) into the bankroll and keeps the
// high-water mark current.
func (e *Engine) credit(amount int) {
	e.bankroll += amount
	if e.bankroll > e.peak {
		e.peak = e.bankroll
	}
}

// takeOdds sizes an odds wager for a freshly established number, capped
// by the bankroll. Short funds mean no odds, not an error.
func (e *Engine) takeOdds(stake, point int) int {
	amount := stake * OddsMultiplier(point, e.rules.OddsPolicy, e.rules.AdaptiveOdds, e.bankroll, e.rules.InitialBankroll)
	if e.bankroll < amount {
		return 0
	}
	e.bankroll -= amount
	return amount
}

// baseWager is the flat stake for the next wager: the minimum unit,
// doubled while bankroll/2^k stays at or above the initial bankroll
// when bet growth is on.
func (e *Engine) baseWager() int {
	base := e.rules.MinBet
	if e.rules.GrowBets {
		for half := e.bankroll / 2; half >= e.rules.InitialBankroll; half /= 2 {
			base *= 2
		}
	}
	return base
}

// placeNext places zero or one fresh wager: a line wager during the
// come-out if none is live, otherwise a come wager if none is still
// waiting on a number.
func (e *Engine) placeNext() {
	base := e.baseWager()
	if e.bankroll < base {
		return
	}
	if e.point == 0 {
		if !e.hasLineWager() {
			e.wagers = append(e.wagers, LineWager{Stake: base})
			e.bankroll -= base
		}
		return
	}
	if !e.hasFreshComeWager() {
		e.wagers = append(e.wagers, ComeWager{Stake: base})
		e.bankroll -= base
	}
}

func (e *Engine) hasLineWager() bool {
	for _, w := range e.wagers {
		if _, ok := w.(LineWager); ok {
			return true
		}
	}
	return false
}

func (e *Engine) hasFreshComeWager() bool {
	for _, w := range e.wagers {
		if c, ok := w.(ComeWager); ok && c.Target == 0 {
			return true
		}
	}
	return false
}
