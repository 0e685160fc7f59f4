package craps

import "fmt"

// OddsPolicy names a staking policy for odds wagers.
type OddsPolicy string

const (
	Policy123  OddsPolicy = "123"
	Policy345  OddsPolicy = "345"
	PolicyFlat OddsPolicy = "10"
)

func KnownPolicies() []OddsPolicy {
	return []OddsPolicy{Policy123, Policy345, PolicyFlat}
}

func (p OddsPolicy) Valid() bool {
	switch p {
	case Policy123, Policy345, PolicyFlat:
		return true
	}
	return false
}

// OddsPayout returns the winnings of an odds wager at true odds,
// excluding the returned stake. Integer truncating division is part of
// the payout contract: 60 at 3/2 pays 90, but 5 at 6/5 pays 6 (5*6/5),
// while 4 at 6/5 pays only 4 (24/5 truncated).
func OddsPayout(stake, point int) int {
	var numerator, denominator int
	switch point {
	case 4, 10:
		numerator, denominator = 2, 1
	case 5, 9:
		numerator, denominator = 3, 2
	case 6, 8:
		numerator, denominator = 6, 5
	default:
		panic(fmt.Sprintf("no true odds for point %d", point))
	}
	return (stake * numerator) / denominator
}

// OddsMultiplier returns the multiple of the base wager that may be
// placed as odds behind a wager on point. With adaptive staking the
// table is chosen from the current-to-initial bankroll ratio:
// below 0.8 play 1-2-3x, below 1.4 play 3-4-5x, at or above play 10x.
func OddsMultiplier(point int, policy OddsPolicy, adaptive bool, bankroll, initial int) int {
	if adaptive {
		switch {
		case bankroll*5 < initial*4:
			policy = Policy123
		case bankroll*5 < initial*7:
			policy = Policy345
		default:
			policy = PolicyFlat
		}
	}

	switch policy {
	case Policy123:
		return pointMultiplier(point, 1, 2, 3)
	case Policy345:
		return pointMultiplier(point, 3, 4, 5)
	case PolicyFlat:
		return 10
	}
	panic(fmt.Sprintf("unknown odds policy %q", policy))
}

func pointMultiplier(point, outside, inner, inside int) int {
	switch point {
	case 4, 10:
		return outside
	case 5, 9:
		return inner
	case 6, 8:
		return inside
	}
	panic(fmt.Sprintf("no odds multiplier for point %d", point))
}
