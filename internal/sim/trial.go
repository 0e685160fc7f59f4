package sim

import (
	"go.uber.org/zap"

	"craps-sim-backend/internal/craps"
	"craps-sim-backend/internal/models"
)

// RunTrial plays one trial roll-by-roll until the player busts or the
// optional cutoff hits, and reports how long the bankroll survived and
// how high it got.
func RunTrial(rules craps.Rules, dice craps.Roller, maxRolls int, log *zap.SugaredLogger) models.TrialResult {
	engine := craps.NewEngine(rules, log)

	rolls := 0
	for {
		rolls++
		engine.Step(dice.Next())
		if engine.Busted() {
			break
		}
		if maxRolls > 0 && rolls >= maxRolls {
			break
		}
	}

	return models.TrialResult{
		Rolls:       rolls,
		MaxBankroll: engine.Peak(),
	}
}
