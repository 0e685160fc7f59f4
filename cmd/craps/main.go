package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"craps-sim-backend/internal/config"
	"craps-sim-backend/internal/models"
	"craps-sim-backend/internal/sim"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	base := cfg.Defaults

	trials := flag.Int("trials", base.Trials, "number of trials to run")
	bankroll := flag.Int("bankroll", base.InitialBankroll, "initial bankroll")
	minBet := flag.Int("min-bet", base.MinBet, "minimum wager unit")
	odds := flag.String("odds", base.OddsPolicy, "odds policy: 123, 345 or 10")
	adaptive := flag.Bool("adaptive", base.AdaptiveOdds, "size odds from the bankroll ratio")
	grow := flag.Bool("grow", base.GrowBets, "double the base wager as the bankroll grows")
	oddsOff := flag.Bool("odds-off-comeout", base.OddsOffComeOut, "return come odds on a come-out seven")
	maxRolls := flag.Int("max-rolls", base.MaxRolls, "stop a trial after this many rolls (0 = no cutoff)")
	seed := flag.Int64("seed", base.Seed, "random seed (0 seeds from the clock)")
	rollScript := flag.String("rolls-file", base.RollScript, "replay rolls from this file, cyclically")
	rollLog := flag.String("roll-log", base.RollLog, "append every produced roll to this file")
	csvPath := flag.String("csv", base.CSVPath, "append per-trial rows to this CSV file")
	csvLabel := flag.String("csv-label", base.CSVLabel, "label column for CSV rows")
	scenario := flag.String("scenario", "", "YAML scenario file with batch settings")
	debug := flag.Bool("v", false, "log every roll")
	flag.Parse()

	batch := base
	if *scenario != "" {
		batch, err = config.LoadScenario(*scenario)
		if err != nil {
			log.Fatalf("Failed to load scenario: %v", err)
		}
	}

	// Explicit flags win over scenario and env values.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "trials":
			batch.Trials = *trials
		case "bankroll":
			batch.InitialBankroll = *bankroll
		case "min-bet":
			batch.MinBet = *minBet
		case "odds":
			batch.OddsPolicy = *odds
		case "adaptive":
			batch.AdaptiveOdds = *adaptive
		case "grow":
			batch.GrowBets = *grow
		case "odds-off-comeout":
			batch.OddsOffComeOut = *oddsOff
		case "max-rolls":
			batch.MaxRolls = *maxRolls
		case "seed":
			batch.Seed = *seed
		case "rolls-file":
			batch.RollScript = *rollScript
		case "roll-log":
			batch.RollLog = *rollLog
		case "csv":
			batch.CSVPath = *csvPath
		case "csv-label":
			batch.CSVLabel = *csvLabel
		}
	})

	logger, err := config.NewLogger(*debug)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	runner := sim.NewRunner(sugar)
	summary, results, err := runner.RunBatch(batch)
	if err != nil {
		sugar.Fatalf("batch failed: %v", err)
	}

	if batch.Trials > 1 {
		printQuantiles("roll-count stats:", summary.RollQuantiles)
		printQuantiles("max-bankroll stats:", summary.BankrollQuantiles)
	} else {
		res := results[0]
		fmt.Printf("rolls: %d, max bankroll: %d\n", res.Rolls, res.MaxBankroll)
	}
}

func printQuantiles(title string, rows []models.QuantileValue) {
	fmt.Println(title)
	for _, row := range rows {
		fmt.Printf("%10s: %10d\n", fmt.Sprintf("q%g", row.Q), row.Value)
	}
}
