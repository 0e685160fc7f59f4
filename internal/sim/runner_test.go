package sim_test

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"craps-sim-backend/internal/craps"
	"craps-sim-backend/internal/models"
	"craps-sim-backend/internal/sim"
)

func writeScript(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rolls.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing script: %v", err)
	}
	return path
}

func scriptedConfig(t *testing.T) models.BatchConfig {
	t.Helper()
	cfg := models.DefaultBatchConfig()
	cfg.Trials = 3
	cfg.InitialBankroll = 50
	cfg.MinBet = 5
	cfg.MaxRolls = 500
	cfg.RollScript = writeScript(t, "1 1\n2 2\n3 4\n5 6\n6 6\n1 2\n4 4\n")
	return cfg
}

func TestRunTrialBustOnFirstRoll(t *testing.T) {
	rules := craps.Rules{InitialBankroll: 5, MinBet: 5, OddsPolicy: craps.Policy123}
	dice, err := craps.NewScriptRoller([]craps.Roll{{Die1: 1, Die2: 1}})
	if err != nil {
		t.Fatalf("NewScriptRoller: %v", err)
	}

	res := sim.RunTrial(rules, dice, 0, nil)
	if res.Rolls != 1 {
		t.Errorf("rolls = %d, want 1", res.Rolls)
	}
	if res.MaxBankroll != 0 {
		t.Errorf("max bankroll = %d, want 0", res.MaxBankroll)
	}
}

func TestRunTrialMaxRollCutoff(t *testing.T) {
	rules := craps.Rules{InitialBankroll: 100000, MinBet: 5, OddsPolicy: craps.Policy123}
	res := sim.RunTrial(rules, craps.NewSeededRoller(11), 25, nil)

	if res.Rolls != 25 {
		t.Errorf("rolls = %d, want the 25-roll cutoff", res.Rolls)
	}
}

func TestRunBatchScriptedDeterministic(t *testing.T) {
	cfg := scriptedConfig(t)

	runner := sim.NewRunner(nil)
	_, first, err := runner.RunBatch(cfg)
	if err != nil {
		t.Fatalf("first batch: %v", err)
	}
	_, second, err := runner.RunBatch(cfg)
	if err != nil {
		t.Fatalf("second batch: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("scripted batches diverged:\n%v\n%v", first, second)
	}
}

func TestRunBatchQuantileSummary(t *testing.T) {
	cfg := scriptedConfig(t)
	cfg.Quantiles = []float64{0.0, 0.5, 1.0}

	summary, results, err := sim.NewRunner(nil).RunBatch(cfg)
	if err != nil {
		t.Fatalf("RunBatch: %v", err)
	}
	if summary.Trials != 3 || len(results) != 3 {
		t.Fatalf("got %d trials, want 3", len(results))
	}
	if len(summary.RollQuantiles) != 3 || len(summary.BankrollQuantiles) != 3 {
		t.Fatalf("summary quantiles = %+v", summary)
	}
	if summary.RollQuantiles[0].Value > summary.RollQuantiles[2].Value {
		t.Errorf("min roll quantile %d above max %d",
			summary.RollQuantiles[0].Value, summary.RollQuantiles[2].Value)
	}
	if summary.BatchID == "" {
		t.Error("summary should carry a batch id")
	}
}

func TestRunBatchWritesRollLog(t *testing.T) {
	cfg := scriptedConfig(t)
	cfg.RollLog = filepath.Join(t.TempDir(), "rolls.log")

	_, results, err := sim.NewRunner(nil).RunBatch(cfg)
	if err != nil {
		t.Fatalf("RunBatch: %v", err)
	}

	data, err := os.ReadFile(cfg.RollLog)
	if err != nil {
		t.Fatalf("reading roll log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")

	totalRolls := 0
	for _, res := range results {
		totalRolls += res.Rolls
	}
	if len(lines) != totalRolls {
		t.Errorf("roll log has %d lines, want %d", len(lines), totalRolls)
	}
	for i, line := range lines {
		var d1, d2 int
		if _, err := fmt.Sscanf(line, "%d %d", &d1, &d2); err != nil || d1 < 1 || d1 > 6 || d2 < 1 || d2 > 6 {
			t.Fatalf("roll log line %d malformed: %q", i, line)
		}
	}
}

func TestRunBatchSkipsCSVWithoutLabel(t *testing.T) {
	cfg := scriptedConfig(t)
	cfg.CSVPath = filepath.Join(t.TempDir(), "out.csv")

	if _, _, err := sim.NewRunner(nil).RunBatch(cfg); err != nil {
		t.Fatalf("RunBatch: %v", err)
	}
	if _, err := os.Stat(cfg.CSVPath); !os.IsNotExist(err) {
		t.Error("csv file should not be written without a label")
	}
}

func TestRunBatchAppendsCSV(t *testing.T) {
	cfg := scriptedConfig(t)
	cfg.CSVPath = filepath.Join(t.TempDir(), "out.csv")
	cfg.CSVLabel = "scripted"

	if _, _, err := sim.NewRunner(nil).RunBatch(cfg); err != nil {
		t.Fatalf("RunBatch: %v", err)
	}
	data, err := os.ReadFile(cfg.CSVPath)
	if err != nil {
		t.Fatalf("reading csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != cfg.Trials+1 {
		t.Errorf("csv has %d lines, want header plus %d rows", len(lines), cfg.Trials)
	}
	if lines[0] != "rolls,max_bankroll,label" {
		t.Errorf("csv header = %q", lines[0])
	}
}

func TestRunBatchRejectsBadConfig(t *testing.T) {
	cfg := models.DefaultBatchConfig()
	cfg.OddsPolicy = "7x"

	if _, _, err := sim.NewRunner(nil).RunBatch(cfg); err == nil {
		t.Error("unknown odds policy should be rejected")
	}
}

func TestRunBatchMissingScript(t *testing.T) {
	cfg := models.DefaultBatchConfig()
	cfg.RollScript = filepath.Join(t.TempDir(), "missing.txt")

	if _, _, err := sim.NewRunner(nil).RunBatch(cfg); err == nil {
		t.Error("missing roll script should be rejected")
	}
}
