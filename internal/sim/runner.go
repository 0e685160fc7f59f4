package sim

import (
	"io"
	"time"

	"go.uber.org/zap"

	"craps-sim-backend/internal/craps"
	"craps-sim-backend/internal/models"
)

// Runner executes trial batches. Trials run strictly one after another
// and share a single dice source, so scripted replays stay continuous
// across trials.
type Runner struct {
	log *zap.SugaredLogger
}

func NewRunner(log *zap.SugaredLogger) *Runner {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Runner{log: log}
}

// NewRoller builds the batch dice source: a scripted replay when a
// script is configured, otherwise seeded or clock-seeded random rolls,
// wrapped in a roll log when one is requested. The returned closer is
// nil unless a log file was opened.
func NewRoller(cfg models.BatchConfig) (craps.Roller, io.Closer, error) {
	var src craps.Roller
	switch {
	case cfg.RollScript != "":
		scripted, err := craps.LoadScriptRoller(cfg.RollScript)
		if err != nil {
			return nil, nil, err
		}
		src = scripted
	case cfg.Seed != 0:
		src = craps.NewSeededRoller(cfg.Seed)
	default:
		src = craps.NewRandomRoller()
	}

	if cfg.RollLog == "" {
		return src, nil, nil
	}
	f, err := craps.OpenRollLog(cfg.RollLog)
	if err != nil {
		return nil, nil, err
	}
	return craps.NewLogRoller(src, f), f, nil
}

// RunBatch validates the config, runs every trial, aggregates the
// requested quantiles, and appends CSV rows when configured.
func (r *Runner) RunBatch(cfg models.BatchConfig) (*models.BatchSummary, []models.TrialResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	dice, closer, err := NewRoller(cfg)
	if err != nil {
		return nil, nil, err
	}
	if closer != nil {
		defer closer.Close()
	}

	batchID := models.GenerateBatchID()
	start := time.Now()
	rules := cfg.Rules()

	results := make([]models.TrialResult, 0, cfg.Trials)
	for i := 0; i < cfg.Trials; i++ {
		res := RunTrial(rules, dice, cfg.MaxRolls, r.log)
		r.log.Debugw("trial finished",
			"batch", batchID,
			"trial", i+1,
			"rolls", res.Rolls,
			"max_bankroll", res.MaxBankroll,
		)
		results = append(results, res)
	}

	qs := cfg.Quantiles
	if len(qs) == 0 {
		qs = models.DefaultQuantiles()
	}
	rolls := make([]int, len(results))
	peaks := make([]int, len(results))
	for i, res := range results {
		rolls[i] = res.Rolls
		peaks[i] = res.MaxBankroll
	}

	summary := &models.BatchSummary{
		BatchID:           batchID,
		Trials:            cfg.Trials,
		RollQuantiles:     QuantileTable(rolls, qs),
		BankrollQuantiles: QuantileTable(peaks, qs),
		Elapsed:           time.Since(start),
	}

	if cfg.CSVPath != "" {
		if cfg.CSVLabel == "" {
			r.log.Warnw("csv output requested without a label, skipping",
				"path", cfg.CSVPath)
		} else if err := AppendCSV(cfg.CSVPath, cfg.CSVLabel, results); err != nil {
			return nil, nil, err
		}
	}

	r.log.Infow("batch finished",
		"batch", batchID,
		"trials", cfg.Trials,
		"elapsed", summary.Elapsed,
	)
	return summary, results, nil
}
