package sim

import (
	"bufio"
	"fmt"
	"os"

	"craps-sim-backend/internal/models"
)

const csvHeader = "rolls,max_bankroll,label"

// AppendCSV appends one labeled row per trial. The header is written
// only when the file is currently empty, so repeated batches with
// different labels accumulate in one file.
func AppendCSV(path, label string, results []models.TrialResult) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open csv output: %v", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat csv output: %v", err)
	}

	w := bufio.NewWriter(f)
	if info.Size() == 0 {
		fmt.Fprintln(w, csvHeader)
	}
	for _, r := range results {
		fmt.Fprintf(w, "%d,%d,%s\n", r.Rolls, r.MaxBankroll, label)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write csv output: %v", err)
	}
	return nil
}
