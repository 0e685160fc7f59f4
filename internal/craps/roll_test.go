package craps_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"craps-sim-backend/internal/craps"
)

func TestSeededRollerDeterministic(t *testing.T) {
	r1 := craps.NewSeededRoller(42)
	r2 := craps.NewSeededRoller(42)

	for i := 0; i < 50; i++ {
		a, b := r1.Next(), r2.Next()
		if a != b {
			t.Fatalf("roll %d: got %v and %v from the same seed", i, a, b)
		}
		if a.Die1 < 1 || a.Die1 > 6 || a.Die2 < 1 || a.Die2 > 6 {
			t.Fatalf("roll %d out of range: %v", i, a)
		}
		if s := a.Sum(); s < 2 || s > 12 {
			t.Fatalf("roll %d sum out of range: %d", i, s)
		}
	}
}

func TestScriptRollerCycles(t *testing.T) {
	roller, err := craps.NewScriptRoller([]craps.Roll{
		{Die1: 1, Die2: 2},
		{Die1: 3, Die2: 4},
	})
	if err != nil {
		t.Fatalf("NewScriptRoller: %v", err)
	}

	want := []craps.Roll{
		{Die1: 1, Die2: 2},
		{Die1: 3, Die2: 4},
		{Die1: 1, Die2: 2},
		{Die1: 3, Die2: 4},
		{Die1: 1, Die2: 2},
	}
	for i, w := range want {
		if got := roller.Next(); got != w {
			t.Fatalf("roll %d: got %v, want %v", i, got, w)
		}
	}
}

func TestScriptRollerRejectsEmpty(t *testing.T) {
	if _, err := craps.NewScriptRoller(nil); err == nil {
		t.Error("empty script should be rejected")
	}
}

func TestParseRolls(t *testing.T) {
	input := "1 2\n\n6 6\n  3 4  \n"
	rolls, err := craps.ParseRolls(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseRolls: %v", err)
	}
	want := []craps.Roll{
		{Die1: 1, Die2: 2},
		{Die1: 6, Die2: 6},
		{Die1: 3, Die2: 4},
	}
	if len(rolls) != len(want) {
		t.Fatalf("got %d rolls, want %d", len(rolls), len(want))
	}
	for i := range want {
		if rolls[i] != want[i] {
			t.Errorf("roll %d: got %v, want %v", i, rolls[i], want[i])
		}
	}
}

func TestParseRollsRejectsMalformed(t *testing.T) {
	for _, input := range []string{"1\n", "one two\n", "1 2 3x\n", "1 2 3\n", "1 2x\n"} {
		if _, err := craps.ParseRolls(strings.NewReader(input)); err == nil {
			t.Errorf("input %q should be rejected", input)
		}
	}
}

func TestParseRollsRejectsOutOfRangeFaces(t *testing.T) {
	for _, input := range []string{"0 3\n", "7 1\n", "2 9\n"} {
		if _, err := craps.ParseRolls(strings.NewReader(input)); err == nil {
			t.Errorf("input %q should be rejected", input)
		}
	}
}

func TestLoadScriptRoller(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rolls.txt")
	if err := os.WriteFile(path, []byte("2 5\n4 4\n"), 0o644); err != nil {
		t.Fatalf("writing script: %v", err)
	}

	roller, err := craps.LoadScriptRoller(path)
	if err != nil {
		t.Fatalf("LoadScriptRoller: %v", err)
	}
	if roller.Len() != 2 {
		t.Fatalf("got %d rolls, want 2", roller.Len())
	}
	if got := roller.Next(); got != (craps.Roll{Die1: 2, Die2: 5}) {
		t.Errorf("first roll: got %v", got)
	}
}

func TestLoadScriptRollerMissingFile(t *testing.T) {
	if _, err := craps.LoadScriptRoller(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Error("missing script file should be an error")
	}
}

func TestLogRollerAppendsLines(t *testing.T) {
	src, err := craps.NewScriptRoller([]craps.Roll{
		{Die1: 1, Die2: 2},
		{Die1: 5, Die2: 6},
	})
	if err != nil {
		t.Fatalf("NewScriptRoller: %v", err)
	}

	var buf bytes.Buffer
	logged := craps.NewLogRoller(src, &buf)
	logged.Next()
	logged.Next()

	if got := buf.String(); got != "1 2\n5 6\n" {
		t.Errorf("roll log = %q, want %q", got, "1 2\n5 6\n")
	}
}
