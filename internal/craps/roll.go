package craps

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"
)

// Roll is one throw of two dice.
type Roll struct {
	Die1 int `json:"die1"`
	Die2 int `json:"die2"`
}

func (r Roll) Sum() int {
	return r.Die1 + r.Die2
}

func (r Roll) String() string {
	return fmt.Sprintf("(%d, %d)", r.Die1, r.Die2)
}

// Roller produces one roll per call. Implementations are not safe for
// concurrent use; each trial batch owns exactly one.
type Roller interface {
	Next() Roll
}

type RandomRoller struct {
	rng *rand.Rand
}

// NewRandomRoller seeds from the wall clock.
func NewRandomRoller() *RandomRoller {
	return NewSeededRoller(time.Now().UnixNano())
}

// NewSeededRoller gives reproducible rolls for a fixed seed.
func NewSeededRoller(seed int64) *RandomRoller {
	return &RandomRoller{rng: rand.New(rand.NewSource(seed))}
}

func (r *RandomRoller) Next() Roll {
	return Roll{
		Die1: r.rng.Intn(6) + 1,
		Die2: r.rng.Intn(6) + 1,
	}
}

// ScriptRoller replays a fixed sequence of rolls, wrapping around when
// the sequence is exhausted.
type ScriptRoller struct {
	rolls []Roll
	next  int
}

func NewScriptRoller(rolls []Roll) (*ScriptRoller, error) {
	if len(rolls) == 0 {
		return nil, fmt.Errorf("roll script is empty")
	}
	for i, roll := range rolls {
		if err := validateRoll(roll); err != nil {
			return nil, fmt.Errorf("roll %d: %v", i+1, err)
		}
	}
	return &ScriptRoller{rolls: rolls}, nil
}

// LoadScriptRoller reads a roll script file: one roll per line, two
// whitespace-separated die faces.
func LoadScriptRoller(path string) (*ScriptRoller, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open roll script: %v", err)
	}
	defer f.Close()

	rolls, err := ParseRolls(f)
	if err != nil {
		return nil, fmt.Errorf("roll script %s: %v", path, err)
	}
	return NewScriptRoller(rolls)
}

func ParseRolls(r io.Reader) ([]Roll, error) {
	var rolls []Roll
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("line %d: malformed roll %q", lineNo, line)
		}
		die1, err1 := strconv.Atoi(fields[0])
		die2, err2 := strconv.Atoi(fields[1])
		if err1 != nil || err2 != nil {
			return nil, fmt.Errorf("line %d: malformed roll %q", lineNo, line)
		}
		roll := Roll{Die1: die1, Die2: die2}
		if err := validateRoll(roll); err != nil {
			return nil, fmt.Errorf("line %d: %v", lineNo, err)
		}
		rolls = append(rolls, roll)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return rolls, nil
}

func validateRoll(roll Roll) error {
	if roll.Die1 < 1 || roll.Die1 > 6 || roll.Die2 < 1 || roll.Die2 > 6 {
		return fmt.Errorf("die face out of range in %v", roll)
	}
	return nil
}

func (s *ScriptRoller) Next() Roll {
	roll := s.rolls[s.next]
	s.next = (s.next + 1) % len(s.rolls)
	return roll
}

// Len reports the script length before wraparound.
func (s *ScriptRoller) Len() int {
	return len(s.rolls)
}

// LogRoller appends every produced roll as a "d1 d2" line before
// returning it. A write failure is a fatal configuration error.
type LogRoller struct {
	src Roller
	w   io.Writer
}

func NewLogRoller(src Roller, w io.Writer) *LogRoller {
	return &LogRoller{src: src, w: w}
}

// OpenRollLog truncates path at batch start; callers append across all
// trials that share the configuration.
func OpenRollLog(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open roll log: %v", err)
	}
	return f, nil
}

func (l *LogRoller) Next() Roll {
	roll := l.src.Next()
	if _, err := fmt.Fprintf(l.w, "%d %d\n", roll.Die1, roll.Die2); err != nil {
		panic(fmt.Sprintf("roll log write failed: %v", err))
	}
	return roll
}
