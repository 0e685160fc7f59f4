package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"craps-sim-backend/internal/models"
)

// Config is the process-level configuration, read from the environment
// (godotenv is loaded by main before this runs).
type Config struct {
	Port string
	Env  string

	// Defaults seed every batch config; flags and API requests override
	// them field by field.
	Defaults models.BatchConfig
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:     os.Getenv("PORT"),
		Env:      getenv("APP_ENV", "development"),
		Defaults: models.DefaultBatchConfig(),
	}

	if v := os.Getenv("CRAPS_BANKROLL"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid CRAPS_BANKROLL %q: %v", v, err)
		}
		cfg.Defaults.InitialBankroll = n
	}
	if v := os.Getenv("CRAPS_MIN_BET"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid CRAPS_MIN_BET %q: %v", v, err)
		}
		cfg.Defaults.MinBet = n
	}
	if v := os.Getenv("CRAPS_ODDS_POLICY"); v != "" {
		cfg.Defaults.OddsPolicy = v
	}

	return cfg, nil
}

// LoadScenario reads a YAML scenario file describing a full batch
// config, layered over the built-in defaults.
func LoadScenario(path string) (models.BatchConfig, error) {
	cfg := models.DefaultBatchConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read scenario: %v", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse scenario %s: %v", path, err)
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
