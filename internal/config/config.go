package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/tickwatch/tickwatch/internal/sighting"
)

type AppConfig struct {
	// DBPath is the SQLite database file.
	DBPath string

	// SummaryInterval controls how often the server logs a dataset summary.
	SummaryInterval time.Duration

	// Forecast horizon bounds (days).
	DefaultHorizon int
	MaxHorizon     int

	// SynonymsFile optionally points at a JSON object mapping species
	// aliases to canonical names. Empty means the built-in table.
	SynonymsFile string

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.DBPath = getenvDefault("TICKWATCH_DB_PATH", "ticks.db")

	intervalStr := getenvDefault("SUMMARY_INTERVAL", "1h")
	interval, err := time.ParseDuration(intervalStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SUMMARY_INTERVAL: %w", err)
	}
	cfg.SummaryInterval = interval

	cfg.DefaultHorizon = getenvInt("FORECAST_DEFAULT_DAYS", 7)
	cfg.MaxHorizon = getenvInt("FORECAST_MAX_DAYS", 365)
	if cfg.DefaultHorizon <= 0 || cfg.MaxHorizon < cfg.DefaultHorizon {
		return nil, fmt.Errorf("invalid forecast horizon bounds: default=%d max=%d", cfg.DefaultHorizon, cfg.MaxHorizon)
	}

	cfg.SynonymsFile = os.Getenv("SPECIES_SYNONYMS_FILE")
	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

// Synonyms returns the species synonym table: the configured JSON file
// when set, the built-in defaults otherwise.
func (c *AppConfig) Synonyms() (map[string]string, error) {
	if c.SynonymsFile == "" {
		return sighting.DefaultSynonyms(), nil
	}

	data, err := os.ReadFile(c.SynonymsFile)
	if err != nil {
		return nil, fmt.Errorf("read synonyms file: %w", err)
	}
	table := make(map[string]string)
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parse synonyms file %s: %w", c.SynonymsFile, err)
	}
	return table, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}
