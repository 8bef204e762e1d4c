package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr             string
	Env              string
	RulesFile        string
	DatabaseURL      string
	DisconnectPolicy string
	// Seed fixes the random source when non-zero.
	Seed  uint64
	Rules Rules
}

func (c Config) Development() bool { return c.Env == "development" }

// Load reads .env (if present), the process environment and the rules
// file named by RULES_FILE.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	c := Config{
		Addr:             getenv("ADDR", ":8080"),
		Env:              strings.ToLower(getenv("APP_ENV", "production")),
		RulesFile:        os.Getenv("RULES_FILE"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		DisconnectPolicy: strings.ToLower(getenv("DISCONNECT_POLICY", "remove")),
	}

	if v := os.Getenv("RNG_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("RNG_SEED: %w", err)
		}
		c.Seed = seed
	}

	switch c.DisconnectPolicy {
	case "remove", "reset":
	default:
		return Config{}, fmt.Errorf("DISCONNECT_POLICY: unknown policy %q", c.DisconnectPolicy)
	}

	rules := DefaultRules()
	if c.RulesFile != "" {
		loaded, err := LoadRules(c.RulesFile)
		if err != nil {
			return Config{}, err
		}
		rules = loaded
	}
	c.Rules = rules
	return c, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
