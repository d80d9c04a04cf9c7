package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// EnvConfig holds settings read from the environment. Pointer fields stay nil
// when the variable is unset.
type EnvConfig struct {
	Lang      *string `env:"WORDPICK_LANG"`
	Length    *int    `env:"WORDPICK_LENGTH"`
	WordList  *string `env:"WORDPICK_WORDLIST"`
	DBPath    string  `env:"WORDPICK_DB"`
	LogLevel  string  `env:"WORDPICK_LOG_LEVEL" envDefault:"warn"`
	LogFormat string  `env:"WORDPICK_LOG_FORMAT" envDefault:"console"`
}

// LoadEnv loads the given .env files (or ./.env when none are given) and
// parses the environment. Missing .env files are ignored.
func LoadEnv(files ...string) (EnvConfig, error) {
	// godotenv.Load fails on the first missing file; load them one by one.
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return EnvConfig{}, fmt.Errorf("failed to load %s: %w", file, err)
		}
	}
	var cfg EnvConfig
	if err := env.Parse(&cfg); err != nil {
		return EnvConfig{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	if cfg.LogFormat != "console" && cfg.LogFormat != "json" {
		return EnvConfig{}, fmt.Errorf("WORDPICK_LOG_FORMAT must be %q or %q", "console", "json")
	}
	return cfg, nil
}

// DBPathOrDefault returns the configured database path or the default.
func (c EnvConfig) DBPathOrDefault() string {
	if c.DBPath != "" {
		return c.DBPath
	}
	return DefaultDBPath()
}
