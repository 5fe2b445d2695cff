// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	DefaultPort         = 3318
	DefaultDatabaseType = "sqlite"
	DefaultSQLiteURL    = "file:dyscover.db"
	DefaultLLMTimeout   = 15 * time.Second
	DefaultExportEvery  = 24 * time.Hour
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string

	AccessKeySalt string
	ExportKey     string

	ExportDir      string
	ExportInterval time.Duration

	ScoringProfile string

	LLMProvider   string
	LLMModel      string
	LLMTimeout    time.Duration
	GeminiAPIKey  string
	OpenAIAPIKey  string
	OpenAIBaseURL string
}

// ParseFlags reads flags, falling back to environment variables
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("dyscover", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AccessKeySalt, "access-salt", "", "Access key salt (prefer env)")
	fs.StringVar(&cfg.ExportKey, "export-key", "", "Dataset export key (prefer env)")

	fs.StringVar(&cfg.ExportDir, "export-dir", "", "Directory for scheduled dataset exports")
	fs.DurationVar(&cfg.ExportInterval, "export-interval", 0, "Interval between scheduled exports")
	fs.StringVar(&cfg.ScoringProfile, "scoring-profile", "", "YAML file overriding scoring weights and thresholds")

	fs.StringVar(&cfg.LLMProvider, "llm", "", "Recommendation provider (gemini, openai, mock)")
	fs.StringVar(&cfg.LLMModel, "llm-model", "", "Recommendation model")
	fs.DurationVar(&cfg.LLMTimeout, "llm-timeout", 0, "Timeout for one recommendation call")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = DefaultPort
		}
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = DefaultDatabaseType
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		if cfg.DatabaseType != DefaultDatabaseType {
			return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
		}
		cfg.DatabaseURL = DefaultSQLiteURL
	}

	// Secrets - access salt MUST be provided
	if cfg.AccessKeySalt == "" {
		cfg.AccessKeySalt = os.Getenv("ACCESS_KEY_SALT")
	}
	if cfg.AccessKeySalt == "" {
		return Config{}, errors.New("ACCESS_KEY_SALT required")
	}
	if cfg.ExportKey == "" {
		cfg.ExportKey = os.Getenv("EXPORT_KEY")
	}

	if cfg.ExportDir == "" {
		cfg.ExportDir = os.Getenv("EXPORT_DIR")
	}
	if cfg.ExportInterval == 0 {
		d, err := durationEnv("EXPORT_INTERVAL", DefaultExportEvery)
		if err != nil {
			return Config{}, err
		}
		cfg.ExportInterval = d
	}
	if cfg.ExportInterval < 0 {
		return Config{}, errors.New("export interval must be positive")
	}

	if cfg.ScoringProfile == "" {
		cfg.ScoringProfile = os.Getenv("SCORING_PROFILE")
	}

	if cfg.LLMProvider == "" {
		cfg.LLMProvider = os.Getenv("LLM_PROVIDER")
	}
	if cfg.LLMModel == "" {
		cfg.LLMModel = os.Getenv("LLM_MODEL")
	}
	if cfg.LLMTimeout == 0 {
		d, err := durationEnv("LLM_TIMEOUT", DefaultLLMTimeout)
		if err != nil {
			return Config{}, err
		}
		cfg.LLMTimeout = d
	}
	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	cfg.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	cfg.OpenAIBaseURL = os.Getenv("OPENAI_BASE_URL")

	return cfg, nil
}

func durationEnv(name string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(name)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s env variable: %w", name, err)
	}
	return d, nil
}
