// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(args)

# CLI Flags and Environment Variables

Every flag falls back to an environment variable. CLI flags take
precedence. A .env file in the working directory is loaded by the serve
command before parsing.

	-p                PORT             Server port (default 3318)
	-d                DATABASE_URL     Database URL (default file:dyscover.db for sqlite)
	-t                DATABASE_TYPE    sqlite (default) or postgres
	-access-salt      ACCESS_KEY_SALT  Secret for access key HMAC (required)
	-export-key       EXPORT_KEY       Key for GET /api/export; export disabled if unset
	-export-dir       EXPORT_DIR       Directory for scheduled dataset exports
	-export-interval  EXPORT_INTERVAL  Time between scheduled exports (default 24h)
	-scoring-profile  SCORING_PROFILE  YAML scoring profile
	-llm              LLM_PROVIDER     gemini, openai or mock; unset disables personalization
	-llm-model        LLM_MODEL        Model name for the provider
	-llm-timeout      LLM_TIMEOUT      Timeout per recommendation call (default 15s)

API keys are read from the environment only: GEMINI_API_KEY,
OPENAI_API_KEY and OPENAI_BASE_URL.

# Validation

ParseFlags returns an error if:

  - ACCESS_KEY_SALT is missing
  - DATABASE_URL is missing for a non-sqlite database
  - a port or duration does not parse
*/
package cliparse
