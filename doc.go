// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the dyscover screening server.

dyscover runs early dyslexia risk screenings for children aged 3-12. A
screening collects up to six sub-tests (questionnaire, pretest, phoneme,
pattern, nonsense words, reading fluency) and combines them into an
age-weighted composite score and a Low, Medium or High risk level.

# Starting the Server

The server reads environment variables (optionally from a .env file) or
CLI flags:

	ACCESS_KEY_SALT=... go run . serve

Or with flags:

	go run . serve -p 3318 -t postgres -d "postgres://..."

# Configuration

Required settings:

  - ACCESS_KEY_SALT (--access-salt): Secret for per-assessment access keys

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DATABASE_URL (-d): Connection string or SQLite file
  - EXPORT_KEY (--export-key): Enables the research dataset export
  - EXPORT_DIR / EXPORT_INTERVAL: Scheduled dataset snapshots
  - SCORING_PROFILE: YAML file overriding weights and thresholds
  - LLM_PROVIDER, GEMINI_API_KEY, OPENAI_API_KEY: Personalized recommendations

# Other Commands

  - score: Score a saved results file offline
  - keygen: Print fresh secrets in .env format
  - version: Print the build version

# Architecture

  - risk: Normalization, indicators and the risk decision tree
  - subtests: Questionnaire, reading passages, transcript evaluation
  - recommend: LLM-backed personalized recommendations
  - store: Assessment and result persistence
  - export: CSV/XLSX dataset export and its scheduler
  - handlers, router, middleware, models: HTTP API
  - auth, db, cliparse, cmd: Keys, schema, configuration, commands

See package documentation for each component.
*/
package main
