// cliparse/cliparse_test.go
package cliparse

import (
	"testing"
	"time"
)

func TestParseFlags_EnvVars(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_URL", "postgres://test")
	t.Setenv("DATABASE_TYPE", "postgres")
	t.Setenv("ACCESS_KEY_SALT", "test-salt")
	t.Setenv("EXPORT_KEY", "export-secret")
	t.Setenv("EXPORT_INTERVAL", "1h")
	t.Setenv("LLM_PROVIDER", "gemini")
	t.Setenv("GEMINI_API_KEY", "g-key")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "postgres" || cfg.DatabaseURL != "postgres://test" {
		t.Errorf("unexpected database config: %s %s", cfg.DatabaseType, cfg.DatabaseURL)
	}
	if cfg.AccessKeySalt != "test-salt" || cfg.ExportKey != "export-secret" {
		t.Error("secrets not read from env")
	}
	if cfg.ExportInterval != time.Hour {
		t.Errorf("expected export interval 1h, got %s", cfg.ExportInterval)
	}
	if cfg.LLMProvider != "gemini" || cfg.GeminiAPIKey != "g-key" {
		t.Error("LLM config not read from env")
	}
	if cfg.LLMTimeout != DefaultLLMTimeout {
		t.Errorf("expected default LLM timeout, got %s", cfg.LLMTimeout)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("LLM_TIMEOUT", "3s")

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "file:test.db", "-access-salt", "s1", "-llm-timeout", "5s"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
	if cfg.LLMTimeout != 5*time.Second {
		t.Errorf("CLI should override env: expected 5s, got %s", cfg.LLMTimeout)
	}
}

func TestParseFlags_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DATABASE_TYPE", "")
	t.Setenv("EXPORT_INTERVAL", "")

	cfg, err := ParseFlags([]string{"-access-salt", "s1"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != DefaultPort {
		t.Errorf("expected default port, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "sqlite" || cfg.DatabaseURL != DefaultSQLiteURL {
		t.Errorf("expected default sqlite database, got %s %s", cfg.DatabaseType, cfg.DatabaseURL)
	}
	if cfg.ExportInterval != DefaultExportEvery {
		t.Errorf("expected default export interval, got %s", cfg.ExportInterval)
	}
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{"missing salt", map[string]string{"ACCESS_KEY_SALT": ""}, nil},
		{"postgres without url", map[string]string{"ACCESS_KEY_SALT": "s", "DATABASE_URL": ""}, []string{"-t", "postgres"}},
		{"bad port", map[string]string{"ACCESS_KEY_SALT": "s", "PORT": "abc"}, nil},
		{"bad timeout", map[string]string{"ACCESS_KEY_SALT": "s", "LLM_TIMEOUT": "soon"}, nil},
		{"negative interval", map[string]string{"ACCESS_KEY_SALT": "s"}, []string{"-export-interval", "-1h"}},
		{"unknown flag", map[string]string{"ACCESS_KEY_SALT": "s"}, []string{"-nope"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := ParseFlags(tt.args); err == nil {
				t.Error("expected error")
			}
		})
	}
}
