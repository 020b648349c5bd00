package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	unsetCoreEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.BindAddr != ":8080" {
		t.Fatalf("BindAddr = %q, want %q", cfg.BindAddr, ":8080")
	}
	if cfg.InferenceMode != "auto" {
		t.Fatalf("InferenceMode = %q, want %q", cfg.InferenceMode, "auto")
	}
	if cfg.InferenceURL != "" {
		t.Fatalf("InferenceURL = %q, want empty default", cfg.InferenceURL)
	}
	if cfg.InferenceTimeout != 5*time.Second {
		t.Fatalf("InferenceTimeout = %v, want 5s", cfg.InferenceTimeout)
	}
	if cfg.InferenceMaxLength != 200 || cfg.InferenceTemperature != 0.7 || !cfg.InferenceDoSample {
		t.Fatalf("inference parameters = %d/%v/%v", cfg.InferenceMaxLength, cfg.InferenceTemperature, cfg.InferenceDoSample)
	}
	if cfg.DefaultUserID != "anonymous" {
		t.Fatalf("DefaultUserID = %q, want anonymous", cfg.DefaultUserID)
	}
	if !cfg.HistoryRedactPII || cfg.HistoryRecordRemote {
		t.Fatalf("history flags = redact:%v record_remote:%v", cfg.HistoryRedactPII, cfg.HistoryRecordRemote)
	}
	if cfg.HistoryIdleTTL != 24*time.Hour {
		t.Fatalf("HistoryIdleTTL = %v, want 24h", cfg.HistoryIdleTTL)
	}
}

func TestLoadUsesExplicitValues(t *testing.T) {
	unsetCoreEnv(t)
	t.Setenv("INFERENCE_MODE", " HTTP ")
	t.Setenv("INFERENCE_URL", "http://localhost:7777/generate")
	t.Setenv("INFERENCE_TIMEOUT", "2s")
	t.Setenv("HISTORY_RECORD_REMOTE", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.InferenceMode != "http" {
		t.Fatalf("InferenceMode = %q, want http", cfg.InferenceMode)
	}
	if cfg.InferenceURL != "http://localhost:7777/generate" {
		t.Fatalf("InferenceURL = %q, want explicit value", cfg.InferenceURL)
	}
	if cfg.InferenceTimeout != 2*time.Second {
		t.Fatalf("InferenceTimeout = %v, want 2s", cfg.InferenceTimeout)
	}
	if !cfg.HistoryRecordRemote {
		t.Fatalf("HistoryRecordRemote = false, want true")
	}
}

func TestLoadReadsEnvFile(t *testing.T) {
	unsetCoreEnv(t)
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("APP_BIND_ADDR=:9191\nAPP_DEFAULT_USER_ID=guest\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.BindAddr != ":9191" || cfg.DefaultUserID != "guest" {
		t.Fatalf("cfg = %+v, want values from env file", cfg)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"INFERENCE_MODE":           "grpc",
		"INFERENCE_TIMEOUT":        "0s",
		"INFERENCE_MAX_LENGTH":     "0",
		"INFERENCE_TEMPERATURE":    "3.5",
		"HISTORY_JANITOR_INTERVAL": "10ms",
		"APP_SHUTDOWN_TIMEOUT":     "soon",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			unsetCoreEnv(t)
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Fatalf("Load() with %s=%q expected error", key, value)
			}
		})
	}
}

func TestLoadHTTPModeRequiresURL(t *testing.T) {
	unsetCoreEnv(t)
	t.Setenv("INFERENCE_MODE", "http")
	if _, err := Load(); err == nil {
		t.Fatalf("Load() expected error when INFERENCE_URL is missing")
	}
}

// unsetCoreEnv removes every key Load reads. t.Setenv registers the restore.
func unsetCoreEnv(t *testing.T) {
	t.Helper()
	keys := []string{
		"APP_BIND_ADDR",
		"APP_SHUTDOWN_TIMEOUT",
		"APP_METRICS_NAMESPACE",
		"APP_LOG_LEVEL",
		"APP_ALLOW_ANY_ORIGIN",
		"APP_DEFAULT_USER_ID",
		"INFERENCE_MODE",
		"INFERENCE_URL",
		"INFERENCE_API_TOKEN",
		"INFERENCE_TIMEOUT",
		"INFERENCE_MAX_LENGTH",
		"INFERENCE_TEMPERATURE",
		"INFERENCE_DO_SAMPLE",
		"DATABASE_URL",
		"HISTORY_IDLE_TTL",
		"HISTORY_JANITOR_INTERVAL",
		"HISTORY_REDACT_PII",
		"HISTORY_RECORD_REMOTE",
	}
	for _, key := range keys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}
