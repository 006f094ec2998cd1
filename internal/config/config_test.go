package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Log.Level != "info" {
		t.Fatalf("log level: got %q", cfg.Log.Level)
	}
	if cfg.Forecast.Strategy != "heuristic" {
		t.Fatalf("strategy: got %q", cfg.Forecast.Strategy)
	}
	if cfg.Forecast.MoveScale != 0.6 || cfg.Forecast.P50HalfWidth != 0.35 || cfg.Forecast.P80HalfWidth != 0.8 {
		t.Fatalf("forecast params: %+v", cfg.Forecast)
	}
	if cfg.NLP.Decay.NewsHalfLifeHours != 6.0 {
		t.Fatalf("half-life: got %v", cfg.NLP.Decay.NewsHalfLifeHours)
	}
	if len(cfg.Forecast.Instruments) != 2 || cfg.Forecast.Instruments[0] != "SPY" {
		t.Fatalf("instruments: %v", cfg.Forecast.Instruments)
	}
	// Source lists have no defaults: absent lists mean those source
	// classes contribute only their fallback Signal.
	if len(cfg.Sources.Reddit.Subreddits) != 0 || len(cfg.Sources.News) != 0 {
		t.Fatalf("expected no default communities or feeds")
	}
	if cfg.Sources.Trends.Term != "inflation" {
		t.Fatalf("trends term: got %q", cfg.Sources.Trends.Term)
	}
	if cfg.Model.ArtifactPath != "models/model.json" {
		t.Fatalf("artifact path: got %q", cfg.Model.ArtifactPath)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
log:
  level: debug
sources:
  trends:
    term: recession
forecast:
  strategy: model
  instruments: [QQQ]
nlp:
  decay:
    news_half_life_hours: 12
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("log level: got %q", cfg.Log.Level)
	}
	if cfg.Forecast.Strategy != "model" {
		t.Fatalf("strategy: got %q", cfg.Forecast.Strategy)
	}
	if len(cfg.Forecast.Instruments) != 1 || cfg.Forecast.Instruments[0] != "QQQ" {
		t.Fatalf("instruments: %v", cfg.Forecast.Instruments)
	}
	if cfg.NLP.Decay.NewsHalfLifeHours != 12 {
		t.Fatalf("half-life: got %v", cfg.NLP.Decay.NewsHalfLifeHours)
	}
	// Unset fields still pick up defaults.
	if cfg.Forecast.MoveScale != 0.6 {
		t.Fatalf("move scale default: got %v", cfg.Forecast.MoveScale)
	}
}

func TestLoadRejectsUnknownStrategy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("forecast:\n  strategy: oracle\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected validation error for unknown strategy")
	}
}

func TestLoadRejectsBadFeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "sources:\n  news:\n    - name: broken\n      url: not-a-url\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected validation error for bad feed url")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("FRED_API_KEY", "env-key")
	t.Setenv("REDIS_URL", "redis://cache:6379")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Sources.FRED.APIKey != "env-key" {
		t.Fatalf("fred key: got %q", cfg.Sources.FRED.APIKey)
	}
	if cfg.Redis.URL != "redis://cache:6379" {
		t.Fatalf("redis url: got %q", cfg.Redis.URL)
	}
	if cfg.OpenAI.APIKey != "sk-test" {
		t.Fatalf("openai key: got %q", cfg.OpenAI.APIKey)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
