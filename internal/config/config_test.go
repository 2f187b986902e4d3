package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load with missing file: %v", err)
	}
	if cfg.Pipeline.Workers != 20 {
		t.Errorf("Workers = %d, want 20", cfg.Pipeline.Workers)
	}
	if cfg.Pipeline.ProgressEvery != 50 {
		t.Errorf("ProgressEvery = %d, want 50", cfg.Pipeline.ProgressEvery)
	}
	if cfg.Pipeline.CandleLength != 210 {
		t.Errorf("CandleLength = %d, want 210", cfg.Pipeline.CandleLength)
	}
	if cfg.Pipeline.IndicatorSet != "full" {
		t.Errorf("IndicatorSet = %q, want full", cfg.Pipeline.IndicatorSet)
	}
	if cfg.DataSource.IndexSymbol != "VNINDEX" {
		t.Errorf("IndexSymbol = %q, want VNINDEX", cfg.DataSource.IndexSymbol)
	}
	if cfg.Output.TechnicalFile != "technical_analysis.arrow" {
		t.Errorf("TechnicalFile = %q", cfg.Output.TechnicalFile)
	}
	if cfg.Schedule.DailyCron == "" {
		t.Error("DailyCron default missing")
	}
}

func TestLoadYAMLAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
data_source:
  base_url: https://api.example.com/v1
  listings_url: https://api.example.com/listings
pipeline:
  workers: 8
  indicator_set: core
output:
  dir: /tmp/out
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PIPELINE_WORKERS", "4")
	t.Setenv("OUTPUT_DIR", "/tmp/override")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataSource.BaseURL != "https://api.example.com/v1" {
		t.Errorf("BaseURL = %q", cfg.DataSource.BaseURL)
	}
	if cfg.Pipeline.Workers != 4 {
		t.Errorf("Workers = %d, want env override 4", cfg.Pipeline.Workers)
	}
	if cfg.Pipeline.IndicatorSet != "core" {
		t.Errorf("IndicatorSet = %q, want core", cfg.Pipeline.IndicatorSet)
	}
	if cfg.Output.Dir != "/tmp/override" {
		t.Errorf("Output.Dir = %q, want env override", cfg.Output.Dir)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestValidateRequiredFields(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation failure without base_url")
	}
	cfg.DataSource.BaseURL = "https://api.example.com/v1"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation failure without listings_url")
	}
	cfg.DataSource.ListingsURL = "https://api.example.com/listings"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}
