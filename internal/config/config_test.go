package config

import (
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8000" {
		t.Errorf("expected default port 8000, got %q", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Errorf("expected default env development, got %q", cfg.Env)
	}
	if cfg.DBMaxConns != 20 || cfg.DBMinConns != 5 {
		t.Errorf("unexpected pool defaults: max=%d min=%d", cfg.DBMaxConns, cfg.DBMinConns)
	}
	if !cfg.IsDev() {
		t.Error("expected IsDev to be true by default")
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATA_FILE", "/tmp/terms.csv")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9090" {
		t.Errorf("expected overridden port 9090, got %q", cfg.Port)
	}
	if cfg.DataFile != "/tmp/terms.csv" {
		t.Errorf("expected overridden data file, got %q", cfg.DataFile)
	}
}

func TestValidate(t *testing.T) {
	valid := &Config{Port: "8000", Env: "development", AuthSecret: "mock-abha-secret", DBMaxConns: 20, DBMinConns: 5}
	if err := valid.Validate(); err != nil {
		t.Errorf("expected valid config, got %v", err)
	}

	noPort := &Config{Env: "development", DBMaxConns: 20, DBMinConns: 5}
	if err := noPort.Validate(); err == nil {
		t.Error("expected error for empty port")
	}

	badPool := &Config{Port: "8000", DBMaxConns: 2, DBMinConns: 5}
	if err := badPool.Validate(); err == nil {
		t.Error("expected error for max conns below min conns")
	}

	prodDefault := &Config{Port: "8000", Env: "production", AuthSecret: "mock-abha-secret", DBMaxConns: 20, DBMinConns: 5}
	if err := prodDefault.Validate(); err == nil {
		t.Error("expected error for default secret in production")
	}

	prodOK := &Config{Port: "8000", Env: "production", AuthSecret: "real-secret", DBMaxConns: 20, DBMinConns: 5}
	if err := prodOK.Validate(); err != nil {
		t.Errorf("expected valid production config, got %v", err)
	}
}
