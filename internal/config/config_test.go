package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.StartingCoins != 100 {
		t.Errorf("StartingCoins = %d, want 100", cfg.StartingCoins)
	}
	if cfg.CorrectDelay != 2500*time.Millisecond {
		t.Errorf("CorrectDelay = %v", cfg.CorrectDelay)
	}
	if cfg.IncorrectDelay != 3*time.Second || cfg.GateDelay != 2*time.Second {
		t.Errorf("unexpected delays %v / %v", cfg.IncorrectDelay, cfg.GateDelay)
	}
	if !cfg.GateRequired {
		t.Error("GateRequired should default to true")
	}
	if !cfg.IsDevelopment() {
		t.Error("empty FRONTEND_URL should be development")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STARTING_COINS", "3")
	t.Setenv("TICK_INTERVAL", "250ms")
	t.Setenv("GATE_REQUIRED", "false")
	t.Setenv("FRONTEND_URL", "https://quest.example.org")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.org, https://b.example.org")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != "9090" || cfg.StartingCoins != 3 {
		t.Errorf("env not applied: %+v", cfg)
	}
	if cfg.TickInterval != 250*time.Millisecond {
		t.Errorf("TickInterval = %v", cfg.TickInterval)
	}
	if cfg.GateRequired {
		t.Error("GateRequired should be false")
	}
	if cfg.IsDevelopment() {
		t.Error("public FRONTEND_URL should not be development")
	}
	origins := cfg.AllowedOrigins()
	if len(origins) != 2 || origins[1] != "https://b.example.org" {
		t.Errorf("AllowedOrigins() = %v", origins)
	}
}

func TestLoad_RejectsInvalid(t *testing.T) {
	t.Setenv("STARTING_COINS", "-1")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for negative starting coins")
	}
}

func TestConfig_AllowedOriginsFallback(t *testing.T) {
	cfg := &Config{FrontendURL: "https://quest.example.org"}
	if got := cfg.AllowedOrigins(); len(got) != 1 || got[0] != cfg.FrontendURL {
		t.Errorf("AllowedOrigins() = %v", got)
	}
	cfg = &Config{}
	if got := cfg.AllowedOrigins(); len(got) != 2 {
		t.Errorf("dev fallback = %v", got)
	}
}
