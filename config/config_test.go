package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.Game.PoolTarget != 50 || cfg.Game.MaxSlot != 75 {
		t.Errorf("game defaults = %+v", cfg.Game)
	}
	if cfg.Supplier.MaxAttempts != 3 {
		t.Errorf("supplier MaxAttempts = %d, want 3", cfg.Supplier.MaxAttempts)
	}
	if cfg.Redis.Host != "" {
		t.Errorf("redis enabled by default: %+v", cfg.Redis)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("GAME_MAX_SLOT", "50")
	t.Setenv("GAME_LANGUAGES", "Hindi, Kannada")
	t.Setenv("SUPPLIER_TIMEOUT", "10s")
	t.Setenv("SUPPLIER_MAX_ATTEMPTS", "not-a-number")

	cfg := Load()

	if cfg.Port != "9000" {
		t.Errorf("Port = %q, want 9000", cfg.Port)
	}
	if cfg.Game.MaxSlot != 50 {
		t.Errorf("MaxSlot = %d, want 50", cfg.Game.MaxSlot)
	}
	if len(cfg.Game.Languages) != 2 || cfg.Game.Languages[0] != "Hindi" || cfg.Game.Languages[1] != "Kannada" {
		t.Errorf("Languages = %v, want [Hindi Kannada]", cfg.Game.Languages)
	}
	if cfg.Supplier.Timeout != 10*time.Second {
		t.Errorf("Timeout = %v, want 10s", cfg.Supplier.Timeout)
	}
	// Unparseable values fall back to the default.
	if cfg.Supplier.MaxAttempts != 3 {
		t.Errorf("MaxAttempts = %d, want default 3", cfg.Supplier.MaxAttempts)
	}
}

func TestSplitList(t *testing.T) {
	if got := splitList(""); got != nil {
		t.Errorf("splitList(\"\") = %v, want nil", got)
	}
	got := splitList(" a ,, b ")
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("splitList = %v, want [a b]", got)
	}
}
