package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SLOT_STEP_MINUTES", "")
	t.Setenv("ENV", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SlotStepMinutes != 30 {
		t.Fatalf("slot step = %d, want 30", cfg.SlotStepMinutes)
	}
	if cfg.IdempotencyTTL != 24*time.Hour {
		t.Fatalf("idempotency ttl = %v, want 24h", cfg.IdempotencyTTL)
	}
	if cfg.Addr() != ":"+cfg.ServerPort {
		t.Fatalf("addr = %q", cfg.Addr())
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SLOT_STEP_MINUTES", "15")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ServerPort != "9090" || cfg.SlotStepMinutes != 15 {
		t.Fatalf("env not applied: %+v", cfg)
	}
	brokers := cfg.Brokers()
	if len(brokers) != 2 || brokers[0] != "k1:9092" || brokers[1] != "k2:9092" {
		t.Fatalf("brokers = %v", brokers)
	}
}

func TestLoad_RejectsBadStep(t *testing.T) {
	t.Setenv("SLOT_STEP_MINUTES", "0")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for zero slot step")
	}
}

func TestLoad_ProductionNeedsSecret(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for default secret in production")
	}
}
