package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Addr != ":8080" {
		t.Fatalf("expected default addr :8080, got %s", cfg.Addr)
	}
	if cfg.TokenTTL != 12*time.Hour {
		t.Fatalf("expected default TTL 12h, got %v", cfg.TokenTTL)
	}
	if cfg.OvertimeDailyThresholdHours != 8.0 || cfg.OvertimeMultiplier != 1.5 {
		t.Fatalf("unexpected overtime defaults %v / %v", cfg.OvertimeDailyThresholdHours, cfg.OvertimeMultiplier)
	}
	if cfg.TaxMonthlyThreshold != 1048.0 || cfg.NIMonthlyUpper != 4189.0 {
		t.Fatalf("unexpected deduction defaults %v / %v", cfg.TaxMonthlyThreshold, cfg.NIMonthlyUpper)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("OVERTIME_DAILY_THRESHOLD_HOURS", "7.5")
	t.Setenv("CALC_WORKERS", "16")
	t.Setenv("TOKEN_TTL", "30m")

	cfg := Load()
	if cfg.OvertimeDailyThresholdHours != 7.5 {
		t.Fatalf("expected override 7.5, got %v", cfg.OvertimeDailyThresholdHours)
	}
	if cfg.CalcWorkers != 16 {
		t.Fatalf("expected 16 workers, got %d", cfg.CalcWorkers)
	}
	if cfg.TokenTTL != 30*time.Minute {
		t.Fatalf("expected 30m TTL, got %v", cfg.TokenTTL)
	}
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("CALC_WORKERS", "many")
	t.Setenv("OVERTIME_MULTIPLIER", "x1.5")

	cfg := Load()
	if cfg.CalcWorkers != 4 {
		t.Fatalf("expected fallback 4, got %d", cfg.CalcWorkers)
	}
	if cfg.OvertimeMultiplier != 1.5 {
		t.Fatalf("expected fallback 1.5, got %v", cfg.OvertimeMultiplier)
	}
}

func TestValidate(t *testing.T) {
	base := func() Config {
		cfg := Load()
		cfg.DatabaseURL = "postgres://localhost:5432/timepay"
		return cfg
	}

	if err := base().Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}

	cfg := base()
	cfg.DatabaseURL = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing DATABASE_URL")
	}

	cfg = base()
	cfg.Environment = "production"
	cfg.JWTSecret = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing production JWT secret")
	}

	cfg = base()
	cfg.OvertimeDailyThresholdHours = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for zero overtime threshold")
	}

	cfg = base()
	cfg.ExcessiveHoursThreshold = 4
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when excessive threshold is below the overtime threshold")
	}

	cfg = base()
	cfg.NIMonthlyUpper = cfg.NIMonthlyLower
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for inverted NI band")
	}
}
