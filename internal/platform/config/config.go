package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Addr               string
	DatabaseURL        string
	JWTSecret          string
	Environment        string
	TokenTTL           time.Duration
	RunMigrations      bool
	RunSeed            bool
	SeedAdminEmail     string
	SeedAdminPassword  string
	MetricsEnabled     bool
	RateLimitPerMinute int
	CalcWorkers        int

	// Payroll schedule. Defaults follow the documented statutory figures;
	// deployments override them without touching the algorithm.
	OvertimeDailyThresholdHours float64
	OvertimeMultiplier          float64
	ExcessiveHoursThreshold     float64
	TaxMonthlyThreshold         float64
	TaxRate                     float64
	NIMonthlyLower              float64
	NIMonthlyUpper              float64
	NIRate                      float64
}

func Load() Config {
	return Config{
		Addr:               getEnv("APP_ADDR", ":8080"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		Environment:        getEnv("APP_ENV", "development"),
		TokenTTL:           getEnvDuration("TOKEN_TTL", 12*time.Hour),
		RunMigrations:      getEnvBool("RUN_MIGRATIONS", true),
		RunSeed:            getEnvBool("RUN_SEED", true),
		SeedAdminEmail:     getEnv("SEED_ADMIN_EMAIL", ""),
		SeedAdminPassword:  getEnv("SEED_ADMIN_PASSWORD", ""),
		MetricsEnabled:     getEnvBool("METRICS_ENABLED", true),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
		CalcWorkers:        getEnvInt("CALC_WORKERS", 4),

		OvertimeDailyThresholdHours: getEnvFloat("OVERTIME_DAILY_THRESHOLD_HOURS", 8.0),
		OvertimeMultiplier:          getEnvFloat("OVERTIME_MULTIPLIER", 1.5),
		ExcessiveHoursThreshold:     getEnvFloat("EXCESSIVE_HOURS_THRESHOLD", 16.0),
		TaxMonthlyThreshold:         getEnvFloat("TAX_MONTHLY_THRESHOLD", 1048.0),
		TaxRate:                     getEnvFloat("TAX_RATE", 0.20),
		NIMonthlyLower:              getEnvFloat("NI_MONTHLY_LOWER", 1048.0),
		NIMonthlyUpper:              getEnvFloat("NI_MONTHLY_UPPER", 4189.0),
		NIRate:                      getEnvFloat("NI_RATE", 0.12),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvFloat(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Environment == "production" && strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET must be set to a strong value in production")
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive")
	}
	if c.CalcWorkers <= 0 {
		return fmt.Errorf("CALC_WORKERS must be positive")
	}
	if c.OvertimeDailyThresholdHours <= 0 || c.OvertimeDailyThresholdHours > 24 {
		return fmt.Errorf("OVERTIME_DAILY_THRESHOLD_HOURS must be in (0, 24]")
	}
	if c.OvertimeMultiplier < 1 {
		return fmt.Errorf("OVERTIME_MULTIPLIER must be at least 1")
	}
	if c.ExcessiveHoursThreshold < c.OvertimeDailyThresholdHours {
		return fmt.Errorf("EXCESSIVE_HOURS_THRESHOLD must be at least the daily overtime threshold")
	}
	if c.TaxRate < 0 || c.TaxRate >= 1 || c.NIRate < 0 || c.NIRate >= 1 {
		return fmt.Errorf("TAX_RATE and NI_RATE must be in [0, 1)")
	}
	if c.NIMonthlyUpper <= c.NIMonthlyLower {
		return fmt.Errorf("NI_MONTHLY_UPPER must exceed NI_MONTHLY_LOWER")
	}
	return nil
}
