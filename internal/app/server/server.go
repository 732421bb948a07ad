package server

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"

	"timepay/internal/domain/auth"
	"timepay/internal/domain/payroll"
	"timepay/internal/domain/roster"
	"timepay/internal/domain/timeclock"
	"timepay/internal/platform/config"
	"timepay/internal/platform/db"
	"timepay/internal/platform/metrics"
	"timepay/internal/transport/http/api"
	authhandler "timepay/internal/transport/http/handlers/auth"
	payrollhandler "timepay/internal/transport/http/handlers/payroll"
	rosterhandler "timepay/internal/transport/http/handlers/roster"
	timeclockhandler "timepay/internal/transport/http/handlers/timeclock"
	"timepay/internal/transport/http/middleware"
)

func Run() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		slog.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, "migrations"); err != nil {
			slog.Error("migrations failed", "err", err)
			os.Exit(1)
		}
	}

	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			slog.Error("seed failed", "err", err)
			os.Exit(1)
		}
	}

	collector := metrics.New()
	rates := payroll.Rates{
		DailyThresholdHours:     cfg.OvertimeDailyThresholdHours,
		OvertimeMultiplier:      cfg.OvertimeMultiplier,
		ExcessiveHoursThreshold: cfg.ExcessiveHoursThreshold,
		TaxMonthlyThreshold:     cfg.TaxMonthlyThreshold,
		TaxRate:                 cfg.TaxRate,
		NIMonthlyLower:          cfg.NIMonthlyLower,
		NIMonthlyUpper:          cfg.NIMonthlyUpper,
		NIRate:                  cfg.NIRate,
	}

	payrollService := payroll.NewService(payroll.NewStore(pool), rates, cfg.CalcWorkers)
	timeclockService := timeclock.NewService(timeclock.NewStore(pool))
	authService := auth.NewService(pool, cfg.JWTSecret, cfg.TokenTTL)
	rosterStore := roster.NewStore(pool)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(collector))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Auth(cfg.JWTSecret))
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if cfg.MetricsEnabled {
		router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			api.Success(w, collector.Snapshot(), middleware.GetRequestID(r.Context()))
		})
	}

	router.Route("/api/v1", func(r chi.Router) {
		authHandler := authhandler.NewHandler(authService)
		r.Post("/auth/login", authHandler.HandleLogin)

		rosterHandler := rosterhandler.NewHandler(rosterStore)
		rosterHandler.RegisterRoutes(r)

		timeclockHandler := timeclockhandler.NewHandler(timeclockService, collector)
		timeclockHandler.RegisterRoutes(r)

		payrollHandler := payrollhandler.NewHandler(payrollService, collector)
		payrollHandler.RegisterRoutes(r)
	})

	slog.Info("timepay server listening", "addr", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		slog.Error("server failed", "err", err)
		os.Exit(1)
	}
}
