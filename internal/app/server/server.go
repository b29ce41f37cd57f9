// Package server wires configuration, the upstream client, the domain
// snapshot services and the HTTP surface into a running process.
package server

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/domain/assets"
	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/domain/leave"
	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/domain/payroll"
	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/domain/performance"
	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/domain/recruitment"
	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/domain/roles"
	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/platform/config"
	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/platform/jobs"
	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/platform/metrics"
	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/transport/http/api"
	assethandler "github.com/Devender0077/HRMS-Go-V5-sub000/internal/transport/http/handlers/assets"
	leavehandler "github.com/Devender0077/HRMS-Go-V5-sub000/internal/transport/http/handlers/leave"
	payrollhandler "github.com/Devender0077/HRMS-Go-V5-sub000/internal/transport/http/handlers/payroll"
	performancehandler "github.com/Devender0077/HRMS-Go-V5-sub000/internal/transport/http/handlers/performance"
	recruitmenthandler "github.com/Devender0077/HRMS-Go-V5-sub000/internal/transport/http/handlers/recruitment"
	rolehandler "github.com/Devender0077/HRMS-Go-V5-sub000/internal/transport/http/handlers/roles"
	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/transport/http/middleware"
	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/transport/http/shared"
	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/upstream"
)

const maxRequestBodyBytes = 1 << 20

func Run() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("dotenv load skipped: %v", err)
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	collector := metrics.New()
	gateway := upstream.New(cfg.UpstreamBaseURL, cfg.UpstreamTimeout)
	limits := shared.PageLimits{Default: cfg.DefaultPageSize, Max: cfg.MaxPageSize}

	recruitmentSvc := recruitment.NewService(gateway)
	leaveSvc := leave.NewService(gateway)
	payrollSvc := payroll.NewService(gateway)
	performanceSvc := performance.NewService(gateway)
	assetSvc := assets.NewService(gateway)
	roleSvc := roles.NewService(gateway)

	refresher := jobs.New(cfg.RefreshInterval, collector)
	refresher.Register("recruitment", recruitmentSvc)
	refresher.Register("leave", leaveSvc)
	refresher.Register("payroll", payrollSvc)
	refresher.Register("performance", performanceSvc)
	refresher.Register("assets", assetSvc)
	refresher.Register("roles", roleSvc)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	refresher.Start(ctx)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(collector))
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(maxRequestBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))
	// After Auth so the limiter can key on the authenticated subject.
	router.Use(middleware.RateLimit(cfg.RateLimitPerMin, time.Minute))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Ready when the primary upstream collection answers.
	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if _, err := gateway.FetchCollection(ctx, "/jobs", "jobs"); err != nil {
			http.Error(w, "upstream not ready", http.StatusServiceUnavailable)
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
		recruitmenthandler.NewHandler(recruitmentSvc, limits).RegisterRoutes(r)
		leavehandler.NewHandler(leaveSvc, limits).RegisterRoutes(r)
		payrollhandler.NewHandler(payrollSvc, limits).RegisterRoutes(r)
		performancehandler.NewHandler(performanceSvc, limits).RegisterRoutes(r)
		assethandler.NewHandler(assetSvc, limits).RegisterRoutes(r)
		rolehandler.NewHandler(roleSvc, limits).RegisterRoutes(r)
	})

	log.Printf("HRMS gateway listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
