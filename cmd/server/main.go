package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"eyecandy/internal/access/adapters"
	accesshandler "eyecandy/internal/access/handler"
	accessmetrics "eyecandy/internal/access/metrics"
	accessservice "eyecandy/internal/access/service"
	"eyecandy/internal/audit"
	entitlementhandler "eyecandy/internal/entitlement/handler"
	entitlementmetrics "eyecandy/internal/entitlement/metrics"
	entitlementservice "eyecandy/internal/entitlement/service"
	"eyecandy/internal/geolocation"
	jwttoken "eyecandy/internal/jwt_token"
	performerhandler "eyecandy/internal/performer/handler"
	performermetrics "eyecandy/internal/performer/metrics"
	performerservice "eyecandy/internal/performer/service"
	"eyecandy/internal/platform/config"
	"eyecandy/internal/platform/health"
	"eyecandy/internal/platform/logger"
	"eyecandy/internal/platform/tracing"
	adminmw "eyecandy/pkg/platform/middleware/admin"
	"eyecandy/pkg/platform/middleware/auth"
	"eyecandy/pkg/platform/middleware/device"
	"eyecandy/pkg/platform/middleware/metadata"
	"eyecandy/pkg/platform/middleware/request"
	"eyecandy/pkg/platform/middleware/requesttime"
	"eyecandy/pkg/platform/validation"
)

const (
	requestTimeout  = 30 * time.Second
	auditBuffer     = 1024
	shutdownTimeout = 10 * time.Second
	deviceCookie    = "ec_device"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel)

	log.Info("initializing eyecandy",
		"addr", cfg.Addr,
		"environment", cfg.Environment,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	provider, err := tracing.NewProvider(ctx, cfg.Tracing, cfg.Environment, log)
	if err != nil {
		log.Error("tracing setup failed", "error", err)
		os.Exit(1)
	}

	infra, err := connect(ctx, cfg, log)
	if err != nil {
		log.Error("infrastructure setup failed", "error", err)
		os.Exit(1)
	}
	st := infra.stores(cfg)

	var publisherOpts []audit.PublisherOption
	publisherOpts = append(publisherOpts,
		audit.WithAsyncBuffer(auditBuffer),
		audit.WithPublisherLogger(log),
	)
	if infra.producer != nil {
		publisherOpts = append(publisherOpts, audit.WithSink(audit.NewKafkaSink(infra.producer, cfg.Kafka.AuditTopic)))
	}
	auditPublisher := audit.NewPublisher(st.audit, publisherOpts...)

	reg := prometheus.DefaultRegisterer
	tracer := tracing.NewOTel("eyecandy")

	geo := geolocation.New(cfg.Geolocation,
		geolocation.WithLogger(log),
		geolocation.WithMetrics(geolocation.NewMetrics(reg)),
		geolocation.WithTracer(tracer),
	)

	performerSvc := performerservice.New(st.performer, st.performer, st.performer,
		performerservice.WithLogger(log),
		performerservice.WithAuditPublisher(auditPublisher),
		performerservice.WithMetrics(performermetrics.New(reg)),
	)
	entitlementSvc := entitlementservice.New(st.entitlements,
		entitlementservice.WithLogger(log),
		entitlementservice.WithAuditPublisher(auditPublisher),
		entitlementservice.WithMetrics(entitlementmetrics.New(reg)),
	)
	accessSvc := accessservice.New(
		adapters.NewLocationAdapter(geo),
		adapters.NewRulesAdapter(performerSvc),
		adapters.NewEntitlementAdapter(entitlementSvc),
		st.teasers,
		accessservice.WithLogger(log),
		accessservice.WithAuditPublisher(auditPublisher),
		accessservice.WithMetrics(accessmetrics.New(reg)),
		accessservice.WithTracer(tracer),
	)

	trustedProxies, err := metadata.ParseTrustedProxies(cfg.TrustedProxies)
	if err != nil {
		log.Error("invalid trusted proxies", "error", err)
		os.Exit(1)
	}

	healthHandler := health.New(cfg.Environment)
	healthHandler.RegisterCheck("geolocation", geo.Ping)
	infra.registerChecks(healthHandler)

	jwtValidator := jwttoken.NewJWTServiceAdapter(
		jwttoken.NewJWTService(cfg.JWTSigningKey, cfg.JWTIssuer, cfg.JWTAudience, cfg.TokenTTL),
	)

	r := chi.NewRouter()
	r.Use(request.Recovery(log))
	r.Use(request.RequestID)
	r.Use(request.Tracing("eyecandy"))
	r.Use(requesttime.Middleware)
	r.Use(metadata.NewMiddleware(metadata.Config{TrustedProxies: trustedProxies}).Handler)
	r.Use(device.Device(device.Config{CookieName: deviceCookie}))
	r.Use(request.Logger(log))
	r.Use(request.Latency(request.NewMetrics()))
	r.Use(request.Timeout(requestTimeout))
	r.Use(request.ContentTypeJSON)
	r.Use(request.BodyLimit(validation.MaxBodySize))

	healthHandler.Register(r)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(auth.OptionalAuth(jwtValidator, log))
		accesshandler.New(accessSvc, log).Register(r)
	})
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(jwtValidator, log))
		r.Use(auth.RequireViewerType(auth.ViewerTypePerformer, log))
		performerhandler.New(performerSvc, st.audit, log).Register(r)
	})
	r.Group(func(r chi.Router) {
		r.Use(adminmw.RequireAdminToken(cfg.AdminToken, log))
		entitlementhandler.New(entitlementSvc, log).Register(r)
	})

	go runEvery(ctx, time.Minute, geo.PurgeCache)
	if infra.redis != nil {
		go infra.redis.RunPoolStatsRecorder(ctx, 15*time.Second)
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      requestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Info("starting http server", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down server gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}

	accessSvc.Close()
	auditPublisher.Close()
	infra.close(log)
	if err := provider.Shutdown(shutdownCtx); err != nil {
		log.Error("tracing shutdown failed", "error", err)
	}

	log.Info("server stopped")
}
