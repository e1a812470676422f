package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	accessservice "eyecandy/internal/access/service"
	accessstore "eyecandy/internal/access/store"
	"eyecandy/internal/audit"
	entitlementservice "eyecandy/internal/entitlement/service"
	entitlementstore "eyecandy/internal/entitlement/store"
	performerservice "eyecandy/internal/performer/service"
	performerstore "eyecandy/internal/performer/store"
	"eyecandy/internal/platform/config"
	"eyecandy/internal/platform/database"
	"eyecandy/internal/platform/health"
	"eyecandy/internal/platform/kafka/producer"
	"eyecandy/internal/platform/redis"
	"eyecandy/migrations"
)

// infrastructure holds the optional external connections. Each is nil when
// its URL is not configured, in which case the in-memory store is used.
type infrastructure struct {
	db       *database.Pool
	redis    *redis.Client
	producer *producer.Producer
}

func connect(ctx context.Context, cfg config.Server, log *slog.Logger) (*infrastructure, error) {
	infra := &infrastructure{}

	db, err := database.New(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if db != nil {
		applied, err := database.Migrate(ctx, db.DB(), migrations.FS)
		if err != nil {
			db.Close() //nolint:errcheck // best-effort cleanup on init failure
			return nil, fmt.Errorf("migrate database: %w", err)
		}
		log.Info("database connected", "migrations_applied", applied)
		infra.db = db
	}

	rdb, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		infra.close(log)
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	if rdb != nil {
		log.Info("redis connected")
		infra.redis = rdb
	}

	if cfg.Kafka.Brokers != "" {
		p, err := producer.New(cfg.Kafka, log)
		if err != nil {
			infra.close(log)
			return nil, fmt.Errorf("connect kafka: %w", err)
		}
		log.Info("kafka producer ready", "audit_topic", cfg.Kafka.AuditTopic)
		infra.producer = p
	}

	return infra, nil
}

func (i *infrastructure) registerChecks(h *health.Handler) {
	if i.db != nil {
		h.RegisterCheck("postgres", i.db.Health)
	}
	if i.redis != nil {
		h.RegisterCheck("redis", i.redis.Health)
	}
	if i.producer != nil {
		h.RegisterCheck("kafka", i.producer.Ping)
	}
}

func (i *infrastructure) close(log *slog.Logger) {
	if i.producer != nil {
		if err := i.producer.Close(); err != nil {
			log.Error("kafka producer close failed", "error", err)
		}
	}
	if i.redis != nil {
		if err := i.redis.Close(); err != nil {
			log.Error("redis close failed", "error", err)
		}
	}
	if i.db != nil {
		if err := i.db.Close(); err != nil {
			log.Error("database close failed", "error", err)
		}
	}
}

// stores selects Postgres/Redis implementations when connected and falls back
// to the in-memory ones otherwise.
type stores struct {
	performer    performerStore
	entitlements entitlementservice.Store
	teasers      accessservice.TeaserStore
	audit        audit.Store
}

type performerStore interface {
	performerservice.BlockStore
	performerservice.RuleStore
	performerservice.PolicyStore
}

func (i *infrastructure) stores(cfg config.Server) stores {
	s := stores{}
	if i.db != nil {
		s.performer = performerstore.NewPostgres(i.db.DB())
		s.entitlements = entitlementstore.NewPostgres(i.db.DB())
		s.audit = audit.NewPostgresStore(i.db.DB())
	} else {
		s.performer = performerstore.NewInMemoryStore()
		s.entitlements = entitlementstore.NewInMemoryStore()
		s.audit = audit.NewInMemoryStore()
	}
	if i.redis != nil {
		s.teasers = accessstore.NewRedis(i.redis.Client, cfg.Teaser.Retention)
	} else {
		s.teasers = accessstore.NewMemory(cfg.Teaser.Retention)
	}
	return s
}

// runEvery calls fn on every tick until ctx is cancelled.
func runEvery(ctx context.Context, interval time.Duration, fn func()) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fn()
		}
	}
}
