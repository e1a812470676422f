package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"eyecandy/internal/entitlement/models"
	id "eyecandy/pkg/domain"
	"eyecandy/pkg/platform/sentinel"
)

// PostgresStore persists entitlements in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Save(ctx context.Context, e *models.Entitlement) error {
	if e == nil {
		return fmt.Errorf("entitlement is required")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO entitlements (id, viewer_id, performer_id, kind, granted_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, uuid.UUID(e.ID), uuid.UUID(e.ViewerID), uuid.UUID(e.PerformerID), string(e.Kind), e.GrantedAt, nullTime(e.ExpiresAt))
	if err != nil {
		if isUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert entitlement: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindActive(ctx context.Context, viewerID id.ViewerID, performerID id.PerformerID, now time.Time) (*models.Entitlement, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, kind, granted_at, expires_at
		FROM entitlements
		WHERE viewer_id = $1 AND performer_id = $2
		  AND revoked_at IS NULL
		  AND granted_at <= $3
		  AND (expires_at IS NULL OR expires_at > $3)
		ORDER BY expires_at DESC NULLS FIRST
		LIMIT 1
	`, uuid.UUID(viewerID), uuid.UUID(performerID), now)

	var (
		entID     uuid.UUID
		kind      string
		grantedAt time.Time
		expiresAt sql.NullTime
	)
	if err := row.Scan(&entID, &kind, &grantedAt, &expiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find active entitlement: %w", err)
	}
	e := &models.Entitlement{
		ID:          id.EntitlementID(entID),
		ViewerID:    viewerID,
		PerformerID: performerID,
		Kind:        models.Kind(kind),
		GrantedAt:   grantedAt,
	}
	if expiresAt.Valid {
		t := expiresAt.Time
		e.ExpiresAt = &t
	}
	return e, nil
}

func (s *PostgresStore) RevokeActive(ctx context.Context, viewerID id.ViewerID, performerID id.PerformerID, now time.Time) (int, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE entitlements
		SET revoked_at = $3
		WHERE viewer_id = $1 AND performer_id = $2
		  AND revoked_at IS NULL
		  AND (expires_at IS NULL OR expires_at > $3)
	`, uuid.UUID(viewerID), uuid.UUID(performerID), now)
	if err != nil {
		return 0, fmt.Errorf("revoke entitlements: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("revoke entitlements rows: %w", err)
	}
	return int(rows), nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
