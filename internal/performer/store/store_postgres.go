package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	accessmodels "eyecandy/internal/access/models"
	"eyecandy/internal/performer/models"
	id "eyecandy/pkg/domain"
	"eyecandy/pkg/platform/sentinel"
)

// PostgresStore persists performer configuration in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// lockPerformer serializes collection mutations for one performer inside tx
// so limit checks and inserts are atomic.
func lockPerformer(ctx context.Context, tx *sql.Tx, table string, performerID id.PerformerID) error {
	_, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, table+":"+performerID.String())
	return err
}

func (s *PostgresStore) AddBlockedUser(ctx context.Context, entry *accessmodels.BlockedUserEntry, limit int) error {
	if entry == nil {
		return fmt.Errorf("block entry is required")
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin block tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if err := lockPerformer(ctx, tx, "blocked_users", entry.PerformerID); err != nil {
		return fmt.Errorf("lock performer: %w", err)
	}
	if limit > 0 {
		var count int
		if err := tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM blocked_users WHERE performer_id = $1`,
			uuid.UUID(entry.PerformerID),
		).Scan(&count); err != nil {
			return fmt.Errorf("count blocked users: %w", err)
		}
		if count >= limit {
			return fmt.Errorf("blocked users: %w", sentinel.ErrLimitReached)
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO blocked_users (performer_id, blocked_user_id, reason, notes, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`,
		uuid.UUID(entry.PerformerID),
		uuid.UUID(entry.BlockedUserID),
		string(entry.Reason),
		entry.Notes,
		entry.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("viewer already blocked: %w", sentinel.ErrConflict)
		}
		return fmt.Errorf("insert blocked user: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit block tx: %w", err)
	}
	return nil
}

func (s *PostgresStore) RemoveBlockedUser(ctx context.Context, performerID id.PerformerID, viewerID id.ViewerID) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM blocked_users WHERE performer_id = $1 AND blocked_user_id = $2`,
		uuid.UUID(performerID), uuid.UUID(viewerID),
	)
	if err != nil {
		return fmt.Errorf("delete blocked user: %w", err)
	}
	return requireRow(res, "delete blocked user")
}

func (s *PostgresStore) ListBlockedUsers(ctx context.Context, performerID id.PerformerID) ([]accessmodels.BlockedUserEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT performer_id, blocked_user_id, reason, notes, created_at
		FROM blocked_users
		WHERE performer_id = $1
		ORDER BY created_at DESC
	`, uuid.UUID(performerID))
	if err != nil {
		return nil, fmt.Errorf("list blocked users: %w", err)
	}
	defer rows.Close()

	out := []accessmodels.BlockedUserEntry{}
	for rows.Next() {
		var (
			entry             accessmodels.BlockedUserEntry
			performer, viewer uuid.UUID
			reason            string
		)
		if err := rows.Scan(&performer, &viewer, &reason, &entry.Notes, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan blocked user: %w", err)
		}
		entry.PerformerID = id.PerformerID(performer)
		entry.BlockedUserID = id.ViewerID(viewer)
		entry.Reason = accessmodels.BlockReason(reason)
		out = append(out, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate blocked users: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) BlockedViewerIDs(ctx context.Context, performerID id.PerformerID) (map[id.ViewerID]struct{}, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT blocked_user_id FROM blocked_users WHERE performer_id = $1`,
		uuid.UUID(performerID),
	)
	if err != nil {
		return nil, fmt.Errorf("load blocked viewers: %w", err)
	}
	defer rows.Close()

	out := make(map[id.ViewerID]struct{})
	for rows.Next() {
		var viewer uuid.UUID
		if err := rows.Scan(&viewer); err != nil {
			return nil, fmt.Errorf("scan blocked viewer: %w", err)
		}
		out[id.ViewerID(viewer)] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate blocked viewers: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) AddLocationRule(ctx context.Context, rule *accessmodels.LocationRule, limit int) error {
	if rule == nil {
		return fmt.Errorf("location rule is required")
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin rule tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if err := lockPerformer(ctx, tx, "location_rules", rule.PerformerID); err != nil {
		return fmt.Errorf("lock performer: %w", err)
	}
	if limit > 0 {
		var count int
		if err := tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM location_rules WHERE performer_id = $1`,
			uuid.UUID(rule.PerformerID),
		).Scan(&count); err != nil {
			return fmt.Errorf("count location rules: %w", err)
		}
		if count >= limit {
			return fmt.Errorf("location rules: %w", sentinel.ErrLimitReached)
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO location_rules (id, performer_id, type, value, normalized_value, is_allowed, subscription_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		uuid.UUID(rule.ID),
		uuid.UUID(rule.PerformerID),
		string(rule.Type),
		rule.Value,
		accessmodels.NormalizeLocationValue(rule.Value),
		rule.IsAllowed,
		string(rule.SubscriptionType),
		rule.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("duplicate location rule: %w", sentinel.ErrConflict)
		}
		return fmt.Errorf("insert location rule: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit rule tx: %w", err)
	}
	return nil
}

func (s *PostgresStore) RemoveLocationRule(ctx context.Context, performerID id.PerformerID, ruleID id.RuleID) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM location_rules WHERE performer_id = $1 AND id = $2`,
		uuid.UUID(performerID), uuid.UUID(ruleID),
	)
	if err != nil {
		return fmt.Errorf("delete location rule: %w", err)
	}
	return requireRow(res, "delete location rule")
}

// ListLocationRules returns rules in authored order.
func (s *PostgresStore) ListLocationRules(ctx context.Context, performerID id.PerformerID) ([]accessmodels.LocationRule, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, performer_id, type, value, is_allowed, subscription_type, created_at
		FROM location_rules
		WHERE performer_id = $1
		ORDER BY seq
	`, uuid.UUID(performerID))
	if err != nil {
		return nil, fmt.Errorf("list location rules: %w", err)
	}
	defer rows.Close()

	out := []accessmodels.LocationRule{}
	for rows.Next() {
		var (
			rule                   accessmodels.LocationRule
			ruleID, performer      uuid.UUID
			ruleType, subscription string
		)
		if err := rows.Scan(&ruleID, &performer, &ruleType, &rule.Value, &rule.IsAllowed, &subscription, &rule.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan location rule: %w", err)
		}
		rule.ID = id.RuleID(ruleID)
		rule.PerformerID = id.PerformerID(performer)
		rule.Type = accessmodels.LocationType(ruleType)
		rule.SubscriptionType = accessmodels.SubscriptionType(subscription)
		out = append(out, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate location rules: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) FindTeaserPolicy(ctx context.Context, performerID id.PerformerID) (*accessmodels.TeaserPolicy, error) {
	var policy accessmodels.TeaserPolicy
	err := s.db.QueryRowContext(ctx, `
		SELECT enabled, duration_seconds, expiry_message, updated_at
		FROM teaser_policies
		WHERE performer_id = $1
	`, uuid.UUID(performerID)).Scan(&policy.Enabled, &policy.DurationSeconds, &policy.ExpiryMessage, &policy.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find teaser policy: %w", err)
	}
	return &policy, nil
}

func (s *PostgresStore) SaveTeaserPolicy(ctx context.Context, performerID id.PerformerID, policy *accessmodels.TeaserPolicy) error {
	if policy == nil {
		return fmt.Errorf("teaser policy is required")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO teaser_policies (performer_id, enabled, duration_seconds, expiry_message, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (performer_id) DO UPDATE
		SET enabled = EXCLUDED.enabled,
			duration_seconds = EXCLUDED.duration_seconds,
			expiry_message = EXCLUDED.expiry_message,
			updated_at = EXCLUDED.updated_at
	`,
		uuid.UUID(performerID),
		policy.Enabled,
		policy.DurationSeconds,
		policy.ExpiryMessage,
		policy.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save teaser policy: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindSettings(ctx context.Context, performerID id.PerformerID) (*models.AccessSettings, error) {
	var subscription string
	settings := &models.AccessSettings{PerformerID: performerID}
	err := s.db.QueryRowContext(ctx, `
		SELECT default_subscription_type, updated_at
		FROM performer_settings
		WHERE performer_id = $1
	`, uuid.UUID(performerID)).Scan(&subscription, &settings.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find performer settings: %w", err)
	}
	settings.DefaultSubscriptionType = accessmodels.SubscriptionType(subscription)
	return settings, nil
}

func (s *PostgresStore) SaveSettings(ctx context.Context, settings *models.AccessSettings) error {
	if settings == nil {
		return fmt.Errorf("settings are required")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO performer_settings (performer_id, default_subscription_type, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (performer_id) DO UPDATE
		SET default_subscription_type = EXCLUDED.default_subscription_type,
			updated_at = EXCLUDED.updated_at
	`,
		uuid.UUID(settings.PerformerID),
		string(settings.DefaultSubscriptionType),
		settings.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save performer settings: %w", err)
	}
	return nil
}

func requireRow(res sql.Result, action string) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows: %w", action, err)
	}
	if rows == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
