// Package storage persists strategy recommendations in SQLite. It
// implements the strategy.RecommendationStore interface; the engines never
// talk to the database directly.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
	"github.com/shopspring/decimal"

	"github.com/ozplan/ozplan/internal/domain"
)

// PendingTTL is how long a PENDING recommendation lives before the sweeper
// expires it.
const PendingTTL = 30 * 24 * time.Hour

const schema = `
CREATE TABLE IF NOT EXISTS recommendations (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id TEXT NOT NULL,
	semantic_key TEXT NOT NULL,
	category TEXT NOT NULL,
	severity TEXT NOT NULL,
	title TEXT NOT NULL,
	summary TEXT NOT NULL,
	detail TEXT NOT NULL,
	score TEXT NOT NULL,
	confidence TEXT NOT NULL,
	projected_benefit TEXT NOT NULL,
	affected_entities TEXT NOT NULL,
	action_steps TEXT NOT NULL,
	status TEXT NOT NULL DEFAULT 'PENDING',
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL,
	accepted_at TIMESTAMP,
	dismissed_at TIMESTAMP,
	notes TEXT NOT NULL DEFAULT '',
	dismiss_reason TEXT NOT NULL DEFAULT ''
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_recommendations_pending_key
	ON recommendations(user_id, semantic_key) WHERE status = 'PENDING';
CREATE INDEX IF NOT EXISTS idx_recommendations_user_status
	ON recommendations(user_id, status);
`

// SQLiteStore is the SQLite-backed recommendation store.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStore opens (creating if needed) the recommendation database.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("dbPath is required")
	}
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &SQLiteStore{db: db, dbPath: dbPath}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveRecommendation inserts a recommendation, replacing any existing
// PENDING row for the same user and semantic key (the store's uniqueness
// guarantee). The generated id is written back to rec.
func (s *SQLiteStore) SaveRecommendation(ctx context.Context, rec *domain.StrategyRecommendation) error {
	if rec == nil {
		return fmt.Errorf("recommendation is required")
	}
	entities, err := json.Marshal(rec.Finding.AffectedEntities)
	if err != nil {
		return fmt.Errorf("failed to encode affected entities: %w", err)
	}
	steps, err := json.Marshal(rec.Finding.ActionSteps)
	if err != nil {
		return fmt.Errorf("failed to encode action steps: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM recommendations
		WHERE user_id = ? AND semantic_key = ? AND status = 'PENDING'
	`, rec.UserID, rec.SemanticKey); err != nil {
		return fmt.Errorf("failed to clear superseded pending row: %w", err)
	}

	result, err := tx.ExecContext(ctx, `
		INSERT INTO recommendations (
			user_id, semantic_key, category, severity, title, summary, detail,
			score, confidence, projected_benefit, affected_entities, action_steps,
			status, created_at, updated_at, notes, dismiss_reason
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, '', '')
	`,
		rec.UserID,
		rec.SemanticKey,
		string(rec.Finding.Category),
		string(rec.Finding.Severity),
		rec.Finding.Title,
		rec.Finding.Summary,
		rec.Finding.Detail,
		rec.Finding.Score.String(),
		rec.Finding.Confidence.String(),
		rec.Finding.ProjectedBenefit.String(),
		string(entities),
		string(steps),
		string(rec.Status),
		rec.CreatedAt,
		rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save recommendation: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read inserted id: %w", err)
	}
	rec.ID = id

	return tx.Commit()
}

// FreshPendingKeys returns the semantic keys of PENDING recommendations
// created at or after the given time.
func (s *SQLiteStore) FreshPendingKeys(ctx context.Context, userID string, since time.Time) (map[string]bool, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT semantic_key FROM recommendations
		WHERE user_id = ? AND status = 'PENDING' AND created_at >= ?
	`, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query fresh keys: %w", err)
	}
	defer func() { _ = rows.Close() }()

	keys := make(map[string]bool)
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan semantic key: %w", err)
		}
		keys[key] = true
	}
	return keys, rows.Err()
}

// ExpirePendingForUser marks every PENDING recommendation for a user as
// EXPIRED. Used when a force-refresh supersedes the current set.
func (s *SQLiteStore) ExpirePendingForUser(ctx context.Context, userID string) (int64, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE recommendations SET status = 'EXPIRED', updated_at = ?
		WHERE user_id = ? AND status = 'PENDING'
	`, time.Now(), userID)
	if err != nil {
		return 0, fmt.Errorf("failed to expire pending recommendations: %w", err)
	}
	return result.RowsAffected()
}

// ExpireStale moves PENDING recommendations older than PendingTTL to
// EXPIRED across all users. The sweeper calls this on a schedule.
func (s *SQLiteStore) ExpireStale(ctx context.Context) (int64, error) {
	cutoff := time.Now().Add(-PendingTTL)
	result, err := s.db.ExecContext(ctx, `
		UPDATE recommendations SET status = 'EXPIRED', updated_at = ?
		WHERE status = 'PENDING' AND created_at < ?
	`, time.Now(), cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to expire stale recommendations: %w", err)
	}
	return result.RowsAffected()
}

// Accept transitions a PENDING recommendation to ACCEPTED.
func (s *SQLiteStore) Accept(ctx context.Context, id int64, notes string) error {
	return s.transition(ctx, id, domain.RecommendationAccepted, "accepted_at", "notes", notes)
}

// Dismiss transitions a PENDING recommendation to DISMISSED.
func (s *SQLiteStore) Dismiss(ctx context.Context, id int64, reason string) error {
	return s.transition(ctx, id, domain.RecommendationDismissed, "dismissed_at", "dismiss_reason", reason)
}

func (s *SQLiteStore) transition(ctx context.Context, id int64, status domain.RecommendationStatus, timestampColumn, textColumn, text string) error {
	query := fmt.Sprintf(`
		UPDATE recommendations
		SET status = ?, updated_at = ?, %s = ?, %s = ?
		WHERE id = ? AND status = 'PENDING'
	`, timestampColumn, textColumn)
	now := time.Now()
	result, err := s.db.ExecContext(ctx, query, string(status), now, now, text, id)
	if err != nil {
		return fmt.Errorf("failed to update recommendation %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("recommendation %d is not pending", id)
	}
	return nil
}

// ListForUser returns a user's recommendations, newest first, optionally
// filtered by status ("" for all).
func (s *SQLiteStore) ListForUser(ctx context.Context, userID string, status domain.RecommendationStatus) ([]domain.StrategyRecommendation, error) {
	query := `
		SELECT id, user_id, semantic_key, category, severity, title, summary, detail,
			score, confidence, projected_benefit, affected_entities, action_steps,
			status, created_at, updated_at, accepted_at, dismissed_at, notes, dismiss_reason
		FROM recommendations WHERE user_id = ?`
	args := []any{userID}
	if status != "" {
		query += " AND status = ?"
		args = append(args, string(status))
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list recommendations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var recs []domain.StrategyRecommendation
	for rows.Next() {
		rec, err := scanRecommendation(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

func scanRecommendation(rows *sql.Rows) (domain.StrategyRecommendation, error) {
	var rec domain.StrategyRecommendation
	var category, severity, scoreStr, confidenceStr, benefitStr, entitiesJSON, stepsJSON, status string
	var acceptedAt, dismissedAt sql.NullTime

	if err := rows.Scan(
		&rec.ID, &rec.UserID, &rec.SemanticKey, &category, &severity,
		&rec.Finding.Title, &rec.Finding.Summary, &rec.Finding.Detail,
		&scoreStr, &confidenceStr, &benefitStr, &entitiesJSON, &stepsJSON,
		&status, &rec.CreatedAt, &rec.UpdatedAt, &acceptedAt, &dismissedAt,
		&rec.Notes, &rec.DismissReason,
	); err != nil {
		return rec, fmt.Errorf("failed to scan recommendation: %w", err)
	}

	rec.Finding.Category = domain.FindingCategory(category)
	rec.Finding.Severity = domain.Severity(severity)
	rec.Status = domain.RecommendationStatus(status)

	var err error
	if rec.Finding.Score, err = decimal.NewFromString(scoreStr); err != nil {
		return rec, fmt.Errorf("invalid score %q: %w", scoreStr, err)
	}
	if rec.Finding.Confidence, err = decimal.NewFromString(confidenceStr); err != nil {
		return rec, fmt.Errorf("invalid confidence %q: %w", confidenceStr, err)
	}
	if rec.Finding.ProjectedBenefit, err = decimal.NewFromString(benefitStr); err != nil {
		return rec, fmt.Errorf("invalid projected benefit %q: %w", benefitStr, err)
	}
	if err := json.Unmarshal([]byte(entitiesJSON), &rec.Finding.AffectedEntities); err != nil {
		return rec, fmt.Errorf("invalid affected entities payload: %w", err)
	}
	if err := json.Unmarshal([]byte(stepsJSON), &rec.Finding.ActionSteps); err != nil {
		return rec, fmt.Errorf("invalid action steps payload: %w", err)
	}
	if acceptedAt.Valid {
		rec.AcceptedAt = &acceptedAt.Time
	}
	if dismissedAt.Valid {
		rec.DismissedAt = &dismissedAt.Time
	}
	return rec, nil
}
