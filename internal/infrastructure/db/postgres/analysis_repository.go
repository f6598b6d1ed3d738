package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/trendwyse/dashboard/internal/core/domain"
)

type AnalysisRepository struct {
	db *sql.DB
}

func NewAnalysisRepository(db *sql.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

const analysisColumns = `id, user_id, product_name, category, module_code, status, score, analysis, created_at, started_at, completed_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnalysis(row rowScanner) (*domain.Analysis, error) {
	var (
		a           domain.Analysis
		status      string
		category    sql.NullString
		score       sql.NullInt64
		payload     []byte
		startedAt   sql.NullTime
		completedAt sql.NullTime
	)
	if err := row.Scan(
		&a.ID,
		&a.UserID,
		&a.ProductName,
		&category,
		&a.ModuleCode,
		&status,
		&score,
		&payload,
		&a.CreatedAt,
		&startedAt,
		&completedAt,
	); err != nil {
		return nil, err
	}

	a.Status = domain.AnalysisStatus(status)
	a.Category = category.String
	a.CreatedAt = a.CreatedAt.UTC()
	if score.Valid {
		s := int(score.Int64)
		a.Score = &s
	}
	if len(payload) > 0 {
		a.Result = json.RawMessage(payload)
	}
	if startedAt.Valid {
		t := startedAt.Time.UTC()
		a.StartedAt = &t
	}
	if completedAt.Valid {
		t := completedAt.Time.UTC()
		a.CompletedAt = &t
	}
	return &a, nil
}

func nullJSON(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	return string(raw)
}

func (r *AnalysisRepository) Create(ctx context.Context, a *domain.Analysis) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	const query = `
INSERT INTO analyses (id, user_id, product_name, category, module_code, status, created_at)
VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query,
		a.ID,
		a.UserID,
		a.ProductName,
		a.Category,
		a.ModuleCode,
		string(a.Status),
		a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert analysis: %w", err)
	}
	return nil
}

func (r *AnalysisRepository) FindByID(ctx context.Context, id string) (*domain.Analysis, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := `SELECT ` + analysisColumns + ` FROM analyses WHERE id = $1`
	a, err := scanAnalysis(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAnalysisNotFound
		}
		return nil, fmt.Errorf("find analysis: %w", err)
	}
	return a, nil
}

func (r *AnalysisRepository) ListByOwner(ctx context.Context, userID string) ([]*domain.Analysis, error) {
	query := `SELECT ` + analysisColumns + ` FROM analyses
WHERE user_id = $1
ORDER BY created_at DESC, id DESC`
	return r.list(ctx, query, userID)
}

func (r *AnalysisRepository) ListPendingByOwner(ctx context.Context, userID string) ([]*domain.Analysis, error) {
	query := `SELECT ` + analysisColumns + ` FROM analyses
WHERE user_id = $1 AND status IN ('pending', 'processing')
ORDER BY created_at DESC, id DESC`
	return r.list(ctx, query, userID)
}

func (r *AnalysisRepository) ListCompletedByOwner(ctx context.Context, userID string, limit int) ([]*domain.Analysis, error) {
	query := `SELECT ` + analysisColumns + ` FROM analyses
WHERE user_id = $1 AND status = 'completed'
ORDER BY completed_at DESC, id DESC
LIMIT $2`
	return r.list(ctx, query, userID, limit)
}

func (r *AnalysisRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Analysis, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}
	defer rows.Close()

	out := make([]*domain.Analysis, 0)
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, fmt.Errorf("scan analysis: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}
	return out, nil
}

func (r *AnalysisRepository) CountByOwner(ctx context.Context, userID string) (domain.AnalysisCounts, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	const query = `
SELECT
	COUNT(*),
	COUNT(*) FILTER (WHERE status IN ('pending', 'processing')),
	COUNT(*) FILTER (WHERE status = 'completed')
FROM analyses
WHERE user_id = $1`
	var c domain.AnalysisCounts
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&c.Total, &c.Pending, &c.Completed); err != nil {
		return domain.AnalysisCounts{}, fmt.Errorf("count analyses: %w", err)
	}
	return c, nil
}

// Claim moves a pending (or stale processing) analysis to processing. The
// affected row count decides which concurrent caller wins.
func (r *AnalysisRepository) Claim(ctx context.Context, id, userID string, startedAt, staleBefore time.Time) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	const query = `
UPDATE analyses
SET status = 'processing', started_at = $3
WHERE id = $1 AND user_id = $2
  AND (status = 'pending' OR (status = 'processing' AND started_at < $4))`
	res, err := r.db.ExecContext(ctx, query, id, userID, startedAt, staleBefore)
	if err != nil {
		return false, fmt.Errorf("claim analysis: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("claim analysis: %w", err)
	}
	return n == 1, nil
}

func (r *AnalysisRepository) Release(ctx context.Context, id string, startedAt time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	const query = `
UPDATE analyses
SET status = 'pending', started_at = NULL
WHERE id = $1 AND status = 'processing' AND started_at = $2`
	if _, err := r.db.ExecContext(ctx, query, id, startedAt); err != nil {
		return fmt.Errorf("release analysis: %w", err)
	}
	return nil
}

func (r *AnalysisRepository) UpdateScore(ctx context.Context, id string, startedAt time.Time, score int, result json.RawMessage, completedAt time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	const query = `
UPDATE analyses
SET status = 'completed', score = $3, analysis = $4, completed_at = $5, started_at = NULL
WHERE id = $1 AND status = 'processing' AND started_at = $2`
	res, err := r.db.ExecContext(ctx, query, id, startedAt, score, nullJSON(result), completedAt)
	if err != nil {
		return fmt.Errorf("update analysis score: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update analysis score: %w", err)
	}
	if n == 0 {
		return domain.ErrInvalidState
	}
	return nil
}
