package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/medcorpus/internal/db"
	"github.com/alexanderramin/medcorpus/internal/domain"
)

// runTimeLayout has a fixed width so started_at sorts as text.
const runTimeLayout = "2006-01-02T15:04:05.000000Z"

type SQLiteValidationRunRepo struct {
	db db.DBTX
}

func NewSQLiteValidationRunRepo(conn db.DBTX) *SQLiteValidationRunRepo {
	return &SQLiteValidationRunRepo{db: conn}
}

func (r *SQLiteValidationRunRepo) Create(ctx context.Context, run *domain.ValidationRun) error {
	query := `INSERT INTO validation_runs (id, started_at, topic_count, error_count, warning_count, report)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		run.ID,
		run.StartedAt.UTC().Format(runTimeLayout),
		run.TopicCount,
		run.ErrorCount,
		run.WarningCount,
		run.ReportJSON,
	)
	if err != nil {
		return fmt.Errorf("inserting validation run: %w", err)
	}
	return nil
}

func (r *SQLiteValidationRunRepo) GetByID(ctx context.Context, id string) (*domain.ValidationRun, error) {
	query := `SELECT id, started_at, topic_count, error_count, warning_count, report
		FROM validation_runs WHERE id = ?`
	run, err := scanRun(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("validation run %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return run, nil
}

// ListRecent returns up to limit runs, newest first.
func (r *SQLiteValidationRunRepo) ListRecent(ctx context.Context, limit int) ([]*domain.ValidationRun, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `SELECT id, started_at, topic_count, error_count, warning_count, report
		FROM validation_runs ORDER BY started_at DESC, id LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing validation runs: %w", err)
	}
	defer rows.Close()

	var runs []*domain.ValidationRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating validation runs: %w", err)
	}
	return runs, nil
}

func scanRun(row rowScanner) (*domain.ValidationRun, error) {
	var run domain.ValidationRun
	var startedAt string
	err := row.Scan(&run.ID, &startedAt, &run.TopicCount, &run.ErrorCount, &run.WarningCount, &run.ReportJSON)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning validation run: %w", err)
	}
	run.StartedAt, err = time.Parse(runTimeLayout, startedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing started_at: %w", err)
	}
	return &run, nil
}
