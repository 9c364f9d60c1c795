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

// SQLiteTopicRepo stores one JSON document per topic id.
type SQLiteTopicRepo struct {
	db db.DBTX
}

func NewSQLiteTopicRepo(conn db.DBTX) *SQLiteTopicRepo {
	return &SQLiteTopicRepo{db: conn}
}

const topicColumns = `id, subdomain, document, stored_at`

func (r *SQLiteTopicRepo) Get(ctx context.Context, id string) (*StoredTopic, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+topicColumns+` FROM topics WHERE id = ?`, id)
	st, err := scanTopic(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("topic %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return st, nil
}

// Put inserts rec or replaces the stored document for its id.
func (r *SQLiteTopicRepo) Put(ctx context.Context, subdomain string, rec *domain.TopicRecord, storedAt time.Time) error {
	doc, err := EncodeTopic(rec)
	if err != nil {
		return err
	}
	query := `INSERT INTO topics (id, subdomain, type, status, version, updated_at, document, stored_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			subdomain = excluded.subdomain,
			type = excluded.type,
			status = excluded.status,
			version = excluded.version,
			updated_at = excluded.updated_at,
			document = excluded.document,
			stored_at = excluded.stored_at`
	_, err = r.db.ExecContext(ctx, query,
		rec.ID,
		subdomain,
		string(rec.Type),
		string(rec.Status),
		rec.Version,
		rec.UpdatedAt,
		doc,
		storedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting topic %s: %w", rec.ID, err)
	}
	return nil
}

func (r *SQLiteTopicRepo) List(ctx context.Context) ([]*StoredTopic, error) {
	return r.query(ctx, `SELECT `+topicColumns+` FROM topics ORDER BY id`)
}

func (r *SQLiteTopicRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM topics WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting topic %s: %w", id, err)
	}
	return nil
}

func (r *SQLiteTopicRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM topics`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting topics: %w", err)
	}
	return n, nil
}

func (r *SQLiteTopicRepo) query(ctx context.Context, query string, args ...any) ([]*StoredTopic, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing topics: %w", err)
	}
	defer rows.Close()

	var topics []*StoredTopic
	for rows.Next() {
		st, err := scanTopic(rows)
		if err != nil {
			return nil, err
		}
		topics = append(topics, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating topics: %w", err)
	}
	return topics, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTopic(row rowScanner) (*StoredTopic, error) {
	var st StoredTopic
	var storedAt string
	if err := row.Scan(new(string), &st.Subdomain, &st.Document, &storedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning topic: %w", err)
	}

	rec, err := decodeTopic(st.Document)
	if err != nil {
		return nil, err
	}
	st.Record = rec

	st.StoredAt, err = time.Parse(time.RFC3339, storedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing stored_at: %w", err)
	}
	return &st, nil
}
