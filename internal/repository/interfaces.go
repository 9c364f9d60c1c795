package repository

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/medcorpus/internal/domain"
)

// ErrNotFound is wrapped by Get methods when no row matches.
var ErrNotFound = errors.New("not found")

// StoredTopic is a persisted topic document and where it came from.
type StoredTopic struct {
	Record    *domain.TopicRecord
	Subdomain string
	// Document is the JSON exactly as stored.
	Document string
	StoredAt time.Time
}

type TopicRepo interface {
	Get(ctx context.Context, id string) (*StoredTopic, error)
	Put(ctx context.Context, subdomain string, rec *domain.TopicRecord, storedAt time.Time) error
	List(ctx context.Context) ([]*StoredTopic, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

type ValidationRunRepo interface {
	Create(ctx context.Context, run *domain.ValidationRun) error
	GetByID(ctx context.Context, id string) (*domain.ValidationRun, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.ValidationRun, error)
}
