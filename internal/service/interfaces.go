package service

import (
	"context"

	"github.com/alexanderramin/medcorpus/internal/domain"
	"github.com/alexanderramin/medcorpus/internal/registry"
	"github.com/alexanderramin/medcorpus/internal/validate"
)

// Corpus is a loaded and merged corpus directory.
type Corpus struct {
	Dir      string
	Registry *registry.Registry
	// LoadIssues are problems found while reading files, such as documents
	// that failed to decode.
	LoadIssues []validate.Issue
	Files      int
}

type CorpusService interface {
	// Load reads dir and builds the registry. When subdomains share ids the
	// error holds a *registry.CollisionError and no corpus is returned.
	Load(ctx context.Context, dir string) (*Corpus, error)
	// Validate returns the registry report with load issues merged in.
	Validate(ctx context.Context, corpus *Corpus) *registry.ValidationReport
}

// SnapshotResult summarizes one snapshot save. When the save fails the
// counts are zero and only Issues is kept.
type SnapshotResult struct {
	Inserted  int
	Updated   int
	Unchanged int
	Removed   int
	// Skipped counts records left out because they fail validation. Any
	// stored copy of a skipped record is kept as it was.
	Skipped int
	// Stored is the number of topics in the snapshot after the save.
	Stored int
	Issues []validate.Issue
}

type SnapshotService interface {
	Save(ctx context.Context, reg *registry.Registry) (*SnapshotResult, error)
	RecordRun(ctx context.Context, report *registry.ValidationReport) (*domain.ValidationRun, error)
	ListRuns(ctx context.Context, limit int) ([]*domain.ValidationRun, error)
}
