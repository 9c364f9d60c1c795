package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/medcorpus/internal/db"
	"github.com/alexanderramin/medcorpus/internal/domain"
	"github.com/alexanderramin/medcorpus/internal/registry"
	"github.com/alexanderramin/medcorpus/internal/repository"
	"github.com/alexanderramin/medcorpus/internal/validate"
	"github.com/google/uuid"
)

// ErrLifecycleViolation is returned by Save when lifecycle enforcement is on
// and a stored topic would regress. Nothing is written in that case.
var ErrLifecycleViolation = errors.New("lifecycle violation")

type snapshotService struct {
	uow              db.UnitOfWork
	runs             repository.ValidationRunRepo
	enforceLifecycle bool
	now              func() time.Time
	observer         UseCaseObserver
}

func NewSnapshotService(
	uow db.UnitOfWork,
	runs repository.ValidationRunRepo,
	enforceLifecycle bool,
	observers ...UseCaseObserver,
) SnapshotService {
	return &snapshotService{
		uow:              uow,
		runs:             runs,
		enforceLifecycle: enforceLifecycle,
		now:              func() time.Time { return time.Now().UTC() },
		observer:         useCaseObserverOrNoop(observers),
	}
}

// Save mirrors the registry into the topics table in one transaction. Rows
// for ids no longer in the registry are removed. Records with error-severity
// validation issues are skipped and reported, leaving any stored copy alone.
// Stored topics whose version goes backwards or whose status makes a
// disallowed transition produce lifecycle issues; with enforcement on they
// are errors and the transaction rolls back.
func (s *snapshotService) Save(ctx context.Context, reg *registry.Registry) (result *SnapshotResult, err error) {
	startedAt := s.now()
	result = &SnapshotResult{}
	defer func() {
		observe(ctx, s.observer, "save-snapshot", startedAt, map[string]any{
			"inserted":  result.Inserted,
			"updated":   result.Updated,
			"unchanged": result.Unchanged,
			"removed":   result.Removed,
			"skipped":   result.Skipped,
			"issues":    len(result.Issues),
		}, err)
	}()

	severity := validate.SeverityWarning
	if s.enforceLifecycle {
		severity = validate.SeverityError
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		topics := repository.NewSQLiteTopicRepo(tx)

		stored, err := topics.List(ctx)
		if err != nil {
			return err
		}
		previous := make(map[string]*repository.StoredTopic, len(stored))
		for _, st := range stored {
			previous[st.Record.ID] = st
		}

		lifecycle := 0
		for _, rec := range reg.List(registry.Filter{}) {
			subdomain, _ := reg.SubdomainOf(rec.ID)
			prev, ok := previous[rec.ID]
			delete(previous, rec.ID)

			if errs := validate.Filter(validate.CheckTopic(rec), validate.SeverityError); len(errs) > 0 {
				result.Skipped++
				result.Issues = append(result.Issues, skippedIssue(rec.ID, subdomain, errs))
				continue
			}

			if ok {
				doc, err := repository.EncodeTopic(rec)
				if err != nil {
					return err
				}
				if doc == prev.Document && subdomain == prev.Subdomain {
					result.Unchanged++
					continue
				}
				for _, problem := range domain.CheckRevision(prev.Record, rec) {
					lifecycle++
					result.Issues = append(result.Issues, validate.Issue{
						Severity:  severity,
						Category:  validate.CategoryLifecycle,
						Rule:      "revision",
						TopicID:   rec.ID,
						Subdomain: subdomain,
						Message:   problem,
					})
				}
				result.Updated++
			} else {
				result.Inserted++
			}

			if err := topics.Put(ctx, subdomain, rec, startedAt); err != nil {
				return err
			}
		}

		for id := range previous {
			if err := topics.Delete(ctx, id); err != nil {
				return err
			}
			result.Removed++
		}

		validate.SortIssues(result.Issues)
		if s.enforceLifecycle && lifecycle > 0 {
			return fmt.Errorf("%w: %d topic revision(s) rejected", ErrLifecycleViolation, lifecycle)
		}

		result.Stored, err = topics.Count(ctx)
		return err
	})
	if err != nil {
		*result = SnapshotResult{Issues: result.Issues}
		return result, fmt.Errorf("saving snapshot: %w", err)
	}
	return result, nil
}

// skippedIssue reports a record left out of the snapshot, quoting its first
// validation error.
func skippedIssue(id, subdomain string, errs []validate.Issue) validate.Issue {
	validate.SortIssues(errs)
	msg := "not stored: " + errs[0].Message
	if len(errs) > 1 {
		msg += fmt.Sprintf(" (and %d more error(s))", len(errs)-1)
	}
	return validate.Issue{
		Severity:  validate.SeverityWarning,
		Category:  errs[0].Category,
		Rule:      "snapshot-skipped",
		TopicID:   id,
		Subdomain: subdomain,
		Message:   msg,
	}
}

// RecordRun stores report as a new validation run.
func (s *snapshotService) RecordRun(ctx context.Context, report *registry.ValidationReport) (run *domain.ValidationRun, err error) {
	startedAt := s.now()
	defer func() {
		fields := map[string]any{}
		if run != nil {
			fields["run_id"] = run.ID
			fields["errors"] = run.ErrorCount
		}
		observe(ctx, s.observer, "record-run", startedAt, fields, err)
	}()

	data, err := json.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("encoding report: %w", err)
	}

	run = &domain.ValidationRun{
		ID:           uuid.New().String(),
		StartedAt:    startedAt,
		TopicCount:   report.TopicCount,
		ErrorCount:   report.ErrorCount(),
		WarningCount: report.WarningCount(),
		ReportJSON:   string(data),
	}
	if err := s.runs.Create(ctx, run); err != nil {
		return nil, err
	}
	return run, nil
}

func (s *snapshotService) ListRuns(ctx context.Context, limit int) ([]*domain.ValidationRun, error) {
	return s.runs.ListRecent(ctx, limit)
}
