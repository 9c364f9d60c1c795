package registry

import (
	"github.com/alexanderramin/medcorpus/internal/domain"
	"github.com/alexanderramin/medcorpus/internal/validate"
)

// Subdomain collects the records of one subdomain before the merge. It is
// owned by a single goroutine while records are registered.
type Subdomain struct {
	name   string
	strict bool

	byID   map[string]*domain.TopicRecord
	order  []string
	issues []validate.Issue
	index  *domain.CategoryIndex
}

type Option func(*Subdomain)

// WithStrict makes Register reject records that have error-severity issues.
func WithStrict(strict bool) Option {
	return func(s *Subdomain) {
		s.strict = strict
	}
}

func NewSubdomain(name string, opts ...Option) *Subdomain {
	s := &Subdomain{
		name: name,
		byID: make(map[string]*domain.TopicRecord),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register adds rec under its id. Re-registering an id returns
// *DuplicateIDError. A record with an empty id, or any record with
// error-severity issues in strict mode, returns *InvalidRecordError. In
// lenient mode the record is kept and its issues are retained.
func (s *Subdomain) Register(rec *domain.TopicRecord) error {
	if rec == nil || rec.ID == "" {
		id := ""
		if rec != nil {
			id = rec.ID
		}
		return &InvalidRecordError{
			ID:        id,
			Subdomain: s.name,
			Issues:    validate.WithSubdomain(validate.Filter(validate.CheckTopic(rec), validate.SeverityError), s.name),
		}
	}
	if _, exists := s.byID[rec.ID]; exists {
		return &DuplicateIDError{ID: rec.ID, Subdomain: s.name}
	}

	issues := validate.WithSubdomain(validate.CheckTopic(rec), s.name)
	if s.strict && validate.HasErrors(issues) {
		return &InvalidRecordError{
			ID:        rec.ID,
			Subdomain: s.name,
			Issues:    validate.Filter(issues, validate.SeverityError),
		}
	}

	s.byID[rec.ID] = rec
	s.order = append(s.order, rec.ID)
	s.issues = append(s.issues, issues...)
	return nil
}

// Lookup returns the exact record registered under id.
func (s *Subdomain) Lookup(id string) (*domain.TopicRecord, bool) {
	rec, ok := s.byID[id]
	return rec, ok
}

func (s *Subdomain) Name() string { return s.name }

func (s *Subdomain) Len() int { return len(s.order) }

// Records returns the registered records in registration order.
func (s *Subdomain) Records() []*domain.TopicRecord {
	out := make([]*domain.TopicRecord, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

// Issues returns the findings recorded for records accepted so far.
func (s *Subdomain) Issues() []validate.Issue {
	out := make([]validate.Issue, len(s.issues))
	copy(out, s.issues)
	return out
}

func (s *Subdomain) SetCategoryIndex(idx *domain.CategoryIndex) {
	s.index = idx
}

func (s *Subdomain) CategoryIndex() *domain.CategoryIndex {
	return s.index
}
