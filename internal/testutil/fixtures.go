package testutil

import (
	"github.com/alexanderramin/medcorpus/internal/domain"
)

type TopicOption func(*domain.TopicRecord)

func WithTopicType(tt domain.TopicType) TopicOption {
	return func(r *domain.TopicRecord) {
		r.Type = tt
	}
}

func WithStatus(s domain.TopicStatus) TopicOption {
	return func(r *domain.TopicRecord) {
		r.Status = s
	}
}

func WithVersion(v int) TopicOption {
	return func(r *domain.TopicRecord) {
		r.Version = v
	}
}

// WithLevels replaces the authored levels with complete content for each
// given tier.
func WithLevels(levels ...domain.ComplexityLevel) TopicOption {
	return func(r *domain.TopicRecord) {
		r.Levels = make(domain.Levels, len(levels))
		for _, l := range levels {
			r.Levels[l] = NewTestLevel(l)
		}
	}
}

// WithLevel sets the content of one tier, keeping the others.
func WithLevel(l domain.ComplexityLevel, content domain.LeveledContent) TopicOption {
	return func(r *domain.TopicRecord) {
		if r.Levels == nil {
			r.Levels = make(domain.Levels)
		}
		r.Levels[l] = content
	}
}

func WithCrossRef(targetID string, rel domain.Relationship) TopicOption {
	return func(r *domain.TopicRecord) {
		r.CrossReferences = append(r.CrossReferences, domain.CrossReference{
			TargetID:     targetID,
			Relationship: rel,
		})
	}
}

func WithTypedCrossRef(targetID string, targetType domain.TopicType, rel domain.Relationship) TopicOption {
	return func(r *domain.TopicRecord) {
		r.CrossReferences = append(r.CrossReferences, domain.CrossReference{
			TargetID:     targetID,
			TargetType:   targetType,
			Relationship: rel,
		})
	}
}

func WithTags(systems ...string) TopicOption {
	return func(r *domain.TopicRecord) {
		r.Tags.Systems = append(r.Tags.Systems, systems...)
	}
}

func WithName(name string) TopicOption {
	return func(r *domain.TopicRecord) {
		r.Name = name
	}
}

// NewTestLevel returns complete, valid content for tier l.
func NewTestLevel(l domain.ComplexityLevel) domain.LeveledContent {
	return domain.LeveledContent{
		Level:       l,
		Summary:     "Summary for this tier.",
		Explanation: "Explanation for this tier.",
		KeyTerms:    []domain.KeyTerm{{Term: "term", Definition: "definition"}},
		Analogies:   []string{},
		Examples:    []string{},
	}
}

// NewTestTopic returns a published condition with a valid level 1 that passes
// every record check.
func NewTestTopic(id string, opts ...TopicOption) *domain.TopicRecord {
	r := &domain.TopicRecord{
		ID:        id,
		Type:      domain.TopicCondition,
		Name:      "Topic " + id,
		Levels:    domain.Levels{1: NewTestLevel(1)},
		Tags:      domain.ContentTags{Systems: []string{"cardiovascular"}},
		CreatedAt: "2026-01-01",
		UpdatedAt: "2026-01-02",
		Version:   1,
		Status:    domain.StatusPublished,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}
