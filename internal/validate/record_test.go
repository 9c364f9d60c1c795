package validate

import (
	"testing"

	"github.com/alexanderramin/medcorpus/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckTopic_ValidRecordIsClean(t *testing.T) {
	rec := validTopic()
	rec.Citations = []domain.Citation{
		{ID: "esc-2024", Type: "guideline", Title: "ESC AF Guidelines", Source: "EHJ"},
	}
	rec.CrossReferences = []domain.CrossReference{
		{TargetID: "condition-heart-failure", Relationship: domain.RelRelated},
	}
	rec.Tags = domain.ContentTags{
		Systems:           []string{"cardiovascular", "ICD-11:B81.3"},
		ClinicalRelevance: domain.RelevanceCritical,
		ExamRelevance:     &domain.ExamRelevance{USMLE: true, Shelf: []string{"internal-medicine"}},
	}

	assert.Empty(t, CheckTopic(rec))
}

func TestCheckTopic_Nil(t *testing.T) {
	issues := CheckTopic(nil)
	require.Len(t, issues, 1)
	assert.True(t, issues[0].IsError())
}

func TestCheckSchema_RequiredFields(t *testing.T) {
	rec := validTopic()
	rec.Name = ""
	rec.Status = ""
	rec.Version = 0
	rec.Citations = []domain.Citation{{ID: "c1", Source: "s"}}
	rec.CrossReferences = []domain.CrossReference{{Relationship: domain.RelRelated}}

	msgs := messages(CheckSchema(rec))
	assert.Contains(t, msgs, "name is required")
	assert.Contains(t, msgs, "status is required")
	assert.Contains(t, msgs, "version must be >= 1")
	assert.Contains(t, msgs, "citations[0].title is required")
	assert.Contains(t, msgs, "crossReferences[0].targetId is required")
}

func TestCheckSchema_IDMustBeURLSafe(t *testing.T) {
	rec := validTopic()
	rec.ID = "condition afib/1"

	issues := CheckSchema(rec)
	require.Len(t, issues, 1)
	assert.Equal(t, CategorySchema, issues[0].Category)
	assert.Contains(t, issues[0].Message, "must be URL-safe")
}

func TestCheckMetadata(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.TopicRecord)
		want   string
		sev    Severity
	}{
		{
			name:   "non kebab id",
			mutate: func(r *domain.TopicRecord) { r.ID = "Condition_AFib" },
			want:   `id "Condition_AFib" is not kebab-case`,
			sev:    SeverityWarning,
		},
		{
			name:   "unknown type",
			mutate: func(r *domain.TopicRecord) { r.Type = "syndrome" },
			want:   `unknown topic type "syndrome"`,
			sev:    SeverityWarning,
		},
		{
			name:   "invalid status",
			mutate: func(r *domain.TopicRecord) { r.Status = "retired" },
			want:   `invalid status "retired" (expected draft, review, published, or archived)`,
			sev:    SeverityError,
		},
		{
			name:   "bad createdAt",
			mutate: func(r *domain.TopicRecord) { r.CreatedAt = "yesterday" },
			want:   `invalid createdAt "yesterday" (expected RFC 3339 or YYYY-MM-DD)`,
			sev:    SeverityError,
		},
		{
			name: "updated before created",
			mutate: func(r *domain.TopicRecord) {
				r.CreatedAt = "2026-03-01"
				r.UpdatedAt = "2026-02-01"
			},
			want: "updatedAt precedes createdAt",
			sev:  SeverityWarning,
		},
		{
			name:   "clinical relevance vocabulary",
			mutate: func(r *domain.TopicRecord) { r.Tags.ClinicalRelevance = "urgent" },
			want:   `invalid clinicalRelevance "urgent" (expected low, medium, high, or critical)`,
			sev:    SeverityError,
		},
		{
			name:   "empty shelf entry",
			mutate: func(r *domain.TopicRecord) { r.Tags.ExamRelevance = &domain.ExamRelevance{Shelf: []string{"surgery", " "}} },
			want:   "empty shelf exam entry at index 1",
			sev:    SeverityError,
		},
		{
			name:   "icd11 format",
			mutate: func(r *domain.TopicRecord) { r.Tags.Systems = []string{"ICD-11:bc81"} },
			want:   `potentially invalid ICD-11 code "bc81"`,
			sev:    SeverityWarning,
		},
		{
			name: "duplicate citation",
			mutate: func(r *domain.TopicRecord) {
				c := domain.Citation{ID: "c1", Type: "textbook", Title: "t", Source: "s"}
				r.Citations = []domain.Citation{c, c}
			},
			want: `duplicate citation id "c1"`,
			sev:  SeverityWarning,
		},
		{
			name: "unknown citation type",
			mutate: func(r *domain.TopicRecord) {
				r.Citations = []domain.Citation{{ID: "c1", Type: "podcast", Title: "t", Source: "s"}}
			},
			want: `citation "c1" has unknown type "podcast"`,
			sev:  SeverityWarning,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := validTopic()
			tc.mutate(rec)

			issues := CheckMetadata(rec)
			require.Len(t, issues, 1, "got %v", messages(issues))
			assert.Equal(t, tc.want, issues[0].Message)
			assert.Equal(t, tc.sev, issues[0].Severity)
			assert.Equal(t, CategoryMetadata, issues[0].Category)
		})
	}
}

func TestCheckMetadata_DateOnlyTimestamps(t *testing.T) {
	rec := validTopic()
	rec.CreatedAt = "2026-01-10"
	rec.UpdatedAt = "2026-01-12T08:30:00Z"

	assert.Empty(t, CheckMetadata(rec))
}

func TestCheckQuality_Placeholders(t *testing.T) {
	rec := validTopic()
	c := rec.Levels[1]
	c.Summary = "TODO: write this"
	c.KeyTerms = []domain.KeyTerm{{Term: "atrium", Definition: "placeholder"}}
	rec.Levels[1] = c
	rec.Levels[3] = func() domain.LeveledContent { l := level(3); l.ClinicalNotes = "fixme later"; return l }()

	msgs := messages(CheckQuality(rec))
	assert.ElementsMatch(t, []string{
		"summary at level 1 contains placeholder text",
		`key term "atrium" at level 1 contains placeholder text`,
		"clinicalNotes at level 3 contains placeholder text",
	}, msgs)
}

func TestCheckQuality_WordBoundaries(t *testing.T) {
	rec := validTopic()
	c := rec.Levels[1]
	c.Explanation = "Placeholders in the mastodon stay unmatched: TODOS, todolist."
	rec.Levels[1] = c

	assert.Empty(t, CheckQuality(rec))
}

func TestCheckReferenceShape(t *testing.T) {
	rec := validTopic()
	rec.CrossReferences = []domain.CrossReference{
		{TargetID: "a", Relationship: domain.RelRelated},
		{TargetID: "a", Relationship: domain.RelRelated},
		{TargetID: "a", Relationship: domain.RelParent},
		{TargetID: "b", Relationship: "cousin"},
	}

	issues := CheckReferenceShape(rec)
	assert.Equal(t, []string{
		`duplicate related cross-reference to "a"`,
		`cross-reference to "b" uses unknown relationship "cousin"`,
	}, messages(issues))
	for _, is := range issues {
		assert.Equal(t, SeverityWarning, is.Severity)
		assert.Equal(t, CategoryCrossReference, is.Category)
	}
}
