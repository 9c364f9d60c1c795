package validate

import (
	"testing"

	"github.com/alexanderramin/medcorpus/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckCategories_MissingFromPriorityMap(t *testing.T) {
	idx := &domain.CategoryIndex{
		Categories: []string{"a", "b", "c"},
		Priorities: map[string]string{"a": "high", "b": "high"},
	}

	drift := CheckCategories("cardiology", idx)

	assert.True(t, drift.Priorities.Present)
	assert.Equal(t, []string{"c"}, drift.Priorities.MissingFromMap)
	assert.Empty(t, drift.Priorities.NotInList)
	assert.Equal(t, 2, drift.Priorities.Matched)
	assert.False(t, drift.Subtopics.Present)
	assert.True(t, drift.Subtopics.Clean())
	assert.False(t, drift.Clean())

	issues := drift.Issues()
	require.Len(t, issues, 1)
	assert.Equal(t, SeverityWarning, issues[0].Severity)
	assert.Equal(t, CategoryIndexDrift, issues[0].Category)
	assert.Equal(t, "cardiology", issues[0].Subdomain)
	assert.Equal(t, `category "c" is listed but missing from priorities`, issues[0].Message)
}

func TestCheckCategories_KeysNotInList(t *testing.T) {
	idx := &domain.CategoryIndex{
		Categories: []string{"b", "a"},
		Subtopics: map[string][]string{
			"a": {"x"}, "b": {"y"}, "zeta": nil, "delta": nil,
		},
	}

	drift := CheckCategories("neuro", idx)
	assert.Equal(t, []string{"delta", "zeta"}, drift.Subtopics.NotInList)
	assert.Empty(t, drift.Subtopics.MissingFromMap)
	assert.Equal(t, 2, drift.Subtopics.Matched)
}

func TestCheckCategories_DuplicatesAndOrder(t *testing.T) {
	idx := &domain.CategoryIndex{
		Categories: []string{"c", "a", "c", "b", "c"},
		Priorities: map[string]string{},
	}

	drift := CheckCategories("x", idx)
	assert.Equal(t, []string{"c"}, drift.Duplicates)
	assert.Equal(t, []string{"c", "a", "b"}, drift.Priorities.MissingFromMap)
}

func TestCheckCategories_CleanAndNil(t *testing.T) {
	idx := &domain.CategoryIndex{
		Categories: []string{"a"},
		Priorities: map[string]string{"a": "low"},
		Subtopics:  map[string][]string{"a": {"topic-a"}},
	}
	assert.True(t, CheckCategories("x", idx).Clean())
	assert.True(t, CheckCategories("x", nil).Clean())
	assert.Empty(t, CheckCategories("x", nil).Issues())
}

func TestCheckSubtopicSlugs(t *testing.T) {
	idx := &domain.CategoryIndex{
		Categories: []string{"a", "b"},
		Subtopics:  map[string][]string{"a": {"known", "zz-missing"}, "b": {"aa-missing", "known"}},
	}
	drift := CheckCategories("x", idx)

	CheckSubtopicSlugs(&drift, idx, func(id string) bool { return id == "known" })

	assert.Equal(t, []string{"aa-missing", "zz-missing"}, drift.UnknownSubtopics)
	assert.Len(t, drift.Issues(), 2)
}
