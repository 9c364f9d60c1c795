package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/medcorpus/internal/domain"
	"github.com/alexanderramin/medcorpus/internal/registry"
	"github.com/alexanderramin/medcorpus/internal/service"
	"github.com/alexanderramin/medcorpus/internal/validate"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_AlignsColumns(t *testing.T) {
	tbl := NewTable("ID", "COUNT").AlignRight(1)
	tbl.AddRow("condition-afib", "3")
	tbl.AddRow("x", StyleRed.Render("12"))

	lines := strings.Split(strings.TrimRight(tbl.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, lipgloss.Width(lines[0]), lipgloss.Width(lines[2]))
	assert.True(t, strings.HasSuffix(lines[2], "    3"))
	assert.Contains(t, lines[3], "12")
	assert.Empty(t, NewTable().String())
}

func TestFormatReport_HidesWarningsByDefault(t *testing.T) {
	rep := &registry.ValidationReport{
		TopicCount:     2,
		SubdomainCount: 1,
		Issues: []validate.Issue{
			{Severity: validate.SeverityError, Category: validate.CategoryLevels, TopicID: "condition-afib", Subdomain: "cardiology", Level: 2, Message: "empty summary at level 2"},
			{Severity: validate.SeverityWarning, Category: validate.CategoryCrossReference, TopicID: "condition-afib", Message: `dangling cross-reference to "condition-gone"`},
		},
		Dangling: []registry.DanglingReference{
			{SourceID: "condition-afib", Subdomain: "cardiology", TargetID: "condition-gone", Relationship: domain.RelRelated},
		},
	}

	out := FormatReport(rep, false)
	assert.Contains(t, out, "2 topic(s) in 1 subdomain(s)")
	assert.Contains(t, out, "cardiology/condition-afib/L2")
	assert.Contains(t, out, "empty summary at level 2")
	assert.NotContains(t, out, "condition-gone")
	assert.Contains(t, out, "1 warning(s) hidden")
	assert.Contains(t, out, "FAILED (1 error(s), 1 warning(s))")

	verbose := FormatReport(rep, true)
	assert.Contains(t, verbose, "DANGLING REFERENCES")
	assert.Contains(t, verbose, "condition-gone")
	assert.NotContains(t, verbose, "hidden")
}

func TestFormatCategories_ShowsDrift(t *testing.T) {
	idx := &domain.CategoryIndex{
		Categories: []string{"a", "b", "c"},
		Priorities: map[string]string{"a": "high", "b": "low"},
		Subtopics:  map[string][]string{"a": {"x"}, "b": {}, "c": {"y", "z"}},
	}
	out := FormatCategories("cardiology", idx, validate.CheckCategories("cardiology", idx))
	assert.Contains(t, out, "CARDIOLOGY CATEGORIES")
	assert.Contains(t, out, "missing")
	assert.Contains(t, out, "missing from priorities: c")
	assert.Contains(t, out, "high: a")
	assert.Less(t, strings.Index(out, "high: a"), strings.Index(out, "low: b"), "urgent priorities first")

	idx.Priorities["c"] = "medium"
	idx.Priorities["a"] = "urgent"
	clean := FormatCategories("cardiology", idx, validate.CheckCategories("cardiology", idx))
	assert.Contains(t, clean, "side tables match")
	assert.Contains(t, clean, "medium: c")
	assert.Less(t, strings.Index(clean, "low: b"), strings.Index(clean, "urgent: a"), "unknown priorities last")
}

func TestFormatTopic_SingleLevel(t *testing.T) {
	rec := &domain.TopicRecord{
		ID:      "condition-afib",
		Name:    "Atrial Fibrillation",
		Type:    domain.TopicCondition,
		Status:  domain.StatusPublished,
		Version: 2,
		Levels: domain.Levels{
			1: {Summary: "An irregular heartbeat.", Explanation: "The upper chambers quiver.",
				KeyTerms: []domain.KeyTerm{{Term: "atria", Definition: "upper chambers"}}},
			3: {Summary: "Disorganized atrial activity.", Explanation: "Loss of P waves."},
		},
	}

	all := FormatTopic(rec, "cardiology", 0)
	assert.Contains(t, all, "Atrial Fibrillation")
	assert.Contains(t, all, "LEVEL 1")
	assert.Contains(t, all, "LEVEL 3")
	assert.Contains(t, all, "atria:")

	one := FormatTopic(rec, "cardiology", 3)
	assert.NotContains(t, one, "LEVEL 1")
	assert.Contains(t, one, "Loss of P waves.")
}

func TestFormatCrossRefs_States(t *testing.T) {
	out := FormatCrossRefs("condition-afib", []registry.ResolvedReference{
		{TargetID: "procedure-ecg", Relationship: domain.RelSeeAlso, Resolved: true, TargetSubdomain: "cardiology"},
		{TargetID: "condition-gone", Relationship: domain.RelRelated},
		{TargetID: "condition-afib", Relationship: domain.RelSibling, Resolved: true, SelfReference: true},
	})
	assert.Contains(t, out, "ok")
	assert.Contains(t, out, "dangling")
	assert.Contains(t, out, "self")

	assert.Contains(t, FormatCrossRefs("condition-afib", nil), "no cross-references")
}

func TestFormatStatsAndRuns(t *testing.T) {
	st := registry.Stats{
		Topics:     3,
		Subdomains: []registry.SubdomainStats{{Name: "cardiology", Topics: 3, Categories: 4}},
		ByStatus:   map[domain.TopicStatus]int{domain.StatusPublished: 2, domain.StatusDraft: 1},
		ByType:     map[domain.TopicType]int{domain.TopicCondition: 3},
		ByLevel:    map[domain.ComplexityLevel]int{1: 3, 2: 1},
	}
	out := FormatStats(st)
	assert.Contains(t, out, "3 topic(s)")
	assert.Contains(t, out, "draft=1 published=2")
	assert.Contains(t, out, "condition=3")

	runs := FormatRuns([]*domain.ValidationRun{
		{ID: "0123456789abcdef", StartedAt: time.Now(), TopicCount: 3, ErrorCount: 1},
	})
	assert.Contains(t, runs, "01234567")
	assert.Contains(t, runs, "failed")
	assert.Contains(t, FormatRuns(nil), "no validation runs")

	snap := FormatSnapshot(&service.SnapshotResult{Inserted: 2, Unchanged: 1, Stored: 3})
	assert.Contains(t, snap, "2 inserted, 0 updated, 1 unchanged, 0 removed")
	assert.Contains(t, snap, "3 topic(s) stored")
	assert.NotContains(t, snap, "skipped")

	skipped := FormatSnapshot(&service.SnapshotResult{Inserted: 1, Skipped: 1, Stored: 1})
	assert.Contains(t, skipped, "1 invalid topic(s) skipped")
}
