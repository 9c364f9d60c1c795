package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortIssues_ErrorsFirstThenLocation(t *testing.T) {
	issues := []Issue{
		{Severity: SeverityWarning, Subdomain: "a", TopicID: "t1", Message: "w"},
		{Severity: SeverityError, Subdomain: "b", TopicID: "t1", Message: "e2"},
		{Severity: SeverityError, Subdomain: "a", TopicID: "t2", Level: 2, Message: "e1"},
		{Severity: SeverityError, Subdomain: "a", TopicID: "t2", Level: 1, Message: "e0"},
	}

	SortIssues(issues)

	assert.Equal(t, []string{"e0", "e1", "e2", "w"}, messages(issues))
}

func TestIssue_String(t *testing.T) {
	is := Issue{Severity: SeverityError, Category: CategoryLevels, Subdomain: "cardiology", TopicID: "condition-afib", Level: 2, Message: "empty summary at level 2"}
	assert.Equal(t, "error [levels] cardiology/condition-afib/L2: empty summary at level 2", is.String())

	bare := Issue{Severity: SeverityWarning, Category: CategorySchema, Message: "m"}
	assert.Equal(t, "warning [schema] m", bare.String())
}

func TestCountAndFilter(t *testing.T) {
	issues := []Issue{
		{Severity: SeverityError}, {Severity: SeverityWarning}, {Severity: SeverityWarning},
	}
	errs, warns := Count(issues)
	assert.Equal(t, 1, errs)
	assert.Equal(t, 2, warns)
	assert.True(t, HasErrors(issues))
	assert.False(t, HasErrors(issues[1:]))
	assert.Len(t, Filter(issues, SeverityWarning), 2)
}

func TestWithSubdomain_KeepsExisting(t *testing.T) {
	issues := WithSubdomain([]Issue{{Subdomain: "keep"}, {}}, "fill")
	assert.Equal(t, "keep", issues[0].Subdomain)
	assert.Equal(t, "fill", issues[1].Subdomain)
}
