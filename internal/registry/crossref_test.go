package registry_test

import (
	"testing"

	"github.com/alexanderramin/medcorpus/internal/domain"
	"github.com/alexanderramin/medcorpus/internal/registry"
	"github.com/alexanderramin/medcorpus/internal/testutil"
	"github.com/alexanderramin/medcorpus/internal/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrossReferencesOf_DanglingIsReportedNotFatal(t *testing.T) {
	afib := testutil.NewTestTopic("condition-afib",
		testutil.WithTypedCrossRef("condition-heart-failure", domain.TopicCondition, domain.RelRelated))
	reg := buildRegistry(t, subdomainWith(t, "cardiology", afib))

	refs, err := reg.CrossReferencesOf("condition-afib")
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, "condition-heart-failure", refs[0].TargetID)
	assert.False(t, refs[0].Resolved)

	rep := reg.Validate()
	assert.True(t, rep.Passed())
	assert.Equal(t, []registry.DanglingReference{{
		SourceID:     "condition-afib",
		Subdomain:    "cardiology",
		TargetID:     "condition-heart-failure",
		Relationship: domain.RelRelated,
	}}, rep.Dangling)

	require.Len(t, rep.Issues, 1)
	assert.Equal(t, validate.SeverityWarning, rep.Issues[0].Severity)
	assert.Equal(t, `dangling cross-reference to "condition-heart-failure"`, rep.Issues[0].Message)
}

func TestCrossReferencesOf_ResolvesAcrossSubdomains(t *testing.T) {
	afib := testutil.NewTestTopic("condition-afib",
		testutil.WithTypedCrossRef("anatomy-heart", domain.TopicStructure, domain.RelRelated),
		testutil.WithTypedCrossRef("drug-warfarin", domain.TopicConcept, domain.RelSeeAlso),
		testutil.WithCrossRef("condition-afib", domain.RelSibling),
	)
	heart := testutil.NewTestTopic("anatomy-heart", testutil.WithTopicType(domain.TopicStructure))
	warfarin := testutil.NewTestTopic("drug-warfarin", testutil.WithTopicType(domain.TopicProcedure))
	reg := buildRegistry(t,
		subdomainWith(t, "cardiology", afib),
		subdomainWith(t, "anatomy", heart),
		subdomainWith(t, "pharmacology", warfarin),
	)

	refs, err := reg.CrossReferencesOf("condition-afib")
	require.NoError(t, err)
	require.Len(t, refs, 3)

	assert.True(t, refs[0].Resolved)
	assert.Equal(t, "anatomy", refs[0].TargetSubdomain)
	assert.False(t, refs[0].TypeMismatch)

	assert.True(t, refs[1].Resolved)
	assert.True(t, refs[1].TypeMismatch)

	assert.True(t, refs[2].Resolved)
	assert.True(t, refs[2].SelfReference)

	rep := reg.Validate()
	assert.Empty(t, rep.Dangling)
	assert.Equal(t, []string{
		"cross-reference points at itself (sibling)",
		`cross-reference to "drug-warfarin" declares targetType "concept" but the topic is "procedure"`,
	}, messagesOf(rep.Issues))
}

func TestCrossReferencesOf_Deterministic(t *testing.T) {
	rec := testutil.NewTestTopic("a",
		testutil.WithCrossRef("b", domain.RelRelated),
		testutil.WithCrossRef("zz", domain.RelParent),
		testutil.WithCrossRef("c", domain.RelChild),
	)
	reg := buildRegistry(t, subdomainWith(t, "x", rec, testutil.NewTestTopic("b"), testutil.NewTestTopic("c")))

	first, err := reg.CrossReferencesOf("a")
	require.NoError(t, err)
	second, err := reg.CrossReferencesOf("a")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, "zz", first[1].TargetID)
}

func TestCrossReferencesOf_UnknownID(t *testing.T) {
	reg := buildRegistry(t, subdomainWith(t, "x", testutil.NewTestTopic("a")))

	_, err := reg.CrossReferencesOf("nope")
	assert.ErrorIs(t, err, registry.ErrNotFound)

	refs, err := reg.CrossReferencesOf("a")
	require.NoError(t, err)
	assert.NotNil(t, refs)
	assert.Empty(t, refs)
}

func messagesOf(issues []validate.Issue) []string {
	out := make([]string, 0, len(issues))
	for _, is := range issues {
		out = append(out, is.Message)
	}
	return out
}
