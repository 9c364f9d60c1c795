package domain

type TopicType string

const (
	TopicConcept   TopicType = "concept"
	TopicCondition TopicType = "condition"
	TopicTopic     TopicType = "topic"
	TopicProcedure TopicType = "procedure"
	TopicStructure TopicType = "structure"
	TopicSystem    TopicType = "system"
	TopicPathway   TopicType = "pathway"
	TopicProcess   TopicType = "process"
)

// KnownTopicTypes is the vocabulary of topic types in use. The set is open:
// other values are accepted but reported as warnings.
var KnownTopicTypes = map[TopicType]bool{
	TopicConcept: true, TopicCondition: true, TopicTopic: true, TopicProcedure: true,
	TopicStructure: true, TopicSystem: true, TopicPathway: true, TopicProcess: true,
}

type TopicStatus string

const (
	StatusDraft     TopicStatus = "draft"
	StatusReview    TopicStatus = "review"
	StatusPublished TopicStatus = "published"
	StatusArchived  TopicStatus = "archived"
)

// ValidStatuses is the closed set of accepted status strings.
var ValidStatuses = map[TopicStatus]bool{
	StatusDraft: true, StatusReview: true, StatusPublished: true, StatusArchived: true,
}

type Relationship string

const (
	RelRelated      Relationship = "related"
	RelParent       Relationship = "parent"
	RelChild        Relationship = "child"
	RelSibling      Relationship = "sibling"
	RelSeeAlso      Relationship = "see-also"
	RelPrerequisite Relationship = "prerequisite"
)

// KnownRelationships is the open vocabulary of cross-reference labels.
var KnownRelationships = map[Relationship]bool{
	RelRelated: true, RelParent: true, RelChild: true,
	RelSibling: true, RelSeeAlso: true, RelPrerequisite: true,
}

type ClinicalRelevance string

const (
	RelevanceLow      ClinicalRelevance = "low"
	RelevanceMedium   ClinicalRelevance = "medium"
	RelevanceHigh     ClinicalRelevance = "high"
	RelevanceCritical ClinicalRelevance = "critical"
)

// ValidClinicalRelevance is the closed set of clinical relevance grades.
var ValidClinicalRelevance = map[ClinicalRelevance]bool{
	RelevanceLow: true, RelevanceMedium: true, RelevanceHigh: true, RelevanceCritical: true,
}

// KnownCitationTypes lists citation kinds seen in authored content.
var KnownCitationTypes = map[string]bool{
	"textbook": true, "journal": true, "guideline": true, "website": true, "article": true,
}

// ComplexityLevel is a reading tier from 1 (lay reader) to 5 (specialist).
type ComplexityLevel int

const (
	MinLevel ComplexityLevel = 1
	MaxLevel ComplexityLevel = 5
)

// Valid reports whether the level is within 1..5.
func (l ComplexityLevel) Valid() bool {
	return l >= MinLevel && l <= MaxLevel
}
