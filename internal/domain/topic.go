package domain

import (
	"regexp"
	"strings"
)

var kebabPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// TopicRecord is the top-level entry for one educational subject. Records are
// authored as data and treated as immutable once registered.
type TopicRecord struct {
	ID              string           `json:"id" yaml:"id" validate:"required,urlsafe"`
	Type            TopicType        `json:"type" yaml:"type" validate:"required"`
	Name            string           `json:"name" yaml:"name" validate:"required"`
	NameEs          string           `json:"nameEs,omitempty" yaml:"nameEs,omitempty"`
	AlternateNames  []string         `json:"alternateNames" yaml:"alternateNames"`
	HPOID           string           `json:"hpoId,omitempty" yaml:"hpoId,omitempty"`
	Levels          Levels           `json:"levels" yaml:"levels" validate:"required"`
	Media           []MediaRef       `json:"media" yaml:"media"`
	Citations       []Citation       `json:"citations" yaml:"citations" validate:"dive"`
	CrossReferences []CrossReference `json:"crossReferences" yaml:"crossReferences" validate:"dive"`
	Tags            ContentTags      `json:"tags" yaml:"tags"`
	CreatedAt       string           `json:"createdAt" yaml:"createdAt" validate:"required"`
	UpdatedAt       string           `json:"updatedAt" yaml:"updatedAt" validate:"required"`
	Version         int              `json:"version" yaml:"version" validate:"gte=1"`
	Status          TopicStatus      `json:"status" yaml:"status" validate:"required"`
}

// LeveledContent is one complexity tier of a topic.
type LeveledContent struct {
	Level                   ComplexityLevel `json:"level" yaml:"level"`
	Summary                 string          `json:"summary" yaml:"summary"`
	Explanation             string          `json:"explanation" yaml:"explanation"`
	KeyTerms                []KeyTerm       `json:"keyTerms" yaml:"keyTerms"`
	Analogies               []string        `json:"analogies" yaml:"analogies"`
	Examples                []string        `json:"examples" yaml:"examples"`
	ClinicalNotes           string          `json:"clinicalNotes,omitempty" yaml:"clinicalNotes,omitempty"`
	PatientCounselingPoints []string        `json:"patientCounselingPoints" yaml:"patientCounselingPoints"`
}

type KeyTerm struct {
	Term          string `json:"term" yaml:"term"`
	Definition    string `json:"definition" yaml:"definition"`
	Pronunciation string `json:"pronunciation,omitempty" yaml:"pronunciation,omitempty"`
}

// MediaRef points at an asset by filename. The asset itself is never resolved here.
type MediaRef struct {
	ID          string `json:"id" yaml:"id"`
	Type        string `json:"type" yaml:"type"`
	Filename    string `json:"filename" yaml:"filename"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
}

type Citation struct {
	ID           string   `json:"id" yaml:"id" validate:"required"`
	Type         string   `json:"type" yaml:"type"`
	Title        string   `json:"title" yaml:"title" validate:"required"`
	Authors      []string `json:"authors" yaml:"authors"`
	Source       string   `json:"source" yaml:"source" validate:"required"`
	URL          string   `json:"url,omitempty" yaml:"url,omitempty"`
	Chapter      string   `json:"chapter,omitempty" yaml:"chapter,omitempty"`
	Page         string   `json:"page,omitempty" yaml:"page,omitempty"`
	AccessedDate string   `json:"accessedDate,omitempty" yaml:"accessedDate,omitempty"`
	License      string   `json:"license,omitempty" yaml:"license,omitempty"`
}

// CrossReference is a directed, labeled edge to another topic.
type CrossReference struct {
	TargetID     string       `json:"targetId" yaml:"targetId" validate:"required"`
	TargetType   TopicType    `json:"targetType" yaml:"targetType"`
	Relationship Relationship `json:"relationship" yaml:"relationship" validate:"required"`
	Label        string       `json:"label" yaml:"label"`
}

type ContentTags struct {
	Systems           []string          `json:"systems" yaml:"systems"`
	Topics            []string          `json:"topics" yaml:"topics"`
	Keywords          []string          `json:"keywords" yaml:"keywords"`
	ClinicalRelevance ClinicalRelevance `json:"clinicalRelevance,omitempty" yaml:"clinicalRelevance,omitempty"`
	ExamRelevance     *ExamRelevance    `json:"examRelevance,omitempty" yaml:"examRelevance,omitempty"`
}

type ExamRelevance struct {
	USMLE bool     `json:"usmle,omitempty" yaml:"usmle,omitempty"`
	NBME  bool     `json:"nbme,omitempty" yaml:"nbme,omitempty"`
	Shelf []string `json:"shelf,omitempty" yaml:"shelf,omitempty"`
}

// IsKebabCase reports whether the id follows the lower-case, hyphen-separated
// convention used across the corpus.
func (t *TopicRecord) IsKebabCase() bool {
	return kebabPattern.MatchString(t.ID)
}

// Level returns the content for the given tier, if authored.
func (t *TopicRecord) Level(l ComplexityLevel) (LeveledContent, bool) {
	c, ok := t.Levels[l]
	return c, ok
}

// SortedLevels returns the authored level keys in ascending order.
func (t *TopicRecord) SortedLevels() []ComplexityLevel {
	return t.Levels.Keys()
}

// DisplayName returns Name, falling back to the id.
func (t *TopicRecord) DisplayName() string {
	if strings.TrimSpace(t.Name) != "" {
		return t.Name
	}
	return t.ID
}

// HasTag reports whether tag matches any system, topic, or keyword tag.
// Matching is case-insensitive.
func (t *TopicRecord) HasTag(tag string) bool {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return false
	}
	for _, group := range [][]string{t.Tags.Systems, t.Tags.Topics, t.Tags.Keywords} {
		for _, v := range group {
			if strings.EqualFold(v, tag) {
				return true
			}
		}
	}
	return false
}
