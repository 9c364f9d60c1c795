package registry

import (
	"fmt"

	"github.com/alexanderramin/medcorpus/internal/domain"
	"github.com/alexanderramin/medcorpus/internal/validate"
)

// ResolvedReference is one authored cross-reference edge plus its resolution.
type ResolvedReference struct {
	TargetID        string              `json:"targetId"`
	TargetType      domain.TopicType    `json:"targetType,omitempty"`
	Relationship    domain.Relationship `json:"relationship"`
	Label           string              `json:"label,omitempty"`
	Resolved        bool                `json:"resolved"`
	TargetSubdomain string              `json:"targetSubdomain,omitempty"`
	SelfReference   bool                `json:"selfReference,omitempty"`
	// TypeMismatch is set when the edge declares a targetType that differs
	// from the resolved record's type.
	TypeMismatch bool `json:"typeMismatch,omitempty"`
}

// DanglingReference is an edge whose target id is not registered.
type DanglingReference struct {
	SourceID     string              `json:"sourceId"`
	Subdomain    string              `json:"subdomain"`
	TargetID     string              `json:"targetId"`
	Relationship domain.Relationship `json:"relationship"`
}

// CrossReferencesOf resolves every edge of the record registered under id,
// in authored order. It returns an error wrapping ErrNotFound when id itself
// is not registered.
func (r *Registry) CrossReferencesOf(id string) ([]ResolvedReference, error) {
	rec, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	return r.resolve(rec), nil
}

func (r *Registry) resolve(rec *domain.TopicRecord) []ResolvedReference {
	out := make([]ResolvedReference, 0, len(rec.CrossReferences))
	for _, ref := range rec.CrossReferences {
		res := ResolvedReference{
			TargetID:      ref.TargetID,
			TargetType:    ref.TargetType,
			Relationship:  ref.Relationship,
			Label:         ref.Label,
			SelfReference: ref.TargetID == rec.ID,
		}
		if target, ok := r.byID[ref.TargetID]; ok {
			res.Resolved = true
			res.TargetSubdomain = r.subdomainOf[ref.TargetID]
			res.TypeMismatch = ref.TargetType != "" && ref.TargetType != target.Type
		}
		out = append(out, res)
	}
	return out
}

// DanglingReferences lists every unresolved edge across the registry,
// ordered by source id and then authored order.
func (r *Registry) DanglingReferences() []DanglingReference {
	r.mustBeBuilt()
	var out []DanglingReference
	for _, id := range r.sortedIDs {
		rec := r.byID[id]
		for _, ref := range rec.CrossReferences {
			if ref.TargetID == "" {
				continue
			}
			if _, ok := r.byID[ref.TargetID]; ok {
				continue
			}
			out = append(out, DanglingReference{
				SourceID:     id,
				Subdomain:    r.subdomainOf[id],
				TargetID:     ref.TargetID,
				Relationship: ref.Relationship,
			})
		}
	}
	return out
}

func (r *Registry) referenceIssues(rec *domain.TopicRecord) []validate.Issue {
	var issues []validate.Issue
	subdomain := r.subdomainOf[rec.ID]
	warn := func(rule, format string, args ...any) {
		issues = append(issues, validate.Issue{
			Severity:  validate.SeverityWarning,
			Category:  validate.CategoryCrossReference,
			Rule:      rule,
			TopicID:   rec.ID,
			Subdomain: subdomain,
			Message:   fmt.Sprintf(format, args...),
		})
	}

	for _, res := range r.resolve(rec) {
		switch {
		case res.TargetID == "":
			continue
		case res.SelfReference:
			warn("self-reference", "cross-reference points at itself (%s)", res.Relationship)
		case !res.Resolved:
			warn("dangling", "dangling cross-reference to %q", res.TargetID)
		case res.TypeMismatch:
			target := r.byID[res.TargetID]
			warn("target-type-mismatch", "cross-reference to %q declares targetType %q but the topic is %q",
				res.TargetID, res.TargetType, target.Type)
		}
	}
	return issues
}
