package registry

import (
	"sort"

	"github.com/alexanderramin/medcorpus/internal/domain"
	"github.com/alexanderramin/medcorpus/internal/validate"
)

// ValidationReport is the result of Validate. Equal registry state yields an
// equal report.
type ValidationReport struct {
	TopicCount     int                      `json:"topicCount"`
	SubdomainCount int                      `json:"subdomainCount"`
	Issues         []validate.Issue         `json:"issues"`
	Dangling       []DanglingReference      `json:"dangling"`
	CategoryDrift  []validate.CategoryDrift `json:"categoryDrift"`
}

func (rep *ValidationReport) ErrorCount() int {
	errs, _ := validate.Count(rep.Issues)
	return errs
}

func (rep *ValidationReport) WarningCount() int {
	_, warns := validate.Count(rep.Issues)
	return warns
}

// Passed reports whether the report has no error-severity issues.
func (rep *ValidationReport) Passed() bool {
	return !validate.HasErrors(rep.Issues)
}

// Merge appends issues found outside the registry, such as decode failures,
// and restores the report ordering.
func (rep *ValidationReport) Merge(issues []validate.Issue) {
	if len(issues) == 0 {
		return
	}
	rep.Issues = append(rep.Issues, issues...)
	validate.SortIssues(rep.Issues)
}

// Validate runs the record checks, level checks, cross-reference resolution,
// and category consistency checks over the whole registry. It does not
// mutate the registry.
func (r *Registry) Validate() *ValidationReport {
	r.mustBeBuilt()
	rep := &ValidationReport{
		TopicCount:     len(r.order),
		SubdomainCount: len(r.subdomains),
		Issues:         []validate.Issue{},
		Dangling:       r.DanglingReferences(),
		CategoryDrift:  []validate.CategoryDrift{},
	}
	if rep.Dangling == nil {
		rep.Dangling = []DanglingReference{}
	}

	for _, id := range r.sortedIDs {
		rec := r.byID[id]
		rep.Issues = append(rep.Issues, validate.WithSubdomain(validate.CheckTopic(rec), r.subdomainOf[id])...)
		rep.Issues = append(rep.Issues, r.referenceIssues(rec)...)
	}

	for _, sub := range r.sortedSubdomains() {
		if sub.index == nil {
			continue
		}
		drift := validate.CheckCategories(sub.name, sub.index)
		if r.checkSlugs {
			validate.CheckSubtopicSlugs(&drift, sub.index, func(id string) bool {
				_, ok := r.byID[id]
				return ok
			})
		}
		rep.CategoryDrift = append(rep.CategoryDrift, drift)
		rep.Issues = append(rep.Issues, drift.Issues()...)
	}

	validate.SortIssues(rep.Issues)
	return rep
}

func (r *Registry) sortedSubdomains() []*Subdomain {
	subs := append([]*Subdomain(nil), r.subdomains...)
	sort.Slice(subs, func(i, j int) bool { return subs[i].name < subs[j].name })
	return subs
}

// SubdomainStats summarizes one subdomain.
type SubdomainStats struct {
	Name       string `json:"name"`
	Topics     int    `json:"topics"`
	Categories int    `json:"categories"`
}

// Stats is a count summary of the registry contents.
type Stats struct {
	Topics          int                            `json:"topics"`
	Subdomains      []SubdomainStats               `json:"subdomains"`
	ByStatus        map[domain.TopicStatus]int     `json:"byStatus"`
	ByType          map[domain.TopicType]int       `json:"byType"`
	ByLevel         map[domain.ComplexityLevel]int `json:"byLevel"`
	CrossReferences int                            `json:"crossReferences"`
	Dangling        int                            `json:"dangling"`
}

func (r *Registry) Stats() Stats {
	r.mustBeBuilt()
	st := Stats{
		Topics:   len(r.order),
		ByStatus: make(map[domain.TopicStatus]int),
		ByType:   make(map[domain.TopicType]int),
		ByLevel:  make(map[domain.ComplexityLevel]int),
		Dangling: len(r.DanglingReferences()),
	}
	for _, sub := range r.subdomains {
		ss := SubdomainStats{Name: sub.name, Topics: len(sub.order)}
		if sub.index != nil {
			ss.Categories = len(sub.index.Categories)
		}
		st.Subdomains = append(st.Subdomains, ss)
	}
	for _, id := range r.order {
		rec := r.byID[id]
		st.ByStatus[rec.Status]++
		st.ByType[rec.Type]++
		for _, l := range rec.Levels.Keys() {
			st.ByLevel[l]++
		}
		st.CrossReferences += len(rec.CrossReferences)
	}
	return st
}
