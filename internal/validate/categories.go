package validate

import (
	"sort"

	"github.com/alexanderramin/medcorpus/internal/domain"
)

// MapDrift compares the key set of one side-table map against the canonical
// category list.
type MapDrift struct {
	Map            string   `json:"map"`
	Present        bool     `json:"present"`
	MissingFromMap []string `json:"missingFromMap,omitempty"`
	NotInList      []string `json:"notInList,omitempty"`
	Matched        int      `json:"matched"`
}

// Clean reports whether the map keys match the list exactly. An absent map is
// not compared and counts as clean.
func (d MapDrift) Clean() bool {
	return len(d.MissingFromMap) == 0 && len(d.NotInList) == 0
}

// CategoryDrift is the consistency result for one subdomain's category index.
type CategoryDrift struct {
	Subdomain  string   `json:"subdomain"`
	Duplicates []string `json:"duplicates,omitempty"`
	Priorities MapDrift `json:"priorities"`
	Subtopics  MapDrift `json:"subtopics"`
	// UnknownSubtopics holds subtopic slugs that name no registered topic.
	// Only filled when slug checking is enabled.
	UnknownSubtopics []string `json:"unknownSubtopics,omitempty"`
}

func (c CategoryDrift) Clean() bool {
	return len(c.Duplicates) == 0 && c.Priorities.Clean() && c.Subtopics.Clean() && len(c.UnknownSubtopics) == 0
}

// CheckCategories compares the priority and subtopic maps of idx against its
// category list. Keys missing from a map keep list order; keys absent from the
// list are sorted.
func CheckCategories(subdomain string, idx *domain.CategoryIndex) CategoryDrift {
	drift := CategoryDrift{
		Subdomain:  subdomain,
		Priorities: MapDrift{Map: "priorities"},
		Subtopics:  MapDrift{Map: "subtopics"},
	}
	if idx == nil {
		return drift
	}

	listed := make(map[string]bool, len(idx.Categories))
	var order []string
	for _, key := range idx.Categories {
		if listed[key] {
			drift.Duplicates = appendOnce(drift.Duplicates, key)
			continue
		}
		listed[key] = true
		order = append(order, key)
	}

	if idx.Priorities != nil {
		drift.Priorities = compareKeys("priorities", order, listed, keysOf(idx.Priorities))
	}
	if idx.Subtopics != nil {
		drift.Subtopics = compareKeys("subtopics", order, listed, keysOf(idx.Subtopics))
	}
	return drift
}

// CheckSubtopicSlugs fills UnknownSubtopics with every subtopic slug for which
// exists returns false. Slugs are reported sorted and once each.
func CheckSubtopicSlugs(drift *CategoryDrift, idx *domain.CategoryIndex, exists func(id string) bool) {
	if idx == nil || exists == nil {
		return
	}
	seen := make(map[string]bool)
	for _, slugs := range idx.Subtopics {
		for _, slug := range slugs {
			if slug == "" || seen[slug] {
				continue
			}
			seen[slug] = true
			if !exists(slug) {
				drift.UnknownSubtopics = append(drift.UnknownSubtopics, slug)
			}
		}
	}
	sort.Strings(drift.UnknownSubtopics)
}

// Issues renders the drift as category-drift warnings.
func (c CategoryDrift) Issues() []Issue {
	var issues []Issue
	add := func(rule, format string, args ...any) {
		is := warningIssue(CategoryIndexDrift, rule, "", 0, format, args...)
		is.Subdomain = c.Subdomain
		issues = append(issues, is)
	}

	for _, key := range c.Duplicates {
		add("category-duplicate", "category %q listed more than once", key)
	}
	for _, m := range []MapDrift{c.Priorities, c.Subtopics} {
		for _, key := range m.MissingFromMap {
			add("category-missing-from-map", "category %q is listed but missing from %s", key, m.Map)
		}
		for _, key := range m.NotInList {
			add("category-not-in-list", "%s key %q is not in the category list", m.Map, key)
		}
	}
	for _, slug := range c.UnknownSubtopics {
		add("subtopic-unregistered", "subtopic %q is not a registered topic", slug)
	}
	return issues
}

func compareKeys(name string, order []string, listed map[string]bool, mapKeys []string) MapDrift {
	d := MapDrift{Map: name, Present: true}
	inMap := make(map[string]bool, len(mapKeys))
	for _, k := range mapKeys {
		inMap[k] = true
		if !listed[k] {
			d.NotInList = append(d.NotInList, k)
		}
	}
	for _, k := range order {
		if inMap[k] {
			d.Matched++
		} else {
			d.MissingFromMap = append(d.MissingFromMap, k)
		}
	}
	sort.Strings(d.NotInList)
	return d
}

func keysOf[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

func appendOnce(list []string, v string) []string {
	for _, s := range list {
		if s == v {
			return list
		}
	}
	return append(list, v)
}
