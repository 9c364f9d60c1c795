package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/medcorpus/internal/domain"
	"github.com/alexanderramin/medcorpus/internal/validate"
)

// FormatCategories lists a subdomain's categories with their priority and
// subtopic count, followed by any drift.
func FormatCategories(subdomain string, idx *domain.CategoryIndex, drift validate.CategoryDrift) string {
	var b strings.Builder
	b.WriteString(Header(subdomain + " categories"))
	b.WriteString("\n")

	t := NewTable("CATEGORY", "PRIORITY", "SUBTOPICS").AlignRight(2)
	for _, key := range idx.Categories {
		priority, ok := idx.Priority(key)
		if !ok {
			priority = StyleRed.Render("missing")
		}
		subtopics := "-"
		if slugs, ok := idx.Subtopics[key]; ok {
			subtopics = fmt.Sprintf("%d", len(slugs))
		}
		t.AddRow(key, priority, subtopics)
	}
	b.WriteString(t.String())
	b.WriteString("\n")
	b.WriteString(formatPriorityGroups(idx))

	if drift.Clean() {
		b.WriteString(StyleGreen.Render("✔ side tables match the category list"))
		b.WriteString("\n")
		return b.String()
	}
	b.WriteString(FormatDrift(drift))
	return b.String()
}

var priorityRank = map[string]int{"critical": 0, "high": 1, "medium": 2, "low": 3}

// formatPriorityGroups lists category keys under each priority, most urgent
// first. Unknown priorities follow in alphabetical order.
func formatPriorityGroups(idx *domain.CategoryIndex) string {
	grouped := idx.ByPriority()
	if len(grouped) == 0 {
		return ""
	}
	priorities := make([]string, 0, len(grouped))
	for p := range grouped {
		priorities = append(priorities, p)
	}
	sort.Slice(priorities, func(i, j int) bool {
		ri, iok := priorityRank[priorities[i]]
		rj, jok := priorityRank[priorities[j]]
		if iok != jok {
			return iok
		}
		if iok && ri != rj {
			return ri < rj
		}
		return priorities[i] < priorities[j]
	})

	var b strings.Builder
	for _, p := range priorities {
		fmt.Fprintf(&b, "  %s %s\n", Dim(p+":"), strings.Join(grouped[p], ", "))
	}
	b.WriteString("\n")
	return b.String()
}

// FormatDrift renders the mismatches of one category index.
func FormatDrift(drift validate.CategoryDrift) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", StyleYellow.Render("category drift in"), Bold(drift.Subdomain))
	line := func(label string, keys []string) {
		if len(keys) == 0 {
			return
		}
		sorted := append([]string(nil), keys...)
		sort.Strings(sorted)
		fmt.Fprintf(&b, "  %s %s\n", Dim(label+":"), strings.Join(sorted, ", "))
	}
	line("listed more than once", drift.Duplicates)
	for _, m := range []validate.MapDrift{drift.Priorities, drift.Subtopics} {
		line("missing from "+m.Map, m.MissingFromMap)
		line(m.Map+" keys not in list", m.NotInList)
	}
	line("subtopics naming no topic", drift.UnknownSubtopics)
	return b.String()
}
