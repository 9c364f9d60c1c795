package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/medcorpus/internal/domain"
	"github.com/alexanderramin/medcorpus/internal/registry"
)

func FormatStats(st registry.Stats) string {
	var b strings.Builder
	b.WriteString(Header("Corpus"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%d topic(s), %d cross-reference(s), %d dangling\n\n", st.Topics, st.CrossReferences, st.Dangling)

	subs := NewTable("SUBDOMAIN", "TOPICS", "CATEGORIES").AlignRight(1, 2)
	for _, s := range st.Subdomains {
		subs.AddRow(s.Name, fmt.Sprintf("%d", s.Topics), fmt.Sprintf("%d", s.Categories))
	}
	b.WriteString(subs.String())
	b.WriteString("\n")

	statuses := make(map[string]int, len(st.ByStatus))
	for k, v := range st.ByStatus {
		statuses[string(k)] = v
	}
	b.WriteString(countLine("status", statuses))

	types := make(map[string]int, len(st.ByType))
	for k, v := range st.ByType {
		types[string(k)] = v
	}
	b.WriteString(countLine("type", types))

	levels := NewTable("LEVEL", "TOPICS").AlignRight(0, 1)
	for l := domain.MinLevel; l <= domain.MaxLevel; l++ {
		levels.AddRow(fmt.Sprintf("%d", l), fmt.Sprintf("%d", st.ByLevel[l]))
	}
	b.WriteString("\n")
	b.WriteString(levels.String())
	return b.String()
}

// countLine renders "label: a=1 b=2" with keys sorted.
func countLine(label string, counts map[string]int) string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%d", k, counts[k])
	}
	return fmt.Sprintf("%s %s\n", Dim(label+":"), strings.Join(parts, " "))
}
