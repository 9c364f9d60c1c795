package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/medcorpus/internal/domain"
	"github.com/alexanderramin/medcorpus/internal/registry"
)

// FormatTopic renders one topic. When only is non-zero, just that level is
// shown.
func FormatTopic(rec *domain.TopicRecord, subdomain string, only domain.ComplexityLevel) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n", Bold(rec.DisplayName()), Dim("("+rec.ID+")"))
	fmt.Fprintf(&b, "%s %s  %s %s  %s %s  %s v%d\n",
		Dim("subdomain"), subdomain,
		Dim("type"), rec.Type,
		Dim("status"), StatusLabel(rec.Status),
		Dim("version"), rec.Version)
	if len(rec.AlternateNames) > 0 {
		fmt.Fprintf(&b, "%s %s\n", Dim("also"), strings.Join(rec.AlternateNames, ", "))
	}
	if len(rec.Tags.Systems) > 0 {
		fmt.Fprintf(&b, "%s %s\n", Dim("systems"), strings.Join(rec.Tags.Systems, ", "))
	}
	if rec.Tags.ClinicalRelevance != "" {
		fmt.Fprintf(&b, "%s %s\n", Dim("clinical relevance"), rec.Tags.ClinicalRelevance)
	}

	for _, lvl := range rec.SortedLevels() {
		if only != 0 && lvl != only {
			continue
		}
		b.WriteString("\n")
		b.WriteString(formatLevel(lvl, rec.Levels[lvl]))
	}

	if len(rec.Citations) > 0 && only == 0 {
		b.WriteString("\n")
		b.WriteString(Header("Citations"))
		b.WriteString("\n")
		for _, c := range rec.Citations {
			fmt.Fprintf(&b, "[%s] %s. %s\n", c.ID, c.Title, Dim(c.Source))
		}
	}
	return b.String()
}

func formatLevel(lvl domain.ComplexityLevel, c domain.LeveledContent) string {
	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("Level %d", lvl)))
	b.WriteString("\n")
	b.WriteString(c.Summary)
	b.WriteString("\n")
	if c.Explanation != "" {
		b.WriteString("\n")
		b.WriteString(c.Explanation)
		b.WriteString("\n")
	}
	if len(c.KeyTerms) > 0 {
		b.WriteString("\n")
		for _, kt := range c.KeyTerms {
			fmt.Fprintf(&b, "  %s %s\n", StyleBlue.Render(kt.Term+":"), kt.Definition)
		}
	}
	if c.ClinicalNotes != "" {
		fmt.Fprintf(&b, "\n%s %s\n", StylePurple.Render("clinical notes:"), c.ClinicalNotes)
	}
	return b.String()
}

// FormatTopicList renders topics as a table. subdomainOf resolves the
// owning subdomain of each id.
func FormatTopicList(recs []*domain.TopicRecord, subdomainOf func(id string) string) string {
	if len(recs) == 0 {
		return Dim("no topics match") + "\n"
	}
	t := NewTable("ID", "NAME", "TYPE", "STATUS", "LEVELS", "SUBDOMAIN")
	for _, rec := range recs {
		t.AddRow(rec.ID, rec.DisplayName(), string(rec.Type), StatusLabel(rec.Status),
			levelList(rec.SortedLevels()), subdomainOf(rec.ID))
	}
	return t.String() + Dim(fmt.Sprintf("%d topic(s)", len(recs))) + "\n"
}

// FormatCrossRefs renders the resolved edges of one topic.
func FormatCrossRefs(id string, refs []registry.ResolvedReference) string {
	if len(refs) == 0 {
		return Dim(id+" has no cross-references") + "\n"
	}
	t := NewTable("RELATIONSHIP", "TARGET", "TYPE", "SUBDOMAIN", "STATE")
	for _, ref := range refs {
		t.AddRow(string(ref.Relationship), ref.TargetID, string(ref.TargetType), ref.TargetSubdomain, referenceState(ref))
	}
	return t.String()
}

func referenceState(ref registry.ResolvedReference) string {
	switch {
	case !ref.Resolved:
		return StyleRed.Render("dangling")
	case ref.SelfReference:
		return StyleYellow.Render("self")
	case ref.TypeMismatch:
		return StyleYellow.Render("type mismatch")
	default:
		return StyleGreen.Render("ok")
	}
}

func levelList(levels []domain.ComplexityLevel) string {
	parts := make([]string, len(levels))
	for i, l := range levels {
		parts[i] = fmt.Sprintf("%d", l)
	}
	return strings.Join(parts, ",")
}
