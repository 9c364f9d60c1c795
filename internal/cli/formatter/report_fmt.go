package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/medcorpus/internal/registry"
	"github.com/alexanderramin/medcorpus/internal/validate"
)

// FormatReport renders a validation report. Warnings are listed only when
// showWarnings is set; they are always counted.
func FormatReport(rep *registry.ValidationReport, showWarnings bool) string {
	var b strings.Builder
	errs, warns := rep.ErrorCount(), rep.WarningCount()

	b.WriteString(Header("Validation"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%d topic(s) in %d subdomain(s)\n\n", rep.TopicCount, rep.SubdomainCount)

	shown := rep.Issues
	if !showWarnings {
		shown = validate.Filter(rep.Issues, validate.SeverityError)
	}
	if len(shown) > 0 {
		t := NewTable("SEVERITY", "CATEGORY", "WHERE", "MESSAGE")
		for _, is := range shown {
			t.AddRow(SeverityLabel(is.Severity), string(is.Category), issueLocation(is), is.Message)
		}
		b.WriteString(t.String())
		b.WriteString("\n")
	}

	if showWarnings && len(rep.Dangling) > 0 {
		b.WriteString(Header("Dangling references"))
		b.WriteString("\n")
		t := NewTable("SOURCE", "SUBDOMAIN", "RELATIONSHIP", "TARGET")
		for _, d := range rep.Dangling {
			t.AddRow(d.SourceID, d.Subdomain, string(d.Relationship), StyleRed.Render(d.TargetID))
		}
		b.WriteString(t.String())
		b.WriteString("\n")
	}

	if showWarnings {
		for _, drift := range rep.CategoryDrift {
			if drift.Clean() {
				continue
			}
			b.WriteString(FormatDrift(drift))
			b.WriteString("\n")
		}
	}

	if !showWarnings && warns > 0 {
		b.WriteString(Dim(fmt.Sprintf("%d warning(s) hidden, rerun with --warnings to list them", warns)))
		b.WriteString("\n")
	}
	b.WriteString(Verdict(rep.Passed(), errs, warns))
	b.WriteString("\n")
	return b.String()
}

// FormatIssues renders a bare issue list, one per line.
func FormatIssues(issues []validate.Issue) string {
	var b strings.Builder
	for _, is := range issues {
		fmt.Fprintf(&b, "%s %s %s\n", SeverityLabel(is.Severity), Dim(issueLocation(is)), is.Message)
	}
	return b.String()
}

func issueLocation(is validate.Issue) string {
	var parts []string
	for _, p := range []string{is.Subdomain, is.TopicID} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if is.Level > 0 {
		parts = append(parts, fmt.Sprintf("L%d", is.Level))
	}
	if is.File != "" {
		parts = append(parts, is.File)
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, "/")
}
