// Package formatter renders registry results for the terminal.
package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/medcorpus/internal/domain"
	"github.com/alexanderramin/medcorpus/internal/validate"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// SeverityLabel renders an issue severity as a colored tag.
func SeverityLabel(sev validate.Severity) string {
	switch sev {
	case validate.SeverityError:
		return StyleRed.Render("ERROR")
	case validate.SeverityWarning:
		return StyleYellow.Render("WARN")
	default:
		return StyleDim.Render(strings.ToUpper(string(sev)))
	}
}

// StatusLabel colors a topic status along the authoring lifecycle.
func StatusLabel(status domain.TopicStatus) string {
	switch status {
	case domain.StatusPublished:
		return StyleGreen.Render(string(status))
	case domain.StatusReview:
		return StyleBlue.Render(string(status))
	case domain.StatusDraft:
		return StyleYellow.Render(string(status))
	case domain.StatusArchived:
		return StyleDim.Render(string(status))
	default:
		return StyleRed.Render(string(status))
	}
}

// Verdict renders the pass/fail line that ends a validation report.
func Verdict(passed bool, errs, warnings int) string {
	if passed {
		return StyleGreen.Render(fmt.Sprintf("✔ PASSED (%d warning(s))", warnings))
	}
	return StyleRed.Render(fmt.Sprintf("✘ FAILED (%d error(s), %d warning(s))", errs, warnings))
}

// Header renders an upper-cased section title over a dim rule.
func Header(text string) string {
	upper := strings.ToUpper(text)
	return StyleHeader.Render(upper) + "\n" + StyleDim.Render(strings.Repeat("─", lipgloss.Width(upper)))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
