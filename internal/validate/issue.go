// Package validate checks topic records and category indexes and reports
// problems as Issue values. Nothing in this package returns an error for bad
// content; callers decide whether an issue fails a build.
package validate

import (
	"fmt"
	"sort"
	"strings"
)

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

type Category string

const (
	CategorySchema         Category = "schema"
	CategoryLevels         Category = "levels"
	CategoryMetadata       Category = "metadata"
	CategoryQuality        Category = "content-quality"
	CategoryIdentity       Category = "identity"
	CategoryCrossReference Category = "cross-reference"
	CategoryIndexDrift     Category = "category-drift"
	CategoryLifecycle      Category = "lifecycle"
)

// Issue is one finding against a topic, subdomain, or file.
type Issue struct {
	Severity  Severity `json:"severity"`
	Category  Category `json:"category"`
	Rule      string   `json:"rule"`
	TopicID   string   `json:"topicId,omitempty"`
	Subdomain string   `json:"subdomain,omitempty"`
	Level     int      `json:"level,omitempty"`
	File      string   `json:"file,omitempty"`
	Message   string   `json:"message"`
}

func (i Issue) String() string {
	var where []string
	if i.Subdomain != "" {
		where = append(where, i.Subdomain)
	}
	if i.TopicID != "" {
		where = append(where, i.TopicID)
	}
	if i.Level > 0 {
		where = append(where, fmt.Sprintf("L%d", i.Level))
	}
	if i.File != "" {
		where = append(where, i.File)
	}
	loc := strings.Join(where, "/")
	if loc == "" {
		return fmt.Sprintf("%s [%s] %s", i.Severity, i.Category, i.Message)
	}
	return fmt.Sprintf("%s [%s] %s: %s", i.Severity, i.Category, loc, i.Message)
}

// IsError reports whether the issue has error severity.
func (i Issue) IsError() bool {
	return i.Severity == SeverityError
}

func errorIssue(cat Category, rule, topicID string, level int, format string, args ...any) Issue {
	return Issue{
		Severity: SeverityError,
		Category: cat,
		Rule:     rule,
		TopicID:  topicID,
		Level:    level,
		Message:  fmt.Sprintf(format, args...),
	}
}

func warningIssue(cat Category, rule, topicID string, level int, format string, args ...any) Issue {
	is := errorIssue(cat, rule, topicID, level, format, args...)
	is.Severity = SeverityWarning
	return is
}

// WithSubdomain stamps a subdomain onto every issue that lacks one.
func WithSubdomain(issues []Issue, subdomain string) []Issue {
	for i := range issues {
		if issues[i].Subdomain == "" {
			issues[i].Subdomain = subdomain
		}
	}
	return issues
}

// SortIssues orders issues errors first, then by subdomain, topic, level,
// category, rule, and message, so reports compare equal across runs.
func SortIssues(issues []Issue) {
	sort.SliceStable(issues, func(a, b int) bool {
		x, y := issues[a], issues[b]
		if x.Severity != y.Severity {
			return x.Severity == SeverityError
		}
		if x.Subdomain != y.Subdomain {
			return x.Subdomain < y.Subdomain
		}
		if x.TopicID != y.TopicID {
			return x.TopicID < y.TopicID
		}
		if x.Level != y.Level {
			return x.Level < y.Level
		}
		if x.Category != y.Category {
			return x.Category < y.Category
		}
		if x.Rule != y.Rule {
			return x.Rule < y.Rule
		}
		if x.File != y.File {
			return x.File < y.File
		}
		return x.Message < y.Message
	})
}

// Count returns the number of error and warning issues.
func Count(issues []Issue) (errs, warnings int) {
	for _, is := range issues {
		if is.IsError() {
			errs++
		} else {
			warnings++
		}
	}
	return errs, warnings
}

// HasErrors reports whether any issue has error severity.
func HasErrors(issues []Issue) bool {
	for _, is := range issues {
		if is.IsError() {
			return true
		}
	}
	return false
}

// Filter returns the issues with the given severity.
func Filter(issues []Issue, sev Severity) []Issue {
	var out []Issue
	for _, is := range issues {
		if is.Severity == sev {
			out = append(out, is)
		}
	}
	return out
}
