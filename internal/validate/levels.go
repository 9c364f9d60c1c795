package validate

import (
	"strings"

	"github.com/alexanderramin/medcorpus/internal/domain"
)

// CheckLevels verifies the level invariants of a topic: level 1 exists, every
// key is within 1..5, no two entries declare the same level, and each entry
// carries a summary, an explanation, and well-formed key terms.
func CheckLevels(rec *domain.TopicRecord) []Issue {
	var issues []Issue
	id := rec.ID

	if _, ok := rec.Levels[domain.MinLevel]; !ok {
		issues = append(issues, errorIssue(CategoryLevels, "level-missing", id, 1, "level 1 missing"))
	}

	declared := make(map[domain.ComplexityLevel]int, len(rec.Levels))
	for _, key := range rec.Levels.Keys() {
		content := rec.Levels[key]
		lvl := int(key)

		if !key.Valid() {
			issues = append(issues, errorIssue(CategoryLevels, "level-range", id, lvl, "level %d out of range", lvl))
		}

		effective := key
		if content.Level != 0 {
			effective = content.Level
			if content.Level != key {
				issues = append(issues, errorIssue(CategoryLevels, "level-mismatch", id, lvl,
					"level key %d declares level %d", lvl, int(content.Level)))
				if !content.Level.Valid() {
					issues = append(issues, errorIssue(CategoryLevels, "level-range", id, lvl,
						"level %d out of range", int(content.Level)))
				}
			}
		}
		declared[effective]++
		if declared[effective] == 2 {
			issues = append(issues, errorIssue(CategoryLevels, "level-duplicate", id, int(effective),
				"duplicate level %d", int(effective)))
		}

		issues = append(issues, checkLevelContent(id, lvl, content)...)
	}

	return issues
}

func checkLevelContent(id string, lvl int, c domain.LeveledContent) []Issue {
	var issues []Issue

	if strings.TrimSpace(c.Summary) == "" {
		issues = append(issues, errorIssue(CategoryLevels, "summary-empty", id, lvl, "empty summary at level %d", lvl))
	}
	if strings.TrimSpace(c.Explanation) == "" {
		issues = append(issues, errorIssue(CategoryLevels, "explanation-empty", id, lvl, "empty explanation at level %d", lvl))
	}

	if len(c.KeyTerms) == 0 {
		issues = append(issues, warningIssue(CategoryLevels, "key-terms-missing", id, lvl, "no key terms at level %d", lvl))
		return issues
	}

	seen := make(map[string]bool, len(c.KeyTerms))
	for _, kt := range c.KeyTerms {
		term := strings.TrimSpace(kt.Term)
		if term == "" {
			issues = append(issues, errorIssue(CategoryLevels, "key-term-empty", id, lvl, "empty key term at level %d", lvl))
			continue
		}
		if strings.TrimSpace(kt.Definition) == "" {
			issues = append(issues, errorIssue(CategoryLevels, "key-term-definition-empty", id, lvl,
				"empty definition for key term %q at level %d", term, lvl))
		}
		norm := strings.ToLower(term)
		if seen[norm] {
			issues = append(issues, errorIssue(CategoryLevels, "key-term-duplicate", id, lvl,
				"duplicate key term %q at level %d", term, lvl))
		}
		seen[norm] = true
	}

	return issues
}
