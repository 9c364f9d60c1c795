package domain

import "fmt"

// statusRank orders statuses along the authoring lifecycle.
var statusRank = map[TopicStatus]int{
	StatusDraft:     0,
	StatusReview:    1,
	StatusPublished: 2,
	StatusArchived:  3,
}

// CanTransition reports whether moving a topic from one status to another
// follows the authoring convention draft -> review -> published -> archived.
// Review may fall back to draft. Nothing leaves archived. The registry never
// enforces this; build pipelines opt in.
func CanTransition(from, to TopicStatus) bool {
	if from == to {
		return true
	}
	fr, okFrom := statusRank[from]
	tr, okTo := statusRank[to]
	if !okFrom || !okTo {
		return false
	}
	if from == StatusArchived {
		return false
	}
	if from == StatusReview && to == StatusDraft {
		return true
	}
	return tr > fr
}

// CheckRevision compares a stored record against its re-authored replacement
// and returns a description of each lifecycle rule the edit breaks.
func CheckRevision(prev, next *TopicRecord) []string {
	var problems []string
	if next.Version < prev.Version {
		problems = append(problems, fmt.Sprintf("version went backwards from %d to %d", prev.Version, next.Version))
	}
	if !CanTransition(prev.Status, next.Status) {
		problems = append(problems, fmt.Sprintf("status transition %s -> %s is not allowed", prev.Status, next.Status))
	}
	return problems
}
