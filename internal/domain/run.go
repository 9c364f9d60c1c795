package domain

import "time"

// ValidationRun is a persisted summary of one corpus validation.
type ValidationRun struct {
	ID           string
	StartedAt    time.Time
	TopicCount   int
	ErrorCount   int
	WarningCount int
	ReportJSON   string
}

// Passed reports whether the run found no errors.
func (r *ValidationRun) Passed() bool {
	return r.ErrorCount == 0
}

// DisplayID truncates ID to 8 characters for tables.
func (r *ValidationRun) DisplayID() string {
	if len(r.ID) >= 8 {
		return r.ID[:8]
	}
	return r.ID
}
