package registry

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/medcorpus/internal/validate"
)

// ErrNotFound is returned by lookups for ids that are not registered.
var ErrNotFound = errors.New("topic not found")

// DuplicateIDError is returned when a subdomain already holds a record with
// the same id. Registration never overwrites.
type DuplicateIDError struct {
	ID        string
	Subdomain string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("duplicate topic id %q in subdomain %q", e.ID, e.Subdomain)
}

// InvalidRecordError is returned by strict registration when a record fails
// validation. Issues holds the error-severity findings.
type InvalidRecordError struct {
	ID        string
	Subdomain string
	Issues    []validate.Issue
}

func (e *InvalidRecordError) Error() string {
	if len(e.Issues) == 0 {
		return fmt.Sprintf("invalid topic %q in subdomain %q", e.ID, e.Subdomain)
	}
	msgs := make([]string, 0, len(e.Issues))
	for _, is := range e.Issues {
		msgs = append(msgs, is.Message)
	}
	return fmt.Sprintf("invalid topic %q in subdomain %q: %s", e.ID, e.Subdomain, strings.Join(msgs, "; "))
}

// Collision is one id exported by more than one subdomain.
type Collision struct {
	ID         string   `json:"id"`
	Subdomains []string `json:"subdomains"`
}

// CollisionError is returned by Build when subdomains share ids. Collisions
// are sorted by id and each lists its subdomains sorted by name, so the
// report does not depend on merge order.
type CollisionError struct {
	Collisions []Collision
}

func (e *CollisionError) Error() string {
	parts := make([]string, 0, len(e.Collisions))
	for _, c := range e.Collisions {
		parts = append(parts, fmt.Sprintf("%q exported by %s", c.ID, strings.Join(c.Subdomains, ", ")))
	}
	return fmt.Sprintf("%d id collision(s): %s", len(e.Collisions), strings.Join(parts, "; "))
}

// Issues renders the collisions as identity errors.
func (e *CollisionError) Issues() []validate.Issue {
	issues := make([]validate.Issue, 0, len(e.Collisions))
	for _, c := range e.Collisions {
		issues = append(issues, validate.Issue{
			Severity: validate.SeverityError,
			Category: validate.CategoryIdentity,
			Rule:     "id-collision",
			TopicID:  c.ID,
			Message:  fmt.Sprintf("id %q is exported by subdomains %s", c.ID, strings.Join(c.Subdomains, ", ")),
		})
	}
	return issues
}
