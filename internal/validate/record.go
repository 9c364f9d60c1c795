package validate

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/alexanderramin/medcorpus/internal/domain"
	"github.com/go-playground/validator/v10"
)

var (
	urlSafePattern     = regexp.MustCompile(`^[A-Za-z0-9._~-]+$`)
	icd11Pattern       = regexp.MustCompile(`^[A-Z]\d{1,2}\.?\d{0,3}$`)
	placeholderPattern = regexp.MustCompile(`(?i)\b(TODO|FIXME|placeholder)\b`)
)

var structValidator = newStructValidator()

func newStructValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	})
	_ = v.RegisterValidation("urlsafe", func(fl validator.FieldLevel) bool {
		return urlSafePattern.MatchString(fl.Field().String())
	})
	return v
}

// CheckTopic runs every record-local check: schema, levels, metadata, and
// content quality.
func CheckTopic(rec *domain.TopicRecord) []Issue {
	if rec == nil {
		return []Issue{errorIssue(CategorySchema, "record-nil", "", 0, "record is nil")}
	}
	var issues []Issue
	issues = append(issues, CheckSchema(rec)...)
	issues = append(issues, CheckLevels(rec)...)
	issues = append(issues, CheckMetadata(rec)...)
	issues = append(issues, CheckQuality(rec)...)
	issues = append(issues, CheckReferenceShape(rec)...)
	return issues
}

// CheckSchema validates required fields and formats declared by struct tags.
func CheckSchema(rec *domain.TopicRecord) []Issue {
	err := structValidator.Struct(rec)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []Issue{errorIssue(CategorySchema, "schema", rec.ID, 0, "invalid record: %v", err)}
	}

	issues := make([]Issue, 0, len(verrs))
	for _, fe := range verrs {
		issues = append(issues, errorIssue(CategorySchema, "field-"+fe.Tag(), rec.ID, 0, "%s", fieldMessage(fe)))
	}
	return issues
}

func fieldMessage(fe validator.FieldError) string {
	path := fe.Namespace()
	if i := strings.Index(path, "."); i >= 0 {
		path = path[i+1:]
	}
	switch fe.Tag() {
	case "required":
		return path + " is required"
	case "urlsafe":
		return fmt.Sprintf("%s %q must be URL-safe (letters, digits, '.', '_', '~', '-')", path, fe.Value())
	case "gte":
		return fmt.Sprintf("%s must be >= %s", path, fe.Param())
	default:
		return fmt.Sprintf("%s failed %q", path, fe.Tag())
	}
}

// CheckMetadata validates vocabularies, timestamps, and tag structure.
func CheckMetadata(rec *domain.TopicRecord) []Issue {
	var issues []Issue
	id := rec.ID

	if id != "" && urlSafePattern.MatchString(id) && !rec.IsKebabCase() {
		issues = append(issues, warningIssue(CategoryMetadata, "id-not-kebab", id, 0, "id %q is not kebab-case", id))
	}
	if rec.Type != "" && !domain.KnownTopicTypes[rec.Type] {
		issues = append(issues, warningIssue(CategoryMetadata, "type-unknown", id, 0, "unknown topic type %q", rec.Type))
	}
	if rec.Status != "" && !domain.ValidStatuses[rec.Status] {
		issues = append(issues, errorIssue(CategoryMetadata, "status-invalid", id, 0,
			"invalid status %q (expected draft, review, published, or archived)", rec.Status))
	}

	created, createdOK := parseTimestamp(rec.CreatedAt)
	if rec.CreatedAt != "" && !createdOK {
		issues = append(issues, errorIssue(CategoryMetadata, "timestamp-invalid", id, 0,
			"invalid createdAt %q (expected RFC 3339 or YYYY-MM-DD)", rec.CreatedAt))
	}
	updated, updatedOK := parseTimestamp(rec.UpdatedAt)
	if rec.UpdatedAt != "" && !updatedOK {
		issues = append(issues, errorIssue(CategoryMetadata, "timestamp-invalid", id, 0,
			"invalid updatedAt %q (expected RFC 3339 or YYYY-MM-DD)", rec.UpdatedAt))
	}
	if createdOK && updatedOK && updated.Before(created) {
		issues = append(issues, warningIssue(CategoryMetadata, "timestamp-order", id, 0, "updatedAt precedes createdAt"))
	}

	tags := rec.Tags
	if tags.ClinicalRelevance != "" && !domain.ValidClinicalRelevance[tags.ClinicalRelevance] {
		issues = append(issues, errorIssue(CategoryMetadata, "clinical-relevance-invalid", id, 0,
			"invalid clinicalRelevance %q (expected low, medium, high, or critical)", tags.ClinicalRelevance))
	}
	if tags.ExamRelevance != nil {
		for i, shelf := range tags.ExamRelevance.Shelf {
			if strings.TrimSpace(shelf) == "" {
				issues = append(issues, errorIssue(CategoryMetadata, "shelf-empty", id, 0, "empty shelf exam entry at index %d", i))
			}
		}
	}
	for _, system := range tags.Systems {
		if !strings.HasPrefix(system, "ICD-11:") {
			continue
		}
		code := strings.TrimSpace(strings.TrimPrefix(system, "ICD-11:"))
		if !icd11Pattern.MatchString(code) {
			issues = append(issues, warningIssue(CategoryMetadata, "icd11-format", id, 0, "potentially invalid ICD-11 code %q", code))
		}
	}

	citationIDs := make(map[string]bool, len(rec.Citations))
	for _, c := range rec.Citations {
		if c.ID != "" {
			if citationIDs[c.ID] {
				issues = append(issues, warningIssue(CategoryMetadata, "citation-duplicate", id, 0, "duplicate citation id %q", c.ID))
			}
			citationIDs[c.ID] = true
		}
		if c.Type != "" && !domain.KnownCitationTypes[c.Type] {
			issues = append(issues, warningIssue(CategoryMetadata, "citation-type-unknown", id, 0,
				"citation %q has unknown type %q", c.ID, c.Type))
		}
	}

	return issues
}

// CheckQuality flags authoring placeholders left in display text.
func CheckQuality(rec *domain.TopicRecord) []Issue {
	var issues []Issue
	id := rec.ID

	if placeholderPattern.MatchString(rec.Name) || placeholderPattern.MatchString(rec.NameEs) {
		issues = append(issues, errorIssue(CategoryQuality, "placeholder", id, 0, "name contains placeholder text"))
	}

	for _, key := range rec.Levels.Keys() {
		c := rec.Levels[key]
		lvl := int(key)
		fields := []struct{ name, value string }{
			{"summary", c.Summary},
			{"explanation", c.Explanation},
			{"clinicalNotes", c.ClinicalNotes},
		}
		for _, f := range fields {
			if placeholderPattern.MatchString(f.value) {
				issues = append(issues, errorIssue(CategoryQuality, "placeholder", id, lvl,
					"%s at level %d contains placeholder text", f.name, lvl))
			}
		}
		for _, kt := range c.KeyTerms {
			if placeholderPattern.MatchString(kt.Term) || placeholderPattern.MatchString(kt.Definition) {
				issues = append(issues, errorIssue(CategoryQuality, "placeholder", id, lvl,
					"key term %q at level %d contains placeholder text", kt.Term, lvl))
			}
		}
	}

	return issues
}

// CheckReferenceShape checks cross-reference edges without resolving them:
// relationship vocabulary and repeated edges.
func CheckReferenceShape(rec *domain.TopicRecord) []Issue {
	var issues []Issue
	id := rec.ID
	seen := make(map[string]bool, len(rec.CrossReferences))

	for _, ref := range rec.CrossReferences {
		if ref.Relationship != "" && !domain.KnownRelationships[ref.Relationship] {
			issues = append(issues, warningIssue(CategoryCrossReference, "relationship-unknown", id, 0,
				"cross-reference to %q uses unknown relationship %q", ref.TargetID, ref.Relationship))
		}
		edge := ref.TargetID + "\x00" + string(ref.Relationship)
		if ref.TargetID != "" && seen[edge] {
			issues = append(issues, warningIssue(CategoryCrossReference, "edge-duplicate", id, 0,
				"duplicate %s cross-reference to %q", ref.Relationship, ref.TargetID))
		}
		seen[edge] = true
	}

	return issues
}

func parseTimestamp(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	return time.Time{}, false
}
