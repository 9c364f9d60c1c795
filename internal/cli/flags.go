package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/medcorpus/internal/domain"
	"github.com/spf13/pflag"
)

// enumValue is a pflag.Value restricted to a fixed set of strings.
type enumValue[T ~string] struct {
	target  *T
	allowed []T
	name    string
}

var _ pflag.Value = (*enumValue[domain.TopicStatus])(nil)

func newEnumValue[T ~string](target *T, name string, allowed ...T) *enumValue[T] {
	return &enumValue[T]{target: target, allowed: allowed, name: name}
}

func (e *enumValue[T]) String() string { return string(*e.target) }

func (e *enumValue[T]) Type() string { return e.name }

func (e *enumValue[T]) Set(s string) error {
	for _, a := range e.allowed {
		if strings.EqualFold(string(a), s) {
			*e.target = a
			return nil
		}
	}
	names := make([]string, len(e.allowed))
	for i, a := range e.allowed {
		names[i] = string(a)
	}
	return fmt.Errorf("must be one of %s", strings.Join(names, ", "))
}

type outputFormat string

const (
	outputText outputFormat = "text"
	outputJSON outputFormat = "json"
	outputYAML outputFormat = "yaml"
)

func addOutputFlag(fs *pflag.FlagSet, target *outputFormat) {
	*target = outputText
	fs.VarP(newEnumValue(target, "format", outputText, outputJSON, outputYAML), "output", "o", "Output format: text, json, yaml")
}

func statusFlag(fs *pflag.FlagSet, target *domain.TopicStatus) {
	fs.Var(newEnumValue(target, "status",
		domain.StatusDraft, domain.StatusReview, domain.StatusPublished, domain.StatusArchived),
		"status", "Only topics with this status")
}

func topicTypeFlag(fs *pflag.FlagSet, target *domain.TopicType) {
	fs.Var(newEnumValue(target, "type",
		domain.TopicConcept, domain.TopicCondition, domain.TopicTopic, domain.TopicProcedure,
		domain.TopicStructure, domain.TopicSystem, domain.TopicPathway, domain.TopicProcess),
		"type", "Only topics of this type")
}
