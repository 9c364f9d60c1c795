package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/medcorpus/internal/importer"
	"github.com/alexanderramin/medcorpus/internal/registry"
	"github.com/rs/zerolog"
)

type CorpusOptions struct {
	Strict             bool
	Workers            int
	CheckSubtopicSlugs bool
	Logger             zerolog.Logger
}

type corpusService struct {
	opts     CorpusOptions
	observer UseCaseObserver
}

func NewCorpusService(opts CorpusOptions, observers ...UseCaseObserver) CorpusService {
	return &corpusService{
		opts:     opts,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *corpusService) Load(ctx context.Context, dir string) (corpus *Corpus, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"dir": dir, "strict": s.opts.Strict}
	defer func() { observe(ctx, s.observer, "load-corpus", startedAt, fields, err) }()

	res, err := importer.LoadCorpus(ctx, dir, importer.Options{
		Strict:  s.opts.Strict,
		Workers: s.opts.Workers,
		Logger:  s.opts.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("loading corpus: %w", err)
	}
	fields["subdomains"] = len(res.Subdomains)
	fields["files"] = res.Files

	reg, err := registry.Build(res.Subdomains,
		registry.WithStrictMerge(s.opts.Strict),
		registry.WithSubtopicSlugCheck(s.opts.CheckSubtopicSlugs),
	)
	if err != nil {
		return nil, fmt.Errorf("building registry: %w", err)
	}
	fields["topics"] = reg.Len()

	s.opts.Logger.Debug().
		Int("topics", reg.Len()).
		Int("load_issues", len(res.Issues)).
		Msg("registry built")

	return &Corpus{
		Dir:        dir,
		Registry:   reg,
		LoadIssues: res.Issues,
		Files:      res.Files,
	}, nil
}

func (s *corpusService) Validate(ctx context.Context, corpus *Corpus) *registry.ValidationReport {
	startedAt := time.Now().UTC()
	rep := corpus.Registry.Validate()
	rep.Merge(corpus.LoadIssues)

	observe(ctx, s.observer, "validate-corpus", startedAt, map[string]any{
		"topics":   rep.TopicCount,
		"errors":   rep.ErrorCount(),
		"warnings": rep.WarningCount(),
		"dangling": len(rep.Dangling),
	}, nil)
	return rep
}
