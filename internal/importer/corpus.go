package importer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/medcorpus/internal/registry"
	"github.com/alexanderramin/medcorpus/internal/validate"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// CategoryFileBase is the reserved base name of a subdomain's category index.
const CategoryFileBase = "_category"

type Options struct {
	// Strict aborts the load on the first decode failure, duplicate id, or
	// invalid record. Otherwise problems are returned as issues.
	Strict bool
	// Workers bounds how many subdomains are decoded at once.
	Workers int
	Logger  zerolog.Logger
}

// LoadResult holds the decoded subdomains in directory order. Issues only
// covers problems found while reading files; record checks run again when
// the registry is validated.
type LoadResult struct {
	Subdomains []*registry.Subdomain
	Issues     []validate.Issue
	Files      int
}

type subdomainLoad struct {
	sub    *registry.Subdomain
	issues []validate.Issue
	files  int
}

// LoadCorpus reads every subdomain directory under dir. Each subdirectory is
// one subdomain; each JSON or YAML file in it is one topic. Names starting
// with "." or "_" are skipped, except the _category file.
func LoadCorpus(ctx context.Context, dir string, opts Options) (*LoadResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading corpus directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() || isReserved(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	slots := make([]*subdomainLoad, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, name := range names {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			load, err := loadSubdomain(gctx, filepath.Join(dir, name), name, opts)
			if err != nil {
				return fmt.Errorf("subdomain %s: %w", name, err)
			}
			slots[i] = load
			opts.Logger.Debug().
				Str("subdomain", name).
				Int("topics", load.sub.Len()).
				Int("files", load.files).
				Int("issues", len(load.issues)).
				Msg("subdomain loaded")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &LoadResult{Subdomains: make([]*registry.Subdomain, 0, len(slots))}
	for _, load := range slots {
		res.Subdomains = append(res.Subdomains, load.sub)
		res.Issues = append(res.Issues, load.issues...)
		res.Files += load.files
	}
	validate.SortIssues(res.Issues)
	return res, nil
}

func loadSubdomain(ctx context.Context, path, name string, opts Options) (*subdomainLoad, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("reading directory: %w", err)
	}

	load := &subdomainLoad{sub: registry.NewSubdomain(name, registry.WithStrict(opts.Strict))}
	fail := func(file, rule string, cat validate.Category, err error) error {
		if opts.Strict {
			return fmt.Errorf("%s: %w", file, err)
		}
		load.issues = append(load.issues, validate.Issue{
			Severity:  validate.SeverityError,
			Category:  cat,
			Rule:      rule,
			Subdomain: name,
			File:      file,
			Message:   err.Error(),
		})
		return nil
	}

	categoryFile := ""
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		file := e.Name()
		if e.IsDir() || strings.HasPrefix(file, ".") {
			continue
		}
		format, ok := FormatFromPath(file)
		if !ok {
			continue
		}
		base := strings.TrimSuffix(file, filepath.Ext(file))

		data, err := os.ReadFile(filepath.Join(path, file))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", file, err)
		}

		if base == CategoryFileBase {
			if categoryFile != "" {
				if err := fail(file, "category-file-duplicate", validate.CategorySchema,
					fmt.Errorf("category index already read from %s", categoryFile)); err != nil {
					return nil, err
				}
				continue
			}
			idx, err := DecodeCategoryIndex(data, format)
			if err != nil {
				if err := fail(file, "decode", validate.CategorySchema, fmt.Errorf("decoding %s: %w", file, err)); err != nil {
					return nil, err
				}
				continue
			}
			categoryFile = file
			load.sub.SetCategoryIndex(idx)
			continue
		}
		if isReserved(file) {
			continue
		}

		load.files++
		rec, err := DecodeTopic(data, format)
		if err != nil {
			if err := fail(file, "decode", validate.CategorySchema, fmt.Errorf("decoding %s: %w", file, err)); err != nil {
				return nil, err
			}
			continue
		}

		if err := load.sub.Register(rec); err != nil {
			var dup *registry.DuplicateIDError
			rule, cat := "invalid-record", validate.CategorySchema
			if errors.As(err, &dup) {
				rule, cat = "duplicate-id", validate.CategoryIdentity
			}
			if err := fail(file, rule, cat, err); err != nil {
				return nil, err
			}
			continue
		}

		if rec.ID != base {
			load.issues = append(load.issues, validate.Issue{
				Severity:  validate.SeverityWarning,
				Category:  validate.CategoryMetadata,
				Rule:      "file-name-mismatch",
				TopicID:   rec.ID,
				Subdomain: name,
				File:      file,
				Message:   fmt.Sprintf("file name %s does not match id %q", file, rec.ID),
			})
		}
	}

	return load, nil
}

func isReserved(name string) bool {
	return strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")
}
