// Package registry holds topic records keyed by id. Records are registered
// into per-subdomain Subdomain values and merged into a read-only Registry by
// Build, which fails closed when two subdomains export the same id.
package registry

import (
	"fmt"
	"sort"

	"github.com/alexanderramin/medcorpus/internal/domain"
)

// Registry is the merged, read-only view over every subdomain. It is safe
// for concurrent readers once built.
type Registry struct {
	byID        map[string]*domain.TopicRecord
	subdomainOf map[string]string
	order       []string
	sortedIDs   []string
	subdomains  []*Subdomain
	checkSlugs  bool
}

type buildConfig struct {
	strict     bool
	checkSlugs bool
}

type BuildOption func(*buildConfig)

// WithStrictMerge stops collision reporting at the first colliding id
// (lowest id first) instead of collecting all of them.
func WithStrictMerge(strict bool) BuildOption {
	return func(c *buildConfig) {
		c.strict = strict
	}
}

// WithSubtopicSlugCheck makes Validate report subtopic slugs that do not
// name a registered topic.
func WithSubtopicSlugCheck(enabled bool) BuildOption {
	return func(c *buildConfig) {
		c.checkSlugs = enabled
	}
}

// Build merges subdomains in the given order. When any id is exported by
// more than one subdomain it returns *CollisionError and no registry.
func Build(subs []*Subdomain, opts ...BuildOption) (*Registry, error) {
	var cfg buildConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	names := make(map[string]bool, len(subs))
	owners := make(map[string][]string)
	for i, sub := range subs {
		if sub == nil {
			return nil, fmt.Errorf("subdomain %d is nil", i)
		}
		if sub.name == "" {
			return nil, fmt.Errorf("subdomain %d has no name", i)
		}
		if names[sub.name] {
			return nil, fmt.Errorf("subdomain %q supplied more than once", sub.name)
		}
		names[sub.name] = true
		for _, id := range sub.order {
			owners[id] = append(owners[id], sub.name)
		}
	}

	if collisions := findCollisions(owners, cfg.strict); len(collisions) > 0 {
		return nil, &CollisionError{Collisions: collisions}
	}

	r := &Registry{
		byID:        make(map[string]*domain.TopicRecord, len(owners)),
		subdomainOf: make(map[string]string, len(owners)),
		order:       make([]string, 0, len(owners)),
		sortedIDs:   make([]string, 0, len(owners)),
		subdomains:  append([]*Subdomain(nil), subs...),
		checkSlugs:  cfg.checkSlugs,
	}
	for _, sub := range subs {
		for _, id := range sub.order {
			r.byID[id] = sub.byID[id]
			r.subdomainOf[id] = sub.name
			r.order = append(r.order, id)
		}
	}
	r.sortedIDs = append(r.sortedIDs, r.order...)
	sort.Strings(r.sortedIDs)
	return r, nil
}

func findCollisions(owners map[string][]string, strict bool) []Collision {
	var ids []string
	for id, subs := range owners {
		if len(subs) > 1 {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	if strict && len(ids) > 1 {
		ids = ids[:1]
	}

	collisions := make([]Collision, 0, len(ids))
	for _, id := range ids {
		subs := append([]string(nil), owners[id]...)
		sort.Strings(subs)
		collisions = append(collisions, Collision{ID: id, Subdomains: subs})
	}
	return collisions
}

func (r *Registry) mustBeBuilt() {
	if r == nil || r.byID == nil {
		panic("registry: used before Build")
	}
}

// Get returns the record for id, or an error wrapping ErrNotFound.
func (r *Registry) Get(id string) (*domain.TopicRecord, error) {
	r.mustBeBuilt()
	rec, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("topic %q: %w", id, ErrNotFound)
	}
	return rec, nil
}

func (r *Registry) Lookup(id string) (*domain.TopicRecord, bool) {
	r.mustBeBuilt()
	rec, ok := r.byID[id]
	return rec, ok
}

// SubdomainOf returns the subdomain that exported id.
func (r *Registry) SubdomainOf(id string) (string, bool) {
	r.mustBeBuilt()
	name, ok := r.subdomainOf[id]
	return name, ok
}

// Subdomains returns subdomain names in merge order.
func (r *Registry) Subdomains() []string {
	r.mustBeBuilt()
	names := make([]string, 0, len(r.subdomains))
	for _, sub := range r.subdomains {
		names = append(names, sub.name)
	}
	return names
}

// CategoryIndex returns the category index attached to a subdomain, if any.
func (r *Registry) CategoryIndex(subdomain string) (*domain.CategoryIndex, bool) {
	r.mustBeBuilt()
	for _, sub := range r.subdomains {
		if sub.name == subdomain {
			return sub.index, sub.index != nil
		}
	}
	return nil, false
}

func (r *Registry) Len() int {
	r.mustBeBuilt()
	return len(r.order)
}

// Filter narrows List. Zero-valued fields match everything.
type Filter struct {
	Status    domain.TopicStatus
	Type      domain.TopicType
	Tag       string
	Subdomain string
	// InsertionOrder returns records in merge order instead of by id.
	InsertionOrder bool
}

func (f Filter) matches(rec *domain.TopicRecord, subdomain string) bool {
	if f.Status != "" && rec.Status != f.Status {
		return false
	}
	if f.Type != "" && rec.Type != f.Type {
		return false
	}
	if f.Tag != "" && !rec.HasTag(f.Tag) {
		return false
	}
	if f.Subdomain != "" && subdomain != f.Subdomain {
		return false
	}
	return true
}

// List returns the records matching f, ordered by ascending id unless
// f.InsertionOrder is set.
func (r *Registry) List(f Filter) []*domain.TopicRecord {
	r.mustBeBuilt()
	ids := r.sortedIDs
	if f.InsertionOrder {
		ids = r.order
	}
	out := make([]*domain.TopicRecord, 0, len(ids))
	for _, id := range ids {
		rec := r.byID[id]
		if f.matches(rec, r.subdomainOf[id]) {
			out = append(out, rec)
		}
	}
	return out
}
