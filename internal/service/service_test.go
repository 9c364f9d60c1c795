package service

import (
	"context"
	"sync"
	"testing"

	"github.com/alexanderramin/medcorpus/internal/domain"
	"github.com/alexanderramin/medcorpus/internal/importer"
	"github.com/alexanderramin/medcorpus/internal/registry"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, event)
}

func (o *recordingObserver) last() UseCaseEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.events[len(o.events)-1]
}

// registryOf builds a lenient registry with one subdomain per key.
func registryOf(t *testing.T, subs map[string][]*domain.TopicRecord) *registry.Registry {
	t.Helper()
	var list []*registry.Subdomain
	for name, recs := range subs {
		sub := registry.NewSubdomain(name)
		for _, rec := range recs {
			require.NoError(t, sub.Register(rec))
		}
		list = append(list, sub)
	}
	reg, err := registry.Build(list)
	require.NoError(t, err)
	return reg
}

// writeCorpus exports subs under dir as a corpus directory.
func writeCorpus(t *testing.T, dir string, subs map[string][]*domain.TopicRecord) {
	t.Helper()
	_, err := importer.Export(dir, registryOf(t, subs))
	require.NoError(t, err)
}
