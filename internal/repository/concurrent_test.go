package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alexanderramin/medcorpus/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// TestConcurrentAccess_ReadsDuringSnapshotWrites runs topic readers against
// a WAL file database while a writer upserts documents. Readers must never
// see a row whose document fails to decode.
func TestConcurrentAccess_ReadsDuringSnapshotWrites(t *testing.T) {
	database, _ := testutil.NewFileTestDB(t)
	repo := NewSQLiteTopicRepo(database)
	ctx := context.Background()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		for i := 0; i < 25; i++ {
			rec := testutil.NewTestTopic(fmt.Sprintf("condition-%02d", i))
			if err := repo.Put(gctx, "cardiology", rec, time.Now()); err != nil {
				return fmt.Errorf("writer: put %d: %w", i, err)
			}
		}
		return nil
	})

	for r := 0; r < 4; r++ {
		reader := r
		g.Go(func() error {
			for i := 0; i < 10; i++ {
				stored, err := repo.List(gctx)
				if err != nil {
					return fmt.Errorf("reader %d: %w", reader, err)
				}
				for _, st := range stored {
					if st.Record == nil || st.Record.ID == "" {
						return fmt.Errorf("reader %d: half-written row", reader)
					}
				}
			}
			return nil
		})
	}

	require.NoError(t, g.Wait())

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 25, n)
}
