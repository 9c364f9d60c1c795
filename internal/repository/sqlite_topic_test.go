package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/medcorpus/internal/domain"
	"github.com/alexanderramin/medcorpus/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopicRepo_PutAndGet(t *testing.T) {
	repo := NewSQLiteTopicRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	rec := testutil.NewTestTopic("condition-afib", testutil.WithLevels(1, 3),
		testutil.WithCrossRef("condition-heart-failure", domain.RelRelated))
	storedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Put(ctx, "cardiology", rec, storedAt))

	got, err := repo.Get(ctx, "condition-afib")
	require.NoError(t, err)
	assert.Equal(t, rec, got.Record)
	assert.Equal(t, "cardiology", got.Subdomain)
	assert.True(t, storedAt.Equal(got.StoredAt))

	doc, err := EncodeTopic(rec)
	require.NoError(t, err)
	assert.Equal(t, doc, got.Document)
}

func TestTopicRepo_PutReplacesDocument(t *testing.T) {
	repo := NewSQLiteTopicRepo(testutil.NewTestDB(t))
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, repo.Put(ctx, "cardiology", testutil.NewTestTopic("x"), now))
	require.NoError(t, repo.Put(ctx, "neurology", testutil.NewTestTopic("x",
		testutil.WithVersion(2), testutil.WithStatus(domain.StatusArchived)), now))

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := repo.Get(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Record.Version)
	assert.Equal(t, domain.StatusArchived, got.Record.Status)
	assert.Equal(t, "neurology", got.Subdomain)
}

func TestTopicRepo_Get_NotFound(t *testing.T) {
	repo := NewSQLiteTopicRepo(testutil.NewTestDB(t))

	_, err := repo.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTopicRepo_ListAndDelete(t *testing.T) {
	repo := NewSQLiteTopicRepo(testutil.NewTestDB(t))
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, repo.Put(ctx, "b-sub", testutil.NewTestTopic("zeta"), now))
	require.NoError(t, repo.Put(ctx, "a-sub", testutil.NewTestTopic("alpha"), now))
	require.NoError(t, repo.Put(ctx, "a-sub", testutil.NewTestTopic("mid"), now))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "alpha", all[0].Record.ID)
	assert.Equal(t, "zeta", all[2].Record.ID)

	assert.Equal(t, "a-sub", all[0].Subdomain)
	assert.Equal(t, "b-sub", all[2].Subdomain)

	require.NoError(t, repo.Delete(ctx, "mid"))
	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
