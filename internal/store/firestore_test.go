package store_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/growth4u/contentflow/internal/gcp"
	"github.com/growth4u/contentflow/internal/models"
	"github.com/growth4u/contentflow/internal/store"
)

// These tests need a running emulator, e.g.
// gcloud emulators firestore start --host-port=localhost:8086
func newEmulatorRepo(t *testing.T) *store.FirestoreRepository {
	t.Helper()
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}
	client, err := gcp.NewFirestoreClient(context.Background(), "contentflow-test", "")
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	collection := fmt.Sprintf("artifacts/test-%s/public/data/blog_posts", uuid.NewString())
	return store.NewFirestoreRepository(client, collection)
}

func TestFirestoreRepository_CreateAndExists(t *testing.T) {
	repo := newEmulatorRepo(t)
	ctx := context.Background()

	exists, err := repo.ExistsByTitle(ctx, "Growth Hacks")
	require.NoError(t, err)
	assert.False(t, exists)

	now := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	id, err := repo.Create(ctx, models.Article{
		Title:     "growth hacks",
		Category:  "Growth",
		Content:   "body",
		ReadTime:  models.DefaultReadTime,
		Author:    models.DefaultAuthor,
		CreatedAt: now,
		UpdatedAt: now,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	exists, err = repo.ExistsByTitle(ctx, "  Growth Hacks  ")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestFirestoreRepository_ListNewestFirst(t *testing.T) {
	repo := newEmulatorRepo(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, title := range []string{"old", "newer", "newest"} {
		ts := base.Add(time.Duration(i) * time.Hour)
		_, err := repo.Create(ctx, models.Article{Title: title, CreatedAt: ts, UpdatedAt: ts})
		require.NoError(t, err)
	}

	articles, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, articles, 3)
	assert.Equal(t, "newest", articles[0].Title)
	assert.Equal(t, "old", articles[2].Title)
	assert.NotEmpty(t, articles[0].ID)
}
