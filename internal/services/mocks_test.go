package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/growth4u/contentflow/internal/content"
	"github.com/growth4u/contentflow/internal/models"
	"github.com/growth4u/contentflow/internal/store"
)

// --- Mocks ---

type MockWorkspace struct {
	mock.Mock
}

func (m *MockWorkspace) ReadyCandidates(ctx context.Context) ([]models.Candidate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Candidate), args.Error(1)
}

func (m *MockWorkspace) PageBlocks(ctx context.Context, pageID string) ([]models.Block, error) {
	args := m.Called(ctx, pageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Block), args.Error(1)
}

func (m *MockWorkspace) MarkPublished(ctx context.Context, c models.Candidate) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

type MockArticles struct {
	mock.Mock
}

func (m *MockArticles) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	args := m.Called(ctx, title)
	return args.Bool(0), args.Error(1)
}

func (m *MockArticles) Create(ctx context.Context, a models.Article) (string, error) {
	args := m.Called(ctx, a)
	return args.String(0), args.Error(1)
}

type MockRewriter struct {
	mock.Mock
}

func (m *MockRewriter) Rewrite(ctx context.Context, title, draft, category string) (string, error) {
	args := m.Called(ctx, title, draft, category)
	return args.String(0), args.Error(1)
}

type MockDeployer struct {
	mock.Mock
}

func (m *MockDeployer) Notify(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockCompleter struct {
	mock.Mock
}

func (m *MockCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

type MockLister struct {
	mock.Mock
}

func (m *MockLister) List(ctx context.Context) ([]store.StoredArticle, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.StoredArticle), args.Error(1)
}

// --- Fakes ---

// memArticles is an in-memory ArticleRepository with the same title
// matching rules as the Firestore one.
type memArticles struct {
	mu      sync.Mutex
	created []models.Article
}

func (r *memArticles) ExistsByTitle(_ context.Context, title string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.created {
		if content.NormalizeTitle(a.Title) == content.NormalizeTitle(title) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memArticles) Create(_ context.Context, a models.Article) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created = append(r.created, a)
	return fmt.Sprintf("doc-%d", len(r.created)), nil
}

type memObjects struct {
	mu      sync.Mutex
	objects map[string][]byte
	failOn  string
}

func (w *memObjects) Write(_ context.Context, name, _ string, data []byte) error {
	if name == w.failOn {
		return fmt.Errorf("write %s: permission denied", name)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.objects == nil {
		w.objects = map[string][]byte{}
	}
	w.objects[name] = data
	return nil
}

func (w *memObjects) URI(name string) string {
	return "gs://posts-cache/" + name
}

type countingThrottle struct {
	calls int
}

func (t *countingThrottle) Wait(ctx context.Context) error {
	t.calls++
	return ctx.Err()
}
