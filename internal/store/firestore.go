// Package store persists published articles in Firestore.
package store

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/growth4u/contentflow/internal/content"
	"github.com/growth4u/contentflow/internal/models"
)

var ErrMissingID = errors.New("store: created document has no id")

// StoredArticle is an article read back together with its document ID.
type StoredArticle struct {
	ID string
	models.Article
}

// FirestoreRepository reads and writes the blog posts collection. The
// collection is addressed by its full slash-separated path, e.g.
// artifacts/<app>/public/data/blog_posts.
type FirestoreRepository struct {
	client     *firestore.Client
	collection string
}

func NewFirestoreRepository(client *firestore.Client, collection string) *FirestoreRepository {
	return &FirestoreRepository{client: client, collection: collection}
}

// ExistsByTitle scans every document's title and reports whether one
// matches title after trimming and lowercasing. The scan is unfiltered and
// not transactional with Create.
func (r *FirestoreRepository) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	want := content.NormalizeTitle(title)

	it := r.client.Collection(r.collection).Select("title").Documents(ctx)
	defer it.Stop()
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("failed to scan titles: %w", err)
		}
		existing, _ := doc.Data()["title"].(string)
		if content.NormalizeTitle(existing) == want {
			return true, nil
		}
	}
}

// Create adds a with an auto-generated ID and returns that ID.
func (r *FirestoreRepository) Create(ctx context.Context, a models.Article) (string, error) {
	docRef, _, err := r.client.Collection(r.collection).Add(ctx, a)
	if err != nil {
		return "", fmt.Errorf("failed to create article: %w", err)
	}
	if docRef == nil || docRef.ID == "" {
		return "", ErrMissingID
	}
	return docRef.ID, nil
}

// List returns every article, newest first.
func (r *FirestoreRepository) List(ctx context.Context) ([]StoredArticle, error) {
	it := r.client.Collection(r.collection).OrderBy("createdAt", firestore.Desc).Documents(ctx)
	defer it.Stop()

	var out []StoredArticle
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list articles: %w", err)
		}
		var a models.Article
		if err := doc.DataTo(&a); err != nil {
			return nil, fmt.Errorf("failed to decode article %s: %w", doc.Ref.ID, err)
		}
		out = append(out, StoredArticle{ID: doc.Ref.ID, Article: a})
	}
	return out, nil
}
