package gcp

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
)

// NewFirestoreClient opens the blog database of projectID. An empty
// databaseID selects the project's "(default)" database, which is where the
// site reads its posts from. The SDK routes to FIRESTORE_EMULATOR_HOST on
// its own when that is set.
func NewFirestoreClient(ctx context.Context, projectID, databaseID string, opts ...option.ClientOption) (*firestore.Client, error) {
	if projectID == "" {
		return nil, fmt.Errorf("NewFirestoreClient: projectID cannot be empty")
	}
	if databaseID == "" {
		databaseID = firestore.DefaultDatabaseID
	}

	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID, opts...)
	if err != nil {
		return nil, fmt.Errorf("firestore.NewClientWithDatabase(%s/%s): %w", projectID, databaseID, err)
	}

	if host := os.Getenv("FIRESTORE_EMULATOR_HOST"); host != "" {
		slog.Warn("Firestore client is using the emulator", "host", host, "database", databaseID)
	}
	return client, nil
}
