package gcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"
)

// BucketWriter overwrites objects in a single Cloud Storage bucket.
type BucketWriter struct {
	bucket *storage.BucketHandle
	name   string
}

// NewBucketWriter wraps the named bucket of client.
func NewBucketWriter(client *storage.Client, bucket string) *BucketWriter {
	return &BucketWriter{bucket: client.Bucket(bucket), name: bucket}
}

// Write replaces objectName with data. The object is served uncached since
// the site build always wants the latest export.
func (b *BucketWriter) Write(ctx context.Context, objectName, contentType string, data []byte) error {
	writer := b.bucket.Object(objectName).NewWriter(ctx)
	writer.ContentType = contentType
	writer.CacheControl = "no-cache"

	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		slog.ErrorContext(ctx, "Failed to write GCS object", "error", err, "bucket", b.name, "object", objectName)
		return fmt.Errorf("failed to write to GCS: %w", err)
	}

	if err := writer.Close(); err != nil {
		var gerr *googleapi.Error
		if errors.As(err, &gerr) {
			slog.ErrorContext(ctx, "GCS rejected object write", "code", gerr.Code, "bucket", b.name, "object", objectName)
		}
		return fmt.Errorf("failed to finalize GCS write: %w", err)
	}
	return nil
}

// URI returns the gs:// URI of objectName.
func (b *BucketWriter) URI(objectName string) string {
	return fmt.Sprintf("gs://%s/%s", b.name, objectName)
}
