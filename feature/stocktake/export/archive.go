package export

import (
	"context"
	"fmt"
	"strings"
	"time"

	"stocktake/core/storage"

	"github.com/minio/minio-go/v7"
)

// Prefix is the object key prefix of archived exports.
const Prefix = "exports/"

// Archiver stores exports in the object storage bucket.
type Archiver struct {
	client storage.Client
	bucket string
}

// NewArchiver creates an archiver writing to bucket.
func NewArchiver(client storage.Client, bucket string) *Archiver {
	return &Archiver{client: client, bucket: bucket}
}

// ObjectName returns the key an export of sessionID taken at is stored under.
func ObjectName(sessionID string, at time.Time) string {
	return fmt.Sprintf("%s%s/%s.csv", Prefix, sessionID, at.UTC().Format("20060102T150405Z"))
}

// Archive uploads content and returns its object key.
func (a *Archiver) Archive(ctx context.Context, sessionID string, at time.Time, content string) (string, error) {
	name := ObjectName(sessionID, at)
	_, err := a.client.PutObject(ctx, a.bucket, name, strings.NewReader(content), int64(len(content)), minio.PutObjectOptions{
		ContentType: "text/csv; charset=utf-8",
	})
	if err != nil {
		return "", fmt.Errorf("failed to archive export %s: %w", name, err)
	}
	return name, nil
}

// List returns the archived export keys of sessionID.
func (a *Archiver) List(ctx context.Context, sessionID string) ([]string, error) {
	var keys []string
	for obj := range a.client.ListObjects(ctx, a.bucket, minio.ListObjectsOptions{
		Prefix:    Prefix + sessionID + "/",
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list exports of %s: %w", sessionID, obj.Err)
		}
		keys = append(keys, obj.Key)
	}
	return keys, nil
}
