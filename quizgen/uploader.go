// quizgen/uploader.go - PDF blob storage (Google Cloud Storage)
package quizgen

import (
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
)

// Uploader stores uploaded course PDFs in a GCS bucket so topics can
// reference a stable document URL after the Discord attachment expires.
type Uploader struct {
	client *storage.Client
	bucket string
}

// NewUploader opens the storage client for the given bucket.
func NewUploader(ctx context.Context, bucket string) (*Uploader, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return &Uploader{client: client, bucket: bucket}, nil
}

// Upload writes one object and returns its public URL.
func (u *Uploader) Upload(ctx context.Context, objectName string, r io.Reader) (string, error) {
	w := u.client.Bucket(u.bucket).Object(objectName).NewWriter(ctx)
	w.ContentType = "application/pdf"

	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return "", fmt.Errorf("failed to upload %s: %w", objectName, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", objectName, err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", u.bucket, objectName), nil
}

// Close releases the underlying client.
func (u *Uploader) Close() error {
	return u.client.Close()
}
