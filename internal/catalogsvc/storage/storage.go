package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/s3blob"
)

// Store wraps one blob bucket holding cover images and inline guide
// images. Objects are public; URLs are formed from a configured base.
type Store struct {
	bucket        *blob.Bucket
	publicBaseURL string
}

// Open opens the bucket by URL (file://... locally, s3://... in prod).
func Open(ctx context.Context, bucketURL, publicBaseURL string) (*Store, error) {
	bk, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open bucket %s: %w", bucketURL, err)
	}

	return &Store{
		bucket:        bk,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}, nil
}

func (s *Store) Close() error {
	return s.bucket.Close()
}

func (s *Store) Upload(ctx context.Context, key string, r io.Reader, contentType string) error {
	w, err := s.bucket.NewWriter(ctx, key, &blob.WriterOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("failed to open writer for %s: %w", key, err)
	}

	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return fmt.Errorf("failed to write object %s: %w", key, err)
	}

	return w.Close()
}

func (s *Store) Reader(ctx context.Context, key string) (io.ReadCloser, string, error) {
	r, err := s.bucket.NewReader(ctx, key, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open object %s: %w", key, err)
	}
	return r, r.ContentType(), nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	return s.bucket.Delete(ctx, key)
}

func (s *Store) PublicURL(key string) string {
	return s.publicBaseURL + "/" + key
}
