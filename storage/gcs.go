package storage

import (
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"github.com/pkg/errors"
)

// GCSStore uploads to a Cloud Storage bucket. Objects are addressed through
// the public storage.googleapis.com endpoint.
type GCSStore struct {
	Client *storage.Client
	Bucket string
}

func NewGCSStore(ctx context.Context, bucket string) (*GCSStore, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "create gcs client")
	}
	return &GCSStore{Client: client, Bucket: bucket}, nil
}

func (s *GCSStore) Upload(ctx context.Context, folder, name, contentType string, r io.Reader) (*Object, error) {
	key := objectKey(folder, name)

	w := s.Client.Bucket(s.Bucket).Object(key).NewWriter(ctx)
	w.ContentType = contentType
	w.Metadata = map[string]string{"original_name": name}

	size, err := io.Copy(w, r)
	if err != nil {
		_ = w.Close()
		return nil, errors.Wrapf(err, "write gs://%s/%s", s.Bucket, key)
	}
	if err := w.Close(); err != nil {
		return nil, errors.Wrapf(err, "finalize gs://%s/%s", s.Bucket, key)
	}

	return &Object{
		URL:         fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.Bucket, key),
		PublicID:    key,
		Name:        name,
		ContentType: contentType,
		Size:        size,
	}, nil
}

func (s *GCSStore) Close() error {
	return s.Client.Close()
}
