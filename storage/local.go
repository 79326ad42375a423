package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// LocalStore writes files below Dir; the router serves Dir at PublicBaseURL.
type LocalStore struct {
	Dir           string
	PublicBaseURL string
}

func NewLocalStore(dir, publicBaseURL string) *LocalStore {
	return &LocalStore{Dir: dir, PublicBaseURL: strings.TrimRight(publicBaseURL, "/")}
}

func (s *LocalStore) Upload(ctx context.Context, folder, name, contentType string, r io.Reader) (*Object, error) {
	key := objectKey(folder, name)
	dest := filepath.Join(s.Dir, filepath.FromSlash(key))

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return nil, errors.Wrap(err, "create upload folder")
	}
	out, err := os.Create(dest)
	if err != nil {
		return nil, errors.Wrap(err, "create upload file")
	}
	defer out.Close()

	size, err := io.Copy(out, r)
	if err != nil {
		return nil, errors.Wrap(err, "write upload file")
	}
	if err := out.Sync(); err != nil {
		return nil, errors.Wrap(err, "sync upload file")
	}

	return &Object{
		URL:         s.PublicBaseURL + "/" + key,
		PublicID:    key,
		Name:        name,
		ContentType: contentType,
		Size:        size,
	}, nil
}
