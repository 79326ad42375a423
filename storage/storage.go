package storage

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

// Object describes an uploaded file.
type Object struct {
	URL         string `json:"url"`
	PublicID    string `json:"public_id"`
	Name        string `json:"name"`
	ContentType string `json:"type"`
	Size        int64  `json:"size"`
}

// Uploader stores a file under folder and returns where it can be fetched.
type Uploader interface {
	Upload(ctx context.Context, folder, name, contentType string, r io.Reader) (*Object, error)
}

// objectKey builds "<folder>/<uuid>-<name>" with whitespace and path
// separators stripped from name.
func objectKey(folder, name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.Join(strings.Fields(name), "_")
	if name == "" || name == "." || name == "/" {
		name = "file"
	}
	return path.Join(folder, uuid.NewString()+"-"+name)
}
