package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStoreUpload(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalStore(dir, "/uploads/")

	obj, err := s.Upload(context.Background(), "services", "my drawing.pdf", "application/pdf", strings.NewReader("%PDF-1.4"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(obj.URL, "/uploads/services/"))
	assert.True(t, strings.HasSuffix(obj.PublicID, "-my_drawing.pdf"))
	assert.Equal(t, "my drawing.pdf", obj.Name)
	assert.Equal(t, "application/pdf", obj.ContentType)
	assert.EqualValues(t, 8, obj.Size)

	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(obj.PublicID)))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(data))
}

func TestObjectKeyStripsTraversal(t *testing.T) {
	key := objectKey("services", "../../etc/passwd")
	assert.True(t, strings.HasPrefix(key, "services/"))
	assert.True(t, strings.HasSuffix(key, "-passwd"))
	assert.NotContains(t, key, "..")

	assert.True(t, strings.HasSuffix(objectKey("services", ""), "-file"))
}
