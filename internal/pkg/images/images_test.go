package images

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveBase64_WritesFile(t *testing.T) {
	dir := t.TempDir()
	s := NewStorage(dir, "/media")

	payload := base64.StdEncoding.EncodeToString([]byte("not-really-a-png"))
	url, err := s.SaveBase64("data:image/png;base64,"+payload, "recipes")

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/media/recipes/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	filename := filepath.Base(url)
	raw, err := os.ReadFile(filepath.Join(dir, "recipes", filename))
	require.NoError(t, err)
	assert.Equal(t, []byte("not-really-a-png"), raw)
}

func TestSaveBase64_TrimsPrefixSlash(t *testing.T) {
	s := NewStorage(t.TempDir(), "/media/")

	payload := base64.StdEncoding.EncodeToString([]byte("x"))
	url, err := s.SaveBase64("data:image/jpeg;base64,"+payload, "recipes")

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/media/recipes/"))
	assert.True(t, strings.HasSuffix(url, ".jpg"))
}

func TestSaveBase64_Invalid(t *testing.T) {
	s := NewStorage(t.TempDir(), "/media")

	cases := []struct {
		name    string
		dataURL string
	}{
		{"не data-URL", "http://example.com/a.png"},
		{"без запятой", "data:image/png;base64"},
		{"без ;base64", "data:image/png,aGVsbG8="},
		{"незнакомый MIME", "data:application/pdf;base64,aGVsbG8="},
		{"битый base64", "data:image/png;base64,???"},
		{"пустое содержимое", "data:image/png;base64,"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.SaveBase64(tc.dataURL, "recipes")
			assert.ErrorIs(t, err, ErrInvalidImage)
		})
	}
}
