package images

import (
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var ErrInvalidImage = errors.New("invalid base64 image")

// расширения по MIME из data-URL; незнакомый MIME отклоняем
var extByMime = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Storage сохраняет изображения, пришедшие строкой
// "data:image/png;base64,...." внутри JSON рецепта.
type Storage struct {
	root   string // каталог на диске, например ./media
	prefix string // URL-префикс, например /media
}

func NewStorage(root, prefix string) *Storage {
	return &Storage{root: root, prefix: strings.TrimSuffix(prefix, "/")}
}

func (s *Storage) Root() string { return s.root }

// SaveBase64 декодирует data-URL и кладёт файл в <root>/<subdir>/.
// Возвращает URL вида <prefix>/<subdir>/<uuid>.<ext>.
func (s *Storage) SaveBase64(dataURL, subdir string) (string, error) {
	mime, payload, ok := splitDataURL(dataURL)
	if !ok {
		return "", ErrInvalidImage
	}
	ext, ok := extByMime[mime]
	if !ok {
		return "", ErrInvalidImage
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", ErrInvalidImage
	}
	if len(raw) == 0 {
		return "", ErrInvalidImage
	}

	dir := filepath.Join(s.root, subdir)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", err
	}

	filename := uuid.NewString() + ext
	if err := os.WriteFile(filepath.Join(dir, filename), raw, 0o644); err != nil {
		return "", err
	}

	return s.prefix + "/" + subdir + "/" + filename, nil
}

func splitDataURL(dataURL string) (mime, payload string, ok bool) {
	if !strings.HasPrefix(dataURL, "data:") {
		return "", "", false
	}
	rest := strings.TrimPrefix(dataURL, "data:")
	head, payload, found := strings.Cut(rest, ",")
	if !found {
		return "", "", false
	}
	mime = strings.TrimSuffix(head, ";base64")
	if mime == head {
		// без ;base64 это не то, что присылает фронт
		return "", "", false
	}
	return mime, payload, true
}
