package storage

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joshua-takyi/kedai/internal/apperr"
)

const MaxImageSize = 5 << 20 // 5MB

var allowedExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// ImageStore writes uploaded images under <root>/images/<folder>/ and hands
// back forward-slash relative paths for persistence.
type ImageStore struct {
	root   string
	logger *slog.Logger
}

func NewImageStore(root string, logger *slog.Logger) *ImageStore {
	return &ImageStore{root: root, logger: logger}
}

// Save validates and persists an uploaded file, returning the stored
// relative path.
func (s *ImageStore) Save(fileHeader *multipart.FileHeader, folder string) (string, error) {
	if fileHeader.Size > MaxImageSize {
		return "", apperr.Validation("image size exceeds 5MB limit")
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedExts[ext] {
		return "", apperr.Validation("only JPG, JPEG, PNG or WEBP images are allowed")
	}

	dir := filepath.Join(s.root, "images", folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", apperr.Service("failed to create upload directory", err)
	}

	name := fmt.Sprintf("image-%d-%s%s", time.Now().UnixNano(), randSuffix(), ext)
	dst := filepath.Join(dir, name)

	src, err := fileHeader.Open()
	if err != nil {
		return "", apperr.Service("failed to open uploaded file", err)
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", apperr.Service("failed to store image", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		os.Remove(dst)
		return "", apperr.Service("failed to store image", err)
	}

	return filepath.ToSlash(filepath.Join("images", folder, name)), nil
}

// Remove deletes a stored image best-effort. Deletion is not
// correctness-critical to the catalog record, so failures are logged and
// never propagated.
func (s *ImageStore) Remove(relPath string) {
	if relPath == "" {
		return
	}
	full := filepath.Join(s.root, filepath.FromSlash(relPath))
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		s.logger.Error("Failed to delete image", "path", relPath, "error", err)
	}
}

// Exists reports whether a stored relative path is still on disk.
func (s *ImageStore) Exists(relPath string) bool {
	if relPath == "" {
		return false
	}
	_, err := os.Stat(filepath.Join(s.root, filepath.FromSlash(relPath)))
	return err == nil
}

func randSuffix() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return "0000"
	}
	return hex.EncodeToString(b)
}
