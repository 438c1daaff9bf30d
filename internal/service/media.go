package service

import (
	"fmt"
	"os"
	"path/filepath"
)

// MediaStore persists uploaded images and produced videos under a media root
// on local disk. Stored paths are relative to the root so they stay valid
// when the root moves between environments.
type MediaStore struct {
	root string
}

func NewMediaStore(root string) (*MediaStore, error) {
	for _, dir := range []string{"images", "videos"} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create media directory %s: %w", dir, err)
		}
	}
	return &MediaStore{root: root}, nil
}

// SaveImage writes image data under images/ and returns the relative path.
func (s *MediaStore) SaveImage(filename string, data []byte) (string, error) {
	rel := filepath.ToSlash(filepath.Join("images", filename))
	if err := os.WriteFile(filepath.Join(s.root, "images", filename), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to store image %s: %w", filename, err)
	}
	return rel, nil
}

// VideoPath returns the relative and absolute paths for a video filename.
func (s *MediaStore) VideoPath(filename string) (rel string, abs string) {
	rel = filepath.ToSlash(filepath.Join("videos", filename))
	return rel, filepath.Join(s.root, "videos", filename)
}

// Abs resolves a stored relative path against the media root.
func (s *MediaStore) Abs(rel string) string {
	return filepath.Join(s.root, filepath.FromSlash(rel))
}
