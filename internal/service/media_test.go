package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMediaStore(t *testing.T) {
	root := t.TempDir()
	store, err := NewMediaStore(root)
	require.NoError(t, err)

	// both subdirectories exist after construction
	for _, dir := range []string{"images", "videos"} {
		info, err := os.Stat(filepath.Join(root, dir))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}

	rel, err := store.SaveImage("photo.jpg", []byte("jpeg"))
	require.NoError(t, err)
	assert.Equal(t, "images/photo.jpg", rel)

	data, err := os.ReadFile(store.Abs(rel))
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg"), data)

	videoRel, videoAbs := store.VideoPath("clip.mp4")
	assert.Equal(t, "videos/clip.mp4", videoRel)
	assert.Equal(t, filepath.Join(root, "videos", "clip.mp4"), videoAbs)
}
