package service

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ovenbird/cookbook-backend/internal/models"
	"github.com/ovenbird/cookbook-backend/internal/testhelpers"
	"github.com/ovenbird/cookbook-backend/internal/worker"
)

// stubEncoder records what it was asked to encode and optionally fails.
type stubEncoder struct {
	calls [][]string
	err   error
}

func (e *stubEncoder) Encode(ctx context.Context, imagePaths []string, outputPath string) error {
	e.calls = append(e.calls, imagePaths)
	if e.err != nil {
		return e.err
	}
	return os.WriteFile(outputPath, []byte("mp4"), 0o644)
}

func setupVideoService(t *testing.T) (*VideoService, *worker.MemoryQueue, *stubEncoder, *gorm.DB) {
	db := testhelpers.SetupSQLiteDatabase(t)
	store, err := NewMediaStore(t.TempDir())
	require.NoError(t, err)

	queue := worker.NewMemoryQueue(nil)
	encoder := &stubEncoder{}
	svc := NewVideoService(db, store, queue, encoder, nil)
	return svc, queue, encoder, db
}

func testImages(names ...string) []UploadedImage {
	images := make([]UploadedImage, 0, len(names))
	for _, name := range names {
		images = append(images, UploadedImage{
			Filename:    name,
			ContentType: "image/jpeg",
			Data:        []byte("jpeg-bytes"),
		})
	}
	return images
}

func TestVideoUpload(t *testing.T) {
	svc, queue, _, _ := setupVideoService(t)
	ctx := context.Background()

	video, err := svc.Upload(ctx, testImages("a.jpg", "b.png", "c"))
	require.NoError(t, err)

	assert.Equal(t, models.VideoStatusPending, video.Status)
	assert.Nil(t, video.VideoPath)
	assert.Nil(t, video.ErrorMessage)
	require.Len(t, video.ImagePaths, 3)

	// stored filenames are generated, upload order and extensions preserved
	assert.True(t, strings.HasPrefix(video.ImagePaths[0], "images/"))
	assert.True(t, strings.HasSuffix(video.ImagePaths[0], ".jpg"))
	assert.True(t, strings.HasSuffix(video.ImagePaths[1], ".png"))
	assert.True(t, strings.HasSuffix(video.ImagePaths[2], ".jpg"))
	assert.NotContains(t, video.ImagePaths[0], "a.jpg")

	assert.Equal(t, []uint{video.ID}, queue.Enqueued())
}

func TestVideoUploadRejectsEmptyBatch(t *testing.T) {
	svc, queue, _, _ := setupVideoService(t)

	_, err := svc.Upload(context.Background(), nil)
	assert.ErrorIs(t, err, ErrEmptyUpload)
	assert.Empty(t, queue.Enqueued())
}

func TestVideoUploadRejectsNonImage(t *testing.T) {
	svc, _, _, db := setupVideoService(t)

	images := testImages("a.jpg")
	images = append(images, UploadedImage{
		Filename:    "notes.pdf",
		ContentType: "application/pdf",
		Data:        []byte("pdf"),
	})

	_, err := svc.Upload(context.Background(), images)
	var notAnImage *NotAnImageError
	require.ErrorAs(t, err, &notAnImage)
	assert.Equal(t, "application/pdf", notAnImage.ContentType)

	// the whole batch is rejected, no job is created
	var count int64
	require.NoError(t, db.Model(&models.Video{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestVideoProcessSuccess(t *testing.T) {
	svc, _, encoder, _ := setupVideoService(t)
	ctx := context.Background()

	video, err := svc.Upload(ctx, testImages("a.jpg", "b.jpg"))
	require.NoError(t, err)

	require.NoError(t, svc.Process(ctx, video.ID))

	done, err := svc.Get(ctx, video.ID)
	require.NoError(t, err)
	assert.Equal(t, models.VideoStatusSuccess, done.Status)
	require.NotNil(t, done.VideoPath)
	assert.True(t, strings.HasPrefix(*done.VideoPath, "videos/"))
	assert.True(t, strings.HasSuffix(*done.VideoPath, ".mp4"))
	assert.Nil(t, done.ErrorMessage)

	require.Len(t, encoder.calls, 1)
	assert.Len(t, encoder.calls[0], 2)
}

func TestVideoProcessEncodeFailure(t *testing.T) {
	svc, _, encoder, _ := setupVideoService(t)
	encoder.err = errors.New("ffmpeg exploded")
	ctx := context.Background()

	video, err := svc.Upload(ctx, testImages("a.jpg"))
	require.NoError(t, err)

	require.NoError(t, svc.Process(ctx, video.ID))

	failed, err := svc.Get(ctx, video.ID)
	require.NoError(t, err)
	assert.Equal(t, models.VideoStatusError, failed.Status)
	assert.Nil(t, failed.VideoPath)
	require.NotNil(t, failed.ErrorMessage)
	assert.Contains(t, *failed.ErrorMessage, "ffmpeg exploded")
}

func TestVideoProcessTerminalIsStable(t *testing.T) {
	svc, _, encoder, _ := setupVideoService(t)
	ctx := context.Background()

	video, err := svc.Upload(ctx, testImages("a.jpg"))
	require.NoError(t, err)
	require.NoError(t, svc.Process(ctx, video.ID))

	// a duplicate delivery must not re-encode or change the outcome
	encoder.err = errors.New("would fail now")
	require.NoError(t, svc.Process(ctx, video.ID))

	done, err := svc.Get(ctx, video.ID)
	require.NoError(t, err)
	assert.Equal(t, models.VideoStatusSuccess, done.Status)
	assert.Len(t, encoder.calls, 1)
}

func TestVideoProcessMissingJobIsNoOp(t *testing.T) {
	svc, _, encoder, _ := setupVideoService(t)

	assert.NoError(t, svc.Process(context.Background(), 424242))
	assert.Empty(t, encoder.calls)
}

func TestVideoGetAndList(t *testing.T) {
	svc, _, _, _ := setupVideoService(t)
	ctx := context.Background()

	_, err := svc.Get(ctx, 1)
	assert.ErrorIs(t, err, ErrJobNotFound)

	first, err := svc.Upload(ctx, testImages("a.jpg"))
	require.NoError(t, err)
	second, err := svc.Upload(ctx, testImages("b.jpg"))
	require.NoError(t, err)

	videos, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, videos, 2)
	assert.Equal(t, first.ID, videos[0].ID)
	assert.Equal(t, second.ID, videos[1].ID)
}

func TestVideoProcessMissingImageFile(t *testing.T) {
	svc, _, encoder, db := setupVideoService(t)
	ctx := context.Background()

	video, err := svc.Upload(ctx, testImages("a.jpg"))
	require.NoError(t, err)

	// simulate the stored image vanishing before the worker runs
	require.NoError(t, db.Model(video).Update("image_paths", models.JSONStringList{"images/gone.jpg"}).Error)

	require.NoError(t, svc.Process(ctx, video.ID))

	failed, err := svc.Get(ctx, video.ID)
	require.NoError(t, err)
	assert.Equal(t, models.VideoStatusError, failed.Status)
	require.NotNil(t, failed.ErrorMessage)
	assert.Contains(t, *failed.ErrorMessage, "image not found")
	assert.Empty(t, encoder.calls)
}
