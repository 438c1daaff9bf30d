package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ovenbird/cookbook-backend/config"
	"github.com/ovenbird/cookbook-backend/internal/models"
	"github.com/ovenbird/cookbook-backend/internal/worker"
)

// UploadedImage is one entry of a multipart image batch.
type UploadedImage struct {
	Filename    string
	ContentType string
	Data        []byte
}

// VideoService accepts image batches, tracks stitching jobs and, on the
// worker lane, drives each job to its single terminal state.
type VideoService struct {
	db      *gorm.DB
	store   *MediaStore
	queue   worker.Queue
	encoder worker.Encoder
	s3      *config.S3Config
}

func NewVideoService(db *gorm.DB, store *MediaStore, queue worker.Queue, encoder worker.Encoder, s3 *config.S3Config) *VideoService {
	return &VideoService{
		db:      db,
		store:   store,
		queue:   queue,
		encoder: encoder,
		s3:      s3,
	}
}

// Upload validates the batch, stores each image under a generated unique
// filename, creates a pending job with the paths in upload order and hands
// the job id to the worker lane. It returns immediately; processing happens
// out of band.
func (s *VideoService) Upload(ctx context.Context, images []UploadedImage) (*models.Video, error) {
	if len(images) == 0 {
		return nil, ErrEmptyUpload
	}
	for _, img := range images {
		if !strings.HasPrefix(img.ContentType, "image/") {
			return nil, &NotAnImageError{ContentType: img.ContentType}
		}
	}

	paths := make(models.JSONStringList, 0, len(images))
	for _, img := range images {
		ext := filepath.Ext(img.Filename)
		if ext == "" {
			ext = ".jpg"
		}
		rel, err := s.store.SaveImage(uuid.New().String()+ext, img.Data)
		if err != nil {
			return nil, err
		}
		paths = append(paths, rel)
	}

	video := models.Video{
		Status:     models.VideoStatusPending,
		ImagePaths: paths,
	}
	if err := s.db.WithContext(ctx).Create(&video).Error; err != nil {
		return nil, err
	}

	// Fire-and-forget: a failed hand-off leaves the job observable as
	// pending, it is never surfaced to the uploader.
	if err := s.queue.Enqueue(ctx, video.ID); err != nil {
		log.Printf("[video] failed to enqueue job %d: %v", video.ID, err)
	}

	return &video, nil
}

// Get returns a job by id.
func (s *VideoService) Get(ctx context.Context, id uint) (*models.Video, error) {
	var video models.Video
	if err := s.db.WithContext(ctx).First(&video, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &video, nil
}

// List returns all jobs ordered by id ascending.
func (s *VideoService) List(ctx context.Context) ([]models.Video, error) {
	var videos []models.Video
	if err := s.db.WithContext(ctx).Order("id").Find(&videos).Error; err != nil {
		return nil, err
	}
	return videos, nil
}

// Process is the worker side of the pipeline. It commits exactly one
// terminal transition per job: success with the produced path, or error with
// a human-readable message. A job that no longer exists is a no-op, and
// already-terminal jobs are never transitioned again.
func (s *VideoService) Process(ctx context.Context, jobID uint) error {
	var video models.Video
	if err := s.db.WithContext(ctx).First(&video, jobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if video.Status != models.VideoStatusPending {
		return nil
	}

	rel, err := s.buildVideo(ctx, &video)
	if err != nil {
		msg := err.Error()
		video.Status = models.VideoStatusError
		video.ErrorMessage = &msg
		video.VideoPath = nil
		log.Printf("[video] job %d failed: %v", jobID, err)
	} else {
		video.Status = models.VideoStatusSuccess
		video.VideoPath = &rel
		video.ErrorMessage = nil
	}

	return s.db.WithContext(ctx).Save(&video).Error
}

func (s *VideoService) buildVideo(ctx context.Context, video *models.Video) (string, error) {
	if len(video.ImagePaths) == 0 {
		return "", errors.New("no images to build a video from")
	}

	absPaths := make([]string, 0, len(video.ImagePaths))
	for _, rel := range video.ImagePaths {
		abs := s.store.Abs(rel)
		if _, err := os.Stat(abs); err != nil {
			return "", fmt.Errorf("image not found: %s", rel)
		}
		absPaths = append(absPaths, abs)
	}

	rel, abs := s.store.VideoPath(uuid.New().String() + ".mp4")
	if err := s.encoder.Encode(ctx, absPaths, abs); err != nil {
		return "", err
	}

	s.mirrorToS3(ctx, rel, abs)
	return rel, nil
}

// mirrorToS3 uploads the finished video when a bucket is configured. Failures
// are logged, never propagated: the local copy is the source of truth.
func (s *VideoService) mirrorToS3(ctx context.Context, rel, abs string) {
	if s.s3 == nil {
		return
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		log.Printf("[video] cannot read %s for S3 mirror: %v", rel, err)
		return
	}
	url, err := s.s3.UploadObject(ctx, rel, data, "video/mp4")
	if err != nil {
		log.Printf("[video] S3 mirror failed for %s: %v", rel, err)
		return
	}
	log.Printf("[video] mirrored %s to %s", rel, url)
}
