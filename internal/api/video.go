package api

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ovenbird/cookbook-backend/internal/middleware"
	"github.com/ovenbird/cookbook-backend/internal/models"
	"github.com/ovenbird/cookbook-backend/internal/service"
)

type VideoHandler struct {
	videos      *service.VideoService
	authService middleware.TokenValidator
	baseURL     string
}

func NewVideoHandler(videos *service.VideoService, authService middleware.TokenValidator, baseURL string) *VideoHandler {
	return &VideoHandler{
		videos:      videos,
		authService: authService,
		baseURL:     strings.TrimRight(baseURL, "/"),
	}
}

func (h *VideoHandler) RegisterRoutes(router *gin.RouterGroup) {
	videos := router.Group("/videos")
	{
		videos.POST("/upload", middleware.AuthMiddleware(h.authService), h.UploadImages)
		videos.GET("", h.ListVideos)
		videos.GET("/:id", h.GetVideo)
	}
}

// VideoResponse mirrors a stored job with media paths resolved to URLs the
// client can fetch.
type VideoResponse struct {
	ID           uint               `json:"id"`
	Status       models.VideoStatus `json:"status"`
	ImageURLs    []string           `json:"image_urls"`
	VideoURL     *string            `json:"video_url"`
	ErrorMessage *string            `json:"error_message,omitempty"`
}

func (h *VideoHandler) toResponse(video *models.Video) VideoResponse {
	resp := VideoResponse{
		ID:           video.ID,
		Status:       video.Status,
		ImageURLs:    make([]string, 0, len(video.ImagePaths)),
		ErrorMessage: video.ErrorMessage,
	}
	for _, path := range video.ImagePaths {
		resp.ImageURLs = append(resp.ImageURLs, h.mediaURL(path))
	}
	if video.VideoPath != nil {
		url := h.mediaURL(*video.VideoPath)
		resp.VideoURL = &url
	}
	return resp
}

func (h *VideoHandler) mediaURL(rel string) string {
	return h.baseURL + "/static/uploads/" + rel
}

// UploadImages accepts a multipart batch of images, stores them and queues
// the encoding job.
func (h *VideoHandler) UploadImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid multipart form"})
		return
	}

	files := form.File["files"]
	images := make([]service.UploadedImage, 0, len(files))
	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "could not read uploaded file"})
			return
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "could not read uploaded file"})
			return
		}
		images = append(images, service.UploadedImage{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Data:        data,
		})
	}

	video, err := h.videos.Upload(c.Request.Context(), images)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.toResponse(video))
}

func (h *VideoHandler) GetVideo(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	video, err := h.videos.Get(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.toResponse(video))
}

func (h *VideoHandler) ListVideos(c *gin.Context) {
	videos, err := h.videos.List(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	responses := make([]VideoResponse, 0, len(videos))
	for i := range videos {
		responses = append(responses, h.toResponse(&videos[i]))
	}
	c.JSON(http.StatusOK, responses)
}
