package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ovenbird/cookbook-backend/internal/service"
	"github.com/ovenbird/cookbook-backend/internal/testhelpers"
	"github.com/ovenbird/cookbook-backend/internal/worker"
)

const testJWTSecret = "test-jwt-secret"

// testApp bundles everything the handler tests need to drive requests.
type testApp struct {
	db     *gorm.DB
	router *gin.Engine
	auth   *service.AuthService
	queue  *worker.MemoryQueue
	videos *service.VideoService
}

func setupTestApp(t *testing.T) *testApp {
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupSQLiteDatabase(t)
	auth := service.NewAuthService(db, testJWTSecret)

	store, err := service.NewMediaStore(t.TempDir())
	require.NoError(t, err)
	queue := worker.NewMemoryQueue(nil)
	videos := service.NewVideoService(db, store, queue, &testEncoder{}, nil)

	router := gin.New()
	router.Use(gin.Recovery())
	v1 := router.Group("/api/v1")

	NewAuthHandler(auth).RegisterRoutes(v1)
	NewCatalogHandler(service.NewCuisineService(db), "/cuisines").RegisterRoutes(v1)
	NewCatalogHandler(service.NewAllergenService(db), "/allergens").RegisterRoutes(v1)
	NewCatalogHandler(service.NewIngredientService(db), "/ingredients").RegisterRoutes(v1)
	NewRecipeHandler(service.NewRecipeService(db), auth).RegisterRoutes(v1)
	NewVideoHandler(videos, auth, "http://localhost:8080").RegisterRoutes(v1)

	return &testApp{db: db, router: router, auth: auth, queue: queue, videos: videos}
}

// testEncoder pretends every encode succeeds without invoking ffmpeg.
type testEncoder struct{}

func (testEncoder) Encode(ctx context.Context, imagePaths []string, outputPath string) error {
	return os.WriteFile(outputPath, []byte("mp4"), 0o644)
}

// CreateTestUserAndToken registers a user through the API and returns the
// issued token.
func (app *testApp) CreateTestUserAndToken(t *testing.T, email string) string {
	w := app.PerformRequest("POST", "/api/v1/auth/register", map[string]any{
		"first_name": "Test",
		"last_name":  "User",
		"email":      email,
		"password":   "password123",
	}, "")
	require.Equal(t, 201, w.Code, w.Body.String())

	var resp TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

// PerformRequest drives one JSON request through the router, optionally with
// a bearer token.
func (app *testApp) PerformRequest(method, path string, body any, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request

	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			panic(err)
		}
		req = httptest.NewRequest(method, path, bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	app.router.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func decodeJSONList(t *testing.T, w *httptest.ResponseRecorder) []any {
	var out []any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}
