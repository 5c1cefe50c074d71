package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"company-site.backend/internal/domain/entities"
	"company-site.backend/internal/infrastructure/datasources/postgres"
	"company-site.backend/internal/infrastructure/repositories"
	"company-site.backend/internal/infrastructure/storage"
	"company-site.backend/internal/interfaces/http/handlers"
	"company-site.backend/internal/usecases"
	"company-site.backend/pkg/content"
	"company-site.backend/pkg/jwt"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testEnv wires real repositories on an in-memory database behind the handlers.
type testEnv struct {
	db       *gorm.DB
	router   *gin.Engine
	jwt      *jwt.JWTService
	auth     *usecases.AuthUsecase
	jobs     *usecases.ResourceUsecase[*entities.Job]
	posts    *usecases.BlogPostUsecase
	messages *usecases.ResourceUsecase[*entities.Message]
	media    *usecases.ResourceUsecase[*entities.MediaAsset]
	uploads  *usecases.UploadUsecase
	files    *storage.LocalUploader
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:handlers_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, postgres.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	files := storage.NewLocalUploader(t.TempDir(), "/uploads")
	deps := usecases.ResourceDeps{
		UnitOfWork: repositories.NewUnitOfWork(db),
		Sanitizer:  content.NewSanitizer(),
		Files:      files,
	}

	env := &testEnv{db: db, files: files}
	env.jwt = jwt.NewJWTService("test-secret", time.Hour, 24*time.Hour)
	env.auth = usecases.NewAuthUsecase(repositories.NewAdminUserRepository(db), env.jwt, nil, time.Hour)
	env.jobs = usecases.NewResourceUsecase[*entities.Job](repositories.NewJobRepository(db), func() *entities.Job { return &entities.Job{} }, deps)
	env.posts = usecases.NewBlogPostUsecase(repositories.NewBlogPostRepository(db), deps)
	env.messages = usecases.NewResourceUsecase[*entities.Message](repositories.NewMessageRepository(db), func() *entities.Message { return &entities.Message{} }, deps)
	env.media = usecases.NewResourceUsecase[*entities.MediaAsset](repositories.NewMediaAssetRepository(db), func() *entities.MediaAsset { return &entities.MediaAsset{} }, deps)
	env.uploads = usecases.NewUploadUsecase(files, env.media, 1024)
	applications := usecases.NewApplicationUsecase(repositories.NewJobApplicationRepository(db), repositories.NewJobRepository(db), deps)
	search := usecases.NewSearchUsecase(nil, map[entities.Kind]usecases.SearchFallback{
		entities.KindJob:      usecases.ListFallback(env.jobs),
		entities.KindBlogPost: usecases.ListFallback(env.posts.ResourceUsecase),
	})

	r := gin.New()
	jobs := handlers.NewResourceHandler(env.jobs)
	r.GET("/admin/jobs", jobs.List)
	r.POST("/admin/jobs", jobs.Create)
	r.GET("/admin/jobs/:id", jobs.Get)
	r.PUT("/admin/jobs/:id", jobs.Update)
	r.PATCH("/admin/jobs/:id/status", jobs.UpdateStatus)
	r.DELETE("/admin/jobs/:id", jobs.Delete)
	r.POST("/admin/jobs/bulk-delete", jobs.BulkDelete)
	r.POST("/admin/jobs/bulk-status", jobs.BulkStatus)
	r.GET("/content/jobs", jobs.ListPublic)
	r.GET("/content/jobs/:slug", jobs.GetPublic)

	messages := handlers.NewResourceHandler(env.messages)
	r.GET("/content/messages/:slug", messages.GetPublic)

	site := handlers.NewContentHandler(applications, env.messages, env.uploads, search)
	r.POST("/content/jobs/:slug/applications", site.Apply)
	r.POST("/content/uploads", site.UploadDocument)
	r.POST("/content/messages", site.SendMessage)
	r.GET("/content/search", site.Search)

	admin := handlers.NewAdminHandler(env.uploads, usecases.NewAnalyticsUsecase(map[entities.Kind]usecases.StatusCounter{
		entities.KindJob:     repositories.NewJobRepository(db),
		entities.KindMessage: repositories.NewMessageRepository(db),
	}, time.Minute))
	r.POST("/admin/media/upload", admin.UploadMedia)
	r.GET("/admin/analytics", admin.GetAnalytics)
	r.GET("/admin/statuses", admin.GetStatuses)

	env.router = r
	return env
}

func (e *testEnv) do(method, path string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			_ = json.NewEncoder(&buf).Encode(body)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func jobBody(title, department string) map[string]interface{} {
	return map[string]interface{}{
		"title":           title,
		"description":     "<p>Build things</p>",
		"department":      department,
		"location":        "Remote",
		"experienceLevel": "Senior",
		"technologies":    []string{"Go", " ", "Postgres"},
	}
}
