package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"company-site.backend/internal/domain/entities"
	domainerrors "company-site.backend/internal/domain/errors"
	"company-site.backend/internal/interfaces/http/response"
	"company-site.backend/internal/usecases"
	"github.com/gin-gonic/gin"
)

// AdminHandler serves the dashboard endpoints that are not tied to one
// resource: media uploads, analytics and status metadata.
type AdminHandler struct {
	uploads   *usecases.UploadUsecase
	analytics *usecases.AnalyticsUsecase
}

func NewAdminHandler(uploads *usecases.UploadUsecase, analytics *usecases.AnalyticsUsecase) *AdminHandler {
	return &AdminHandler{uploads: uploads, analytics: analytics}
}

// UploadMedia stores a multipart file in the media library.
// POST /api/admin/media/upload (fields: file, folder)
func (h *AdminHandler) UploadMedia(c *gin.Context) {
	// multipart framing on top of the file itself
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.uploads.MaxBytes()+1024*1024)

	header, err := c.FormFile("file")
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			response.Error(c, domainerrors.PayloadTooLarge(fmtMaxSize(h.uploads.MaxBytes())))
			return
		}
		response.Error(c, domainerrors.Validation(map[string]string{"file": "A file is required"}))
		return
	}
	file, err := header.Open()
	if err != nil {
		response.Error(c, domainerrors.BadRequest("file could not be read"))
		return
	}
	defer file.Close()

	asset, err := h.uploads.UploadMedia(
		c.Request.Context(),
		c.PostForm("folder"),
		header.Filename,
		header.Header.Get("Content-Type"),
		header.Size,
		file,
	)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"media": asset})
}

// GetAnalytics returns the dashboard snapshot.
// GET /api/admin/analytics?refresh=true
func (h *AdminHandler) GetAnalytics(c *gin.Context) {
	refresh, _ := strconv.ParseBool(c.Query("refresh"))
	snap, err := h.analytics.Snapshot(c.Request.Context(), refresh)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"analytics": snap})
}

// GetStatuses lists every status enum with its labels and colours.
// GET /api/admin/statuses
func (h *AdminHandler) GetStatuses(c *gin.Context) {
	statuses := make(map[entities.Kind]entities.StatusSet, len(entities.AllKinds))
	for _, k := range entities.AllKinds {
		statuses[k] = k.Statuses()
	}
	response.Success(c, http.StatusOK, gin.H{
		"statuses": statuses,
		"jobTypes": entities.JobTypes,
	})
}

// RevalidateHandler lets the front-end (or a webhook) purge cached pages.
type RevalidateHandler struct {
	revalidation *usecases.RevalidationUsecase
}

func NewRevalidateHandler(revalidation *usecases.RevalidationUsecase) *RevalidateHandler {
	return &RevalidateHandler{revalidation: revalidation}
}

// Revalidate purges the cached data behind a public path.
// POST /api/revalidate {path, secret}; ?secret= is also accepted
func (h *RevalidateHandler) Revalidate(c *gin.Context) {
	var input struct {
		Path   string `json:"path"`
		Secret string `json:"secret"`
	}
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Error(c, domainerrors.BadRequest(err.Error()))
			return
		}
	}
	if input.Secret == "" {
		input.Secret = c.Query("secret")
	}
	if input.Path == "" {
		input.Path = c.Query("path")
	}

	result, err := h.revalidation.Handle(c.Request.Context(), input.Path, input.Secret)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}
