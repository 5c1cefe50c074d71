package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"company-site.backend/internal/domain/entities"
	domainerrors "company-site.backend/internal/domain/errors"
	"company-site.backend/internal/domain/repositories"
	"company-site.backend/internal/interfaces/http/response"
	"company-site.backend/internal/usecases"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ResourceHandler serves the admin and public endpoints of one resource kind.
type ResourceHandler[P entities.Resource] struct {
	uc *usecases.ResourceUsecase[P]
}

func NewResourceHandler[P entities.Resource](uc *usecases.ResourceUsecase[P]) *ResourceHandler[P] {
	return &ResourceHandler[P]{uc: uc}
}

type bulkDeleteInput struct {
	IDs []uuid.UUID `json:"ids" binding:"required,min=1,max=100"`
}

type bulkStatusInput struct {
	IDs    []uuid.UUID `json:"ids" binding:"required,min=1,max=100"`
	Status string      `json:"status" binding:"required"`
}

// List returns a filtered page of records.
// GET /api/admin/:resource?search=&status=&category=&page=&limit=
func (h *ResourceHandler[P]) List(c *gin.Context) {
	h.list(c, false)
}

// ListPublic is List restricted to publicly visible records.
// GET /api/content/:resource
func (h *ResourceHandler[P]) ListPublic(c *gin.Context) {
	h.list(c, true)
}

func (h *ResourceHandler[P]) list(c *gin.Context, publicOnly bool) {
	q, err := parseListQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	q.PublicOnly = publicOnly

	result, err := h.uc.List(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// Get returns one record.
// GET /api/admin/:resource/:id
func (h *ResourceHandler[P]) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	item, err := h.uc.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.respond(c, http.StatusOK, item)
}

// GetPublic returns a public record by slug, or by id for kinds without slugs.
// GET /api/content/:resource/:slug
func (h *ResourceHandler[P]) GetPublic(c *gin.Context) {
	ref := c.Param("slug")
	var (
		item P
		err  error
	)
	if h.uc.Kind().Sluggable() {
		item, err = h.uc.GetPublicBySlug(c.Request.Context(), ref)
	} else {
		id, parseErr := uuid.Parse(ref)
		if parseErr != nil {
			response.Error(c, domainerrors.NotFound("resource not found"))
			return
		}
		item, err = h.uc.GetPublic(c.Request.Context(), id)
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	h.respond(c, http.StatusOK, item)
}

// Create stores a new record.
// POST /api/admin/:resource
func (h *ResourceHandler[P]) Create(c *gin.Context) {
	item := h.uc.New()
	if err := c.ShouldBindJSON(item); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	created, err := h.uc.Create(c.Request.Context(), item)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.respond(c, http.StatusCreated, created)
}

// Update replaces a record. The expected version comes from the body or an
// If-Match header.
// PUT /api/admin/:resource/:id
func (h *ResourceHandler[P]) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	item := h.uc.New()
	if err := c.ShouldBindJSON(item); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}
	if item.Base().Version == 0 {
		version, err := ifMatchVersion(c)
		if err != nil {
			response.Error(c, err)
			return
		}
		item.Base().Version = version
	}

	updated, err := h.uc.Update(c.Request.Context(), id, item)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.respond(c, http.StatusOK, updated)
}

// UpdateStatus moves a record to another status.
// PATCH /api/admin/:resource/:id/status
func (h *ResourceHandler[P]) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var input usecases.StatusChange
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}
	if strings.TrimSpace(input.Status) == "" {
		response.Error(c, domainerrors.Validation(map[string]string{"status": "Status is required"}))
		return
	}

	updated, err := h.uc.UpdateStatus(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.respond(c, http.StatusOK, updated)
}

// Delete removes a record.
// DELETE /api/admin/:resource/:id
func (h *ResourceHandler[P]) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.uc.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"id":      id,
		"deleted": true,
	})
}

// BulkDelete removes every listed record and reports each outcome.
// POST /api/admin/:resource/bulk-delete
func (h *ResourceHandler[P]) BulkDelete(c *gin.Context) {
	var input bulkDeleteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("ids must list between 1 and 100 record ids"))
		return
	}
	response.Success(c, http.StatusOK, gin.H{"results": h.uc.BulkDelete(c.Request.Context(), input.IDs)})
}

// BulkStatus moves every listed record to one status.
// POST /api/admin/:resource/bulk-status
func (h *ResourceHandler[P]) BulkStatus(c *gin.Context) {
	var input bulkStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("ids (1 to 100) and status are required"))
		return
	}
	response.Success(c, http.StatusOK, gin.H{"results": h.uc.BulkStatus(c.Request.Context(), input.IDs, input.Status)})
}

// respond wraps a single record under its kind's key, e.g. {"job": {...}}.
func (h *ResourceHandler[P]) respond(c *gin.Context, status int, item P) {
	c.Header("ETag", strconv.Quote(strconv.Itoa(item.Base().Version)))
	response.Success(c, status, gin.H{h.uc.Kind().Singular(): item})
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid id"))
		return uuid.Nil, false
	}
	return id, true
}

func parseListQuery(c *gin.Context) (repositories.ListQuery, error) {
	q := repositories.ListQuery{
		Search:   c.Query("search"),
		Status:   c.Query("status"),
		Category: c.Query("category"),
	}
	var err error
	if q.Page, err = queryInt(c, "page"); err != nil {
		return q, err
	}
	if q.Limit, err = queryInt(c, "limit"); err != nil {
		return q, err
	}
	return q, nil
}

func queryInt(c *gin.Context, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, domainerrors.BadRequest(name + " must be a non-negative integer")
	}
	return n, nil
}

// ifMatchVersion reads a version from If-Match; absent means unconditional.
func ifMatchVersion(c *gin.Context) (int, error) {
	raw := strings.TrimSpace(c.GetHeader("If-Match"))
	if raw == "" || raw == "*" {
		return 0, nil
	}
	raw = strings.Trim(strings.TrimPrefix(raw, "W/"), `"`)
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, domainerrors.BadRequest("If-Match must carry a record version")
	}
	return v, nil
}
