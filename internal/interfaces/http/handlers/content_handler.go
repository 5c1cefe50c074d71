package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"company-site.backend/internal/domain/entities"
	domainerrors "company-site.backend/internal/domain/errors"
	"company-site.backend/internal/interfaces/http/response"
	"company-site.backend/internal/usecases"
	"github.com/gin-gonic/gin"
)

// ContentHandler serves the public write endpoints of the site: job
// applications, their documents and the contact form.
type ContentHandler struct {
	applications *usecases.ApplicationUsecase
	messages     *usecases.ResourceUsecase[*entities.Message]
	uploads      *usecases.UploadUsecase
	search       *usecases.SearchUsecase
}

func NewContentHandler(
	applications *usecases.ApplicationUsecase,
	messages *usecases.ResourceUsecase[*entities.Message],
	uploads *usecases.UploadUsecase,
	search *usecases.SearchUsecase,
) *ContentHandler {
	return &ContentHandler{
		applications: applications,
		messages:     messages,
		uploads:      uploads,
		search:       search,
	}
}

// Apply submits an application to an open job.
// POST /api/content/jobs/:slug/applications
func (h *ContentHandler) Apply(c *gin.Context) {
	var app entities.JobApplication
	if err := c.ShouldBindJSON(&app); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	created, err := h.applications.Apply(c.Request.Context(), c.Param("slug"), &app)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{
		"success":     true,
		"application": created,
	})
}

// UploadDocument stores an applicant's document sent as base64.
// POST /api/content/uploads
func (h *ContentHandler) UploadDocument(c *gin.Context) {
	// base64 inflates by a third; leave room for the JSON around it
	limit := h.uploads.MaxBytes()/3*4 + 64*1024
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)

	var input usecases.DocumentUpload
	if err := c.ShouldBindJSON(&input); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			response.Error(c, domainerrors.PayloadTooLarge(fmtMaxSize(h.uploads.MaxBytes())))
			return
		}
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	obj, err := h.uploads.UploadDocument(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"success":  true,
		"url":      obj.URL,
		"fileName": input.FileName,
	})
}

// SendMessage stores a contact form submission. Visitors cannot pick a status.
// POST /api/content/messages
func (h *ContentHandler) SendMessage(c *gin.Context) {
	var msg entities.Message
	if err := c.ShouldBindJSON(&msg); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}
	msg.Status = ""

	created, err := h.messages.Create(c.Request.Context(), &msg)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{
		"success": true,
		"id":      created.ID,
	})
}

// Search looks up public content.
// GET /api/content/search?q=&kind=&limit=
func (h *ContentHandler) Search(c *gin.Context) {
	var kinds []entities.Kind
	for _, raw := range c.QueryArray("kind") {
		for _, k := range strings.Split(raw, ",") {
			if k = strings.TrimSpace(k); k != "" {
				kinds = append(kinds, entities.Kind(k))
			}
		}
	}
	limit, err := queryInt(c, "limit")
	if err != nil {
		response.Error(c, err)
		return
	}

	hits, err := h.search.Search(c.Request.Context(), c.Query("q"), kinds, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	if hits == nil {
		hits = []entities.SearchHit{}
	}
	response.Success(c, http.StatusOK, gin.H{
		"query":   strings.TrimSpace(c.Query("q")),
		"results": hits,
	})
}

func fmtMaxSize(limit int64) string {
	return "File must be " + strconv.FormatInt(limit/(1024*1024), 10) + "MB or smaller"
}
