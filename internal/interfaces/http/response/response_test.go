package response

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	domainerrors "company-site.backend/internal/domain/errors"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func TestSuccess(t *testing.T) {
	c, w := newContext()

	Success(c, http.StatusOK, gin.H{"ok": true})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ok":true`)
}

func TestError_AppError(t *testing.T) {
	c, w := newContext()

	Error(c, domainerrors.NotFound("missing"))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), domainerrors.CodeNotFound)
	assert.Contains(t, w.Body.String(), `"error":"missing"`)
	assert.NotContains(t, w.Body.String(), "fields")
}

func TestError_ValidationFields(t *testing.T) {
	c, w := newContext()

	Error(c, domainerrors.Validation(map[string]string{"department": "Department is required"}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"fields":{"department":"Department is required"}`)
}

func TestError_Sentinel(t *testing.T) {
	c, w := newContext()

	Error(c, domainerrors.ErrConflict)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestError_GenericError(t *testing.T) {
	c, w := newContext()

	Error(c, errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), domainerrors.CodeInternalError)
	assert.NotContains(t, w.Body.String(), "boom")
}

func TestErrorWithError(t *testing.T) {
	c, w := newContext()

	ErrorWithError(c, http.StatusBadRequest, "ERR_X", "bad")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"ERR_X"`)
}
