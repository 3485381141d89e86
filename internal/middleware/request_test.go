package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bakery_planner_v1/internal/api/dto"
	"bakery_planner_v1/pkg/logger"
)

func setupRouter(buf *bytes.Buffer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestContext(logger.NewWithWriter(buf, "debug")), AccessLog(), Recovery())
	r.GET("/ok", func(c *gin.Context) {
		logger.Ctx(c.Request.Context()).Debug().Msg("inside handler")
		c.Status(http.StatusNoContent)
	})
	r.GET("/boom", func(c *gin.Context) {
		panic("oven on fire")
	})
	return r
}

func TestRequestContext_AssignsID(t *testing.T) {
	var buf bytes.Buffer
	r := setupRouter(&buf)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))

	id := w.Header().Get(RequestIDHeader)
	require.NotEmpty(t, id)
	assert.Contains(t, buf.String(), `"request_id":"`+id+`"`)
	assert.Contains(t, buf.String(), "inside handler")
	assert.Contains(t, buf.String(), `"status":204`)
}

func TestRequestContext_KeepsClientID(t *testing.T) {
	var buf bytes.Buffer
	r := setupRouter(&buf)

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestRecovery_ReturnsEnvelope(t *testing.T) {
	var buf bytes.Buffer
	r := setupRouter(&buf)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	var body dto.ErrorResp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "INTERNAL_ERROR", body.Error.Code)
	assert.NotContains(t, w.Body.String(), "oven on fire")
	assert.Contains(t, buf.String(), "oven on fire")
	assert.Contains(t, buf.String(), `"level":"error"`)
}
