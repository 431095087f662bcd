package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorType(t *testing.T) {
	assert.Equal(t, "BadRequest", ErrorType(http.StatusBadRequest))
	assert.Equal(t, "NotFound", ErrorType(http.StatusNotFound))
	assert.Equal(t, "InternalServerError", ErrorType(http.StatusInternalServerError))
	assert.Equal(t, "NonAuthoritativeInformation", ErrorType(http.StatusNonAuthoritativeInfo))
	assert.Equal(t, "Error", ErrorType(599))
}

func TestFailAbortsChain(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reached := false

	r := gin.New()
	r.GET("/x",
		func(c *gin.Context) {
			c.Set(ContextKeyRequestID, "rid-1")
			c.Next()
		},
		func(c *gin.Context) { Forbidden(c, "仅管理员可访问") },
		func(c *gin.Context) { reached = true },
	)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.False(t, reached)
	require.Equal(t, http.StatusForbidden, w.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, ErrorResponse{
		Error:     ErrorInfo{Code: http.StatusForbidden, Message: "仅管理员可访问", Type: "Forbidden"},
		RequestID: "rid-1",
	}, body)
}

func TestSuccessEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.POST("/x", func(c *gin.Context) {
		c.Set(ContextKeyRequestID, "rid-2")
		Created(c, "已创建", gin.H{"id": 7})
	})
	r.GET("/y", func(c *gin.Context) { OK(c, "ok", nil) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/x", nil))
	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"success":true,"message":"已创建","data":{"id":7},"request_id":"rid-2"}`, w.Body.String())

	// 没有请求 ID 时省略字段
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/y", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"message":"ok"}`, w.Body.String())
}
