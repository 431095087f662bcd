// Package response 统一 JSON 响应。
//
// 成功和失败响应都带上 request_id，与访问日志中的 request_id 一致。
// 失败响应会中止后续 Handler，中间件和 Handler 写完错误后直接 return 即可。
package response

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ContextKeyRequestID 请求 ID 在 gin.Context 中的键，由 RequestID 中间件写入
const ContextKeyRequestID = "requestID"

// Response 统一成功响应
type Response struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Data      any    `json:"data,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorInfo 错误详情，Type 由状态码决定
type ErrorInfo struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

// ErrorResponse 统一错误响应
type ErrorResponse struct {
	Error     ErrorInfo `json:"error"`
	RequestID string    `json:"request_id,omitempty"`
}

func OK(c *gin.Context, message string, data any) {
	Success(c, http.StatusOK, message, data)
}

func Created(c *gin.Context, message string, data any) {
	Success(c, http.StatusCreated, message, data)
}

// Success 以指定状态码写成功响应
func Success(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Response{
		Success:   true,
		Message:   message,
		Data:      data,
		RequestID: c.GetString(ContextKeyRequestID),
	})
}

// Fail 写错误响应并中止请求链
func Fail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error: ErrorInfo{
			Code:    status,
			Message: message,
			Type:    ErrorType(status),
		},
		RequestID: c.GetString(ContextKeyRequestID),
	})
}

// ErrorType 状态码对应的错误类型，如 404 -> NotFound
func ErrorType(status int) string {
	text := http.StatusText(status)
	if text == "" {
		return "Error"
	}
	return strings.NewReplacer(" ", "", "-", "").Replace(text)
}

func BadRequest(c *gin.Context, message string) {
	Fail(c, http.StatusBadRequest, message)
}

func Unauthorized(c *gin.Context, message string) {
	Fail(c, http.StatusUnauthorized, message)
}

func Forbidden(c *gin.Context, message string) {
	Fail(c, http.StatusForbidden, message)
}

func NotFound(c *gin.Context, message string) {
	Fail(c, http.StatusNotFound, message)
}

func InternalError(c *gin.Context, message string) {
	Fail(c, http.StatusInternalServerError, message)
}
