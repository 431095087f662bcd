package middleware

import (
	"context"
	"strings"

	"vida-likes/internal/api/response"
	"vida-likes/internal/policy"
	"vida-likes/pkg/utils"

	"github.com/gin-gonic/gin"
)

const (
	ContextKeyUserID = "currentUserID"
	ContextKeyViewer = "currentViewer"
)

// TokenParser 解析 Bearer Token
type TokenParser interface {
	ParseToken(token string) (*utils.Claims, error)
}

// StaffFetcher 查询用户是否为管理员，用户不存在时返回错误
type StaffFetcher func(ctx context.Context, userID int64) (bool, error)

// Authenticator 把 Bearer Token 解析成访问者身份
// 管理员标记每次请求都从数据库读取，不写进 Token
type Authenticator struct {
	tokens TokenParser
	staff  StaffFetcher
}

func NewAuthenticator(tokens TokenParser, staff StaffFetcher) *Authenticator {
	return &Authenticator{tokens: tokens, staff: staff}
}

// OptionalAuth 未携带 Token 时按匿名访问处理；携带了 Token 则必须有效
func (a *Authenticator) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if extractToken(c) == "" {
			c.Set(ContextKeyViewer, policy.Anonymous)
			c.Next()
			return
		}
		if a.authenticate(c) {
			c.Next()
		}
	}
}

// AuthRequired JWT 认证中间件，要求请求必须携带有效 Token
func (a *Authenticator) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if extractToken(c) == "" {
			response.Unauthorized(c, "缺少认证令牌")
			return
		}
		if a.authenticate(c) {
			c.Next()
		}
	}
}

// authenticate 校验 Token 并写入访问者，失败时已写好 401 响应
func (a *Authenticator) authenticate(c *gin.Context) bool {
	claims, err := a.tokens.ParseToken(extractToken(c))
	if err != nil {
		response.Unauthorized(c, "无效或过期的认证令牌")
		return false
	}

	staff, err := a.staff(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Unauthorized(c, "用户不存在")
		return false
	}

	c.Set(ContextKeyUserID, claims.UserID)
	c.Set(ContextKeyViewer, policy.Viewer{UserID: claims.UserID, IsStaff: staff})
	return true
}

// StaffRequired 管理员权限中间件（必须在 AuthRequired 之后使用）
func StaffRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		viewer := GetViewer(c)
		if !viewer.Authenticated() {
			response.Unauthorized(c, "缺少认证信息")
			return
		}
		if !viewer.IsStaff {
			response.Forbidden(c, "需要管理员权限")
			return
		}
		c.Next()
	}
}

// GetCurrentUserID 从 Gin Context 中获取当前登录用户 ID
func GetCurrentUserID(c *gin.Context) (int64, bool) {
	val, exists := c.Get(ContextKeyUserID)
	if !exists {
		return 0, false
	}
	userID, ok := val.(int64)
	return userID, ok
}

// GetViewer 获取当前访问者，未经过认证中间件时视为匿名
func GetViewer(c *gin.Context) policy.Viewer {
	if val, exists := c.Get(ContextKeyViewer); exists {
		if viewer, ok := val.(policy.Viewer); ok {
			return viewer
		}
	}
	return policy.Anonymous
}

// extractToken 从 Authorization 头中提取 Bearer Token
func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}
