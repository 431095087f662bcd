package handler

import (
	"context"
	"errors"
	"net/http"

	"vida-likes/internal/api/dto"
	"vida-likes/internal/api/middleware"
	"vida-likes/internal/api/response"
	"vida-likes/internal/service"
	"vida-likes/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AccountService 账号注册、登录与资料读取
type AccountService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserInfo, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenData, error)
	GetCurrentUser(ctx context.Context, userID int64) (*dto.UserInfo, error)
}

// accountErrors 账号业务错误对应的状态码，未列出的按 500 处理
var accountErrors = []struct {
	target error
	status int
}{
	{service.ErrUsernameExists, http.StatusBadRequest},
	{service.ErrInvalidCredential, http.StatusUnauthorized},
	// Token 有效但账号已删除
	{service.ErrUserNotFound, http.StatusUnauthorized},
}

// AccountHandler 签发和描述访问者身份：登录签发的 Token 由 Authenticator 解析，
// 管理员标记不写进 Token，/auth/me 返回的是 Authenticator 本次请求读取到的身份
type AccountHandler struct {
	accounts AccountService
}

func NewAccountHandler(accounts AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

// Register 注册普通用户，管理员只能由数据库授予
// @Summary 用户注册
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "注册信息"
// @Success 201 {object} response.Response{data=dto.UserInfo} "注册成功"
// @Failure 400 {object} response.ErrorResponse "请求参数无效或用户名已存在"
// @Router /auth/register [post]
func (h *AccountHandler) Register(c *gin.Context) {
	req, ok := bindJSON[dto.RegisterRequest](c)
	if !ok {
		return
	}

	user, err := h.accounts.Register(c.Request.Context(), req)
	if err != nil {
		failAccount(c, "register", err)
		return
	}
	response.Created(c, "注册成功", user)
}

// Login 登录并签发 Bearer Token
// @Summary 用户登录
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "登录信息"
// @Success 200 {object} response.Response{data=dto.TokenData} "登录成功"
// @Failure 400 {object} response.ErrorResponse "请求参数无效"
// @Failure 401 {object} response.ErrorResponse "用户名或密码错误"
// @Router /auth/login [post]
func (h *AccountHandler) Login(c *gin.Context) {
	req, ok := bindJSON[dto.LoginRequest](c)
	if !ok {
		return
	}

	token, err := h.accounts.Login(c.Request.Context(), req)
	if err != nil {
		failAccount(c, "login", err)
		return
	}
	response.OK(c, "登录成功", token)
}

// Me 当前访问者
// @Summary 当前访问者
// @Description is_staff 为本次请求认证时从数据库读取的值
// @Tags 认证
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=dto.UserInfo} "获取成功"
// @Failure 401 {object} response.ErrorResponse "未授权"
// @Router /auth/me [get]
func (h *AccountHandler) Me(c *gin.Context) {
	viewer := middleware.GetViewer(c)
	if !viewer.Authenticated() {
		response.Unauthorized(c, "缺少认证信息")
		return
	}

	user, err := h.accounts.GetCurrentUser(c.Request.Context(), viewer.UserID)
	if err != nil {
		failAccount(c, "me", err)
		return
	}
	user.IsStaff = viewer.IsStaff
	response.OK(c, "获取成功", user)
}

// bindJSON 解析请求体，失败时已写好 400 响应
func bindJSON[T any](c *gin.Context) (*T, bool) {
	var req T
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return nil, false
	}
	return &req, true
}

func failAccount(c *gin.Context, op string, err error) {
	for _, e := range accountErrors {
		if errors.Is(err, e.target) {
			response.Fail(c, e.status, err.Error())
			return
		}
	}
	logger.Ctx(c.Request.Context()).Error("Account request failed", zap.String("op", op), zap.Error(err))
	response.InternalError(c, "服务繁忙，请稍后重试")
}
