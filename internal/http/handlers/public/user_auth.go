package public

import (
	"strings"

	"github.com/dujiao-next/storefront/internal/contracts"
	"github.com/dujiao-next/storefront/internal/http/response"
	"github.com/dujiao-next/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// UserRegister 用户注册
func (h *Handler) UserRegister(c *gin.Context) {
	var req contracts.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request body", err)
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		respondError(c, response.CodeBadRequest, "Email and password are required", nil)
		return
	}

	session, err := h.UserAuthService.Register(c.Request.Context(), req)
	if err != nil {
		respondWithMappedError(c, err, registerErrorRules, response.CodeInternal, "Registration failed")
		return
	}
	response.Created(c, session.AuthResponse())
}

// UserLogin 用户登录
func (h *Handler) UserLogin(c *gin.Context) {
	var req contracts.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request body", err)
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		respondError(c, response.CodeBadRequest, "Email and password are required", nil)
		return
	}

	session, err := h.UserAuthService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		requestLog(c).Infow("user_login_failed", "email", strings.ToLower(strings.TrimSpace(req.Email)), "client_ip", c.ClientIP())
		respondWithMappedError(c, err, loginErrorRules, response.CodeInternal, "Login failed")
		return
	}
	response.Success(c, session.AuthResponse())
}

// UserRefresh 使用刷新令牌换取新会话
func (h *Handler) UserRefresh(c *gin.Context) {
	var req contracts.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		respondError(c, response.CodeBadRequest, "Refresh token is required", err)
		return
	}

	session, err := h.UserAuthService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondWithMappedError(c, err, authTokenErrorRules, response.CodeInternal, "Token refresh failed")
		return
	}
	response.Success(c, session.AuthResponse())
}

// UserLogout 退出登录，使该用户已签发的令牌失效
func (h *Handler) UserLogout(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	if err := h.UserAuthService.Logout(c.Request.Context(), uid); err != nil {
		respondWithMappedError(c, err, concatMappedHandlerErrors(profileErrorRules, authTokenErrorRules), response.CodeInternal, "Logout failed")
		return
	}
	response.Success(c, nil)
}

// GetCurrentUser 当前用户资料
func (h *Handler) GetCurrentUser(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	user, err := h.UserAuthService.GetProfile(uid)
	if err != nil {
		respondWithMappedError(c, err, profileErrorRules, response.CodeInternal, "Failed to load profile")
		return
	}
	response.Success(c, service.ToContractUser(user))
}

// UpdateUserProfile 局部更新资料
func (h *Handler) UpdateUserProfile(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req contracts.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request body", err)
		return
	}
	user, err := h.UserAuthService.UpdateProfile(uid, req)
	if err != nil {
		respondWithMappedError(c, err, profileErrorRules, response.CodeInternal, "Failed to update profile")
		return
	}
	response.Success(c, service.ToContractUser(user))
}
