package router

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/dujiao-next/storefront/internal/authz"
	"github.com/dujiao-next/storefront/internal/config"
	"github.com/dujiao-next/storefront/internal/constants"
	"github.com/dujiao-next/storefront/internal/http/response"
	"github.com/dujiao-next/storefront/internal/logger"
	"github.com/dujiao-next/storefront/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	requestIDHeader = "X-Request-ID"
	cartCountHeader = "X-Cart-Items-Count"
	cartTotalHeader = "X-Cart-Total"
)

// UserAuthenticator 校验访问令牌并返回声明
type UserAuthenticator interface {
	Authenticate(ctx context.Context, token string) (*service.UserJWTClaims, error)
}

// CORSMiddleware 跨域中间件，通配来源且允许凭据时回显请求来源
func CORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	return cors.New(corsConfig(cfg))
}

func corsConfig(cfg config.CORSConfig) cors.Config {
	out := cors.Config{
		AllowMethods:     cfg.AllowedMethods,
		AllowHeaders:     cfg.AllowedHeaders,
		ExposeHeaders:    []string{requestIDHeader, cartCountHeader, cartTotalHeader},
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           time.Duration(cfg.MaxAge) * time.Second,
	}
	if len(out.AllowMethods) == 0 {
		out.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	}
	if len(out.AllowHeaders) == 0 {
		out.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", requestIDHeader}
	}
	switch {
	case len(cfg.AllowedOrigins) > 0 && !slices.Contains(cfg.AllowedOrigins, "*"):
		out.AllowOrigins = cfg.AllowedOrigins
	case cfg.AllowCredentials:
		out.AllowOriginFunc = func(string) bool { return true }
	default:
		out.AllowAllOrigins = true
	}
	return out
}

// RequestIDMiddleware 请求 ID 中间件
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(constants.ContextKeyRequestID, requestID)
		c.Writer.Header().Set(requestIDHeader, requestID)
		c.Next()
	}
}

// LoggerMiddleware 结构化请求日志中间件
func LoggerMiddleware(log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = logger.Z()
	}
	sugar := log.Sugar()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := sugar.With(
			"request_id", getRequestID(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
		if len(c.Errors) > 0 {
			entry.Errorw("request", "errors", c.Errors.String())
			return
		}
		entry.Infow("request")
	}
}

func getRequestID(c *gin.Context) string {
	value, ok := c.Get(constants.ContextKeyRequestID)
	if !ok {
		return ""
	}
	if requestID, ok := value.(string); ok {
		return requestID
	}
	return ""
}

// UserJWTAuthMiddleware 用户 JWT 鉴权中间件
func UserJWTAuthMiddleware(auth UserAuthenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, present, valid := bearerToken(c)
		if !present {
			abortUnauthorized(c, "Authorization header is required")
			return
		}
		if !valid {
			abortUnauthorized(c, "Authorization header must be a Bearer token")
			return
		}
		if !authenticate(c, auth, token) {
			return
		}
		c.Next()
	}
}

// OptionalUserJWTMiddleware 可选鉴权：无令牌按游客处理，携带令牌时必须有效
func OptionalUserJWTMiddleware(auth UserAuthenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, present, valid := bearerToken(c)
		if !present {
			c.Next()
			return
		}
		if !valid {
			abortUnauthorized(c, "Authorization header must be a Bearer token")
			return
		}
		if !authenticate(c, auth, token) {
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) (token string, present, valid bool) {
	authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
	if authHeader == "" {
		return "", false, false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
		return "", true, false
	}
	return strings.TrimSpace(parts[1]), true, true
}

func authenticate(c *gin.Context, auth UserAuthenticator, token string) bool {
	if auth == nil {
		abortUnauthorized(c, "Invalid or expired token")
		return false
	}
	claims, err := auth.Authenticate(c.Request.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTokenRevoked):
			abortUnauthorized(c, "Session has been revoked")
		case errors.Is(err, service.ErrUserDisabled):
			abortUnauthorized(c, "Account disabled")
		case service.IsAuthError(err):
			abortUnauthorized(c, "Invalid or expired token")
		default:
			logger.Warnw("user_jwt_authenticate_failed", "request_id", getRequestID(c), "error", err)
			abortUnauthorized(c, "Invalid or expired token")
		}
		return false
	}
	c.Set(constants.ContextKeyUserID, claims.UserID)
	c.Set(constants.ContextKeyUserEmail, claims.Email)
	c.Set(constants.ContextKeyUserRole, claims.Role)
	return true
}

func abortUnauthorized(c *gin.Context, msg string) {
	response.Unauthorized(c, msg)
	c.Abort()
}

// RoleAuthzMiddleware 按用户角色执行 RBAC 授权，需在用户鉴权之后使用
func RoleAuthzMiddleware(authzService *authz.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authzService == nil {
			logger.Errorw("role_rbac_service_unavailable")
			abortUnauthorized(c, "Authentication required")
			return
		}

		userIDRaw, exists := c.Get(constants.ContextKeyUserID)
		userID, _ := userIDRaw.(uint)
		if !exists || userID == 0 {
			abortUnauthorized(c, "Authentication required")
			return
		}
		role := c.GetString(constants.ContextKeyUserRole)

		resource := c.FullPath()
		if strings.TrimSpace(resource) == "" {
			resource = c.Request.URL.Path
		}

		allowed, err := authzService.EnforceRole(role, resource, c.Request.Method)
		if err != nil {
			logger.Errorw("role_rbac_enforce_failed",
				"user_id", userID,
				"role", role,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"error", err,
			)
			abortUnauthorized(c, "Authentication required")
			return
		}
		if !allowed {
			logger.Warnw("role_rbac_permission_denied",
				"user_id", userID,
				"role", role,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"resource", authz.NormalizeObject(resource),
			)
			response.Forbidden(c, "Permission denied")
			c.Abort()
			return
		}

		c.Next()
	}
}
