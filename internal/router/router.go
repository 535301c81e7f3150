package router

import (
	"sort"
	"strings"

	"github.com/dujiao-next/storefront/internal/authz"
	"github.com/dujiao-next/storefront/internal/cache"
	"github.com/dujiao-next/storefront/internal/config"
	adminhandlers "github.com/dujiao-next/storefront/internal/http/handlers/admin"
	publichandlers "github.com/dujiao-next/storefront/internal/http/handlers/public"
	"github.com/dujiao-next/storefront/internal/http/response"
	"github.com/dujiao-next/storefront/internal/logger"
	"github.com/dujiao-next/storefront/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	loginRule := RateLimitRule{
		Prefix:        cache.BuildKey("rate:login"),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
		Message:       "Too many login attempts",
	}
	userAuth := UserJWTAuthMiddleware(c.UserAuthService)
	optionalAuth := OptionalUserJWTMiddleware(c.UserAuthService)
	roleAuthz := RoleAuthzMiddleware(c.AuthzService)

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(logger.Z()))
	r.Use(CORSMiddleware(cfg.CORS))

	apiV1 := r.Group("/api/v1")
	{
		// 用户认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", publicHandler.UserRegister)
			auth.POST("/login", RateLimitMiddleware(cache.Client(), loginRule, KeyByIPAndJSONField("email")), publicHandler.UserLogin)
			auth.POST("/refresh", publicHandler.UserRefresh)
			auth.POST("/logout", userAuth, publicHandler.UserLogout)
			auth.GET("/profile", userAuth, publicHandler.GetCurrentUser)
			auth.PUT("/profile", userAuth, publicHandler.UpdateUserProfile)
		}

		// 商品与搜索
		apiV1.GET("/products", publicHandler.GetProducts)
		apiV1.GET("/products/:id", publicHandler.GetProduct)
		apiV1.GET("/products/:id/reviews", publicHandler.GetProductReviews)
		apiV1.POST("/products/:id/reviews", optionalAuth, publicHandler.SubmitProductReview)
		apiV1.POST("/search", publicHandler.SearchProducts)

		// 评价
		apiV1.GET("/reviews", publicHandler.GetReviews)
		apiV1.POST("/reviews", optionalAuth, publicHandler.SubmitReview)
		apiV1.PUT("/reviews/:id", userAuth, roleAuthz, adminHandler.UpdateReview)
		apiV1.DELETE("/reviews/:id", userAuth, roleAuthz, adminHandler.DeleteReview)

		// 用户接口（需鉴权）
		user := apiV1.Group("")
		user.Use(userAuth)
		{
			user.GET("/cart", publicHandler.GetCart)
			user.POST("/cart", publicHandler.AddCartItem)
			user.DELETE("/cart", publicHandler.ClearCart)
			user.PUT("/cart/items/:key", publicHandler.UpdateCartItem)
			user.DELETE("/cart/items/:key", publicHandler.RemoveCartItem)

			user.GET("/notifications", publicHandler.GetNotifications)
			user.PATCH("/notifications/read-all", publicHandler.MarkAllNotificationsRead)
			user.PATCH("/notifications/:id/read", publicHandler.MarkNotificationRead)
			user.DELETE("/notifications/:id", publicHandler.DeleteNotification)
		}

		// 管理接口（角色授权）
		admin := apiV1.Group("/admin")
		admin.Use(userAuth, roleAuthz)
		{
			admin.POST("/products", adminHandler.CreateProduct)
			admin.GET("/reviews/stats/:productId", adminHandler.GetReviewStats)
			admin.POST("/notifications", adminHandler.SendNotification)

			admin.GET("/authz/roles", adminHandler.ListAuthzRoles)
			admin.POST("/authz/roles", adminHandler.CreateAuthzRole)
			admin.GET("/authz/roles/:role/policies", adminHandler.GetAuthzRolePolicies)
			admin.POST("/authz/policies", adminHandler.GrantAuthzPolicy)
			admin.DELETE("/authz/policies", adminHandler.RevokeAuthzPolicy)
			admin.GET("/authz/permissions/catalog", func(ctx *gin.Context) {
				response.Success(ctx, buildPermissionCatalog(r))
			})
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}

type permissionCatalogItem struct {
	Module     string `json:"module"`
	Method     string `json:"method"`
	Object     string `json:"object"`
	Permission string `json:"permission"`
}

// buildPermissionCatalog 列出需要角色授权的路由
func buildPermissionCatalog(engine *gin.Engine) []permissionCatalogItem {
	if engine == nil {
		return []permissionCatalogItem{}
	}

	routes := engine.Routes()
	seen := make(map[string]struct{}, len(routes))
	items := make([]permissionCatalogItem, 0, len(routes))

	for _, item := range routes {
		method := strings.ToUpper(strings.TrimSpace(item.Method))
		if method == "" || method == "OPTIONS" || method == "HEAD" {
			continue
		}
		if !isRoleGuardedRoute(method, item.Path) {
			continue
		}
		object := authz.NormalizeObject(item.Path)
		permission := method + ":" + object
		if _, exists := seen[permission]; exists {
			continue
		}
		seen[permission] = struct{}{}
		items = append(items, permissionCatalogItem{
			Module:     derivePermissionModule(object),
			Method:     method,
			Object:     object,
			Permission: permission,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Module == items[j].Module {
			if items[i].Object == items[j].Object {
				return items[i].Method < items[j].Method
			}
			return items[i].Object < items[j].Object
		}
		return items[i].Module < items[j].Module
	})

	return items
}

func isRoleGuardedRoute(method, path string) bool {
	if strings.HasPrefix(path, "/api/v1/admin/") {
		return true
	}
	return path == "/api/v1/reviews/:id" && (method == "PUT" || method == "DELETE")
}

func derivePermissionModule(object string) string {
	normalized := strings.TrimPrefix(strings.TrimSpace(object), "/")
	if normalized == "" {
		return "system"
	}
	segments := strings.Split(normalized, "/")
	if len(segments) <= 1 || segments[0] != "admin" {
		return segments[0]
	}
	return segments[1]
}
