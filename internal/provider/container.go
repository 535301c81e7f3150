package provider

import (
	"time"

	"github.com/dujiao-next/storefront/internal/authz"
	"github.com/dujiao-next/storefront/internal/cache"
	"github.com/dujiao-next/storefront/internal/config"
	"github.com/dujiao-next/storefront/internal/logger"
	"github.com/dujiao-next/storefront/internal/models"
	"github.com/dujiao-next/storefront/internal/queue"
	"github.com/dujiao-next/storefront/internal/repository"
	"github.com/dujiao-next/storefront/internal/service"
	"github.com/dujiao-next/storefront/internal/storage"

	"gorm.io/gorm"
)

// cartRedisTTL 服务端购物车在 Redis 中的保留时长
const cartRedisTTL = 30 * 24 * time.Hour

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client
	CartStorage storage.Storage

	// Repositories
	UserRepo         repository.UserRepository
	ProductRepo      repository.ProductRepository
	ReviewRepo       repository.ReviewRepository
	NotificationRepo repository.NotificationRepository

	// Services
	AuthzService        *authz.Service
	UserAuthService     *service.UserAuthService
	ProductService      *service.ProductService
	ReviewAnalytics     *service.ReviewAnalytics
	ReviewService       *service.ReviewService
	NotificationService *service.NotificationService
	CartService         *service.CartService
}

// NewContainer 使用全局数据库初始化容器
func NewContainer(cfg *config.Config) *Container {
	return NewContainerWithDB(cfg, models.DB)
}

// NewContainerWithDB 使用指定数据库初始化容器
func NewContainerWithDB(cfg *config.Config, db *gorm.DB) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端，未启用时为空实现
	queueClient, err := queue.NewClient(&cfg.Queue)
	if err != nil {
		logger.Errorw("provider_init_queue_client_failed", "error", err)
		queueClient, _ = queue.NewClient(nil)
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
		CartStorage: buildCartStorage(db),
	}

	// 1. 初始化 Repositories
	c.initRepositories(db)

	// 2. 初始化 Services
	c.initServices(db)

	return c
}

// buildCartStorage Redis 可用时购物车存 Redis，否则存数据库
func buildCartStorage(db *gorm.DB) storage.Storage {
	if client := cache.Client(); client != nil {
		return storage.Prefixed(storage.NewRedis(client, cartRedisTTL), cache.BuildKey(""))
	}
	return storage.NewDB(db)
}

func (c *Container) initRepositories(db *gorm.DB) {
	c.UserRepo = repository.NewUserRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.ReviewRepo = repository.NewReviewRepository(db)
	c.NotificationRepo = repository.NewNotificationRepository(db)
}

func (c *Container) initServices(db *gorm.DB) {
	authzService, err := authz.NewService(db)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo)
	c.ProductService = service.NewProductService(c.ProductRepo)
	c.NotificationService = service.NewNotificationService(c.NotificationRepo, logger.Named("notification"))
	c.ReviewAnalytics = service.NewReviewAnalytics(c.Config.Review.AnalyticsEnabled, c.QueueClient, c.NotificationService, logger.Named("review_analytics"))
	c.ReviewService = service.NewReviewService(c.Config, c.ReviewRepo, c.ProductService, c.ReviewAnalytics, logger.Named("review"))
	c.CartService = service.NewCartService(c.CartStorage, c.ProductService, logger.Named("cart"))
}

// Close 释放容器持有的连接
func (c *Container) Close() {
	if c == nil {
		return
	}
	if err := c.QueueClient.Close(); err != nil {
		logger.Warnw("provider_close_queue_client_failed", "error", err)
	}
	if err := cache.Close(); err != nil {
		logger.Warnw("provider_close_redis_failed", "error", err)
	}
}
