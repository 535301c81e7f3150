package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dujiao-next/storefront/internal/apiclient"
	"github.com/dujiao-next/storefront/internal/auth"
	"github.com/dujiao-next/storefront/internal/cache"
	"github.com/dujiao-next/storefront/internal/cart"
	"github.com/dujiao-next/storefront/internal/config"
	"github.com/dujiao-next/storefront/internal/logger"
	"github.com/dujiao-next/storefront/internal/notification"
	"github.com/dujiao-next/storefront/internal/review"
	"github.com/dujiao-next/storefront/internal/storage"

	"go.uber.org/zap"
)

const (
	defaultAPIBaseURL  = "http://localhost:8080/api/v1"
	defaultStoragePath = ".storefront/state.json"
)

// clientApp 客户端组合根：本地存储、REST 客户端与各状态仓库
type clientApp struct {
	out           io.Writer
	log           *zap.SugaredLogger
	storage       storage.Storage
	api           *apiclient.Client
	cart          *cart.Store
	auth          *auth.Store
	reviews       *review.Store
	notifications *notification.Store
	closers       []func()
}

// newClientApp 按配置装配客户端
func newClientApp(ctx context.Context, cfg *config.Config, out io.Writer) (*clientApp, error) {
	log := logger.Named("storefront")
	st, closeStorage, err := openStorage(cfg)
	if err != nil {
		return nil, err
	}

	baseURL := strings.TrimSpace(cfg.Storefront.APIBaseURL)
	if baseURL == "" {
		baseURL = defaultAPIBaseURL
	}
	api := apiclient.New(baseURL,
		apiclient.WithTimeout(cfg.Storefront.Timeout()),
		apiclient.WithTokenSource(apiclient.StorageToken(st)),
		apiclient.WithLogger(log.Named("api")),
	)

	backend, err := reviewBackend(cfg.Storefront.ReviewBackend, api)
	if err != nil {
		closeStorage()
		return nil, err
	}
	base := review.NewService(backend, review.DefaultValidators(cfg.Review.Denylist, nil), log.Named("review"))
	reviews := review.NewTrackingService(base, review.LogTracker{Log: log.Named("review_analytics")}, log.Named("review"))

	a := &clientApp{
		out:           out,
		log:           log,
		storage:       st,
		api:           api,
		cart:          cart.NewStore(ctx, st, cart.WithLogger(log.Named("cart"))),
		auth:          auth.NewStore(ctx, api.Auth(), st, log.Named("auth")),
		reviews:       review.NewStore(reviews),
		notifications: notification.NewStore(api.Notifications(), log.Named("notification")),
	}
	a.closers = append(a.closers, a.cart.Close, a.auth.Close, closeStorage)
	return a, nil
}

// Close 释放资源
func (a *clientApp) Close() {
	for _, fn := range a.closers {
		fn()
	}
}

// openStorage 打开本地持久化存储：file / memory / redis
func openStorage(cfg *config.Config) (storage.Storage, func(), error) {
	noop := func() {}
	switch strings.ToLower(strings.TrimSpace(cfg.Storefront.StorageDriver)) {
	case "", "file":
		path := strings.TrimSpace(cfg.Storefront.StoragePath)
		if path == "" {
			path = defaultStoragePath
		}
		st, err := storage.NewFile(filepath.Clean(path))
		if err != nil {
			return nil, nil, err
		}
		return st, noop, nil
	case "memory":
		return storage.NewMemory(), noop, nil
	case "redis":
		if err := cache.InitRedis(&cfg.Redis); err != nil {
			return nil, nil, err
		}
		if !cache.Enabled() {
			return nil, nil, fmt.Errorf("redis storage requires redis.enabled")
		}
		st := storage.Prefixed(storage.NewRedis(cache.Client(), 0), cache.BuildKey("storefront"))
		return st, func() { _ = cache.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unsupported storage driver: %s", cfg.Storefront.StorageDriver)
	}
}

// reviewBackend 按配置选择评价后端：http / mock
func reviewBackend(kind string, api *apiclient.Client) (review.Backend, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", "http":
		return api.Reviews(), nil
	case "mock":
		return review.NewMemoryBackend(review.SampleReviews()...), nil
	default:
		return nil, fmt.Errorf("unsupported review backend: %s", kind)
	}
}
