package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"printshop/internal/app/config"
	"printshop/internal/app/domains/entity/etcatalog"
	"printshop/internal/app/domains/guardrail"
	"printshop/internal/app/domains/modules/mdnotify"
	"printshop/internal/app/domains/services/svorder"
	"printshop/internal/app/domains/tools/inventory"
	"printshop/internal/app/domains/tools/pricing"
	"printshop/internal/app/domains/tools/resolution"
	"printshop/internal/app/infra/raster"
	"printshop/internal/app/infra/storage"
	"printshop/internal/app/pkg/idgen"
	"printshop/internal/app/server/handlers/catalog"
	"printshop/internal/app/server/handlers/order"
	"printshop/internal/app/server/handlers/upload"
	"printshop/internal/app/server/routers"
	"printshop/pkg/infra/redis"
	"printshop/pkg/lmstfy"
	"printshop/pkg/logger"
)

// App 组装完成的应用
type App struct {
	Engine *gin.Engine
	Logger logger.Logger
}

// InitializeApp 按依赖顺序手工装配所有组件
func InitializeApp(cfg *config.Config) (*App, func(), error) {
	log, err := logger.NewZapLogger(cfg.App.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	cleanup := func() { _ = log.Sync() }

	// 1. 能力目录与价格表
	cat, table, err := etcatalog.LoadFile(cfg.Catalog.Path)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("load catalog: %w", err)
	}

	// 2. 工具与护栏流水线
	rasterizer := raster.NewFitzRasterizer()
	pipeline := guardrail.NewPipeline(
		cat,
		inventory.NewChecker(cat),
		resolution.NewChecker(cat.FileRequirements(), cfg.Preflight, rasterizer),
		pricing.NewCalculator(table),
		log,
	)

	// 3. 基础设施
	store, err := storage.NewStorage(cfg.Storage.UploadDir, cfg.MaxUploadBytes(), rasterizer, cfg.Preflight)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	var notifier svorder.Notifier = mdnotify.NewLogNotifier(log)
	if cfg.Notify.Enabled {
		mq := lmstfy.NewClient(cfg.Lmstfy.Host, cfg.Lmstfy.Port, cfg.Lmstfy.Namespace, cfg.Lmstfy.Token, lmstfy.Options{
			TTL:   cfg.Notify.TTL,
			Tries: cfg.Notify.Tries,
		})
		notifier = mdnotify.NewNotifyModule(mq, cfg.Notify.Queue, log)
	}

	// 4. Service
	orderService := svorder.NewOrderService(pipeline, notifier, idgen.NewSnowflakeIDGenerator(cfg.App.MachineID), log)
	if cfg.Redis.Enabled {
		pubsub, err := redis.NewPubSub(context.Background(), cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		orderService.WithDeliveryWatcher(pubsub)
		syncLog := cleanup
		cleanup = func() {
			_ = pubsub.Close()
			syncLog()
		}
	}

	// 5. Handler 与路由
	engine := routers.SetupRoutes(
		order.NewOrderHandler(orderService, store, log),
		upload.NewUploadHandler(store, log),
		catalog.NewCatalogHandler(cat, table),
		log,
		cfg.MaxUploadBytes(),
	)

	return &App{Engine: engine, Logger: log}, cleanup, nil
}

func shutdownTimeout(cfg *config.Config) time.Duration {
	if cfg.Server.ShutdownTimeout <= 0 {
		return 10 * time.Second
	}
	return cfg.Server.ShutdownTimeout
}
