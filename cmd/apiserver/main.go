package main

// @title           Print Shop Order API
// @version         1.0
// @description     印刷订单护栏服务：规格检查、文件预检、报价与输出校验

// @host      localhost:8080
// @BasePath  /api/v1

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"printshop/internal/app/config"
)

func main() {
	configPath := flag.String("config", "config/apiserver.yaml", "config file path")
	flag.Parse()

	// 1. 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Config validation failed: %v", err)
	}
	if cfg.App.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 2. 初始化应用
	app, cleanup, err := InitializeApp(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}
	defer cleanup()

	ctx := context.Background()

	// 3. 启动 HTTP Server（后台 goroutine）
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	server := &http.Server{
		Addr:    addr,
		Handler: app.Engine,
	}
	serverErrChan := make(chan error, 1)
	go func() {
		app.Logger.Infof(ctx, "Starting HTTP server on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrChan <- err
		}
	}()

	// 4. 优雅停机处理
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		app.Logger.Infof(ctx, "Received signal %v, gracefully shutting down...", sig)
	case err := <-serverErrChan:
		app.Logger.Errorf(ctx, "HTTP server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout(cfg))
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		app.Logger.Errorf(ctx, "HTTP server shutdown error: %v", err)
		return
	}
	app.Logger.Infof(ctx, "Application stopped")
}
