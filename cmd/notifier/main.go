package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"printshop/internal/notifier/business"
	"printshop/internal/notifier/config"
	"printshop/internal/notifier/domains"
	"printshop/internal/notifier/framework"
	"printshop/internal/notifier/worker"
	"printshop/pkg/infra/redis"
	"printshop/pkg/lmstfy"
	"printshop/pkg/logger"
)

var configPath = flag.String("config", "./config/notifier.yaml", "配置文件路径")

func main() {
	flag.Parse()

	// 1. 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Config validation failed: %v", err)
	}

	// 2. 初始化 Logger
	zapLogger, err := logger.NewZapLogger(cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zapLogger.Sync()

	ctx := context.Background()

	// 3. 投递结果事件（可选）
	var events business.EventPublisher
	if cfg.Redis.Enabled {
		pubsub, err := redis.NewPubSub(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatalf("Failed to connect redis: %v", err)
		}
		defer pubsub.Close()
		events = pubsub
	}

	// 4. 邮件发送
	var mailer business.Mailer = business.NewLogMailer(zapLogger)
	if cfg.Mail.Driver == "smtp" {
		mailer = business.NewSMTPMailer(business.SMTPConfig{
			Host:     cfg.Mail.Host,
			Port:     cfg.Mail.Port,
			Username: cfg.Mail.Username,
			Password: cfg.Mail.Password,
			From:     cfg.Mail.From,
		})
	}
	svc := business.NewNotificationService(mailer, events, cfg.Mail.ShopName, zapLogger)

	// 5. 创建 Manager
	mq := lmstfy.NewClient(cfg.Lmstfy.Host, cfg.Lmstfy.Port, cfg.Lmstfy.Namespace, cfg.Lmstfy.Token, lmstfy.Options{})
	mgr := worker.NewManagerInstance(
		cfg.Workers,
		framework.NewLmstfySource(mq),
		domains.GetProcess(zapLogger, svc),
		zapLogger,
	)

	go func() {
		if err := mgr.Start(); err != nil {
			zapLogger.Errorf(ctx, "Manager start failed: %v", err)
		}
	}()
	zapLogger.Infof(ctx, "Notifier %s started, workers: %d", cfg.App.Name, len(cfg.Workers))

	// 6. 等待退出信号
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	zapLogger.Infof(ctx, "Received signal %v, shutting down", sig)

	// 7. 优雅关闭
	mgr.Shutdown()
	zapLogger.Infof(ctx, "Notifier exited gracefully")
}
