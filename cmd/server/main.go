package main

import (
	"github.com/blues/fundsy/internal/config"
	"github.com/blues/fundsy/internal/database"
	"github.com/blues/fundsy/internal/event"
	"github.com/blues/fundsy/internal/gateway"
	"github.com/blues/fundsy/internal/logger"
	"github.com/blues/fundsy/internal/router"
	"github.com/blues/fundsy/internal/task"
	"github.com/gin-gonic/gin"
)

func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化日志
	setupLogger(cfg.Log)
	defer logger.Sync()

	// 初始化数据库
	db, err := database.Init(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database: %v", err)
	}

	// 初始化支付网关客户端
	gatewayClient, err := gateway.Init(cfg.Gateway)
	if err != nil {
		logger.Fatal("Failed to initialize payment gateway: %v", err)
	}

	// 初始化事件记录器
	recorder, err := event.NewRecorder(db, cfg.Task.Workers)
	if err != nil {
		logger.Fatal("Failed to initialize event recorder: %v", err)
	}
	defer recorder.Close()

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 启动定时任务（兼作目标核算触发器）
	manager := task.Start(db, cfg, recorder)
	defer manager.Stop()

	// 初始化路由
	r := router.Setup(db, gatewayClient, manager, recorder, cfg)

	// 启动服务器
	logger.Info("Server starting on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("Failed to start server: %v", err)
	}
}

// setupLogger 按配置切换默认日志器
func setupLogger(cfg config.LogConfig) {
	level := logger.ParseLogLevel(cfg.Level)

	var l *logger.Logger
	var err error
	if cfg.Output == "file" && cfg.File != "" {
		l, err = logger.NewWithFileRotation(level, cfg.File)
	} else {
		l, err = logger.New(level)
	}
	if err != nil {
		logger.Fatal("Failed to setup logger: %v", err)
	}

	logger.SetDefaultLogger(l)
}
