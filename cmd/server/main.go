package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	_ "shorturl-service/docs"
	"shorturl-service/internal/cache"
	"shorturl-service/internal/config"
	"shorturl-service/internal/expiry"
	"shorturl-service/internal/handler"
	"shorturl-service/internal/middleware"
	"shorturl-service/internal/repository"
	"shorturl-service/internal/service"
	"shorturl-service/internal/shortcode"
	"shorturl-service/internal/sweeper"
	"shorturl-service/pkg/database"
	"shorturl-service/pkg/logger"
	"shorturl-service/pkg/redis"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// @title 短链接服务 API
// @version 1.0
// @description 短链接创建、跳转、点击统计与过期管理
// @host localhost:8080
// @BasePath /
func main() {
	configPath := "configs/config.yaml"
	if p := os.Getenv("SHORTURL_CONFIG"); p != "" {
		configPath = p
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "配置加载失败:", err)
		os.Exit(1)
	}

	zl := logger.New(logger.Options{
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
		Compress:   cfg.Log.Compress,
	})
	defer func() {
		if err := zl.Sync(); err != nil {
			fmt.Println("日志同步失败:", err)
		}
	}()
	sugaredLogger := zl.Sugar()

	if err := run(cfg, zl); err != nil {
		sugaredLogger.Errorf("服务异常退出: %v", err)
		_ = zl.Sync()
		os.Exit(1)
	}
	sugaredLogger.Info("👋 服务已停止")
}

func run(cfg *config.Config, zl *zap.Logger) error {
	sugaredLogger := zl.Sugar()

	repo, closeRepo, err := openRepository(cfg.Database)
	if err != nil {
		return fmt.Errorf("数据库初始化失败: %w", err)
	}
	defer closeRepo()
	sugaredLogger.Infof("✅ 数据库连接成功 (driver=%s)", cfg.Database.Driver)

	linkCache, closeCache := openCache(cfg.Cache, sugaredLogger)
	defer closeCache()

	clock := expiry.RealClock{}
	generator := shortcode.NewGenerator(repo, sugaredLogger,
		shortcode.WithMaxAttempts(cfg.ShortCode.MaxAttempts),
	)
	svc := service.New(repo, generator, expiry.NewPolicy(cfg.Expiry.DefaultValidity()), clock, sugaredLogger,
		service.WithCache(linkCache),
	)

	if cfg.App.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.GinZapRecovery(zl, true))
	router.Use(middleware.GinZapLogger(zl))
	router.Use(middleware.CORS(cfg.CORS.AllowOrigins))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	handler.NewShortURLHandler(svc, sugaredLogger).Register(router)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		sugaredLogger.Infof("🚀 服务启动成功, 访问 http://localhost:%d", cfg.Server.Port)
		sugaredLogger.Infof("📚 Swagger 文档地址: http://localhost:%d/swagger/index.html", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("服务启动失败: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		sugaredLogger.Info("收到退出信号，正在关闭服务...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("服务关闭失败: %w", err)
		}
		return nil
	})

	if cfg.Expiry.SweepEnabled {
		sw := sweeper.New(svc, sweeper.Options{
			Interval:         time.Duration(cfg.Expiry.SweepInterval) * time.Second,
			Grace:            time.Duration(cfg.Expiry.SweepGrace) * time.Second,
			BatchSize:        cfg.Expiry.SweepBatchSize,
			BatchesPerSecond: cfg.Expiry.SweepBatchesPerS,
		}, sugaredLogger)
		g.Go(func() error {
			return sw.Run(gCtx)
		})
		sugaredLogger.Info("✅ 过期清理任务已启动")
	}

	return g.Wait()
}

// openRepository 根据配置选择存储实现
func openRepository(cfg config.DB) (repository.Repository, func(), error) {
	if cfg.Driver == "memory" {
		return repository.NewMemoryRepository(), func() {}, nil
	}

	opts := database.Options{
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.ConnMaxLifetime) * time.Second,
	}

	var (
		db  *gorm.DB
		err error
	)
	switch cfg.Driver {
	case "mysql":
		db, err = database.InitMySQL(cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, opts)
	case "postgres":
		db, err = database.InitPostgres(cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode, opts)
	case "sqlite":
		if err = os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err == nil {
			db, err = database.InitSQLite(cfg.Path)
		}
	default:
		err = fmt.Errorf("不支持的数据库驱动: %q", cfg.Driver)
	}
	if err != nil {
		return nil, nil, err
	}

	repo := repository.NewGormRepository(db)
	if err := repo.AutoMigrate(); err != nil {
		_ = database.Close(db)
		return nil, nil, fmt.Errorf("数据库迁移失败: %w", err)
	}
	return repo, func() { _ = database.Close(db) }, nil
}

// openCache Redis 可用时使用 Redis，否则退回进程内缓存
func openCache(cfg config.Cache, log *zap.SugaredLogger) (cache.LinkCache, func()) {
	rdb, err := redis.NewRedisClient(&redis.Options{
		Host:     cfg.Host,
		Port:     cfg.Port,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
	if err != nil {
		log.Warnf("缓存连接失败，使用进程内缓存: %v", err)
	}
	if rdb == nil {
		log.Info("✅ 使用进程内缓存")
		return cache.NewLocalCache(cfg.TTL(), 10*time.Minute), func() {}
	}

	log.Info("✅ 缓存连接成功")
	return cache.NewRedisCache(rdb, cfg.TTL(), log), func() {
		if err := rdb.Close(); err != nil {
			log.Errorf("关闭 Redis 连接失败: %v", err)
		}
	}
}
