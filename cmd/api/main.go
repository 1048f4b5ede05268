package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"item-feedback-api/internal/core/auth"
	"item-feedback-api/internal/core/config"
	"item-feedback-api/internal/core/database"
	"item-feedback-api/internal/core/logger"
	"item-feedback-api/internal/core/server"
	"item-feedback-api/internal/feature/comment"
	"item-feedback-api/internal/feature/rating"
	"item-feedback-api/internal/feature/user"
	"item-feedback-api/internal/repo"
	"item-feedback-api/internal/service"
	"item-feedback-api/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	log, cleanup := newLogger(cfg)
	defer cleanup()
	defer logger.RedirectStdLog(log, zapcore.InfoLevel)()
	gin.DefaultWriter = logger.ToWriter(log, zapcore.DebugLevel)
	gin.DefaultErrorWriter = logger.ToWriter(log, zapcore.ErrorLevel)

	// 存储（失败会直接 Fatal）
	store := mustOpenStore(cfg, log)
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))

	if cfg.DB.AutoMigrate {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err := store.Migrate(ctx)
		cancel()
		if err != nil {
			log.Fatal("automigrate failed", zap.Error(err))
		}
		log.Info("automigrate done")
	}

	// JWT
	jwter := &auth.JWTer{
		Secret: []byte(cfg.JWT.Secret),
		Issuer: cfg.JWT.Issuer,
		TTL:    time.Duration(cfg.JWT.AccessTokenTTLMin) * time.Minute,
		Leeway: time.Duration(cfg.JWT.LeewaySec) * time.Second,
	}

	authSvc := service.NewAuthService(store.Users, jwter, log.Named("auth"))
	userSvc := service.NewUserService(store.Users, log.Named("user"))
	ratingSvc := service.NewRatingService(store.Users, store.Ratings, log.Named("rating"))
	commentSvc := service.NewCommentService(store.Users, store.Comments, log.Named("comment"))

	h := cfg.App.HTTP
	r := router.NewAPIEngine(log, router.Options{
		Mode:           server.ModeFor(cfg.App.Env),
		Prefix:         h.Prefix,
		RequestTimeout: time.Duration(h.RequestTimeoutSec) * time.Second,
		MaxConcurrency: h.MaxConcurrency,
		MaxBodyBytes:   h.MaxBodyBytes,
	}, jwter,
		user.New(authSvc, userSvc, log),
		rating.New(ratingSvc, log),
		comment.New(commentSvc, log),
	)

	// HTTP Server
	errLog, _ := logger.ToStdLogger(log.Named("http"), zapcore.WarnLevel)
	addr := server.Addr(h.Host, h.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(h.ReadTimeoutSec)*time.Second,
		time.Duration(h.WriteTimeoutSec)*time.Second,
		time.Duration(h.IdleTimeoutSec)*time.Second,
		errLog,
	)

	// 启动日志
	host4human := h.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(h.Port)
	log.Info("item feedback api starting",
		zap.String("env", cfg.App.Env),
		zap.String("open", baseURL),
		zap.String("health", baseURL+"/health"),
		zap.String("api", baseURL+h.Prefix),
	)

	// 异步启动
	go func() {
		if err := server.StartHTTP(srv, log); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("item feedback api start FAILED", zap.Error(err))
		}
	}()

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warn("http shutdown", zap.Error(err))
	}
	if err := store.Close(ctx); err != nil {
		log.Warn("store close", zap.Error(err))
	}
	log.Info("item feedback api stopped gracefully")
}

func newLogger(cfg *config.Config) (*zap.Logger, func()) {
	f := cfg.Log.File
	if !f.Enable {
		return logger.New(cfg.Log.Level, cfg.Log.JSON)
	}
	return logger.NewWithRotate(cfg.Log.Level, cfg.Log.JSON, logger.FileRotate{
		Filename:   f.Filename,
		MaxSizeMB:  f.MaxSizeMB,
		MaxBackups: f.MaxBackups,
		MaxAgeDays: f.MaxAgeDays,
		Compress:   f.Compress,
	})
}

// mustOpenStore 按 db.driver 选择 gorm 或 mongo
func mustOpenStore(cfg *config.Config, l *zap.Logger) *repo.Store {
	timeout := time.Duration(cfg.DB.ConnectTimeoutMS) * time.Millisecond
	if cfg.DB.Driver == "mongo" {
		client, db, err := database.NewMongo(context.Background(), database.MongoOpts{
			URI:            cfg.DB.DSN,
			Database:       cfg.DB.Database,
			Username:       cfg.DB.Username,
			Password:       cfg.DB.Password,
			MaxPoolSize:    uint64(max(cfg.DB.MaxOpenConns, 0)),
			ConnectTimeout: timeout,
		})
		if err != nil {
			l.Fatal("mongo open", zap.Error(err))
		}
		return repo.NewMongoStore(client, db)
	}

	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		ConnectTimeout:     timeout,
		LogLevel:           cfg.DB.LogLevel,
		Log:                l.Named("db"),
	})
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	return repo.NewGormStore(db)
}
