package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"item-feedback-api/internal/core/server"
	mdw "item-feedback-api/internal/transport/http/middleware"
)

type Options struct {
	Mode           string
	Prefix         string // 默认 /api
	RequestTimeout time.Duration
	MaxConcurrency int64
	MaxBodyBytes   int64
}

func (o *Options) withDefaults() {
	if o.Prefix == "" {
		o.Prefix = "/api"
	}
	if o.MaxConcurrency <= 0 {
		o.MaxConcurrency = 300
	}
	if o.MaxBodyBytes <= 0 {
		o.MaxBodyBytes = 1 << 20
	}
}

func NewAPIEngine(l *zap.Logger, o Options, tokens mdw.TokenParser, mods ...APIModule) *gin.Engine {
	o.withDefaults()
	r := server.NewRouter(server.Options{Mode: o.Mode})

	// 中间件
	r.Use(
		mdw.RequestID(),
		mdw.Recovery(l),
		mdw.ConcurrencyLimit(o.MaxConcurrency),
		mdw.MaxBodyBytes(o.MaxBodyBytes),
		mdw.Timeout(o.RequestTimeout),
		mdw.Metrics(),
		mdw.AccessLog(l),
	)

	r.GET("/", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	// 健康检查
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", mdw.MetricsHandler())

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not Found"})
	})

	// token 可选解析；必须登录的 action 自己声明 Auth
	api := r.Group(o.Prefix)
	api.Use(mdw.AuthJWT(tokens))
	MountAllAPI(api, mods...)

	return r
}
