// Package router 组装gin引擎：全局中间件、公开路由、登录门后的目录路由
package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/xiebiao/bookhub/docs" // 注册swagger文档
	"github.com/xiebiao/bookhub/internal/infrastructure/config"
	"github.com/xiebiao/bookhub/internal/interface/http/handler"
	"github.com/xiebiao/bookhub/internal/interface/http/middleware"
	"github.com/xiebiao/bookhub/pkg/metrics"
	"github.com/xiebiao/bookhub/pkg/response"
)

// Handlers 路由需要的全部处理器
type Handlers struct {
	Book      *handler.BookHandler
	Author    *handler.AuthorHandler
	Publisher *handler.PublisherHandler
	Session   *handler.SessionHandler
}

// New 创建并配置gin引擎
// 中间件顺序：Recovery → Tracing → Logger → Metrics → 路由 → 登录门(仅目录路由) → Handler
func New(
	cfg *config.Config,
	logger *zap.Logger,
	m *metrics.Metrics,
	auth middleware.Authenticator,
	h Handlers,
) *gin.Engine {
	switch cfg.Server.Mode {
	case gin.ReleaseMode, gin.TestMode:
		gin.SetMode(cfg.Server.Mode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Tracing())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Metrics(m))

	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	if cfg.Metrics.Enabled && m != nil {
		r.GET(cfg.Metrics.Path, gin.WrapH(m.Handler()))
	}

	// 访问 http://localhost:8080/swagger/index.html 查看API文档
	if cfg.Server.Swagger {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	v1 := r.Group("/api/v1")
	{
		// 公开接口
		v1.GET("/home", h.Book.Home)
		v1.POST("/login", h.Session.Login)
		v1.POST("/logout", h.Session.Logout)

		// 登录门之后的目录接口
		gated := v1.Group("")
		gated.Use(middleware.RequireLogin(auth))
		{
			gated.GET("/books", h.Book.List)
			gated.GET("/books/:id", h.Book.Get)

			gated.GET("/authors", h.Author.List)
			gated.GET("/authors/:id", h.Author.Get)

			gated.GET("/publishers", h.Publisher.List)
			gated.GET("/publishers/:id", h.Publisher.Get)
		}
	}

	return r
}
