// Package routers 组装 HTTP 与 WebSocket 路由
package routers

import (
	"time"

	"github.com/haierkeys/clipboard-history-service/internal/app"
	"github.com/haierkeys/clipboard-history-service/internal/middleware"
	"github.com/haierkeys/clipboard-history-service/internal/routers/api_router"
	"github.com/haierkeys/clipboard-history-service/internal/routers/websocket_router"
	"github.com/haierkeys/clipboard-history-service/pkg/limiter"

	pkgapp "github.com/haierkeys/clipboard-history-service/pkg/app"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
)

var methodLimiters = limiter.NewMethodLimiter().AddBuckets(
	limiter.LimiterBucketRule{
		Key:          "/api/entry",
		FillInterval: time.Second,
		Capacity:     50,
		Quantum:      50,
	},
)

// NewRouter 创建 API 路由
// wss 为事件推送服务，由调用方创建并同时注入服务层
func NewRouter(appContainer *app.App, wss *pkgapp.WebsocketServer, uni *ut.UniversalTranslator) *gin.Engine {

	cfg := appContainer.Config()

	// 注册 WebSocket 动作处理器
	historyWSHandler := websocket_router.NewHistoryWSHandler(appContainer)
	wss.Use("HistoryLatest", historyWSHandler.HistoryLatest)
	wss.Use("HistoryList", historyWSHandler.HistoryList)
	wss.Use("HistoryStats", historyWSHandler.HistoryStats)

	r := gin.New()

	api := r.Group("/api")
	{
		api.Use(middleware.AppInfo(app.Name, appContainer.Version().Version))
		api.Use(middleware.TraceMiddleware())
		api.Use(middleware.RateLimiter(methodLimiters))
		api.Use(middleware.ContextTimeout(time.Duration(cfg.App.DefaultContextTimeout) * time.Second))
		api.Use(middleware.Cors())
		api.Use(middleware.LangWithTranslator(uni))
		api.Use(middleware.AccessLogWithLogger(appContainer.Logger()))
		api.Use(middleware.RecoveryWithLogger(appContainer.Logger()))

		// 创建 Handlers（注入 App Container）
		entryHandler := api_router.NewEntryHandler(appContainer)
		clipboardHandler := api_router.NewClipboardHandler(appContainer)
		exportHandler := api_router.NewExportHandler(appContainer)
		systemHandler := api_router.NewSystemHandler(appContainer)
		versionHandler := api_router.NewVersionHandler(appContainer)
		healthHandler := api_router.NewHealthHandler(appContainer)

		api.POST("/entry", entryHandler.Capture)
		api.GET("/entry/latest", entryHandler.Latest)
		api.POST("/entry/favorite", entryHandler.ToggleFavorite)
		api.DELETE("/entry", entryHandler.Delete)

		api.GET("/entries", entryHandler.List)
		api.DELETE("/entries", entryHandler.Clear)
		api.GET("/entries/stats", entryHandler.Stats)
		api.POST("/entries/export", exportHandler.Export)

		api.GET("/clipboard", clipboardHandler.Get)
		api.POST("/clipboard", clipboardHandler.Set)

		api.GET("/status", systemHandler.Status)
		api.GET("/version", versionHandler.ServerVersion)
		api.GET("/health", healthHandler.Check)

		// 事件推送，GUI / 托盘经此订阅历史变更
		api.GET("/events", wss.Run())
	}

	r.Use(middleware.Cors())
	r.NoRoute(middleware.NoFound())

	return r
}
