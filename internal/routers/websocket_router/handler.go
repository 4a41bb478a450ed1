// Package websocket_router 提供 WebSocket 路由处理器
package websocket_router

import (
	"github.com/haierkeys/clipboard-history-service/internal/app"
	pkgapp "github.com/haierkeys/clipboard-history-service/pkg/app"
	"github.com/haierkeys/clipboard-history-service/pkg/code"

	"go.uber.org/zap"
)

// WSHandler WebSocket 基础 Handler 结构体，封装 App Container
// 所有 WebSocket Handler 都应该嵌入此结构体以获得依赖注入能力
type WSHandler struct {
	App *app.App
}

// NewWSHandler 创建 WebSocket 基础 Handler 实例
func NewWSHandler(a *app.App) *WSHandler {
	return &WSHandler{App: a}
}

// logError 记录错误日志，包含会话 ID
func (h *WSHandler) logError(c *pkgapp.WebsocketClient, method string, err error) {
	sessionID := ""
	if c != nil {
		sessionID = c.ID
	}

	h.App.Logger().Error(method,
		zap.Error(err),
		zap.String("sessionId", sessionID),
	)
}

// respondError 统一错误响应方法
// 记录错误日志并发送错误响应给客户端
func (h *WSHandler) respondError(c *pkgapp.WebsocketClient, err error, method string, action string) {
	h.logError(c, method, err)

	if codeErr, ok := err.(*code.Code); ok {
		c.ToResponse(codeErr, action)
		return
	}
	c.ToResponse(code.ErrorServerInternal.WithDetails(err.Error()), action)
}
