package websocket_router

import (
	"github.com/haierkeys/clipboard-history-service/internal/app"
	"github.com/haierkeys/clipboard-history-service/internal/dto"
	pkgapp "github.com/haierkeys/clipboard-history-service/pkg/app"
	"github.com/haierkeys/clipboard-history-service/pkg/code"

	"go.uber.org/zap"
)

// HistoryWSHandler 历史查询 WebSocket 处理器
// 历史变更事件由服务层主动广播，这里提供客户端按需拉取的动作
type HistoryWSHandler struct {
	*WSHandler
}

// NewHistoryWSHandler 创建 HistoryWSHandler 实例
func NewHistoryWSHandler(a *app.App) *HistoryWSHandler {
	return &HistoryWSHandler{
		WSHandler: NewWSHandler(a),
	}
}

// HistoryLatest 获取最近一条历史
func (h *HistoryWSHandler) HistoryLatest(c *pkgapp.WebsocketClient, msg *pkgapp.WebSocketMessage) {
	entry, err := h.App.HistoryService.Latest(c.Ctx.Request.Context())
	if err != nil {
		h.respondError(c, err, "HistoryWSHandler.HistoryLatest", "HistoryLatest")
		return
	}

	c.ToResponse(code.Success.WithData(entry), "HistoryLatest")
}

// HistoryList 获取历史列表，query 非空时执行搜索
func (h *HistoryWSHandler) HistoryList(c *pkgapp.WebsocketClient, msg *pkgapp.WebSocketMessage) {
	params := &dto.EntryListRequest{}

	if len(msg.Data) > 0 {
		if valid, errs := c.BindAndValid(msg.Data, params, nil); !valid {
			h.App.Logger().Error("HistoryWSHandler.HistoryList.BindAndValid err", zap.Error(errs))
			c.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()), "HistoryList")
			return
		}
	}

	pager := &pkgapp.Pager{
		Page:     pkgapp.GetPage(c.Ctx),
		PageSize: pkgapp.GetPageSize(c.Ctx),
	}

	entries, count, err := h.App.HistoryService.List(c.Ctx.Request.Context(), params, pager)
	if err != nil {
		h.respondError(c, err, "HistoryWSHandler.HistoryList", "HistoryList")
		return
	}

	c.ToResponse(code.Success.WithData(pkgapp.ListRes{
		List: entries,
		Pager: pkgapp.Pager{
			Page:      pager.Page,
			PageSize:  pager.PageSize,
			TotalRows: count,
		},
	}), "HistoryList")
}

// HistoryStats 获取历史统计
func (h *HistoryWSHandler) HistoryStats(c *pkgapp.WebsocketClient, msg *pkgapp.WebSocketMessage) {
	stats, err := h.App.HistoryService.Stats(c.Ctx.Request.Context())
	if err != nil {
		h.respondError(c, err, "HistoryWSHandler.HistoryStats", "HistoryStats")
		return
	}

	c.ToResponse(code.Success.WithData(stats), "HistoryStats")
}
