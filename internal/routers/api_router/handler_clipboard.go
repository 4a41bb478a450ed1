package api_router

import (
	"github.com/haierkeys/clipboard-history-service/internal/app"
	"github.com/haierkeys/clipboard-history-service/internal/domain"
	"github.com/haierkeys/clipboard-history-service/internal/dto"
	pkgapp "github.com/haierkeys/clipboard-history-service/pkg/app"
	"github.com/haierkeys/clipboard-history-service/pkg/code"
	apperrors "github.com/haierkeys/clipboard-history-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ClipboardHandler 系统剪贴板 API 路由处理器
type ClipboardHandler struct {
	*Handler
}

// NewClipboardHandler 创建 ClipboardHandler 实例
func NewClipboardHandler(a *app.App) *ClipboardHandler {
	return &ClipboardHandler{
		Handler: NewHandler(a),
	}
}

// clipboardResponse 剪贴板内容响应
type clipboardResponse struct {
	Content string `json:"content"` // 剪贴板当前内容 // Current clipboard content
	Backend string `json:"backend"` // 剪贴板后端名称 // Clipboard backend name
}

// Get 读取系统剪贴板当前内容
// @Summary 读取系统剪贴板
// @Tags 剪贴板
// @Produce json
// @Success 200 {object} pkgapp.Res{data=clipboardResponse} "成功"
// @Router /api/clipboard [get]
func (h *ClipboardHandler) Get(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	m := h.App.Monitor()
	if m == nil {
		response.ToResponse(code.ErrorClipboardUnavailable)
		return
	}

	content, err := m.ReadClipboard()
	if err != nil {
		h.logError(c.Request.Context(), "ClipboardHandler.Get", err)
		response.ToResponse(code.ErrorClipboardUnavailable.WithDetails(err.Error()))
		return
	}

	response.ToResponse(code.Success.WithData(clipboardResponse{
		Content: content,
		Backend: m.Backend(),
	}))
}

// Set 写入系统剪贴板
// @Summary 写入系统剪贴板
// @Description 写入系统剪贴板并记录到历史，写入的内容不会被轮询重复捕获
// @Tags 剪贴板
// @Accept json
// @Produce json
// @Param params body dto.ClipboardSetRequest true "剪贴板内容"
// @Success 200 {object} pkgapp.Res{data=service.EntryDTO} "成功"
// @Router /api/clipboard [post]
func (h *ClipboardHandler) Set(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.ClipboardSetRequest{}

	// 参数绑定和验证
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("ClipboardHandler.Set.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()))
		return
	}

	m := h.App.Monitor()
	if m == nil {
		response.ToResponse(code.ErrorClipboardUnavailable)
		return
	}

	if err := m.SetClipboard(params.Content); err != nil {
		h.logError(c.Request.Context(), "ClipboardHandler.Set", err)
		response.ToResponse(code.ErrorClipboardUnavailable.WithDetails(err.Error()))
		return
	}

	ctx := c.Request.Context()

	// 写入剪贴板的内容同样进入历史，来源标记为 API
	entry, created, err := h.App.HistoryService.Capture(ctx, params.Content, domain.EntrySourceAPI)
	if err != nil {
		h.logError(ctx, "ClipboardHandler.Set.Capture", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	if !created {
		response.ToResponse(code.SuccessDuplicateSkipped.WithData(entry))
		return
	}

	response.ToResponse(code.Success.WithData(entry))
}
