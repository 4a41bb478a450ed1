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

// EntryHandler 历史条目 API 路由处理器
// 使用 App Container 注入依赖，支持统一错误处理
type EntryHandler struct {
	*Handler
}

// NewEntryHandler 创建 EntryHandler 实例
func NewEntryHandler(a *app.App) *EntryHandler {
	return &EntryHandler{
		Handler: NewHandler(a),
	}
}

// Capture 手工写入一条历史
// @Summary 写入历史条目
// @Description 写入一条剪贴板历史，与最近一条内容一致时跳过写入
// @Tags 历史
// @Accept json
// @Produce json
// @Param params body dto.EntryCaptureRequest true "条目内容"
// @Success 200 {object} pkgapp.Res{data=service.EntryDTO} "成功"
// @Router /api/entry [post]
func (h *EntryHandler) Capture(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.EntryCaptureRequest{}

	// 参数绑定和验证
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("EntryHandler.Capture.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()))
		return
	}

	source := domain.EntrySource(params.Source)
	if source != domain.EntrySourceClipboard {
		source = domain.EntrySourceAPI
	}

	ctx := c.Request.Context()

	entry, created, err := h.App.HistoryService.Capture(ctx, params.Content, source)
	if err != nil {
		h.logError(ctx, "EntryHandler.Capture", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	if !created {
		response.ToResponse(code.SuccessDuplicateSkipped.WithData(entry))
		return
	}

	response.ToResponse(code.Success.WithData(entry))
}

// Latest 获取最近一条历史
// @Summary 获取最近的历史条目
// @Tags 历史
// @Produce json
// @Success 200 {object} pkgapp.Res{data=service.EntryDTO} "成功"
// @Router /api/entry/latest [get]
func (h *EntryHandler) Latest(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	ctx := c.Request.Context()

	entry, err := h.App.HistoryService.Latest(ctx)
	if err != nil {
		h.logError(ctx, "EntryHandler.Latest", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(entry))
}

// List 获取历史列表
// @Summary 获取历史列表
// @Description 分页获取历史条目，query 非空时执行大小写不敏感的子串搜索
// @Tags 历史
// @Produce json
// @Param params query dto.EntryListRequest true "查询参数"
// @Success 200 {object} pkgapp.Res{data=[]service.EntryDTO} "成功"
// @Router /api/entries [get]
func (h *EntryHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.EntryListRequest{}

	// 参数绑定和验证
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("EntryHandler.List.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()))
		return
	}

	ctx := c.Request.Context()

	pager := &pkgapp.Pager{
		Page: pkgapp.GetPage(c),
		PageSize: pkgapp.GetPageSizeWithConfig(c, pkgapp.PaginationConfig{
			DefaultPageSize: h.App.Config().App.DefaultPageSize,
			MaxPageSize:     h.App.Config().App.MaxPageSize,
		}),
	}

	entries, count, err := h.App.HistoryService.List(ctx, params, pager)
	if err != nil {
		h.logError(ctx, "EntryHandler.List", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponseList(code.Success, entries, count)
}

// ToggleFavorite 翻转收藏标记
// @Summary 翻转收藏标记
// @Description 收藏条目不参与容量淘汰，条目不存在时静默返回
// @Tags 历史
// @Accept json
// @Produce json
// @Param params body dto.EntryFavoriteRequest true "条目 ID"
// @Success 200 {object} pkgapp.Res{data=service.EntryDTO} "成功"
// @Router /api/entry/favorite [post]
func (h *EntryHandler) ToggleFavorite(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.EntryFavoriteRequest{}

	// 参数绑定和验证
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("EntryHandler.ToggleFavorite.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()))
		return
	}

	ctx := c.Request.Context()

	entry, found, err := h.App.HistoryService.ToggleFavorite(ctx, params.ID)
	if err != nil {
		h.logError(ctx, "EntryHandler.ToggleFavorite", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	// 条目不存在按无操作处理
	if !found {
		response.ToResponse(code.Success)
		return
	}

	response.ToResponse(code.Success.WithData(entry))
}

// Delete 删除单条历史
// @Summary 删除历史条目
// @Description 物理删除一条历史，条目不存在时静默返回
// @Tags 历史
// @Accept json
// @Produce json
// @Param params body dto.EntryDeleteRequest true "条目 ID"
// @Success 200 {object} pkgapp.Res "成功"
// @Router /api/entry [delete]
func (h *EntryHandler) Delete(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.EntryDeleteRequest{}

	// 参数绑定和验证
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("EntryHandler.Delete.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()))
		return
	}

	ctx := c.Request.Context()

	if err := h.App.HistoryService.Delete(ctx, params.ID); err != nil {
		h.logError(ctx, "EntryHandler.Delete", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success)
}

// Clear 清空历史
// @Summary 清空历史
// @Description 清空历史，keepFavorites 为 true 时保留收藏条目
// @Tags 历史
// @Accept json
// @Produce json
// @Param params body dto.EntriesClearRequest true "清空参数"
// @Success 200 {object} pkgapp.Res "成功"
// @Router /api/entries [delete]
func (h *EntryHandler) Clear(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.EntriesClearRequest{}

	// 参数绑定和验证
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("EntryHandler.Clear.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()))
		return
	}

	ctx := c.Request.Context()

	removed, err := h.App.HistoryService.Clear(ctx, params.KeepFavorites)
	if err != nil {
		h.logError(ctx, "EntryHandler.Clear", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(gin.H{"removed": removed}))
}

// Stats 获取历史统计
// @Summary 获取历史统计
// @Tags 历史
// @Produce json
// @Success 200 {object} pkgapp.Res{data=service.StatsDTO} "成功"
// @Router /api/entries/stats [get]
func (h *EntryHandler) Stats(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	ctx := c.Request.Context()

	stats, err := h.App.HistoryService.Stats(ctx)
	if err != nil {
		h.logError(ctx, "EntryHandler.Stats", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(stats))
}
