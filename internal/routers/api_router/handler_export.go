package api_router

import (
	"context"

	"github.com/haierkeys/clipboard-history-service/internal/app"
	pkgapp "github.com/haierkeys/clipboard-history-service/pkg/app"
	"github.com/haierkeys/clipboard-history-service/pkg/code"
	apperrors "github.com/haierkeys/clipboard-history-service/pkg/errors"

	"github.com/gin-gonic/gin"
)

// ExportHandler 历史导出 API 路由处理器
type ExportHandler struct {
	*Handler
}

// NewExportHandler 创建 ExportHandler 实例
func NewExportHandler(a *app.App) *ExportHandler {
	return &ExportHandler{
		Handler: NewHandler(a),
	}
}

// Export 立即导出全部历史
// @Summary 导出历史
// @Description 把全部历史导出为本地 JSON 文件，返回导出文件路径
// @Tags 历史
// @Produce json
// @Success 200 {object} pkgapp.Res "成功"
// @Router /api/entries/export [post]
func (h *ExportHandler) Export(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	ctx := c.Request.Context()

	// 经 Worker Pool 执行，限制并发导出数量
	var path string
	err := h.App.SubmitTask(ctx, func(taskCtx context.Context) error {
		var err error
		path, err = h.App.ExportService.ExportNow(taskCtx)
		return err
	})
	if err != nil {
		h.logError(ctx, "ExportHandler.Export", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(gin.H{"path": path}))
}
