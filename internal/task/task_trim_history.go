package task

import (
	"context"
	"time"

	"github.com/haierkeys/clipboard-history-service/internal/app"
	"go.uber.org/zap"
)

// init 自动注册历史淘汰任务
func init() {
	RegisterWithApp(NewTrimHistoryTask)
}

// TrimHistoryTask 历史淘汰任务
// 容量控制在每次写入时已执行，这里做兜底检查，
// 处理配置调小或外部修改数据库后的超量情况
type TrimHistoryTask struct {
	app      *app.App
	interval time.Duration
}

// NewTrimHistoryTask 创建历史淘汰任务
func NewTrimHistoryTask(appContainer *app.App) (Task, error) {
	if appContainer.Config().History.MaxEntries <= 0 {
		return nil, nil
	}

	return &TrimHistoryTask{
		app:      appContainer,
		interval: appContainer.Config().GetTrimInterval(),
	}, nil
}

// Name 返回任务名称
func (t *TrimHistoryTask) Name() string {
	return "TrimHistoryTask"
}

// Run 执行淘汰检查
func (t *TrimHistoryTask) Run(ctx context.Context) error {
	removed, err := t.app.HistoryService.Trim(ctx)
	if err != nil {
		return err
	}

	if removed > 0 {
		t.app.Logger().Info("history trimmed", zap.Int64("removed", removed))
	}

	return nil
}

// LoopInterval 返回执行间隔
func (t *TrimHistoryTask) LoopInterval() time.Duration {
	return t.interval
}

// IsStartupRun 启动时立即执行一次
func (t *TrimHistoryTask) IsStartupRun() bool {
	return true
}
