package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/haierkeys/clipboard-history-service/internal/domain"
	"github.com/haierkeys/clipboard-history-service/internal/service"
	"github.com/haierkeys/clipboard-history-service/pkg/logger"

	"go.uber.org/zap"
)

// DefaultPollInterval 默认轮询间隔
const DefaultPollInterval = 500 * time.Millisecond

// Monitor 轮询系统剪贴板并把新内容写入历史
// 写入失败只记录日志，轮询循环不会因此退出
type Monitor struct {
	clip     Clipboard
	history  service.HistoryService
	interval time.Duration
	logger   *zap.Logger

	mu       sync.Mutex
	lastSeen string
}

// New 创建剪贴板监听器
func New(clip Clipboard, history service.HistoryService, interval time.Duration, lg *zap.Logger) *Monitor {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if lg == nil {
		lg = zap.NewNop()
	}
	return &Monitor{
		clip:     clip,
		history:  history,
		interval: interval,
		logger:   lg,
	}
}

// Run 启动轮询循环，阻塞直到 ctx 取消
func (m *Monitor) Run(ctx context.Context) {
	m.logger.Info("clipboard monitor started",
		zap.String("backend", m.clip.Name()),
		zap.Duration("interval", m.interval))

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.logger.Info("clipboard monitor stopped")
			return
		case <-ticker.C:
			m.pollOnce(ctx)
		}
	}
}

// pollOnce 读取剪贴板一次，内容有变化时写入历史
func (m *Monitor) pollOnce(ctx context.Context) {
	content, err := m.clip.ReadText()
	if err != nil {
		m.logger.Warn("clipboard read failed", zap.Error(err))
		return
	}

	m.mu.Lock()
	changed := content != m.lastSeen
	if changed {
		m.lastSeen = content
	}
	m.mu.Unlock()

	if !changed || content == "" {
		return
	}

	_, created, err := m.history.Capture(ctx, content, domain.EntrySourceClipboard)
	if err != nil {
		// 存储失败不终止监听，下次变化继续尝试
		m.logger.Error("clipboard capture failed",
			zap.String(logger.FieldSource, string(domain.EntrySourceClipboard)),
			zap.Int(logger.FieldSize, len(content)),
			zap.Error(err))
		return
	}
	if created {
		m.logger.Debug("clipboard change captured", zap.Int(logger.FieldSize, len(content)))
	}
}

// SetClipboard 写入系统剪贴板并同步最近观察值
// 同步后本次写入不会被轮询再次捕获
func (m *Monitor) SetClipboard(content string) error {
	if err := m.clip.WriteText(content); err != nil {
		return err
	}
	m.mu.Lock()
	m.lastSeen = content
	m.mu.Unlock()
	return nil
}

// ReadClipboard 读取系统剪贴板当前内容
func (m *Monitor) ReadClipboard() (string, error) {
	return m.clip.ReadText()
}

// LastSeen 返回最近观察到的剪贴板内容
func (m *Monitor) LastSeen() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastSeen
}

// Backend 返回剪贴板后端名称
func (m *Monitor) Backend() string {
	return m.clip.Name()
}
