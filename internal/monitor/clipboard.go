// Package monitor 实现系统剪贴板监听
package monitor

import (
	"sync"

	"go.uber.org/zap"
	"golang.design/x/clipboard"
)

// Clipboard 系统剪贴板的统一访问接口
// 无图形环境时由 headless 空实现兜底
type Clipboard interface {
	// Name 返回剪贴板后端名称
	Name() string

	// ReadText 读取剪贴板文本内容，剪贴板为空时返回空串
	ReadText() (string, error)

	// WriteText 写入剪贴板文本内容
	WriteText(content string) error
}

var (
	initOnce sync.Once
	initErr  error
)

// NewSystemClipboard 创建系统剪贴板访问器
// 初始化失败（无显示环境、容器等）时降级为 headless 空实现
func NewSystemClipboard(lg *zap.Logger) Clipboard {
	initOnce.Do(func() {
		initErr = clipboard.Init()
	})
	if initErr != nil {
		if lg != nil {
			lg.Warn("clipboard unavailable, running headless", zap.Error(initErr))
		}
		return &headlessClipboard{}
	}
	return &systemClipboard{}
}

// systemClipboard 基于 golang.design/x/clipboard 的系统剪贴板
type systemClipboard struct{}

func (c *systemClipboard) Name() string { return "system clipboard" }

func (c *systemClipboard) ReadText() (string, error) {
	return string(clipboard.Read(clipboard.FmtText)), nil
}

func (c *systemClipboard) WriteText(content string) error {
	clipboard.Write(clipboard.FmtText, []byte(content))
	return nil
}

// headlessClipboard 无显示环境下的空实现
// 读取永远为空，写入被静默丢弃
type headlessClipboard struct{}

func (c *headlessClipboard) Name() string { return "headless (no-op)" }

func (c *headlessClipboard) ReadText() (string, error) { return "", nil }

func (c *headlessClipboard) WriteText(_ string) error { return nil }
