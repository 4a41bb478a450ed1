// Package domain 定义领域模型和接口
package domain

import (
	"strings"
	"time"
)

// EntrySource 定义条目来源类型
type EntrySource string

const (
	// EntrySourceClipboard 来自系统剪贴板监听
	EntrySourceClipboard EntrySource = "clipboard"
	// EntrySourceAPI 来自本地 API 手工写入
	EntrySourceAPI EntrySource = "api"
)

// Entry 剪贴板历史条目领域模型
type Entry struct {
	ID          int64
	Content     string
	ContentHash string
	Favorite    bool
	Source      EntrySource
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Stats 历史统计结果
type Stats struct {
	Total        int64
	Favorites    int64
	NonFavorites int64
	OldestID     int64
	NewestID     int64
}

// IsBlank 判断内容去除空白后是否为空
func (e *Entry) IsBlank() bool {
	return strings.TrimSpace(e.Content) == ""
}

// SameContent 判断两个条目内容是否完全一致
func (e *Entry) SameContent(other *Entry) bool {
	if other == nil {
		return false
	}
	return e.Content == other.Content
}
