// Package domain 定义领域模型和接口
package domain

import "context"

// EntryRepository 历史条目仓储接口
type EntryRepository interface {
	// Create 创建条目
	Create(ctx context.Context, entry *Entry) (*Entry, error)

	// GetByID 根据ID获取条目
	GetByID(ctx context.Context, id int64) (*Entry, error)

	// GetLatest 获取最近一次写入的条目
	GetLatest(ctx context.Context) (*Entry, error)

	// List 按写入先后倒序分页获取条目列表
	List(ctx context.Context, page, pageSize int) ([]*Entry, error)

	// ListCount 获取条目总数
	ListCount(ctx context.Context) (int64, error)

	// Search 大小写不敏感的子串搜索，keyword 为空等价于 List
	Search(ctx context.Context, keyword string, page, pageSize int) ([]*Entry, error)

	// SearchCount 获取搜索命中总数
	SearchCount(ctx context.Context, keyword string) (int64, error)

	// ToggleFavorite 翻转收藏标记，条目不存在时返回 nil
	ToggleFavorite(ctx context.Context, id int64) (*Entry, error)

	// Delete 物理删除条目，条目不存在时不报错
	Delete(ctx context.Context, id int64) error

	// DeleteAll 清空历史，keepFavorites 为 true 时保留收藏条目
	DeleteAll(ctx context.Context, keepFavorites bool) (int64, error)

	// EvictOverCap 总数超过 maxEntries 时删除超出数量的最旧非收藏条目
	// 返回被删除的条目数
	EvictOverCap(ctx context.Context, maxEntries int) (int64, error)

	// Stats 获取历史统计
	Stats(ctx context.Context) (*Stats, error)
}
