package model

import (
	"github.com/haierkeys/clipboard-history-service/pkg/timex"
)

// Entry 剪贴板历史条目表
type Entry struct {
	ID          int64      `gorm:"column:id;primaryKey" json:"id" form:"id"`
	Content     string     `gorm:"column:content;not null" json:"content" form:"content"`
	ContentHash string     `gorm:"column:content_hash;not null;index:idx_content_hash" json:"contentHash" form:"contentHash"`
	Favorite    bool       `gorm:"column:favorite;not null;default:false;index:idx_favorite" json:"favorite" form:"favorite"`
	Source      string     `gorm:"column:source;not null;default:clipboard" json:"source" form:"source"`
	CreatedAt   timex.Time `gorm:"column:created_at;type:datetime;default:NULL;autoCreateTime:false" json:"createdAt" form:"createdAt"`
	UpdatedAt   timex.Time `gorm:"column:updated_at;type:datetime;default:NULL;autoCreateTime:false" json:"updatedAt" form:"updatedAt"`
}

// TableName 表名
func (Entry) TableName() string {
	return "entry"
}
