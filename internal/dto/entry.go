// Package dto Defines data transfer objects (request parameters and response structs)
// Package dto 定义数据传输对象（请求参数和响应结构体）
package dto

// EntryCaptureRequest 手工写入一条历史的请求参数
// 内容为空或纯空白会被业务层拒绝
type EntryCaptureRequest struct {
	Content string `json:"content" form:"content"`
	Source  string `json:"source" form:"source"`
}

// EntryListRequest 列表与搜索的请求参数
// Query 为空表示返回全部
type EntryListRequest struct {
	Query string `json:"query" form:"query"`
}

// EntryFavoriteRequest 收藏切换的请求参数
type EntryFavoriteRequest struct {
	ID int64 `json:"id" form:"id" binding:"required"`
}

// EntryDeleteRequest 删除单条历史的请求参数
type EntryDeleteRequest struct {
	ID int64 `json:"id" form:"id" binding:"required"`
}

// EntriesClearRequest 清空历史的请求参数
type EntriesClearRequest struct {
	KeepFavorites bool `json:"keepFavorites" form:"keepFavorites"`
}

// ClipboardSetRequest 写入系统剪贴板的请求参数
type ClipboardSetRequest struct {
	Content string `json:"content" form:"content" binding:"required"`
}
