// Package service implements the business logic layer
// Package service 实现业务逻辑层
package service

// ServiceConfig service layer configuration
// ServiceConfig 服务层配置
type ServiceConfig struct {
	History HistoryServiceConfig // History related config // 历史相关配置
	Export  ExportServiceConfig  // Export related config // 导出相关配置
}

// HistoryServiceConfig history service configuration
// HistoryServiceConfig 历史服务配置
type HistoryServiceConfig struct {
	MaxEntries     int   // Cap for non-favorite entries // 非收藏条目容量上限
	MaxContentSize int64 // Max content size in bytes, 0 for unlimited // 单条内容最大字节数，0 表示不限制
}

// ExportServiceConfig export service configuration
// ExportServiceConfig 导出服务配置
type ExportServiceConfig struct {
	IsEnable  bool   // Whether scheduled export is enabled // 是否启用定时导出
	Schedule  string // Cron expression // cron 表达式
	SavePath  string // Export save path // 导出保存目录
	KeepFiles int    // How many export files to keep // 保留的导出文件数量
}
