package dto

// VersionDTO 服务版本信息响应
type VersionDTO struct {
	Version        string `json:"version"`        // 当前版本号
	GitTag         string `json:"gitTag"`         // Git 标签
	BuildTime      string `json:"buildTime"`      // 构建时间
	VersionIsNew   bool   `json:"versionIsNew"`   // 是否有新版本
	VersionNewName string `json:"versionNewName"` // 新版本号
	VersionNewLink string `json:"versionNewLink"` // 新版本下载链接
}
