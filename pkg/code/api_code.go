package code

// 成功码
var (
	// Success 操作成功
	Success = NewSuss(200, lang{
		en:    "Success",
		zh_cn: "成功",
	})
	// SuccessDuplicateSkipped 内容与上一条相同，插入被跳过（非错误，供界面反馈）
	SuccessDuplicateSkipped = NewSuss(201, lang{
		en:    "Duplicate of the previous entry, skipped",
		zh_cn: "与上一条内容相同，已跳过",
	})
)

// 通用错误码
var (
	ErrorServerInternal = NewError(10000, lang{
		en:    "Server internal error",
		zh_cn: "服务器内部错误",
	})
	ErrorInvalidParams = NewError(10001, lang{
		en:    "Invalid request parameters",
		zh_cn: "请求参数错误",
	})
	ErrorNotFound = NewError(10002, lang{
		en:    "Resource not found",
		zh_cn: "找不到资源",
	})
	ErrorTooManyRequests = NewError(10003, lang{
		en:    "Too many requests",
		zh_cn: "请求过多",
	})
	ErrorRequestTimeout = NewError(10004, lang{
		en:    "Request timeout",
		zh_cn: "请求超时",
	})
)

// 剪贴板历史错误码
var (
	// ErrorEmptyContent 插入内容为空
	ErrorEmptyContent = NewError(20000, lang{
		en:    "Clipboard content is empty",
		zh_cn: "剪贴板内容为空",
	})
	// ErrorContentTooLarge 插入内容超过限制
	ErrorContentTooLarge = NewError(20001, lang{
		en:    "Clipboard content exceeds the size limit",
		zh_cn: "剪贴板内容超过大小限制",
	})
	// ErrorStoreUnavailable 存储层不可用，唯一预期用户可见的失败
	ErrorStoreUnavailable = NewError(20002, lang{
		en:    "History store is unavailable",
		zh_cn: "历史存储不可用",
	})
	// ErrorEntryNotFound 条目不存在
	ErrorEntryNotFound = NewError(20003, lang{
		en:    "History entry not found",
		zh_cn: "历史条目不存在",
	})
	// ErrorClipboardUnavailable 系统剪贴板不可用
	ErrorClipboardUnavailable = NewError(20004, lang{
		en:    "System clipboard is unavailable",
		zh_cn: "系统剪贴板不可用",
	})
	// ErrorExportFailed 导出失败
	ErrorExportFailed = NewError(20005, lang{
		en:    "History export failed",
		zh_cn: "历史导出失败",
	})
	// ErrorInvalidStorageType 存储类型不支持
	ErrorInvalidStorageType = NewError(20006, lang{
		en:    "Invalid storage type",
		zh_cn: "存储类型不支持",
	})
)
