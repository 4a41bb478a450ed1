// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/haierkeys/clipboard-history-service/internal/dao"
	"github.com/haierkeys/clipboard-history-service/internal/domain"
	"github.com/haierkeys/clipboard-history-service/internal/monitor"
	"github.com/haierkeys/clipboard-history-service/internal/service"
	pkgapp "github.com/haierkeys/clipboard-history-service/pkg/app"
	"github.com/haierkeys/clipboard-history-service/pkg/storage"
	"github.com/haierkeys/clipboard-history-service/pkg/workerpool"
	"github.com/haierkeys/clipboard-history-service/pkg/writequeue"
	"golang.org/x/mod/semver"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App 应用容器，封装所有依赖和服务
type App struct {
	// 基础设施（注入的依赖）
	config *AppConfig
	logger *zap.Logger
	DB     *gorm.DB
	Dao    *dao.Dao

	// 并发控制组件
	workerPool *workerpool.Pool
	writeQueue *writequeue.Queue

	// Repository 层
	EntryRepo domain.EntryRepository

	// Service 层
	HistoryService service.HistoryService
	ExportService  service.ExportService

	// 剪贴板监控，启动后由 SetMonitor 注入
	monitorMu sync.RWMutex
	monitor   *monitor.Monitor

	// 启动时间
	StartTime time.Time

	// 版本检查信息
	checkVersionMu sync.RWMutex
	checkVersion   pkgapp.CheckVersionInfo
}

// NewApp 创建应用容器实例
// 初始化所有依赖并进行依赖注入
// cfg: 应用配置（必须）
// logger: zap 日志器（必须）
// db: 数据库连接（必须）
// publisher: 历史变更事件推送端，nil 时丢弃事件
func NewApp(cfg *AppConfig, logger *zap.Logger, db *gorm.DB, publisher service.EventPublisher) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}

	a := &App{
		config:    cfg,
		logger:    logger,
		DB:        db,
		StartTime: time.Now(),
	}

	// 初始化 Worker Pool
	wpConfig := cfg.GetWorkerPoolConfig()
	a.workerPool = workerpool.New(&wpConfig, logger)

	// 初始化 Write Queue，所有历史写操作经此串行化
	wqConfig := cfg.GetWriteQueueConfig()
	a.writeQueue = writequeue.New(&wqConfig, logger)

	// 初始化 DAO
	a.Dao = dao.New(db)

	// 初始化 Repository 层
	a.EntryRepo = dao.NewEntryRepository(a.Dao)

	// 创建 ServiceConfig（从 AppConfig 提取 Service 层需要的配置）
	svcConfig := &service.ServiceConfig{
		History: service.HistoryServiceConfig{
			MaxEntries:     cfg.History.MaxEntries,
			MaxContentSize: cfg.History.MaxContentSize,
		},
		Export: service.ExportServiceConfig{
			IsEnable:  cfg.Export.IsEnable,
			Schedule:  cfg.Export.Schedule,
			SavePath:  cfg.Export.SavePath,
			KeepFiles: cfg.Export.KeepFiles,
		},
	}

	// 初始化 Service 层（依赖注入）
	a.HistoryService = service.NewHistoryService(a.EntryRepo, a.writeQueue, publisher, logger, svcConfig)

	store, err := storage.NewClient(&storage.Config{
		Type:      storage.LOCAL,
		IsEnabled: cfg.Export.IsEnable,
		SavePath:  cfg.Export.SavePath,
	})
	if err != nil {
		return nil, fmt.Errorf("init export storage failed: %w", err)
	}
	a.ExportService = service.NewExportService(a.EntryRepo, store, logger, svcConfig)

	logger.Info("App container initialized successfully",
		zap.Int("workerPoolMaxWorkers", wpConfig.MaxWorkers),
		zap.Int("writeQueueCapacity", wqConfig.QueueCapacity))

	return a, nil
}

// Shutdown 有序释放应用容器持有的资源
// 先排空写队列，再关闭数据库连接
func (a *App) Shutdown(ctx context.Context) error {
	a.ExportService.Stop()

	if a.writeQueue != nil {
		if err := a.writeQueue.Shutdown(ctx); err != nil {
			a.logger.Warn("write queue shutdown with pending operations", zap.Error(err))
		}
	}

	if a.workerPool != nil {
		if err := a.workerPool.Shutdown(ctx); err != nil {
			a.logger.Warn("worker pool shutdown with pending tasks", zap.Error(err))
		}
	}

	if a.DB != nil {
		sqlDB, err := a.DB.DB()
		if err != nil {
			return fmt.Errorf("failed to get sql.DB: %w", err)
		}
		if err := sqlDB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
		a.logger.Info("Database connection closed")
	}
	return nil
}

// Config 获取应用配置
func (a *App) Config() *AppConfig {
	return a.config
}

// Logger 获取日志器
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// SubmitTask 提交任务到 Worker Pool
// 返回错误如果池已满或已关闭
func (a *App) SubmitTask(ctx context.Context, task func(context.Context) error) error {
	return a.workerPool.Submit(ctx, task)
}

// SubmitTaskAsync 异步提交任务到 Worker Pool（不等待结果）
// 返回错误如果池已满或已关闭
func (a *App) SubmitTaskAsync(ctx context.Context, task func(context.Context) error) error {
	return a.workerPool.SubmitAsync(ctx, task)
}

// Version 获取版本信息
func (a *App) Version() pkgapp.VersionInfo {
	return pkgapp.VersionInfo{
		Version:   Version,
		GitTag:    GitTag,
		BuildTime: BuildTime,
	}
}

// CheckVersion 获取版本检查信息
func (a *App) CheckVersion() pkgapp.CheckVersionInfo {
	a.checkVersionMu.RLock()
	defer a.checkVersionMu.RUnlock()

	cv := a.checkVersion

	// 如果没有更新，把版本名称设置为空
	if !cv.VersionIsNew {
		cv.VersionNewName = ""
	}

	// 返回给客户端的版本号不带 v 前缀
	cv.VersionNewName = strings.TrimPrefix(cv.VersionNewName, "v")
	// 补充链接信息
	if cv.VersionNewLink == "" && cv.VersionNewName != "" {
		cv.VersionNewLink = "https://github.com/haierkeys/clipboard-history-service/releases/tag/" + cv.VersionNewName
	}

	return cv
}

// SetCheckVersionInfo 设置版本检查信息
func (a *App) SetCheckVersionInfo(info pkgapp.CheckVersionInfo) {
	a.checkVersionMu.Lock()
	defer a.checkVersionMu.Unlock()
	a.checkVersion = info
}

// IsNewerVersion 判断 latest 是否比 current 更新
// 两个版本号都允许不带 v 前缀
func IsNewerVersion(latest, current string) bool {
	if !strings.HasPrefix(latest, "v") {
		latest = "v" + latest
	}
	if !strings.HasPrefix(current, "v") {
		current = "v" + current
	}
	return semver.Compare(latest, current) > 0
}

// SetMonitor 注入剪贴板监控实例
func (a *App) SetMonitor(m *monitor.Monitor) {
	a.monitorMu.Lock()
	defer a.monitorMu.Unlock()
	a.monitor = m
}

// Monitor 获取剪贴板监控实例，未启用监控时返回 nil
func (a *App) Monitor() *monitor.Monitor {
	a.monitorMu.RLock()
	defer a.monitorMu.RUnlock()
	return a.monitor
}

// IsProductionMode 是否为生产模式
// 根据日志配置中的 Production 字段判断
func (a *App) IsProductionMode() bool {
	return a.config.Log.Production
}

// ExecuteWrite 执行写操作（通过 Write Queue 串行化）
func (a *App) ExecuteWrite(ctx context.Context, fn func() error) error {
	return a.writeQueue.Execute(ctx, fn)
}

// WorkerPool 获取 Worker Pool（用于高级操作）
func (a *App) WorkerPool() *workerpool.Pool {
	return a.workerPool
}

// WriteQueue 获取 Write Queue（用于高级操作）
func (a *App) WriteQueue() *writequeue.Queue {
	return a.writeQueue
}
