package service

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/haierkeys/clipboard-history-service/internal/domain"
	"github.com/haierkeys/clipboard-history-service/pkg/code"
	"github.com/haierkeys/clipboard-history-service/pkg/storage"
	"github.com/haierkeys/clipboard-history-service/pkg/timex"

	"github.com/bytedance/sonic"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ExportService 定义历史导出服务接口
// 按 cron 表达式定期把全部历史导出为本地 JSON 文件
type ExportService interface {
	// ExportNow 立即执行一次导出，返回导出文件路径
	ExportNow(ctx context.Context) (string, error)

	// Start 按配置的 cron 表达式启动定时导出
	Start() error

	// Stop 停止定时导出
	Stop()
}

// exportFile 导出文件结构
type exportFile struct {
	ExportedAt timex.Time  `json:"exportedAt"`
	Total      int         `json:"total"`
	Entries    []*EntryDTO `json:"entries"`
}

// exportService 实现 ExportService 接口
type exportService struct {
	entryRepo domain.EntryRepository
	store     storage.Storager
	cron      *cron.Cron
	logger    *zap.Logger
	config    *ServiceConfig
}

// NewExportService 创建 ExportService 实例
func NewExportService(entryRepo domain.EntryRepository, store storage.Storager, lg *zap.Logger, config *ServiceConfig) ExportService {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &exportService{
		entryRepo: entryRepo,
		store:     store,
		logger:    lg,
		config:    config,
	}
}

// ExportNow 立即执行一次导出
func (s *exportService) ExportNow(ctx context.Context) (string, error) {
	entries, err := s.entryRepo.List(ctx, 0, 0)
	if err != nil {
		return "", code.ErrorStoreUnavailable.WithDetails(err.Error())
	}

	dtos := make([]*EntryDTO, 0, len(entries))
	for _, entry := range entries {
		dtos = append(dtos, &EntryDTO{
			ID:        entry.ID,
			Content:   entry.Content,
			Favorite:  entry.Favorite,
			Source:    string(entry.Source),
			CreatedAt: timex.Time(entry.CreatedAt),
			UpdatedAt: timex.Time(entry.UpdatedAt),
		})
	}

	payload, err := sonic.MarshalIndent(&exportFile{
		ExportedAt: timex.Now(),
		Total:      len(dtos),
		Entries:    dtos,
	}, "", "  ")
	if err != nil {
		return "", code.ErrorExportFailed.WithDetails(err.Error())
	}

	name := "history-" + time.Now().Format("20060102-150405") + ".json"
	savedPath, err := s.store.SendContent(name, payload, time.Now())
	if err != nil {
		return "", code.ErrorExportFailed.WithDetails(err.Error())
	}

	s.logger.Info("history exported",
		zap.String("path", savedPath),
		zap.Int("count", len(dtos)))

	s.pruneOldExports(filepath.Dir(savedPath))

	return savedPath, nil
}

// pruneOldExports 按配置保留最近的若干个导出文件
func (s *exportService) pruneOldExports(dir string) {
	if s.config == nil || s.config.Export.KeepFiles <= 0 {
		return
	}

	matches, err := filepath.Glob(filepath.Join(dir, "history-*.json"))
	if err != nil || len(matches) <= s.config.Export.KeepFiles {
		return
	}

	// 文件名内嵌时间戳，字典序即时间序
	sort.Strings(matches)
	for _, stale := range matches[:len(matches)-s.config.Export.KeepFiles] {
		if err := os.Remove(stale); err != nil {
			s.logger.Warn("failed to remove stale export", zap.String("path", stale), zap.Error(err))
			continue
		}
		s.logger.Debug("stale export removed", zap.String("path", stale))
	}
}

// Start 按配置的 cron 表达式启动定时导出
func (s *exportService) Start() error {
	if s.config == nil || !s.config.Export.IsEnable || s.config.Export.Schedule == "" {
		s.logger.Info("scheduled export is disabled")
		return nil
	}

	s.cron = cron.New()
	_, err := s.cron.AddFunc(s.config.Export.Schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if _, err := s.ExportNow(ctx); err != nil {
			s.logger.Error("scheduled export failed", zap.Error(err))
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduled export started", zap.String("schedule", s.config.Export.Schedule))
	return nil
}

// Stop 停止定时导出
func (s *exportService) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}
