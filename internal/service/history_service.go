// Package service 实现业务逻辑层
package service

import (
	"context"
	"strings"

	"github.com/haierkeys/clipboard-history-service/internal/domain"
	"github.com/haierkeys/clipboard-history-service/internal/dto"
	appPkg "github.com/haierkeys/clipboard-history-service/pkg/app"
	"github.com/haierkeys/clipboard-history-service/pkg/code"
	"github.com/haierkeys/clipboard-history-service/pkg/timex"
	"github.com/haierkeys/clipboard-history-service/pkg/writequeue"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// 事件推送的动作类型
const (
	EventEntryCreated   = "EntryCreated"
	EventEntryFavorite  = "EntryFavorite"
	EventEntryDeleted   = "EntryDeleted"
	EventHistoryCleared = "HistoryCleared"
	EventHistoryTrimmed = "HistoryTrimmed"
)

// EventPublisher 历史变更事件的推送端
// 由 WebSocket 事件服务实现，空实现用于测试
type EventPublisher interface {
	Broadcast(actionType string, codeObj *code.Code)
}

// NopPublisher 丢弃所有事件
type NopPublisher struct{}

func (NopPublisher) Broadcast(actionType string, codeObj *code.Code) {
	codeObj.Reset()
}

// HistoryService 定义剪贴板历史业务服务接口
type HistoryService interface {
	// Capture 写入一条历史
	// 与最近一条内容完全一致时跳过写入，返回 created=false
	Capture(ctx context.Context, content string, source domain.EntrySource) (*EntryDTO, bool, error)

	// Latest 获取最近一条历史
	Latest(ctx context.Context) (*EntryDTO, error)

	// List 获取历史列表，params.Query 非空时执行搜索
	List(ctx context.Context, params *dto.EntryListRequest, pager *appPkg.Pager) ([]*EntryDTO, int, error)

	// ToggleFavorite 翻转收藏标记，条目不存在时返回 found=false 且不报错
	ToggleFavorite(ctx context.Context, id int64) (*EntryDTO, bool, error)

	// Delete 删除单条历史，条目不存在时不报错
	Delete(ctx context.Context, id int64) error

	// Clear 清空历史，keepFavorites 为 true 时保留收藏条目
	Clear(ctx context.Context, keepFavorites bool) (int64, error)

	// Trim 淘汰超过容量上限的最旧非收藏条目
	Trim(ctx context.Context) (int64, error)

	// Stats 获取历史统计
	Stats(ctx context.Context) (*StatsDTO, error)
}

// EntryDTO 历史条目数据传输对象
type EntryDTO struct {
	ID        int64      `json:"id" form:"id"`
	Content   string     `json:"content" form:"content"`
	Favorite  bool       `json:"favorite" form:"favorite"`
	Source    string     `json:"source" form:"source"`
	CreatedAt timex.Time `json:"createdAt"`
	UpdatedAt timex.Time `json:"updatedAt"`
}

// StatsDTO 历史统计数据传输对象
type StatsDTO struct {
	Total        int64 `json:"total"`
	Favorites    int64 `json:"favorites"`
	NonFavorites int64 `json:"nonFavorites"`
	OldestID     int64 `json:"oldestId"`
	NewestID     int64 `json:"newestId"`
	MaxEntries   int   `json:"maxEntries"`
}

// historyService 实现 HistoryService 接口
type historyService struct {
	entryRepo domain.EntryRepository
	wq        *writequeue.Queue
	publisher EventPublisher
	sf        *singleflight.Group
	logger    *zap.Logger
	config    *ServiceConfig
}

// NewHistoryService 创建 HistoryService 实例
func NewHistoryService(entryRepo domain.EntryRepository, wq *writequeue.Queue, publisher EventPublisher, lg *zap.Logger, config *ServiceConfig) HistoryService {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	if lg == nil {
		lg = zap.NewNop()
	}
	return &historyService{
		entryRepo: entryRepo,
		wq:        wq,
		publisher: publisher,
		sf:        &singleflight.Group{},
		logger:    lg,
		config:    config,
	}
}

// domainToDTO 将领域模型转换为 DTO
func (s *historyService) domainToDTO(entry *domain.Entry) *EntryDTO {
	if entry == nil {
		return nil
	}
	return &EntryDTO{
		ID:        entry.ID,
		Content:   entry.Content,
		Favorite:  entry.Favorite,
		Source:    string(entry.Source),
		CreatedAt: timex.Time(entry.CreatedAt),
		UpdatedAt: timex.Time(entry.UpdatedAt),
	}
}

// execWrite 通过写队列串行化执行写操作
func (s *historyService) execWrite(ctx context.Context, fn func() error) error {
	if s.wq == nil {
		return fn()
	}
	return s.wq.Execute(ctx, fn)
}

// Capture 写入一条历史
// 空白内容与超长内容被拒绝；与最近一条内容一致时跳过写入
func (s *historyService) Capture(ctx context.Context, content string, source domain.EntrySource) (*EntryDTO, bool, error) {
	if strings.TrimSpace(content) == "" {
		return nil, false, code.ErrorEmptyContent
	}
	if s.config != nil && s.config.History.MaxContentSize > 0 &&
		int64(len(content)) > s.config.History.MaxContentSize {
		return nil, false, code.ErrorContentTooLarge
	}
	if source == "" {
		source = domain.EntrySourceClipboard
	}

	var (
		created *domain.Entry
		latest  *domain.Entry
	)

	err := s.execWrite(ctx, func() error {
		var err error
		latest, err = s.entryRepo.GetLatest(ctx)
		if err != nil {
			return err
		}

		// 与最近一条内容完全一致视为重复，跳过写入
		if latest != nil && latest.Content == content {
			return nil
		}

		created, err = s.entryRepo.Create(ctx, &domain.Entry{
			Content: content,
			Source:  source,
		})
		if err != nil {
			return err
		}

		if s.config != nil && s.config.History.MaxEntries > 0 {
			evicted, err := s.entryRepo.EvictOverCap(ctx, s.config.History.MaxEntries)
			if err != nil {
				return err
			}
			if evicted > 0 {
				metricEvictedTotal.Add(float64(evicted))
				s.logger.Debug("history trimmed after capture", zap.Int64("count", evicted))
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("history capture failed", zap.Error(err))
		return nil, false, code.ErrorStoreUnavailable.WithDetails(err.Error())
	}

	if created == nil {
		// 重复内容，返回已存在的最近条目
		metricDuplicateSkippedTotal.Inc()
		return s.domainToDTO(latest), false, nil
	}

	metricCaptureTotal.Inc()
	d := s.domainToDTO(created)
	s.publisher.Broadcast(EventEntryCreated, code.Success.Clone().WithData(d))
	return d, true, nil
}

// Latest 获取最近一条历史
func (s *historyService) Latest(ctx context.Context) (*EntryDTO, error) {
	entry, err := s.entryRepo.GetLatest(ctx)
	if err != nil {
		return nil, code.ErrorStoreUnavailable.WithDetails(err.Error())
	}
	return s.domainToDTO(entry), nil
}

// List 获取历史列表，按写入先后倒序
// params.Query 非空时执行大小写不敏感的子串搜索
func (s *historyService) List(ctx context.Context, params *dto.EntryListRequest, pager *appPkg.Pager) ([]*EntryDTO, int, error) {
	keyword := ""
	if params != nil {
		keyword = params.Query
	}

	entries, err := s.entryRepo.Search(ctx, keyword, pager.Page, pager.PageSize)
	if err != nil {
		return nil, 0, code.ErrorStoreUnavailable.WithDetails(err.Error())
	}
	count, err := s.entryRepo.SearchCount(ctx, keyword)
	if err != nil {
		return nil, 0, code.ErrorStoreUnavailable.WithDetails(err.Error())
	}

	dtos := make([]*EntryDTO, 0, len(entries))
	for _, entry := range entries {
		dtos = append(dtos, s.domainToDTO(entry))
	}
	return dtos, int(count), nil
}

// ToggleFavorite 翻转收藏标记
// 条目不存在时静默返回 found=false，与仓储层约定一致
func (s *historyService) ToggleFavorite(ctx context.Context, id int64) (*EntryDTO, bool, error) {
	var entry *domain.Entry
	err := s.execWrite(ctx, func() error {
		var err error
		entry, err = s.entryRepo.ToggleFavorite(ctx, id)
		return err
	})
	if err != nil {
		return nil, false, code.ErrorStoreUnavailable.WithDetails(err.Error())
	}
	if entry == nil {
		return nil, false, nil
	}

	d := s.domainToDTO(entry)
	s.publisher.Broadcast(EventEntryFavorite, code.Success.Clone().WithData(d))
	return d, true, nil
}

// Delete 删除单条历史
func (s *historyService) Delete(ctx context.Context, id int64) error {
	err := s.execWrite(ctx, func() error {
		return s.entryRepo.Delete(ctx, id)
	})
	if err != nil {
		return code.ErrorStoreUnavailable.WithDetails(err.Error())
	}
	s.publisher.Broadcast(EventEntryDeleted, code.Success.Clone().WithData(map[string]int64{"id": id}))
	return nil
}

// Clear 清空历史
func (s *historyService) Clear(ctx context.Context, keepFavorites bool) (int64, error) {
	var deleted int64
	err := s.execWrite(ctx, func() error {
		var err error
		deleted, err = s.entryRepo.DeleteAll(ctx, keepFavorites)
		return err
	})
	if err != nil {
		return 0, code.ErrorStoreUnavailable.WithDetails(err.Error())
	}
	s.publisher.Broadcast(EventHistoryCleared, code.Success.Clone().WithData(map[string]int64{"deleted": deleted}))
	return deleted, nil
}

// Trim 淘汰超过容量上限的最旧非收藏条目
func (s *historyService) Trim(ctx context.Context) (int64, error) {
	if s.config == nil || s.config.History.MaxEntries <= 0 {
		return 0, nil
	}

	var evicted int64
	err := s.execWrite(ctx, func() error {
		var err error
		evicted, err = s.entryRepo.EvictOverCap(ctx, s.config.History.MaxEntries)
		return err
	})
	if err != nil {
		return 0, code.ErrorStoreUnavailable.WithDetails(err.Error())
	}
	if evicted > 0 {
		metricEvictedTotal.Add(float64(evicted))
		s.publisher.Broadcast(EventHistoryTrimmed, code.Success.Clone().WithData(map[string]int64{"evicted": evicted}))
	}
	return evicted, nil
}

// Stats 获取历史统计
// 并发请求通过 singleflight 合并
func (s *historyService) Stats(ctx context.Context) (*StatsDTO, error) {
	v, err, _ := s.sf.Do("history_stats", func() (any, error) {
		return s.entryRepo.Stats(ctx)
	})
	if err != nil {
		return nil, code.ErrorStoreUnavailable.WithDetails(err.Error())
	}

	stats := v.(*domain.Stats)
	d := &StatsDTO{
		Total:        stats.Total,
		Favorites:    stats.Favorites,
		NonFavorites: stats.NonFavorites,
		OldestID:     stats.OldestID,
		NewestID:     stats.NewestID,
	}
	if s.config != nil {
		d.MaxEntries = s.config.History.MaxEntries
	}
	return d, nil
}
