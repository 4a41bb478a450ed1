package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/haierkeys/clipboard-history-service/internal/domain"
	"github.com/haierkeys/clipboard-history-service/internal/model"
	"github.com/haierkeys/clipboard-history-service/pkg/app"
	"github.com/haierkeys/clipboard-history-service/pkg/timex"
	"github.com/haierkeys/clipboard-history-service/pkg/util"

	"gorm.io/gorm"
)

// entryRepository 实现 domain.EntryRepository 接口
type entryRepository struct {
	dao *Dao
}

// NewEntryRepository 创建 EntryRepository 实例
func NewEntryRepository(dao *Dao) domain.EntryRepository {
	return &entryRepository{dao: dao}
}

func (r *entryRepository) db(ctx context.Context) *gorm.DB {
	return r.dao.Db.WithContext(ctx).Model(&model.Entry{})
}

// toDomain 将数据库模型转换为领域模型
func (r *entryRepository) toDomain(m *model.Entry) *domain.Entry {
	if m == nil {
		return nil
	}
	return &domain.Entry{
		ID:          m.ID,
		Content:     m.Content,
		ContentHash: m.ContentHash,
		Favorite:    m.Favorite,
		Source:      domain.EntrySource(m.Source),
		CreatedAt:   time.Time(m.CreatedAt),
		UpdatedAt:   time.Time(m.UpdatedAt),
	}
}

// toModel 将领域模型转换为数据库模型
func (r *entryRepository) toModel(entry *domain.Entry) *model.Entry {
	if entry == nil {
		return nil
	}
	return &model.Entry{
		ID:          entry.ID,
		Content:     entry.Content,
		ContentHash: entry.ContentHash,
		Favorite:    entry.Favorite,
		Source:      string(entry.Source),
		CreatedAt:   timex.Time(entry.CreatedAt),
		UpdatedAt:   timex.Time(entry.UpdatedAt),
	}
}

// Create 创建条目
func (r *entryRepository) Create(ctx context.Context, entry *domain.Entry) (*domain.Entry, error) {
	m := r.toModel(entry)
	m.ID = 0
	if m.ContentHash == "" {
		m.ContentHash = util.EncodeMD5(m.Content)
	}
	now := timex.Now()
	m.CreatedAt = now
	m.UpdatedAt = now
	if m.Source == "" {
		m.Source = string(domain.EntrySourceClipboard)
	}

	if err := r.dao.Db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// GetByID 根据ID获取条目
func (r *entryRepository) GetByID(ctx context.Context, id int64) (*domain.Entry, error) {
	var m model.Entry
	err := r.db(ctx).Where("id = ?", id).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.toDomain(&m), nil
}

// GetLatest 获取最近一次写入的条目
func (r *entryRepository) GetLatest(ctx context.Context) (*domain.Entry, error) {
	var m model.Entry
	err := r.db(ctx).Order("id DESC").First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.toDomain(&m), nil
}

// List 按写入先后倒序分页获取条目列表
func (r *entryRepository) List(ctx context.Context, page, pageSize int) ([]*domain.Entry, error) {
	return r.Search(ctx, "", page, pageSize)
}

// ListCount 获取条目总数
func (r *entryRepository) ListCount(ctx context.Context) (int64, error) {
	return r.SearchCount(ctx, "")
}

// Search 大小写不敏感的子串搜索，keyword 为空等价于 List
// 结果始终按写入先后倒序排列
func (r *entryRepository) Search(ctx context.Context, keyword string, page, pageSize int) ([]*domain.Entry, error) {
	q := r.db(ctx)
	if keyword != "" {
		q = q.Where("LOWER(content) LIKE ?", "%"+strings.ToLower(keyword)+"%")
	}
	if pageSize > 0 {
		q = q.Offset(app.GetPageOffset(page, pageSize)).Limit(pageSize)
	}

	var ms []*model.Entry
	if err := q.Order("id DESC").Find(&ms).Error; err != nil {
		return nil, err
	}

	entries := make([]*domain.Entry, 0, len(ms))
	for _, m := range ms {
		entries = append(entries, r.toDomain(m))
	}
	return entries, nil
}

// SearchCount 获取搜索命中总数
func (r *entryRepository) SearchCount(ctx context.Context, keyword string) (int64, error) {
	q := r.db(ctx)
	if keyword != "" {
		q = q.Where("LOWER(content) LIKE ?", "%"+strings.ToLower(keyword)+"%")
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ToggleFavorite 翻转收藏标记，条目不存在时返回 nil
func (r *entryRepository) ToggleFavorite(ctx context.Context, id int64) (*domain.Entry, error) {
	var m model.Entry
	err := r.db(ctx).Where("id = ?", id).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	m.Favorite = !m.Favorite
	m.UpdatedAt = timex.Now()
	err = r.db(ctx).Where("id = ?", id).
		Updates(map[string]any{
			"favorite":   m.Favorite,
			"updated_at": m.UpdatedAt,
		}).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// Delete 物理删除条目，条目不存在时不报错
func (r *entryRepository) Delete(ctx context.Context, id int64) error {
	return r.dao.Db.WithContext(ctx).Where("id = ?", id).Delete(&model.Entry{}).Error
}

// DeleteAll 清空历史，keepFavorites 为 true 时保留收藏条目
func (r *entryRepository) DeleteAll(ctx context.Context, keepFavorites bool) (int64, error) {
	q := r.dao.Db.WithContext(ctx)
	if keepFavorites {
		q = q.Where("favorite = ?", false)
	} else {
		q = q.Where("1 = 1")
	}
	result := q.Delete(&model.Entry{})
	return result.RowsAffected, result.Error
}

// EvictOverCap 总数超过 maxEntries 时删除超出数量的最旧非收藏条目
// 收藏条目计入总数但不参与淘汰，按 id 升序淘汰最旧的条目
func (r *entryRepository) EvictOverCap(ctx context.Context, maxEntries int) (int64, error) {
	if maxEntries < 0 {
		return 0, nil
	}

	count, err := r.ListCount(ctx)
	if err != nil {
		return 0, err
	}
	over := count - int64(maxEntries)
	if over <= 0 {
		return 0, nil
	}

	oldest := r.db(ctx).Select("id").
		Where("favorite = ?", false).
		Order("id ASC").
		Limit(int(over))

	result := r.dao.Db.WithContext(ctx).
		Where("id IN (?)", oldest).
		Delete(&model.Entry{})
	return result.RowsAffected, result.Error
}

// Stats 获取历史统计
func (r *entryRepository) Stats(ctx context.Context) (*domain.Stats, error) {
	stats := &domain.Stats{}

	if err := r.db(ctx).Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	if err := r.db(ctx).Where("favorite = ?", true).Count(&stats.Favorites).Error; err != nil {
		return nil, err
	}
	stats.NonFavorites = stats.Total - stats.Favorites

	if stats.Total > 0 {
		type bounds struct {
			OldestID int64
			NewestID int64
		}
		var b bounds
		err := r.db(ctx).
			Select("MIN(id) AS oldest_id, MAX(id) AS newest_id").
			Scan(&b).Error
		if err != nil {
			return nil, err
		}
		stats.OldestID = b.OldestID
		stats.NewestID = b.NewestID
	}

	return stats, nil
}
