package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/haierkeys/clipboard-history-service/internal/dao"
	"github.com/haierkeys/clipboard-history-service/internal/domain"
	"github.com/haierkeys/clipboard-history-service/internal/dto"
	"github.com/haierkeys/clipboard-history-service/internal/model"
	appPkg "github.com/haierkeys/clipboard-history-service/pkg/app"
	"github.com/haierkeys/clipboard-history-service/pkg/code"

	"github.com/glebarez/sqlite"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// recordingPublisher 记录广播的动作类型
type recordingPublisher struct {
	mu      sync.Mutex
	actions []string
}

func (p *recordingPublisher) Broadcast(actionType string, codeObj *code.Code) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.actions = append(p.actions, actionType)
	codeObj.Reset()
}

func (p *recordingPublisher) has(actionType string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, a := range p.actions {
		if a == actionType {
			return true
		}
	}
	return false
}

func newTestHistoryService(t *testing.T, maxEntries int, maxContentSize int64) (HistoryService, *recordingPublisher) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := model.AutoMigrateAll(db); err != nil {
		t.Fatal(err)
	}

	repo := dao.NewEntryRepository(dao.New(db))
	pub := &recordingPublisher{}
	svc := NewHistoryService(repo, nil, pub, nil, &ServiceConfig{
		History: HistoryServiceConfig{
			MaxEntries:     maxEntries,
			MaxContentSize: maxContentSize,
		},
	})
	return svc, pub
}

func assertCodeError(t *testing.T, err error, want *code.Code) {
	t.Helper()
	var codeErr *code.Code
	assert.True(t, errors.As(err, &codeErr))
	assert.Equal(t, want.Code(), codeErr.Code())
}

func TestHistoryService_CaptureRejectsBlank(t *testing.T) {
	svc, _ := newTestHistoryService(t, 200, 0)
	ctx := context.Background()

	for _, content := range []string{"", "   ", "\n\t "} {
		entry, created, err := svc.Capture(ctx, content, domain.EntrySourceClipboard)
		assert.Nil(t, entry)
		assert.False(t, created)
		assertCodeError(t, err, code.ErrorEmptyContent)
	}
}

func TestHistoryService_CaptureRejectsOversize(t *testing.T) {
	svc, _ := newTestHistoryService(t, 200, 8)
	ctx := context.Background()

	entry, created, err := svc.Capture(ctx, strings.Repeat("x", 9), domain.EntrySourceClipboard)
	assert.Nil(t, entry)
	assert.False(t, created)
	assertCodeError(t, err, code.ErrorContentTooLarge)

	// 恰好等于上限时允许写入
	entry, created, err = svc.Capture(ctx, strings.Repeat("x", 8), domain.EntrySourceClipboard)
	assert.Nil(t, err)
	assert.True(t, created)
	assert.NotNil(t, entry)
}

func TestHistoryService_CaptureSkipsConsecutiveDuplicate(t *testing.T) {
	svc, pub := newTestHistoryService(t, 200, 0)
	ctx := context.Background()

	first, created, err := svc.Capture(ctx, "hello", domain.EntrySourceClipboard)
	assert.Nil(t, err)
	assert.True(t, created)

	// 连续重复：跳过写入，返回已存在的条目
	dup, created, err := svc.Capture(ctx, "hello", domain.EntrySourceClipboard)
	assert.Nil(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, dup.ID)

	// 非连续重复：中间插入其他内容后允许再次写入
	_, created, err = svc.Capture(ctx, "world", domain.EntrySourceClipboard)
	assert.Nil(t, err)
	assert.True(t, created)

	again, created, err := svc.Capture(ctx, "hello", domain.EntrySourceClipboard)
	assert.Nil(t, err)
	assert.True(t, created)
	assert.NotEqual(t, first.ID, again.ID)

	assert.True(t, pub.has(EventEntryCreated))
}

func TestHistoryService_CaptureDefaultsSource(t *testing.T) {
	svc, _ := newTestHistoryService(t, 200, 0)

	entry, created, err := svc.Capture(context.Background(), "hello", "")
	assert.Nil(t, err)
	assert.True(t, created)
	assert.Equal(t, string(domain.EntrySourceClipboard), entry.Source)
}

func TestHistoryService_CaptureEvictsOverCap(t *testing.T) {
	svc, _ := newTestHistoryService(t, 3, 0)
	ctx := context.Background()

	for _, c := range []string{"a", "b", "c", "d"} {
		_, _, err := svc.Capture(ctx, c, domain.EntrySourceClipboard)
		assert.Nil(t, err)
	}

	stats, err := svc.Stats(ctx)
	assert.Nil(t, err)
	assert.Equal(t, int64(3), stats.Total)

	entries, count, err := svc.List(ctx, nil, &appPkg.Pager{Page: 1, PageSize: 10})
	assert.Nil(t, err)
	assert.Equal(t, 3, count)
	assert.Equal(t, "d", entries[0].Content)
	assert.Equal(t, "b", entries[2].Content)
}

func TestHistoryService_ListSearch(t *testing.T) {
	svc, _ := newTestHistoryService(t, 200, 0)
	ctx := context.Background()

	for _, c := range []string{"Hello World", "goodbye", "HELLO again"} {
		_, _, err := svc.Capture(ctx, c, domain.EntrySourceClipboard)
		assert.Nil(t, err)
	}

	entries, count, err := svc.List(ctx, &dto.EntryListRequest{Query: "hello"}, &appPkg.Pager{Page: 1, PageSize: 10})
	assert.Nil(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, "HELLO again", entries[0].Content)
	assert.Equal(t, "Hello World", entries[1].Content)
}

func TestHistoryService_ToggleFavoriteMissingID(t *testing.T) {
	svc, _ := newTestHistoryService(t, 200, 0)

	entry, found, err := svc.ToggleFavorite(context.Background(), 9999)
	assert.Nil(t, err)
	assert.False(t, found)
	assert.Nil(t, entry)
}

func TestHistoryService_ToggleFavoriteRoundTrip(t *testing.T) {
	svc, pub := newTestHistoryService(t, 200, 0)
	ctx := context.Background()

	created, _, err := svc.Capture(ctx, "keep me", domain.EntrySourceAPI)
	assert.Nil(t, err)

	fav, found, err := svc.ToggleFavorite(ctx, created.ID)
	assert.Nil(t, err)
	assert.True(t, found)
	assert.True(t, fav.Favorite)

	unfav, found, err := svc.ToggleFavorite(ctx, created.ID)
	assert.Nil(t, err)
	assert.True(t, found)
	assert.False(t, unfav.Favorite)

	assert.True(t, pub.has(EventEntryFavorite))
}

func TestHistoryService_ClearKeepFavorites(t *testing.T) {
	svc, pub := newTestHistoryService(t, 200, 0)
	ctx := context.Background()

	a, _, err := svc.Capture(ctx, "a", domain.EntrySourceClipboard)
	assert.Nil(t, err)
	_, _, err = svc.Capture(ctx, "b", domain.EntrySourceClipboard)
	assert.Nil(t, err)

	_, _, err = svc.ToggleFavorite(ctx, a.ID)
	assert.Nil(t, err)

	deleted, err := svc.Clear(ctx, true)
	assert.Nil(t, err)
	assert.Equal(t, int64(1), deleted)

	latest, err := svc.Latest(ctx)
	assert.Nil(t, err)
	assert.Equal(t, "a", latest.Content)

	deleted, err = svc.Clear(ctx, false)
	assert.Nil(t, err)
	assert.Equal(t, int64(1), deleted)
	assert.True(t, pub.has(EventHistoryCleared))
}

func TestHistoryService_TrimDisabledWithoutCap(t *testing.T) {
	svc, _ := newTestHistoryService(t, 0, 0)

	evicted, err := svc.Trim(context.Background())
	assert.Nil(t, err)
	assert.Equal(t, int64(0), evicted)
}

// 验证任意写入序列下容量上限始终成立

func TestProperty_CaptureNeverExceedsCap(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 30

	properties := gopter.NewProperties(parameters)

	properties.Property("history size never exceeds max entries", prop.ForAll(
		func(contents []string, maxEntries int) bool {
			svc, _ := newTestHistoryService(t, maxEntries, 0)
			ctx := context.Background()

			for _, c := range contents {
				if _, _, err := svc.Capture(ctx, c, domain.EntrySourceClipboard); err != nil {
					t.Logf("capture failed: %v", err)
					return false
				}
			}

			stats, err := svc.Stats(ctx)
			if err != nil {
				t.Logf("stats failed: %v", err)
				return false
			}
			if stats.Total > int64(maxEntries) {
				t.Logf("total %d exceeds cap %d", stats.Total, maxEntries)
				return false
			}
			return true
		},
		gen.SliceOf(gen.AlphaString().SuchThat(func(s string) bool {
			return strings.TrimSpace(s) != ""
		})),
		gen.IntRange(1, 10),
	))

	properties.TestingRun(t)
}

// 验证收藏条目不会被容量淘汰

func TestProperty_FavoritesSurviveEviction(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 30

	properties := gopter.NewProperties(parameters)

	properties.Property("favorite entries survive capture eviction", prop.ForAll(
		func(extra int) bool {
			svc, _ := newTestHistoryService(t, 3, 0)
			ctx := context.Background()

			first, _, err := svc.Capture(ctx, "pinned", domain.EntrySourceClipboard)
			if err != nil {
				return false
			}
			if _, _, err := svc.ToggleFavorite(ctx, first.ID); err != nil {
				return false
			}

			for i := 0; i < extra; i++ {
				content := "entry-" + strings.Repeat("x", i+1)
				if _, _, err := svc.Capture(ctx, content, domain.EntrySourceClipboard); err != nil {
					return false
				}
			}

			stats, err := svc.Stats(ctx)
			if err != nil {
				return false
			}
			if stats.Favorites != 1 {
				t.Logf("favorite lost after %d captures", extra)
				return false
			}
			return stats.Total <= 3
		},
		gen.IntRange(0, 20),
	))

	properties.TestingRun(t)
}

// 验证连续重复捕获永远不会新建条目

func TestProperty_ConsecutiveDuplicateNeverCreates(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	properties.Property("repeated identical capture is a no-op", prop.ForAll(
		func(content string, repeats int) bool {
			svc, _ := newTestHistoryService(t, 200, 0)
			ctx := context.Background()

			first, created, err := svc.Capture(ctx, content, domain.EntrySourceClipboard)
			if err != nil || !created {
				return false
			}

			for i := 0; i < repeats; i++ {
				dup, created, err := svc.Capture(ctx, content, domain.EntrySourceClipboard)
				if err != nil || created || dup.ID != first.ID {
					return false
				}
			}

			stats, err := svc.Stats(ctx)
			if err != nil {
				return false
			}
			return stats.Total == 1
		},
		gen.AlphaString().SuchThat(func(s string) bool {
			return strings.TrimSpace(s) != ""
		}),
		gen.IntRange(1, 5),
	))

	properties.TestingRun(t)
}
