package dao

import (
	"context"
	"testing"

	"github.com/haierkeys/clipboard-history-service/internal/domain"
	"github.com/haierkeys/clipboard-history-service/internal/model"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRepo(t *testing.T) domain.EntryRepository {
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
	return NewEntryRepository(New(db))
}

func mustCreate(t *testing.T, repo domain.EntryRepository, content string) *domain.Entry {
	t.Helper()
	entry, err := repo.Create(context.Background(), &domain.Entry{
		Content: content,
		Source:  domain.EntrySourceClipboard,
	})
	assert.Nil(t, err)
	assert.NotNil(t, entry)
	return entry
}

func contents(entries []*domain.Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Content)
	}
	return out
}

func TestEntryRepository_CreateAndGetLatest(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	mustCreate(t, repo, "a")
	b := mustCreate(t, repo, "b")

	latest, err := repo.GetLatest(ctx)
	assert.Nil(t, err)
	assert.Equal(t, b.ID, latest.ID)
	assert.Equal(t, "b", latest.Content)
	assert.NotEmpty(t, latest.ContentHash)
}

func TestEntryRepository_ListNewestFirst(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	mustCreate(t, repo, "a")
	mustCreate(t, repo, "b")
	mustCreate(t, repo, "c")

	list, err := repo.List(ctx, 1, 10)
	assert.Nil(t, err)
	assert.Equal(t, []string{"c", "b", "a"}, contents(list))

	count, err := repo.ListCount(ctx)
	assert.Nil(t, err)
	assert.Equal(t, int64(3), count)
}

func TestEntryRepository_EvictOverCap(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	// 容量为 3，写入 4 条后最旧的应被淘汰
	for _, c := range []string{"a", "b", "c", "d"} {
		mustCreate(t, repo, c)
	}

	evicted, err := repo.EvictOverCap(ctx, 3)
	assert.Nil(t, err)
	assert.Equal(t, int64(1), evicted)

	list, err := repo.List(ctx, 1, 10)
	assert.Nil(t, err)
	assert.Equal(t, []string{"d", "c", "b"}, contents(list))
}

func TestEntryRepository_EvictSkipsFavorites(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	// 收藏最旧的条目后，淘汰只作用于非收藏条目
	a := mustCreate(t, repo, "a")
	mustCreate(t, repo, "b")
	mustCreate(t, repo, "c")

	fav, err := repo.ToggleFavorite(ctx, a.ID)
	assert.Nil(t, err)
	assert.True(t, fav.Favorite)

	// 总数 3 超出容量 2，"a" 被收藏保留，"b" 虽比 "a" 新仍被淘汰
	evicted, err := repo.EvictOverCap(ctx, 2)
	assert.Nil(t, err)
	assert.Equal(t, int64(1), evicted)

	list, err := repo.List(ctx, 1, 10)
	assert.Nil(t, err)
	assert.Equal(t, []string{"c", "a"}, contents(list))

	// 全部为收藏条目时不再淘汰
	_, err = repo.ToggleFavorite(ctx, list[0].ID)
	assert.Nil(t, err)
	evicted, err = repo.EvictOverCap(ctx, 1)
	assert.Nil(t, err)
	assert.Equal(t, int64(0), evicted)
}

func TestEntryRepository_SearchCaseInsensitive(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	mustCreate(t, repo, "Hello World")
	mustCreate(t, repo, "goodbye")
	mustCreate(t, repo, "HELLO again")

	hits, err := repo.Search(ctx, "hello", 1, 10)
	assert.Nil(t, err)
	assert.Equal(t, []string{"HELLO again", "Hello World"}, contents(hits))

	count, err := repo.SearchCount(ctx, "hello")
	assert.Nil(t, err)
	assert.Equal(t, int64(2), count)

	// 空关键字等价于全量列表
	all, err := repo.Search(ctx, "", 1, 10)
	assert.Nil(t, err)
	assert.Len(t, all, 3)
}

func TestEntryRepository_ToggleFavoriteMissingID(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	entry, err := repo.ToggleFavorite(ctx, 9999)
	assert.Nil(t, err)
	assert.Nil(t, entry)
}

func TestEntryRepository_ToggleFavoriteRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	a := mustCreate(t, repo, "a")

	fav, err := repo.ToggleFavorite(ctx, a.ID)
	assert.Nil(t, err)
	assert.True(t, fav.Favorite)

	unfav, err := repo.ToggleFavorite(ctx, a.ID)
	assert.Nil(t, err)
	assert.False(t, unfav.Favorite)
}

func TestEntryRepository_DeleteMissingIDIsNoop(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	assert.Nil(t, repo.Delete(ctx, 12345))
}

func TestEntryRepository_DeleteAll(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	a := mustCreate(t, repo, "a")
	mustCreate(t, repo, "b")
	mustCreate(t, repo, "c")

	_, err := repo.ToggleFavorite(ctx, a.ID)
	assert.Nil(t, err)

	deleted, err := repo.DeleteAll(ctx, true)
	assert.Nil(t, err)
	assert.Equal(t, int64(2), deleted)

	list, err := repo.List(ctx, 1, 10)
	assert.Nil(t, err)
	assert.Equal(t, []string{"a"}, contents(list))

	deleted, err = repo.DeleteAll(ctx, false)
	assert.Nil(t, err)
	assert.Equal(t, int64(1), deleted)

	count, err := repo.ListCount(ctx)
	assert.Nil(t, err)
	assert.Equal(t, int64(0), count)
}

func TestEntryRepository_Stats(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	a := mustCreate(t, repo, "a")
	mustCreate(t, repo, "b")
	c := mustCreate(t, repo, "c")

	_, err := repo.ToggleFavorite(ctx, a.ID)
	assert.Nil(t, err)

	stats, err := repo.Stats(ctx)
	assert.Nil(t, err)
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(1), stats.Favorites)
	assert.Equal(t, int64(2), stats.NonFavorites)
	assert.Equal(t, a.ID, stats.OldestID)
	assert.Equal(t, c.ID, stats.NewestID)
}
