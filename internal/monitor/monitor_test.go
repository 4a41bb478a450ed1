package monitor

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/haierkeys/clipboard-history-service/internal/domain"
	"github.com/haierkeys/clipboard-history-service/internal/dto"
	"github.com/haierkeys/clipboard-history-service/internal/service"
	appPkg "github.com/haierkeys/clipboard-history-service/pkg/app"

	"github.com/stretchr/testify/assert"
)

// fakeClipboard 测试用内存剪贴板
type fakeClipboard struct {
	mu      sync.Mutex
	content string
}

func (c *fakeClipboard) Name() string { return "fake" }

func (c *fakeClipboard) ReadText() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.content, nil
}

func (c *fakeClipboard) WriteText(content string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.content = content
	return nil
}

// captureRecorder 记录 Capture 调用的 HistoryService 替身
type captureRecorder struct {
	mu       sync.Mutex
	captured []string
	fail     bool
}

func (r *captureRecorder) Capture(ctx context.Context, content string, source domain.EntrySource) (*service.EntryDTO, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return nil, false, assert.AnError
	}
	r.captured = append(r.captured, content)
	return &service.EntryDTO{Content: content}, true, nil
}

func (r *captureRecorder) Latest(ctx context.Context) (*service.EntryDTO, error) { return nil, nil }
func (r *captureRecorder) List(ctx context.Context, params *dto.EntryListRequest, pager *appPkg.Pager) ([]*service.EntryDTO, int, error) {
	return nil, 0, nil
}
func (r *captureRecorder) ToggleFavorite(ctx context.Context, id int64) (*service.EntryDTO, bool, error) {
	return nil, false, nil
}
func (r *captureRecorder) Delete(ctx context.Context, id int64) error { return nil }
func (r *captureRecorder) Clear(ctx context.Context, keepFavorites bool) (int64, error) {
	return 0, nil
}
func (r *captureRecorder) Trim(ctx context.Context) (int64, error)        { return 0, nil }
func (r *captureRecorder) Stats(ctx context.Context) (*service.StatsDTO, error) { return nil, nil }

func (r *captureRecorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.captured))
	copy(out, r.captured)
	return out
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestMonitor_CapturesChanges(t *testing.T) {
	clip := &fakeClipboard{}
	rec := &captureRecorder{}
	m := New(clip, rec, 10*time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.Run(ctx)

	assert.NoError(t, clip.WriteText("hello"))
	waitFor(t, func() bool { return len(rec.snapshot()) == 1 })

	assert.NoError(t, clip.WriteText("world"))
	waitFor(t, func() bool { return len(rec.snapshot()) == 2 })

	assert.Equal(t, []string{"hello", "world"}, rec.snapshot())
}

func TestMonitor_UnchangedContentNotRecaptured(t *testing.T) {
	clip := &fakeClipboard{}
	rec := &captureRecorder{}
	m := New(clip, rec, 10*time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.Run(ctx)

	assert.NoError(t, clip.WriteText("same"))
	waitFor(t, func() bool { return len(rec.snapshot()) == 1 })

	// 等待多个轮询周期，内容未变化不应重复写入
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, []string{"same"}, rec.snapshot())
}

func TestMonitor_SurvivesCaptureFailure(t *testing.T) {
	clip := &fakeClipboard{}
	rec := &captureRecorder{fail: true}
	m := New(clip, rec, 10*time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.Run(ctx)

	assert.NoError(t, clip.WriteText("will fail"))
	time.Sleep(50 * time.Millisecond)

	// 写入失败后监听仍在工作
	rec.mu.Lock()
	rec.fail = false
	rec.mu.Unlock()

	assert.NoError(t, clip.WriteText("recovered"))
	waitFor(t, func() bool { return len(rec.snapshot()) == 1 })
	assert.Equal(t, []string{"recovered"}, rec.snapshot())
}

func TestMonitor_SetClipboardNotRecaptured(t *testing.T) {
	clip := &fakeClipboard{}
	rec := &captureRecorder{}
	m := New(clip, rec, 10*time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.Run(ctx)

	// 通过 SetClipboard 写入的内容同步了 lastSeen，不应被再次捕获
	assert.NoError(t, m.SetClipboard("from api"))
	time.Sleep(100 * time.Millisecond)
	assert.Empty(t, rec.snapshot())
	assert.Equal(t, "from api", m.LastSeen())
}
