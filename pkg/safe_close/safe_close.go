// Package safe_close 提供多服务协同的优雅关闭原语
package safe_close

import (
	"sync"
)

// SafeClose coordinates graceful shutdown across attached goroutines
// SafeClose 协调已挂载 goroutine 的优雅关闭
// Attach 启动一个受管 goroutine，收到关闭信号后应完成清理并调用 done
type SafeClose struct {
	mu          sync.Mutex
	wg          sync.WaitGroup
	closeSignal chan struct{}
	closed      bool
	err         error
}

func NewSafeClose() *SafeClose {
	return &SafeClose{
		closeSignal: make(chan struct{}),
	}
}

// Attach starts fn in a managed goroutine
// fn must call done exactly once when its cleanup is finished
// Attach 启动一个受管 goroutine
// fn 在清理完成后必须调用一次 done
func (s *SafeClose) Attach(fn func(done func(), closeSignal <-chan struct{})) {
	s.wg.Add(1)
	var once sync.Once
	done := func() {
		once.Do(s.wg.Done)
	}
	go fn(done, s.closeSignal)
}

// SendCloseSignal notifies all attached goroutines to shut down
// The first non-nil error is kept and returned by WaitClosed
// SendCloseSignal 通知所有受管 goroutine 关闭
// 第一个非 nil 的错误会被保留并由 WaitClosed 返回
func (s *SafeClose) SendCloseSignal(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err == nil && err != nil {
		s.err = err
	}
	if !s.closed {
		s.closed = true
		close(s.closeSignal)
	}
}

// WaitClosed blocks until every attached goroutine has called done
// WaitClosed 阻塞等待所有受管 goroutine 调用 done
func (s *SafeClose) WaitClosed() error {
	s.wg.Wait()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Done 返回关闭信号通道，便于非 Attach 场景监听
func (s *SafeClose) Done() <-chan struct{} {
	return s.closeSignal
}
