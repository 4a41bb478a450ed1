package safe_close

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSafeClose_WaitClosed(t *testing.T) {
	sc := NewSafeClose()

	ran := make(chan struct{})
	sc.Attach(func(done func(), closeSignal <-chan struct{}) {
		defer done()
		<-closeSignal
		close(ran)
	})

	sc.SendCloseSignal(nil)
	assert.NoError(t, sc.WaitClosed())

	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("attached goroutine did not observe close signal")
	}
}

func TestSafeClose_FirstErrorWins(t *testing.T) {
	sc := NewSafeClose()

	first := errors.New("listen failed")
	sc.Attach(func(done func(), closeSignal <-chan struct{}) {
		defer done()
		<-closeSignal
	})

	sc.SendCloseSignal(first)
	sc.SendCloseSignal(errors.New("second"))

	assert.Equal(t, first, sc.WaitClosed())
}

func TestSafeClose_DoubleSendDoesNotPanic(t *testing.T) {
	sc := NewSafeClose()
	sc.SendCloseSignal(nil)
	sc.SendCloseSignal(nil)
	assert.NoError(t, sc.WaitClosed())
}
