package cli

import (
	"bytes"
	"context"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/waste-wise/internal/model"
)

// syncBuffer provides thread-safe access to a bytes.Buffer.
type syncBuffer struct {
	buf bytes.Buffer
	mu  sync.Mutex
}

func (s *syncBuffer) Write(p []byte) (n int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

func TestNewInterruptHandler_DefaultsWriter(t *testing.T) {
	handler := NewInterruptHandler(nil, NewStyles(model.ThemeLight))
	assert.NotNil(t, handler.writer)
	assert.False(t, handler.WasInterrupted())
}

func TestHandleInterrupts_Signal(t *testing.T) {
	output := &syncBuffer{}
	handler := NewInterruptHandler(output, NewStyles(model.ThemeLight))

	ctx, stop := handler.HandleInterrupts(context.Background())
	defer stop()

	handler.signals <- syscall.SIGINT

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("context was not canceled after interrupt")
	}

	require.Eventually(t, handler.WasInterrupted, time.Second, 10*time.Millisecond)
	assert.Contains(t, output.String(), "Classification interrupted!")
	assert.Contains(t, output.String(), "Nothing was added")
}

func TestHandleInterrupts_StopWithoutSignal(t *testing.T) {
	output := &syncBuffer{}
	handler := NewInterruptHandler(output, NewStyles(model.ThemeDark))

	ctx, stop := handler.HandleInterrupts(context.Background())
	stop()

	<-ctx.Done()
	time.Sleep(20 * time.Millisecond)
	assert.False(t, handler.WasInterrupted())
	assert.Empty(t, output.String())
}

func TestHandleInterrupts_ParentCancel(t *testing.T) {
	handler := NewInterruptHandler(&syncBuffer{}, NewStyles(model.ThemeLight))

	parent, cancel := context.WithCancel(context.Background())
	ctx, stop := handler.HandleInterrupts(parent)
	defer stop()

	cancel()
	<-ctx.Done()
	assert.False(t, handler.WasInterrupted())
}
