package engine

import (
	"context"
	"sync"
)

// MockClassifier is a test implementation of RemoteClassifier that replays
// scripted replies.
type MockClassifier struct {
	Err     error
	block   chan struct{}
	calls   []MockCall
	replies []string
	mu      sync.Mutex
}

// MockCall records details of a classification request.
type MockCall struct {
	MIMEType string
	Data     []byte
}

// NewMockClassifier returns a mock that answers with replies in order,
// repeating the last one.
func NewMockClassifier(replies ...string) *MockClassifier {
	return &MockClassifier{replies: replies}
}

// BlockUntil makes every call wait until release is closed or the context ends.
func (m *MockClassifier) BlockUntil(release chan struct{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.block = release
}

// ClassifyImage records the call and returns the next scripted reply.
func (m *MockClassifier) ClassifyImage(ctx context.Context, data []byte, mimeType string) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, MockCall{Data: data, MIMEType: mimeType})
	block := m.block
	m.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return "", m.Err
	}
	if len(m.replies) == 0 {
		return "", nil
	}
	reply := m.replies[0]
	if len(m.replies) > 1 {
		m.replies = m.replies[1:]
	}
	return reply, nil
}

// Calls returns the recorded requests.
func (m *MockClassifier) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]MockCall(nil), m.calls...)
}
