package llm

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
)

// MockReply is one canned reply of a MockProvider.
type MockReply struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockProvider replays canned replies in order and records requests. It
// runs the same schema validation as the real providers.
type MockProvider struct {
	mu      sync.Mutex
	replies []MockReply
	calls   []Request
}

// NewMockProvider creates a MockProvider with the given replies.
func NewMockProvider(replies ...MockReply) *MockProvider {
	return &MockProvider{replies: replies}
}

// Generate returns the next reply. An empty queue is KindUnavailable.
func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, req)
	if len(m.replies) == 0 {
		return nil, &Error{Kind: KindUnavailable, Err: errors.New("mock: no replies left")}
	}
	r := m.replies[0]
	m.replies = m.replies[1:]
	if r.Err != nil {
		return nil, r.Err
	}
	return finish(req, r.Content, "mock", stopEnd, r.Usage)
}

func (m *MockProvider) ModelID() string { return "mock" }

// Push queues more replies.
func (m *MockProvider) Push(replies ...MockReply) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replies = append(m.replies, replies...)
}

// Calls returns a copy of the recorded requests.
func (m *MockProvider) Calls() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Request(nil), m.calls...)
}
