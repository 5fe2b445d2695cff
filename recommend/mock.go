// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package recommend

import (
	"context"
	"sync"
)

// MockResponse is a canned reply for MockProvider. When Block is set the
// call waits for the context to end.
type MockResponse struct {
	Text  string
	Err   error
	Block bool
}

// MockProvider returns canned responses in FIFO order and records prompts.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	Prompts   []string
}

// NewMockProvider creates a MockProvider with the given responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

// Generate returns the next canned response, or ErrUnavailable once the
// queue is empty.
func (m *MockProvider) Generate(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.Prompts = append(m.Prompts, prompt)
	if len(m.responses) == 0 {
		m.mu.Unlock()
		return "", ErrUnavailable
	}
	resp := m.responses[0]
	m.responses = m.responses[1:]
	m.mu.Unlock()

	if resp.Block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return resp.Text, resp.Err
}

func (m *MockProvider) ModelID() string {
	return "mock"
}

// CallCount returns the number of Generate calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Prompts)
}
