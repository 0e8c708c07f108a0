package engine

import (
	"context"
	"sync"
)

// MockChat is a test double for the service.ChatCompletion collaborator.
// It records calls and returns canned responses.
type MockChat struct {
	Err       error
	Response  string
	mu        sync.Mutex
	callCount int
	prompts   []string
}

// Chat implements service.ChatCompletion.
func (m *MockChat) Chat(_ context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.callCount++
	m.prompts = append(m.prompts, prompt)

	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

// CallCount returns how many times Chat was invoked.
func (m *MockChat) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// LastPrompt returns the most recent prompt, or empty when none.
func (m *MockChat) LastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.prompts) == 0 {
		return ""
	}
	return m.prompts[len(m.prompts)-1]
}
