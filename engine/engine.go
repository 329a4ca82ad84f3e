package engine

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Info contains metadata about an engine implementation.
type Info struct {
	Name     string `json:"name"`
	Provider string `json:"provider"` // "openai", "anthropic", "mock", etc.
}

// Engine is the minimal interface the generator needs from an external
// text-generation backend. Each call is a single request/response: no
// streaming, no multi-turn state. Transport and rate-limit errors are
// returned unchanged; retry policy belongs to the caller's scheduling layer.
type Engine interface {
	Generate(ctx context.Context, prompt, system string) (string, error)

	// Info returns information about the engine implementation.
	Info() Info
}

// MockEngine is a lightweight in-memory Engine useful for tests & examples.
// Responses are matched by prompt substring in registration order; unmatched
// prompts get a deterministic echo. A registered failure takes precedence
// over any response.
type MockEngine struct {
	mu        sync.Mutex
	info      Info
	rules     []mockRule
	err       error
	callCount int
	prompts   []string
}

type mockRule struct {
	match    string
	response string
}

// NewMockEngine constructs a MockEngine.
func NewMockEngine() *MockEngine {
	return &MockEngine{info: Info{Name: "mock", Provider: "mock"}}
}

// AddResponse registers a canned completion for prompts containing match.
func (m *MockEngine) AddResponse(match, response string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rules = append(m.rules, mockRule{match: match, response: response})
}

// FailWith makes every subsequent Generate call return err. Pass nil to
// clear the failure.
func (m *MockEngine) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Generate implements Engine.
func (m *MockEngine) Generate(ctx context.Context, prompt, system string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount++
	m.prompts = append(m.prompts, prompt)
	if m.err != nil {
		return "", m.err
	}
	for _, r := range m.rules {
		if strings.Contains(prompt, r.match) {
			return r.response, nil
		}
	}
	return fmt.Sprintf("Mock response to: %s", prompt), nil
}

// Info implements Engine.
func (m *MockEngine) Info() Info { return m.info }

// CallCount reports how many Generate calls have been made.
func (m *MockEngine) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// Prompts returns a copy of every prompt seen so far, in call order.
func (m *MockEngine) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.prompts))
	copy(out, m.prompts)
	return out
}
