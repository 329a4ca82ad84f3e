package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/hupe1980/socialmesh/core"
)

// ScriptedAdapter is a platform adapter with a controllable outcome. It
// records every Post call.
type ScriptedAdapter struct {
	mu       sync.Mutex
	platform core.Platform
	err      error
	posts    []string
}

// NewScriptedAdapter creates an adapter that succeeds until FailWith is set.
func NewScriptedAdapter(p core.Platform) *ScriptedAdapter {
	return &ScriptedAdapter{platform: p}
}

// FailWith makes subsequent Post calls return err. Pass nil to clear.
func (a *ScriptedAdapter) FailWith(err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.err = err
}

// Post implements platform.Adapter.
func (a *ScriptedAdapter) Post(ctx context.Context, content string) (*core.PostResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.posts = append(a.posts, content)
	if a.err != nil {
		return nil, a.err
	}
	return &core.PostResult{
		ID:        core.NewID(),
		Platform:  a.platform,
		Timestamp: time.Now().UTC(),
	}, nil
}

// IsAuthenticated implements platform.Adapter.
func (a *ScriptedAdapter) IsAuthenticated() bool { return true }

// Posts returns a copy of every posted content string in call order.
func (a *ScriptedAdapter) Posts() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, len(a.posts))
	copy(out, a.posts)
	return out
}

// PostCount reports how many Post calls were made.
func (a *ScriptedAdapter) PostCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.posts)
}
