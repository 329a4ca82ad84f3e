// Package platform defines the boundary to social-platform clients. The
// orchestration core never talks to vendor APIs directly: it resolves an
// Adapter by platform value and calls Post. Concrete vendor adapters are
// supplied by the hosting application.
package platform

import (
	"context"
	"time"

	"github.com/hupe1980/socialmesh/core"
	"github.com/hupe1980/socialmesh/logging"
)

// Adapter is implemented by platform clients. One adapter is registered per
// core.Platform value; the core looks adapters up by platform key only and
// never inspects their internals.
type Adapter interface {
	// Post publishes content and returns the resulting post reference.
	Post(ctx context.Context, content string) (*core.PostResult, error)

	// IsAuthenticated reports whether the adapter holds usable credentials.
	IsAuthenticated() bool
}

// DryRunAdapter logs instead of posting. It lets the binary run end to end
// without vendor credentials and serves as a reference implementation.
type DryRunAdapter struct {
	platform core.Platform
	logger   logging.Logger
}

// NewDryRunAdapter creates a dry-run adapter for a platform.
func NewDryRunAdapter(p core.Platform, logger logging.Logger) *DryRunAdapter {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	return &DryRunAdapter{platform: p, logger: logger}
}

// Post implements Adapter.
func (a *DryRunAdapter) Post(ctx context.Context, content string) (*core.PostResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	a.logger.Info("dry-run post", "platform", a.platform.String(), "content", content)
	return &core.PostResult{
		ID:        core.NewID(),
		Platform:  a.platform,
		Timestamp: time.Now().UTC(),
	}, nil
}

// IsAuthenticated implements Adapter; a dry-run adapter is always "authenticated".
func (a *DryRunAdapter) IsAuthenticated() bool { return true }
