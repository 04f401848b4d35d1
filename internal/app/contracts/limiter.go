package contracts

import (
	"context"
	"time"
)

type LimitInput struct {
	Resource string
	Group    string
	Window   time.Duration
	MaxQuota int
	// Now defaults to time.Now when zero.
	Now time.Time
}

type LimitResult struct {
	Allowed    bool
	RetryAfter time.Duration
}

// ResourceLimiter counts hits per resource in fixed windows.
type ResourceLimiter interface {
	Allow(ctx context.Context, in *LimitInput) (*LimitResult, error)
}
