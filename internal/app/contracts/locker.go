package contracts

import (
	"context"
	"time"
)

// LockerService hands out short Redis locks. Enrollment locks one student and
// then one class. The retry worker holds a single lock for a whole pass and
// refreshes it between items.
type LockerService interface {
	// TryLock never waits. A false result means another holder owns key; the
	// returned token is needed to release or refresh.
	TryLock(ctx context.Context, key string, expiration time.Duration) (acquired bool, token string, err error)
	Unlock(ctx context.Context, key, token string) error
	// Refresh extends the TTL of a lock still owned by token.
	Refresh(ctx context.Context, key, token string, expiration time.Duration) error
}
