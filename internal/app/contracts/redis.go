package contracts

import (
	"context"
	"time"
)

type RedisRepository interface {
	Delete(ctx context.Context, key string) error
	Set(ctx context.Context, key string, value interface{}, exp time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Expire(ctx context.Context, key string, exp time.Duration) error
	PushToList(ctx context.Context, key string, values ...interface{}) error
	PopFromList(ctx context.Context, key string) (string, error)
	ListLength(ctx context.Context, key string) (int64, error)
	TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error)
	IncrementWithTTL(ctx context.Context, key string, exp time.Duration) (int, error)
}
