package schedules

import (
	"class-registration-service/internal/app/contracts"
	"class-registration-service/internal/app/models"
	"class-registration-service/internal/pkg/constvars"
	"class-registration-service/internal/pkg/exceptions"
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

type redisSessionStore struct {
	redisRepo contracts.RedisRepository
}

func NewRedisSessionStore(redisRepo contracts.RedisRepository) contracts.ScheduleSessionStore {
	return &redisSessionStore{redisRepo: redisRepo}
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf(constvars.RedisKeyScheduleSession, sessionID)
}

func sessionLockKey(sessionID string) string {
	return fmt.Sprintf(constvars.RedisKeyScheduleSessionLock, sessionID)
}

func (s *redisSessionStore) Save(ctx context.Context, session *models.ScheduleSession, ttl time.Duration) error {
	return s.redisRepo.Set(ctx, sessionKey(session.ID), session, ttl)
}

func (s *redisSessionStore) Find(ctx context.Context, sessionID string) (*models.ScheduleSession, error) {
	value, err := s.redisRepo.Get(ctx, sessionKey(sessionID))
	if err != nil {
		return nil, err
	}
	if value == "" {
		return nil, exceptions.ErrScheduleSessionNotFound(nil, sessionID)
	}

	session := new(models.ScheduleSession)
	if err := json.Unmarshal([]byte(value), session); err != nil {
		return nil, exceptions.ErrCannotUnmarshalJSON(err)
	}
	return session, nil
}

func (s *redisSessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.redisRepo.Delete(ctx, sessionKey(sessionID))
}
