package submissions

import (
	"class-registration-service/internal/app/contracts"
	"class-registration-service/internal/app/models"
	"class-registration-service/internal/pkg/constvars"
	"class-registration-service/internal/pkg/exceptions"
	"context"

	"github.com/goccy/go-json"
)

// redisOutbox is a FIFO Redis list of submissions waiting to be retried.
type redisOutbox struct {
	redisRepo contracts.RedisRepository
	key       string
	deadKey   string
}

func NewRedisOutbox(redisRepo contracts.RedisRepository) contracts.SubmissionOutbox {
	return &redisOutbox{
		redisRepo: redisRepo,
		key:       constvars.RedisKeySubmissionOutbox,
		deadKey:   constvars.RedisKeySubmissionDeadQueue,
	}
}

func (o *redisOutbox) Enqueue(ctx context.Context, item *models.QueuedSubmission) error {
	return o.push(ctx, o.key, item)
}

// Dequeue pops the oldest submission. A value that does not decode is moved
// to the dead queue as is and the next one is tried.
func (o *redisOutbox) Dequeue(ctx context.Context) (*models.QueuedSubmission, error) {
	for {
		value, err := o.redisRepo.PopFromList(ctx, o.key)
		if err != nil {
			return nil, err
		}
		if value == "" {
			return nil, nil
		}

		item := new(models.QueuedSubmission)
		if err := json.Unmarshal([]byte(value), item); err == nil {
			return item, nil
		}
		if err := o.redisRepo.PushToList(ctx, o.deadKey, value); err != nil {
			return nil, err
		}
	}
}

func (o *redisOutbox) DeadLetter(ctx context.Context, item *models.QueuedSubmission) error {
	return o.push(ctx, o.deadKey, item)
}

func (o *redisOutbox) Length(ctx context.Context) (int64, error) {
	return o.redisRepo.ListLength(ctx, o.key)
}

func (o *redisOutbox) push(ctx context.Context, key string, item *models.QueuedSubmission) error {
	value, err := json.Marshal(item)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}
	return o.redisRepo.PushToList(ctx, key, string(value))
}
