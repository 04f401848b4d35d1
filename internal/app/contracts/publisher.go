package contracts

import (
	"class-registration-service/internal/app/models"
	"context"
)

type EventPublisher interface {
	Publish(ctx context.Context, event *models.RegistrationEvent) error
}
