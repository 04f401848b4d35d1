package contracts

import (
	"class-registration-service/internal/app/models"
	"context"
)

type StudentRepository interface {
	FindByID(ctx context.Context, studentID string) (*models.Student, error)
	Update(ctx context.Context, studentID string, update *models.StudentUpdate) error
}
