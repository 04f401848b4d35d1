package contracts

import (
	"class-registration-service/internal/app/models"
	"context"
)

// ClassCriteria are the student attributes a class has to match. An empty
// criterion matches any class.
type ClassCriteria struct {
	Product     string
	Level       string
	TeacherType string
}

type ClassRepository interface {
	FindByID(ctx context.Context, classID string) (*models.Class, error)
	FindOpenClasses(ctx context.Context, criteria ClassCriteria) ([]models.Class, error)
	UpdateEnrolled(ctx context.Context, classID string, enrolled int) error
}
