package submissions

import (
	"class-registration-service/internal/app/contracts"
	"class-registration-service/internal/app/models"
	"class-registration-service/internal/pkg/exceptions"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type AuditMongoRepository struct {
	Collection *mongo.Collection
}

func NewAuditMongoRepository(db *mongo.Client, dbName, collection string) contracts.SubmissionAuditRepository {
	return &AuditMongoRepository{
		Collection: db.Database(dbName).Collection(collection),
	}
}

func (r *AuditMongoRepository) Insert(ctx context.Context, audit *models.SubmissionAudit) error {
	audit.SetCreatedAtUpdatedAt()
	_, err := r.Collection.InsertOne(ctx, audit)
	if err != nil {
		return exceptions.ErrMongoDBInsertDocument(err)
	}
	return nil
}

func (r *AuditMongoRepository) UpdateStatus(ctx context.Context, submissionID, status string, attempts int, lastError string) error {
	update := bson.M{
		"$set": bson.M{
			"status":    status,
			"attempts":  attempts,
			"lastError": lastError,
			"updatedAt": time.Now(),
		},
	}
	_, err := r.Collection.UpdateByID(ctx, submissionID, update)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (r *AuditMongoRepository) FindByID(ctx context.Context, submissionID string) (*models.SubmissionAudit, error) {
	var audit models.SubmissionAudit
	err := r.Collection.FindOne(ctx, bson.M{"_id": submissionID}).Decode(&audit)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &audit, nil
}
