package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"referralbridge/internal/models"
	"referralbridge/internal/repositories/interfaces"
	"referralbridge/pkg/database"
)

type visitRepository struct {
	collection *mongo.Collection
}

func NewVisitRepository(db *mongo.Database) interfaces.VisitRepository {
	return &visitRepository{
		collection: db.Collection(database.CollectionVisits),
	}
}

func (r *visitRepository) GetByToken(ctx context.Context, token string) (*models.Visit, error) {
	var visit models.Visit
	err := r.collection.FindOne(ctx, bson.M{"token": token}).Decode(&visit)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("visit: %w", interfaces.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get visit: %w", err)
	}
	return &visit, nil
}
