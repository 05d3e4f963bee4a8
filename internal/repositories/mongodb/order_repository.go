package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"referralbridge/internal/models"
	"referralbridge/internal/repositories/interfaces"
	"referralbridge/pkg/database"
)

type orderRepository struct {
	collection *mongo.Collection
	notes      *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) interfaces.OrderRepository {
	return &orderRepository{
		collection: db.Collection(database.CollectionOrders),
		notes:      db.Collection(database.CollectionOrderNotes),
	}
}

func (r *orderRepository) Save(ctx context.Context, order *models.Order) error {
	now := time.Now()
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
	}
	order.UpdatedAt = now

	_, err := r.collection.ReplaceOne(
		ctx,
		bson.M{"_id": order.ID},
		order,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to save order: %w", err)
	}
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("order %s: %w", id, interfaces.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &order, nil
}

func (r *orderRepository) AddNote(ctx context.Context, id string, note string) error {
	_, err := r.notes.InsertOne(ctx, &models.OrderNote{
		OrderID:   id,
		Note:      note,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return fmt.Errorf("failed to add order note: %w", err)
	}
	return nil
}

func (r *orderRepository) GetNotes(ctx context.Context, id string) ([]*models.OrderNote, error) {
	cursor, err := r.notes.Find(ctx, bson.M{"order_id": id}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to get order notes: %w", err)
	}
	defer cursor.Close(ctx)

	var notes []*models.OrderNote
	if err := cursor.All(ctx, &notes); err != nil {
		return nil, fmt.Errorf("failed to decode order notes: %w", err)
	}
	return notes, nil
}
