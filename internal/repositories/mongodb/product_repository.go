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

type productMetaRepository struct {
	collection *mongo.Collection
}

func NewProductMetaRepository(db *mongo.Database) interfaces.ProductMetaRepository {
	return &productMetaRepository{
		collection: db.Collection(database.CollectionProductMeta),
	}
}

func (r *productMetaRepository) GetMeta(ctx context.Context, productID, key string) (string, bool, error) {
	var meta models.ProductMeta
	err := r.collection.FindOne(ctx, bson.M{"_id": productID}).Decode(&meta)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get product meta: %w", err)
	}

	value, ok := meta.Meta[key]
	return value, ok, nil
}

func (r *productMetaRepository) SetMeta(ctx context.Context, productID, key, value string) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": productID},
		bson.M{"$set": bson.M{metaField(key): value, "updated_at": time.Now()}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to set product meta: %w", err)
	}
	return nil
}

func (r *productMetaRepository) DeleteMeta(ctx context.Context, productID, key string) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": productID},
		bson.M{
			"$unset": bson.M{metaField(key): ""},
			"$set":   bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to delete product meta: %w", err)
	}
	return nil
}

func metaField(key string) string {
	return "meta." + key
}
