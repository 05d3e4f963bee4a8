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

type couponRepository struct {
	collection *mongo.Collection
}

func NewCouponRepository(db *mongo.Database) interfaces.CouponRepository {
	return &couponRepository{
		collection: db.Collection(database.CollectionCouponMeta),
	}
}

// GetAffiliateForCode treats an unknown code like a code without an affiliate.
func (r *couponRepository) GetAffiliateForCode(ctx context.Context, code string) (string, error) {
	var meta models.CouponMeta
	err := r.collection.FindOne(ctx, bson.M{"_id": code}).Decode(&meta)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get coupon affiliate: %w", err)
	}
	return meta.AffiliateID, nil
}

func (r *couponRepository) SetAffiliateForCode(ctx context.Context, code string, affiliateID string) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": code},
		bson.M{"$set": bson.M{
			models.CouponAffiliateMetaKey: affiliateID,
			"updated_at":                  time.Now(),
		}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to set coupon affiliate: %w", err)
	}
	return nil
}
