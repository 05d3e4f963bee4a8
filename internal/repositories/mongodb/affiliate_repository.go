package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"referralbridge/internal/models"
	"referralbridge/internal/repositories/interfaces"
	"referralbridge/pkg/database"
)

const affiliateCacheTTL = 10 * time.Minute

type affiliateRepository struct {
	collection *mongo.Collection
	cache      CacheService
}

func NewAffiliateRepository(db *mongo.Database, cache CacheService) interfaces.AffiliateRepository {
	return &affiliateRepository{
		collection: db.Collection(database.CollectionAffiliates),
		cache:      cache,
	}
}

func (r *affiliateRepository) GetByID(ctx context.Context, id string) (*models.Affiliate, error) {
	cacheKey := fmt.Sprintf("affiliate:%s", id)
	if r.cache != nil {
		var affiliate models.Affiliate
		if err := r.cache.Get(ctx, cacheKey, &affiliate); err == nil {
			return &affiliate, nil
		}
	}

	affiliate, err := r.findOne(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, err
	}

	if r.cache != nil {
		_ = r.cache.Set(ctx, cacheKey, affiliate, affiliateCacheTTL)
	}
	return affiliate, nil
}

func (r *affiliateRepository) GetByUserID(ctx context.Context, userID string) (*models.Affiliate, error) {
	return r.findOne(ctx, bson.M{"user_id": userID})
}

func (r *affiliateRepository) GetByUserLogin(ctx context.Context, login string) (*models.Affiliate, error) {
	return r.findOne(ctx, bson.M{"user_login": login})
}

func (r *affiliateRepository) findOne(ctx context.Context, filter bson.M) (*models.Affiliate, error) {
	var affiliate models.Affiliate
	err := r.collection.FindOne(ctx, filter).Decode(&affiliate)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("affiliate: %w", interfaces.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get affiliate: %w", err)
	}
	return &affiliate, nil
}
