package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"referralbridge/internal/models"
	"referralbridge/internal/repositories/interfaces"
	"referralbridge/internal/utils"
	"referralbridge/pkg/database"
)

type referralRepository struct {
	collection *mongo.Collection
}

func NewReferralRepository(db *mongo.Database) interfaces.ReferralRepository {
	return &referralRepository{
		collection: db.Collection(database.CollectionReferrals),
	}
}

func (r *referralRepository) Create(ctx context.Context, referral *models.Referral) error {
	referral.ID = primitive.NewObjectID()
	referral.CreatedAt = time.Now()
	referral.UpdatedAt = referral.CreatedAt
	if referral.Status == "" {
		referral.Status = models.ReferralStatusPending
	}

	_, err := r.collection.InsertOne(ctx, referral)
	if err != nil {
		referral.ID = primitive.NilObjectID
		if mongo.IsDuplicateKeyError(err) {
			return interfaces.ErrDuplicateReferral
		}
		return fmt.Errorf("failed to create referral: %w", err)
	}
	return nil
}

func (r *referralRepository) GetByReference(ctx context.Context, reference, referralContext string) (*models.Referral, error) {
	var referral models.Referral
	err := r.collection.FindOne(ctx, bson.M{"reference": reference, "context": referralContext}).Decode(&referral)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("referral for %s: %w", reference, interfaces.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get referral: %w", err)
	}
	return &referral, nil
}

func (r *referralRepository) SetStatusByReference(ctx context.Context, reference, referralContext string, status models.ReferralStatus) (bool, error) {
	from := allowedFromStatuses(status)
	if len(from) == 0 {
		return false, fmt.Errorf("unsupported referral status transition to %q", status)
	}

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{
			"reference": reference,
			"context":   referralContext,
			"status":    bson.M{"$in": from},
		},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}},
	)
	if err != nil {
		return false, fmt.Errorf("failed to update referral status: %w", err)
	}
	return result.ModifiedCount > 0, nil
}

func allowedFromStatuses(to models.ReferralStatus) []models.ReferralStatus {
	switch to {
	case models.ReferralStatusPaid:
		return []models.ReferralStatus{models.ReferralStatusPending, models.ReferralStatusUnpaid}
	case models.ReferralStatusRejected:
		return []models.ReferralStatus{models.ReferralStatusPending, models.ReferralStatusUnpaid, models.ReferralStatusPaid}
	}
	return nil
}

func (r *referralRepository) List(ctx context.Context, filter *models.ReferralFilter, params *utils.PaginationParams) ([]*models.Referral, int64, error) {
	query := buildReferralFilter(filter)
	if params.Search != "" {
		for k, v := range params.GetSearchFilter([]string{"description", "reference"}) {
			query[k] = v
		}
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count referrals: %w", err)
	}

	cursor, err := r.collection.Find(ctx, query, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list referrals: %w", err)
	}
	defer cursor.Close(ctx)

	var referrals []*models.Referral
	if err := cursor.All(ctx, &referrals); err != nil {
		return nil, 0, fmt.Errorf("failed to decode referrals: %w", err)
	}

	return referrals, total, nil
}

func (r *referralRepository) Iterate(ctx context.Context, filter *models.ReferralFilter, fn func(*models.Referral) error) error {
	cursor, err := r.collection.Find(ctx, buildReferralFilter(filter), options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return fmt.Errorf("failed to iterate referrals: %w", err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var referral models.Referral
		if err := cursor.Decode(&referral); err != nil {
			return fmt.Errorf("failed to decode referral: %w", err)
		}
		if err := fn(&referral); err != nil {
			return err
		}
	}
	return cursor.Err()
}

func buildReferralFilter(filter *models.ReferralFilter) bson.M {
	query := bson.M{}
	if filter == nil {
		return query
	}
	if filter.AffiliateID != "" {
		query["affiliate_id"] = filter.AffiliateID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Context != "" {
		query["context"] = filter.Context
	}
	if filter.Reference != "" {
		query["reference"] = filter.Reference
	}
	return query
}
