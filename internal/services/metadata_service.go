package services

import (
	"context"
	"fmt"

	"referralbridge/internal/models"
	"referralbridge/internal/repositories/interfaces"
	"referralbridge/pkg/logger"
)

// MetadataService is the admin write path for coupon and product metadata
// that the originator reads.
type MetadataService interface {
	AttachCouponAffiliate(ctx context.Context, code string, request *models.AttachCouponAffiliateRequest) error
	CouponAffiliate(ctx context.Context, code string) (string, error)
	SaveProductRate(ctx context.Context, productID string, request *models.SaveProductRateRequest) error
	ProductRate(ctx context.Context, productID string) (string, error)
}

type metadataService struct {
	couponRepo      interfaces.CouponRepository
	productMetaRepo interfaces.ProductMetaRepository
	affiliateRepo   interfaces.AffiliateRepository
	referralContext string
	logger          *logger.Logger
}

func NewMetadataService(
	referralContext string,
	couponRepo interfaces.CouponRepository,
	productMetaRepo interfaces.ProductMetaRepository,
	affiliateRepo interfaces.AffiliateRepository,
	log *logger.Logger,
) MetadataService {
	return &metadataService{
		couponRepo:      couponRepo,
		productMetaRepo: productMetaRepo,
		affiliateRepo:   affiliateRepo,
		referralContext: referralContext,
		logger:          log.WithField("service", "metadata"),
	}
}

// AttachCouponAffiliate stores the affiliate of the named user on the coupon.
// A user without an affiliate account detaches the coupon.
func (s *metadataService) AttachCouponAffiliate(ctx context.Context, code string, request *models.AttachCouponAffiliateRequest) error {
	if request.UserID == "" && request.UserName == "" {
		return nil
	}

	var (
		affiliate *models.Affiliate
		err       error
	)
	if request.UserID != "" {
		affiliate, err = s.affiliateRepo.GetByUserID(ctx, request.UserID)
	} else {
		affiliate, err = s.affiliateRepo.GetByUserLogin(ctx, request.UserName)
	}

	affiliateID := ""
	switch {
	case err == nil:
		affiliateID = affiliate.ID
	case isNotFound(err):
		s.logger.WithField("coupon", code).Info("No affiliate for user, detaching coupon")
	default:
		return fmt.Errorf("failed to resolve coupon affiliate: %w", err)
	}

	if err := s.couponRepo.SetAffiliateForCode(ctx, code, affiliateID); err != nil {
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"coupon":       code,
		"affiliate_id": affiliateID,
	}).Info("Coupon affiliate saved")
	return nil
}

func (s *metadataService) CouponAffiliate(ctx context.Context, code string) (string, error) {
	return s.couponRepo.GetAffiliateForCode(ctx, code)
}

func (s *metadataService) SaveProductRate(ctx context.Context, productID string, request *models.SaveProductRateRequest) error {
	rate, err := ParseRate(request.Rate)
	if err != nil {
		return err
	}

	key := models.ProductRateMetaKey(s.referralContext)
	if rate == "" {
		return s.productMetaRepo.DeleteMeta(ctx, productID, key)
	}
	return s.productMetaRepo.SetMeta(ctx, productID, key, rate)
}

func (s *metadataService) ProductRate(ctx context.Context, productID string) (string, error) {
	value, _, err := s.productMetaRepo.GetMeta(ctx, productID, models.ProductRateMetaKey(s.referralContext))
	return value, err
}
