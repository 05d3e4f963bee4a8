package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"referralbridge/internal/commission"
	"referralbridge/internal/models"
	"referralbridge/internal/repositories/interfaces"
)

type rateSource struct {
	settings        SettingsService
	affiliateRepo   interfaces.AffiliateRepository
	productMetaRepo interfaces.ProductMetaRepository
	referralContext string
}

// NewRateSource reads the default rate from settings, the affiliate rate
// from the affiliate record and the product rate from product metadata.
func NewRateSource(
	settings SettingsService,
	affiliateRepo interfaces.AffiliateRepository,
	productMetaRepo interfaces.ProductMetaRepository,
	referralContext string,
) commission.RateSource {
	return &rateSource{
		settings:        settings,
		affiliateRepo:   affiliateRepo,
		productMetaRepo: productMetaRepo,
		referralContext: referralContext,
	}
}

func (r *rateSource) DefaultRate(ctx context.Context) (float64, error) {
	return r.settings.DefaultRate(ctx)
}

func (r *rateSource) AffiliateRate(ctx context.Context, affiliateID string) (*float64, error) {
	affiliate, err := r.affiliateRepo.GetByID(ctx, affiliateID)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return affiliate.Rate, nil
}

func (r *rateSource) ProductRate(ctx context.Context, productID string) (*float64, error) {
	value, ok, err := r.productMetaRepo.GetMeta(ctx, productID, models.ProductRateMetaKey(r.referralContext))
	if err != nil {
		return nil, err
	}
	value = strings.TrimSpace(value)
	if !ok || value == "" {
		return nil, nil
	}

	rate, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid product rate %q for product %s: %w", value, productID, err)
	}
	return &rate, nil
}
