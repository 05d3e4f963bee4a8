package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"referralbridge/internal/commission"
	"referralbridge/internal/config"
	"referralbridge/internal/models"
	"referralbridge/internal/repositories/interfaces"
	"referralbridge/internal/utils"
	"referralbridge/pkg/logger"
	"referralbridge/pkg/publisher"
)

type Outcome string

const (
	OutcomeCreated           Outcome = "created"
	OutcomeNotReferred       Outcome = "not_referred"
	OutcomeSelfReferral      Outcome = "self_referral"
	OutcomeZeroAmountIgnored Outcome = "zero_amount_ignored"
	OutcomeCreateFailed      Outcome = "create_failed"
	OutcomeOrderUnavailable  Outcome = "order_unavailable"
)

type OriginationResult struct {
	Outcome     Outcome          `json:"outcome"`
	AffiliateID string           `json:"affiliate_id,omitempty"`
	Amount      float64          `json:"amount"`
	Referral    *models.Referral `json:"referral,omitempty"`
}

// ReferralService originates referrals for newly created orders.
type ReferralService interface {
	// AddPendingReferral decides whether the order was referred and records a
	// pending referral if so. Every failure degrades to an outcome; the
	// caller's order processing is never interrupted.
	AddPendingReferral(ctx context.Context, orderID string, tracking models.Tracking) *OriginationResult
}

type referralService struct {
	orderRepo       interfaces.OrderRepository
	couponRepo      interfaces.CouponRepository
	affiliateRepo   interfaces.AffiliateRepository
	referralRepo    interfaces.ReferralRepository
	tracking        TrackingService
	settings        SettingsService
	rates           *commission.Resolver
	notifier        *notifier
	referralContext string
	currency        string
	logger          *logger.Logger
}

func NewReferralService(
	cfg *config.AffiliateConfig,
	orderRepo interfaces.OrderRepository,
	couponRepo interfaces.CouponRepository,
	affiliateRepo interfaces.AffiliateRepository,
	referralRepo interfaces.ReferralRepository,
	tracking TrackingService,
	settings SettingsService,
	rates commission.RateSource,
	pub publisher.Publisher,
	log *logger.Logger,
) ReferralService {
	log = log.WithField("service", "referral")
	return &referralService{
		orderRepo:       orderRepo,
		couponRepo:      couponRepo,
		affiliateRepo:   affiliateRepo,
		referralRepo:    referralRepo,
		tracking:        tracking,
		settings:        settings,
		rates:           commission.NewResolver(rates),
		notifier:        newNotifier(pub, log),
		referralContext: cfg.Context,
		currency:        cfg.Currency,
		logger:          log,
	}
}

func (s *referralService) AddPendingReferral(ctx context.Context, orderID string, tracking models.Tracking) *OriginationResult {
	log := s.logger.WithOrderID(orderID).WithContext(ctx)

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		log.WithError(err).Warn("Order unavailable, no referral recorded")
		return &OriginationResult{Outcome: OutcomeOrderUnavailable}
	}

	affiliateID, visitID := s.visitAffiliate(ctx, tracking, log)
	if couponAffiliate := s.couponAffiliate(ctx, order, log); couponAffiliate != "" {
		affiliateID = couponAffiliate
	}

	if affiliateID == "" {
		log.Debug("Order was not referred")
		return &OriginationResult{Outcome: OutcomeNotReferred}
	}

	result := &OriginationResult{AffiliateID: affiliateID}

	affiliate, err := s.affiliateRepo.GetByID(ctx, affiliateID)
	if err != nil {
		log.WithError(err).WithField("affiliate_id", affiliateID).Warn("Affiliate lookup failed")
		affiliate = &models.Affiliate{ID: affiliateID}
	}

	// A missing affiliate has an empty email, so an order without a billing
	// email is also treated as a self-referral.
	if affiliate.Email == order.Billing.Email {
		log.WithField("affiliate_id", affiliateID).Info("Self-referral ignored")
		result.Outcome = OutcomeSelfReferral
		return result
	}

	result.Amount = commission.Amount(order, s.rates.ForAffiliate(ctx, affiliateID))

	if result.Amount == 0 && s.settings.IgnoreZeroReferrals(ctx) {
		log.WithField("affiliate_id", affiliateID).Info("Zero amount referral ignored")
		result.Outcome = OutcomeZeroAmountIgnored
		return result
	}

	referral := &models.Referral{
		AffiliateID: affiliateID,
		VisitID:     visitID,
		Amount:      result.Amount,
		Reference:   order.ID,
		Description: describe(order),
		Context:     s.referralContext,
		Status:      models.ReferralStatusPending,
	}

	if err := s.referralRepo.Create(ctx, referral); err != nil {
		entry := log.WithError(err).WithField("affiliate_id", affiliateID)
		if errors.Is(err, interfaces.ErrDuplicateReferral) {
			entry.Info("Referral already recorded for order")
		} else {
			entry.Error("Failed to create referral")
		}
		result.Outcome = OutcomeCreateFailed
		return result
	}

	result.Outcome = OutcomeCreated
	result.Referral = referral

	note := fmt.Sprintf("Referral #%s for %s recorded for %s",
		referral.ID.Hex(),
		utils.FormatCurrency(referral.Amount, s.orderCurrency(order)),
		affiliate.DisplayName(),
	)
	if err := s.orderRepo.AddNote(ctx, order.ID, note); err != nil {
		log.WithError(err).Warn("Failed to add referral note to order")
	}

	log.LogReferralEvent(order.ID, EventReferralCreated, map[string]interface{}{
		"referral_id":  referral.ID.Hex(),
		"affiliate_id": affiliateID,
		"amount":       referral.Amount,
	})
	s.notifier.referralCreated(ctx, referral)

	return result
}

func (s *referralService) visitAffiliate(ctx context.Context, tracking models.Tracking, log *logger.Logger) (affiliateID, visitID string) {
	visit, err := s.tracking.Resolve(ctx, tracking.VisitToken)
	if err != nil {
		log.WithError(err).Warn("Visit lookup failed")
		return "", ""
	}
	if visit == nil {
		return "", ""
	}
	return visit.AffiliateID, visit.ID
}

// couponAffiliate returns the affiliate of the first applied code that has
// one. Lookup errors skip the code.
func (s *referralService) couponAffiliate(ctx context.Context, order *models.Order, log *logger.Logger) string {
	for _, code := range order.CouponCodes() {
		affiliateID, err := s.couponRepo.GetAffiliateForCode(ctx, code)
		if err != nil {
			log.WithError(err).WithField("coupon", code).Warn("Coupon affiliate lookup failed")
			continue
		}
		if affiliateID != "" {
			return affiliateID
		}
	}
	return ""
}

func (s *referralService) orderCurrency(order *models.Order) string {
	if order.Currency != "" {
		return order.Currency
	}
	return s.currency
}

func describe(order *models.Order) string {
	names := make([]string, 0, len(order.LineItems))
	for _, item := range order.LineItems {
		names = append(names, item.Name)
	}
	return strings.Join(names, ", ")
}
