package services

import (
	"context"

	"referralbridge/internal/models"
	"referralbridge/internal/repositories/interfaces"
	"referralbridge/pkg/logger"
	"referralbridge/pkg/publisher"
)

// LifecycleService moves an order's referral forward when the order status
// changes. Each call issues its status request unconditionally; the store
// decides whether the referral can move.
type LifecycleService interface {
	Complete(ctx context.Context, orderID string) error
	Reject(ctx context.Context, orderID string) error
}

type lifecycleService struct {
	referralRepo    interfaces.ReferralRepository
	settings        SettingsService
	notifier        *notifier
	referralContext string
	logger          *logger.Logger
}

func NewLifecycleService(
	referralContext string,
	referralRepo interfaces.ReferralRepository,
	settings SettingsService,
	pub publisher.Publisher,
	log *logger.Logger,
) LifecycleService {
	log = log.WithField("service", "lifecycle")
	return &lifecycleService{
		referralRepo:    referralRepo,
		settings:        settings,
		notifier:        newNotifier(pub, log),
		referralContext: referralContext,
		logger:          log,
	}
}

func (s *lifecycleService) Complete(ctx context.Context, orderID string) error {
	return s.request(ctx, orderID, models.ReferralStatusPaid)
}

func (s *lifecycleService) Reject(ctx context.Context, orderID string) error {
	if !s.settings.RevokeOnRefund(ctx) {
		s.logger.WithOrderID(orderID).Debug("Revoke on refund disabled, referral kept")
		return nil
	}
	return s.request(ctx, orderID, models.ReferralStatusRejected)
}

func (s *lifecycleService) request(ctx context.Context, orderID string, status models.ReferralStatus) error {
	log := s.logger.WithOrderID(orderID).WithContext(ctx).WithField("status", status)

	updated, err := s.referralRepo.SetStatusByReference(ctx, orderID, s.referralContext, status)
	if err != nil {
		log.WithError(err).Error("Failed to request referral status change")
		return err
	}

	log.WithField("updated", updated).Info("Referral status requested")
	s.notifier.statusRequested(ctx, orderID, s.referralContext, status, updated)
	return nil
}
