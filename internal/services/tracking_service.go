package services

import (
	"context"
	"fmt"
	"time"

	"referralbridge/internal/models"
	"referralbridge/internal/repositories/interfaces"
	"referralbridge/pkg/logger"
)

// TrackingService resolves the visit that referred the customer.
type TrackingService interface {
	// Resolve returns the visit for token, or nil when the token is empty or
	// unknown.
	Resolve(ctx context.Context, token string) (*models.Visit, error)
}

type trackingService struct {
	visitRepo interfaces.VisitRepository
	cache     CacheService
	ttl       time.Duration
	logger    *logger.Logger
}

func NewTrackingService(visitRepo interfaces.VisitRepository, cache CacheService, ttl time.Duration, log *logger.Logger) TrackingService {
	return &trackingService{
		visitRepo: visitRepo,
		cache:     cache,
		ttl:       ttl,
		logger:    log.WithField("service", "tracking"),
	}
}

func (s *trackingService) Resolve(ctx context.Context, token string) (*models.Visit, error) {
	if token == "" {
		return nil, nil
	}

	if s.cache != nil {
		var visit models.Visit
		if err := s.cache.Get(ctx, visitCacheKey(token), &visit); err == nil {
			return &visit, nil
		}
	}

	visit, err := s.visitRepo.GetByToken(ctx, token)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to resolve visit: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, visitCacheKey(token), visit, s.ttl); err != nil {
			s.logger.WithError(err).Warn("Failed to cache visit")
		}
	}

	return visit, nil
}
