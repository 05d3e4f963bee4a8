package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"referralbridge/internal/config"
	"referralbridge/internal/models"
	"referralbridge/internal/repositories/interfaces"
	"referralbridge/pkg/logger"
)

// SettingsService reads the affiliate program settings. Stored values win
// over the configured defaults.
type SettingsService interface {
	Get(ctx context.Context, key string) (string, bool, error)
	IgnoreZeroReferrals(ctx context.Context) bool
	RevokeOnRefund(ctx context.Context) bool
	DefaultRate(ctx context.Context) (float64, error)
	GetAll(ctx context.Context) (*models.AffiliateSettings, error)
	Update(ctx context.Context, request *models.UpdateSettingsRequest) (*models.AffiliateSettings, error)
}

type settingsService struct {
	settingRepo interfaces.SettingRepository
	cache       CacheService
	defaults    *config.AffiliateConfig
	logger      *logger.Logger
}

func NewSettingsService(settingRepo interfaces.SettingRepository, cache CacheService, defaults *config.AffiliateConfig, log *logger.Logger) SettingsService {
	return &settingsService{
		settingRepo: settingRepo,
		cache:       cache,
		defaults:    defaults,
		logger:      log.WithField("service", "settings"),
	}
}

func (s *settingsService) Get(ctx context.Context, key string) (string, bool, error) {
	values, err := s.load(ctx)
	if err != nil {
		return "", false, err
	}
	value, ok := values[key]
	return value, ok, nil
}

func (s *settingsService) IgnoreZeroReferrals(ctx context.Context) bool {
	return s.flag(ctx, models.SettingIgnoreZeroReferrals, s.defaults.IgnoreZeroReferrals)
}

func (s *settingsService) RevokeOnRefund(ctx context.Context) bool {
	return s.flag(ctx, models.SettingRevokeOnRefund, s.defaults.RevokeOnRefund)
}

func (s *settingsService) DefaultRate(ctx context.Context) (float64, error) {
	value, ok, err := s.Get(ctx, models.SettingReferralRate)
	if err != nil {
		s.logger.WithError(err).Warn("Falling back to configured referral rate")
		return s.defaults.DefaultRate, nil
	}
	if !ok || strings.TrimSpace(value) == "" {
		return s.defaults.DefaultRate, nil
	}

	rate, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || rate < 0 {
		s.logger.WithField("referral_rate", value).Warn("Stored referral rate unusable, using configured rate")
		return s.defaults.DefaultRate, nil
	}
	return rate, nil
}

func (s *settingsService) GetAll(ctx context.Context) (*models.AffiliateSettings, error) {
	rate, err := s.DefaultRate(ctx)
	if err != nil {
		return nil, err
	}

	return &models.AffiliateSettings{
		IgnoreZeroReferrals: s.IgnoreZeroReferrals(ctx),
		RevokeOnRefund:      s.RevokeOnRefund(ctx),
		ReferralRate:        rate,
	}, nil
}

func (s *settingsService) Update(ctx context.Context, request *models.UpdateSettingsRequest) (*models.AffiliateSettings, error) {
	updates := map[string]string{}
	if request.IgnoreZeroReferrals != nil {
		updates[models.SettingIgnoreZeroReferrals] = strconv.FormatBool(*request.IgnoreZeroReferrals)
	}
	if request.RevokeOnRefund != nil {
		updates[models.SettingRevokeOnRefund] = strconv.FormatBool(*request.RevokeOnRefund)
	}
	if request.ReferralRate != nil {
		rate, err := ParseRate(*request.ReferralRate)
		if err != nil {
			return nil, err
		}
		updates[models.SettingReferralRate] = rate
	}

	for key, value := range updates {
		if err := s.settingRepo.Set(ctx, key, value); err != nil {
			return nil, err
		}
	}

	if len(updates) > 0 && s.cache != nil {
		if err := s.cache.Delete(ctx, settingsCacheKey); err != nil {
			s.logger.WithError(err).Warn("Failed to invalidate settings cache")
		}
	}

	return s.GetAll(ctx)
}

func (s *settingsService) flag(ctx context.Context, key string, fallback bool) bool {
	value, ok, err := s.Get(ctx, key)
	if err != nil {
		s.logger.WithError(err).WithField("setting", key).Warn("Falling back to configured setting")
		return fallback
	}
	if !ok {
		return fallback
	}

	enabled, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return value != "" && value != "0"
	}
	return enabled
}

func (s *settingsService) load(ctx context.Context) (map[string]string, error) {
	if s.cache != nil {
		var cached map[string]string
		if err := s.cache.Get(ctx, settingsCacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	settings, err := s.settingRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	values := make(map[string]string, len(settings))
	for _, setting := range settings {
		values[setting.Key] = setting.Value
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, settingsCacheKey, values, s.defaults.SettingsCacheTTL); err != nil {
			s.logger.WithError(err).Warn("Failed to cache settings")
		}
	}

	return values, nil
}

// ParseRate normalizes rate text. It returns the trimmed text, "" for blank
// input, and ErrInvalidRate for anything that is not a non-negative number.
func ParseRate(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", nil
	}

	rate, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || rate < 0 {
		return "", fmt.Errorf("%w: %q", ErrInvalidRate, raw)
	}
	return trimmed, nil
}

