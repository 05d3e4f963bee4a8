package services

import (
	"context"
	"fmt"
	"time"

	"referralbridge/pkg/logger"
)

// CacheService is the JSON cache the services read through. Keys are
// namespaced with the configured prefix.
type CacheService interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// CacheBackend is satisfied by *cache.RedisCache.
type CacheBackend interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

type cacheService struct {
	backend    CacheBackend
	logger     *logger.Logger
	defaultTTL time.Duration
	keyPrefix  string
}

func NewCacheService(backend CacheBackend, log *logger.Logger, keyPrefix string, defaultTTL time.Duration) CacheService {
	return &cacheService{
		backend:    backend,
		logger:     log,
		keyPrefix:  keyPrefix,
		defaultTTL: defaultTTL,
	}
}

func (s *cacheService) Get(ctx context.Context, key string, dest interface{}) error {
	if err := s.backend.Get(ctx, s.buildKey(key), dest); err != nil {
		return fmt.Errorf("failed to get cache key %s: %w", key, err)
	}

	s.logger.WithField("cache_key", key).Debug("Cache hit")
	return nil
}

func (s *cacheService) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if expiration == 0 {
		expiration = s.defaultTTL
	}

	if err := s.backend.Set(ctx, s.buildKey(key), value, expiration); err != nil {
		return fmt.Errorf("failed to set cache key %s: %w", key, err)
	}

	s.logger.WithField("cache_key", key).
		WithField("expiration", expiration).
		Debug("Cache set")
	return nil
}

func (s *cacheService) Delete(ctx context.Context, keys ...string) error {
	fullKeys := make([]string, len(keys))
	for i, key := range keys {
		fullKeys[i] = s.buildKey(key)
	}

	if err := s.backend.Delete(ctx, fullKeys...); err != nil {
		return fmt.Errorf("failed to delete cache keys: %w", err)
	}

	s.logger.WithField("cache_keys", keys).Debug("Cache keys deleted")
	return nil
}

func (s *cacheService) buildKey(key string) string {
	if s.keyPrefix == "" {
		return key
	}
	return s.keyPrefix + ":" + key
}

func visitCacheKey(token string) string {
	return "visit:" + token
}

const settingsCacheKey = "settings"
