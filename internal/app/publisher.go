package app

import (
	"context"
	"fmt"

	"referralbridge/internal/config"
	"referralbridge/pkg/cache"
	"referralbridge/pkg/publisher"
	"referralbridge/pkg/storage"
)

// NewPublisher picks the lifecycle notification transport.
func NewPublisher(ctx context.Context, cfg *config.PublisherConfig, redis *cache.RedisCache) (publisher.Publisher, error) {
	switch cfg.Provider {
	case "none", "":
		return publisher.NopPublisher{}, nil
	case "sns":
		return publisher.NewSNSPublisher(ctx, cfg.Region, cfg.TopicARN)
	case "redis":
		return publisher.NewRedisPublisher(redis, cfg.RedisChannel), nil
	default:
		return nil, fmt.Errorf("unsupported publisher provider: %s", cfg.Provider)
	}
}

// NewStorage builds the export storage provider.
func NewStorage(ctx context.Context, cfg *config.StorageConfig) (storage.StorageProvider, error) {
	return storage.NewProvider(ctx, &storage.Config{
		Provider:           cfg.Provider,
		LocalBasePath:      cfg.Local.BasePath,
		LocalBaseURL:       cfg.Local.BaseURL,
		AWSRegion:          cfg.AWS.Region,
		AWSBucket:          cfg.AWS.Bucket,
		AWSCDNDomain:       cfg.AWS.CDNDomain,
		GCPProjectID:       cfg.GCP.ProjectID,
		GCPBucket:          cfg.GCP.Bucket,
		GCPCredentialsFile: cfg.GCP.CredentialsFile,
		GCPCDNDomain:       cfg.GCP.CDNDomain,
	})
}
