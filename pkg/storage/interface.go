package storage

import (
	"context"
	"fmt"
	"io"
	"time"
)

// StorageProvider persists generated report files such as referral CSV
// exports.
type StorageProvider interface {
	Upload(ctx context.Context, request *UploadRequest) (*UploadResponse, error)
	Delete(ctx context.Context, key string) error
	GetURL(ctx context.Context, key string, expiration time.Duration) (string, error)
	ListFiles(ctx context.Context, prefix string) ([]*FileInfo, error)
}

type UploadRequest struct {
	Key          string            `json:"key"`
	Reader       io.Reader         `json:"-"`
	ContentType  string            `json:"content_type"`
	Size         int64             `json:"size"`
	Metadata     map[string]string `json:"metadata"`
	CacheControl string            `json:"cache_control"`
}

type UploadResponse struct {
	Key      string `json:"key"`
	URL      string `json:"url"`
	Size     int64  `json:"size"`
	ETag     string `json:"etag,omitempty"`
	Location string `json:"location,omitempty"`
}

type FileInfo struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	ContentType  string    `json:"content_type,omitempty"`
	LastModified time.Time `json:"last_modified"`
	ETag         string    `json:"etag,omitempty"`
	URL          string    `json:"url"`
}

type Config struct {
	Provider string // local, aws, gcp

	LocalBasePath string
	LocalBaseURL  string

	AWSRegion    string
	AWSBucket    string
	AWSCDNDomain string

	GCPProjectID       string
	GCPBucket          string
	GCPCredentialsFile string
	GCPCDNDomain       string
}

func NewProvider(ctx context.Context, cfg *Config) (StorageProvider, error) {
	switch cfg.Provider {
	case "aws", "s3":
		return NewAWSS3Storage(ctx, cfg.AWSRegion, cfg.AWSBucket, cfg.AWSCDNDomain)
	case "gcp", "gcs":
		return NewGCPStorage(ctx, cfg.GCPBucket, cfg.GCPCredentialsFile, cfg.GCPCDNDomain)
	case "local", "":
		return NewLocalStorage(cfg.LocalBasePath, cfg.LocalBaseURL)
	default:
		return nil, fmt.Errorf("unsupported storage provider: %s", cfg.Provider)
	}
}
