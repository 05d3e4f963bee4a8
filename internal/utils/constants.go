package utils

import "time"

// Application Constants
const (
	AppName    = "referralbridge"
	AppVersion = "1.0.0"

	DefaultCurrency = "USD"

	// Pagination
	DefaultPageSize  = 20
	MaxPageSize      = 100
	DefaultSortField = "created_at"
	MinPageSize      = 1

	// Gin context key holding the request id
	ContextRequestID = "request_id"

	// Webhooks
	WebhookSignatureHeader = "X-WC-Webhook-Signature"
	WebhookTopicHeader     = "X-WC-Webhook-Topic"
	MaxWebhookBodySize     = 1 << 20

	// Exports
	ExportKeyPrefix  = "exports/referrals/"
	ExportURLExpiry  = 24 * time.Hour
	ExportContentType = "text/csv"
)

// HTTP Status Messages
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Error Messages
const (
	ErrInvalidInput     = "invalid input"
	ErrInternalServer   = "internal server error"
	ErrUnauthorized     = "unauthorized"
	ErrForbidden        = "forbidden"
	ErrNotFound         = "not found"
	ErrValidationFailed = "validation failed"
	ErrInvalidSignature = "invalid webhook signature"
)
