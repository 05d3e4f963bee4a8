package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"referralbridge/internal/models"
	"referralbridge/internal/utils"
	"referralbridge/pkg/storage"
)

type mockIngestService struct{ mock.Mock }

func (m *mockIngestService) OrderCreated(ctx context.Context, payload *models.OrderCreatedPayload) error {
	return m.Called(ctx, payload).Error(0)
}

func (m *mockIngestService) StatusChanged(ctx context.Context, payload *models.OrderStatusPayload) error {
	return m.Called(ctx, payload).Error(0)
}

func (m *mockIngestService) Handle(ctx context.Context, message *models.OrderMessage) error {
	return m.Called(ctx, message).Error(0)
}

type mockReportService struct{ mock.Mock }

func (m *mockReportService) ListReferrals(ctx context.Context, filter *models.ReferralFilter, params *utils.PaginationParams) ([]*models.ReferralView, int64, error) {
	args := m.Called(ctx, filter, params)
	views, _ := args.Get(0).([]*models.ReferralView)
	return views, args.Get(1).(int64), args.Error(2)
}

func (m *mockReportService) ExportReferrals(ctx context.Context, request *models.ExportReferralsRequest) (*models.ReferralExport, error) {
	args := m.Called(ctx, request)
	export, _ := args.Get(0).(*models.ReferralExport)
	return export, args.Error(1)
}

func (m *mockReportService) ListExports(ctx context.Context) ([]*storage.FileInfo, error) {
	args := m.Called(ctx)
	files, _ := args.Get(0).([]*storage.FileInfo)
	return files, args.Error(1)
}

func (m *mockReportService) DeleteExport(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}

type mockSettingsService struct{ mock.Mock }

func (m *mockSettingsService) Get(ctx context.Context, key string) (string, bool, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *mockSettingsService) IgnoreZeroReferrals(ctx context.Context) bool {
	return m.Called(ctx).Bool(0)
}

func (m *mockSettingsService) RevokeOnRefund(ctx context.Context) bool {
	return m.Called(ctx).Bool(0)
}

func (m *mockSettingsService) DefaultRate(ctx context.Context) (float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(float64), args.Error(1)
}

func (m *mockSettingsService) GetAll(ctx context.Context) (*models.AffiliateSettings, error) {
	args := m.Called(ctx)
	settings, _ := args.Get(0).(*models.AffiliateSettings)
	return settings, args.Error(1)
}

func (m *mockSettingsService) Update(ctx context.Context, request *models.UpdateSettingsRequest) (*models.AffiliateSettings, error) {
	args := m.Called(ctx, request)
	settings, _ := args.Get(0).(*models.AffiliateSettings)
	return settings, args.Error(1)
}

type mockMetadataService struct{ mock.Mock }

func (m *mockMetadataService) AttachCouponAffiliate(ctx context.Context, code string, request *models.AttachCouponAffiliateRequest) error {
	return m.Called(ctx, code, request).Error(0)
}

func (m *mockMetadataService) CouponAffiliate(ctx context.Context, code string) (string, error) {
	args := m.Called(ctx, code)
	return args.String(0), args.Error(1)
}

func (m *mockMetadataService) SaveProductRate(ctx context.Context, productID string, request *models.SaveProductRateRequest) error {
	return m.Called(ctx, productID, request).Error(0)
}

func (m *mockMetadataService) ProductRate(ctx context.Context, productID string) (string, error) {
	args := m.Called(ctx, productID)
	return args.String(0), args.Error(1)
}

type stubPinger struct{ err error }

func (s stubPinger) Ping(ctx context.Context) error { return s.err }
