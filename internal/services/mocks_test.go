package services

import (
	"context"
	"fmt"
	"time"

	"github.com/stretchr/testify/mock"

	"referralbridge/internal/models"
	"referralbridge/internal/repositories/interfaces"
	"referralbridge/internal/utils"
	"referralbridge/pkg/publisher"
	"referralbridge/pkg/storage"
)

type mockOrderRepo struct{ mock.Mock }

func (m *mockOrderRepo) Save(ctx context.Context, order *models.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *mockOrderRepo) GetByID(ctx context.Context, id string) (*models.Order, error) {
	args := m.Called(ctx, id)
	if o := args.Get(0); o != nil {
		return o.(*models.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockOrderRepo) AddNote(ctx context.Context, id string, note string) error {
	return m.Called(ctx, id, note).Error(0)
}

func (m *mockOrderRepo) GetNotes(ctx context.Context, id string) ([]*models.OrderNote, error) {
	args := m.Called(ctx, id)
	return args.Get(0).([]*models.OrderNote), args.Error(1)
}

type mockCouponRepo struct{ mock.Mock }

func (m *mockCouponRepo) GetAffiliateForCode(ctx context.Context, code string) (string, error) {
	args := m.Called(ctx, code)
	return args.String(0), args.Error(1)
}

func (m *mockCouponRepo) SetAffiliateForCode(ctx context.Context, code string, affiliateID string) error {
	return m.Called(ctx, code, affiliateID).Error(0)
}

type mockAffiliateRepo struct{ mock.Mock }

func (m *mockAffiliateRepo) result(args mock.Arguments) (*models.Affiliate, error) {
	if a := args.Get(0); a != nil {
		return a.(*models.Affiliate), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAffiliateRepo) GetByID(ctx context.Context, id string) (*models.Affiliate, error) {
	return m.result(m.Called(ctx, id))
}

func (m *mockAffiliateRepo) GetByUserID(ctx context.Context, userID string) (*models.Affiliate, error) {
	return m.result(m.Called(ctx, userID))
}

func (m *mockAffiliateRepo) GetByUserLogin(ctx context.Context, login string) (*models.Affiliate, error) {
	return m.result(m.Called(ctx, login))
}

type mockReferralRepo struct{ mock.Mock }

func (m *mockReferralRepo) Create(ctx context.Context, referral *models.Referral) error {
	return m.Called(ctx, referral).Error(0)
}

func (m *mockReferralRepo) GetByReference(ctx context.Context, reference, referralContext string) (*models.Referral, error) {
	args := m.Called(ctx, reference, referralContext)
	if r := args.Get(0); r != nil {
		return r.(*models.Referral), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockReferralRepo) SetStatusByReference(ctx context.Context, reference, referralContext string, status models.ReferralStatus) (bool, error) {
	args := m.Called(ctx, reference, referralContext, status)
	return args.Bool(0), args.Error(1)
}

func (m *mockReferralRepo) List(ctx context.Context, filter *models.ReferralFilter, params *utils.PaginationParams) ([]*models.Referral, int64, error) {
	args := m.Called(ctx, filter, params)
	return args.Get(0).([]*models.Referral), args.Get(1).(int64), args.Error(2)
}

func (m *mockReferralRepo) Iterate(ctx context.Context, filter *models.ReferralFilter, fn func(*models.Referral) error) error {
	args := m.Called(ctx, filter, fn)
	if rows, ok := args.Get(0).([]*models.Referral); ok {
		for _, r := range rows {
			if err := fn(r); err != nil {
				return err
			}
		}
	}
	return args.Error(1)
}

type mockProductMetaRepo struct{ mock.Mock }

func (m *mockProductMetaRepo) GetMeta(ctx context.Context, productID, key string) (string, bool, error) {
	args := m.Called(ctx, productID, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *mockProductMetaRepo) SetMeta(ctx context.Context, productID, key, value string) error {
	return m.Called(ctx, productID, key, value).Error(0)
}

func (m *mockProductMetaRepo) DeleteMeta(ctx context.Context, productID, key string) error {
	return m.Called(ctx, productID, key).Error(0)
}

type mockSettingRepo struct{ mock.Mock }

func (m *mockSettingRepo) Get(ctx context.Context, key string) (*models.Setting, error) {
	args := m.Called(ctx, key)
	if s := args.Get(0); s != nil {
		return s.(*models.Setting), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSettingRepo) GetAll(ctx context.Context) ([]*models.Setting, error) {
	args := m.Called(ctx)
	if s := args.Get(0); s != nil {
		return s.([]*models.Setting), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSettingRepo) Set(ctx context.Context, key, value string) error {
	return m.Called(ctx, key, value).Error(0)
}

type mockVisitRepo struct{ mock.Mock }

func (m *mockVisitRepo) GetByToken(ctx context.Context, token string) (*models.Visit, error) {
	args := m.Called(ctx, token)
	if v := args.Get(0); v != nil {
		return v.(*models.Visit), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockTracking struct{ mock.Mock }

func (m *mockTracking) Resolve(ctx context.Context, token string) (*models.Visit, error) {
	args := m.Called(ctx, token)
	if v := args.Get(0); v != nil {
		return v.(*models.Visit), args.Error(1)
	}
	return nil, args.Error(1)
}

// stubSettings is a fixed SettingsService.
type stubSettings struct {
	ignoreZero  bool
	revoke      bool
	defaultRate float64
}

func (s *stubSettings) Get(ctx context.Context, key string) (string, bool, error) {
	return "", false, nil
}
func (s *stubSettings) IgnoreZeroReferrals(ctx context.Context) bool { return s.ignoreZero }
func (s *stubSettings) RevokeOnRefund(ctx context.Context) bool      { return s.revoke }
func (s *stubSettings) DefaultRate(ctx context.Context) (float64, error) {
	return s.defaultRate, nil
}
func (s *stubSettings) GetAll(ctx context.Context) (*models.AffiliateSettings, error) {
	return &models.AffiliateSettings{IgnoreZeroReferrals: s.ignoreZero, RevokeOnRefund: s.revoke, ReferralRate: s.defaultRate}, nil
}
func (s *stubSettings) Update(ctx context.Context, request *models.UpdateSettingsRequest) (*models.AffiliateSettings, error) {
	return s.GetAll(ctx)
}

// stubRates serves rates from maps keyed by id.
type stubRates struct {
	defaultRate float64
	affiliate   map[string]float64
	product     map[string]float64
}

func (s *stubRates) DefaultRate(ctx context.Context) (float64, error) { return s.defaultRate, nil }

func (s *stubRates) AffiliateRate(ctx context.Context, id string) (*float64, error) {
	if r, ok := s.affiliate[id]; ok {
		return &r, nil
	}
	return nil, nil
}

func (s *stubRates) ProductRate(ctx context.Context, id string) (*float64, error) {
	if r, ok := s.product[id]; ok {
		return &r, nil
	}
	return nil, nil
}

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) Publish(ctx context.Context, event *publisher.Event) error {
	return m.Called(ctx, event).Error(0)
}

type mockCache struct{ mock.Mock }

func (m *mockCache) Get(ctx context.Context, key string, dest interface{}) error {
	return m.Called(ctx, key, dest).Error(0)
}

func (m *mockCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return m.Called(ctx, key, value, expiration).Error(0)
}

func (m *mockCache) Delete(ctx context.Context, keys ...string) error {
	return m.Called(ctx, keys).Error(0)
}

type mockStorage struct{ mock.Mock }

func (m *mockStorage) Upload(ctx context.Context, request *storage.UploadRequest) (*storage.UploadResponse, error) {
	args := m.Called(ctx, request)
	if r := args.Get(0); r != nil {
		return r.(*storage.UploadResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStorage) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *mockStorage) GetURL(ctx context.Context, key string, expiration time.Duration) (string, error) {
	args := m.Called(ctx, key, expiration)
	return args.String(0), args.Error(1)
}

func (m *mockStorage) ListFiles(ctx context.Context, prefix string) ([]*storage.FileInfo, error) {
	args := m.Called(ctx, prefix)
	return args.Get(0).([]*storage.FileInfo), args.Error(1)
}

var errNotFoundForTest = fmt.Errorf("affiliate: %w", interfaces.ErrNotFound)
