package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"referralbridge/internal/models"
	"referralbridge/internal/services"
	"referralbridge/internal/utils"
	"referralbridge/pkg/logger"
	"referralbridge/pkg/storage"
)

type adminFixture struct {
	reports  *mockReportService
	settings *mockSettingsService
	metadata *mockMetadataService
	router   *gin.Engine
}

func newAdminFixture() *adminFixture {
	f := &adminFixture{
		reports:  &mockReportService{},
		settings: &mockSettingsService{},
		metadata: &mockMetadataService{},
	}
	h := NewAdminHandler(f.reports, f.settings, f.metadata, logger.NewNop())

	r := gin.New()
	r.GET("/referrals", h.ListReferrals)
	r.POST("/referrals/export", h.ExportReferrals)
	r.GET("/referrals/exports", h.ListExports)
	r.DELETE("/referrals/exports/:name", h.DeleteExport)
	r.GET("/settings", h.GetSettings)
	r.PUT("/settings", h.UpdateSettings)
	r.GET("/coupons/:code/affiliate", h.GetCouponAffiliate)
	r.PUT("/coupons/:code/affiliate", h.AttachCouponAffiliate)
	r.GET("/products/:id/rate", h.GetProductRate)
	r.PUT("/products/:id/rate", h.SaveProductRate)
	f.router = r
	return f
}

func TestListReferrals(t *testing.T) {
	f := newAdminFixture()
	views := []*models.ReferralView{{
		Referral: &models.Referral{
			ID:          primitive.NewObjectID(),
			AffiliateID: "7",
			Amount:      12.5,
			Reference:   "1042",
			Context:     "woocommerce",
			Status:      models.ReferralStatusPending,
		},
		ReferenceLink: `<a href="https://shop.example.com/post.php?post=1042&action=edit">1042</a>`,
	}}
	f.reports.On("ListReferrals", mock.Anything,
		&models.ReferralFilter{AffiliateID: "7", Status: models.ReferralStatusPending},
		mock.MatchedBy(func(p *utils.PaginationParams) bool { return p.Page == 2 && p.PageSize == 10 }),
	).Return(views, int64(11), nil).Once()

	w := doJSON(f.router, http.MethodGet, "/referrals?affiliate_id=7&status=pending&page=2&page_size=10", "")

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, int64(11), resp.Meta.Total)
	assert.Equal(t, 1, resp.Meta.Count)
	assert.Equal(t, 2, resp.Meta.Pagination.TotalPages)
	f.reports.AssertExpectations(t)
}

func TestListReferralsRejectsUnknownStatus(t *testing.T) {
	f := newAdminFixture()

	w := doJSON(f.router, http.MethodGet, "/referrals?status=approved", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	f.reports.AssertNotCalled(t, "ListReferrals", mock.Anything, mock.Anything, mock.Anything)
}

func TestExportReferrals(t *testing.T) {
	f := newAdminFixture()
	export := &models.ReferralExport{ExportID: "e1", Key: "exports/referrals/x.csv", Rows: 3, CreatedAt: time.Now()}
	f.reports.On("ExportReferrals", mock.Anything, &models.ExportReferralsRequest{Status: models.ReferralStatusPaid}).
		Return(export, nil).Once()

	w := doJSON(f.router, http.MethodPost, "/referrals/export", `{"status":"paid"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	f.reports.AssertExpectations(t)
}

func TestExportReferralsWithoutBody(t *testing.T) {
	f := newAdminFixture()
	f.reports.On("ExportReferrals", mock.Anything, &models.ExportReferralsRequest{}).
		Return(nil, errors.New("bucket missing")).Once()

	req := httptest.NewRequest(http.MethodPost, "/referrals/export", nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "EXPORT_FAILED", decodeResponse(t, w).Error.Code)
}

func TestListExports(t *testing.T) {
	f := newAdminFixture()
	f.reports.On("ListExports", mock.Anything).Return([]*storage.FileInfo{{Key: "exports/referrals/a.csv"}}, nil).Once()

	w := doJSON(f.router, http.MethodGet, "/referrals/exports", "")

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDeleteExport(t *testing.T) {
	f := newAdminFixture()
	f.reports.On("DeleteExport", mock.Anything, "20240301T100000-abc.csv").Return(nil).Once()

	w := doJSON(f.router, http.MethodDelete, "/referrals/exports/20240301T100000-abc.csv", "")

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
	f.reports.AssertExpectations(t)
}

func TestDeleteExportErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"invalid name", fmt.Errorf("%w: %q", services.ErrInvalidExportName, "notes.txt"), http.StatusBadRequest},
		{"storage failure", errors.New("access denied"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAdminFixture()
			f.reports.On("DeleteExport", mock.Anything, "notes.txt").Return(tt.err).Once()

			w := doJSON(f.router, http.MethodDelete, "/referrals/exports/notes.txt", "")

			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}

func TestUpdateSettings(t *testing.T) {
	f := newAdminFixture()
	f.settings.On("Update", mock.Anything, mock.MatchedBy(func(r *models.UpdateSettingsRequest) bool {
		return r.RevokeOnRefund != nil && *r.RevokeOnRefund && r.IgnoreZeroReferrals == nil &&
			r.ReferralRate != nil && *r.ReferralRate == "15"
	})).Return(&models.AffiliateSettings{RevokeOnRefund: true, ReferralRate: 15}, nil).Once()

	w := doJSON(f.router, http.MethodPut, "/settings", `{"revoke_on_refund": true, "referral_rate": "15"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	f.settings.AssertExpectations(t)
}

func TestUpdateSettingsRejectsNegativeRate(t *testing.T) {
	f := newAdminFixture()

	w := doJSON(f.router, http.MethodPut, "/settings", `{"referral_rate": "-3"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	f.settings.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestGetSettingsFailure(t *testing.T) {
	f := newAdminFixture()
	f.settings.On("GetAll", mock.Anything).Return(nil, errors.New("boom")).Once()

	w := doJSON(f.router, http.MethodGet, "/settings", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestAttachCouponAffiliate(t *testing.T) {
	f := newAdminFixture()
	f.metadata.On("AttachCouponAffiliate", mock.Anything, "SUMMER10", &models.AttachCouponAffiliateRequest{UserName: "jane"}).
		Return(nil).Once()
	f.metadata.On("CouponAffiliate", mock.Anything, "SUMMER10").Return("7", nil).Once()

	w := doJSON(f.router, http.MethodPut, "/coupons/SUMMER10/affiliate", `{"user_name":"jane"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w).Data.(map[string]interface{})
	assert.Equal(t, "7", data["affiliate_id"])
	f.metadata.AssertExpectations(t)
}

func TestGetCouponAffiliate(t *testing.T) {
	f := newAdminFixture()
	f.metadata.On("CouponAffiliate", mock.Anything, "SUMMER10").Return("7", nil).Once()
	f.metadata.On("CouponAffiliate", mock.Anything, "NONE").Return("", nil).Once()

	w := doJSON(f.router, http.MethodGet, "/coupons/SUMMER10/affiliate", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(f.router, http.MethodGet, "/coupons/NONE/affiliate", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", decodeResponse(t, w).Error.Code)
}

func TestGetProductRateWithoutOverride(t *testing.T) {
	f := newAdminFixture()
	f.metadata.On("ProductRate", mock.Anything, "p2").Return("", nil).Once()

	w := doJSON(f.router, http.MethodGet, "/products/p2/rate", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Product rate not found", decodeResponse(t, w).Error.Message)
}

func TestSaveProductRateClearsOverride(t *testing.T) {
	f := newAdminFixture()
	f.metadata.On("SaveProductRate", mock.Anything, "p1", &models.SaveProductRateRequest{Rate: ""}).Return(nil).Once()
	f.metadata.On("ProductRate", mock.Anything, "p1").Return("", nil).Once()

	w := doJSON(f.router, http.MethodPut, "/products/p1/rate", `{"rate":""}`)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w).Data.(map[string]interface{})
	assert.Equal(t, "", data["rate"])
}

func TestSaveProductRate(t *testing.T) {
	f := newAdminFixture()
	f.metadata.On("SaveProductRate", mock.Anything, "p1", &models.SaveProductRateRequest{Rate: "12.5"}).Return(nil).Once()
	f.metadata.On("ProductRate", mock.Anything, "p1").Return("12.5", nil).Once()

	w := doJSON(f.router, http.MethodPut, "/products/p1/rate", `{"rate":"12.5"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	f.metadata.AssertExpectations(t)
}

func TestSaveProductRateRejectsText(t *testing.T) {
	f := newAdminFixture()

	w := doJSON(f.router, http.MethodPut, "/products/p1/rate", `{"rate":"ten"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	f.metadata.AssertNotCalled(t, "SaveProductRate", mock.Anything, mock.Anything, mock.Anything)
}

func TestHealth(t *testing.T) {
	r := gin.New()
	r.GET("/health", NewHealthHandler(map[string]Pinger{"mongodb": stubPinger{}}).Health)
	w := doJSON(r, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)

	r = gin.New()
	r.GET("/health", NewHealthHandler(map[string]Pinger{
		"mongodb": stubPinger{},
		"redis":   stubPinger{err: errors.New("refused")},
	}).Health)
	w = doJSON(r, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
