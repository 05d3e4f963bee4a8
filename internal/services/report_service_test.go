package services

import (
	"context"
	"encoding/csv"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"referralbridge/internal/config"
	"referralbridge/internal/models"
	"referralbridge/internal/utils"
	"referralbridge/pkg/logger"
	"referralbridge/pkg/storage"
)

func reportConfig() *config.AffiliateConfig {
	return &config.AffiliateConfig{
		Context:      "woocommerce",
		OrderEditURL: "https://shop.example/wp-admin/post.php?post={id}&action=edit",
	}
}

func TestReferenceLink(t *testing.T) {
	url := reportConfig().OrderEditURL

	link := ReferenceLink(&models.Referral{Reference: "1042", Context: "woocommerce"}, "woocommerce", url)
	assert.Equal(t, `<a href="https://shop.example/wp-admin/post.php?post=1042&amp;action=edit">1042</a>`, link)

	assert.Equal(t, "1042", ReferenceLink(&models.Referral{Reference: "1042", Context: "edd"}, "woocommerce", url))
	assert.Equal(t, "1042", ReferenceLink(&models.Referral{Reference: "1042"}, "woocommerce", url))
}

func TestListReferralsAddsReferenceLinks(t *testing.T) {
	referrals := &mockReferralRepo{}
	params := &utils.PaginationParams{Page: 1, PageSize: 20}
	filter := &models.ReferralFilter{Status: models.ReferralStatusPending}
	referrals.On("List", mock.Anything, filter, params).Return([]*models.Referral{
		{Reference: "1", Context: "woocommerce"},
		{Reference: "2", Context: "manual"},
	}, int64(2), nil)
	svc := NewReportService(reportConfig(), referrals, &mockStorage{}, logger.NewNop())

	views, total, err := svc.ListReferrals(context.Background(), filter, params)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Contains(t, views[0].ReferenceLink, "post=1")
	assert.Equal(t, "2", views[1].ReferenceLink)
}

func TestExportReferralsWritesCSV(t *testing.T) {
	referrals := &mockReferralRepo{}
	store := &mockStorage{}
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	rows := []*models.Referral{
		{ID: primitive.NewObjectID(), AffiliateID: "7", Amount: 12, Reference: "1042", Description: "Mug, Cap", Context: "woocommerce", Status: models.ReferralStatusPaid, CreatedAt: created},
		{ID: primitive.NewObjectID(), AffiliateID: "7", Amount: 8.5, Reference: "1043", Context: "woocommerce", Status: models.ReferralStatusPaid, VisitID: "v9", CreatedAt: created},
	}
	referrals.On("Iterate", mock.Anything, &models.ReferralFilter{AffiliateID: "7", Status: models.ReferralStatusPaid}, mock.Anything).Return(rows, nil)

	var uploaded string
	store.On("Upload", mock.Anything, mock.MatchedBy(func(r *storage.UploadRequest) bool {
		return strings.HasPrefix(r.Key, utils.ExportKeyPrefix+"20240301T120000-") && r.ContentType == "text/csv"
	})).Run(func(args mock.Arguments) {
		b, _ := io.ReadAll(args.Get(1).(*storage.UploadRequest).Reader)
		uploaded = string(b)
	}).Return(&storage.UploadResponse{}, nil)
	store.On("GetURL", mock.Anything, mock.Anything, utils.ExportURLExpiry).Return("https://signed.example/x.csv", nil)

	svc := NewReportService(reportConfig(), referrals, store, logger.NewNop()).(*reportService)
	svc.now = func() time.Time { return created }

	export, err := svc.ExportReferrals(context.Background(), &models.ExportReferralsRequest{AffiliateID: "7", Status: models.ReferralStatusPaid})
	require.NoError(t, err)
	assert.Equal(t, 2, export.Rows)
	assert.Equal(t, "https://signed.example/x.csv", export.URL)
	assert.NotEmpty(t, export.ExportID)

	records, err := csv.NewReader(strings.NewReader(uploaded)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, exportHeader, records[0])
	assert.Equal(t, []string{rows[0].ID.Hex(), "7", "12", "1042", "Mug, Cap", "woocommerce", "paid", "", "2024-03-01T12:00:00Z"}, records[1])
	assert.Equal(t, "8.5", records[2][2])
	assert.Equal(t, "v9", records[2][7])
}

func TestDeleteExport(t *testing.T) {
	ctx := context.Background()
	store := &mockStorage{}
	store.On("Delete", mock.Anything, "exports/referrals/20240301T100000-abc.csv").Return(nil).Once()
	svc := NewReportService(reportConfig(), &mockReferralRepo{}, store, logger.NewNop())

	require.NoError(t, svc.DeleteExport(ctx, "20240301T100000-abc.csv"))
	store.AssertExpectations(t)
}

func TestDeleteExportRejectsNamesOutsidePrefix(t *testing.T) {
	ctx := context.Background()
	store := &mockStorage{}
	svc := NewReportService(reportConfig(), &mockReferralRepo{}, store, logger.NewNop())

	for _, name := range []string{"", "../secrets.csv", "nested/a.csv", "notes.txt", "..csv"} {
		assert.ErrorIs(t, svc.DeleteExport(ctx, name), ErrInvalidExportName, name)
	}
	store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteExportStorageFailure(t *testing.T) {
	store := &mockStorage{}
	store.On("Delete", mock.Anything, "exports/referrals/a.csv").Return(assert.AnError).Once()
	svc := NewReportService(reportConfig(), &mockReferralRepo{}, store, logger.NewNop())

	err := svc.DeleteExport(context.Background(), "a.csv")
	assert.ErrorIs(t, err, assert.AnError)
	assert.NotErrorIs(t, err, ErrInvalidExportName)
}
