package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"referralbridge/internal/config"
	"referralbridge/internal/models"
	"referralbridge/internal/repositories/interfaces"
	"referralbridge/internal/utils"
	"referralbridge/pkg/logger"
	"referralbridge/pkg/storage"
)

var exportHeader = []string{
	"id", "affiliate_id", "amount", "reference", "description",
	"context", "status", "visit_id", "created_at",
}

// ReportService backs the admin referral listing and CSV exports.
type ReportService interface {
	ListReferrals(ctx context.Context, filter *models.ReferralFilter, params *utils.PaginationParams) ([]*models.ReferralView, int64, error)
	ExportReferrals(ctx context.Context, request *models.ExportReferralsRequest) (*models.ReferralExport, error)
	ListExports(ctx context.Context) ([]*storage.FileInfo, error)
	DeleteExport(ctx context.Context, name string) error
}

type reportService struct {
	referralRepo    interfaces.ReferralRepository
	storage         storage.StorageProvider
	referralContext string
	orderEditURL    string
	logger          *logger.Logger
	now             func() time.Time
}

func NewReportService(
	cfg *config.AffiliateConfig,
	referralRepo interfaces.ReferralRepository,
	store storage.StorageProvider,
	log *logger.Logger,
) ReportService {
	return &reportService{
		referralRepo:    referralRepo,
		storage:         store,
		referralContext: cfg.Context,
		orderEditURL:    cfg.OrderEditURL,
		logger:          log.WithField("service", "report"),
		now:             time.Now,
	}
}

func (s *reportService) ListReferrals(ctx context.Context, filter *models.ReferralFilter, params *utils.PaginationParams) ([]*models.ReferralView, int64, error) {
	referrals, total, err := s.referralRepo.List(ctx, filter, params)
	if err != nil {
		return nil, 0, err
	}

	views := make([]*models.ReferralView, len(referrals))
	for i, referral := range referrals {
		views[i] = &models.ReferralView{
			Referral:      referral,
			ReferenceLink: ReferenceLink(referral, s.referralContext, s.orderEditURL),
		}
	}
	return views, total, nil
}

func (s *reportService) ExportReferrals(ctx context.Context, request *models.ExportReferralsRequest) (*models.ReferralExport, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeader); err != nil {
		return nil, fmt.Errorf("failed to write export header: %w", err)
	}

	filter := &models.ReferralFilter{
		AffiliateID: request.AffiliateID,
		Status:      request.Status,
		Context:     request.Context,
	}

	rows := 0
	err := s.referralRepo.Iterate(ctx, filter, func(referral *models.Referral) error {
		rows++
		return w.Write([]string{
			referral.ID.Hex(),
			referral.AffiliateID,
			strconv.FormatFloat(referral.Amount, 'f', -1, 64),
			referral.Reference,
			referral.Description,
			referral.Context,
			string(referral.Status),
			referral.VisitID,
			referral.CreatedAt.UTC().Format(time.RFC3339),
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to export referrals: %w", err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush export: %w", err)
	}

	createdAt := s.now()
	exportID := uuid.NewString()
	key := fmt.Sprintf("%s%s-%s.csv", utils.ExportKeyPrefix, createdAt.UTC().Format("20060102T150405"), exportID)

	if _, err := s.storage.Upload(ctx, &storage.UploadRequest{
		Key:         key,
		Reader:      bytes.NewReader(buf.Bytes()),
		ContentType: utils.ExportContentType,
		Size:        int64(buf.Len()),
		Metadata:    map[string]string{"export_id": exportID, "rows": strconv.Itoa(rows)},
	}); err != nil {
		return nil, err
	}

	link, err := s.storage.GetURL(ctx, key, utils.ExportURLExpiry)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"export_id": exportID,
		"key":       key,
		"rows":      rows,
	}).Info("Referral export written")

	return &models.ReferralExport{
		ExportID:  exportID,
		Key:       key,
		URL:       link,
		Rows:      rows,
		CreatedAt: createdAt,
	}, nil
}

func (s *reportService) ListExports(ctx context.Context) ([]*storage.FileInfo, error) {
	return s.storage.ListFiles(ctx, utils.ExportKeyPrefix)
}

// DeleteExport removes a previously generated export. name is the file name
// below the export prefix, as returned by ListExports.
func (s *reportService) DeleteExport(ctx context.Context, name string) error {
	if name == "" || strings.Contains(name, "/") || strings.Contains(name, "..") || !strings.HasSuffix(name, ".csv") {
		return fmt.Errorf("%w: %q", ErrInvalidExportName, name)
	}

	key := utils.ExportKeyPrefix + name
	if err := s.storage.Delete(ctx, key); err != nil {
		return fmt.Errorf("failed to delete export %s: %w", key, err)
	}

	s.logger.WithField("key", key).Info("Referral export deleted")
	return nil
}
