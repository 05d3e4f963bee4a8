package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"referralbridge/internal/models"
	"referralbridge/internal/services"
	"referralbridge/internal/utils"
	"referralbridge/internal/validators"
	"referralbridge/pkg/logger"
)

type AdminHandler struct {
	reports  services.ReportService
	settings services.SettingsService
	metadata services.MetadataService
	logger   *logger.Logger
}

func NewAdminHandler(
	reports services.ReportService,
	settings services.SettingsService,
	metadata services.MetadataService,
	log *logger.Logger,
) *AdminHandler {
	return &AdminHandler{
		reports:  reports,
		settings: settings,
		metadata: metadata,
		logger:   log.WithField("handler", "admin"),
	}
}

// ListReferrals returns referrals filtered by affiliate, status and context.
func (h *AdminHandler) ListReferrals(c *gin.Context) {
	var request models.ExportReferralsRequest
	if err := c.ShouldBindQuery(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid query: "+err.Error())
		return
	}
	if errs := validators.ValidateExportReferrals(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Map())
		return
	}

	filter := &models.ReferralFilter{
		AffiliateID: request.AffiliateID,
		Status:      request.Status,
		Context:     request.Context,
		Reference:   c.Query("reference"),
	}
	params := utils.GetPaginationParams(c)

	referrals, total, err := h.reports.ListReferrals(c.Request.Context(), filter, params)
	if err != nil {
		h.logger.WithContext(c.Request.Context()).WithError(err).Error("Failed to list referrals")
		utils.ErrorResponse(c, http.StatusInternalServerError, "REFERRALS_FETCH_FAILED", "Failed to list referrals")
		return
	}

	meta := &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
		Total:      total,
		Count:      len(referrals),
	}
	utils.SuccessResponseWithMeta(c, "Referrals retrieved successfully", referrals, meta)
}

// ExportReferrals writes the matching referrals to a CSV file in export storage.
func (h *AdminHandler) ExportReferrals(c *gin.Context) {
	var request models.ExportReferralsRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&request); err != nil {
			utils.BadRequestResponse(c, "Invalid request: "+err.Error())
			return
		}
	}
	if errs := validators.ValidateExportReferrals(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Map())
		return
	}

	export, err := h.reports.ExportReferrals(c.Request.Context(), &request)
	if err != nil {
		h.logger.WithContext(c.Request.Context()).WithError(err).Error("Failed to export referrals")
		utils.ErrorResponse(c, http.StatusInternalServerError, "EXPORT_FAILED", "Failed to export referrals")
		return
	}

	utils.CreatedResponse(c, "Referral export created", export)
}

func (h *AdminHandler) ListExports(c *gin.Context) {
	files, err := h.reports.ListExports(c.Request.Context())
	if err != nil {
		h.logger.WithContext(c.Request.Context()).WithError(err).Error("Failed to list exports")
		utils.ErrorResponse(c, http.StatusInternalServerError, "EXPORTS_FETCH_FAILED", "Failed to list exports")
		return
	}

	utils.SuccessResponse(c, "Exports retrieved successfully", files)
}

func (h *AdminHandler) DeleteExport(c *gin.Context) {
	name := c.Param("name")
	err := h.reports.DeleteExport(c.Request.Context(), name)
	if errors.Is(err, services.ErrInvalidExportName) {
		utils.BadRequestResponse(c, err.Error())
		return
	}
	if err != nil {
		h.logger.WithContext(c.Request.Context()).WithField("export", name).WithError(err).Error("Failed to delete export")
		utils.ErrorResponse(c, http.StatusInternalServerError, "EXPORT_DELETE_FAILED", "Failed to delete export")
		return
	}

	utils.NoContentResponse(c)
}

func (h *AdminHandler) GetSettings(c *gin.Context) {
	settings, err := h.settings.GetAll(c.Request.Context())
	if err != nil {
		h.logger.WithContext(c.Request.Context()).WithError(err).Error("Failed to read settings")
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "Settings retrieved successfully", settings)
}

func (h *AdminHandler) UpdateSettings(c *gin.Context) {
	var request models.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateUpdateSettings(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Map())
		return
	}

	settings, err := h.settings.Update(c.Request.Context(), &request)
	if errors.Is(err, services.ErrInvalidRate) {
		utils.BadRequestResponse(c, err.Error())
		return
	}
	if err != nil {
		h.logger.WithContext(c.Request.Context()).WithError(err).Error("Failed to update settings")
		utils.ErrorResponse(c, http.StatusInternalServerError, "SETTINGS_UPDATE_FAILED", "Failed to update settings")
		return
	}

	utils.SuccessResponse(c, "Settings updated successfully", settings)
}

func (h *AdminHandler) GetCouponAffiliate(c *gin.Context) {
	code := c.Param("code")
	affiliateID, err := h.metadata.CouponAffiliate(c.Request.Context(), code)
	if err != nil {
		h.logger.WithContext(c.Request.Context()).WithField("coupon", code).WithError(err).Error("Failed to read coupon affiliate")
		utils.InternalServerErrorResponse(c)
		return
	}
	if affiliateID == "" {
		utils.NotFoundResponse(c, "Coupon affiliate")
		return
	}

	utils.SuccessResponse(c, "Coupon affiliate retrieved successfully", couponAffiliateBody(code, affiliateID))
}

// AttachCouponAffiliate stores the affiliate of the given user on the coupon.
func (h *AdminHandler) AttachCouponAffiliate(c *gin.Context) {
	var request models.AttachCouponAffiliateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	code := c.Param("code")
	if errs := validators.ValidateCouponAffiliate(code, &request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Map())
		return
	}

	if err := h.metadata.AttachCouponAffiliate(c.Request.Context(), code, &request); err != nil {
		h.logger.WithContext(c.Request.Context()).WithField("coupon", code).WithError(err).Error("Failed to attach coupon affiliate")
		utils.ErrorResponse(c, http.StatusInternalServerError, "COUPON_UPDATE_FAILED", "Failed to update coupon")
		return
	}

	affiliateID, err := h.metadata.CouponAffiliate(c.Request.Context(), code)
	if err != nil {
		h.logger.WithContext(c.Request.Context()).WithField("coupon", code).WithError(err).Error("Failed to read coupon affiliate")
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "Coupon affiliate updated successfully", couponAffiliateBody(code, affiliateID))
}

func couponAffiliateBody(code, affiliateID string) gin.H {
	return gin.H{
		"code":         code,
		"affiliate_id": affiliateID,
	}
}

func (h *AdminHandler) GetProductRate(c *gin.Context) {
	productID := c.Param("id")
	rate, err := h.metadata.ProductRate(c.Request.Context(), productID)
	if err != nil {
		h.logger.WithContext(c.Request.Context()).WithField("product_id", productID).WithError(err).Error("Failed to read product rate")
		utils.InternalServerErrorResponse(c)
		return
	}
	if rate == "" {
		utils.NotFoundResponse(c, "Product rate")
		return
	}

	utils.SuccessResponse(c, "Product rate retrieved successfully", productRateBody(productID, rate))
}

// SaveProductRate sets the product's commission rate override. An empty
// rate clears it.
func (h *AdminHandler) SaveProductRate(c *gin.Context) {
	var request models.SaveProductRateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	productID := c.Param("id")
	if errs := validators.ValidateProductRate(productID, &request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Map())
		return
	}

	err := h.metadata.SaveProductRate(c.Request.Context(), productID, &request)
	if errors.Is(err, services.ErrInvalidRate) {
		utils.BadRequestResponse(c, err.Error())
		return
	}
	if err != nil {
		h.logger.WithContext(c.Request.Context()).WithField("product_id", productID).WithError(err).Error("Failed to save product rate")
		utils.ErrorResponse(c, http.StatusInternalServerError, "PRODUCT_UPDATE_FAILED", "Failed to update product")
		return
	}

	rate, err := h.metadata.ProductRate(c.Request.Context(), productID)
	if err != nil {
		h.logger.WithContext(c.Request.Context()).WithField("product_id", productID).WithError(err).Error("Failed to read product rate")
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "Product rate updated successfully", productRateBody(productID, rate))
}

func productRateBody(productID, rate string) gin.H {
	return gin.H{
		"product_id": productID,
		"rate":       rate,
	}
}
