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

// WebhookHandler receives order notifications from the shop platform.
type WebhookHandler struct {
	ingest services.IngestService
	logger *logger.Logger
}

func NewWebhookHandler(ingest services.IngestService, log *logger.Logger) *WebhookHandler {
	return &WebhookHandler{
		ingest: ingest,
		logger: log.WithField("handler", "webhook"),
	}
}

// OrderCreated stores the order snapshot and runs referral origination.
func (h *WebhookHandler) OrderCreated(c *gin.Context) {
	var payload models.OrderCreatedPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateOrderCreated(&payload); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Map())
		return
	}

	if err := h.ingest.OrderCreated(c.Request.Context(), &payload); err != nil {
		if errors.Is(err, services.ErrInvalidOrderMessage) {
			utils.BadRequestResponse(c, err.Error())
			return
		}
		h.logger.WithContext(c.Request.Context()).WithOrderID(payload.Order.ID).WithError(err).Error("Failed to ingest created order")
		utils.ErrorResponse(c, http.StatusInternalServerError, "ORDER_INGEST_FAILED", "Failed to process order")
		return
	}

	utils.SuccessResponse(c, "Order processed", gin.H{"order_id": payload.Order.ID})
}

// StatusChanged dispatches the status transition events of an order. Store
// failures during the lifecycle update are logged and acknowledged so the
// platform does not redeliver.
func (h *WebhookHandler) StatusChanged(c *gin.Context) {
	var payload models.OrderStatusPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateStatusChange(&payload); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Map())
		return
	}

	if err := h.ingest.StatusChanged(c.Request.Context(), &payload); err != nil {
		if errors.Is(err, services.ErrInvalidOrderMessage) {
			utils.BadRequestResponse(c, err.Error())
			return
		}
		h.logger.WithContext(c.Request.Context()).WithOrderID(payload.OrderID).WithFields(map[string]interface{}{
			"from": payload.From,
			"to":   payload.To,
		}).WithError(err).Error("Referral status update failed")
	}

	utils.SuccessResponse(c, "Status change processed", gin.H{"order_id": payload.OrderID})
}
