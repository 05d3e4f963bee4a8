package validators

import (
	"referralbridge/internal/models"
)

type couponCode struct {
	Code string `validate:"required,max=100"`
}

type productID struct {
	ProductID string `validate:"required,max=64"`
}

func ValidateOrderCreated(payload *models.OrderCreatedPayload) ValidationErrors {
	errs := ValidateStruct(payload)
	if payload.Order != nil {
		errs = append(errs, ValidateStruct(&struct {
			Currency string `validate:"currency_code"`
		}{Currency: payload.Order.Currency})...)
	}
	return errs
}

func ValidateStatusChange(payload *models.OrderStatusPayload) ValidationErrors {
	return ValidateStruct(payload)
}

func ValidateOrderMessage(message *models.OrderMessage) ValidationErrors {
	if errs := ValidateStruct(message); len(errs) > 0 {
		return errs
	}

	switch message.Type {
	case models.OrderMessageCreated:
		if message.Created == nil {
			return ValidationErrors{{Field: "created", Tag: "required", Message: "created is required"}}
		}
		return ValidateOrderCreated(message.Created)
	default:
		if message.Status == nil {
			return ValidationErrors{{Field: "status", Tag: "required", Message: "status is required"}}
		}
		return ValidateStatusChange(message.Status)
	}
}

func ValidateCouponAffiliate(code string, req *models.AttachCouponAffiliateRequest) ValidationErrors {
	req.UserID = SanitizeInput(req.UserID)
	req.UserName = SanitizeInput(req.UserName)
	return ValidateStruct(&couponCode{Code: SanitizeInput(code)})
}

func ValidateProductRate(id string, req *models.SaveProductRateRequest) ValidationErrors {
	errs := ValidateStruct(&productID{ProductID: SanitizeInput(id)})
	return append(errs, ValidateStruct(req)...)
}

func ValidateUpdateSettings(req *models.UpdateSettingsRequest) ValidationErrors {
	return ValidateStruct(req)
}

func ValidateExportReferrals(req *models.ExportReferralsRequest) ValidationErrors {
	return ValidateStruct(req)
}
