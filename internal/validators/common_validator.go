package validators

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"referralbridge/internal/models"
	"referralbridge/internal/utils"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	validate.RegisterValidation("object_id", validateObjectID)
	validate.RegisterValidation("rate_percent", validateRatePercent)
	validate.RegisterValidation("order_status", validateOrderStatus)
	validate.RegisterValidation("referral_status", validateReferralStatus)
	validate.RegisterValidation("currency_code", validateCurrencyCode)
}

// ValidationError represents a field validation error
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var messages []string
	for _, err := range v {
		messages = append(messages, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return strings.Join(messages, "; ")
}

// Map renders the errors as field -> message for the API error details.
func (v ValidationErrors) Map() map[string]string {
	out := make(map[string]string, len(v))
	for _, err := range v {
		out[err.Field] = err.Message
	}
	return out
}

// ValidateStruct validates a struct and returns detailed errors
func ValidateStruct(s interface{}) ValidationErrors {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return ValidationErrors{{Field: "request", Tag: "invalid", Message: err.Error()}}
	}

	validationErrors := make(ValidationErrors, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		validationErrors = append(validationErrors, ValidationError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Value:   fmt.Sprintf("%v", fe.Value()),
			Message: getErrorMessage(fe),
		})
	}
	return validationErrors
}

func getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", err.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", err.Field(), err.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
	case "object_id":
		return "Invalid ID format"
	case "rate_percent":
		return "Rate must be a non-negative number"
	case "order_status":
		return "Unknown order status"
	case "referral_status":
		return "Unknown referral status"
	case "currency_code":
		return "Invalid currency code"
	default:
		return fmt.Sprintf("Validation failed for %s", err.Field())
	}
}

func validateObjectID(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return primitive.IsValidObjectID(value)
}

// Empty is accepted; blank rate text clears an override.
func validateRatePercent(fl validator.FieldLevel) bool {
	value := strings.TrimSpace(fl.Field().String())
	if value == "" {
		return true
	}
	rate, err := strconv.ParseFloat(value, 64)
	return err == nil && rate >= 0
}

func validateOrderStatus(fl validator.FieldLevel) bool {
	switch models.OrderStatus(fl.Field().String()) {
	case models.OrderStatusPending, models.OrderStatusProcessing, models.OrderStatusOnHold,
		models.OrderStatusCompleted, models.OrderStatusCancelled, models.OrderStatusRefunded,
		models.OrderStatusFailed:
		return true
	}
	return false
}

func validateReferralStatus(fl validator.FieldLevel) bool {
	return models.ReferralStatus(fl.Field().String()).IsValid()
}

func validateCurrencyCode(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, ok := utils.SupportedCurrencies[strings.ToUpper(value)]
	return ok
}

func IsValidObjectID(id string) bool {
	return primitive.IsValidObjectID(id)
}

// SanitizeInput trims whitespace and drops control characters.
func SanitizeInput(input string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, strings.TrimSpace(input))
}
