package models

// OrderCreatedPayload is what the platform sends when checkout creates an
// order: the order snapshot plus the tracking data of the placing request.
type OrderCreatedPayload struct {
	Order    *Order   `json:"order" validate:"required"`
	Tracking Tracking `json:"tracking"`
}

// OrderStatusPayload reports a status change of an existing order.
type OrderStatusPayload struct {
	OrderID string      `json:"order_id" validate:"required"`
	From    OrderStatus `json:"from" validate:"required,order_status"`
	To      OrderStatus `json:"to" validate:"required,order_status"`
}

// OrderMessage is the envelope carried on the orders topic. Exactly one of
// Created or Status is set, matching Type.
type OrderMessage struct {
	Type    string               `json:"type" validate:"required,oneof=order.created order.status_changed"`
	Created *OrderCreatedPayload `json:"created,omitempty"`
	Status  *OrderStatusPayload  `json:"status,omitempty"`
}

const (
	OrderMessageCreated       = "order.created"
	OrderMessageStatusChanged = "order.status_changed"
)

// AttachCouponAffiliateRequest names the affiliate's user either by id or by
// login. Both empty leaves the coupon untouched.
type AttachCouponAffiliateRequest struct {
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
}

// SaveProductRateRequest carries the raw rate text from the product form.
// An empty rate removes the override.
type SaveProductRateRequest struct {
	Rate string `json:"rate" validate:"rate_percent"`
}

type UpdateSettingsRequest struct {
	IgnoreZeroReferrals *bool   `json:"ignore_zero_referrals"`
	RevokeOnRefund      *bool   `json:"revoke_on_refund"`
	ReferralRate        *string `json:"referral_rate" validate:"omitempty,rate_percent"`
}

type ExportReferralsRequest struct {
	AffiliateID string         `json:"affiliate_id" form:"affiliate_id"`
	Status      ReferralStatus `json:"status" form:"status" validate:"omitempty,referral_status"`
	Context     string         `json:"context" form:"context"`
}
