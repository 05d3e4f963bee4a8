package models

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusOnHold     OrderStatus = "on-hold"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusRefunded   OrderStatus = "refunded"
	OrderStatusFailed     OrderStatus = "failed"
)

// Order is the platform's order snapshot. LineItems is nil for a flat order
// that exposes no itemized lines; an empty non-nil slice is still itemized.
type Order struct {
	ID            string       `json:"id" bson:"_id" validate:"required"`
	Status        OrderStatus  `json:"status" bson:"status"`
	Currency      string       `json:"currency" bson:"currency"`
	Total         float64      `json:"total" bson:"total"`
	DiscountTotal float64      `json:"discount_total" bson:"discount_total"`
	Billing       Billing      `json:"billing" bson:"billing"`
	LineItems     []LineItem   `json:"line_items" bson:"line_items"`
	CouponLines   []CouponLine `json:"coupon_lines" bson:"coupon_lines"`
	CreatedAt     time.Time    `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at" bson:"updated_at"`
}

type Billing struct {
	FirstName string `json:"first_name" bson:"first_name"`
	LastName  string `json:"last_name" bson:"last_name"`
	Email     string `json:"email" bson:"email"`
}

type LineItem struct {
	ProductID string  `json:"product_id" bson:"product_id"`
	Name      string  `json:"name" bson:"name"`
	Quantity  int     `json:"quantity" bson:"quantity"`
	Total     float64 `json:"total" bson:"total"`
}

type CouponLine struct {
	Code     string  `json:"code" bson:"code"`
	Discount float64 `json:"discount" bson:"discount"`
}

type OrderNote struct {
	OrderID   string    `json:"order_id" bson:"order_id"`
	Note      string    `json:"note" bson:"note"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

func (o *Order) IsItemized() bool {
	return o.LineItems != nil
}

// CouponCodes returns the applied codes in the order the platform lists them.
func (o *Order) CouponCodes() []string {
	codes := make([]string, 0, len(o.CouponLines))
	for _, line := range o.CouponLines {
		if line.Code != "" {
			codes = append(codes, line.Code)
		}
	}
	return codes
}
