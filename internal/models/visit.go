package models

import "time"

// Visit is a tracked click-through that preceded a sale.
type Visit struct {
	ID          string    `json:"id" bson:"_id"`
	Token       string    `json:"token" bson:"token"`
	AffiliateID string    `json:"affiliate_id" bson:"affiliate_id"`
	URL         string    `json:"url,omitempty" bson:"url,omitempty"`
	Referrer    string    `json:"referrer,omitempty" bson:"referrer,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// Tracking is what the platform forwards about the customer's request that
// placed the order.
type Tracking struct {
	VisitToken string `json:"visit_token,omitempty"`
}
