package models

import "time"

type AffiliateStatus string

const (
	AffiliateStatusActive   AffiliateStatus = "active"
	AffiliateStatusInactive AffiliateStatus = "inactive"
	AffiliateStatusPending  AffiliateStatus = "pending"
)

// Affiliate mirrors the affiliate program's record. Rate is the optional
// per-affiliate override in percent.
type Affiliate struct {
	ID        string          `json:"id" bson:"_id"`
	UserID    string          `json:"user_id" bson:"user_id"`
	UserLogin string          `json:"user_login" bson:"user_login"`
	Name      string          `json:"name" bson:"name"`
	Email     string          `json:"email" bson:"email"`
	Rate      *float64        `json:"rate,omitempty" bson:"rate,omitempty"`
	Status    AffiliateStatus `json:"status" bson:"status"`
	CreatedAt time.Time       `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time       `json:"updated_at" bson:"updated_at"`
}

// DisplayName is the affiliate's name, or its id when the record carries no
// name.
func (a *Affiliate) DisplayName() string {
	if a.Name != "" {
		return a.Name
	}
	return "affiliate #" + a.ID
}
