package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReferralStatus string

const (
	ReferralStatusPending  ReferralStatus = "pending"
	ReferralStatusUnpaid   ReferralStatus = "unpaid"
	ReferralStatusPaid     ReferralStatus = "paid"
	ReferralStatusRejected ReferralStatus = "rejected"
)

func (s ReferralStatus) IsValid() bool {
	switch s {
	case ReferralStatusPending, ReferralStatusUnpaid, ReferralStatusPaid, ReferralStatusRejected:
		return true
	}
	return false
}

// Referral is a recorded claim that an affiliate caused a sale. Context names
// the integration that created it and never changes afterwards.
type Referral struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	AffiliateID string             `json:"affiliate_id" bson:"affiliate_id" validate:"required"`
	VisitID     string             `json:"visit_id,omitempty" bson:"visit_id,omitempty"`
	Amount      float64            `json:"amount" bson:"amount"`
	Reference   string             `json:"reference" bson:"reference" validate:"required"`
	Description string             `json:"description" bson:"description"`
	Context     string             `json:"context" bson:"context" validate:"required"`
	Status      ReferralStatus     `json:"status" bson:"status" default:"pending"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}

type ReferralFilter struct {
	AffiliateID string
	Status      ReferralStatus
	Context     string
	Reference   string
}

// ReferralView is the admin listing shape.
type ReferralView struct {
	*Referral
	ReferenceLink string `json:"reference_link"`
}
