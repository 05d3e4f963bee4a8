package models

import "time"

// CouponAffiliateMetaKey is the coupon metadata key holding the attached
// affiliate id.
const CouponAffiliateMetaKey = "affwp_discount_affiliate"

type CouponMeta struct {
	Code        string    `json:"code" bson:"_id"`
	AffiliateID string    `json:"affiliate_id" bson:"affwp_discount_affiliate"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}
