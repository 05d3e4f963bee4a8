package models

import "time"

const (
	SettingIgnoreZeroReferrals = "ignore_zero_referrals"
	SettingRevokeOnRefund      = "revoke_on_refund"
	SettingReferralRate        = "referral_rate"
)

type Setting struct {
	Key       string    `json:"key" bson:"_id"`
	Value     string    `json:"value" bson:"value"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// AffiliateSettings is the resolved view of the settings the referral core
// reads.
type AffiliateSettings struct {
	IgnoreZeroReferrals bool    `json:"ignore_zero_referrals"`
	RevokeOnRefund      bool    `json:"revoke_on_refund"`
	ReferralRate        float64 `json:"referral_rate"`
}
