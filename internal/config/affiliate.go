package config

import "time"

// AffiliateConfig holds the integration defaults. Values stored through the
// settings API take precedence over DefaultRate, IgnoreZeroReferrals and
// RevokeOnRefund at runtime.
type AffiliateConfig struct {
	Context             string        `yaml:"context"`
	DefaultRate         float64       `yaml:"default_rate"`
	IgnoreZeroReferrals bool          `yaml:"ignore_zero_referrals"`
	RevokeOnRefund      bool          `yaml:"revoke_on_refund"`
	Currency            string        `yaml:"currency"`
	OrderEditURL        string        `yaml:"order_edit_url"`
	VisitTTL            time.Duration `yaml:"visit_ttl"`
	SettingsCacheTTL    time.Duration `yaml:"settings_cache_ttl"`
}

func loadAffiliateConfig(c *AffiliateConfig) {
	c.Context = getEnv("AFFILIATE_CONTEXT", c.Context)
	c.DefaultRate = getEnvAsFloat64("AFFILIATE_DEFAULT_RATE", c.DefaultRate)
	c.IgnoreZeroReferrals = getEnvAsBool("AFFILIATE_IGNORE_ZERO_REFERRALS", c.IgnoreZeroReferrals)
	c.RevokeOnRefund = getEnvAsBool("AFFILIATE_REVOKE_ON_REFUND", c.RevokeOnRefund)
	c.Currency = getEnv("AFFILIATE_CURRENCY", c.Currency)
	c.OrderEditURL = getEnv("AFFILIATE_ORDER_EDIT_URL", c.OrderEditURL)
	c.VisitTTL = getEnvAsDuration("AFFILIATE_VISIT_TTL", c.VisitTTL)
	c.SettingsCacheTTL = getEnvAsDuration("AFFILIATE_SETTINGS_CACHE_TTL", c.SettingsCacheTTL)
}
