package commission

import (
	"context"
)

// RateSource exposes the three levels of rate configuration. A nil rate with
// a nil error means the level is not configured.
type RateSource interface {
	DefaultRate(ctx context.Context) (float64, error)
	AffiliateRate(ctx context.Context, affiliateID string) (*float64, error)
	ProductRate(ctx context.Context, productID string) (*float64, error)
}

// ResolveRate applies precedence: product, then affiliate, then default.
// Unset and zero overrides fall through to the next level.
func ResolveRate(product, affiliate *float64, defaultRate float64) float64 {
	if isSet(product) {
		return *product
	}
	if isSet(affiliate) {
		return *affiliate
	}
	return defaultRate
}

func isSet(rate *float64) bool {
	return rate != nil && *rate != 0
}

// Resolver looks rates up in a RateSource. Lookup failures at any level are
// treated as "not configured" so resolution never fails.
type Resolver struct {
	source RateSource
}

func NewResolver(source RateSource) *Resolver {
	return &Resolver{source: source}
}

func (r *Resolver) Resolve(ctx context.Context, affiliateID, productID string) float64 {
	var product, affiliate *float64

	if productID != "" {
		if rate, err := r.source.ProductRate(ctx, productID); err == nil {
			product = rate
		}
	}

	if affiliateID != "" {
		if rate, err := r.source.AffiliateRate(ctx, affiliateID); err == nil {
			affiliate = rate
		}
	}

	defaultRate, err := r.source.DefaultRate(ctx)
	if err != nil {
		defaultRate = 0
	}

	return ResolveRate(product, affiliate, defaultRate)
}

// ForAffiliate binds the resolver to one affiliate and context for use with
// Amount.
func (r *Resolver) ForAffiliate(ctx context.Context, affiliateID string) RateFunc {
	return func(productID string) float64 {
		return r.Resolve(ctx, affiliateID, productID)
	}
}
