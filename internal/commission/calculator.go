// Package commission turns an order's lines into a referral amount.
package commission

import "referralbridge/internal/models"

// RateFunc returns the percentage (20 means 20%) that applies to a product.
// An empty productID asks for the order-level rate.
type RateFunc func(productID string) float64

// Amount computes the referral amount for an order.
//
// Itemized orders split the cart discount evenly across the lines, not in
// proportion to line value, and the net line total is not clamped at zero.
// Flat orders apply the rate to the order total without subtracting the
// discount. No rounding is done here.
func Amount(order *models.Order, rate RateFunc) float64 {
	if order == nil {
		return 0
	}

	if !order.IsItemized() {
		// Rate applies to the undiscounted total.
		return Percent(order.Total, rate(""))
	}

	return ItemizedAmount(order.LineItems, order.DiscountTotal, rate)
}

// ItemizedAmount sums the commission of each line item after subtracting an
// even share of the cart discount. Net values are not clamped at zero.
func ItemizedAmount(items []models.LineItem, cartDiscount float64, rate RateFunc) float64 {
	var share float64
	if cartDiscount > 0 && len(items) > 0 {
		share = cartDiscount / float64(len(items))
	}

	amount := 0.0
	for _, item := range items {
		net := item.Total - share
		amount += Percent(net, rate(item.ProductID))
	}

	return amount
}

// Percent returns base * rate / 100.
func Percent(base, rate float64) float64 {
	return base * rate / 100
}
