package utils

import (
	"fmt"
	"math"
)

type Currency struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

var SupportedCurrencies = map[string]Currency{
	"USD": {Code: "USD", Symbol: "$", Name: "US Dollar"},
	"EUR": {Code: "EUR", Symbol: "€", Name: "Euro"},
	"GBP": {Code: "GBP", Symbol: "£", Name: "British Pound"},
	"CAD": {Code: "CAD", Symbol: "C$", Name: "Canadian Dollar"},
	"AUD": {Code: "AUD", Symbol: "A$", Name: "Australian Dollar"},
	"JPY": {Code: "JPY", Symbol: "¥", Name: "Japanese Yen"},
	"INR": {Code: "INR", Symbol: "₹", Name: "Indian Rupee"},
	"BRL": {Code: "BRL", Symbol: "R$", Name: "Brazilian Real"},
}

// FormatCurrency renders an amount for display. Rounding to currency
// precision happens here and nowhere else.
func FormatCurrency(amount float64, currencyCode string) string {
	currency, exists := SupportedCurrencies[currencyCode]
	if !exists {
		currency = SupportedCurrencies[DefaultCurrency]
	}

	switch currency.Code {
	case "JPY", "KRW":
		return fmt.Sprintf("%s%.0f", currency.Symbol, math.Round(amount))
	default:
		return fmt.Sprintf("%s%.2f", currency.Symbol, math.Round(amount*100)/100)
	}
}

func GetCurrencySymbol(currencyCode string) string {
	currency, exists := SupportedCurrencies[currencyCode]
	if !exists {
		return "$"
	}
	return currency.Symbol
}
