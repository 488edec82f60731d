package fiken

import "bilagsky/internal/domain"

// Norwegian SAF-T standard VAT codes mapped to Fiken VAT types and rates.
// Purchases and sales use separate code ranges.

var purchaseVATTypes = map[int]string{
	0:  "NONE",
	1:  "HIGH",
	11: "MEDIUM",
	12: "RAW_FISH",
	13: "LOW",
}

var purchaseVATRates = map[int]float64{
	0:  0,
	1:  0.25,
	11: 0.15,
	12: 0.1111,
	13: 0.12,
}

var saleVATTypes = map[int]string{
	3:  "HIGH",
	31: "MEDIUM",
	32: "RAW_FISH",
	33: "LOW",
	5:  "EXEMPT",
	51: "EXEMPT_REVERSE",
	52: "EXEMPT_IMPORT_EXPORT",
	6:  "OUTSIDE",
	7:  "NONE",
}

var saleVATRates = map[int]float64{
	3:  0.25,
	31: 0.15,
	32: 0.1111,
	33: 0.12,
	5:  0,
	51: 0,
	52: 0,
	6:  0,
	7:  0,
}

// PurchaseVAT resolves a purchase SAF-T code to its Fiken VAT type and rate.
func PurchaseVAT(code int) (vatType string, rate float64, err error) {
	vatType, ok := purchaseVATTypes[code]
	if !ok {
		return "", 0, domain.ErrUnknownVATCode
	}
	return vatType, purchaseVATRates[code], nil
}

// SaleVAT resolves a sale SAF-T code to its Fiken VAT type and rate.
func SaleVAT(code int) (vatType string, rate float64, err error) {
	vatType, ok := saleVATTypes[code]
	if !ok {
		return "", 0, domain.ErrUnknownVATCode
	}
	return vatType, saleVATRates[code], nil
}

// SplitGross divides a gross amount into its net and VAT portions for the
// given rate: net = gross / (1 + rate), vat = gross - net.
func SplitGross(gross, rate float64) (net, vat float64) {
	net = gross / (1 + rate)
	return net, gross - net
}
