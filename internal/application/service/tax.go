package service

import "github.com/shopspring/decimal"

var (
	// igvDivisor converts an IGV-inclusive amount (18%) into its taxable base.
	igvDivisor = decimal.RequireFromString("1.18")

	// paymentTolerance is the largest accepted gap between payments and order total.
	paymentTolerance = decimal.RequireFromString("0.01")

	// minPaymentAmount is the smallest amount a payment line may carry.
	minPaymentAmount = decimal.RequireFromString("0.01")
)

// SplitTax splits an IGV-inclusive total into subtotal and tax, both rounded
// to cents. Tax is derived by difference so that subtotal + tax == total.
func SplitTax(total decimal.Decimal) (subtotal, tax decimal.Decimal) {
	subtotal = total.Div(igvDivisor).Round(2)
	tax = total.Sub(subtotal).Round(2)
	return subtotal, tax
}

// WithinTolerance reports whether paid and due differ by at most one cent.
func WithinTolerance(paid, due decimal.Decimal) bool {
	return paid.Sub(due).Abs().LessThanOrEqual(paymentTolerance)
}
