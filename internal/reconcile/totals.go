package reconcile

import (
	"math"

	"glanz-rental-backend/internal/domain"
)

// DefaultTaxRatePercent applies when a profile enables tax without
// configuring a rate.
const DefaultTaxRatePercent = 5.0

// SubtotalCents sums the line totals of all items.
func SubtotalCents(items []domain.LineItem) int64 {
	var sum int64
	for i := range items {
		sum += items[i].LineTotalCents
	}
	return sum
}

// TaxEnabled reports whether the profile charges tax. The explicit flag wins
// when present; legacy profiles without it are treated as enabled when they
// carry a positive rate or a registration id.
func TaxEnabled(p *domain.TaxProfile) bool {
	if p == nil {
		return false
	}
	if p.TaxEnabled != nil {
		return *p.TaxEnabled
	}
	return p.TaxRatePercent > 0 || p.TaxRegistrationID != ""
}

// TaxAmountCents computes the tax portion of a subtotal. For tax-inclusive
// profiles the tax is extracted from the price (sub * r / (1+r)); otherwise
// it is added on top (sub * r). Rounded to the nearest cent.
func TaxAmountCents(subtotalCents int64, p *domain.TaxProfile) int64 {
	if !TaxEnabled(p) {
		return 0
	}
	rate := p.TaxRatePercent
	if rate == 0 {
		rate = DefaultTaxRatePercent
	}
	r := rate / 100
	var tax float64
	if p.TaxInclusive {
		tax = float64(subtotalCents) * r / (1 + r)
	} else {
		tax = float64(subtotalCents) * r
	}
	return int64(math.Round(tax))
}

// GrandTotalCents is the amount the customer pays. Tax-inclusive prices
// already contain the tax, so the subtotal passes through unchanged.
func GrandTotalCents(subtotalCents int64, p *domain.TaxProfile) int64 {
	if !TaxEnabled(p) || p.TaxInclusive {
		return subtotalCents
	}
	return subtotalCents + TaxAmountCents(subtotalCents, p)
}
