// Package services provides pricing, rendering and persistence helpers for
// quote generation.
package services

import (
	"math"
	"strconv"
	"strings"
)

// LineItemSource tells where a material comes from. Stock items are tracked
// in the user's inventory and get decremented when a quote is generated.
type LineItemSource string

const (
	SourceStock    LineItemSource = "stock"
	SourceExternal LineItemSource = "externo"
)

// LineItem is one priced material row of a quote.
type LineItem struct {
	Name      string
	Quantity  float64
	UnitPrice float64
	Source    LineItemSource
}

// Subtotal is always derived, never stored.
func (li LineItem) Subtotal() float64 {
	return li.Quantity * li.UnitPrice
}

// LaborSpec is the measured-area labor charge of a quote.
type LaborSpec struct {
	Area float64 // m2
	Rate float64 // price per m2
}

func (l LaborSpec) Total() float64 {
	return l.Area * l.Rate
}

// QuoteTotals aggregates a quote's amounts. Grand is always
// Materials + Labor, Converted is always Grand * Rate.
type QuoteTotals struct {
	Materials float64
	Labor     float64
	Grand     float64
	Converted float64
	Rate      float64 // sanitized exchange rate actually applied
}

// ParseAmount coerces a raw payload value into a non-negative float64.
// Form input is untrusted: numbers may arrive as JSON numbers or strings,
// and anything absent, blank or non-numeric counts as 0.
func ParseAmount(v any) float64 {
	var f float64
	switch val := v.(type) {
	case nil:
		return 0
	case float64:
		f = val
	case float32:
		f = float64(val)
	case int:
		f = float64(val)
	case int64:
		f = float64(val)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return f
}

// SanitizeRate coerces a raw exchange rate into a usable multiplier.
// Unlike the other numeric fields the fallback is 1, not 0: a rate of 0
// would zero out every converted total.
func SanitizeRate(v any) float64 {
	f := ParseAmount(v)
	if f <= 0 {
		return 1
	}
	return f
}

// CalcMaterialsTotal sums quantity*price over all line items. The sum is
// order-independent and intermediate values are never rounded.
func CalcMaterialsTotal(items []LineItem) float64 {
	var total float64
	for _, li := range items {
		total += li.Subtotal()
	}
	return total
}

// CalcQuoteTotals computes all quote totals from line items, labor and a
// raw exchange rate. Pure: no side effects, safe to call concurrently.
func CalcQuoteTotals(items []LineItem, labor LaborSpec, rate float64) QuoteTotals {
	effectiveRate := rate
	if effectiveRate <= 0 || math.IsNaN(effectiveRate) || math.IsInf(effectiveRate, 0) {
		effectiveRate = 1
	}

	materials := CalcMaterialsTotal(items)
	laborTotal := labor.Total()
	grand := materials + laborTotal

	return QuoteTotals{
		Materials: materials,
		Labor:     laborTotal,
		Grand:     grand,
		Converted: grand * effectiveRate,
		Rate:      effectiveRate,
	}
}
