package services

import (
	"github.com/packytong/Flowaccount/internal/models"

	"github.com/shopspring/decimal"
)

// VAT rate applied when a document has VAT enabled.
const vatPercent = 7

// Totals is a decimal recomputation of a document's money fields, used for
// display and PDF rendering. Stored totals are caller-supplied and are not
// overwritten by this (see models.Document).
type Totals struct {
	Subtotal             float64
	DiscountAmount       float64
	AfterDiscount        float64
	VatAmount            float64
	GrandTotal           float64
	WithholdingTaxAmount float64
	NetTotal             float64
}

// ComputeTotals derives totals from the document's items and tax flags.
// A percent discount takes precedence over a flat discount amount.
func ComputeTotals(doc *models.Document) Totals {
	if doc == nil {
		return Totals{}
	}
	subtotal := decimal.Zero
	for _, it := range doc.Items {
		subtotal = subtotal.Add(decimal.NewFromFloat(it.Amount))
	}

	discount := decimal.NewFromFloat(doc.DiscountAmount)
	if doc.DiscountPercent > 0 {
		discount = subtotal.Mul(decimal.NewFromFloat(doc.DiscountPercent)).Div(decimal.NewFromInt(100))
	}
	if discount.GreaterThan(subtotal) {
		discount = subtotal
	}
	after := subtotal.Sub(discount)

	vat := decimal.Zero
	if doc.VatEnabled {
		vat = after.Mul(decimal.NewFromInt(vatPercent)).Div(decimal.NewFromInt(100))
	}
	grand := after.Add(vat)

	wht := decimal.Zero
	if doc.WithholdingTaxEnabled && doc.WithholdingTaxPercent > 0 {
		wht = after.Mul(decimal.NewFromFloat(doc.WithholdingTaxPercent)).Div(decimal.NewFromInt(100))
	}
	net := grand.Sub(wht)

	round := func(d decimal.Decimal) float64 { f, _ := d.Round(2).Float64(); return f }
	return Totals{
		Subtotal:             round(subtotal),
		DiscountAmount:       round(discount),
		AfterDiscount:        round(after),
		VatAmount:            round(vat),
		GrandTotal:           round(grand),
		WithholdingTaxAmount: round(wht),
		NetTotal:             round(net),
	}
}
