package services

import (
	"testing"

	"github.com/packytong/Flowaccount/internal/models"
)

func TestComputeTotalsVATAndWithholding(t *testing.T) {
	doc := &models.Document{
		VatEnabled:            true,
		WithholdingTaxEnabled: true,
		WithholdingTaxPercent: 3,
		Items: []models.DocumentItem{
			{Quantity: 2, UnitPrice: 300, Amount: 600},
			{Quantity: 4, UnitPrice: 100, Amount: 400},
		},
	}
	got := ComputeTotals(doc)
	if got.Subtotal != 1000 || got.AfterDiscount != 1000 {
		t.Fatalf("subtotal: %+v", got)
	}
	if got.VatAmount != 70 || got.GrandTotal != 1070 {
		t.Fatalf("vat: %+v", got)
	}
	if got.WithholdingTaxAmount != 30 || got.NetTotal != 1040 {
		t.Fatalf("withholding: %+v", got)
	}
}

func TestComputeTotalsPercentDiscountWins(t *testing.T) {
	doc := &models.Document{
		DiscountPercent: 10,
		DiscountAmount:  999, // ignored when percent is set
		Items:           []models.DocumentItem{{Amount: 500}},
	}
	got := ComputeTotals(doc)
	if got.DiscountAmount != 50 || got.AfterDiscount != 450 {
		t.Fatalf("discount: %+v", got)
	}
}

func TestComputeTotalsDiscountCappedAtSubtotal(t *testing.T) {
	doc := &models.Document{
		DiscountAmount: 900,
		Items:          []models.DocumentItem{{Amount: 100}},
	}
	got := ComputeTotals(doc)
	if got.DiscountAmount != 100 || got.AfterDiscount != 0 || got.GrandTotal != 0 {
		t.Fatalf("cap: %+v", got)
	}
}

func TestComputeTotalsNoFlags(t *testing.T) {
	doc := &models.Document{Items: []models.DocumentItem{{Amount: 250.5}}}
	got := ComputeTotals(doc)
	if got.VatAmount != 0 || got.WithholdingTaxAmount != 0 || got.NetTotal != 250.5 {
		t.Fatalf("flags off: %+v", got)
	}
	if ComputeTotals(nil) != (Totals{}) {
		t.Fatalf("nil doc should produce zero totals")
	}
}
