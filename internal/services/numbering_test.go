package services

import (
	"errors"
	"testing"
	"time"

	"github.com/packytong/Flowaccount/internal/models"
)

func TestNextDocumentNumberSequence(t *testing.T) {
	db := setupServiceDB(t)
	feb := time.Date(2026, 2, 5, 0, 0, 0, 0, time.UTC)

	n1, err := NextDocumentNumber(db, models.DocTypeQuotation, feb)
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	if n1 != "QT2026020001" {
		t.Fatalf("expected QT2026020001 got %s", n1)
	}
	n2, err := NextDocumentNumber(db, models.DocTypeQuotation, feb)
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if n2 != "QT2026020002" {
		t.Fatalf("expected QT2026020002 got %s", n2)
	}
}

func TestNextDocumentNumberScopedPerTypeAndMonth(t *testing.T) {
	db := setupServiceDB(t)
	feb := time.Date(2026, 2, 5, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	if n, _ := NextDocumentNumber(db, models.DocTypeQuotation, feb); n != "QT2026020001" {
		t.Fatalf("qt feb: %s", n)
	}
	// other types have independent sequences
	if n, _ := NextDocumentNumber(db, models.DocTypeBilling, feb); n != "BL2026020001" {
		t.Fatalf("bl feb: %s", n)
	}
	// month boundary restarts at 0001
	if n, _ := NextDocumentNumber(db, models.DocTypeQuotation, mar); n != "QT2026030001" {
		t.Fatalf("qt mar: %s", n)
	}
	// february sequence unaffected by march allocation
	if n, _ := NextDocumentNumber(db, models.DocTypeQuotation, feb); n != "QT2026020002" {
		t.Fatalf("qt feb second: %s", n)
	}
}

func TestNextDocumentNumberInvalidType(t *testing.T) {
	db := setupServiceDB(t)
	if _, err := NextDocumentNumber(db, models.DocType("memo"), time.Now()); !errors.Is(err, models.ErrInvalidDocType) {
		t.Fatalf("expected ErrInvalidDocType got %v", err)
	}
}

func TestSeedCountersFromLegacyNumbers(t *testing.T) {
	db := setupServiceDB(t)
	legacy := []models.Document{
		{DocType: models.DocTypeQuotation, DocNumber: "QT2026010001"},
		{DocType: models.DocTypeQuotation, DocNumber: "QT2026010007"},
		{DocType: models.DocTypeBilling, DocNumber: "BL2026010002"},
	}
	for i := range legacy {
		if err := db.Create(&legacy[i]).Error; err != nil {
			t.Fatalf("seed legacy: %v", err)
		}
	}
	if _, err := SeedCounters(db); err != nil {
		t.Fatalf("seed counters: %v", err)
	}
	jan := time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC)
	if n, err := NextDocumentNumber(db, models.DocTypeQuotation, jan); err != nil || n != "QT2026010008" {
		t.Fatalf("expected QT2026010008 got %s (err %v)", n, err)
	}
	if n, err := NextDocumentNumber(db, models.DocTypeBilling, jan); err != nil || n != "BL2026010003" {
		t.Fatalf("expected BL2026010003 got %s (err %v)", n, err)
	}
	// re-running the seed never lowers a counter
	if _, err := SeedCounters(db); err != nil {
		t.Fatalf("reseed: %v", err)
	}
	if n, _ := NextDocumentNumber(db, models.DocTypeQuotation, jan); n != "QT2026010009" {
		t.Fatalf("expected QT2026010009 after reseed got %s", n)
	}
}
