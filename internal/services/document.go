package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/packytong/Flowaccount/internal/lineage"
	"github.com/packytong/Flowaccount/internal/models"

	"gorm.io/gorm"
)

// ErrNotQuotation is returned by Duplicate for any non-quotation document.
var ErrNotQuotation = errors.New("duplicate_quotation_only")

// DocumentService owns conversion, duplication, and chain lookups.
// Now is injectable so number periods and dates are deterministic in tests.
type DocumentService struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewDocumentService(db *gorm.DB) *DocumentService {
	return &DocumentService{DB: db, Now: time.Now}
}

// ConvertResult reports what Convert produced. Existing is true when the
// idempotence guard found a prior conversion and no new rows were written.
type ConvertResult struct {
	Document     *models.Document
	DeliveryNote *models.Document
	Existing     bool
}

// Convert derives a document of target type from the source document,
// copying customer, terms, totals, notes, and all line items. The source is
// marked converted. Converting a quotation to a billing note also derives a
// delivery note sibling pointing at the same quotation. The whole operation
// runs in one transaction; any failure leaves nothing behind.
func (s *DocumentService) Convert(sourceID uint, target models.DocType) (*ConvertResult, error) {
	if !target.Valid() {
		return nil, models.ErrInvalidDocType
	}
	var res ConvertResult
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var source models.Document
		if err := tx.Preload("Items", itemOrder).First(&source, sourceID).Error; err != nil {
			return err
		}

		var existing models.Document
		err := tx.Where("source_document_id = ? AND doc_type = ?", source.ID, target).First(&existing).Error
		if err == nil {
			res.Document = &existing
			res.Existing = true
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		now := s.Now()
		created, err := derive(tx, &source, target, now)
		if err != nil {
			return err
		}
		res.Document = created

		if source.DocType == models.DocTypeQuotation && target == models.DocTypeBilling {
			var existingDV models.Document
			err := tx.Where("source_document_id = ? AND doc_type = ?", source.ID, models.DocTypeDeliveryNote).First(&existingDV).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				dv, derr := derive(tx, &source, models.DocTypeDeliveryNote, now)
				if derr != nil {
					return derr
				}
				res.DeliveryNote = dv
			case err != nil:
				return err
			}
		}

		if err := tx.Model(&models.Document{}).Where("id = ?", source.ID).Update("status", models.StatusConverted).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// derive creates one document of target type copied from source, with a
// freshly allocated number, inside the caller's transaction.
func derive(tx *gorm.DB, source *models.Document, target models.DocType, now time.Time) (*models.Document, error) {
	number, err := NextDocumentNumber(tx, target, now)
	if err != nil {
		return nil, err
	}
	today := dateOnly(now)
	doc := models.Document{
		DocType:          target,
		DocNumber:        number,
		Status:           models.StatusSaved,
		CustomerID:       source.CustomerID,
		SourceDocumentID: &source.ID,
		DocDate:          today,
		CreditDays:       source.CreditDays,
		DueDate:          today.AddDate(0, 0, source.CreditDays),
		ReferenceNumber:  source.DocNumber,
		Salesperson:      source.Salesperson,
		Project:          source.Project,
		PriceType:        source.PriceType,

		Subtotal:              source.Subtotal,
		DiscountPercent:       source.DiscountPercent,
		DiscountAmount:        source.DiscountAmount,
		AfterDiscount:         source.AfterDiscount,
		VatEnabled:            source.VatEnabled,
		VatAmount:             source.VatAmount,
		GrandTotal:            source.GrandTotal,
		WithholdingTaxEnabled: source.WithholdingTaxEnabled,
		WithholdingTaxPercent: source.WithholdingTaxPercent,
		WithholdingTaxAmount:  source.WithholdingTaxAmount,
		NetTotal:              source.NetTotal,

		Notes:         source.Notes,
		InternalNotes: source.InternalNotes,
	}
	if err := tx.Create(&doc).Error; err != nil {
		return nil, fmt.Errorf("create %s: %w", target, err)
	}
	if len(source.Items) > 0 {
		items := make([]models.DocumentItem, 0, len(source.Items))
		for _, it := range source.Items {
			items = append(items, models.DocumentItem{
				DocumentID:  doc.ID,
				Position:    it.Position,
				Description: it.Description,
				Details:     it.Details,
				Quantity:    it.Quantity,
				Unit:        it.Unit,
				UnitPrice:   it.UnitPrice,
				Amount:      it.Amount,
			})
		}
		if err := tx.Create(&items).Error; err != nil {
			return nil, fmt.Errorf("copy items to %s: %w", doc.DocNumber, err)
		}
		doc.Items = items
	}
	return &doc, nil
}

// Duplicate clones a quotation as a fresh draft with a new number and
// today's dates. Other document types cannot be duplicated.
func (s *DocumentService) Duplicate(docID uint) (*models.Document, error) {
	var out *models.Document
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var source models.Document
		if err := tx.Preload("Items", itemOrder).First(&source, docID).Error; err != nil {
			return err
		}
		if source.DocType != models.DocTypeQuotation {
			return ErrNotQuotation
		}
		now := s.Now()
		number, err := NextDocumentNumber(tx, source.DocType, now)
		if err != nil {
			return err
		}
		today := dateOnly(now)
		clone := source
		clone.ID = 0
		clone.DocNumber = number
		clone.Status = models.StatusDraft
		clone.SourceDocumentID = nil
		clone.DocDate = today
		clone.DueDate = today.AddDate(0, 0, source.CreditDays)
		clone.Items = nil
		clone.CreatedAt = time.Time{}
		clone.UpdatedAt = time.Time{}
		if err := tx.Create(&clone).Error; err != nil {
			return err
		}
		for _, it := range source.Items {
			item := models.DocumentItem{
				DocumentID:  clone.ID,
				Position:    it.Position,
				Description: it.Description,
				Details:     it.Details,
				Quantity:    it.Quantity,
				Unit:        it.Unit,
				UnitPrice:   it.UnitPrice,
				Amount:      it.Amount,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
			clone.Items = append(clone.Items, item)
		}
		out = &clone
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Related returns the display links for every other document in doc's chain.
func (s *DocumentService) Related(doc *models.Document) ([]lineage.Link, error) {
	return lineage.Related(lineage.NewGormStore(s.DB), doc)
}

func itemOrder(db *gorm.DB) *gorm.DB { return db.Order("item_order") }

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
