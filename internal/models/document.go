package models

import "time"

// Document is one issued business document (quotation, billing note, ...).
// source_document_id links a converted document back to the document it was
// derived from; the relation forms a forest rooted at documents with no source.
type Document struct {
	ID         uint      `gorm:"primaryKey"`
	DocType    DocType   `gorm:"size:20;not null;index"`
	DocNumber  string    `gorm:"size:20;not null;uniqueIndex"`
	Status     DocStatus `gorm:"size:20;not null;default:'draft'"`
	CustomerID *uint     `gorm:"index"`
	Customer   *Customer `gorm:"foreignKey:CustomerID"`

	SourceDocumentID *uint     `gorm:"index"`
	SourceDocument   *Document `gorm:"foreignKey:SourceDocumentID"`

	DocDate    time.Time `gorm:"type:date"`
	CreditDays int       `gorm:"default:30"`
	DueDate    time.Time `gorm:"type:date"`

	ReferenceNumber string `gorm:"size:100;default:''"`
	Salesperson     string `gorm:"size:100;default:''"`
	Project         string `gorm:"size:200;default:''"`
	PriceType       string `gorm:"size:50;default:'ราคาไม่รวมภาษี'"`

	// Totals are supplied by the caller; the store does not recompute them.
	Subtotal              float64 `gorm:"default:0"`
	DiscountPercent       float64 `gorm:"default:0"`
	DiscountAmount        float64 `gorm:"default:0"`
	AfterDiscount         float64 `gorm:"default:0"`
	VatEnabled            bool    `gorm:"default:true"`
	VatAmount             float64 `gorm:"default:0"`
	GrandTotal            float64 `gorm:"default:0"`
	WithholdingTaxEnabled bool    `gorm:"default:true"`
	WithholdingTaxPercent float64 `gorm:"default:7"`
	WithholdingTaxAmount  float64 `gorm:"default:0"`
	NetTotal              float64 `gorm:"default:0"`

	Notes         string `gorm:"type:text;default:''"`
	InternalNotes string `gorm:"type:text;default:''"`

	Items []DocumentItem `gorm:"foreignKey:DocumentID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DocumentItem is one line of a document, ordered by Position.
// Amount is caller-computed; well-formed data has Amount = Quantity * UnitPrice
// but this is not enforced on write.
type DocumentItem struct {
	ID          uint    `gorm:"primaryKey"`
	DocumentID  uint    `gorm:"not null;index"`
	Position    int     `gorm:"column:item_order;default:1"`
	Description string  `gorm:"type:text;default:''"`
	Details     string  `gorm:"type:text;default:''"`
	Quantity    float64 `gorm:"default:0"`
	Unit        string  `gorm:"size:50;default:''"`
	UnitPrice   float64 `gorm:"default:0"`
	Amount      float64 `gorm:"default:0"`
}

// DocCounter is the per-type per-calendar-month number sequence. Rows are
// bumped with an atomic upsert so concurrent creations cannot collide.
type DocCounter struct {
	ID      uint   `gorm:"primaryKey"`
	DocType string `gorm:"size:20;not null;uniqueIndex:idx_counter_type_period,priority:1"`
	Period  string `gorm:"size:6;not null;uniqueIndex:idx_counter_type_period,priority:2"` // YYYYMM
	Seq     int    `gorm:"not null;default:0"`
}
