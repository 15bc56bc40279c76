package lineage

import (
	"errors"
	"fmt"
	"testing"

	"github.com/packytong/Flowaccount/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// memStore is a map-backed Store for traversal tests.
type memStore struct {
	docs map[uint]models.Document
}

func (s *memStore) GetByID(id uint) (*models.Document, error) {
	if d, ok := s.docs[id]; ok {
		return &d, nil
	}
	return nil, nil
}

func (s *memStore) ChildrenOf(parentIDs []uint) ([]models.Document, error) {
	want := map[uint]bool{}
	for _, id := range parentIDs {
		want[id] = true
	}
	var out []models.Document
	// iterate ids in order for determinism
	for id := uint(1); id <= uint(len(s.docs))+10; id++ {
		d, ok := s.docs[id]
		if !ok || d.SourceDocumentID == nil {
			continue
		}
		if want[*d.SourceDocumentID] {
			out = append(out, d)
		}
	}
	return out, nil
}

func ptr(id uint) *uint { return &id }

func newMemStore(docs ...models.Document) *memStore {
	m := &memStore{docs: map[uint]models.Document{}}
	for _, d := range docs {
		m.docs[d.ID] = d
	}
	return m
}

func TestChainRootNoSource(t *testing.T) {
	d := models.Document{ID: 1, DocType: models.DocTypeQuotation}
	store := newMemStore(d)
	root, err := ChainRoot(store, &d)
	if err != nil {
		t.Fatalf("chain root: %v", err)
	}
	if root.ID != 1 {
		t.Fatalf("expected doc itself as root, got %d", root.ID)
	}
}

func TestChainRootWalksToTop(t *testing.T) {
	d1 := models.Document{ID: 1, DocType: models.DocTypeQuotation}
	d2 := models.Document{ID: 2, DocType: models.DocTypeBilling, SourceDocumentID: ptr(1)}
	d3 := models.Document{ID: 3, DocType: models.DocTypeTaxInvoice, SourceDocumentID: ptr(2)}
	store := newMemStore(d1, d2, d3)

	root, err := ChainRoot(store, &d3)
	if err != nil {
		t.Fatalf("chain root: %v", err)
	}
	if root.ID != 1 {
		t.Fatalf("expected root 1 got %d", root.ID)
	}
}

func TestChainRootOrphanTolerated(t *testing.T) {
	// parent 99 was deleted; doc becomes its own root
	d := models.Document{ID: 5, DocType: models.DocTypeBilling, SourceDocumentID: ptr(99)}
	store := newMemStore(d)
	root, err := ChainRoot(store, &d)
	if err != nil {
		t.Fatalf("chain root: %v", err)
	}
	if root.ID != 5 {
		t.Fatalf("expected orphan as root got %d", root.ID)
	}
}

func TestChainRootDetectsCycle(t *testing.T) {
	d1 := models.Document{ID: 1, SourceDocumentID: ptr(2)}
	d2 := models.Document{ID: 2, SourceDocumentID: ptr(1)}
	store := newMemStore(d1, d2)
	if _, err := ChainRoot(store, &d1); !errors.Is(err, ErrCorruptLineage) {
		t.Fatalf("expected ErrCorruptLineage got %v", err)
	}
}

func TestChainRootDetectsSelfCycle(t *testing.T) {
	d := models.Document{ID: 7, SourceDocumentID: ptr(7)}
	store := newMemStore(d)
	if _, err := ChainRoot(store, &d); !errors.Is(err, ErrCorruptLineage) {
		t.Fatalf("expected ErrCorruptLineage got %v", err)
	}
}

func TestDescendantsCollectsWholeChain(t *testing.T) {
	d1 := models.Document{ID: 1, DocType: models.DocTypeQuotation}
	d2 := models.Document{ID: 2, DocType: models.DocTypeBilling, SourceDocumentID: ptr(1)}
	d3 := models.Document{ID: 3, DocType: models.DocTypeDeliveryNote, SourceDocumentID: ptr(1)}
	d4 := models.Document{ID: 4, DocType: models.DocTypeTaxInvoice, SourceDocumentID: ptr(2)}
	store := newMemStore(d1, d2, d3, d4)

	chain, err := Descendants(store, &d1)
	if err != nil {
		t.Fatalf("descendants: %v", err)
	}
	if len(chain) != 4 {
		t.Fatalf("expected 4 docs got %d", len(chain))
	}
	if chain[0].ID != 1 {
		t.Fatalf("expected root first, got %d", chain[0].ID)
	}
	ids := map[uint]bool{}
	for _, d := range chain {
		ids[d.ID] = true
	}
	for want := uint(1); want <= 4; want++ {
		if !ids[want] {
			t.Fatalf("missing doc %d in chain", want)
		}
	}
}

func TestRelatedExcludesSelfAndCarriesMetadata(t *testing.T) {
	d1 := models.Document{ID: 1, DocType: models.DocTypeQuotation, DocNumber: "QT2026020001"}
	d2 := models.Document{ID: 2, DocType: models.DocTypeBilling, DocNumber: "BL2026020001", SourceDocumentID: ptr(1)}
	store := newMemStore(d1, d2)

	links, err := Related(store, &d2)
	if err != nil {
		t.Fatalf("related: %v", err)
	}
	if len(links) != 1 {
		t.Fatalf("expected 1 link got %d", len(links))
	}
	l := links[0]
	if l.ID != 1 || l.DocType != models.DocTypeQuotation || l.DocNumber != "QT2026020001" {
		t.Fatalf("unexpected link %+v", l)
	}
	if l.Prefix != "QT" || l.NameTH == "" || l.Icon == "" || l.Color == "" {
		t.Fatalf("expected display metadata populated, got %+v", l)
	}
}

func setupLineageDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Customer{}, &models.Document{}, &models.DocumentItem{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestGormStoreTraversal(t *testing.T) {
	db := setupLineageDB(t)
	qt := models.Document{DocType: models.DocTypeQuotation, DocNumber: "QT2026020001", Status: models.StatusConverted}
	if err := db.Create(&qt).Error; err != nil {
		t.Fatalf("create qt: %v", err)
	}
	bl := models.Document{DocType: models.DocTypeBilling, DocNumber: "BL2026020001", Status: models.StatusSaved, SourceDocumentID: &qt.ID}
	dv := models.Document{DocType: models.DocTypeDeliveryNote, DocNumber: "DV2026020001", Status: models.StatusSaved, SourceDocumentID: &qt.ID}
	if err := db.Create(&bl).Error; err != nil {
		t.Fatalf("create bl: %v", err)
	}
	if err := db.Create(&dv).Error; err != nil {
		t.Fatalf("create dv: %v", err)
	}

	store := NewGormStore(db)
	root, err := ChainRoot(store, &bl)
	if err != nil {
		t.Fatalf("chain root: %v", err)
	}
	if root.ID != qt.ID {
		t.Fatalf("expected quotation as root got %d", root.ID)
	}
	links, err := Related(store, &bl)
	if err != nil {
		t.Fatalf("related: %v", err)
	}
	if len(links) != 2 {
		t.Fatalf("expected quotation + delivery note, got %d links", len(links))
	}
}
