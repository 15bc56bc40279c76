// Package lineage resolves document conversion chains: every converted
// document points at its source via source_document_id, forming a forest.
// All operations are pure over a Store; persistence stays with the caller.
package lineage

import (
	"errors"
	"fmt"

	"github.com/packytong/Flowaccount/internal/models"
)

// ErrCorruptLineage is returned when the source pointers contain a cycle.
// That can only happen through data corruption, but walking it without a
// guard would loop forever, so it is detected and surfaced instead.
var ErrCorruptLineage = errors.New("corrupt_lineage")

// Store is the read capability the traversal needs. ChildrenOf takes a batch
// of parent ids so a whole tree level is fetched in one query.
type Store interface {
	GetByID(id uint) (*models.Document, error)
	ChildrenOf(parentIDs []uint) ([]models.Document, error)
}

// ChainRoot walks the source pointer upward until a document without a
// source is reached. A missing parent row also ends the walk, so orphaned
// documents act as roots of their own chains.
func ChainRoot(store Store, doc *models.Document) (*models.Document, error) {
	root := doc
	seen := map[uint]bool{doc.ID: true}
	for root.SourceDocumentID != nil {
		parentID := *root.SourceDocumentID
		if seen[parentID] {
			return nil, fmt.Errorf("%w: document %d revisited while walking to root", ErrCorruptLineage, parentID)
		}
		parent, err := store.GetByID(parentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			// Dangling source pointer (parent deleted): treat current as root.
			break
		}
		seen[parentID] = true
		root = parent
	}
	return root, nil
}

// Descendants collects root and everything derived from it, breadth first.
// Root comes first; siblings appear in whatever order the store returns them.
func Descendants(store Store, root *models.Document) ([]models.Document, error) {
	out := []models.Document{*root}
	seen := map[uint]bool{root.ID: true}
	frontier := []uint{root.ID}
	for len(frontier) > 0 {
		children, err := store.ChildrenOf(frontier)
		if err != nil {
			return nil, err
		}
		frontier = frontier[:0]
		for _, c := range children {
			if seen[c.ID] {
				return nil, fmt.Errorf("%w: document %d appears twice in descendant walk", ErrCorruptLineage, c.ID)
			}
			seen[c.ID] = true
			out = append(out, c)
			frontier = append(frontier, c.ID)
		}
	}
	return out, nil
}

// Link is the display payload for one related document; it carries enough
// metadata that callers need no further type lookups.
type Link struct {
	ID        uint           `json:"id"`
	DocType   models.DocType `json:"doc_type"`
	DocNumber string         `json:"doc_number"`
	Prefix    string         `json:"prefix"`
	NameTH    string         `json:"name_th"`
	Icon      string         `json:"icon"`
	Color     string         `json:"color"`
}

// Related returns every other document in doc's conversion chain.
func Related(store Store, doc *models.Document) ([]Link, error) {
	root, err := ChainRoot(store, doc)
	if err != nil {
		return nil, err
	}
	chain, err := Descendants(store, root)
	if err != nil {
		return nil, err
	}
	links := make([]Link, 0, len(chain))
	for _, d := range chain {
		if d.ID == doc.ID {
			continue
		}
		info := d.DocType.Info()
		links = append(links, Link{
			ID:        d.ID,
			DocType:   d.DocType,
			DocNumber: d.DocNumber,
			Prefix:    info.Prefix,
			NameTH:    info.NameTH,
			Icon:      info.Icon,
			Color:     info.Color,
		})
	}
	return links, nil
}
