package lineage

import (
	"errors"

	"github.com/packytong/Flowaccount/internal/models"

	"gorm.io/gorm"
)

// GormStore adapts a gorm connection (or transaction) to the Store interface.
type GormStore struct{ DB *gorm.DB }

func NewGormStore(db *gorm.DB) *GormStore { return &GormStore{DB: db} }

func (s *GormStore) GetByID(id uint) (*models.Document, error) {
	var doc models.Document
	err := s.DB.First(&doc, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (s *GormStore) ChildrenOf(parentIDs []uint) ([]models.Document, error) {
	var children []models.Document
	if err := s.DB.Where("source_document_id IN ?", parentIDs).Order("id").Find(&children).Error; err != nil {
		return nil, err
	}
	return children, nil
}
