package models

import "time"

// Company settings: single-row table holding the issuing company profile
// printed on every document.
type Company struct {
	ID            uint   `gorm:"primaryKey"`
	Name          string `gorm:"size:200;not null;default:''"`
	Address       string `gorm:"type:text;default:''"`
	Phone         string `gorm:"size:50;default:''"`
	Email         string `gorm:"size:100;default:''"`
	TaxID         string `gorm:"size:20;default:''"`
	Branch        string `gorm:"size:100;default:'สำนักงานใหญ่'"`
	LogoPath      string `gorm:"size:500;default:''"`
	SignaturePath string `gorm:"size:500;default:''"`
	UpdatedAt     time.Time
}
