package models

import "time"

// Customer entity
type Customer struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:200;not null;index"`
	Address   string `gorm:"type:text;default:''"`
	Phone     string `gorm:"size:50;default:''"`
	TaxID     string `gorm:"size:20;default:'';index"`
	Branch    string `gorm:"size:100;default:'สำนักงานใหญ่'"`
	Email     string `gorm:"size:100;default:''"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
