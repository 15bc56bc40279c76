package models

import "time"

// Audit logging
type AuditLog struct {
	ID         uint   `gorm:"primaryKey"`
	UserID     uint   // who made the change
	EntityType string `gorm:"size:50"` // ex: "Document", "Customer", "Company"
	EntityID   uint
	Action     string `gorm:"size:20"` // ex: "create", "convert", "delete"
	Detail     string // free text, ex: resulting doc numbers
	CreatedAt  time.Time
}
