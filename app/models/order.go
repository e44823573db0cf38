package models

import "gorm.io/gorm"

// Order status values. Every write path validates against Statuses, so
// rows never hold anything outside this set.
const (
	StatusPending        = "Pending"
	StatusOutForDelivery = "Out for delivery"
	StatusDelivered      = "Delivered"
)

// Statuses lists the valid order states in display order.
var Statuses = []string{StatusPending, StatusOutForDelivery, StatusDelivered}

// ValidStatus reports whether s is one of the enumerated order states.
func ValidStatus(s string) bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// Order always belongs to a customer. The product reference is optional
// and survives product deletion: the FK is nulled, the order persists.
type Order struct {
	gorm.Model
	CustomerID uint     `gorm:"not null;index"`
	Customer   Customer `gorm:"constraint:OnDelete:CASCADE"`
	ProductID  *uint    `gorm:"index"`
	Product    *Product `gorm:"constraint:OnDelete:SET NULL"`
	Status     string   `gorm:"size:50;not null;default:Pending"`
	Note       string   `gorm:"size:1000"`
}
