package models

import "gorm.io/gorm"

// Customer is the person orders belong to. The User link is optional:
// admins can create customers that have no login account.
type Customer struct {
	gorm.Model
	UserID     *uint  `gorm:"uniqueIndex"`
	User       *User  `gorm:"constraint:OnDelete:SET NULL"`
	Name       string `gorm:"size:200;not null"`
	Phone      string `gorm:"size:50"`
	Email      string `gorm:"size:255"`
	ProfilePic string `gorm:"size:500"` // storage path, empty when none uploaded

	Orders []Order
}
