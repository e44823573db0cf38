package models

import "gorm.io/gorm"

// Role values stored in users.role. pkg/guard owns the permission logic;
// this column is only the persisted form.
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// User is the login account. A Customer may reference at most one User.
type User struct {
	gorm.Model
	Username string `gorm:"uniqueIndex;size:150;not null"`
	Password string `gorm:"size:255;not null"` // bcrypt hash, never rendered
	Role     string `gorm:"size:50;not null;default:customer"`
}
