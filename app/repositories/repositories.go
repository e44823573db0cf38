// Package repositories defines the persistence interfaces the services
// program against, plus their GORM implementations. Services take the
// interfaces so tests can substitute in-memory fakes.
package repositories

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/ordercrm/app/models"
)

// ErrNotFound is returned when a looked-up identifier does not exist.
// Aliased to GORM's sentinel so both layers compare equal with errors.Is.
var ErrNotFound = gorm.ErrRecordNotFound

// UserRepository handles login accounts.
type UserRepository interface {
	FindByID(id uint) (models.User, error)
	FindByUsername(username string) (models.User, error)
	// CreateWithCustomer persists a user and its linked customer
	// atomically; neither row survives a failure of the other.
	CreateWithCustomer(user *models.User, customer *models.Customer) error
}

// CustomerRepository handles customer records.
type CustomerRepository interface {
	FindByID(id uint) (models.Customer, error)
	FindByUserID(userID uint) (models.Customer, error)
	All() ([]models.Customer, error)
	Create(customer *models.Customer) error
}

// ProductRepository handles the catalogue.
type ProductRepository interface {
	FindByID(id uint) (models.Product, error)
	All() ([]models.Product, error)
	Delete(id uint) error
}

// OrderRepository handles orders. List results are sorted by creation
// time descending with insertion order breaking ties.
type OrderRepository interface {
	FindByID(id uint) (models.Order, error)
	FindByCustomer(customerID uint) ([]models.Order, error)
	FindRecent(n int) ([]models.Order, error)
	All() ([]models.Order, error)
	// CreateBatch persists all rows or none.
	CreateBatch(orders []models.Order) error
	Save(order *models.Order) error
	Delete(id uint) error
}
