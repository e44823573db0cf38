package repositories

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/ordercrm/app/models"
)

// GormCustomerRepository is the database-backed CustomerRepository.
type GormCustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

func (r *GormCustomerRepository) FindByID(id uint) (models.Customer, error) {
	var customer models.Customer
	err := r.db.First(&customer, id).Error
	return customer, err
}

func (r *GormCustomerRepository) FindByUserID(userID uint) (models.Customer, error) {
	var customer models.Customer
	err := r.db.Where("user_id = ?", userID).First(&customer).Error
	return customer, err
}

func (r *GormCustomerRepository) All() ([]models.Customer, error) {
	var customers []models.Customer
	err := r.db.Order("created_at DESC, id DESC").Find(&customers).Error
	return customers, err
}

func (r *GormCustomerRepository) Create(customer *models.Customer) error {
	return r.db.Create(customer).Error
}
