package repositories

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/ordercrm/app/models"
)

// GormOrderRepository is the database-backed OrderRepository.
type GormOrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func (r *GormOrderRepository) scoped() *gorm.DB {
	return r.db.Preload("Product").Order("created_at DESC, id DESC")
}

func (r *GormOrderRepository) FindByID(id uint) (models.Order, error) {
	var order models.Order
	err := r.db.Preload("Product").Preload("Customer").First(&order, id).Error
	return order, err
}

func (r *GormOrderRepository) FindByCustomer(customerID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.scoped().Where("customer_id = ?", customerID).Find(&orders).Error
	return orders, err
}

func (r *GormOrderRepository) FindRecent(n int) ([]models.Order, error) {
	var orders []models.Order
	err := r.scoped().Preload("Customer").Limit(n).Find(&orders).Error
	return orders, err
}

func (r *GormOrderRepository) All() ([]models.Order, error) {
	var orders []models.Order
	err := r.scoped().Find(&orders).Error
	return orders, err
}

func (r *GormOrderRepository) CreateBatch(orders []models.Order) error {
	if len(orders) == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		for i := range orders {
			if err := tx.Create(&orders[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *GormOrderRepository) Save(order *models.Order) error {
	return r.db.Save(order).Error
}

func (r *GormOrderRepository) Delete(id uint) error {
	return r.db.Delete(&models.Order{}, id).Error
}
