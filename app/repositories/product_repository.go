package repositories

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/ordercrm/app/models"
)

// GormProductRepository is the database-backed ProductRepository.
type GormProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) FindByID(id uint) (models.Product, error) {
	var product models.Product
	err := r.db.Preload("Tags").First(&product, id).Error
	return product, err
}

func (r *GormProductRepository) All() ([]models.Product, error) {
	var products []models.Product
	err := r.db.Preload("Tags").Order("created_at DESC, id DESC").Find(&products).Error
	return products, err
}

// Delete removes the product and nulls the reference on any order that
// points at it. Orders survive product deletion.
func (r *GormProductRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Order{}).
			Where("product_id = ?", id).
			Update("product_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Product{}, id).Error
	})
}
