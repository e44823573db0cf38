package repositories

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/ordercrm/app/models"
)

// GormUserRepository is the database-backed UserRepository.
type GormUserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) FindByID(id uint) (models.User, error) {
	var user models.User
	err := r.db.First(&user, id).Error
	return user, err
}

func (r *GormUserRepository) FindByUsername(username string) (models.User, error) {
	var user models.User
	err := r.db.Where("username = ?", username).First(&user).Error
	return user, err
}

func (r *GormUserRepository) CreateWithCustomer(user *models.User, customer *models.Customer) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		customer.UserID = &user.ID
		return tx.Create(customer).Error
	})
}
