package seeders

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/ordercrm/app/models"
	"github.com/shashiranjanraj/ordercrm/pkg/auth"
)

func init() {
	Register("admin", SeedAdmin)
	Register("products", SeedProducts)
}

// SeedAdmin creates the initial admin login if none exists.
func SeedAdmin(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword("changeme123")
	if err != nil {
		return err
	}

	return db.Create(&models.User{
		Username: "admin",
		Password: hash,
		Role:     models.RoleAdmin,
	}).Error
}

// SeedProducts inserts a small demo catalogue. Idempotent on re-run.
func SeedProducts(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	sports := models.Tag{Name: "Sports"}
	outdoor := models.Tag{Name: "Outdoor"}
	kitchen := models.Tag{Name: "Kitchen"}
	for _, t := range []*models.Tag{&sports, &outdoor, &kitchen} {
		if err := db.FirstOrCreate(t, models.Tag{Name: t.Name}).Error; err != nil {
			return err
		}
	}

	products := []models.Product{
		{Name: "BBQ Grill", Price: 120.00, Category: models.CategoryOutdoor, Description: "Charcoal grill", Tags: []models.Tag{outdoor, kitchen}},
		{Name: "Tennis Racket", Price: 80.00, Category: models.CategoryOutdoor, Description: "Graphite frame", Tags: []models.Tag{sports}},
		{Name: "Stand Mixer", Price: 230.00, Category: models.CategoryIndoor, Description: "Five litre bowl", Tags: []models.Tag{kitchen}},
	}
	for i := range products {
		if err := db.Create(&products[i]).Error; err != nil {
			return err
		}
	}
	return nil
}
