package migrations

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/ordercrm/app/models"
	"github.com/shashiranjanraj/ordercrm/pkg/migration"
)

func init() {
	migration.Register("20260201000000_create_users_table", &CreateUsersTable{})
	migration.Register("20260201000001_create_customers_table", &CreateCustomersTable{})
	migration.Register("20260201000002_create_products_table", &CreateProductsTable{})
	migration.Register("20260201000003_create_orders_table", &CreateOrdersTable{})
}

// -------- 0001: users --------

type CreateUsersTable struct{}

func (m *CreateUsersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{})
}

func (m *CreateUsersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("users")
}

// -------- 0002: customers --------

type CreateCustomersTable struct{}

func (m *CreateCustomersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Customer{})
}

func (m *CreateCustomersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("customers")
}

// -------- 0003: products and tags --------

type CreateProductsTable struct{}

func (m *CreateProductsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Product{}, &models.Tag{})
}

func (m *CreateProductsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("product_tags", "products", "tags")
}

// -------- 0004: orders --------

type CreateOrdersTable struct{}

func (m *CreateOrdersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Order{})
}

func (m *CreateOrdersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("orders")
}
