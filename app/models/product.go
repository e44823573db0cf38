package models

import "gorm.io/gorm"

// Product categories rendered in the catalogue filter.
const (
	CategoryIndoor  = "Indoor"
	CategoryOutdoor = "Outdoor"
)

// Product is a catalogue item referenced by orders.
type Product struct {
	gorm.Model
	Name        string  `gorm:"size:200;not null;index"`
	Price       float64 `gorm:"not null;default:0"`
	Category    string  `gorm:"size:100"`
	Description string  `gorm:"type:text"`
	ImagePath   string  `gorm:"size:500"`

	Tags []Tag `gorm:"many2many:product_tags"`
}

// Tag labels products; a product can carry many tags and vice versa.
type Tag struct {
	gorm.Model
	Name string `gorm:"size:100;uniqueIndex;not null"`

	Products []Product `gorm:"many2many:product_tags"`
}
