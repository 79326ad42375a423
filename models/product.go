package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	Base
	Slug        string          `gorm:"uniqueIndex;not null" json:"slug"`
	Title       string          `gorm:"not null" json:"title"`
	Description string          `json:"description"`
	BasePrice   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"basePrice"`
	OfferPrice  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"offerPrice"`
	Stock       int             `json:"stock"`
	CategoryID  *string         `gorm:"index" json:"categoryId"`
	Category    *Category       `json:"category,omitempty"`
	Images      []ProductImage  `json:"images"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`
}

type ProductImage struct {
	Base
	ProductID string  `gorm:"index;not null" json:"productId"`
	URL       string  `gorm:"not null" json:"url"`
	PublicID  string  `json:"publicId"`
	Color     *string `json:"color"`
}
