package models

import (
	"github.com/google/uuid"
)

// Cart is the user's single mutable selection. At most one item per
// (product, variant, size) triple.
type Cart struct {
	BaseModel
	UserID uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex"`

	Items []CartItem `json:"items,omitempty" gorm:"foreignKey:CartID"`
}

type CartItem struct {
	BaseModel
	CartID    uuid.UUID `json:"cart_id" gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null;index"`
	VariantID uuid.UUID `json:"variant_id" gorm:"type:uuid;not null;index"`
	Size      string    `json:"size" gorm:"size:20;not null"`
	Quantity  int       `json:"quantity" gorm:"not null"`

	// Relationships
	Cart    *Cart           `json:"cart,omitempty" gorm:"foreignKey:CartID"`
	Product *Product        `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Variant *ProductVariant `json:"variant,omitempty" gorm:"foreignKey:VariantID"`
}
