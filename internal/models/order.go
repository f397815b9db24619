package models

import (
	"github.com/google/uuid"
)

type Order struct {
	BaseModel
	UserID          uuid.UUID      `json:"user_id" gorm:"type:uuid;not null;index"`
	TotalPrice      float64        `json:"total_price" gorm:"type:decimal(10,2);not null"`
	Status          OrderStatus    `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	DeliveryMethod  DeliveryMethod `json:"delivery_method" gorm:"type:varchar(20);not null"`
	DeliveryAddress string         `json:"delivery_address" gorm:"size:512"`
	IsReady         bool           `json:"is_ready" gorm:"default:false"`
	IsGivenToClient bool           `json:"is_given_to_client" gorm:"default:false"`

	// Relationships
	User  *User       `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Items []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID"`
}

// OrderItem is a snapshot line: Title, Price, Model and Color are frozen at
// purchase time and stay fixed even if the product or its discounts change.
// ProductID is nullable so deleting a product detaches the line instead of
// erasing purchase history.
type OrderItem struct {
	BaseModel
	OrderID   uuid.UUID  `json:"order_id" gorm:"type:uuid;not null;index"`
	ProductID *uuid.UUID `json:"product_id" gorm:"type:uuid;index"`
	VariantID uuid.UUID  `json:"variant_id" gorm:"type:uuid;not null;index"`
	Size      string     `json:"size" gorm:"size:20;not null"`
	Quantity  int        `json:"quantity" gorm:"not null"`
	Title     string     `json:"title" gorm:"size:255;not null"`
	Price     float64    `json:"price" gorm:"type:decimal(10,2);not null"`
	Model     string     `json:"model" gorm:"size:100"`
	Color     string     `json:"color" gorm:"size:50"`

	// Relationships
	Order   *Order          `json:"order,omitempty" gorm:"foreignKey:OrderID"`
	Product *Product        `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Variant *ProductVariant `json:"variant,omitempty" gorm:"foreignKey:VariantID"`
}
