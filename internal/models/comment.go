package models

import (
	"github.com/google/uuid"
)

type Comment struct {
	BaseModel
	ProductID uuid.UUID     `json:"product_id" gorm:"type:uuid;not null;index"`
	UserID    uuid.UUID     `json:"user_id" gorm:"type:uuid;not null;index"`
	Text      string        `json:"text" gorm:"type:text;not null"`
	Visible   bool          `json:"visible" gorm:"default:false;index"`
	Status    CommentStatus `json:"status" gorm:"type:varchar(20);default:'pending';index"`

	// Relationships
	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	User    *User    `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// Like stores a purchaser's 1-5 rating of a product, one row per
// (product, user).
type Like struct {
	BaseModel
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null;index:idx_likes_product_user,unique"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index:idx_likes_product_user,unique"`
	Rating    int       `json:"rating" gorm:"not null"`

	// Relationships
	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	User    *User    `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
