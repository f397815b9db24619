package models

import (
	"time"

	"github.com/google/uuid"
)

// Discount attaches to exactly one of a product or a variant. Season-wide
// discounts are created as one row per product of that season, with Season
// recording the originating batch.
type Discount struct {
	BaseModel
	ProductID   *uuid.UUID `json:"product_id" gorm:"type:uuid;index"`
	VariantID   *uuid.UUID `json:"variant_id" gorm:"type:uuid;index"`
	Season      *Season    `json:"season" gorm:"type:varchar(20)"`
	Percentage  float64    `json:"percentage" gorm:"type:decimal(5,2);not null"`
	StartsAt    time.Time  `json:"starts_at" gorm:"not null;index"`
	EndsAt      time.Time  `json:"ends_at" gorm:"not null;index"`
	CreatedByID uuid.UUID  `json:"created_by_id" gorm:"type:uuid;not null"`

	// Relationships
	Product   *Product        `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Variant   *ProductVariant `json:"variant,omitempty" gorm:"foreignKey:VariantID"`
	CreatedBy *User           `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID"`
}

// ActiveAt reports whether now falls inside the discount window, bounds
// inclusive.
func (d *Discount) ActiveAt(now time.Time) bool {
	return !now.Before(d.StartsAt) && !now.After(d.EndsAt)
}
