package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Product struct {
	BaseModel
	UserID      uuid.UUID      `json:"user_id" gorm:"type:uuid;not null;index"`
	Title       string         `json:"title" gorm:"size:255;not null"`
	Description string         `json:"description" gorm:"type:text"`
	Price       float64        `json:"price" gorm:"type:decimal(10,2);not null"`
	Sex         string         `json:"sex" gorm:"size:20"`
	Model       string         `json:"model" gorm:"size:100"`
	Age         string         `json:"age" gorm:"size:50"`
	Season      Season         `json:"season" gorm:"type:varchar(20);not null;index"`
	Visible     bool           `json:"visible" gorm:"default:true;index"`
	Tags        pq.StringArray `json:"tags" gorm:"type:text[]"`

	// Computed per request, never stored.
	LikedByUser    bool    `json:"liked_by_user" gorm:"-"`
	EffectivePrice float64 `json:"effective_price" gorm:"-"`

	// Relationships
	User      User             `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Variants  []ProductVariant `json:"variants,omitempty" gorm:"foreignKey:ProductID"`
	Discounts []Discount       `json:"discounts,omitempty" gorm:"foreignKey:ProductID"`
	Comments  []Comment        `json:"comments,omitempty" gorm:"foreignKey:ProductID"`
	Likes     []Like           `json:"likes,omitempty" gorm:"foreignKey:ProductID"`
}

// SizeEntry is one (label, stock count) pair inside a variant's size list.
type SizeEntry struct {
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
}

// SizeList is the variant's per-size stock, stored embedded as JSONB rather
// than as normalized rows.
type SizeList []SizeEntry

func (s SizeList) Value() (driver.Value, error) {
	if s == nil {
		return json.Marshal(SizeList{})
	}
	return json.Marshal(s)
}

func (s *SizeList) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		str, sok := value.(string)
		if !sok {
			return errors.New("unsupported source type for SizeList")
		}
		bytes = []byte(str)
	}

	return json.Unmarshal(bytes, s)
}

// Find returns the entry with the given size label, or nil.
func (s SizeList) Find(size string) *SizeEntry {
	for i := range s {
		if s[i].Size == size {
			return &s[i]
		}
	}
	return nil
}

// Decremented returns a copy of the list with the matching size reduced by
// qty. The whole list is rewritten on update, only the matching entry changes.
func (s SizeList) Decremented(size string, qty int) SizeList {
	out := make(SizeList, len(s))
	copy(out, s)
	for i := range out {
		if out[i].Size == size {
			out[i].Quantity -= qty
		}
	}
	return out
}

// Incremented is the restock counterpart of Decremented.
func (s SizeList) Incremented(size string, qty int) SizeList {
	return s.Decremented(size, -qty)
}

type ProductVariant struct {
	BaseModel
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null;index"`
	Color     string    `json:"color" gorm:"size:50;not null"`
	Sizes     SizeList  `json:"sizes" gorm:"type:jsonb"`
	// Version guards the read-modify-write of Sizes. Stock updates must
	// match the version they read and bump it, or affect zero rows.
	Version int `json:"-" gorm:"default:1;not null"`

	// Relationships
	Product   *Product       `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Images    []ProductImage `json:"images,omitempty" gorm:"foreignKey:VariantID"`
	Discounts []Discount     `json:"discounts,omitempty" gorm:"foreignKey:VariantID"`
}

type ProductImage struct {
	BaseModel
	VariantID uuid.UUID `json:"variant_id" gorm:"type:uuid;not null;index"`
	URL       string    `json:"url" gorm:"size:512;not null"`
}
