package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stylemart/storefront/internal/apperrors"
	"github.com/stylemart/storefront/internal/i18n"
	"github.com/stylemart/storefront/internal/models"
	"github.com/stylemart/storefront/internal/utils"
)

type DiscountService struct {
	db *gorm.DB
}

func NewDiscountService(db *gorm.DB) *DiscountService {
	return &DiscountService{db: db}
}

type CreateDiscountRequest struct {
	ProductID  *uuid.UUID     `json:"productId"`
	VariantID  *uuid.UUID     `json:"variantId"`
	Season     *models.Season `json:"season"`
	Percentage float64        `json:"percentage" validate:"required"`
	StartsAt   *time.Time     `json:"startsAt" validate:"required"`
	EndsAt     *time.Time     `json:"endsAt" validate:"required"`
}

// CreateDiscount attaches a percentage discount to a target. The target is
// resolved in priority order: a season fans out to one discount row per
// product of that season, a product targets that single product, a variant
// targets the variant. Exactly one of the three must be set.
func (s *DiscountService) CreateDiscount(userID uuid.UUID, req *CreateDiscountRequest) ([]models.Discount, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation(i18n.KeyDiscountDatesRequired)
	}
	if req.Percentage <= 0 || req.Percentage > 100 {
		return nil, apperrors.Validation(i18n.KeyDiscountInvalidPct)
	}
	if req.StartsAt == nil || req.EndsAt == nil || req.EndsAt.Before(*req.StartsAt) {
		return nil, apperrors.Validation(i18n.KeyDiscountDatesRequired)
	}

	// Targets resolve in priority order; the first one present wins.
	switch {
	case req.Season != nil:
		return s.createSeasonDiscounts(userID, req)
	case req.ProductID != nil:
		return s.createProductDiscount(userID, req)
	case req.VariantID != nil:
		return s.createVariantDiscount(userID, req)
	default:
		return nil, apperrors.Validation(i18n.KeyDiscountInvalidTarget)
	}
}

func (s *DiscountService) createSeasonDiscounts(userID uuid.UUID, req *CreateDiscountRequest) ([]models.Discount, error) {
	if !req.Season.Valid() {
		return nil, apperrors.Validation(i18n.KeyDiscountInvalidTarget)
	}

	var products []models.Product
	if err := s.db.Where("season = ?", *req.Season).Find(&products).Error; err != nil {
		return nil, apperrors.Internal("failed to load season products", err)
	}
	if len(products) == 0 {
		return nil, apperrors.NotFound(i18n.KeyProductNotFound)
	}

	discounts := make([]models.Discount, 0, len(products))
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, product := range products {
			productID := product.ID
			discount := models.Discount{
				ProductID:   &productID,
				Season:      req.Season,
				Percentage:  req.Percentage,
				StartsAt:    *req.StartsAt,
				EndsAt:      *req.EndsAt,
				CreatedByID: userID,
			}
			if err := tx.Create(&discount).Error; err != nil {
				return apperrors.Internal("failed to create discount", err)
			}
			discounts = append(discounts, discount)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return discounts, nil
}

func (s *DiscountService) createProductDiscount(userID uuid.UUID, req *CreateDiscountRequest) ([]models.Discount, error) {
	var product models.Product
	if err := s.db.First(&product, "id = ?", *req.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound(i18n.KeyProductNotFound)
		}
		return nil, apperrors.Internal("failed to load product", err)
	}

	discount := models.Discount{
		ProductID:   req.ProductID,
		Percentage:  req.Percentage,
		StartsAt:    *req.StartsAt,
		EndsAt:      *req.EndsAt,
		CreatedByID: userID,
	}
	if err := s.db.Create(&discount).Error; err != nil {
		return nil, apperrors.Internal("failed to create discount", err)
	}
	return []models.Discount{discount}, nil
}

func (s *DiscountService) createVariantDiscount(userID uuid.UUID, req *CreateDiscountRequest) ([]models.Discount, error) {
	var variant models.ProductVariant
	if err := s.db.First(&variant, "id = ?", *req.VariantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound(i18n.KeyVariantNotFound)
		}
		return nil, apperrors.Internal("failed to load variant", err)
	}

	discount := models.Discount{
		VariantID:   req.VariantID,
		Percentage:  req.Percentage,
		StartsAt:    *req.StartsAt,
		EndsAt:      *req.EndsAt,
		CreatedByID: userID,
	}
	if err := s.db.Create(&discount).Error; err != nil {
		return nil, apperrors.Internal("failed to create discount", err)
	}
	return []models.Discount{discount}, nil
}

// GetActiveDiscounts lists the discounts whose window covers the current
// moment, both bounds inclusive.
func (s *DiscountService) GetActiveDiscounts() ([]models.Discount, error) {
	now := time.Now()
	var discounts []models.Discount
	err := s.db.Where("starts_at <= ? AND ends_at >= ?", now, now).
		Preload("Product").
		Preload("Variant").
		Order("created_at DESC").
		Find(&discounts).Error
	if err != nil {
		return nil, apperrors.Internal("failed to fetch active discounts", err)
	}
	return discounts, nil
}

func (s *DiscountService) GetAllDiscounts(params utils.PaginationParams) ([]models.Discount, int64, error) {
	query := s.db.Model(&models.Discount{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Internal("failed to count discounts", err)
	}

	allowedSortFields := []string{"created_at", "starts_at", "ends_at", "percentage"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var discounts []models.Discount
	err := query.
		Preload("Product").
		Preload("Variant").
		Preload("CreatedBy").
		Find(&discounts).Error
	if err != nil {
		return nil, 0, apperrors.Internal("failed to fetch discounts", err)
	}
	return discounts, total, nil
}

func (s *DiscountService) DeleteDiscount(discountID uuid.UUID) error {
	var discount models.Discount
	if err := s.db.First(&discount, "id = ?", discountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound(i18n.KeyDiscountNotFound)
		}
		return apperrors.Internal("failed to load discount", err)
	}

	if err := s.db.Delete(&discount).Error; err != nil {
		return apperrors.Internal("failed to delete discount", err)
	}
	return nil
}
