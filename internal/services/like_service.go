package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stylemart/storefront/internal/apperrors"
	"github.com/stylemart/storefront/internal/i18n"
	"github.com/stylemart/storefront/internal/models"
)

type LikeService struct {
	db *gorm.DB
}

func NewLikeService(db *gorm.DB) *LikeService {
	return &LikeService{db: db}
}

type RateProductRequest struct {
	Rating int `json:"rating" validate:"required,min=1,max=5"`
}

// RateProduct records the caller's 1-5 rating. Only users who actually
// bought the product may rate it, and rating twice overwrites the previous
// value rather than adding a second row.
func (s *LikeService) RateProduct(userID, productID uuid.UUID, req *RateProductRequest) (*models.Like, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, apperrors.Validation(i18n.KeyRatingInvalid)
	}

	var product models.Product
	if err := s.db.First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound(i18n.KeyProductNotFound)
		}
		return nil, apperrors.Internal("failed to load product", err)
	}

	purchased, err := s.hasPurchased(userID, productID)
	if err != nil {
		return nil, err
	}
	if !purchased {
		return nil, apperrors.Forbidden(i18n.KeyRatingNotPurchased)
	}

	var like models.Like
	err = s.db.Where("product_id = ? AND user_id = ?", productID, userID).First(&like).Error
	switch {
	case err == nil:
		if err := s.db.Model(&like).Update("rating", req.Rating).Error; err != nil {
			return nil, apperrors.Internal("failed to update rating", err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		like = models.Like{ProductID: productID, UserID: userID, Rating: req.Rating}
		if err := s.db.Create(&like).Error; err != nil {
			return nil, apperrors.Internal("failed to create rating", err)
		}
	default:
		return nil, apperrors.Internal("failed to look up rating", err)
	}

	return &like, nil
}

// DeleteRating removes the caller's rating of the product.
func (s *LikeService) DeleteRating(userID, productID uuid.UUID) error {
	var like models.Like
	err := s.db.Where("product_id = ? AND user_id = ?", productID, userID).First(&like).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound(i18n.KeyRatingNotFound)
		}
		return apperrors.Internal("failed to look up rating", err)
	}

	if err := s.db.Delete(&like).Error; err != nil {
		return apperrors.Internal("failed to delete rating", err)
	}
	return nil
}

// hasPurchased checks the order history for a snapshot line still pointing
// at the product.
func (s *LikeService) hasPurchased(userID, productID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.Model(&models.OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.user_id = ? AND order_items.product_id = ?", userID, productID).
		Count(&count).Error
	if err != nil {
		return false, apperrors.Internal("failed to check purchase history", err)
	}
	return count > 0, nil
}
