package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stylemart/storefront/internal/apperrors"
	"github.com/stylemart/storefront/internal/i18n"
	"github.com/stylemart/storefront/internal/models"
	"github.com/stylemart/storefront/internal/utils"
)

type CartService struct {
	db *gorm.DB
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{db: db}
}

type AddToCartRequest struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	VariantID uuid.UUID `json:"variantId" validate:"required"`
	Size      string    `json:"size" validate:"required"`
	Quantity  int       `json:"quantity"`
}

// AddToCart puts a line into the user's cart, clamped to the available
// stock for that size. Requesting more than is available is not an error:
// the quantity is silently capped. A line for the same
// (product, variant, size) is merged, not duplicated.
func (s *CartService) AddToCart(userID uuid.UUID, req *AddToCartRequest) (*models.Cart, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation(i18n.KeyValidationInvalid, "productId, variantId, size")
	}

	requestedQty := req.Quantity
	if requestedQty < 1 {
		requestedQty = 1
	}

	var product models.Product
	if err := s.db.First(&product, "id = ?", req.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound(i18n.KeyProductNotFound)
		}
		return nil, apperrors.Internal("failed to load product", err)
	}

	var variant models.ProductVariant
	if err := s.db.First(&variant, "id = ?", req.VariantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound(i18n.KeyVariantNotFound)
		}
		return nil, apperrors.Internal("failed to load variant", err)
	}

	if variant.ProductID != product.ID {
		return nil, apperrors.NotFound(i18n.KeyVariantNotFound)
	}

	sizeEntry := variant.Sizes.Find(req.Size)
	if sizeEntry == nil {
		return nil, apperrors.Validation(i18n.KeySizeNotFound, req.Size)
	}
	availableQty := sizeEntry.Quantity

	cart, err := s.findOrCreateCart(userID)
	if err != nil {
		return nil, err
	}

	var existing models.CartItem
	err = s.db.Where("cart_id = ? AND product_id = ? AND variant_id = ? AND size = ?",
		cart.ID, req.ProductID, req.VariantID, req.Size).First(&existing).Error

	switch {
	case err == nil:
		finalQuantity := min(existing.Quantity+requestedQty, availableQty)
		if err := s.db.Model(&existing).Update("quantity", finalQuantity).Error; err != nil {
			return nil, apperrors.Internal("failed to update cart item", err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		item := models.CartItem{
			CartID:    cart.ID,
			ProductID: req.ProductID,
			VariantID: req.VariantID,
			Size:      req.Size,
			Quantity:  min(requestedQty, availableQty),
		}
		if err := s.db.Create(&item).Error; err != nil {
			return nil, apperrors.Internal("failed to create cart item", err)
		}
	default:
		return nil, apperrors.Internal("failed to look up cart item", err)
	}

	return s.loadCart(cart.ID)
}

// RemoveFromCart deletes the line entirely. Lines belonging to another
// user's cart are reported as not found, not forbidden.
func (s *CartService) RemoveFromCart(userID, itemID uuid.UUID) error {
	item, err := s.ownedItem(userID, itemID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(&models.CartItem{}, "id = ?", item.ID).Error; err != nil {
		return apperrors.Internal("failed to delete cart item", err)
	}
	return nil
}

// UpdateQuantity steps a line's quantity by one. Increment refuses to
// exceed the size's stock; decrement below 1 removes the line instead of
// persisting a zero quantity.
func (s *CartService) UpdateQuantity(userID, itemID uuid.UUID, action models.CartAction) (*models.Cart, error) {
	if action != models.CartActionIncrement && action != models.CartActionDecrement {
		return nil, apperrors.Validation(i18n.KeyValidationInvalid, "action")
	}

	item, err := s.ownedItem(userID, itemID)
	if err != nil {
		return nil, err
	}

	var variant models.ProductVariant
	if err := s.db.First(&variant, "id = ?", item.VariantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound(i18n.KeyVariantNotFound)
		}
		return nil, apperrors.Internal("failed to load variant", err)
	}

	sizeEntry := variant.Sizes.Find(item.Size)
	if sizeEntry == nil {
		return nil, apperrors.Validation(i18n.KeySizeNotFound, item.Size)
	}

	if action == models.CartActionIncrement {
		if item.Quantity >= sizeEntry.Quantity {
			return nil, apperrors.Stock(i18n.KeyStockExceeded, sizeEntry.Quantity, item.Size)
		}
		if err := s.db.Model(item).Update("quantity", item.Quantity+1).Error; err != nil {
			return nil, apperrors.Internal("failed to update cart item", err)
		}
	} else {
		if item.Quantity > 1 {
			if err := s.db.Model(item).Update("quantity", item.Quantity-1).Error; err != nil {
				return nil, apperrors.Internal("failed to update cart item", err)
			}
		} else {
			if err := s.db.Delete(&models.CartItem{}, "id = ?", item.ID).Error; err != nil {
				return nil, apperrors.Internal("failed to delete cart item", err)
			}
		}
	}

	return s.loadCart(item.CartID)
}

// GetCart returns the user's cart with discount data preloaded so the
// client can display effective prices.
func (s *CartService) GetCart(userID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	err := s.db.Where("user_id = ?", userID).
		Preload("Items").
		Preload("Items.Product").
		Preload("Items.Product.Discounts").
		Preload("Items.Product.Variants").
		Preload("Items.Product.Variants.Images").
		Preload("Items.Product.Variants.Discounts").
		First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound(i18n.KeyCartNotFound)
		}
		return nil, apperrors.Internal("failed to load cart", err)
	}

	return &cart, nil
}

// Helper methods

func (s *CartService) findOrCreateCart(userID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	err := s.db.Where("user_id = ?", userID).First(&cart).Error
	if err == nil {
		return &cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Internal("failed to look up cart", err)
	}

	cart = models.Cart{UserID: userID}
	if err := s.db.Create(&cart).Error; err != nil {
		return nil, apperrors.Internal("failed to create cart", err)
	}
	return &cart, nil
}

func (s *CartService) ownedItem(userID, itemID uuid.UUID) (*models.CartItem, error) {
	var item models.CartItem
	err := s.db.Preload("Cart").First(&item, "id = ?", itemID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound(i18n.KeyCartItemNotFound)
		}
		return nil, apperrors.Internal("failed to load cart item", err)
	}

	if item.Cart == nil || item.Cart.UserID != userID {
		return nil, apperrors.NotFound(i18n.KeyCartItemNotFound)
	}

	return &item, nil
}

func (s *CartService) loadCart(cartID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	err := s.db.
		Preload("Items").
		Preload("Items.Product").
		Preload("Items.Product.Variants").
		Preload("Items.Product.Variants.Images").
		First(&cart, "id = ?", cartID).Error
	if err != nil {
		return nil, apperrors.Internal(fmt.Sprintf("failed to reload cart %s", cartID), err)
	}
	return &cart, nil
}
