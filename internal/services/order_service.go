package services

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stylemart/storefront/internal/apperrors"
	"github.com/stylemart/storefront/internal/i18n"
	"github.com/stylemart/storefront/internal/models"
	"github.com/stylemart/storefront/internal/pricing"
	"github.com/stylemart/storefront/internal/utils"
)

type OrderService struct {
	db *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

type OrderItemRequest struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	VariantID uuid.UUID `json:"variantId" validate:"required"`
	Size      string    `json:"size" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
}

type CreateOrderRequest struct {
	Items           []OrderItemRequest    `json:"items" validate:"required,min=1,dive"`
	DeliveryMethod  models.DeliveryMethod `json:"deliveryMethod" validate:"required"`
	DeliveryAddress string                `json:"deliveryAddress"`
}

// variantUpdate accumulates the stock decrements for one variant row so a
// single guarded UPDATE covers every order line that touches it.
type variantUpdate struct {
	variant models.ProductVariant
	sizes   models.SizeList
}

// CreateOrder runs the whole order workflow as one transaction: validate
// every line against live stock, price it with the discounts active right
// now, persist the order with frozen snapshot lines, decrement stock and
// clear the matching cart lines. Any failure rolls the whole thing back.
//
// Stock decrements are optimistic: the variant row carries a version that
// the UPDATE must match and bump. A concurrent order that got there first
// makes the guard miss, and this order is rejected instead of overselling.
func (s *OrderService) CreateOrder(userID uuid.UUID, req *CreateOrderRequest) (*models.Order, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation(i18n.KeyOrderInvalid)
	}
	if !req.DeliveryMethod.Valid() {
		return nil, apperrors.Validation(i18n.KeyOrderInvalid)
	}
	if req.DeliveryMethod == models.DeliveryCourier && strings.TrimSpace(req.DeliveryAddress) == "" {
		return nil, apperrors.Validation(i18n.KeyOrderAddressRequired)
	}

	now := time.Now()
	var order models.Order

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var totalPrice float64
		items := make([]models.OrderItem, 0, len(req.Items))
		updates := make(map[uuid.UUID]*variantUpdate)

		for _, line := range req.Items {
			var product models.Product
			if err := tx.Preload("Discounts").First(&product, "id = ?", line.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperrors.NotFound(i18n.KeyProductNotFound)
				}
				return apperrors.Internal("failed to load product", err)
			}

			upd, ok := updates[line.VariantID]
			if !ok {
				var variant models.ProductVariant
				if err := tx.Preload("Discounts").First(&variant, "id = ?", line.VariantID).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return apperrors.NotFound(i18n.KeyVariantNotFound)
					}
					return apperrors.Internal("failed to load variant", err)
				}
				if variant.ProductID != product.ID {
					return apperrors.NotFound(i18n.KeyVariantNotFound)
				}
				upd = &variantUpdate{variant: variant, sizes: variant.Sizes}
				updates[line.VariantID] = upd
			}

			sizeEntry := upd.sizes.Find(line.Size)
			if sizeEntry == nil {
				return apperrors.Validation(i18n.KeySizeNotFound, line.Size)
			}
			if sizeEntry.Quantity < line.Quantity {
				return apperrors.Stock(i18n.KeyOrderInsufficientStock, sizeEntry.Quantity, line.Quantity)
			}
			upd.sizes = upd.sizes.Decremented(line.Size, line.Quantity)

			unitPrice := pricing.EffectiveUnitPrice(product.Price, now, product.Discounts, upd.variant.Discounts)
			totalPrice += unitPrice * float64(line.Quantity)

			productID := product.ID
			items = append(items, models.OrderItem{
				ProductID: &productID,
				VariantID: line.VariantID,
				Size:      line.Size,
				Quantity:  line.Quantity,
				Title:     product.Title,
				Price:     unitPrice,
				Model:     product.Model,
				Color:     upd.variant.Color,
			})
		}

		order = models.Order{
			UserID:          userID,
			TotalPrice:      totalPrice,
			Status:          models.OrderStatusPending,
			DeliveryMethod:  req.DeliveryMethod,
			DeliveryAddress: req.DeliveryAddress,
			IsReady:         false,
			IsGivenToClient: false,
			Items:           items,
		}
		if err := tx.Create(&order).Error; err != nil {
			return apperrors.Internal("failed to create order", err)
		}

		for _, upd := range updates {
			res := tx.Model(&models.ProductVariant{}).
				Where("id = ? AND version = ?", upd.variant.ID, upd.variant.Version).
				Updates(map[string]interface{}{
					"sizes":   upd.sizes,
					"version": upd.variant.Version + 1,
				})
			if res.Error != nil {
				return apperrors.Internal("failed to update stock", res.Error)
			}
			if res.RowsAffected == 0 {
				// Lost the race against a concurrent order.
				return apperrors.Stock(i18n.KeyOrderInsufficientStock, 0, 0)
			}
		}

		if err := s.clearCartLines(tx, userID, req.Items); err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.db.Preload("Items").First(&order, "id = ?", order.ID)
	return &order, nil
}

// clearCartLines bulk-deletes the purchased (variant, size) pairs from the
// user's cart in a single statement.
func (s *OrderService) clearCartLines(tx *gorm.DB, userID uuid.UUID, items []OrderItemRequest) error {
	var cart models.Cart
	err := tx.Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return apperrors.Internal("failed to look up cart", err)
	}

	conds := make([]string, 0, len(items))
	args := make([]interface{}, 0, len(items)*2+1)
	args = append(args, cart.ID)
	for _, item := range items {
		conds = append(conds, "(variant_id = ? AND size = ?)")
		args = append(args, item.VariantID, item.Size)
	}

	query := "cart_id = ? AND (" + strings.Join(conds, " OR ") + ")"
	if err := tx.Where(query, args...).Delete(&models.CartItem{}).Error; err != nil {
		return apperrors.Internal("failed to clear cart lines", err)
	}
	return nil
}

type CheckItemsRequest struct {
	Items []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

type MissingItem struct {
	VariantID         uuid.UUID `json:"variantId"`
	ProductTitle      string    `json:"productTitle,omitempty"`
	Size              string    `json:"size,omitempty"`
	RequestedQuantity int       `json:"requestedQuantity,omitempty"`
	AvailableQuantity int       `json:"availableQuantity,omitempty"`
	// Reason holds a message key, translated at the handler boundary.
	Reason string `json:"reason"`
}

type AvailabilityResult struct {
	Available   bool         `json:"available"`
	MissingItem *MissingItem `json:"missingItem,omitempty"`
}

// CheckAvailability is the read-only twin of the order validation pass. It
// reports the first failing line and stops; callers fix their basket one
// problem at a time.
func (s *OrderService) CheckAvailability(req *CheckItemsRequest) (*AvailabilityResult, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation(i18n.KeyOrderInvalid)
	}

	for _, line := range req.Items {
		var variant models.ProductVariant
		err := s.db.Preload("Product").First(&variant, "id = ?", line.VariantID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &AvailabilityResult{
				Available:   false,
				MissingItem: &MissingItem{VariantID: line.VariantID, Reason: i18n.KeyVariantNotFound},
			}, nil
		}
		if err != nil {
			return nil, apperrors.Internal("failed to load variant", err)
		}

		title := ""
		if variant.Product != nil {
			title = variant.Product.Title
		}

		sizeEntry := variant.Sizes.Find(line.Size)
		if sizeEntry == nil {
			return &AvailabilityResult{
				Available: false,
				MissingItem: &MissingItem{
					VariantID:    line.VariantID,
					ProductTitle: title,
					Size:         line.Size,
					Reason:       i18n.KeySizeNotFound,
				},
			}, nil
		}

		if sizeEntry.Quantity < line.Quantity {
			return &AvailabilityResult{
				Available: false,
				MissingItem: &MissingItem{
					VariantID:         line.VariantID,
					ProductTitle:      title,
					Size:              line.Size,
					RequestedQuantity: line.Quantity,
					AvailableQuantity: sizeEntry.Quantity,
					Reason:            i18n.KeyOrderInsufficientStock,
				},
			}, nil
		}
	}

	return &AvailabilityResult{Available: true}, nil
}

func (s *OrderService) GetUserOrders(userID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.Where("user_id = ?", userID).
		Preload("Items").
		Preload("Items.Product").
		Preload("Items.Variant").
		Preload("Items.Variant.Images").
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, apperrors.Internal("failed to fetch orders", err)
	}
	return orders, nil
}

func (s *OrderService) GetOrder(userID, orderID uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := s.db.Preload("Items").Preload("Items.Product").First(&order, "id = ?", orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound(i18n.KeyOrderNotFound)
		}
		return nil, apperrors.Internal("failed to load order", err)
	}

	if order.UserID != userID {
		return nil, apperrors.Forbidden(i18n.KeyOrderForbidden)
	}

	return &order, nil
}

// DeleteOrder removes the caller's order and restores stock to the same
// (variant, size) entries the order decremented. Variants that no longer
// exist are skipped; their history lives on in the snapshot lines only.
func (s *OrderService) DeleteOrder(userID, orderID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		err := tx.Preload("Items").First(&order, "id = ?", orderID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound(i18n.KeyOrderNotFound)
			}
			return apperrors.Internal("failed to load order", err)
		}

		if order.UserID != userID {
			return apperrors.Forbidden(i18n.KeyOrderForbidden)
		}

		restocks := make(map[uuid.UUID]*variantUpdate)
		for _, item := range order.Items {
			upd, ok := restocks[item.VariantID]
			if !ok {
				var variant models.ProductVariant
				err := tx.First(&variant, "id = ?", item.VariantID).Error
				if errors.Is(err, gorm.ErrRecordNotFound) {
					continue
				}
				if err != nil {
					return apperrors.Internal("failed to load variant", err)
				}
				upd = &variantUpdate{variant: variant, sizes: variant.Sizes}
				restocks[item.VariantID] = upd
			}
			upd.sizes = upd.sizes.Incremented(item.Size, item.Quantity)
		}

		for _, upd := range restocks {
			res := tx.Model(&models.ProductVariant{}).
				Where("id = ? AND version = ?", upd.variant.ID, upd.variant.Version).
				Updates(map[string]interface{}{
					"sizes":   upd.sizes,
					"version": upd.variant.Version + 1,
				})
			if res.Error != nil {
				return apperrors.Internal("failed to restore stock", res.Error)
			}
			if res.RowsAffected == 0 {
				return apperrors.Internal("variant changed concurrently, restock aborted", nil)
			}
		}

		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return apperrors.Internal("failed to delete order items", err)
		}
		if err := tx.Delete(&order).Error; err != nil {
			return apperrors.Internal("failed to delete order", err)
		}
		return nil
	})
}

// MarkReady and MarkGiven flip the fulfillment flags. Role checks happen in
// the routing layer.

func (s *OrderService) MarkReady(orderID uuid.UUID) (*models.Order, error) {
	return s.setFlag(orderID, "is_ready")
}

func (s *OrderService) MarkGiven(orderID uuid.UUID) (*models.Order, error) {
	return s.setFlag(orderID, "is_given_to_client")
}

func (s *OrderService) setFlag(orderID uuid.UUID, column string) (*models.Order, error) {
	var order models.Order
	if err := s.db.First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound(i18n.KeyOrderNotFound)
		}
		return nil, apperrors.Internal("failed to load order", err)
	}

	if err := s.db.Model(&order).Update(column, true).Error; err != nil {
		return nil, apperrors.Internal("failed to update order", err)
	}

	return &order, nil
}

func (s *OrderService) GetAllOrders(params utils.PaginationParams) ([]models.Order, int64, error) {
	query := s.db.Model(&models.Order{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Internal("failed to count orders", err)
	}

	allowedSortFields := []string{"created_at", "updated_at", "total_price", "status"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var orders []models.Order
	err := query.
		Preload("User").
		Preload("Items").
		Preload("Items.Product").
		Find(&orders).Error
	if err != nil {
		return nil, 0, apperrors.Internal("failed to fetch orders", err)
	}

	return orders, total, nil
}

func (s *OrderService) GetOrdersByUser(userID uuid.UUID, params utils.PaginationParams) ([]models.Order, int64, error) {
	query := s.db.Model(&models.Order{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Internal("failed to count orders", err)
	}

	allowedSortFields := []string{"created_at", "updated_at", "total_price", "status"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var orders []models.Order
	err := query.
		Preload("User").
		Preload("Items").
		Preload("Items.Product").
		Find(&orders).Error
	if err != nil {
		return nil, 0, apperrors.Internal("failed to fetch user orders", err)
	}

	return orders, total, nil
}
