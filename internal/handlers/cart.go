package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stylemart/storefront/internal/i18n"
	"github.com/stylemart/storefront/internal/models"
	"github.com/stylemart/storefront/internal/services"
	"github.com/stylemart/storefront/internal/utils"
)

type CartHandler struct {
	service *services.CartService
}

func NewCartHandler(db *gorm.DB) *CartHandler {
	return &CartHandler{service: services.NewCartService(db)}
}

// AddToCart handles PUT /api/cart
func (h *CartHandler) AddToCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, i18n.KeyValidationInvalid, "body")
		return
	}

	cart, err := h.service.AddToCart(userID, &req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.OK(c, cart)
}

type removeItemRequest struct {
	ItemID uuid.UUID `json:"itemId" binding:"required"`
}

// RemoveItem handles DELETE /api/cart
func (h *CartHandler) RemoveItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req removeItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, i18n.KeyValidationInvalid, "itemId")
		return
	}

	if err := h.service.RemoveFromCart(userID, req.ItemID); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.Message(c, i18n.KeyCartItemRemoved)
}

type updateQuantityRequest struct {
	ItemID uuid.UUID         `json:"itemId" binding:"required"`
	Action models.CartAction `json:"action" binding:"required"`
}

// UpdateQuantity handles PUT /api/cart/update-quantity
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req updateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, i18n.KeyValidationInvalid, "itemId, action")
		return
	}

	cart, err := h.service.UpdateQuantity(userID, req.ItemID, req.Action)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.OK(c, cart)
}

// GetCart handles GET /api/cart
func (h *CartHandler) GetCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	cart, err := h.service.GetCart(userID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.OK(c, cart)
}
