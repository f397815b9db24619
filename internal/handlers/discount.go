package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/stylemart/storefront/internal/i18n"
	"github.com/stylemart/storefront/internal/services"
	"github.com/stylemart/storefront/internal/utils"
)

type DiscountHandler struct {
	service *services.DiscountService
}

func NewDiscountHandler(db *gorm.DB) *DiscountHandler {
	return &DiscountHandler{service: services.NewDiscountService(db)}
}

// Create handles POST /api/discount
func (h *DiscountHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.CreateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, i18n.KeyValidationInvalid, "body")
		return
	}

	discounts, err := h.service.CreateDiscount(userID, &req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.OK(c, discounts)
}

// Active handles GET /api/discounts/active
func (h *DiscountHandler) Active(c *gin.Context) {
	discounts, err := h.service.GetActiveDiscounts()
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.OK(c, discounts)
}

// List handles GET /api/discounts/all
func (h *DiscountHandler) List(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	discounts, total, err := h.service.GetAllDiscounts(params)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.PaginatedResponse(c, utils.CreatePaginationResult(discounts, total, params))
}

// Delete handles DELETE /api/discount/:id
func (h *DiscountHandler) Delete(c *gin.Context) {
	discountID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteDiscount(discountID); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.Message(c, i18n.KeyDiscountDeleted)
}
