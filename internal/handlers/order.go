package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/stylemart/storefront/internal/i18n"
	"github.com/stylemart/storefront/internal/models"
	"github.com/stylemart/storefront/internal/services"
	"github.com/stylemart/storefront/internal/utils"
)

type OrderHandler struct {
	service *services.OrderService
}

func NewOrderHandler(db *gorm.DB) *OrderHandler {
	return &OrderHandler{service: services.NewOrderService(db)}
}

// Create handles POST /api/orders
func (h *OrderHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, i18n.KeyOrderInvalid)
		return
	}

	order, err := h.service.CreateOrder(userID, &req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.OK(c, order)
}

// Check handles POST /api/orders/check. It never fails on stock problems:
// the shortfall is part of the success body.
func (h *OrderHandler) Check(c *gin.Context) {
	var req services.CheckItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, i18n.KeyOrderInvalid)
		return
	}

	result, err := h.service.CheckAvailability(&req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	// The service reports reasons as message keys; resolve them here.
	if mi := result.MissingItem; mi != nil {
		lang := utils.GetLangFromContext(c)
		switch mi.Reason {
		case i18n.KeyOrderInsufficientStock:
			mi.Reason = i18n.T(lang, mi.Reason, mi.AvailableQuantity, mi.RequestedQuantity)
		case i18n.KeySizeNotFound:
			mi.Reason = i18n.T(lang, mi.Reason, mi.Size)
		default:
			mi.Reason = i18n.T(lang, mi.Reason)
		}
	}
	utils.OK(c, result)
}

// ListMine handles GET /api/orders
func (h *OrderHandler) ListMine(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	orders, err := h.service.GetUserOrders(userID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.OK(c, orders)
}

// Get handles GET /api/orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	orderID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	order, err := h.service.GetOrder(userID, orderID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.OK(c, order)
}

// Delete handles DELETE /api/orders/:id
func (h *OrderHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	orderID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteOrder(userID, orderID); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.Message(c, i18n.KeyOrderDeleted)
}

// MarkReady handles PATCH /api/orders/:id/ready
func (h *OrderHandler) MarkReady(c *gin.Context) {
	orderID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	order, err := h.service.MarkReady(orderID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.OK(c, order)
}

// MarkGiven handles PATCH /api/orders/:id/given
func (h *OrderHandler) MarkGiven(c *gin.Context) {
	orderID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	order, err := h.service.MarkGiven(orderID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.OK(c, order)
}

// adminOrder replaces the full user record with its summary in staff
// listings.
type adminOrder struct {
	models.Order
	User models.UserSummary `json:"user"`
}

func adminOrderViews(orders []models.Order) []adminOrder {
	views := make([]adminOrder, len(orders))
	for i, o := range orders {
		views[i] = adminOrder{Order: o}
		if o.User != nil {
			views[i].User = o.User.Summary()
		}
	}
	return views
}

// AdminList handles GET /api/admin/orders
func (h *OrderHandler) AdminList(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	orders, total, err := h.service.GetAllOrders(params)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.PaginatedResponse(c, utils.CreatePaginationResult(adminOrderViews(orders), total, params))
}

// AdminListByUser handles GET /api/admin/orders/user/:userId
func (h *OrderHandler) AdminListByUser(c *gin.Context) {
	targetID, ok := uuidParam(c, "userId")
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	orders, total, err := h.service.GetOrdersByUser(targetID, params)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.PaginatedResponse(c, utils.CreatePaginationResult(adminOrderViews(orders), total, params))
}
