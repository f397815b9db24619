package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/stylemart/storefront/internal/i18n"
	"github.com/stylemart/storefront/internal/services"
	"github.com/stylemart/storefront/internal/utils"
)

type LikeHandler struct {
	service *services.LikeService
}

func NewLikeHandler(db *gorm.DB) *LikeHandler {
	return &LikeHandler{service: services.NewLikeService(db)}
}

// Rate handles POST /api/products/:id/rating
func (h *LikeHandler) Rate(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	productID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req services.RateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, i18n.KeyRatingInvalid)
		return
	}

	like, err := h.service.RateProduct(userID, productID, &req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.OK(c, like)
}

// Delete handles DELETE /api/products/:id/rating
func (h *LikeHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	productID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteRating(userID, productID); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.Message(c, i18n.KeyRatingDeleted)
}
