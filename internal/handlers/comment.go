package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/stylemart/storefront/internal/i18n"
	"github.com/stylemart/storefront/internal/services"
	"github.com/stylemart/storefront/internal/utils"
)

type CommentHandler struct {
	service *services.CommentService
}

func NewCommentHandler(db *gorm.DB) *CommentHandler {
	return &CommentHandler{service: services.NewCommentService(db)}
}

// Create handles POST /api/comments
func (h *CommentHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, i18n.KeyValidationInvalid, "productId, text")
		return
	}

	comment, err := h.service.CreateComment(userID, &req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.OK(c, comment)
}

// Update handles PUT /api/comments/:id
func (h *CommentHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	commentID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, i18n.KeyValidationInvalid, "text")
		return
	}

	comment, err := h.service.UpdateComment(userID, commentID, &req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.OK(c, comment)
}

// Delete handles DELETE /api/comments/:id (author only).
func (h *CommentHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	commentID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteComment(userID, commentID); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.Message(c, i18n.KeyCommentDeleted)
}

// ListByProduct handles GET /api/products/:id/comments
func (h *CommentHandler) ListByProduct(c *gin.Context) {
	productID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	comments, err := h.service.GetProductComments(productID, optionalUserID(c))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.OK(c, comments)
}

// Pending handles GET /api/admin/comments/pending, the moderation queue.
func (h *CommentHandler) Pending(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	comments, total, err := h.service.GetPendingComments(params)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.PaginatedResponse(c, utils.CreatePaginationResult(comments, total, params))
}

type moderateRequest struct {
	Approve bool `json:"approve"`
}

// Moderate handles PATCH /api/admin/comments/:id/moderate
func (h *CommentHandler) Moderate(c *gin.Context) {
	commentID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req moderateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, i18n.KeyValidationInvalid, "approve")
		return
	}

	comment, err := h.service.ModerateComment(commentID, req.Approve)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.OK(c, comment)
}

type visibilityRequest struct {
	Hidden bool `json:"hidden"`
}

// SetVisibility handles PATCH /api/admin/comments/:id/visibility
func (h *CommentHandler) SetVisibility(c *gin.Context) {
	commentID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req visibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, i18n.KeyValidationInvalid, "hidden")
		return
	}

	comment, err := h.service.SetHidden(commentID, req.Hidden)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.OK(c, comment)
}

// AdminDelete handles DELETE /api/admin/comments/:id
func (h *CommentHandler) AdminDelete(c *gin.Context) {
	commentID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteAnyComment(commentID); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.Message(c, i18n.KeyCommentDeleted)
}
