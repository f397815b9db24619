package services

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stylemart/storefront/internal/apperrors"
	"github.com/stylemart/storefront/internal/i18n"
	"github.com/stylemart/storefront/internal/models"
	"github.com/stylemart/storefront/internal/utils"
)

type CommentService struct {
	db *gorm.DB
}

func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{db: db}
}

type CreateCommentRequest struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Text      string    `json:"text" validate:"required,min=1,max=2000"`
}

type UpdateCommentRequest struct {
	Text string `json:"text" validate:"required,min=1,max=2000"`
}

// CreateComment stores a new comment in pending state. It stays invisible
// to other users until a moderator approves it.
func (s *CommentService) CreateComment(userID uuid.UUID, req *CreateCommentRequest) (*models.Comment, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation(i18n.KeyValidationInvalid, "productId, text")
	}
	if strings.TrimSpace(req.Text) == "" {
		return nil, apperrors.Validation(i18n.KeyValidationInvalid, "text")
	}

	var product models.Product
	if err := s.db.First(&product, "id = ?", req.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound(i18n.KeyProductNotFound)
		}
		return nil, apperrors.Internal("failed to load product", err)
	}

	comment := models.Comment{
		ProductID: req.ProductID,
		UserID:    userID,
		Text:      req.Text,
		Visible:   false,
		Status:    models.CommentStatusPending,
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, apperrors.Internal("failed to create comment", err)
	}

	s.db.Preload("User").First(&comment, "id = ?", comment.ID)
	return &comment, nil
}

// UpdateComment lets the author edit their own comment. Editing sends it
// back to moderation.
func (s *CommentService) UpdateComment(userID, commentID uuid.UUID, req *UpdateCommentRequest) (*models.Comment, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation(i18n.KeyValidationInvalid, "text")
	}

	comment, err := s.ownComment(userID, commentID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"text":    req.Text,
		"visible": false,
		"status":  models.CommentStatusPending,
	}
	if err := s.db.Model(comment).Updates(updates).Error; err != nil {
		return nil, apperrors.Internal("failed to update comment", err)
	}

	return comment, nil
}

// DeleteComment removes the author's own comment. Moderators use
// DeleteAnyComment instead.
func (s *CommentService) DeleteComment(userID, commentID uuid.UUID) error {
	comment, err := s.ownComment(userID, commentID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(comment).Error; err != nil {
		return apperrors.Internal("failed to delete comment", err)
	}
	return nil
}

func (s *CommentService) DeleteAnyComment(commentID uuid.UUID) error {
	var comment models.Comment
	if err := s.db.First(&comment, "id = ?", commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound(i18n.KeyCommentNotFound)
		}
		return apperrors.Internal("failed to load comment", err)
	}

	if err := s.db.Delete(&comment).Error; err != nil {
		return apperrors.Internal("failed to delete comment", err)
	}
	return nil
}

// GetProductComments returns a product's approved comments plus, when a
// viewer is given, the viewer's own pending or rejected ones.
func (s *CommentService) GetProductComments(productID uuid.UUID, viewerID *uuid.UUID) ([]models.Comment, error) {
	query := s.db.Where("product_id = ?", productID)
	if viewerID != nil {
		query = query.Where("visible = ? OR user_id = ?", true, *viewerID)
	} else {
		query = query.Where("visible = ?", true)
	}

	var comments []models.Comment
	if err := query.Preload("User").Order("created_at DESC").Find(&comments).Error; err != nil {
		return nil, apperrors.Internal("failed to fetch comments", err)
	}
	return comments, nil
}

// GetPendingComments is the moderation queue.
func (s *CommentService) GetPendingComments(params utils.PaginationParams) ([]models.Comment, int64, error) {
	query := s.db.Model(&models.Comment{}).Where("status = ?", models.CommentStatusPending)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Internal("failed to count pending comments", err)
	}

	query = utils.ApplySort(query, params, []string{"created_at"})
	query = utils.ApplyPagination(query, params)

	var comments []models.Comment
	err := query.Preload("User").Preload("Product").Find(&comments).Error
	if err != nil {
		return nil, 0, apperrors.Internal("failed to fetch pending comments", err)
	}
	return comments, total, nil
}

// ModerateComment approves or rejects a pending comment. Approval makes it
// visible, rejection keeps it hidden but preserved for the author.
func (s *CommentService) ModerateComment(commentID uuid.UUID, approve bool) (*models.Comment, error) {
	var comment models.Comment
	if err := s.db.First(&comment, "id = ?", commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound(i18n.KeyCommentNotFound)
		}
		return nil, apperrors.Internal("failed to load comment", err)
	}

	status := models.CommentStatusRejected
	if approve {
		status = models.CommentStatusApproved
	}
	updates := map[string]interface{}{
		"status":  status,
		"visible": approve,
	}
	if err := s.db.Model(&comment).Updates(updates).Error; err != nil {
		return nil, apperrors.Internal("failed to moderate comment", err)
	}

	return &comment, nil
}

// SetHidden toggles an approved comment's visibility without rerunning
// moderation.
func (s *CommentService) SetHidden(commentID uuid.UUID, hidden bool) (*models.Comment, error) {
	var comment models.Comment
	if err := s.db.First(&comment, "id = ?", commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound(i18n.KeyCommentNotFound)
		}
		return nil, apperrors.Internal("failed to load comment", err)
	}

	if err := s.db.Model(&comment).Update("visible", !hidden).Error; err != nil {
		return nil, apperrors.Internal("failed to update comment", err)
	}
	return &comment, nil
}

func (s *CommentService) ownComment(userID, commentID uuid.UUID) (*models.Comment, error) {
	var comment models.Comment
	if err := s.db.First(&comment, "id = ?", commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound(i18n.KeyCommentNotFound)
		}
		return nil, apperrors.Internal("failed to load comment", err)
	}
	if comment.UserID != userID {
		return nil, apperrors.Forbidden(i18n.KeyAuthAccessDenied)
	}
	return &comment, nil
}
