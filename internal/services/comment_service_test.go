package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stylemart/storefront/internal/apperrors"
	"github.com/stylemart/storefront/internal/models"
)

func TestCommentModerationFlow(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCommentService(db)

	admin := createTestUser(t, db, models.RoleAdmin)
	author := createTestUser(t, db, models.RoleUser)
	product, _ := createTestProduct(t, db, admin, 1000, models.SizeList{{Size: "M", Quantity: 1}})

	comment, err := svc.CreateComment(author.ID, &CreateCommentRequest{
		ProductID: product.ID,
		Text:      "Runs a size small",
	})
	require.NoError(t, err)
	assert.Equal(t, models.CommentStatusPending, comment.Status)
	assert.False(t, comment.Visible)

	// Invisible to strangers while pending, visible to the author.
	visible, err := svc.GetProductComments(product.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, visible)

	own, err := svc.GetProductComments(product.ID, &author.ID)
	require.NoError(t, err)
	assert.Len(t, own, 1)

	pending, total, err := svc.GetPendingComments(defaultParams())
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, pending, 1)

	_, err = svc.ModerateComment(comment.ID, true)
	require.NoError(t, err)

	visible, err = svc.GetProductComments(product.ID, nil)
	require.NoError(t, err)
	assert.Len(t, visible, 1)
}

func TestCommentEditResetsModeration(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCommentService(db)

	admin := createTestUser(t, db, models.RoleAdmin)
	author := createTestUser(t, db, models.RoleUser)
	product, _ := createTestProduct(t, db, admin, 1000, models.SizeList{{Size: "M", Quantity: 1}})

	comment, err := svc.CreateComment(author.ID, &CreateCommentRequest{
		ProductID: product.ID,
		Text:      "ok",
	})
	require.NoError(t, err)

	_, err = svc.ModerateComment(comment.ID, true)
	require.NoError(t, err)

	_, err = svc.UpdateComment(author.ID, comment.ID, &UpdateCommentRequest{Text: "edited"})
	require.NoError(t, err)

	var reloaded models.Comment
	require.NoError(t, db.First(&reloaded, "id = ?", comment.ID).Error)
	assert.Equal(t, models.CommentStatusPending, reloaded.Status)
	assert.False(t, reloaded.Visible)
	assert.Equal(t, "edited", reloaded.Text)
}

func TestCommentOwnershipEnforced(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCommentService(db)

	admin := createTestUser(t, db, models.RoleAdmin)
	author := createTestUser(t, db, models.RoleUser)
	other := createTestUser(t, db, models.RoleUser)
	product, _ := createTestProduct(t, db, admin, 1000, models.SizeList{{Size: "M", Quantity: 1}})

	comment, err := svc.CreateComment(author.ID, &CreateCommentRequest{
		ProductID: product.ID,
		Text:      "mine",
	})
	require.NoError(t, err)

	_, err = svc.UpdateComment(other.ID, comment.ID, &UpdateCommentRequest{Text: "hijack"})
	assert.True(t, apperrors.IsKind(err, apperrors.KindForbidden))

	err = svc.DeleteComment(other.ID, comment.ID)
	assert.True(t, apperrors.IsKind(err, apperrors.KindForbidden))

	// Moderators bypass ownership.
	require.NoError(t, svc.DeleteAnyComment(comment.ID))
}

func TestRejectedCommentStaysHiddenButKept(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCommentService(db)

	admin := createTestUser(t, db, models.RoleAdmin)
	author := createTestUser(t, db, models.RoleUser)
	product, _ := createTestProduct(t, db, admin, 1000, models.SizeList{{Size: "M", Quantity: 1}})

	comment, err := svc.CreateComment(author.ID, &CreateCommentRequest{
		ProductID: product.ID,
		Text:      "spam?",
	})
	require.NoError(t, err)

	_, err = svc.ModerateComment(comment.ID, false)
	require.NoError(t, err)

	visible, err := svc.GetProductComments(product.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, visible)

	own, err := svc.GetProductComments(product.ID, &author.ID)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, models.CommentStatusRejected, own[0].Status)
}
