// Package handlers contains the thin HTTP layer: bind, call the service,
// translate the result. Business rules live in the services package.
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/stylemart/storefront/internal/i18n"
	"github.com/stylemart/storefront/internal/utils"
)

// currentUserID reads the authenticated user's id from the context. Writes
// a 401 and returns false when missing or malformed.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	raw, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.Unauthorized(c, i18n.KeyAuthRequired)
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		utils.Unauthorized(c, i18n.KeyAuthInvalidToken)
		return uuid.Nil, false
	}
	return id, true
}

// optionalUserID is currentUserID without the 401: anonymous callers get nil.
func optionalUserID(c *gin.Context) *uuid.UUID {
	raw, ok := utils.GetUserIDFromContext(c)
	if !ok {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}
	return &id
}

// uuidParam parses a path parameter as a UUID, writing a 400 on failure.
func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.BadRequest(c, i18n.KeyValidationInvalid, name)
		return uuid.Nil, false
	}
	return id, true
}
