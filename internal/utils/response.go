package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/stylemart/storefront/internal/apperrors"
	"github.com/stylemart/storefront/internal/i18n"
)

// The wire contract is plain: success bodies are the entities themselves,
// failures are {"error": "<message>"} with the status from the taxonomy.

func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

func Message(c *gin.Context, key string, args ...interface{}) {
	lang := GetLangFromContext(c)
	c.JSON(http.StatusOK, gin.H{"message": i18n.T(lang, key, args...)})
}

func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"error": message})
}

func BadRequest(c *gin.Context, key string, args ...interface{}) {
	lang := GetLangFromContext(c)
	ErrorResponse(c, http.StatusBadRequest, i18n.T(lang, key, args...))
}

func Unauthorized(c *gin.Context, key string) {
	lang := GetLangFromContext(c)
	ErrorResponse(c, http.StatusUnauthorized, i18n.T(lang, key))
}

func Forbidden(c *gin.Context, key string) {
	lang := GetLangFromContext(c)
	ErrorResponse(c, http.StatusForbidden, i18n.T(lang, key))
}

func NotFound(c *gin.Context, key string) {
	lang := GetLangFromContext(c)
	ErrorResponse(c, http.StatusNotFound, i18n.T(lang, key))
}

// HandleError translates a service error. Taxonomy errors keep their status
// and localized message; anything else is logged server-side and returned as
// a generic 500.
func HandleError(c *gin.Context, err error) {
	lang := GetLangFromContext(c)

	if appErr, ok := apperrors.As(err); ok {
		if appErr.Kind == apperrors.KindInternal {
			logrus.WithError(err).WithField("path", c.Request.URL.Path).Error("Internal error")
			ErrorResponse(c, appErr.Status(), i18n.T(lang, "error.internal"))
			return
		}
		ErrorResponse(c, appErr.Status(), i18n.T(lang, appErr.Message, appErr.Args...))
		return
	}

	logrus.WithError(err).WithField("path", c.Request.URL.Path).Error("Unhandled error")
	ErrorResponse(c, http.StatusInternalServerError, i18n.T(lang, "error.internal"))
}

func PaginatedResponse(c *gin.Context, result PaginationResult) {
	SetPaginationHeaders(c, result)
	c.JSON(http.StatusOK, result)
}

func GetLangFromContext(c *gin.Context) string {
	if lang, exists := c.Get("lang"); exists {
		if langStr, ok := lang.(string); ok {
			return langStr
		}
	}
	return "en"
}

func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if userID, exists := c.Get("user_id"); exists {
		if userIDStr, ok := userID.(string); ok {
			return userIDStr, true
		}
	}
	return "", false
}
