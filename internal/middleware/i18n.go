package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

var supportedLangs = map[string]bool{"en": true, "ru": true}

// I18nMiddleware resolves the response language from Accept-Language.
func I18nMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := "en"

		header := c.GetHeader("Accept-Language")
		if header != "" {
			// "ru-RU,ru;q=0.9,en;q=0.8" -> "ru"
			primary := strings.TrimSpace(strings.Split(header, ",")[0])
			primary = strings.ToLower(strings.Split(primary, "-")[0])
			if supportedLangs[primary] {
				lang = primary
			}
		}

		c.Set("lang", lang)
		c.Next()
	}
}
