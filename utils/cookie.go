package utils

import (
	"net/http"

	"github.com/egmrc/impact-offers/config"
	"github.com/gin-gonic/gin"
)

// EmailCookieName is the sole session mechanism for end users. The cookie is
// deliberately unsigned and readable by the frontend; this trust boundary is
// documented in DESIGN.md.
const EmailCookieName = "impact_email"

// EmailCookieMaxAge is 180 days in seconds
const EmailCookieMaxAge = 60 * 60 * 24 * 180

// SetEmailCookie sets or refreshes the visitor email cookie
func SetEmailCookie(c *gin.Context, email string) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     EmailCookieName,
		Value:    email,
		Path:     "/",
		MaxAge:   EmailCookieMaxAge,
		HttpOnly: false,
		Secure:   config.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
}

// GetEmailCookie returns the normalized email from the visitor cookie, or ""
func GetEmailCookie(c *gin.Context) string {
	value, err := c.Cookie(EmailCookieName)
	if err != nil {
		return ""
	}
	return NormalizeEmail(value)
}
