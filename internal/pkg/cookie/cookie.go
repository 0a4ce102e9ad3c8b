package cookie

import (
	"time"

	"github.com/gin-gonic/gin"
)

const AccessTokenCookieName = "access_token"

// SetAccessToken stores the token in an HttpOnly cookie.
func SetAccessToken(c *gin.Context, token string, expiry time.Duration, secure bool) {
	c.SetCookie(AccessTokenCookieName, token, int(expiry.Seconds()), "/", "", secure, true)
}

func GetAccessToken(c *gin.Context) string {
	token, _ := c.Cookie(AccessTokenCookieName)
	return token
}
