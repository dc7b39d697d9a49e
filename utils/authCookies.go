package utils

import (
	"time"

	"github.com/gin-gonic/gin"
)

// SetAuthCookies stores both tokens as httpOnly cookies after login.
func SetAuthCookies(c *gin.Context, accessToken, refreshToken string) {
	setCookie(c, "accessToken", accessToken, AccessTokenExpiry)
	setCookie(c, "refreshToken", refreshToken, RefreshTokenExpiry)
}

// ClearAuthCookies expires both token cookies on logoff.
func ClearAuthCookies(c *gin.Context) {
	clearCookie(c, "accessToken")
	clearCookie(c, "refreshToken")
}

func setCookie(c *gin.Context, name, value string, expiry time.Duration) {
	c.SetCookie(name, value, int(expiry.Seconds()), "/", "", cookieSecure(), true)
}

func clearCookie(c *gin.Context, name string) {
	c.SetCookie(name, "", -1, "/", "", cookieSecure(), true)
}

// cookieSecure drops the Secure flag in debug mode so local development over
// plain HTTP keeps working.
func cookieSecure() bool {
	return gin.Mode() != gin.DebugMode
}
