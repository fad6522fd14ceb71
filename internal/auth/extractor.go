package auth

import (
	"strings"

	"github.com/labstack/echo/v4"
)

// SessionCookieName is the cookie that carries the session token.
const SessionCookieName = "token"

const bearerPrefix = "Bearer "

// ExtractToken pulls the session token from a request. The cookie is the
// primary source, the Authorization bearer header the fallback, so
// downstream logic never special-cases the transport.
func ExtractToken(c echo.Context) (string, bool) {
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value, true
	}
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(header, bearerPrefix) {
		if token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix)); token != "" {
			return token, true
		}
	}
	return "", false
}
