package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/rominyadav/createcollab-sub002/pkg/utils"
)

// CallbackAuthMiddleware guards the completion callback. The runner hands
// each worker a token signed against the callback secret and scoped to one
// video; the worker presents it as a bearer header or ?token= query param.
func (mw *MiddlewareManager) CallbackAuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString := ""
			if bearerHeader := c.Request().Header.Get("Authorization"); bearerHeader != "" {
				headerParts := strings.Split(bearerHeader, " ")
				if len(headerParts) != 2 {
					mw.logger.Warnf("callback auth: malformed Authorization header from %s", utils.GetIPAddress(c))
					return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
				}
				tokenString = headerParts[1]
			} else {
				tokenString = c.QueryParam("token")
			}

			claims, err := utils.ValidateCallbackToken(tokenString, mw.cfg.Transcode.CallbackSecret)
			if err != nil {
				mw.logger.Warnf("callback auth: invalid token from %s: %v", utils.GetIPAddress(c), err)
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
			}

			c.Set("callback_claims", claims)
			return next(c)
		}
	}
}
