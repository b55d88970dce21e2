package api

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up all API routes. Every route except the health
// check requires the bearer token.
func (h *Handler) RegisterRoutes(e *echo.Echo, bearerToken string) {
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	g := e.Group("", BearerAuth(bearerToken))

	g.POST("/characters", h.CreateCharacter)
	g.GET("/characters", h.ListCharacters)
	g.GET("/characters/:id", h.GetCharacter)
	g.PATCH("/characters/:id", h.UpdateCharacter)
	g.DELETE("/characters/:id", h.DeleteCharacter)
	g.GET("/characters/:id/sheet", h.GetSheet)

	g.GET("/catalog/:collection", h.GetCatalog)
}

// BearerAuth rejects requests whose Authorization header does not carry the
// configured token
func BearerAuth(token string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			presented, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}
			if subtle.ConstantTimeCompare([]byte(presented), []byte(token)) != 1 {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid bearer token")
			}
			return next(c)
		}
	}
}
