package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Handler exposes the mock ABHA token endpoint.
type Handler struct {
	issuer *TokenIssuer
}

func NewHandler(issuer *TokenIssuer) *Handler {
	return &Handler{issuer: issuer}
}

// RegisterRoutes mounts the auth endpoint on the given group.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/auth", h.IssueToken)
}

// IssueToken handles POST /auth?abha_id=... and returns a bearer token.
func (h *Handler) IssueToken(c echo.Context) error {
	abhaID := c.QueryParam("abha_id")
	resp, err := h.issuer.Issue(abhaID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid ABHA ID")
	}
	return c.JSON(http.StatusOK, resp)
}
