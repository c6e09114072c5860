package semantics

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Handler exposes the SNOMED CT and LOINC search endpoints.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// RegisterRoutes mounts the semantic search endpoints on the given group.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/snomed/search", h.SearchSNOMED)
	g.GET("/loinc/search", h.SearchLOINC)
}

// queryTerm accepts either ?q= or ?query= for compatibility with older
// clients.
func queryTerm(c echo.Context) (string, bool) {
	if q := c.QueryParam("q"); q != "" {
		return q, true
	}
	if q := c.QueryParam("query"); q != "" {
		return q, true
	}
	return "", false
}

// SearchSNOMED handles GET /snomed/search.
func (h *Handler) SearchSNOMED(c echo.Context) error {
	term, ok := queryTerm(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "Missing ?q= or ?query=")
	}
	concepts := SearchConcepts(term)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"concepts": concepts,
		"count":    len(concepts),
	})
}

// SearchLOINC handles GET /loinc/search.
func (h *Handler) SearchLOINC(c echo.Context) error {
	term, ok := queryTerm(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "Missing ?q= or ?query=")
	}
	codes := SearchCodes(term)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"codes": codes,
		"count": len(codes),
	})
}
