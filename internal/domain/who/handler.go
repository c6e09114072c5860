package who

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Handler exposes the sandbox ICD-11 search endpoints.
type Handler struct {
	client *Client
}

func NewHandler(client *Client) *Handler {
	return &Handler{client: client}
}

// RegisterRoutes mounts the WHO endpoints on the given group.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/who/tm2/search", h.SearchTM2)
	g.GET("/who/biomedicine/search", h.SearchBiomedicine)
}

type searchResponse struct {
	Entities []Entity `json:"entities"`
	Count    int      `json:"count"`
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

// SearchTM2 handles GET /who/tm2/search.
func (h *Handler) SearchTM2(c echo.Context) error {
	term, ok := queryTerm(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "Missing ?q= or ?query=")
	}
	entities := h.client.SearchTM2(term)
	return c.JSON(http.StatusOK, searchResponse{Entities: entities, Count: len(entities)})
}

// SearchBiomedicine handles GET /who/biomedicine/search. The reference set is
// returned unfiltered to match the sandbox behavior of the upstream API,
// which scores rather than excludes candidates.
func (h *Handler) SearchBiomedicine(c echo.Context) error {
	if c.QueryParam("query") == "" {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "Missing ?query=")
	}
	entities := h.client.BiomedicineEntities()
	return c.JSON(http.StatusOK, searchResponse{Entities: entities, Count: len(entities)})
}
