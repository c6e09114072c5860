package stats

import (
	"math"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ayush-fhir/api/internal/domain/terminology"
)

// Handler exposes the dashboard statistics endpoints.
type Handler struct {
	index *terminology.Index
}

func NewHandler(index *terminology.Index) *Handler {
	return &Handler{index: index}
}

// RegisterRoutes mounts the stats endpoints on the given group.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/stats/top-terms", h.TopTerms)
	g.GET("/stats/dual-coding-rate", h.DualCodingRate)
}

const topTermLimit = 5

type topTermItem struct {
	Code  string `json:"code"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// TopTerms returns the first terms in load order. Usage counting is not
// tracked yet, so every listed term reports a count of one.
func (h *Handler) TopTerms(c echo.Context) error {
	items := []topTermItem{}
	for _, t := range h.index.Terms() {
		if len(items) == topTermLimit {
			break
		}
		items = append(items, topTermItem{Code: t.Code, Label: t.Label, Count: 1})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"items": items})
}

type dualCodingResponse struct {
	TotalTerms     int     `json:"total_terms"`
	DualCodedTerms int     `json:"dual_coded_terms"`
	RatePercent    float64 `json:"rate_percent"`
}

// DualCodingRate reports what share of loaded terms carry at least one
// ICD-11 mapping.
func (h *Handler) DualCodingRate(c echo.Context) error {
	terms := h.index.Terms()

	dual := 0
	for _, t := range terms {
		if len(t.ICD11Codes) > 0 {
			dual++
		}
	}

	rate := 0.0
	if len(terms) > 0 {
		rate = float64(dual) / float64(len(terms)) * 100.0
	}

	return c.JSON(http.StatusOK, dualCodingResponse{
		TotalTerms:     len(terms),
		DualCodedTerms: dual,
		RatePercent:    math.Round(rate*100) / 100,
	})
}
