package audit

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ayush-fhir/api/internal/platform/fhir"
)

// Handler exposes the audit trail endpoints and the bundle intake that feeds
// them.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the read endpoints on open and the bundle intake on
// protected. The intake writes clinical data and requires a bearer token.
func (h *Handler) RegisterRoutes(open, protected *echo.Group) {
	open.GET("/audit", h.GetAudit)
	open.GET("/provenance", h.GetProvenance)
	protected.POST("/ingest-bundle", h.IngestBundle)
}

// IngestBundle accepts a FHIR Bundle carrying at least one Condition and
// records the intake in the audit trail.
func (h *Handler) IngestBundle(c echo.Context) error {
	var bundle fhir.Bundle
	if err := c.Bind(&bundle); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid Bundle")
	}
	if bundle.ResourceType != "Bundle" {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid Bundle")
	}

	hasCondition := false
	for _, entry := range bundle.Entry {
		if rt, _ := entry.Resource["resourceType"].(string); rt == "Condition" {
			hasCondition = true
			break
		}
	}
	if !hasCondition {
		return echo.NewHTTPError(http.StatusBadRequest, "Bundle missing Condition resource")
	}

	h.svc.RecordCreate(c.Request().Context(), "Bundle", "Bundle/new")
	return c.JSON(http.StatusOK, map[string]string{"status": "accepted"})
}

// GetAudit handles GET /audit.
func (h *Handler) GetAudit(c echo.Context) error {
	entries, err := h.svc.AuditEntries(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "audit store unavailable")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"entries": entries})
}

// GetProvenance handles GET /provenance.
func (h *Handler) GetProvenance(c echo.Context) error {
	entries, err := h.svc.ProvenanceEntries(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "audit store unavailable")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"entries": entries})
}
