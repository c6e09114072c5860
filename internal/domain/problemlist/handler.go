package problemlist

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ayush-fhir/api/internal/platform/fhir"
)

// Handler exposes problem-list creation.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the endpoint on the given (authenticated) group.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/fhir/problem-list", h.Create)
}

// Create handles POST /fhir/problem-list.
func (h *Handler) Create(c echo.Context) error {
	code := c.QueryParam("namaste_code")
	if code == "" {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "Missing ?namaste_code=")
	}

	resp, err := h.svc.Create(c.Request().Context(), CreateParams{
		NAMASTECode:    code,
		PatientID:      c.QueryParam("patient_id"),
		PractitionerID: c.QueryParam("practitioner_id"),
		EncounterID:    c.QueryParam("encounter_id"),
	})
	if err != nil {
		var notFound *ErrCodeNotFound
		if errors.As(err, &notFound) {
			return c.JSON(http.StatusNotFound, fhir.NotFoundOutcome("NAMASTE", notFound.Code))
		}
		return c.JSON(http.StatusInternalServerError, fhir.ErrorOutcome("Error creating problem list"))
	}

	return c.JSON(http.StatusOK, resp)
}
