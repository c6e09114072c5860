package consent

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// Handler exposes consent creation and access-check endpoints.
type Handler struct {
	engine *Engine
}

func NewHandler(engine *Engine) *Handler {
	return &Handler{engine: engine}
}

// RegisterRoutes mounts the consent endpoints on the given (authenticated)
// group.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/consent", h.CreateConsent)
	g.POST("/access-check", h.CheckAccess)
}

// CreateConsent builds a Consent resource for the patient, loads its rules
// into the engine, and returns the resource.
func (h *Handler) CreateConsent(c echo.Context) error {
	patientID := c.QueryParam("patient_id")
	if patientID == "" {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "Missing ?patient_id=")
	}
	purpose := c.QueryParam("purpose")
	if purpose == "" {
		purpose = string(PurposeTreatment)
	}

	consent := BuildConsent(patientID, purpose)
	h.engine.LoadRules(RulesFromConsent(consent))

	return c.JSON(http.StatusOK, consent)
}

type accessCheckResponse struct {
	Allowed bool               `json:"allowed"`
	Reason  string             `json:"reason"`
	Request accessCheckRequest `json:"request"`
}

type accessCheckRequest struct {
	SubjectID    string   `json:"subject_id"`
	SubjectType  string   `json:"subject_type"`
	SubjectRoles []string `json:"subject_roles"`
	Action       string   `json:"action"`
	ResourceType string   `json:"resource_type"`
	ResourceID   string   `json:"resource_id"`
	Purpose      string   `json:"purpose"`
	PatientID    string   `json:"patient_id,omitempty"`
}

// CheckAccess evaluates an access request and returns the decision together
// with the request it judged.
func (h *Handler) CheckAccess(c echo.Context) error {
	params := accessCheckRequest{
		SubjectID:    c.QueryParam("subject_id"),
		SubjectType:  c.QueryParam("subject_type"),
		Action:       c.QueryParam("action"),
		ResourceType: c.QueryParam("resource_type"),
		ResourceID:   c.QueryParam("resource_id"),
		Purpose:      c.QueryParam("purpose"),
		PatientID:    c.QueryParam("patient_id"),
	}
	if params.SubjectID == "" || params.SubjectType == "" || params.Action == "" ||
		params.ResourceType == "" || params.ResourceID == "" {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "Missing required query parameters")
	}
	if params.Purpose == "" {
		params.Purpose = string(PurposeTreatment)
	}
	if !ValidAction(params.Action) {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "Unknown action")
	}
	if !ValidPurpose(params.Purpose) {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "Unknown purpose")
	}

	for _, role := range strings.Split(c.QueryParam("subject_roles"), ",") {
		if role = strings.TrimSpace(role); role != "" {
			params.SubjectRoles = append(params.SubjectRoles, role)
		}
	}

	allowed, reason := h.engine.CheckAccess(AccessRequest{
		Subject: Subject{
			ID:    params.SubjectID,
			Type:  params.SubjectType,
			Roles: params.SubjectRoles,
		},
		Action: Action(params.Action),
		Resource: Resource{
			ID:    params.ResourceID,
			Type:  params.ResourceType,
			Owner: params.PatientID,
		},
		Purpose: Purpose(params.Purpose),
	})

	return c.JSON(http.StatusOK, accessCheckResponse{
		Allowed: allowed,
		Reason:  reason,
		Request: params,
	})
}
